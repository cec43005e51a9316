package dto

import (
	"time"

	"gearguard/pkg/validation"
)

type CreateRequestDTO struct {
	Subject              string     `json:"subject" validate:"required,min=1"`
	Description          string     `json:"description" validate:"required,min=1"`
	RequestType          string     `json:"request_type" validate:"required,oneof=corrective preventive"`
	EquipmentID          *uint64    `json:"equipment_id" validate:"omitempty,gt=0"`
	WorkCenterID         *uint64    `json:"work_center_id" validate:"omitempty,gt=0"`
	MaintenanceTeamID    *uint64    `json:"maintenance_team_id" validate:"omitempty,gt=0"`
	AssignedTechnicianID *uint64    `json:"assigned_technician_id" validate:"omitempty,gt=0"`
	ScheduledDate        *time.Time `json:"scheduled_date" validate:"omitempty"`
	ActualStartDate      *time.Time `json:"actual_start_date" validate:"omitempty"`
	CompletedDate        *time.Time `json:"completed_date" validate:"omitempty"`
	DurationHours        *int       `json:"duration_hours" validate:"omitempty,gte=0"`
	Priority             string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status               string     `json:"status" validate:"omitempty,oneof=new in_progress repaired scrap"`
	TechnicianIDs        []uint64   `json:"technician_ids" validate:"omitempty,unique,dive,gt=0"`
}

// UpdateRequestDTO: ScheduledDate - трёхзначное поле, потому что авто-переход
// new -> in_progress срабатывает только на НЕ-null значение; очистка даты
// перехода не вызывает. TechnicianIDs == nil - "не трогать назначения".
type UpdateRequestDTO struct {
	Subject              *string                   `json:"subject" validate:"omitempty,min=1"`
	Description          *string                   `json:"description" validate:"omitempty,min=1"`
	RequestType          *string                   `json:"request_type" validate:"omitempty,oneof=corrective preventive"`
	MaintenanceTeamID    validation.NullableUint64 `json:"maintenance_team_id" validate:"omitempty,gt=0"`
	AssignedTechnicianID validation.NullableUint64 `json:"assigned_technician_id" validate:"omitempty,gt=0"`
	ScheduledDate        validation.NullableTime   `json:"scheduled_date" validate:"omitempty"`
	ActualStartDate      validation.NullableTime   `json:"actual_start_date" validate:"omitempty"`
	CompletedDate        validation.NullableTime   `json:"completed_date" validate:"omitempty"`
	DurationHours        validation.NullableUint64 `json:"duration_hours" validate:"omitempty,gte=0"`
	Priority             *string                   `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status               *string                   `json:"status" validate:"omitempty,oneof=new in_progress repaired scrap"`
	TechnicianIDs        *[]uint64                 `json:"technician_ids" validate:"omitempty,unique,dive,gt=0"`
}
