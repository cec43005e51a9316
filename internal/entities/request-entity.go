package entities

import "time"

// MaintenanceRequest - заявка на обслуживание. Целью выступает либо единица
// оборудования, либо рабочий центр (ровно одно из двух).
type MaintenanceRequest struct {
	ID                   uint64     `json:"id"`
	Subject              string     `json:"subject"`
	Description          string     `json:"description"`
	RequestType          string     `json:"request_type"`
	EquipmentID          *uint64    `json:"equipment_id"`
	WorkCenterID         *uint64    `json:"work_center_id"`
	MaintenanceTeamID    *uint64    `json:"maintenance_team_id"`
	AssignedTechnicianID *uint64    `json:"assigned_technician_id"`
	ScheduledDate        *time.Time `json:"scheduled_date"`
	ActualStartDate      *time.Time `json:"actual_start_date"`
	CompletedDate        *time.Time `json:"completed_date"`
	DurationHours        *int       `json:"duration_hours"`
	Priority             string     `json:"priority"`
	Status               string     `json:"status"`
	CreatedBy            uint64     `json:"created_by"`
	CreatedAt            *time.Time `json:"created_at"`

	// TechnicianIDs наполняется из join-таблицы request_technicians и живёт
	// независимо от AssignedTechnicianID (два канала назначения).
	TechnicianIDs []uint64 `json:"technician_ids"`
}
