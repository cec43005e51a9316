package dto

import (
	"time"

	"gearguard/pkg/validation"
)

type CreateEquipmentDTO struct {
	Name                string     `json:"name" validate:"required,min=1"`
	SerialNumber        string     `json:"serial_number" validate:"required,serial_number"`
	CategoryID          uint64     `json:"category_id" validate:"required,gt=0"`
	DepartmentID        *uint64    `json:"department_id" validate:"omitempty,gt=0"`
	AssignedEmployeeID  *uint64    `json:"assigned_employee_id" validate:"omitempty,gt=0"`
	Location            *string    `json:"location" validate:"omitempty"`
	PurchaseDate        *time.Time `json:"purchase_date" validate:"omitempty"`
	WarrantyExpiryDate  *time.Time `json:"warranty_expiry_date" validate:"omitempty"`
	MaintenanceTeamID   *uint64    `json:"maintenance_team_id" validate:"omitempty,gt=0"`
	DefaultTechnicianID *uint64    `json:"default_technician_id" validate:"omitempty,gt=0"`
	AssignedDate        *time.Time `json:"assigned_date" validate:"omitempty"`
	ScrapDate           *time.Time `json:"scrap_date" validate:"omitempty"`
	Notes               *string    `json:"notes" validate:"omitempty"`
}

// UpdateEquipmentDTO: ScrapDate - трёхзначное поле (не прислано / null / дата);
// от него выводится Status. Если ScrapDate не прислан, аутентичным считается
// присланный Status, и уже от него выводится scrap_date.
type UpdateEquipmentDTO struct {
	Name                *string                   `json:"name" validate:"omitempty,min=1"`
	SerialNumber        *string                   `json:"serial_number" validate:"omitempty,serial_number"`
	CategoryID          *uint64                   `json:"category_id" validate:"omitempty,gt=0"`
	DepartmentID        validation.NullableUint64 `json:"department_id" validate:"omitempty,gt=0"`
	AssignedEmployeeID  validation.NullableUint64 `json:"assigned_employee_id" validate:"omitempty,gt=0"`
	Location            validation.NullableString `json:"location" validate:"omitempty"`
	PurchaseDate        validation.NullableTime   `json:"purchase_date" validate:"omitempty"`
	WarrantyExpiryDate  validation.NullableTime   `json:"warranty_expiry_date" validate:"omitempty"`
	MaintenanceTeamID   validation.NullableUint64 `json:"maintenance_team_id" validate:"omitempty,gt=0"`
	DefaultTechnicianID validation.NullableUint64 `json:"default_technician_id" validate:"omitempty,gt=0"`
	Status              *string                   `json:"status" validate:"omitempty,oneof=active scrapped"`
	AssignedDate        validation.NullableTime   `json:"assigned_date" validate:"omitempty"`
	ScrapDate           validation.NullableTime   `json:"scrap_date" validate:"omitempty"`
	Notes               validation.NullableString `json:"notes" validate:"omitempty"`
}
