package entities

import "time"

type Equipment struct {
	ID                  uint64     `json:"id"`
	Name                string     `json:"name"`
	SerialNumber        string     `json:"serial_number"`
	CategoryID          uint64     `json:"category_id"`
	DepartmentID        *uint64    `json:"department_id"`
	AssignedEmployeeID  *uint64    `json:"assigned_employee_id"`
	Location            *string    `json:"location"`
	PurchaseDate        *time.Time `json:"purchase_date"`
	WarrantyExpiryDate  *time.Time `json:"warranty_expiry_date"`
	MaintenanceTeamID   *uint64    `json:"maintenance_team_id"`
	DefaultTechnicianID *uint64    `json:"default_technician_id"`
	Status              string     `json:"status"`
	AssignedDate        *time.Time `json:"assigned_date"`
	ScrapDate           *time.Time `json:"scrap_date"`
	Notes               *string    `json:"notes"`
}
