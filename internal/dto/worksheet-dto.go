package dto

import "time"

type CreateWorksheetDTO struct {
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	Description *string   `json:"description" validate:"omitempty"`
}

// WorksheetSummaryDTO - агрегат по всем записям заявки, считается на чтении.
type WorksheetSummaryDTO struct {
	TotalHours     float64 `json:"total_hours"`
	EstimatedHours int     `json:"estimated_hours"`
	Overtime       bool    `json:"overtime"`
}
