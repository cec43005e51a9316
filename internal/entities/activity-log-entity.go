package entities

import "time"

// ActivityLog - append-only журнал действий; записи никогда не изменяются.
type ActivityLog struct {
	ID            uint64    `json:"id"`
	ReferenceType string    `json:"reference_type"`
	ReferenceID   uint64    `json:"reference_id"`
	Action        string    `json:"action"`
	PerformedBy   uint64    `json:"performed_by"`
	Timestamp     time.Time `json:"timestamp"`
}
