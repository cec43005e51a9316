package dto

import "gearguard/internal/entities"

type DashboardDTO struct {
	RequestsByStatus   map[string]int64       `json:"requests_by_status"`
	RequestsByPriority map[string]int64       `json:"requests_by_priority"`
	OpenRequests       int64                  `json:"open_requests"`
	EquipmentActive    int64                  `json:"equipment_active"`
	EquipmentScrapped  int64                  `json:"equipment_scrapped"`
	RecentActivity     []entities.ActivityLog `json:"recent_activity"`
}
