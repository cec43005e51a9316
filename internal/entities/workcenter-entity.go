package entities

// WorkCenter - производственный ресурс (станция, группа станков) со своими
// стоимостными и мощностными характеристиками.
type WorkCenter struct {
	ID                    uint64   `json:"id"`
	Name                  string   `json:"name"`
	Code                  string   `json:"code"`
	Tag                   *string  `json:"tag"`
	AlternativeWorkcenters []uint64 `json:"alternative_workcenters"`
	CostPerHour           float64  `json:"cost_per_hour"`
	Capacity              float64  `json:"capacity"`
	TimeEfficiency        float64  `json:"time_efficiency"`
	OEETarget             float64  `json:"oee_target"`
	Status                string   `json:"status"`
}
