package dto

import "gearguard/pkg/validation"

type CreateWorkCenterDTO struct {
	Name                   string   `json:"name" validate:"required,min=1"`
	Code                   string   `json:"code" validate:"required,wc_code"`
	Tag                    *string  `json:"tag" validate:"omitempty"`
	AlternativeWorkcenters []uint64 `json:"alternative_workcenters" validate:"omitempty,unique,dive,gt=0"`
	CostPerHour            float64  `json:"cost_per_hour" validate:"omitempty,gte=0"`
	Capacity               float64  `json:"capacity" validate:"omitempty,gte=0"`
	TimeEfficiency         float64  `json:"time_efficiency" validate:"omitempty,gte=0,lte=100"`
	OEETarget              float64  `json:"oee_target" validate:"omitempty,gte=0,lte=100"`
}

type UpdateWorkCenterDTO struct {
	Name                   *string                   `json:"name" validate:"omitempty,min=1"`
	Code                   *string                   `json:"code" validate:"omitempty,wc_code"`
	Tag                    validation.NullableString `json:"tag" validate:"omitempty"`
	AlternativeWorkcenters *[]uint64                 `json:"alternative_workcenters" validate:"omitempty,unique,dive,gt=0"`
	CostPerHour            *float64                  `json:"cost_per_hour" validate:"omitempty,gte=0"`
	Capacity               *float64                  `json:"capacity" validate:"omitempty,gte=0"`
	TimeEfficiency         *float64                  `json:"time_efficiency" validate:"omitempty,gte=0,lte=100"`
	OEETarget              *float64                  `json:"oee_target" validate:"omitempty,gte=0,lte=100"`
	Status                 *string                   `json:"status" validate:"omitempty,oneof=active scrapped"`
}
