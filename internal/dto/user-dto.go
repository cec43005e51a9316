package dto

import "gearguard/pkg/validation"

type UpdateUserDTO struct {
	Name         *string                   `json:"name" validate:"omitempty,min=1"`
	Email        *string                   `json:"email" validate:"omitempty,email"`
	Role         *string                   `json:"role" validate:"omitempty,oneof=admin technician employee"`
	DepartmentID validation.NullableUint64 `json:"department_id" validate:"omitempty,gt=0"`
	IsActive     *bool                     `json:"is_active" validate:"omitempty"`
	TeamIDs      *[]uint64                 `json:"team_ids" validate:"omitempty,unique,dive,gt=0"`
}
