package dto

type CreateTeamDTO struct {
	Name           string   `json:"name" validate:"required,min=1"`
	Specialization *string  `json:"specialization" validate:"omitempty"`
	Description    *string  `json:"description" validate:"omitempty"`
	MemberIDs      []uint64 `json:"member_ids" validate:"omitempty,unique,dive,gt=0"`
}

// UpdateTeamDTO: MemberIDs == nil означает "не трогать состав",
// пустой срез - "очистить состав". Дубликаты отклоняются валидацией.
type UpdateTeamDTO struct {
	Name           *string   `json:"name" validate:"omitempty,min=1"`
	Specialization *string   `json:"specialization" validate:"omitempty"`
	Description    *string   `json:"description" validate:"omitempty"`
	MemberIDs      *[]uint64 `json:"member_ids" validate:"omitempty,unique,dive,gt=0"`
}
