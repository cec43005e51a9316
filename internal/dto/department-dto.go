package dto

type CreateDepartmentDTO struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Description *string `json:"description" validate:"omitempty"`
}

type CreateCategoryDTO struct {
	Name        string  `json:"name" validate:"required,min=1"`
	Description *string `json:"description" validate:"omitempty"`
}
