package entities

import "time"

type User struct {
	ID               uint64     `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	Password         string     `json:"-"`
	Name             string     `json:"name"`
	Role             string     `json:"role"`
	DepartmentID     *uint64    `json:"department_id"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        *time.Time `json:"created_at"`
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
}
