package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"

	"go.uber.org/zap"
)

type DepartmentServiceInterface interface {
	GetDepartments(ctx context.Context) ([]entities.Department, error)
	FindDepartment(ctx context.Context, id uint64) (*entities.Department, error)
	CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*entities.Department, error)
}

type DepartmentService struct {
	repo   repositories.DepartmentRepositoryInterface
	logger *zap.Logger
}

func NewDepartmentService(repo repositories.DepartmentRepositoryInterface, logger *zap.Logger) DepartmentServiceInterface {
	return &DepartmentService{repo: repo, logger: logger}
}

func (s *DepartmentService) GetDepartments(ctx context.Context) ([]entities.Department, error) {
	return s.repo.GetDepartments(ctx)
}

func (s *DepartmentService) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	return s.repo.FindDepartment(ctx, id)
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*entities.Department, error) {
	return s.repo.CreateDepartment(ctx, entities.Department{
		Name:        payload.Name,
		Description: payload.Description,
	})
}
