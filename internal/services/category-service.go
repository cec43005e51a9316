package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"

	"go.uber.org/zap"
)

type CategoryServiceInterface interface {
	GetCategories(ctx context.Context) ([]entities.Category, error)
	FindCategory(ctx context.Context, id uint64) (*entities.Category, error)
	CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.Category, error)
}

type CategoryService struct {
	repo   repositories.CategoryRepositoryInterface
	logger *zap.Logger
}

func NewCategoryService(repo repositories.CategoryRepositoryInterface, logger *zap.Logger) CategoryServiceInterface {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) GetCategories(ctx context.Context) ([]entities.Category, error) {
	return s.repo.GetCategories(ctx)
}

func (s *CategoryService) FindCategory(ctx context.Context, id uint64) (*entities.Category, error) {
	return s.repo.FindCategory(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.Category, error) {
	return s.repo.CreateCategory(ctx, entities.Category{
		Name:        payload.Name,
		Description: payload.Description,
	})
}
