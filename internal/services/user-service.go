package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"

	"go.uber.org/zap"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context) ([]entities.User, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error)
	GetTechnicians(ctx context.Context) ([]entities.User, error)
}

type UserService struct {
	repo   repositories.UserRepositoryInterface
	logger *zap.Logger
}

func NewUserService(repo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context) ([]entities.User, error) {
	return s.repo.GetUsers(ctx)
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	return s.repo.FindUser(ctx, id)
}

// UpdateUser собирает новое состояние из текущей строки и присланных полей;
// состав команд пересобирается только если team_ids присутствует в запросе.
func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error) {
	user, err := s.repo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		user.Name = *payload.Name
	}
	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.Role != nil {
		user.Role = *payload.Role
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}
	if payload.DepartmentID.Set {
		if payload.DepartmentID.Valid {
			v := payload.DepartmentID.Uint64.Uint64
			user.DepartmentID = &v
		} else {
			user.DepartmentID = nil
		}
	}

	updated, err := s.repo.UpdateUser(ctx, *user)
	if err != nil {
		return nil, err
	}

	if payload.TeamIDs != nil {
		if err := s.repo.ReplaceTeamMemberships(ctx, id, *payload.TeamIDs); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

// GetTechnicians - справочник для назначения на заявки.
func (s *UserService) GetTechnicians(ctx context.Context) ([]entities.User, error) {
	users, err := s.repo.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	technicians := make([]entities.User, 0)
	for _, u := range users {
		if u.Role == entities.RoleTechnician && u.IsActive {
			technicians = append(technicians, u)
		}
	}
	return technicians, nil
}
