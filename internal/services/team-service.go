package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"

	"go.uber.org/zap"
)

type TeamServiceInterface interface {
	GetTeams(ctx context.Context) ([]entities.Team, error)
	FindTeam(ctx context.Context, id uint64) (*entities.Team, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error)
}

type TeamService struct {
	repo   repositories.TeamRepositoryInterface
	logger *zap.Logger
}

func NewTeamService(repo repositories.TeamRepositoryInterface, logger *zap.Logger) TeamServiceInterface {
	return &TeamService{repo: repo, logger: logger}
}

func (s *TeamService) GetTeams(ctx context.Context) ([]entities.Team, error) {
	return s.repo.GetTeams(ctx)
}

func (s *TeamService) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	return s.repo.FindTeam(ctx, id)
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error) {
	team := entities.Team{
		Name:           payload.Name,
		Specialization: payload.Specialization,
		Description:    payload.Description,
	}
	return s.repo.CreateTeam(ctx, team, payload.MemberIDs)
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error) {
	if _, err := s.repo.FindTeam(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.UpdateTeam(ctx, id, payload)
}
