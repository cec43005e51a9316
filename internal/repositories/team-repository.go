package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const teamTable = "teams"

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context) ([]entities.Team, error)
	FindTeam(ctx context.Context, id uint64) (*entities.Team, error)
	CreateTeam(ctx context.Context, team entities.Team, memberIDs []uint64) (*entities.Team, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error)
}

type TeamRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTeamRepository(storage *pgxpool.Pool, logger *zap.Logger) TeamRepositoryInterface {
	return &TeamRepository{storage: storage, logger: logger}
}

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var t entities.Team
	err := row.Scan(&t.ID, &t.Name, &t.Specialization, &t.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования team: %w", err)
	}
	return &t, nil
}

func (r *TeamRepository) GetTeams(ctx context.Context) ([]entities.Team, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, name, specialization, description FROM teams ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	byID := make(map[uint64]int)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		t.MemberIDs = make([]uint64, 0)
		byID[t.ID] = len(teams)
		teams = append(teams, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Второй запрос по join-таблице; сшивается в приложении (point-in-time
	// согласованность не гарантируется - осознанное ограничение).
	memberRows, err := r.storage.Query(ctx, `SELECT team_id, user_id FROM team_members`)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var teamID, userID uint64
		if err := memberRows.Scan(&teamID, &userID); err != nil {
			return nil, err
		}
		if idx, ok := byID[teamID]; ok {
			teams[idx].MemberIDs = append(teams[idx].MemberIDs, userID)
		}
	}
	return teams, memberRows.Err()
}

func (r *TeamRepository) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	team, err := scanTeam(r.storage.QueryRow(ctx,
		`SELECT id, name, specialization, description FROM teams WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	memberIDs, err := r.getMemberIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	team.MemberIDs = memberIDs
	return team, nil
}

func (r *TeamRepository) CreateTeam(ctx context.Context, team entities.Team, memberIDs []uint64) (*entities.Team, error) {
	created, err := scanTeam(r.storage.QueryRow(ctx,
		`INSERT INTO teams (name, specialization, description) VALUES ($1, $2, $3)
		 RETURNING id, name, specialization, description`,
		team.Name, team.Specialization, team.Description))
	if err != nil {
		return nil, err
	}

	if len(memberIDs) > 0 {
		if err := r.insertMembers(ctx, created.ID, memberIDs); err != nil {
			return nil, err
		}
	}
	created.MemberIDs = append([]uint64{}, memberIDs...)
	return created, nil
}

func (r *TeamRepository) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error) {
	updateBuilder := sq.Update(teamTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id})
	hasChanges := false
	if payload.Name != nil {
		updateBuilder = updateBuilder.Set("name", *payload.Name)
		hasChanges = true
	}
	if payload.Specialization != nil {
		updateBuilder = updateBuilder.Set("specialization", *payload.Specialization)
		hasChanges = true
	}
	if payload.Description != nil {
		updateBuilder = updateBuilder.Set("description", *payload.Description)
		hasChanges = true
	}

	if hasChanges {
		query, args, err := updateBuilder.
			Suffix("RETURNING id, name, specialization, description").
			ToSql()
		if err != nil {
			return nil, err
		}
		if _, err := scanTeam(r.storage.QueryRow(ctx, query, args...)); err != nil {
			return nil, err
		}
	} else {
		// убеждаемся, что команда существует, прежде чем трогать состав
		if _, err := scanTeam(r.storage.QueryRow(ctx,
			`SELECT id, name, specialization, description FROM teams WHERE id = $1`, id)); err != nil {
			return nil, err
		}
	}

	// nil - не трогать; пустой срез - очистить полностью
	if payload.MemberIDs != nil {
		if _, err := r.storage.Exec(ctx, `DELETE FROM team_members WHERE team_id = $1`, id); err != nil {
			return nil, err
		}
		if err := r.insertMembers(ctx, id, *payload.MemberIDs); err != nil {
			return nil, err
		}
	}

	return r.FindTeam(ctx, id)
}

func (r *TeamRepository) getMemberIDs(ctx context.Context, teamID uint64) ([]uint64, error) {
	rows, err := r.storage.Query(ctx, `SELECT user_id FROM team_members WHERE team_id = $1`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *TeamRepository) insertMembers(ctx context.Context, teamID uint64, memberIDs []uint64) error {
	for _, userID := range memberIDs {
		if _, err := r.storage.Exec(ctx,
			`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`, teamID, userID); err != nil {
			return fmt.Errorf("ошибка вставки team_members: %w", err)
		}
	}
	return nil
}
