package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const userTable = "users"

const userSelectFields = `id, username, email, password, name, role, department_id, is_active, created_at, reset_token, reset_token_expiry`

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context) ([]entities.User, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByUsername(ctx context.Context, username string) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	FindUserByResetToken(ctx context.Context, token string) (*entities.User, error)
	CreateUser(ctx context.Context, user entities.User, teamIDs []uint64) (*entities.User, error)
	UpdateUser(ctx context.Context, user entities.User) (*entities.User, error)
	UpdateResetToken(ctx context.Context, id uint64, token *string, expiry *time.Time) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	GetTeamIDs(ctx context.Context, userID uint64) ([]uint64, error)
	ReplaceTeamMemberships(ctx context.Context, userID uint64, teamIDs []uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.Name, &u.Role,
		&u.DepartmentID, &u.IsActive, &u.CreatedAt, &u.ResetToken, &u.ResetTokenExpiry,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}
	return &u, nil
}

// mapUserConflict переводит нарушение уникальности в полевую ошибку,
// чтобы клиент знал, какой именно input занят.
func mapUserConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "users_username_key") {
			return apperrors.NewFieldConflictError("username", "Имя пользователя уже занято.", err)
		}
		if strings.Contains(pgErr.ConstraintName, "users_email_key") {
			return apperrors.NewFieldConflictError("email", "Email уже используется.", err)
		}
		return fmt.Errorf("конфликт уникальности users: %w", apperrors.ErrConflict)
	}
	return err
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, userSelectFields, userTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userSelectFields, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE username = $1`, userSelectFields, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, username))
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1`, userSelectFields, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

// FindUserByResetToken ищет пользователя по НЕистёкшему токену сброса.
func (r *UserRepository) FindUserByResetToken(ctx context.Context, token string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE reset_token = $1 AND reset_token_expiry > NOW()`, userSelectFields, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, token))
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User, teamIDs []uint64) (*entities.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (username, email, password, name, role, department_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, userTable, userSelectFields)

	created, err := scanUser(r.storage.QueryRow(ctx, query,
		user.Username, user.Email, user.Password, user.Name, user.Role,
		user.DepartmentID, user.IsActive,
	))
	if err != nil {
		return nil, mapUserConflict(err)
	}

	if len(teamIDs) > 0 {
		if err := r.insertTeamMemberships(ctx, r.storage, created.ID, teamIDs); err != nil {
			return nil, err
		}
	}
	return created, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET username = $1, email = $2, name = $3, role = $4,
			department_id = $5, is_active = $6
		WHERE id = $7
		RETURNING %s`, userTable, userSelectFields)

	updated, err := scanUser(r.storage.QueryRow(ctx, query,
		user.Username, user.Email, user.Name, user.Role,
		user.DepartmentID, user.IsActive, user.ID,
	))
	if err != nil {
		return nil, mapUserConflict(err)
	}
	return updated, nil
}

func (r *UserRepository) UpdateResetToken(ctx context.Context, id uint64, token *string, expiry *time.Time) error {
	query := `UPDATE users SET reset_token = $1, reset_token_expiry = $2 WHERE id = $3`
	result, err := r.storage.Exec(ctx, query, token, expiry, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdatePassword ставит новый хеш и гасит токен сброса (одноразовость).
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	query := `UPDATE users SET password = $1, reset_token = NULL, reset_token_expiry = NULL WHERE id = $2`
	result, err := r.storage.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) GetTeamIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	rows, err := r.storage.Query(ctx, `SELECT team_id FROM team_members WHERE user_id = $1`, userID)
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

// ReplaceTeamMemberships - полная замена членств: delete-all, затем insert-all.
func (r *UserRepository) ReplaceTeamMemberships(ctx context.Context, userID uint64, teamIDs []uint64) error {
	if _, err := r.storage.Exec(ctx, `DELETE FROM team_members WHERE user_id = $1`, userID); err != nil {
		return err
	}
	return r.insertTeamMemberships(ctx, r.storage, userID, teamIDs)
}

func (r *UserRepository) insertTeamMemberships(ctx context.Context, q querier, userID uint64, teamIDs []uint64) error {
	for _, teamID := range teamIDs {
		if _, err := q.Exec(ctx, `INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`, teamID, userID); err != nil {
			return fmt.Errorf("ошибка вставки team_members: %w", err)
		}
	}
	return nil
}
