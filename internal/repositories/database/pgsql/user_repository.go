package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/comfy-credits/backend/internal/apperrors"
	"github.com/comfy-credits/backend/internal/core/domain"
	portsrepo "github.com/comfy-credits/backend/internal/core/ports/repositories"
	"github.com/comfy-credits/backend/internal/models"
	"github.com/comfy-credits/backend/internal/utils/mapping"
	"github.com/comfy-credits/backend/pkg/database"
)

// maxUserSearchLimit caps how many users an admin listing can return.
const maxUserSearchLimit = 100

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool database.PgxPool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (user_id, name, email, password_hash, role, credits_balance, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.Pool.Exec(ctx, query,
		modelUser.UserID,
		modelUser.Name,
		modelUser.Email,
		modelUser.PasswordHash,
		modelUser.Role,
		modelUser.CreditsBalance,
		modelUser.CreatedAt,
		modelUser.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, name, email, password_hash, role, credits_balance, created_at, last_updated_at, deleted_at
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	return r.findUser(ctx, query, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT user_id, name, email, password_hash, role, credits_balance, created_at, last_updated_at, deleted_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL;
	`
	return r.findUser(ctx, query, email)
}

func (r *PgxUserRepository) findUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var modelUser models.User
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&modelUser.UserID,
		&modelUser.Name,
		&modelUser.Email,
		&modelUser.PasswordHash,
		&modelUser.Role,
		&modelUser.CreditsBalance,
		&modelUser.CreatedAt,
		&modelUser.LastUpdatedAt,
		&modelUser.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

// SearchUsers lists users for the admin panel, newest first, annotated with
// workflow run counts. The search term matches name or email, case
// insensitively.
func (r *PgxUserRepository) SearchUsers(ctx context.Context, search string, limit int) ([]domain.UserWithRunCount, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > maxUserSearchLimit {
		limit = maxUserSearchLimit
	}

	args := []interface{}{}
	query := `
        SELECT u.user_id, u.name, u.email, u.password_hash, u.role, u.credits_balance,
               u.created_at, u.last_updated_at, u.deleted_at,
               COUNT(wr.run_id) AS run_count
        FROM users u
        LEFT JOIN workflow_runs wr ON wr.user_id = u.user_id
        WHERE u.deleted_at IS NULL
    `
	if search != "" {
		query += ` AND (u.name ILIKE $1 OR u.email ILIKE $1)`
		args = append(args, "%"+search+"%")
	}
	query += fmt.Sprintf(`
        GROUP BY u.user_id
        ORDER BY u.created_at DESC
        LIMIT $%d;
    `, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.UserWithRunCount{}
	for rows.Next() {
		var modelUser models.User
		var runCount int64
		err := rows.Scan(
			&modelUser.UserID,
			&modelUser.Name,
			&modelUser.Email,
			&modelUser.PasswordHash,
			&modelUser.Role,
			&modelUser.CreditsBalance,
			&modelUser.CreatedAt,
			&modelUser.LastUpdatedAt,
			&modelUser.DeletedAt,
			&runCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, domain.UserWithRunCount{
			User:     mapping.ToDomainUser(modelUser),
			RunCount: runCount,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}

	return users, nil
}
