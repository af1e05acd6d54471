package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/comfy-credits/backend/internal/apperrors"
	"github.com/comfy-credits/backend/internal/core/domain"
	portsrepo "github.com/comfy-credits/backend/internal/core/ports/repositories"
	"github.com/comfy-credits/backend/internal/middleware"
	"github.com/comfy-credits/backend/internal/models"
	"github.com/comfy-credits/backend/internal/utils/mapping"
	"github.com/comfy-credits/backend/internal/utils/pagination"
	"github.com/comfy-credits/backend/pkg/database"
)

// uniqueViolationCode is the PostgreSQL error code for unique constraint violations.
const uniqueViolationCode = "23505"

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool database.PgxPool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// AppendEntry atomically applies the entry's delta to the user's balance and
// inserts the matching ledger row. The user row is locked for the duration of
// the transaction so concurrent adjustments serialize; the balance can never
// go below zero.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, entry domain.CreditEntry) (*domain.CreditEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.Error("Failed to rollback transaction in AppendEntry", "error", rbErr)
		}
	}()

	lockQuery := `
		SELECT credits_balance
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL
		FOR UPDATE;
	`
	var currentBalance int64
	err = tx.QueryRow(ctx, lockQuery, entry.UserID).Scan(&currentBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock user row for %s: %w", entry.UserID, err)
	}

	newBalance := currentBalance + entry.Delta
	if newBalance < 0 {
		return nil, apperrors.ErrInsufficientBalance
	}

	updateQuery := `
		UPDATE users
		SET credits_balance = $1, last_updated_at = $2
		WHERE user_id = $3;
	`
	now := time.Now()
	_, err = tx.Exec(ctx, updateQuery, newBalance, now, entry.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance for user %s: %w", entry.UserID, err)
	}

	entry.ResultingBalance = newBalance
	entry.CreatedAt = now
	modelEntry := mapping.ToModelCreditEntry(entry)

	insertQuery := `
		INSERT INTO credit_entries (entry_id, user_id, delta, resulting_balance, kind, description, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelEntry.EntryID,
		modelEntry.UserID,
		modelEntry.Delta,
		modelEntry.ResultingBalance,
		modelEntry.Kind,
		modelEntry.Description,
		modelEntry.ActorID,
		modelEntry.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		// The partial unique index on welcome entries turns a repeated grant
		// into a duplicate violation.
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert credit entry: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *PgxLedgerRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT credits_balance
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	var balance int64
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to get balance for user %s: %w", userID, err)
	}
	return balance, nil
}

// ListEntries returns a page of ledger entries for the user, newest first.
// Keyset pagination over (created_at, entry_id) keeps pages stable while new
// entries are appended.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.CreditEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []interface{}{userID}
	query := `
		SELECT entry_id, user_id, delta, resulting_balance, kind, description, actor_id, created_at
		FROM credit_entries
		WHERE user_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` AND (created_at, entry_id) < ($2, $3)`
		args = append(args, cursorTime, cursorID)
	}
	// Fetch one extra row to detect whether another page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC, entry_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query credit entries for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelEntries := []models.CreditEntry{}
	for rows.Next() {
		var m models.CreditEntry
		err := rows.Scan(
			&m.EntryID,
			&m.UserID,
			&m.Delta,
			&m.ResultingBalance,
			&m.Kind,
			&m.Description,
			&m.ActorID,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan credit entry row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating credit entry rows: %w", rows.Err())
	}

	var newNextToken *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[len(modelEntries)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		newNextToken = &token
	}

	return mapping.ToDomainCreditEntrySlice(modelEntries), newNextToken, nil
}
