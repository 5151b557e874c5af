package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/apperr"
	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository reads account records and performs the credit charge.
type UserRepository interface {
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	// ChargeCredit atomically decrements the user's balance by one and
	// increments both usage counters. The balance is re-read inside the
	// transaction; if the decrement would go negative the transaction aborts
	// with apperr.ErrLedgerConflict. This is the authority on the balance
	// invariant -- the handler's optimistic pre-check is advisory only.
	ChargeCredit(ctx context.Context, userID string) (*model.LedgerUpdate, error)
}

type userRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

func (r *userRepo) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	const q = `
		SELECT user_id, email, credits_remaining, total_documents, pages_digitized, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	row := r.pool.QueryRow(ctx, q, userID)
	err := row.Scan(&u.UserID, &u.Email, &u.CreditsRemaining, &u.TotalDocuments, &u.PagesDigitized, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying user %s: %w", userID, err)
	}
	return &u, nil
}

func (r *userRepo) ChargeCredit(ctx context.Context, userID string) (*model.LedgerUpdate, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("starting charge transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var credits, totalDocs, pages int
	const readQ = `
		SELECT credits_remaining, total_documents, pages_digitized
		FROM users
		WHERE user_id = $1
		FOR UPDATE
	`
	if err := tx.QueryRow(ctx, readQ, userID).Scan(&credits, &totalDocs, &pages); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrAccountNotFound
		}
		return nil, fmt.Errorf("reading balance for user %s: %w", userID, err)
	}

	update := &model.LedgerUpdate{
		NewCredits:        credits - 1,
		NewTotalDocuments: totalDocs + 1,
		NewPagesDigitized: pages + 1,
	}
	if update.NewCredits < 0 {
		return nil, apperr.ErrLedgerConflict
	}

	const writeQ = `
		UPDATE users
		SET credits_remaining = $2, total_documents = $3, pages_digitized = $4, updated_at = now()
		WHERE user_id = $1
	`
	if _, err := tx.Exec(ctx, writeQ, userID, update.NewCredits, update.NewTotalDocuments, update.NewPagesDigitized); err != nil {
		return nil, fmt.Errorf("updating ledger for user %s: %w", userID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing charge for user %s: %w", userID, err)
	}
	return update, nil
}
