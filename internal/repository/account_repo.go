package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayledger/backend/internal/models"
)

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var a models.Account
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, display_name, role, balance_cents, created_at
		FROM accounts WHERE id = $1
	`, id).Scan(&a.ID, &a.Email, &a.DisplayName, &a.Role, &a.BalanceCents, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ApplyTransfer credits an outbound ledger transfer (payout, refund or
// change) to the recipient's account. Implements executor.Accounts.
func (r *AccountRepo) ApplyTransfer(ctx context.Context, t models.Transfer) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts SET balance_cents = balance_cents + $1 WHERE id = $2
	`, t.Amount, t.To)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transfer recipient %s has no account", t.To)
	}
	return nil
}
