package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Subscriber is a registered webhook consumer of the event log.
type Subscriber struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	URL       string    `json:"url"`
	Kinds     []string  `json:"kinds"`
	CreatedAt time.Time `json:"created_at"`
}

type SubscriberRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriberRepo(pool *pgxpool.Pool) *SubscriberRepo {
	return &SubscriberRepo{pool: pool}
}

func (r *SubscriberRepo) Create(ctx context.Context, accountID uuid.UUID, url string, kinds []string) (*Subscriber, error) {
	s := &Subscriber{AccountID: accountID, URL: url, Kinds: kinds}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO event_subscribers (account_id, url, kinds)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, accountID, url, kinds).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListByKind returns every subscriber interested in the given event kind.
// An empty kinds array means "all kinds".
func (r *SubscriberRepo) ListByKind(ctx context.Context, kind string) ([]*Subscriber, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, url, kinds, created_at
		FROM event_subscribers
		WHERE kinds = '{}' OR $1 = ANY(kinds)
	`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*Subscriber
	for rows.Next() {
		var s Subscriber
		if err := rows.Scan(&s.ID, &s.AccountID, &s.URL, &s.Kinds, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListByAccount returns the subscriptions registered by one account.
func (r *SubscriberRepo) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Subscriber, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, url, kinds, created_at
		FROM event_subscribers
		WHERE account_id = $1
		ORDER BY created_at
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*Subscriber
	for rows.Next() {
		var s Subscriber
		if err := rows.Scan(&s.ID, &s.AccountID, &s.URL, &s.Kinds, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SubscriberRepo) Delete(ctx context.Context, id, accountID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM event_subscribers WHERE id = $1 AND account_id = $2
	`, id, accountID)
	return err
}
