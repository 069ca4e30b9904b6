package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"canteenWeb/internal/modules/cart/application/port"
	"canteenWeb/internal/modules/cart/domain"
)

const cartSchema = `
CREATE TABLE IF NOT EXISTS carts (
	user_id     TEXT PRIMARY KEY,
	items       JSONB NOT NULL DEFAULT '[]',
	items_total NUMERIC NOT NULL DEFAULT 0,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps one row per user with the cart items as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// NewPostgresStore creates the carts table when it does not exist yet.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, cartSchema); err != nil {
		return nil, fmt.Errorf("create carts table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanCart(ctx context.Context, q rowQuerier, query, userID string) (*domain.Cart, error) {
	var itemsJSON []byte
	err := q.QueryRow(ctx, query, userID).Scan(&itemsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.New(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	cart := domain.New(userID)
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
		}
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}

func (s *PostgresStore) Load(ctx context.Context, userID string) (*domain.Cart, error) {
	return scanCart(ctx, s.pool, `SELECT items FROM carts WHERE user_id = $1`, userID)
}

// Update locks the user's row for the duration of fn so concurrent requests apply one after another.
func (s *PostgresStore) Update(ctx context.Context, userID string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cart tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Make sure a row exists so FOR UPDATE has something to lock.
	if _, err := tx.Exec(ctx, `INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		return nil, fmt.Errorf("ensure cart row: %w", err)
	}
	cart, err := scanCart(ctx, tx, `SELECT items FROM carts WHERE user_id = $1 FOR UPDATE`, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		_, err = tx.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	} else {
		itemsJSON, marshalErr := json.Marshal(cart.Items)
		if marshalErr != nil {
			return nil, fmt.Errorf("failed to marshal cart items: %w", marshalErr)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO carts (user_id, items, items_total, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (user_id) DO UPDATE SET
				items = $2,
				items_total = $3,
				updated_at = now()`,
			userID, itemsJSON, cart.Total().InexactFloat64(),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cart tx: %w", err)
	}
	return cart, nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

var _ port.Store = (*PostgresStore)(nil)
