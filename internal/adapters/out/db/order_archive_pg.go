package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	orderdom "quickcart/internal/domain/order"
)

// OrderArchivePG mirrors confirmed orders into Postgres for reporting. The
// remote store stays the system of record; the mirror is written best-effort
// after checkout and a failure never fails the order.
type OrderArchivePG struct {
	DB *sql.DB
}

func NewOrderArchivePG(db *sql.DB) *OrderArchivePG {
	return &OrderArchivePG{DB: db}
}

// Schema is applied at startup; idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS order_archive (
    order_id     BIGINT PRIMARY KEY,
    order_number TEXT NOT NULL,
    order_date   TIMESTAMPTZ NOT NULL,
    status       TEXT NOT NULL,
    total_amount NUMERIC(12,2) NOT NULL,
    items        JSONB NOT NULL,
    archived_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Init creates the archive table if missing.
func (a *OrderArchivePG) Init(ctx context.Context) error {
	if a == nil || a.DB == nil {
		return errors.New("order_archive_pg: db is nil")
	}
	if _, err := a.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("order_archive_pg: init schema: %w", err)
	}
	return nil
}

// Archive inserts one order. Replays of the same order id are ignored, so the
// caller may retry freely.
func (a *OrderArchivePG) Archive(ctx context.Context, o orderdom.Order) error {
	if a == nil || a.DB == nil {
		return errors.New("order_archive_pg: db is nil")
	}
	if o.ID <= 0 {
		return errors.New("order_archive_pg: order id is required")
	}

	items, err := orderdom.EncodeItems(o.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO order_archive (order_id, order_number, order_date, status, total_amount, items)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (order_id) DO NOTHING`

	if _, err := a.DB.ExecContext(ctx, query,
		o.ID, o.Number, o.OrderDate, o.Status, o.TotalAmount, items,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("order_archive_pg: insert (%s): %w", pqErr.Code.Name(), err)
		}
		return fmt.Errorf("order_archive_pg: insert: %w", err)
	}
	return nil
}
