package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/laramoda/storefront-api/internal/model"
)

type OrderHistoryRepository interface {
	Record(ctx context.Context, change *model.OrderStatusChange) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderStatusChange, error)
}

type pgOrderHistoryRepo struct{ pool *pgxpool.Pool }

func NewOrderHistoryRepository(pool *pgxpool.Pool) OrderHistoryRepository {
	return &pgOrderHistoryRepo{pool: pool}
}

func (r *pgOrderHistoryRepo) Record(ctx context.Context, change *model.OrderStatusChange) error {
	change.ID = uuid.New()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO order_status_history (id, order_id, from_status, to_status, changed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		change.ID, change.OrderID, change.FromStatus, change.ToStatus, change.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("record status change: %w", err)
	}
	return nil
}

func (r *pgOrderHistoryRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderStatusChange, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, from_status, to_status, changed_at
		 FROM order_status_history WHERE order_id = $1 ORDER BY changed_at`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list status changes: %w", err)
	}
	defer rows.Close()

	var changes []model.OrderStatusChange
	for rows.Next() {
		var c model.OrderStatusChange
		if err := rows.Scan(&c.ID, &c.OrderID, &c.FromStatus, &c.ToStatus, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}
