package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tableside/internal/domain"
)

// RepositoryInterface is the order store: header and line writes for the
// submission path, status and listing for the staff side. Each call is a
// single independent remote write; the saga in the coordinator, not a
// database transaction, decides what a failure means.
type RepositoryInterface interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (int, error)
	CreateOrderLine(ctx context.Context, req domain.OrderLineRequest) (int, error)
	DeleteOrder(ctx context.Context, orderID int) error
	GetOrder(ctx context.Context, orderID int) (domain.Order, error)
	SetOrderStatus(ctx context.Context, orderID int, confirmed bool) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository { return &Repository{db: db} }

func (r *Repository) CreateOrder(ctx context.Context, req domain.OrderRequest) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO orders (customer_id, table_number, is_confirmed)
		VALUES ($1, $2, NULLIF($3, false))
		RETURNING id
	`, req.CustomerID, req.TableNumber, req.IsConfirmed).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}
	return id, nil
}

func (r *Repository) CreateOrderLine(ctx context.Context, req domain.OrderLineRequest) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO order_lines (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`, req.OrderID, req.ProductID, req.Quantity).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order line: %w", err)
	}
	return id, nil
}

// DeleteOrder removes a header and, via cascade, any lines that made it in.
// Only the compensation path uses it.
func (r *Repository) DeleteOrder(ctx context.Context, orderID int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", orderID, err)
	}
	return nil
}

func (r *Repository) GetOrder(ctx context.Context, orderID int) (domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_id, table_number, is_confirmed, created_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&o.ID, &o.CustomerID, &o.TableNumber, &o.IsConfirmed, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}
	return o, nil
}

// SetOrderStatus applies a review transition. The update only matches
// orders still pending, so confirmed and rejected stay terminal.
func (r *Repository) SetOrderStatus(ctx context.Context, orderID int, confirmed bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET is_confirmed = $2
		WHERE id = $1 AND is_confirmed IS NULL
	`, orderID, confirmed)
	if err != nil {
		return fmt.Errorf("failed to update order %d status: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetOrder(ctx, orderID); err != nil {
			return err
		}
		return domain.ErrOrderFinalized
	}
	return nil
}

func (r *Repository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, customer_id, table_number, is_confirmed, created_at
		FROM orders ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.TableNumber, &o.IsConfirmed, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
