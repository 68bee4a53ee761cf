package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

type lineRepository struct {
	storage *Storage
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	const query = `SELECT id, user_id, total_amount, status, created_at
                   FROM orders ORDER BY created_at DESC, id DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) CountSince(ctx context.Context, since *time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE ($1::timestamptz IS NULL OR created_at >= $1)`
	var n int64
	if err := r.storage.pool.QueryRow(ctx, query, since).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *orderRepository) SumRevenueSince(ctx context.Context, since *time.Time, status model.OrderStatus) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(total_amount), 0) FROM orders
                   WHERE status = $1 AND ($2::timestamptz IS NULL OR created_at >= $2)`
	var sum decimal.Decimal
	if err := r.storage.pool.QueryRow(ctx, query, status, since).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

const lineColumns = `id, order_id, product_id, user_id, quantity, price_at_purchase, created_at`

func (r *lineRepository) ListByUser(ctx context.Context, userID int64) ([]model.PurchaseLine, error) {
	const query = `SELECT ` + lineColumns + ` FROM purchase_lines WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *lineRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.PurchaseLine, error) {
	const query = `SELECT ` + lineColumns + ` FROM purchase_lines WHERE order_id=$1 ORDER BY id`
	return r.list(ctx, query, orderID)
}

func (r *lineRepository) list(ctx context.Context, query string, args ...any) ([]model.PurchaseLine, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PurchaseLine
	for rows.Next() {
		var l model.PurchaseLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.UserID, &l.Quantity, &l.PriceAtPurchase, &l.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *lineRepository) SalesByProduct(ctx context.Context, since *time.Time) ([]model.ProductSales, error) {
	const query = `SELECT product_id, SUM(quantity) AS sold, SUM(price_at_purchase * quantity) AS revenue
                   FROM purchase_lines
                   WHERE ($1::timestamptz IS NULL OR created_at >= $1)
                   GROUP BY product_id
                   ORDER BY sold DESC, product_id`
	rows, err := r.storage.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ProductSales
	for rows.Next() {
		var s model.ProductSales
		if err := rows.Scan(&s.ProductID, &s.Quantity, &s.Revenue); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *lineRepository) TotalItemsSold(ctx context.Context, since *time.Time) (int64, error) {
	const query = `SELECT COALESCE(SUM(quantity), 0) FROM purchase_lines WHERE ($1::timestamptz IS NULL OR created_at >= $1)`
	var n int64
	if err := r.storage.pool.QueryRow(ctx, query, since).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
