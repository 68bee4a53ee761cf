package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type checkoutRepository struct {
	storage *Storage
}

type lockedProduct struct {
	title       string
	description string
	imageURL    string
	price       decimal.Decimal
	quantity    int
}

// Checkout writes the order, its lines and the stock debits in one transaction.
// Product rows are locked in id order before any write.
func (r *checkoutRepository) Checkout(ctx context.Context, userID int64, drafts []model.LineDraft) (*model.Receipt, error) {
	if len(drafts) == 0 {
		return nil, domainErrors.ErrInvalidRequest
	}

	var receipt *model.Receipt
	err := r.storage.withRetry(ctx, "checkout", func(tx pgx.Tx) error {
		var err error
		receipt, err = r.checkoutTx(ctx, tx, userID, drafts)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.storage.logger.Debug("checkout committed",
		slog.Int64("order_id", receipt.Order.ID),
		slog.Int64("user_id", userID),
		slog.Int("lines", len(receipt.Lines)),
	)
	return receipt, nil
}

func (r *checkoutRepository) checkoutTx(ctx context.Context, tx pgx.Tx, userID int64, drafts []model.LineDraft) (*model.Receipt, error) {
	locked, err := lockProducts(ctx, tx, drafts)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	demand := make(map[int64]int, len(locked))
	for _, d := range drafts {
		p, ok := locked[d.ProductID]
		if !ok {
			return nil, domainErrors.NewItemError(d.ProductID, "", domainErrors.ErrNotFound)
		}
		demand[d.ProductID] += d.Quantity
		if demand[d.ProductID] > p.quantity {
			return nil, domainErrors.NewItemError(d.ProductID, p.title, domainErrors.ErrInsufficientStock)
		}
		total = total.Add(p.price.Mul(decimal.NewFromInt(int64(d.Quantity))))
	}

	const insertOrder = `INSERT INTO orders (user_id, total_amount, status) VALUES ($1, $2, $3) RETURNING id, created_at`
	order := model.Order{UserID: userID, TotalAmount: total, Status: model.OrderStatusCompleted}
	if err := tx.QueryRow(ctx, insertOrder, userID, total, order.Status).Scan(&order.ID, &order.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	const debitStock = `UPDATE products SET quantity = quantity - $1, updated_at = NOW() WHERE id = $2 AND quantity >= $1`
	const insertLine = `INSERT INTO purchase_lines (order_id, product_id, user_id, quantity, price_at_purchase)
                        VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`

	lines := make([]model.PurchaseLine, 0, len(drafts))
	for _, d := range drafts {
		p := locked[d.ProductID]

		tag, err := tx.Exec(ctx, debitStock, d.Quantity, d.ProductID)
		if err != nil {
			if hasCode(err, pgCheckViolation) {
				return nil, domainErrors.NewItemError(d.ProductID, p.title, domainErrors.ErrInsufficientStock)
			}
			return nil, fmt.Errorf("debit stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, domainErrors.NewItemError(d.ProductID, p.title, domainErrors.ErrInsufficientStock)
		}

		line := model.PurchaseLine{
			OrderID:         order.ID,
			ProductID:       d.ProductID,
			UserID:          userID,
			Quantity:        d.Quantity,
			PriceAtPurchase: p.price,
		}
		if err := tx.QueryRow(ctx, insertLine, order.ID, d.ProductID, userID, d.Quantity, p.price).Scan(&line.ID, &line.CreatedAt); err != nil {
			return nil, fmt.Errorf("insert purchase line: %w", err)
		}
		lines = append(lines, line)
	}

	products := make(map[int64]model.ProductSnapshot, len(locked))
	for id, p := range locked {
		products[id] = model.ProductSnapshot{Title: p.title, Description: p.description, Price: p.price, ImageURL: p.imageURL}
	}
	return &model.Receipt{Order: order, Lines: lines, Products: products}, nil
}

func lockProducts(ctx context.Context, tx pgx.Tx, drafts []model.LineDraft) (map[int64]lockedProduct, error) {
	ids := make([]int64, 0, len(drafts))
	for _, d := range drafts {
		ids = append(ids, d.ProductID)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	const query = `SELECT id, title, description, image_url, price, quantity FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	defer rows.Close()

	locked := make(map[int64]lockedProduct, len(ids))
	for rows.Next() {
		var (
			id int64
			p  lockedProduct
		)
		if err := rows.Scan(&id, &p.title, &p.description, &p.imageURL, &p.price, &p.quantity); err != nil {
			return nil, fmt.Errorf("lock products: %w", err)
		}
		locked[id] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}
	return locked, nil
}
