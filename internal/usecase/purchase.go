package usecase

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// IdentityResolver maps an auth token to a user id.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (int64, error)
}

// PurchaseUseCase turns purchase requests into committed orders.
// It keeps no state between calls; stock safety is enforced by the checkout store.
type PurchaseUseCase struct {
	resolver IdentityResolver
	products repository.ProductRepository
	lines    repository.PurchaseLineRepository
	checkout repository.CheckoutRepository
}

// NewPurchaseUseCase constructs PurchaseUseCase.
func NewPurchaseUseCase(
	resolver IdentityResolver,
	products repository.ProductRepository,
	lines repository.PurchaseLineRepository,
	checkout repository.CheckoutRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{resolver: resolver, products: products, lines: lines, checkout: checkout}
}

// normalizeQuantity treats non-positive quantities as a single unit.
func normalizeQuantity(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}

// PurchaseOne buys a single product for the token owner.
func (u *PurchaseUseCase) PurchaseOne(ctx context.Context, token string, productID int64, quantity int) (*model.LineResult, error) {
	userID, err := u.resolver.ResolveIdentity(ctx, token)
	if err != nil {
		return nil, err
	}

	results, err := u.purchase(ctx, userID, []model.PurchaseItem{{ProductID: productID, Quantity: quantity}})
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// PurchaseMany buys all items in one order or none of them.
// Results follow the input order.
func (u *PurchaseUseCase) PurchaseMany(ctx context.Context, token string, items []model.PurchaseItem) ([]model.LineResult, error) {
	userID, err := u.resolver.ResolveIdentity(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no products provided: %w", domainErrors.ErrInvalidRequest)
	}
	return u.purchase(ctx, userID, items)
}

func (u *PurchaseUseCase) purchase(ctx context.Context, userID int64, items []model.PurchaseItem) ([]model.LineResult, error) {
	drafts, err := u.validate(ctx, items)
	if err != nil {
		return nil, err
	}

	receipt, err := u.checkout.Checkout(ctx, userID, drafts)
	if err != nil {
		return nil, err
	}

	// The view comes from the commit's own read so title and price agree.
	results := make([]model.LineResult, 0, len(receipt.Lines))
	for _, line := range receipt.Lines {
		snapshot := receipt.Products[line.ProductID]
		snapshot.Price = line.PriceAtPurchase
		results = append(results, model.LineResult{
			LineID:      line.ID,
			OrderID:     receipt.Order.ID,
			ProductID:   line.ProductID,
			Product:     snapshot,
			Quantity:    line.Quantity,
			PurchasedAt: line.CreatedAt,
		})
	}
	return results, nil
}

// validate checks every item against the current catalog without mutating it.
// The first failing item in input order decides the error.
// Stock is compared per item; repeated products are summed again under the commit lock.
func (u *PurchaseUseCase) validate(ctx context.Context, items []model.PurchaseItem) ([]model.LineDraft, error) {
	drafts := make([]model.LineDraft, 0, len(items))

	for _, item := range items {
		quantity := normalizeQuantity(item.Quantity)

		p, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.NewItemError(item.ProductID, "", domainErrors.ErrNotFound)
			}
			return nil, fmt.Errorf("load product %d: %w", item.ProductID, err)
		}
		if p.Quantity < quantity {
			return nil, domainErrors.NewItemError(p.ID, p.Title, domainErrors.ErrInsufficientStock)
		}

		drafts = append(drafts, model.LineDraft{ProductID: p.ID, Title: p.Title, Quantity: quantity})
	}

	return drafts, nil
}

// History returns the token owner's purchases newest first with current product details.
func (u *PurchaseUseCase) History(ctx context.Context, token string) ([]model.LineResult, error) {
	userID, err := u.resolver.ResolveIdentity(ctx, token)
	if err != nil {
		return nil, err
	}

	lines, err := u.lines.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cache := make(map[int64]*model.Product)
	results := make([]model.LineResult, 0, len(lines))
	for _, line := range lines {
		p, ok := cache[line.ProductID]
		if !ok {
			p, err = u.products.GetByID(ctx, line.ProductID)
			if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
				return nil, err
			}
			cache[line.ProductID] = p
		}

		snapshot := model.ProductSnapshot{Title: model.UnavailableProductTitle}
		if p != nil {
			snapshot = model.ProductSnapshot{
				Title:       p.Title,
				Description: p.Description,
				Price:       p.Price,
				ImageURL:    p.ImageURL,
			}
		}

		results = append(results, model.LineResult{
			LineID:      line.ID,
			OrderID:     line.OrderID,
			ProductID:   line.ProductID,
			Product:     snapshot,
			Quantity:    line.Quantity,
			PurchasedAt: line.CreatedAt,
		})
	}
	return results, nil
}
