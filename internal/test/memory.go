package test

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// Store is an in-memory implementation of every repository contract.
// Checkout holds the store lock for the whole commit so concurrent
// purchases observe the same atomicity a database transaction gives.
type Store struct {
	mu sync.Mutex

	users      map[int64]model.User
	products   map[int64]model.Product
	categories map[int64]model.Category
	orders     []model.Order
	lines      []model.PurchaseLine

	nextUser, nextProduct, nextCategory, nextOrder, nextLine int64

	// Now stamps created records; time.Now when nil.
	Now func() time.Time
	// CheckoutErr, when set, makes Checkout fail without side effects.
	CheckoutErr error
	// BeforeCheckout runs after validation reads and before the commit lock.
	BeforeCheckout func()
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:      make(map[int64]model.User),
		products:   make(map[int64]model.Product),
		categories: make(map[int64]model.Category),
	}
}

var _ repository.Factory = (*Store)(nil)

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AddUser stores u, assigning an id when zero.
func (s *Store) AddUser(u model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		s.nextUser++
		u.ID = s.nextUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.users[u.ID] = u
	return u
}

// DeleteUser removes a user, leaving their orders in place.
func (s *Store) DeleteUser(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// AddCategory stores c, assigning an id when zero.
func (s *Store) AddCategory(c model.Category) model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		s.nextCategory++
		c.ID = s.nextCategory
	}
	s.categories[c.ID] = c
	return c
}

// AddProduct stores p, assigning an id when zero.
func (s *Store) AddProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		s.nextProduct++
		p.ID = s.nextProduct
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
		p.UpdatedAt = p.CreatedAt
	}
	s.products[p.ID] = p
	return p
}

// SetQuantity overwrites the stock of a product.
func (s *Store) SetQuantity(id int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		p.Quantity = quantity
		s.products[id] = p
	}
}

// DeleteProduct removes a product, leaving purchase history in place.
func (s *Store) DeleteProduct(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
}

// Product returns the stored product.
func (s *Store) Product(id int64) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	return p, ok
}

// OrderRecords returns a copy of all orders in creation order.
func (s *Store) OrderRecords() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.orders)
}

// LineRecords returns a copy of all purchase lines in creation order.
func (s *Store) LineRecords() []model.PurchaseLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

// SeedOrder records a historical order with its lines as given.
// The order total is derived from the lines.
func (s *Store) SeedOrder(userID int64, createdAt time.Time, lines ...model.PurchaseLine) model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOrder++
	order := model.Order{
		ID:          s.nextOrder,
		UserID:      userID,
		TotalAmount: decimal.Zero,
		Status:      model.OrderStatusCompleted,
		CreatedAt:   createdAt,
	}
	for _, l := range lines {
		s.nextLine++
		l.ID = s.nextLine
		l.OrderID = order.ID
		l.UserID = userID
		l.CreatedAt = createdAt
		order.TotalAmount = order.TotalAmount.Add(l.Subtotal())
		s.lines = append(s.lines, l)
	}
	s.orders = append(s.orders, order)
	return order
}

// Factory methods.
func (s *Store) Users() repository.UserRepository          { return memUsers{s} }
func (s *Store) Products() repository.ProductRepository    { return memProducts{s} }
func (s *Store) Categories() repository.CategoryRepository { return memCategories{s} }
func (s *Store) Orders() repository.OrderRepository        { return memOrders{s} }
func (s *Store) Lines() repository.PurchaseLineRepository  { return memLines{s} }
func (s *Store) Checkout() repository.CheckoutRepository   { return memCheckout{s} }

func inWindow(ts time.Time, since *time.Time) bool {
	return since == nil || !ts.Before(*since)
}

type memUsers struct{ s *Store }

func (r memUsers) Create(_ context.Context, user model.User) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	r.s.nextUser++
	user.ID = r.s.nextUser
	user.CreatedAt = r.s.now()
	r.s.users[user.ID] = user
	return &user, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (r memUsers) CountSince(_ context.Context, since *time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, u := range r.s.users {
		if inWindow(u.CreatedAt, since) {
			n++
		}
	}
	return n, nil
}

type memProducts struct{ s *Store }

func (r memProducts) GetByID(_ context.Context, id int64) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (r memProducts) List(_ context.Context) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]model.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		result = append(result, p)
	}
	slices.SortFunc(result, func(a, b model.Product) int { return cmp.Compare(a.ID, b.ID) })
	return result, nil
}

func (r memProducts) ListBelowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	all, _ := r.List(ctx)
	result := make([]model.Product, 0)
	for _, p := range all {
		if p.Quantity < threshold {
			result = append(result, p)
		}
	}
	slices.SortStableFunc(result, func(a, b model.Product) int { return cmp.Compare(a.Quantity, b.Quantity) })
	return result, nil
}

func (r memProducts) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.products)), nil
}

func (r memProducts) CountBelowStock(ctx context.Context, threshold int) (int64, error) {
	low, _ := r.ListBelowStock(ctx, threshold)
	return int64(len(low)), nil
}

func (r memProducts) CountOutOfStock(ctx context.Context) (int64, error) {
	low, _ := r.ListBelowStock(ctx, 1)
	return int64(len(low)), nil
}

type memCategories struct{ s *Store }

func (r memCategories) GetByID(_ context.Context, id int64) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.categories[id]; ok {
		return &c, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (r memCategories) List(_ context.Context) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make([]model.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		result = append(result, c)
	}
	slices.SortFunc(result, func(a, b model.Category) int { return cmp.Compare(a.ID, b.ID) })
	return result, nil
}

type memOrders struct{ s *Store }

func (r memOrders) ListRecent(_ context.Context, limit int) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := slices.Clone(r.s.orders)
	slices.SortStableFunc(result, func(a, b model.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if limit < len(result) {
		result = result[:max(limit, 0)]
	}
	return result, nil
}

func (r memOrders) CountSince(_ context.Context, since *time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, o := range r.s.orders {
		if inWindow(o.CreatedAt, since) {
			n++
		}
	}
	return n, nil
}

func (r memOrders) SumRevenueSince(_ context.Context, since *time.Time, status model.OrderStatus) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, o := range r.s.orders {
		if o.Status == status && inWindow(o.CreatedAt, since) {
			sum = sum.Add(o.TotalAmount)
		}
	}
	return sum, nil
}

type memLines struct{ s *Store }

func (r memLines) ListByUser(_ context.Context, userID int64) ([]model.PurchaseLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []model.PurchaseLine
	for i := len(r.s.lines) - 1; i >= 0; i-- {
		if r.s.lines[i].UserID == userID {
			result = append(result, r.s.lines[i])
		}
	}
	return result, nil
}

func (r memLines) ListByOrder(_ context.Context, orderID int64) ([]model.PurchaseLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []model.PurchaseLine
	for _, l := range r.s.lines {
		if l.OrderID == orderID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (r memLines) SalesByProduct(_ context.Context, since *time.Time) ([]model.ProductSales, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byProduct := make(map[int64]*model.ProductSales)
	for _, l := range r.s.lines {
		if !inWindow(l.CreatedAt, since) {
			continue
		}
		agg, ok := byProduct[l.ProductID]
		if !ok {
			agg = &model.ProductSales{ProductID: l.ProductID, Revenue: decimal.Zero}
			byProduct[l.ProductID] = agg
		}
		agg.Quantity += int64(l.Quantity)
		agg.Revenue = agg.Revenue.Add(l.Subtotal())
	}
	result := make([]model.ProductSales, 0, len(byProduct))
	for _, agg := range byProduct {
		result = append(result, *agg)
	}
	slices.SortFunc(result, func(a, b model.ProductSales) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}
		return cmp.Compare(a.ProductID, b.ProductID)
	})
	return result, nil
}

func (r memLines) TotalItemsSold(_ context.Context, since *time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, l := range r.s.lines {
		if inWindow(l.CreatedAt, since) {
			n += int64(l.Quantity)
		}
	}
	return n, nil
}

type memCheckout struct{ s *Store }

func (r memCheckout) Checkout(ctx context.Context, userID int64, drafts []model.LineDraft) (*model.Receipt, error) {
	if len(drafts) == 0 {
		return nil, domainErrors.ErrInvalidRequest
	}
	if r.s.BeforeCheckout != nil {
		r.s.BeforeCheckout()
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.s.CheckoutErr != nil {
		return nil, r.s.CheckoutErr
	}

	demand := make(map[int64]int, len(drafts))
	total := decimal.Zero
	for _, d := range drafts {
		p, ok := r.s.products[d.ProductID]
		if !ok {
			return nil, domainErrors.NewItemError(d.ProductID, "", domainErrors.ErrNotFound)
		}
		demand[d.ProductID] += d.Quantity
		if demand[d.ProductID] > p.Quantity {
			return nil, domainErrors.NewItemError(d.ProductID, p.Title, domainErrors.ErrInsufficientStock)
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(d.Quantity))))
	}

	now := r.s.now()
	r.s.nextOrder++
	order := model.Order{ID: r.s.nextOrder, UserID: userID, TotalAmount: total, Status: model.OrderStatusCompleted, CreatedAt: now}

	lines := make([]model.PurchaseLine, 0, len(drafts))
	snapshots := make(map[int64]model.ProductSnapshot, len(drafts))
	for _, d := range drafts {
		p := r.s.products[d.ProductID]
		snapshots[p.ID] = model.ProductSnapshot{Title: p.Title, Description: p.Description, Price: p.Price, ImageURL: p.ImageURL}
		p.Quantity -= d.Quantity
		p.UpdatedAt = now
		r.s.products[d.ProductID] = p

		r.s.nextLine++
		lines = append(lines, model.PurchaseLine{
			ID:              r.s.nextLine,
			OrderID:         order.ID,
			ProductID:       d.ProductID,
			UserID:          userID,
			Quantity:        d.Quantity,
			PriceAtPurchase: p.Price,
			CreatedAt:       now,
		})
	}

	r.s.orders = append(r.s.orders, order)
	r.s.lines = append(r.s.lines, lines...)
	return &model.Receipt{Order: order, Lines: slices.Clone(lines), Products: snapshots}, nil
}
