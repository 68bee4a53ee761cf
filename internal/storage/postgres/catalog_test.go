package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
)

var productRowColumns = []string{"id", "title", "description", "image_url", "price", "quantity", "category_id", "created_at", "updated_at"}

func TestProductRepositoryGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &productRepository{storage: storage}

	now := time.Now()
	categoryID := int64(3)

	mock.ExpectQuery("FROM products WHERE id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(productRowColumns).AddRow(int64(1), "Mug", "Ceramic", "mug.png", "10.00", 5, &categoryID, now, now))
	product, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Title != "Mug" || product.Quantity != 5 || !product.Price.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("unexpected product: %+v", product)
	}
	if product.CategoryID == nil || *product.CategoryID != 3 {
		t.Fatalf("unexpected category: %v", product.CategoryID)
	}

	mock.ExpectQuery("FROM products WHERE id=").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM products WHERE id=").WithArgs(int64(3)).WillReturnError(errors.New("boom"))
	if _, err := repo.GetByID(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestProductRepositoryLists(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &productRepository{storage: storage}

	now := time.Now()

	mock.ExpectQuery("FROM products ORDER BY id").WillReturnRows(
		pgxmockv3.NewRows(productRowColumns).
			AddRow(int64(1), "Mug", "", "", "10.00", 5, nil, now, now).
			AddRow(int64(2), "Cup", "", "", "4.50", 0, nil, now, now))
	products, err := repo.List(context.Background())
	if err != nil || len(products) != 2 {
		t.Fatalf("unexpected products: %v err=%v", products, err)
	}
	if products[1].CategoryID != nil {
		t.Fatalf("expected nil category, got %v", products[1].CategoryID)
	}

	mock.ExpectQuery("FROM products WHERE quantity <").WithArgs(10).WillReturnRows(
		pgxmockv3.NewRows(productRowColumns).AddRow(int64(2), "Cup", "", "", "4.50", 0, nil, now, now))
	low, err := repo.ListBelowStock(context.Background(), 10)
	if err != nil || len(low) != 1 || low[0].ID != 2 {
		t.Fatalf("unexpected low stock: %v err=%v", low, err)
	}

	mock.ExpectQuery("FROM products WHERE quantity <").WithArgs(10).WillReturnError(errors.New("boom"))
	if _, err := repo.ListBelowStock(context.Background(), 10); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestProductRepositoryListRowsError(t *testing.T) {
	repo := &productRepository{storage: newRowsErrorStorage(errors.New("rows err"))}
	if _, err := repo.List(context.Background()); err == nil || err.Error() != "rows err" {
		t.Fatalf("expected rows err, got %v", err)
	}
}

func TestProductRepositoryCounts(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &productRepository{storage: storage}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products")).WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(int64(12)))
	if n, err := repo.Count(context.Background()); err != nil || n != 12 {
		t.Fatalf("expected 12, got %d err=%v", n, err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products WHERE quantity <")).WithArgs(10).WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(int64(3)))
	if n, err := repo.CountBelowStock(context.Background(), 10); err != nil || n != 3 {
		t.Fatalf("expected 3, got %d err=%v", n, err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products WHERE quantity = 0")).WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(int64(1)))
	if n, err := repo.CountOutOfStock(context.Background()); err != nil || n != 1 {
		t.Fatalf("expected 1, got %d err=%v", n, err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products")).WillReturnError(errors.New("boom"))
	if _, err := repo.Count(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCategoryRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &categoryRepository{storage: storage}

	mock.ExpectQuery("FROM categories WHERE id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "name"}).AddRow(int64(1), "Kitchen"))
	category, err := repo.GetByID(context.Background(), 1)
	if err != nil || category.Name != "Kitchen" {
		t.Fatalf("unexpected category: %+v err=%v", category, err)
	}

	mock.ExpectQuery("FROM categories WHERE id=").WithArgs(int64(9)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 9); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM categories ORDER BY id").WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "name"}).AddRow(int64(1), "Kitchen").AddRow(int64(2), "Garden"))
	categories, err := repo.List(context.Background())
	if err != nil || len(categories) != 2 || categories[1].Name != "Garden" {
		t.Fatalf("unexpected categories: %v err=%v", categories, err)
	}

	mock.ExpectQuery("FROM categories ORDER BY id").WillReturnError(errors.New("boom"))
	if _, err := repo.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestCategoryRepositoryListRowsError(t *testing.T) {
	repo := &categoryRepository{storage: newRowsErrorStorage(errors.New("rows err"))}
	if _, err := repo.List(context.Background()); err == nil || err.Error() != "rows err" {
		t.Fatalf("expected rows err, got %v", err)
	}
}
