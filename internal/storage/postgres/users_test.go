package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

var userRowColumns = []string{"id", "email", "first_name", "last_name", "password_hash", "is_admin", "created_at"}

func TestUserRepository(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	createdAt := time.Now()
	input := model.User{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", PasswordHash: "hash"}

	mock.ExpectQuery("INSERT INTO users").WithArgs("ada@example.com", "Ada", "Lovelace", "hash", false).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "created_at"}).AddRow(int64(1), createdAt),
	)
	user, err := repo.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.Email != "ada@example.com" || user.FirstName != "Ada" {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs("ada@example.com", "Ada", "Lovelace", "hash", false).WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.Create(context.Background(), input); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists error, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO users").WithArgs("ada@example.com", "Ada", "Lovelace", "hash", false).WillReturnError(errors.New("other"))
	if _, err := repo.Create(context.Background(), input); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("ada@example.com").WillReturnRows(
		pgxmockv3.NewRows(userRowColumns).AddRow(int64(1), "ada@example.com", "Ada", "Lovelace", "hash", true, createdAt))
	found, err := repo.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.IsAdmin || found.LastName != "Lovelace" {
		t.Fatalf("unexpected user: %+v", found)
	}

	mock.ExpectQuery("FROM users WHERE email=").WithArgs("missing").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByEmail(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(userRowColumns).AddRow(int64(1), "ada@example.com", "Ada", "Lovelace", "hash", false, createdAt))
	if _, err := repo.GetByID(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").WithArgs(int64(3)).WillReturnError(errors.New("boom"))
	if _, err := repo.GetByID(context.Background(), 3); err == nil || errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryCountSince(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &userRepository{storage: storage}

	countQuery := regexp.QuoteMeta("SELECT COUNT(*) FROM users")
	since := time.Now().Add(-time.Hour)

	mock.ExpectQuery(countQuery).WithArgs(&since).WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(int64(4)))
	n, err := repo.CountSince(context.Background(), &since)
	if err != nil || n != 4 {
		t.Fatalf("expected 4 users, got %d err=%v", n, err)
	}

	mock.ExpectQuery(countQuery).WithArgs(pgxmockv3.AnyArg()).WillReturnError(errors.New("boom"))
	if _, err := repo.CountSince(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
