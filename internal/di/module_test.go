package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/app"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:        ":0",
		DatabaseURI:       "postgres://stub",
		JWTSecret:         "secret",
		TokenStrategy:     config.TokenStrategyJWT,
		TokenTTL:          time.Hour,
		ShutdownTimeout:   time.Millisecond,
		StockPollInterval: time.Hour,
		TxMaxRetries:      1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := test.NewStore()

	var (
		facade *app.StorefrontFacade
		engine *gin.Engine
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(fx.Annotate(store.Users(), fx.As(new(repository.UserRepository)))),
			fx.Replace(fx.Annotate(store.Products(), fx.As(new(repository.ProductRepository)))),
			fx.Replace(fx.Annotate(store.Categories(), fx.As(new(repository.CategoryRepository)))),
			fx.Replace(fx.Annotate(store.Orders(), fx.As(new(repository.OrderRepository)))),
			fx.Replace(fx.Annotate(store.Lines(), fx.As(new(repository.PurchaseLineRepository)))),
			fx.Replace(fx.Annotate(store.Checkout(), fx.As(new(repository.CheckoutRepository)))),
		),
		fx.Populate(&facade, &engine),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected storefront facade instance")
	}
	if engine == nil {
		t.Fatal("expected gin engine instance")
	}

	if _, _, err := facade.Register(context.Background(), model.RegisterInput{
		Email:           "wired@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	}); err != nil {
		t.Fatalf("register through wired facade: %v", err)
	}
	if _, err := store.Users().GetByEmail(context.Background(), "wired@example.com"); err != nil {
		t.Fatalf("registered user not in replaced repository: %v", err)
	}
}
