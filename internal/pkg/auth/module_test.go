package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/polkiloo/storefront/internal/config"
)

func TestNewPasswordHasher(t *testing.T) {
	hasher := newPasswordHasher(strategyParams{Config: &config.Config{}})
	bcryptHasher, ok := hasher.(*BcryptHasher)
	if !ok {
		t.Fatalf("expected *BcryptHasher, got %T", hasher)
	}
	if bcryptHasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", bcryptHasher.cost)
	}

	hasher = newPasswordHasher(strategyParams{Config: &config.Config{BcryptCost: bcrypt.MinCost}})
	if got := hasher.(*BcryptHasher).cost; got != bcrypt.MinCost {
		t.Fatalf("expected configured cost %d, got %d", bcrypt.MinCost, got)
	}
}

func TestNewTokenStrategy(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{
		JWTSecret:     "top-secret",
		TokenStrategy: config.TokenStrategyHMAC,
	}})
	hmacStrategy, ok := strategy.(*HMACStrategy)
	if !ok {
		t.Fatalf("expected *HMACStrategy, got %T", strategy)
	}
	if string(hmacStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(hmacStrategy.secret))
	}
	if hmacStrategy.opts.TTL != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", hmacStrategy.opts.TTL)
	}

	strategy = newTokenStrategy(strategyParams{Config: &config.Config{
		JWTSecret:     "top-secret",
		TokenStrategy: config.TokenStrategyJWT,
		TokenTTL:      time.Hour,
	}})
	jwtStrategy, ok := strategy.(*JWTStrategy)
	if !ok {
		t.Fatalf("expected *JWTStrategy, got %T", strategy)
	}
	if jwtStrategy.opts.TTL != time.Hour {
		t.Fatalf("unexpected ttl: %s", jwtStrategy.opts.TTL)
	}
}
