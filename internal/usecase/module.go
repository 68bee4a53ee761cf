package usecase

import (
	"time"

	"go.uber.org/fx"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	func(a *AuthUseCase) IdentityResolver { return a },
	NewPurchaseUseCase,
	func() Clock { return time.Now },
	NewAnalyticsUseCase,
)
