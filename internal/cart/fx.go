package cart

import "go.uber.org/fx"

var Module = fx.Module("cart.service",
	fx.Provide(NewService),
)
