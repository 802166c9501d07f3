package invoice

import (
	"go.uber.org/fx"

	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice/export"
	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice/render"
)

var Module = fx.Module("invoice",
	fx.Provide(render.NewRenderer),
	fx.Provide(export.New),
)
