package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Chinmay1190/cricket-gear-hub/internal/cart"
	"github.com/Chinmay1190/cricket-gear-hub/internal/catalog"
	"github.com/Chinmay1190/cricket-gear-hub/internal/clock"
	"github.com/Chinmay1190/cricket-gear-hub/internal/config"
	"github.com/Chinmay1190/cricket-gear-hub/internal/db"
	"github.com/Chinmay1190/cricket-gear-hub/internal/events"
	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice"
	"github.com/Chinmay1190/cricket-gear-hub/internal/newsletter"
	"github.com/Chinmay1190/cricket-gear-hub/internal/observability/logger"
	"github.com/Chinmay1190/cricket-gear-hub/internal/observability/tracing"
	"github.com/Chinmay1190/cricket-gear-hub/internal/order"
	"github.com/Chinmay1190/cricket-gear-hub/internal/seed"
	"github.com/Chinmay1190/cricket-gear-hub/internal/server"
	"github.com/Chinmay1190/cricket-gear-hub/internal/user"
	"github.com/Chinmay1190/cricket-gear-hub/internal/wishlist"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		tracing.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		fx.Invoke(func(conn *gorm.DB) error {
			if err := db.Migrate(conn); err != nil {
				return err
			}
			return seed.EnsureCatalog(conn)
		}),
		clock.Module,
		fx.Provide(events.NewOutbox),
		catalog.Module,
		cart.Module,
		wishlist.Module,
		user.Module,
		newsletter.Module,
		order.Module,
		invoice.Module,
		server.Module,
	)
	app.Run()
}
