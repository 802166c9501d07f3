package db

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Chinmay1190/cricket-gear-hub/internal/cart"
	"github.com/Chinmay1190/cricket-gear-hub/internal/catalog"
	"github.com/Chinmay1190/cricket-gear-hub/internal/config"
	"github.com/Chinmay1190/cricket-gear-hub/internal/events"
	"github.com/Chinmay1190/cricket-gear-hub/internal/newsletter"
	"github.com/Chinmay1190/cricket-gear-hub/internal/order"
	"github.com/Chinmay1190/cricket-gear-hub/internal/user"
	"github.com/Chinmay1190/cricket-gear-hub/internal/wishlist"
)

func Open(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	log.Info("database connected")
	return conn, nil
}

// Migrate keeps the schema in sync with the registered models.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&user.User{},
		&catalog.Category{},
		&catalog.Product{},
		&cart.Item{},
		&wishlist.Entry{},
		&order.Order{},
		&order.OrderItem{},
		&newsletter.Subscriber{},
		&events.Event{},
	)
}

var Module = fx.Module("db",
	fx.Provide(Open),
	fx.Invoke(func(lc fx.Lifecycle, conn *gorm.DB) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				sqlDB, err := conn.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		})
	}),
)
