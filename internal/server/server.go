package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Chinmay1190/cricket-gear-hub/internal/cart"
	"github.com/Chinmay1190/cricket-gear-hub/internal/catalog"
	"github.com/Chinmay1190/cricket-gear-hub/internal/config"
	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice/export"
	"github.com/Chinmay1190/cricket-gear-hub/internal/newsletter"
	"github.com/Chinmay1190/cricket-gear-hub/internal/observability/logger"
	"github.com/Chinmay1190/cricket-gear-hub/internal/observability/metrics"
	"github.com/Chinmay1190/cricket-gear-hub/internal/order"
	"github.com/Chinmay1190/cricket-gear-hub/internal/user"
	"github.com/Chinmay1190/cricket-gear-hub/internal/wishlist"
)

// Server holds the HTTP handlers and their service dependencies.
type Server struct {
	cfg config.Config
	db  *gorm.DB
	log *zap.Logger

	catalogSvc    *catalog.Service
	cartSvc       *cart.Service
	wishlistSvc   *wishlist.Service
	orderSvc      *order.Service
	userSvc       *user.Service
	newsletterSvc *newsletter.Service
	exporter      *export.Exporter

	exportMetrics *metrics.ExportMetrics

	authLimiter       *ipThrottle
	newsletterLimiter *ipThrottle
}

type ServerParam struct {
	fx.In

	Config     config.Config
	DB         *gorm.DB
	Log        *zap.Logger
	Catalog    *catalog.Service
	Cart       *cart.Service
	Wishlist   *wishlist.Service
	Order      *order.Service
	User       *user.Service
	Newsletter *newsletter.Service
	Exporter   *export.Exporter
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:           p.Config,
		db:            p.DB,
		log:           p.Log.Named("server"),
		catalogSvc:    p.Catalog,
		cartSvc:       p.Cart,
		wishlistSvc:   p.Wishlist,
		orderSvc:      p.Order,
		userSvc:       p.User,
		newsletterSvc: p.Newsletter,
		exporter:      p.Exporter,
		exportMetrics: metrics.ExportWithConfig(metrics.Config{
			ServiceName: p.Config.ServiceName,
			Environment: p.Config.Environment,
		}),
		authLimiter:       newIPThrottle(10, time.Minute),
		newsletterLimiter: newIPThrottle(5, time.Minute),
	}
}

// NewEngine builds the gin engine with observability middleware and routes.
func NewEngine(cfg config.Config, log *zap.Logger, s *Server) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		Logger:    log,
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(metrics.GinMiddleware(metrics.HTTPWithConfig(metrics.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})))

	engine.GET("/healthz", s.Health)
	engine.GET("/metrics", metrics.Handler())

	api := engine.Group("/api")
	{
		api.GET("/products", s.ListProducts)
		api.GET("/products/:slug", s.GetProduct)
		api.GET("/categories", s.ListCategories)

		api.POST("/auth/register", s.Register)
		api.POST("/auth/login", s.Login)

		api.POST("/newsletter/subscribe", s.SubscribeNewsletter)
		api.POST("/newsletter/unsubscribe", s.UnsubscribeNewsletter)

		authed := api.Group("")
		authed.Use(s.AuthRequired())
		{
			authed.GET("/cart", s.GetCart)
			authed.POST("/cart/items", s.AddCartItem)
			authed.PATCH("/cart/items/:id", s.UpdateCartItem)
			authed.DELETE("/cart/items/:id", s.RemoveCartItem)

			authed.GET("/wishlist", s.ListWishlist)
			authed.POST("/wishlist/:product_id", s.AddWishlistEntry)
			authed.DELETE("/wishlist/:product_id", s.RemoveWishlistEntry)

			authed.POST("/orders", s.Checkout)
			authed.GET("/orders", s.ListOrders)
			authed.GET("/orders/:id", s.GetOrder)
			authed.PATCH("/orders/:id/status", s.UpdateOrderStatus)

			authed.GET("/orders/:id/invoice/print", s.PrintInvoice)
			authed.GET("/orders/:id/invoice/download", s.DownloadInvoice)
		}
	}

	return engine
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP binds the engine to the configured address under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("http server shutting down")
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Provide(NewEngine),
	fx.Invoke(RunHTTP),
)
