package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/brenosouzaaa/sistema-pizzaria/config"
	"github.com/brenosouzaaa/sistema-pizzaria/database"
	"github.com/brenosouzaaa/sistema-pizzaria/kds"
	"github.com/brenosouzaaa/sistema-pizzaria/services"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

// App holds the wired services shared by the HTTP server and the console.
type App struct {
	Config config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Hub    *kds.Hub

	Catalog  *services.CatalogService
	Carts    *services.CartService
	Orders   *services.OrderService
	Reports  *services.ReportService
	Receipts *services.ReceiptService
	Ratings  *services.RatingService
}

// InitWithConfig opens the database (and Redis when configured), migrates
// the schema and wires the services. The returned cleanup closes the
// connections.
func InitWithConfig(cfg config.Config) (*App, func(), error) {
	utils.InitJWT(cfg.Security.JWTSecret, cfg.Security.TokenTTL)

	db, err := config.InitDB(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, err
	}
	if err := database.SeedAdmin(db, cfg.Security.AdminEmail, cfg.Security.AdminPassword); err != nil {
		utils.ErrorLogger.Errorf("Failed to seed admin account: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		utils.InfoLogger.WithField("addr", cfg.Redis.Addr).Info("Carts stored in Redis")
	}

	app := NewApp(cfg, db, rdb)
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		if rdb != nil {
			_ = rdb.Close()
		}
	}
	return app, cleanup, nil
}

// NewApp wires the services over already open connections. A nil rdb keeps
// carts in memory.
func NewApp(cfg config.Config, db *gorm.DB, rdb *redis.Client) *App {
	var store services.CartStore = services.NewMemoryCartStore()
	if rdb != nil {
		store = services.NewRedisCartStore(rdb, cfg.Redis.CartTTL)
	}
	loc := cfg.Location()
	hub := kds.NewHub()

	catalog := services.NewCatalogService(db)
	return &App{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Hub:      hub,
		Catalog:  catalog,
		Carts:    services.NewCartService(store, catalog),
		Orders:   services.NewOrderService(db, store, catalog, services.WithNotifier(hub)),
		Reports:  services.NewReportService(db, loc, time.Now),
		Receipts: services.NewReceiptService(cfg.Receipts.LogPath, loc, services.WithReceiptAlerts(hub)),
		Ratings:  services.NewRatingService(db, services.WithRatingAlerts(hub)),
	}
}
