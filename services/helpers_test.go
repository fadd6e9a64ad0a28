package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brenosouzaaa/sistema-pizzaria/database"
	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	utils.Silence()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProduct(t *testing.T, catalog *CatalogService, name, price string, cat models.ProductCategory) *models.Product {
	t.Helper()
	p, err := catalog.RegisterProduct(context.Background(), ProductInput{
		Category: cat,
		Name:     name,
		Price:    dec(price),
	})
	require.NoError(t, err)
	return p
}

type recordingNotifier struct {
	mu     sync.Mutex
	orders []string
	alerts []string
}

func (n *recordingNotifier) NotifyStaff(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, message)
}

func (n *recordingNotifier) OrderRecorded(order *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order.ID)
}

type fixture struct {
	db       *gorm.DB
	store    *MemoryCartStore
	catalog  *CatalogService
	carts    *CartService
	orders   *OrderService
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	store := NewMemoryCartStore()
	catalog := NewCatalogService(db)
	notifier := &recordingNotifier{}
	return &fixture{
		db:       db,
		store:    store,
		catalog:  catalog,
		carts:    NewCartService(store, catalog),
		orders:   NewOrderService(db, store, catalog, WithNotifier(notifier), WithClock(fixedClock)),
		notifier: notifier,
	}
}

var testNow = time.Date(2025, 3, 14, 19, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }
