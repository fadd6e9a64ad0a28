package console

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenosouzaaa/sistema-pizzaria/bootstrap"
	"github.com/brenosouzaaa/sistema-pizzaria/config"
	"github.com/brenosouzaaa/sistema-pizzaria/database"
	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger(utils.LogConfig{Quiet: true})
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := config.Default()
	cfg.App.Timezone = "UTC"
	dir := t.TempDir()
	cfg.Receipts.LogPath = filepath.Join(dir, "comprovante.txt")
	cfg.Reports.SummaryPath = filepath.Join(dir, "resumo.txt")
	return bootstrap.NewApp(cfg, db, nil)
}

func runScript(t *testing.T, app *bootstrap.App, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, New(app, in, &out).Run(context.Background()))
	return out.String()
}

func TestCounterCheckoutWithChange(t *testing.T) {
	app := newTestApp(t)

	out := runScript(t, app,
		// register a pizza
		"2", "1", "Pizza", "Pizza Calabresa", "", "45.00", "8 slices", "4",
		// two of them in the cart
		"3", "1", "1", "2", "", "5",
		// checkout in cash, no customer
		"4", "n", "", "3", "100", "5",
		// full report
		"5", "1", "3",
		"6",
	)

	assert.Contains(t, out, "Product registered: ID=")
	assert.Contains(t, out, "Added 2x Pizza Calabresa. Cart total: R$ 90.00")
	assert.Contains(t, out, "Total: R$ 90.00")
	assert.Contains(t, out, "Change: R$ 10.00")
	assert.Contains(t, out, "Receipt issued.")
	assert.Contains(t, out, "Thanks for the feedback, unidentified customer! You gave 5 star(s).")
	assert.Contains(t, out, "Pizzas this month: 2")
	assert.Contains(t, out, "Shutting down.")

	receipts, err := os.ReadFile(app.Config.Receipts.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(receipts), "Change: R$ 10.00")

	summary, err := os.ReadFile(app.Config.Reports.SummaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Total orders: 1")

	orders, err := app.Orders.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.PaymentCash, orders[0].PaymentMethod)
}

func TestCounterInvalidPaymentFallsBackToCash(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	c, _, err := app.Catalog.RegisterCustomer(ctx, servicesCustomer("Ana", "111"))
	require.NoError(t, err)
	_, err = app.Carts.AddLine(ctx, SessionID, cartLine("Coca-Cola", 1, "8.00"))
	require.NoError(t, err)

	out := runScript(t, app,
		"4", "y", "Ana", "n", "9", "abc",
		"6",
	)

	assert.Contains(t, out, "Order linked to Ana")
	assert.Contains(t, out, "Invalid option. Using Cash by default.")
	assert.NotContains(t, out, "Change:")
	assert.Contains(t, out, "Customer: Ana")
	assert.Contains(t, out, "Invalid score. Rating skipped.")

	orders, err := app.Orders.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, c.ID, *orders[0].CustomerID)

	ratings, err := app.Ratings.ListRatings(ctx)
	require.NoError(t, err)
	assert.Empty(t, ratings)
}

func TestCounterCartEdits(t *testing.T) {
	app := newTestApp(t)
	_, err := app.Carts.AddLine(context.Background(), SessionID, cartLine("Pizza Mussarela", 1, "40.00"))
	require.NoError(t, err)

	out := runScript(t, app,
		"3", "3", "5", "3", "1", "2", "5",
		"4",
		"6",
	)

	assert.Contains(t, out, "Invalid index.")
	assert.Contains(t, out, "Removed: Pizza Mussarela")
	assert.Contains(t, out, "Cart is empty.")
	assert.Contains(t, out, "Cart is empty. Add items before checking out.")
}

func TestCounterDateRangeReport(t *testing.T) {
	app := newTestApp(t)

	out := runScript(t, app,
		"5", "2", "01/01/2024", "31/01/2024",
		"2", "10/01/2024", "01/01/2024",
		"1", "3",
		"6",
	)

	assert.Contains(t, out, "No orders found in that period.")
	assert.Contains(t, out, "Error: invalid input")
	assert.Contains(t, out, "No orders recorded.")
}

func TestCounterStopsAtEndOfInput(t *testing.T) {
	app := newTestApp(t)
	var out bytes.Buffer
	err := New(app, strings.NewReader("3\n1\n"), &out).Run(context.Background())
	assert.NoError(t, err)
}

func TestCounterCustomerMenu(t *testing.T) {
	app := newTestApp(t)

	out := runScript(t, app,
		"1",
		"1", "Ana Souza", "111", "", "Rua A, 10",
		"1", "Ana S.", "111", "", "",
		"5",
		"2", "souza",
		"4", "C-missing",
		"6",
		"6",
	)

	assert.Contains(t, out, "Customer registered: ID=")
	assert.Contains(t, out, "Customer already registered: ID=")
	assert.Contains(t, out, "| Ana Souza | 111 |  | Rua A, 10")
	assert.Contains(t, out, "Found: ")
	assert.Contains(t, out, "Customer not found.")

	customers, err := app.Catalog.ListCustomers(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}
