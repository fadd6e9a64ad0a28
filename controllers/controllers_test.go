package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenosouzaaa/sistema-pizzaria/database"
	"github.com/brenosouzaaa/sistema-pizzaria/middlewares"
	"github.com/brenosouzaaa/sistema-pizzaria/services"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger(utils.LogConfig{Quiet: true})
	os.Exit(m.Run())
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	engine     *gin.Engine
	catalog    *services.CatalogService
	receiptLog string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store := services.NewMemoryCartStore()
	catalog := services.NewCatalogService(db)
	carts := services.NewCartService(store, catalog)
	orders := services.NewOrderService(db, store, catalog)
	receiptLog := filepath.Join(t.TempDir(), "comprovante.txt")
	receipts := services.NewReceiptService(receiptLog, time.UTC)
	reports := services.NewReportService(db, time.UTC, nil)

	productCtrl := NewProductController(catalog)
	customerCtrl := NewCustomerController(catalog)
	cartCtrl := NewCartController(carts, orders)
	orderCtrl := NewOrderController(orders, receipts)
	reportCtrl := NewReportController(reports)
	ratingCtrl := NewRatingController(services.NewRatingService(db))

	r := gin.New()
	r.GET("/products/:product_id", productCtrl.GetProductByID)
	r.POST("/products", productCtrl.CreateProduct)
	r.POST("/customers", customerCtrl.RegisterCustomer)
	r.GET("/customers/lookup", customerCtrl.LookupCustomer)
	r.POST("/ratings", ratingCtrl.CreateRating)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.GET("/orders/:order_id/receipt", orderCtrl.GetReceipt)
	r.GET("/reports/sales", reportCtrl.GetSalesByDateRange)
	r.GET("/reports/summary.txt", reportCtrl.GetSummaryText)

	shop := r.Group("/", middlewares.CartSession())
	shop.GET("/cart", cartCtrl.GetCart)
	shop.POST("/cart/items", cartCtrl.AddItem)
	shop.DELETE("/cart/items/:index", cartCtrl.RemoveItem)
	shop.POST("/cart/checkout", cartCtrl.PreviewCheckout)
	shop.POST("/orders", orderCtrl.PlaceOrder)

	return &testServer{engine: r, catalog: catalog, receiptLog: receiptLog}
}

func (s *testServer) do(t *testing.T, method, path, session string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(middlewares.SessionHeader, session)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *testServer) createProduct(t *testing.T, name, category, price string) string {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/products", "", gin.H{
		"category": category,
		"name":     name,
		"price":    price,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p.ID
}

func TestPlaceOrderFlow(t *testing.T) {
	s := newTestServer(t)
	pizza := s.createProduct(t, "Pizza Calabresa", "Pizza", "45.00")

	w, _ := s.do(t, http.MethodPost, "/cart/items", "", gin.H{"product_id": pizza, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	session := w.Header().Get(middlewares.SessionHeader)
	require.NotEmpty(t, session)

	w, env := s.do(t, http.MethodPost, "/cart/items", session, gin.H{"product_id": pizza, "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	var view services.CartView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)

	w, env = s.do(t, http.MethodPost, "/cart/checkout", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Order pending payment", env.Message)

	w, env = s.do(t, http.MethodPost, "/orders", session, gin.H{
		"payment_method": "Cash",
		"cash_tendered":  "100.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var placed struct {
		Order struct {
			ID    string `json:"id"`
			Total string `json:"total"`
			State string `json:"state"`
		} `json:"order"`
		Receipt string `json:"receipt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &placed))
	assert.Equal(t, "persisted", placed.Order.State)
	assert.Contains(t, placed.Receipt, "Change: R$ 10.00")

	logged, err := os.ReadFile(s.receiptLog)
	require.NoError(t, err)
	assert.Contains(t, string(logged), placed.Order.ID)

	w, env = s.do(t, http.MethodGet, "/cart", session, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Empty(t, view.Lines)

	w, env = s.do(t, http.MethodGet, "/orders/"+placed.Order.ID+"/receipt", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Total: R$ 90.00")
}

func TestServiceErrorsMapToStatus(t *testing.T) {
	s := newTestServer(t)
	pizza := s.createProduct(t, "Pizza Calabresa", "Pizza", "45.00")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown product", http.MethodGet, "/products/P-missing", nil, http.StatusNotFound},
		{"unknown order", http.MethodGet, "/orders/O-missing", nil, http.StatusNotFound},
		{"checkout empty cart", http.MethodPost, "/orders", nil, http.StatusConflict},
		{"preview empty cart", http.MethodPost, "/cart/checkout", nil, http.StatusConflict},
		{"zero quantity", http.MethodPost, "/cart/items", gin.H{"product_id": pizza, "quantity": 0}, http.StatusBadRequest},
		{"missing product id", http.MethodPost, "/cart/items", gin.H{"quantity": 1}, http.StatusBadRequest},
		{"remove out of range", http.MethodDelete, "/cart/items/5", nil, http.StatusNotFound},
		{"remove bad index", http.MethodDelete, "/cart/items/abc", nil, http.StatusBadRequest},
		{"bad category", http.MethodPost, "/products", gin.H{"category": "Sushi", "name": "X", "price": "1"}, http.StatusBadRequest},
		{"rating out of range", http.MethodPost, "/ratings", gin.H{"score": 9}, http.StatusBadRequest},
		{"lookup without query", http.MethodGet, "/customers/lookup", nil, http.StatusBadRequest},
		{"reversed date range", http.MethodGet, "/reports/sales?start=10/03/2025&end=01/03/2025", nil, http.StatusBadRequest},
		{"unparseable date", http.MethodGet, "/reports/sales?start=yesterday&end=01/03/2025", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := s.do(t, tc.method, tc.path, "session-"+tc.name, tc.body)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.False(t, env.Status)
		})
	}
}

func TestRegisterCustomerDuplicateReturnsExisting(t *testing.T) {
	s := newTestServer(t)
	body := gin.H{"name": "Ana", "phone": "11 99999-0000"}

	w, _ := s.do(t, http.MethodPost, "/customers", "", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env := s.do(t, http.MethodPost, "/customers", "", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Customer already registered", env.Message)
}

func TestEmptyDateRangeIsOK(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/reports/sales?start=01/01/2024&end=31/01/2024", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report struct {
		Orders []json.RawMessage `json:"orders"`
		Count  int               `json:"count"`
		Total  string            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.NotNil(t, report.Orders)
	assert.Zero(t, report.Count)
	assert.Equal(t, "0", report.Total)
}

func TestSummaryText(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/reports/summary.txt", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total orders: 0")
}
