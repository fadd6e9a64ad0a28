package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brenosouzaaa/sistema-pizzaria/bootstrap"
	"github.com/brenosouzaaa/sistema-pizzaria/controllers"
	"github.com/brenosouzaaa/sistema-pizzaria/middlewares"
	"github.com/brenosouzaaa/sistema-pizzaria/models"
	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

func SetupRouter(app *bootstrap.App) *gin.Engine {
	r := gin.New()
	cfg := app.Config

	if err := r.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		utils.ErrorLogger.Errorf("Invalid trusted proxies: %v", err)
	}

	r.Use(gin.Recovery())
	r.Use(middlewares.MetricsMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.HTTP.AllowedOrigins))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).RateLimit())

	userCtrl := controllers.NewUserController(app.DB)
	customerCtrl := controllers.NewCustomerController(app.Catalog)
	productCtrl := controllers.NewProductController(app.Catalog)
	cartCtrl := controllers.NewCartController(app.Carts, app.Orders)
	orderCtrl := controllers.NewOrderController(app.Orders, app.Receipts)
	reportCtrl := controllers.NewReportController(app.Reports)
	ratingCtrl := controllers.NewRatingController(app.Ratings)
	kdsCtrl := controllers.NewKDSController(app.Hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// strict limiter for login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst))
	{
		public.POST("/login", userCtrl.Login)
		// only an admin opens staff accounts
		public.POST("/register", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin), userCtrl.Register)
	}

	api := r.Group("/api")
	api.GET("/products", productCtrl.GetAllProducts)
	api.GET("/products/search", productCtrl.SearchProducts)
	api.GET("/products/:product_id", productCtrl.GetProductByID)
	api.POST("/customers", customerCtrl.RegisterCustomer)
	api.POST("/ratings", ratingCtrl.CreateRating)

	// CART + CHECKOUT (per session)
	shop := api.Group("/")
	shop.Use(middlewares.CartSession())
	{
		shop.GET("/cart", cartCtrl.GetCart)
		shop.POST("/cart/items", cartCtrl.AddItem)
		shop.DELETE("/cart/items/:index", cartCtrl.RemoveItem)
		shop.DELETE("/cart", cartCtrl.ClearCart)
		shop.POST("/cart/checkout", cartCtrl.PreviewCheckout)
		shop.POST("/orders", orderCtrl.PlaceOrder)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	r.GET("/ws/kitchen", middlewares.AuthMiddleware(), kdsCtrl.KDSHandler)

	auth := api.Group("/admin")
	auth.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleStaff))

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/users", middlewares.RequireRole(models.RoleAdmin), userCtrl.GetAllUsers)

	// PRODUCTS
	auth.POST("/products", productCtrl.CreateProduct)
	auth.PUT("/products/:product_id", productCtrl.UpdateProduct)
	auth.DELETE("/products/:product_id", productCtrl.DeleteProduct)

	// CUSTOMERS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.GET("/customers/lookup", customerCtrl.LookupCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
	auth.DELETE("/customers/:customer_id", customerCtrl.DeleteCustomer)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.GET("/orders/:order_id/items", orderCtrl.GetOrderItems)
	auth.GET("/orders/:order_id/receipt", middlewares.ReceiptLoggerMiddleware(), orderCtrl.GetReceipt)

	// REPORTS
	auth.GET("/reports", reportCtrl.GetSalesReport)
	auth.GET("/reports/sales", reportCtrl.GetSalesByDateRange)
	auth.GET("/reports/products", reportCtrl.GetTopProducts)
	auth.GET("/reports/customers", reportCtrl.GetTopCustomers)
	auth.GET("/reports/summary.txt", reportCtrl.GetSummaryText)
	auth.GET("/reports/summary.pdf", reportCtrl.GetSummaryPDF)

	// RATINGS
	auth.GET("/ratings", ratingCtrl.GetAllRatings)

	return r
}
