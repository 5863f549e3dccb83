package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/printshop/internal/handlers"
	"github.com/Skotchmaster/printshop/internal/middleware/auth"
	pkgdb "github.com/Skotchmaster/printshop/pkg/db"
)

type Deps struct {
	DB        *gorm.DB
	Auth      *auth.Middleware
	UploadDir string

	AuthHandler      *handlers.AuthHandler
	UserHandler      *handlers.UserHandler
	ProductHandler   *handlers.ProductHandler
	SearchHandler    *handlers.SearchHandler
	CartHandler      *handlers.CartHandler
	CheckoutHandler  *handlers.CheckoutHandler
	OrderHandler     *handlers.OrderHandler
	PortfolioHandler *handlers.PortfolioHandler
	ReviewHandler    *handlers.ReviewHandler
	ContactHandler   *handlers.ContactHandler
	SubscribeHandler *handlers.SubscribeHandler
	BlogHandler      *handlers.BlogHandler
	UploadHandler    *handlers.UploadHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = handlers.NewValidator()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := pkgdb.Ping(c.Request().Context(), d.DB); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	protect, admin := d.Auth.Protect, d.Auth.Admin
	api := e.Group("/api")

	users := api.Group("/users")
	users.POST("/register", d.AuthHandler.Register)
	users.POST("/login", d.AuthHandler.Login)
	users.GET("/profile", d.AuthHandler.Profile, protect)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/best-seller", d.ProductHandler.BestSeller)
	products.GET("/new-arrivals", d.ProductHandler.NewArrivals)
	products.GET("/similar/:id", d.ProductHandler.Similar)
	products.GET("/search", d.SearchHandler.Search)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, protect, admin)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, protect, admin)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, protect, admin)

	cart := api.Group("/cart")
	cart.GET("", d.CartHandler.GetCart, d.Auth.Optional)
	cart.POST("", d.CartHandler.AddToCart, d.Auth.Optional)
	cart.PUT("", d.CartHandler.UpdateCart, d.Auth.Optional)
	cart.DELETE("", d.CartHandler.RemoveFromCart, d.Auth.Optional)
	cart.POST("/merge", d.CartHandler.MergeCart, protect)

	checkout := api.Group("/checkout", protect)
	checkout.POST("", d.CheckoutHandler.Create)
	checkout.GET("/:id", d.CheckoutHandler.Get)
	checkout.PUT("/:id/pay", d.CheckoutHandler.Pay)
	checkout.POST("/:id/finalize", d.CheckoutHandler.Finalize)

	orders := api.Group("/orders", protect)
	orders.GET("/my-orders", d.OrderHandler.MyOrders)
	orders.GET("/:id", d.OrderHandler.Get)

	adm := api.Group("/admin", protect, admin)
	adm.GET("/users", d.UserHandler.List)
	adm.POST("/users", d.UserHandler.Create)
	adm.PUT("/users/:id", d.UserHandler.Update)
	adm.DELETE("/users/:id", d.UserHandler.Delete)
	adm.GET("/products", d.ProductHandler.AdminProducts)
	adm.GET("/orders", d.OrderHandler.List)
	adm.GET("/orders/export", d.OrderHandler.Export)
	adm.PUT("/orders/:id", d.OrderHandler.UpdateStatus)
	adm.DELETE("/orders/:id", d.OrderHandler.Delete)
	adm.GET("/subscribers/export", d.SubscribeHandler.Export)

	portfolio := api.Group("/portfolio")
	portfolio.GET("", d.PortfolioHandler.List)
	portfolio.GET("/:id", d.PortfolioHandler.Get)
	portfolio.POST("", d.PortfolioHandler.Create, protect, admin)
	portfolio.PUT("/:id", d.PortfolioHandler.Update, protect, admin)
	portfolio.DELETE("/:id", d.PortfolioHandler.Delete, protect, admin)

	api.POST("/reviews", d.ReviewHandler.Create, protect)
	api.GET("/reviews/:productId", d.ReviewHandler.ForProduct)

	api.POST("/contact", d.ContactHandler.Create)
	api.GET("/contact", d.ContactHandler.List, protect, admin)

	api.POST("/subscribe", d.SubscribeHandler.Subscribe)

	blog := api.Group("/blog")
	blog.GET("", d.BlogHandler.List)
	blog.GET("/:id", d.BlogHandler.Get)
	blog.POST("", d.BlogHandler.Create, protect, admin)
	blog.PUT("/:id", d.BlogHandler.Update, protect, admin)
	blog.DELETE("/:id", d.BlogHandler.Delete, protect, admin)

	api.POST("/upload", d.UploadHandler.Upload, protect)
}
