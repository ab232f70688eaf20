package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/adnan-khan/minishop-api/controllers/cart"
	orderControllers "github.com/adnan-khan/minishop-api/controllers/order"
	productcontroller "github.com/adnan-khan/minishop-api/controllers/product"
	"github.com/adnan-khan/minishop-api/middleware"
	"github.com/adnan-khan/minishop-api/session"
)

// SetupShopRoutes registers every endpoint that needs an authenticated session.
func SetupShopRoutes(r *gin.Engine, db *gorm.DB, store *session.Store, orderCfg orderControllers.Config) {
	shop := r.Group("/")
	shop.Use(middleware.RequireSession(store))
	{
		// ---- Catalog ----
		shop.GET("/products", productcontroller.GetProducts(db))       // GET /products
		shop.GET("/product/:id", productcontroller.GetProductByID(db)) // GET /product/:id

		// ---- Cart ----
		shop.GET("/add_to_cart/:id", cartControllers.AddToCart(db))        // GET /add_to_cart/:id
		shop.GET("/remove_from_cart/:id", cartControllers.RemoveFromCart()) // GET /remove_from_cart/:id
		shop.GET("/cart", cartControllers.GetCart(db))                     // GET /cart

		// ---- Checkout & orders ----
		shop.POST("/checkout", orderControllers.CheckoutHandler(db, orderCfg)) // POST /checkout
		shop.GET("/orders", orderControllers.GetUserOrdersHandler(db))         // GET /orders
		shop.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))   // GET /orders/export
		shop.GET("/ws/orders", orderControllers.OrderWebSocketHandler)         // GET /ws/orders
	}
}
