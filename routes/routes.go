package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/adnan-khan/minishop-api/controllers/order"
	"github.com/adnan-khan/minishop-api/session"
)

// SetupRoutes is the single entry-point that wires up the public auth routes
// and the session-protected shop routes.
func SetupRoutes(r *gin.Engine, db *gorm.DB, store *session.Store, orderCfg orderControllers.Config) {
	// Public routes (no session required)
	SetupAuthRoutes(r, db, store)

	// Shop routes (session required, unauthenticated access redirects to /login)
	SetupShopRoutes(r, db, store, orderCfg)
}
