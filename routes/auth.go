package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adnan-khan/minishop-api/auth"
	"github.com/adnan-khan/minishop-api/session"
)

// SetupAuthRoutes registers signup/login/logout and the root redirect.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, store *session.Store) {
	r.GET("/", auth.RootHandler(store))

	r.GET("/signup", auth.PageHandler(store, "signup"))
	r.POST("/signup", auth.SignupHandler(db, store))

	r.GET("/login", auth.PageHandler(store, "login"))
	r.POST("/login", auth.LoginHandler(db, store))

	r.GET("/logout", auth.LogoutHandler(store))
}
