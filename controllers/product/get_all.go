package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/adnan-khan/minishop-api/middleware"
	"github.com/adnan-khan/minishop-api/models"
)

// GetProducts lists the whole catalog ordered by id ascending. The catalog is
// small and seed-only, so there is no pagination or filtering.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		var products []models.Product
		if err := db.Order("id ASC").Find(&products).Error; err != nil {
			log.Error().Err(err).Msg("failed to fetch products")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":   products,
			"cart_count": sess.Cart.Count(),
			"notices":    sess.Flashes(),
		})
	}
}
