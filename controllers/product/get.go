package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/adnan-khan/minishop-api/middleware"
	"github.com/adnan-khan/minishop-api/models"
)

// GetProductByID returns a single product.
// URL param: /product/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				sess.AddFlash("danger", "Product not found")
				c.Redirect(http.StatusFound, "/products")
				return
			}
			log.Error().Err(err).Int("product_id", id).Msg("failed to retrieve product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
