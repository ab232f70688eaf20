package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/adnan-khan/minishop-api/middleware"
	"github.com/adnan-khan/minishop-api/models"
	"github.com/adnan-khan/minishop-api/session"
)

var ErrEmptyCart = errors.New("cart is empty")

// Config controls checkout behavior.
type Config struct {
	// RevalidateProducts re-checks every cart line against the catalog inside
	// the checkout transaction and aborts the whole checkout if a product was
	// deleted after it entered the cart. Off by default: a vanished product
	// still yields an order row, kept as a historical record.
	RevalidateProducts bool
}

// PlaceOrders drains a non-empty cart into the order ledger, one row per cart
// line, inside a single transaction. The cart is cleared only after the
// transaction commits, so a failed checkout leaves it intact.
func PlaceOrders(db *gorm.DB, sess *session.Session, cfg Config) ([]models.Order, error) {
	lines := sess.Cart.Items()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var orders []models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		for productID, qty := range lines {
			if cfg.RevalidateProducts {
				var product models.Product
				if err := tx.First(&product, productID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("product %d: %w", productID, gorm.ErrRecordNotFound)
					}
					return err
				}
			}

			order := models.Order{
				UserID:    sess.UserID,
				ProductID: productID,
				Qty:       qty,
				PlacedAt:  time.Now(),
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			orders = append(orders, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sess.Cart.Clear()
	return orders, nil
}

// POST /checkout
func CheckoutHandler(db *gorm.DB, cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		orders, err := PlaceOrders(db, sess, cfg)
		if err != nil {
			if errors.Is(err, ErrEmptyCart) {
				sess.AddFlash("danger", "Cart is empty")
				c.Redirect(http.StatusFound, "/cart")
				return
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				sess.AddFlash("danger", "A product in your cart is no longer available")
				c.Redirect(http.StatusFound, "/cart")
				return
			}
			log.Error().Err(err).Uint("user_id", sess.UserID).Msg("checkout failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		log.Info().Uint("user_id", sess.UserID).Int("lines", len(orders)).Msg("order placed")
		broadcastNewOrders(orders)

		sess.AddFlash("success", "Order placed successfully")
		c.Redirect(http.StatusFound, "/products")
	}
}

// GET /orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		var orders []models.Order
		if err := db.
			Where("user_id = ?", sess.UserID).
			Order("placed_at DESC").
			Find(&orders).Error; err != nil {
			log.Error().Err(err).Uint("user_id", sess.UserID).Msg("failed to fetch orders")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
