package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adnan-khan/minishop-api/middleware"
	"github.com/adnan-khan/minishop-api/models"
	"github.com/adnan-khan/minishop-api/session"
)

type CartLine struct {
	ProductID uint            `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// BuildCartView joins the cart against the catalog. Entries whose product no
// longer resolves are dropped from the view rather than reported.
func BuildCartView(db *gorm.DB, cart *session.Cart) (CartView, error) {
	view := CartView{Items: []CartLine{}, Total: decimal.Zero}
	if cart.Len() == 0 {
		return view, nil
	}

	ids := make([]uint, 0, cart.Len())
	for id := range cart.Items() {
		ids = append(ids, id)
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Order("id ASC").Find(&products).Error; err != nil {
		return CartView{}, err
	}

	for _, p := range products {
		qty := cart.Quantity(p.ID)
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		view.Items = append(view.Items, CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Qty:       qty,
			Subtotal:  subtotal,
		})
		view.Total = view.Total.Add(subtotal)
	}
	return view, nil
}

// GET /add_to_cart/:id
func AddToCart(db *gorm.DB) gin.HandlerFunc {
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
			log.Error().Err(err).Int("product_id", id).Msg("failed to validate product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		sess.Cart.Add(product.ID)
		sess.AddFlash("success", "Added to cart")
		c.Redirect(http.StatusFound, "/products")
	}
}

// GET /remove_from_cart/:id
func RemoveFromCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		if sess.Cart.Quantity(uint(id)) > 0 {
			sess.Cart.Remove(uint(id))
			sess.AddFlash("info", "Removed from cart")
		}
		c.Redirect(http.StatusFound, "/cart")
	}
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		view, err := BuildCartView(db, sess.Cart)
		if err != nil {
			log.Error().Err(err).Msg("failed to build cart view")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":      view.Items,
			"total":      view.Total,
			"cart_count": sess.Cart.Count(),
			"notices":    sess.Flashes(),
		})
	}
}
