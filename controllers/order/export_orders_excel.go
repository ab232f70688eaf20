package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/adnan-khan/minishop-api/middleware"
	"github.com/adnan-khan/minishop-api/models"
)

// GET /orders/export
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)

		var orders []models.Order
		if err := db.
			Where("user_id = ?", sess.UserID).
			Order("placed_at DESC").
			Find(&orders).Error; err != nil {
			log.Error().Err(err).Uint("user_id", sess.UserID).Msg("failed to fetch orders for export")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"ID", "ProductID", "Qty", "PlacedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.ProductID)
			row.AddCell().SetValue(o.Qty)
			row.AddCell().SetValue(o.PlacedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
