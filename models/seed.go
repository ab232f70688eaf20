package models

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedProducts inserts the catalog once, on first startup against an empty
// products table. Subsequent starts are no-ops.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []Product{
		{Name: "Laptop", Price: decimal.NewFromFloat(55000.0), Description: `15.6" FHD | Intel i5 | 16GB RAM | 512GB SSD — Great for coding and school projects.`},
		{Name: "Mobile", Price: decimal.NewFromFloat(15000.0), Description: `6.5" display | 8GB RAM | 128GB storage | 50MP camera | 5000mAh battery.`},
		{Name: "Headphones", Price: decimal.NewFromFloat(2499.0), Description: "Over-ear ANC headphones | 30h battery | Comfortable."},
		{Name: "USB-C Hub", Price: decimal.NewFromFloat(1499.0), Description: "5-in-1 Hub: HDMI 4K, 2xUSB-A, SD, microSD."},
		{Name: "Wireless Mouse", Price: decimal.NewFromFloat(899.0), Description: "Ergonomic wireless mouse | 1600 DPI | 12 month battery."},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}
	log.Info().Int("products", len(products)).Msg("seeded product catalog")
	return nil
}
