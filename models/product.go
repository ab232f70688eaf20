package models

import "github.com/shopspring/decimal"

// Product is read-only after seeding; the cart subsystem never mutates it.
type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Description string          `gorm:"not null" json:"description"`
}
