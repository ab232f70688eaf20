package models

import "time"

// Order is append-only: one row per cart line at checkout, never updated or
// deleted afterwards.
type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ProductID uint      `gorm:"not null" json:"product_id"`
	Qty       int       `gorm:"not null" json:"qty"`
	PlacedAt  time.Time `json:"placed_at"`
}
