package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable item of a shop's catalog.
type Service struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"index" json:"shopId"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	DurationMin int             `json:"durationMin"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Active      bool            `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
