package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Settlement struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	ShopID  uint  `gorm:"index;not null" json:"shopId"`
	AdminID *uint `json:"adminId"`

	Type   string          `gorm:"size:20;not null" json:"type"`
	Amount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status string          `gorm:"size:20;default:'GENERATED'" json:"status"`

	Bookings  []Booking `gorm:"foreignKey:SettlementID" json:"bookings"`
	DateRange DateRange `gorm:"embedded;embeddedPrefix:date_range_" json:"dateRange"`

	GeneratedAt   time.Time `json:"generatedAt"`
	TransactionID string    `gorm:"size:100" json:"transactionId,omitempty"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DateRange spans the earliest and latest booking dates of a settlement batch.
type DateRange struct {
	Start string `gorm:"size:10" json:"start"`
	End   string `gorm:"size:10" json:"end"`
}
