package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const SystemConfigGlobalKey = "global"

// SystemConfig is a singleton row keyed by SystemConfigGlobalKey.
type SystemConfig struct {
	ID  uint   `gorm:"primaryKey" json:"id"`
	Key string `gorm:"size:20;uniqueIndex;default:'global'" json:"key"`

	AdminCommissionRate     decimal.Decimal `gorm:"type:numeric(5,2)" json:"adminCommissionRate"`
	UserDiscountRate        decimal.Decimal `gorm:"type:numeric(5,2)" json:"userDiscountRate"`
	MaxCashBookingsPerMonth int             `json:"maxCashBookingsPerMonth"`
	YearlyCancellationLimit int             `json:"yearlyCancellationLimit"`
	IsPaymentTestMode       bool            `json:"isPaymentTestMode"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
