package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID   *uint `gorm:"index" json:"userId"`
	ShopID   uint  `gorm:"index;not null" json:"shopId"`
	BarberID uint  `gorm:"index;not null" json:"barberId"`

	ServiceNames  string `gorm:"size:255" json:"serviceNames"`
	TotalDuration int    `json:"totalDuration"`

	Date      string `gorm:"size:10;index;not null" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"startTime"`
	EndTime   string `gorm:"size:5;not null" json:"endTime"`

	Status        string `gorm:"size:20;index;default:'upcoming'" json:"status"`
	Type          string `gorm:"size:20;default:'online'" json:"type"`
	PaymentMethod string `gorm:"size:30;default:'cash'" json:"paymentMethod"`
	Notes         string `gorm:"size:255" json:"notes,omitempty"`
	// BookingKey is the 4-digit PIN the customer shows at check-in.
	BookingKey string `gorm:"size:4" json:"bookingKey,omitempty"`

	OriginalPrice    decimal.Decimal `gorm:"type:numeric(12,2)" json:"originalPrice"`
	DiscountAmount   decimal.Decimal `gorm:"type:numeric(12,2)" json:"discountAmount"`
	FinalPrice       decimal.Decimal `gorm:"type:numeric(12,2)" json:"finalPrice"`
	AdminCommission  decimal.Decimal `gorm:"type:numeric(12,2)" json:"adminCommission"`
	AdminNetRevenue  decimal.Decimal `gorm:"type:numeric(12,2)" json:"adminNetRevenue"`
	BarberNetRevenue decimal.Decimal `gorm:"type:numeric(12,2)" json:"barberNetRevenue"`

	AmountCollectedBy string `gorm:"size:10;default:'BARBER'" json:"amountCollectedBy"`
	SettlementStatus  string `gorm:"size:10;index;default:'PENDING'" json:"settlementStatus"`
	SettlementID      *uint  `gorm:"index" json:"settlementId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
