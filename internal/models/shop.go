package models

import "time"

type Shop struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OwnerID *uint  `json:"ownerId"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`

	BufferTime          int  `gorm:"default:0" json:"bufferTime"`
	MinBookingNotice    int  `gorm:"default:0" json:"minBookingNotice"`
	MaxBookingNotice    int  `gorm:"default:30" json:"maxBookingNotice"`
	AutoApproveBookings bool `gorm:"not null" json:"autoApproveBookings"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
