package models

import "time"

type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Phone string `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Name  string `gorm:"size:100" json:"name"`
	Email string `gorm:"size:100" json:"email"`
	Role  string `gorm:"size:20;default:'user'" json:"role"`

	MyShopID *uint `json:"myShopId"`

	NoShowCount       int  `gorm:"default:0" json:"noShowCount"`
	CancellationCount int  `gorm:"default:0" json:"cancellationCount"`
	IsFlagged         bool `gorm:"default:false" json:"isFlagged"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
