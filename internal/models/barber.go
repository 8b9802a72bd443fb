package models

import "time"

type Barber struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	ShopID uint   `gorm:"index;not null" json:"shopId"`
	Name   string `gorm:"size:100;not null" json:"name"`

	StartHour string `gorm:"size:5;default:'10:00'" json:"startHour"`
	EndHour   string `gorm:"size:5;default:'20:00'" json:"endHour"`

	Breaks         []BarberBreak    `gorm:"constraint:OnDelete:CASCADE;" json:"breaks"`
	WeeklySchedule []WeeklySchedule `gorm:"constraint:OnDelete:CASCADE;" json:"weeklySchedule"`
	SpecialHours   []SpecialHours   `gorm:"constraint:OnDelete:CASCADE;" json:"specialHours"`

	IsAvailable bool `gorm:"not null" json:"isAvailable"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BarberBreak is a recurring daily break on the default schedule.
type BarberBreak struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BarberID  uint   `gorm:"index" json:"-"`
	StartTime string `gorm:"size:5" json:"startTime"`
	EndTime   string `gorm:"size:5" json:"endTime"`
	Title     string `gorm:"size:100" json:"title,omitempty"`
}

// WeeklySchedule overrides the default window for one weekday.
type WeeklySchedule struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	BarberID  uint          `gorm:"uniqueIndex:idx_weekly_barber_day" json:"-"`
	Day       string        `gorm:"size:10;uniqueIndex:idx_weekly_barber_day" json:"day"`
	IsOpen    bool          `gorm:"not null" json:"isOpen"`
	StartHour string        `gorm:"size:5" json:"startHour"`
	EndHour   string        `gorm:"size:5" json:"endHour"`
	Breaks    []WeeklyBreak `gorm:"constraint:OnDelete:CASCADE;" json:"breaks"`
}

type WeeklyBreak struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	WeeklyScheduleID uint   `gorm:"index" json:"-"`
	StartTime        string `gorm:"size:5" json:"startTime"`
	EndTime          string `gorm:"size:5" json:"endTime"`
}

// SpecialHours overrides everything else for one exact date.
type SpecialHours struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BarberID  uint   `gorm:"uniqueIndex:idx_special_barber_date" json:"-"`
	Date      string `gorm:"size:10;uniqueIndex:idx_special_barber_date" json:"date"`
	IsOpen    bool   `gorm:"not null" json:"isOpen"`
	StartHour string `gorm:"size:5" json:"startHour"`
	EndHour   string `gorm:"size:5" json:"endHour"`
	Reason    string `gorm:"size:255" json:"reason,omitempty"`
}
