package dto

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// BookingListDTO is a booking as the shop sees it. The check-in key is left
// out so only the customer can present it.
type BookingListDTO struct {
	ID            uint            `json:"id"`
	UserID        *uint           `json:"userId"`
	BarberID      uint            `json:"barberId"`
	ServiceNames  string          `json:"serviceNames"`
	Date          string          `json:"date"`
	StartTime     string          `json:"startTime"`
	EndTime       string          `json:"endTime"`
	Status        string          `json:"status"`
	Closed        bool            `json:"closed"`
	Type          string          `json:"type"`
	PaymentMethod string          `json:"paymentMethod"`
	FinalPrice    decimal.Decimal `json:"finalPrice"`
	Notes         string          `json:"notes,omitempty"`
}

func NewBookingList(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingListDTO{
			ID:            b.ID,
			UserID:        b.UserID,
			BarberID:      b.BarberID,
			ServiceNames:  b.ServiceNames,
			Date:          b.Date,
			StartTime:     b.StartTime,
			EndTime:       b.EndTime,
			Status:        b.Status,
			Closed:        booking.Status(b.Status).Terminal(),
			Type:          b.Type,
			PaymentMethod: b.PaymentMethod,
			FinalPrice:    b.FinalPrice,
			Notes:         b.Notes,
		})
	}
	return out
}
