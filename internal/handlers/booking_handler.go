package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/actor"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucbooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create  *ucbooking.CreateBooking
	actions *ucbooking.BookingActions
	list    *ucbooking.ListBookings
}

func NewBookingHandler(
	create *ucbooking.CreateBooking,
	actions *ucbooking.BookingActions,
	list *ucbooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		create:  create,
		actions: actions,
		list:    list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ShopID        uint   `json:"shopId" binding:"required"`
	BarberID      uint   `json:"barberId"`
	ServiceIDs    []uint `json:"serviceIds"`
	Date          string `json:"date" binding:"required,ymd"`
	StartTime     string `json:"startTime" binding:"required,hhmm"`
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,max=30"`
	Type          string `json:"type" binding:"omitempty,oneof=online walk-in blocked"`
	Duration      int    `json:"duration" binding:"omitempty,min=1,max=720"`
	Notes         string `json:"notes" binding:"max=255"`
}

type CheckInRequest struct {
	BookingKey string `json:"bookingKey" binding:"required,len=4,numeric"`
}

type listShopQuery struct {
	From string `form:"from" binding:"omitempty,ymd"`
	To   string `form:"to" binding:"omitempty,ymd"`
}

// ======================================================
// CREATE
// ======================================================

// POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	a := middleware.ActorFrom(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in := ucbooking.CreateBookingInput{
		ShopID:        req.ShopID,
		ServiceIDs:    req.ServiceIDs,
		Duration:      req.Duration,
		Date:          req.Date,
		StartTime:     req.StartTime,
		PaymentMethod: req.PaymentMethod,
		Type:          domain.Type(req.Type),
		Notes:         req.Notes,
	}
	if req.BarberID != 0 {
		in.BarberID = &req.BarberID
	}

	// walk-ins and blocked time are entered by the shop on nobody's behalf
	switch in.Type {
	case domain.TypeWalkIn, domain.TypeBlocked:
		if !a.ManagesShop(req.ShopID) {
			httperr.Forbidden(c, "forbidden", "only the shop can enter walk-ins or blocked time")
			return
		}
	default:
		in.UserID = &a.UserID
	}

	b, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, b)
}

// ======================================================
// LISTINGS
// ======================================================

// GET /me/bookings
func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.list.ForUser(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, bookings)
}

// GET /shops/:shopId/bookings?from=&to=
func (h *BookingHandler) ListShop(c *gin.Context) {
	shopID, ok := uintParam(c, "shopId")
	if !ok {
		return
	}

	var q listShopQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	bookings, err := h.list.ForShop(c.Request.Context(), middleware.ActorFrom(c), shopID, q.From, q.To)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.NewBookingList(bookings))
}

// ======================================================
// STATE CHANGES
// ======================================================

type bookingAction func(c *gin.Context, a actor.Actor, id uint) (*models.Booking, error)

func (h *BookingHandler) act(fn bookingAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}

		a := middleware.ActorFrom(c)

		b, err := fn(c, a, id)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if b.UserID == nil || *b.UserID != a.UserID {
			b.BookingKey = ""
		}
		httpresp.OK(c, b)
	}
}

// PATCH /bookings/:id/cancel
func (h *BookingHandler) Cancel() gin.HandlerFunc {
	return h.act(func(c *gin.Context, a actor.Actor, id uint) (*models.Booking, error) {
		return h.actions.Cancel(c.Request.Context(), a, id)
	})
}

// PATCH /bookings/:id/complete
func (h *BookingHandler) Complete() gin.HandlerFunc {
	return h.act(func(c *gin.Context, a actor.Actor, id uint) (*models.Booking, error) {
		return h.actions.Complete(c.Request.Context(), a, id)
	})
}

// PATCH /bookings/:id/approve
func (h *BookingHandler) Approve() gin.HandlerFunc {
	return h.act(func(c *gin.Context, a actor.Actor, id uint) (*models.Booking, error) {
		return h.actions.Approve(c.Request.Context(), a, id)
	})
}

// PATCH /bookings/:id/no-show
func (h *BookingHandler) NoShow() gin.HandlerFunc {
	return h.act(func(c *gin.Context, a actor.Actor, id uint) (*models.Booking, error) {
		return h.actions.NoShow(c.Request.Context(), a, id)
	})
}

// PATCH /bookings/:id/check-in
func (h *BookingHandler) CheckIn() gin.HandlerFunc {
	return h.act(func(c *gin.Context, a actor.Actor, id uint) (*models.Booking, error) {
		var req CheckInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, httperr.ErrBusiness("invalid_booking_key")
		}
		return h.actions.CheckIn(c.Request.Context(), a, id, req.BookingKey)
	})
}
