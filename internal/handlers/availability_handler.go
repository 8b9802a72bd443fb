package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucbooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	availability *ucbooking.GetAvailability
	schedule     *ucbooking.GetSchedule
}

func NewAvailabilityHandler(
	availability *ucbooking.GetAvailability,
	schedule *ucbooking.GetSchedule,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
		schedule:     schedule,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type availabilityQuery struct {
	Date     string `form:"date" binding:"required,ymd"`
	BarberID uint   `form:"barberId"`
	Duration int    `form:"duration" binding:"omitempty,min=1,max=720"`
}

type scheduleQuery struct {
	Date string `form:"date" binding:"required,ymd"`
}

// ======================================================
// ENDPOINTS
// ======================================================

// GET /shops/:shopId/availability?date=YYYY-MM-DD&barberId=&duration=
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	shopID, ok := uintParam(c, "shopId")
	if !ok {
		return
	}

	var q availabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	in := ucbooking.AvailabilityQuery{
		ShopID:   shopID,
		Date:     q.Date,
		Duration: q.Duration,
	}
	if q.BarberID != 0 {
		in.BarberID = &q.BarberID
	}

	slots, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  q.Date,
		"slots": slots,
	})
}

// GET /barbers/:barberId/schedule?date=YYYY-MM-DD
func (h *AvailabilityHandler) Schedule(c *gin.Context) {
	barberID, ok := uintParam(c, "barberId")
	if !ok {
		return
	}

	var q scheduleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	view, err := h.schedule.Execute(c.Request.Context(), barberID, q.Date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, view)
}
