package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucbarber "github.com/BruksfildServices01/salon-scheduler/internal/usecase/barber"
)

type BarberHandler struct {
	create   *ucbarber.CreateBarber
	schedule *ucbarber.UpdateSchedule
}

func NewBarberHandler(create *ucbarber.CreateBarber, schedule *ucbarber.UpdateSchedule) *BarberHandler {
	return &BarberHandler{create: create, schedule: schedule}
}

type CreateBarberRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	StartHour string `json:"startHour" binding:"omitempty,hhmm"`
	EndHour   string `json:"endHour" binding:"omitempty,hhmm"`
}

type BreakRequest struct {
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
	Title     string `json:"title" binding:"max=100"`
}

type WeeklyRequest struct {
	Day       string         `json:"day" binding:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	IsOpen    bool           `json:"isOpen"`
	StartHour string         `json:"startHour" binding:"required,hhmm"`
	EndHour   string         `json:"endHour" binding:"required,hhmm"`
	Breaks    []BreakRequest `json:"breaks" binding:"dive"`
}

type SpecialRequest struct {
	Date      string `json:"date" binding:"required,ymd"`
	IsOpen    bool   `json:"isOpen"`
	StartHour string `json:"startHour" binding:"omitempty,hhmm"`
	EndHour   string `json:"endHour" binding:"omitempty,hhmm"`
	Reason    string `json:"reason" binding:"max=255"`
}

type ScheduleRequest struct {
	StartHour   string           `json:"startHour" binding:"required,hhmm"`
	EndHour     string           `json:"endHour" binding:"required,hhmm"`
	IsAvailable bool             `json:"isAvailable"`
	Breaks      []BreakRequest   `json:"breaks" binding:"dive"`
	Weekly      []WeeklyRequest  `json:"weeklySchedule" binding:"dive"`
	Special     []SpecialRequest `json:"specialHours" binding:"dive"`
}

// POST /shops/:shopId/barbers
func (h *BarberHandler) Create(c *gin.Context) {
	shopID, ok := uintParam(c, "shopId")
	if !ok {
		return
	}

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), ucbarber.CreateBarberInput{
		ShopID:    shopID,
		Name:      req.Name,
		StartHour: req.StartHour,
		EndHour:   req.EndHour,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, b)
}

// PUT /barbers/:barberId/schedule
func (h *BarberHandler) UpdateSchedule(c *gin.Context) {
	barberID, ok := uintParam(c, "barberId")
	if !ok {
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in := ucbarber.ScheduleInput{
		StartHour:   req.StartHour,
		EndHour:     req.EndHour,
		IsAvailable: req.IsAvailable,
		Breaks:      toBreakInputs(req.Breaks),
	}
	for _, w := range req.Weekly {
		in.Weekly = append(in.Weekly, ucbarber.WeeklyInput{
			Day:       w.Day,
			IsOpen:    w.IsOpen,
			StartHour: w.StartHour,
			EndHour:   w.EndHour,
			Breaks:    toBreakInputs(w.Breaks),
		})
	}
	for _, sp := range req.Special {
		in.Special = append(in.Special, ucbarber.SpecialInput{
			Date:      sp.Date,
			IsOpen:    sp.IsOpen,
			StartHour: sp.StartHour,
			EndHour:   sp.EndHour,
			Reason:    sp.Reason,
		})
	}

	b, err := h.schedule.Execute(c.Request.Context(), middleware.ActorFrom(c), barberID, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, b)
}

func toBreakInputs(in []BreakRequest) []ucbarber.BreakInput {
	out := make([]ucbarber.BreakInput, 0, len(in))
	for _, br := range in {
		out = append(out, ucbarber.BreakInput{StartTime: br.StartTime, EndTime: br.EndTime, Title: br.Title})
	}
	return out
}
