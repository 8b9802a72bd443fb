package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucsettlement "github.com/BruksfildServices01/salon-scheduler/internal/usecase/settlement"
)

// ======================================================
// HANDLER
// ======================================================

type FinanceHandler struct {
	run         *ucsettlement.RunSettlement
	preview     *ucsettlement.PreviewSettlement
	pending     *ucsettlement.PendingByShop
	summary     *ucsettlement.ShopFinanceSummary
	manual      *ucsettlement.CreateManualSettlement
	settlements *ucsettlement.Settlements
}

func NewFinanceHandler(
	run *ucsettlement.RunSettlement,
	preview *ucsettlement.PreviewSettlement,
	pending *ucsettlement.PendingByShop,
	summary *ucsettlement.ShopFinanceSummary,
	manual *ucsettlement.CreateManualSettlement,
	settlements *ucsettlement.Settlements,
) *FinanceHandler {
	return &FinanceHandler{
		run:         run,
		preview:     preview,
		pending:     pending,
		summary:     summary,
		manual:      manual,
		settlements: settlements,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ManualSettlementRequest struct {
	ShopID     uint   `json:"shopId" binding:"required"`
	BookingIDs []uint `json:"bookingIds"`
}

// ======================================================
// ADMIN
// ======================================================

// POST /admin/settlements/run
func (h *FinanceHandler) Run(c *gin.Context) {
	a := middleware.ActorFrom(c)

	res, err := h.run.Execute(c.Request.Context(), &a.UserID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, res)
}

// GET /admin/settlements/preview
func (h *FinanceHandler) Preview(c *gin.Context) {
	p, err := h.preview.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, p)
}

// GET /admin/settlements/pending
func (h *FinanceHandler) Pending(c *gin.Context) {
	rows, err := h.pending.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, rows)
}

// POST /admin/settlements
func (h *FinanceHandler) CreateManual(c *gin.Context) {
	var req ManualSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	s, err := h.manual.Execute(c.Request.Context(), middleware.ActorFrom(c).UserID, req.ShopID, req.BookingIDs)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, s)
}

// PATCH /admin/settlements/:id/complete
func (h *FinanceHandler) CompleteSettlement(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	s, err := h.settlements.Complete(c.Request.Context(), middleware.ActorFrom(c).UserID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

// ======================================================
// SHOP / SHARED
// ======================================================

// GET /shops/:shopId/finance/summary
func (h *FinanceHandler) Summary(c *gin.Context) {
	shopID, ok := uintParam(c, "shopId")
	if !ok {
		return
	}

	s, err := h.summary.Execute(c.Request.Context(), middleware.ActorFrom(c), shopID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

// GET /shops/:shopId/finance/pending
func (h *FinanceHandler) ShopPending(c *gin.Context) {
	shopID, ok := uintParam(c, "shopId")
	if !ok {
		return
	}

	bookings, err := h.pending.ShopPendingBookings(c.Request.Context(), middleware.ActorFrom(c), shopID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, bookings)
}

// GET /settlements
func (h *FinanceHandler) ListSettlements(c *gin.Context) {
	list, err := h.settlements.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

// GET /settlements/:id
func (h *FinanceHandler) GetSettlement(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	s, err := h.settlements.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}
