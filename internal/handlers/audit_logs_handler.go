package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

type AuditLogsHandler struct {
	logs *audit.Logger
}

func NewAuditLogsHandler(logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

type auditLogsQuery struct {
	ShopID   *uint  `form:"shopId" binding:"omitempty,min=1"`
	Action   string `form:"action" binding:"max=50"`
	Entity   string `form:"entity" binding:"max=50"`
	EntityID *uint  `form:"entityId" binding:"omitempty,min=1"`
	From     string `form:"from" binding:"omitempty,ymd"`
	To       string `form:"to" binding:"omitempty,ymd"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

// GET /audit-logs?shopId=&action=&entity=&entityId=&from=&to=&page=&limit=
//
// Owners see their own shop; admins see every shop or the one in shopId.
func (h *AuditLogsHandler) List(c *gin.Context) {
	a := middleware.ActorFrom(c)

	var q auditLogsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	f := audit.Filter{
		Action:   q.Action,
		Entity:   q.Entity,
		EntityID: q.EntityID,
		From:     q.From,
		To:       q.To,
		Page:     q.Page,
		Limit:    q.Limit,
	}

	switch {
	case a.IsAdmin():
		f.ShopID = q.ShopID
	case a.ShopID != nil:
		f.ShopID = a.ShopID
	default:
		httperr.Forbidden(c, "forbidden", "audit logs are limited to shop owners")
		return
	}

	page, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, page)
}
