package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ShopHandler exposes the booking rules a shop controls.
type ShopHandler struct {
	db *gorm.DB
}

func NewShopHandler(db *gorm.DB) *ShopHandler {
	return &ShopHandler{db: db}
}

type UpdateShopSettingsRequest struct {
	BufferTime          *int  `json:"bufferTime" binding:"omitempty,min=0,max=120"`
	MinBookingNotice    *int  `json:"minBookingNotice" binding:"omitempty,min=0,max=1440"`
	MaxBookingNotice    *int  `json:"maxBookingNotice" binding:"omitempty,min=1,max=365"`
	AutoApproveBookings *bool `json:"autoApproveBookings"`
}

// GET /shops/:shopId
func (h *ShopHandler) Get(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shop)
}

// PATCH /shops/:shopId/settings
func (h *ShopHandler) UpdateSettings(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	if !middleware.ActorFrom(c).ManagesShop(shop.ID) {
		httperr.Forbidden(c, "forbidden", "not your shop")
		return
	}

	var req UpdateShopSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if req.BufferTime != nil {
		shop.BufferTime = *req.BufferTime
	}
	if req.MinBookingNotice != nil {
		shop.MinBookingNotice = *req.MinBookingNotice
	}
	if req.MaxBookingNotice != nil {
		shop.MaxBookingNotice = *req.MaxBookingNotice
	}
	if req.AutoApproveBookings != nil {
		shop.AutoApproveBookings = *req.AutoApproveBookings
	}

	if err := h.db.WithContext(c.Request.Context()).Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "failed to save shop settings")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) load(c *gin.Context) (*models.Shop, bool) {
	shopID, ok := uintParam(c, "shopId")
	if !ok {
		return nil, false
	}

	var shop models.Shop
	if err := h.db.WithContext(c.Request.Context()).First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "shop_not_found", "shop not found")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_shop", "failed to load shop")
		return nil, false
	}
	return &shop, true
}
