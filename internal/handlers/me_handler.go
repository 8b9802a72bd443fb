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

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GET /me
func (h *MeHandler) GetMe(c *gin.Context) {
	a := middleware.ActorFrom(c)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, a.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "user not found")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "failed to load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":                user.ID,
			"name":              user.Name,
			"email":             user.Email,
			"phone":             user.Phone,
			"role":              a.Role,
			"shopId":            a.ShopID,
			"noShowCount":       user.NoShowCount,
			"cancellationCount": user.CancellationCount,
			"isFlagged":         user.IsFlagged,
		},
	})
}
