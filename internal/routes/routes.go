package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/actor"
	"github.com/BruksfildServices01/salon-scheduler/internal/app"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

// RegisterRoutes mounts the JSON API on r.
func RegisterRoutes(r *gin.Engine, a *app.App) {
	uc := a.UseCases

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(a.Log),
		middleware.AccessLog(a.Log.Named("http")),
		middleware.CORSMiddleware(a.Config.Server.AllowOrigins),
	)

	r.GET("/health", health(a.DB, a.Log))

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(uc.Availability, uc.Schedule)
	bookingHandler := handlers.NewBookingHandler(uc.CreateBooking, uc.BookingActions, uc.ListBookings)
	barberHandler := handlers.NewBarberHandler(uc.CreateBarber, uc.UpdateSchedule)
	financeHandler := handlers.NewFinanceHandler(
		uc.RunSettlement,
		uc.Preview,
		uc.Pending,
		uc.Summary,
		uc.ManualSettlement,
		uc.Settlements,
	)
	shopHandler := handlers.NewShopHandler(a.DB)
	meHandler := handlers.NewMeHandler(a.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(a.AuditLog)
	jobsHandler := handlers.NewJobsHandler(a.Scheduler)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/shops/:shopId", shopHandler.Get)
		api.GET("/shops/:shopId/availability", availabilityHandler.Slots)
		api.GET("/barbers/:barberId/schedule", availabilityHandler.Schedule)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(a.Config.Server.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/shops/:shopId/settings", shopHandler.UpdateSettings)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel())
			secured.PATCH("/bookings/:id/complete", bookingHandler.Complete())
			secured.PATCH("/bookings/:id/approve", bookingHandler.Approve())
			secured.PATCH("/bookings/:id/check-in", bookingHandler.CheckIn())
			secured.PATCH("/bookings/:id/no-show", bookingHandler.NoShow())

			secured.GET("/shops/:shopId/bookings", bookingHandler.ListShop)
			secured.POST("/shops/:shopId/barbers", barberHandler.Create)
			secured.PUT("/barbers/:barberId/schedule", barberHandler.UpdateSchedule)

			secured.GET("/shops/:shopId/finance/summary", financeHandler.Summary)
			secured.GET("/shops/:shopId/finance/pending", financeHandler.ShopPending)
			secured.GET("/settlements", financeHandler.ListSettlements)
			secured.GET("/settlements/:id", financeHandler.GetSettlement)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(
			middleware.AuthMiddleware(a.Config.Server.JWTSecret),
			middleware.RequireRole(actor.RoleAdmin),
		)
		{
			admin.POST("/settlements/run", financeHandler.Run)
			admin.GET("/settlements/preview", financeHandler.Preview)
			admin.GET("/settlements/pending", financeHandler.Pending)
			admin.POST("/settlements", financeHandler.CreateManual)
			admin.PATCH("/settlements/:id/complete", financeHandler.CompleteSettlement)

			admin.POST("/jobs/:name/run", jobsHandler.Run)
		}
	}
}

func health(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			log.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
