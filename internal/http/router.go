package api

import (
	stdhttp "net/http"

	intconfig "transport-backend/internal/config"
	h "transport-backend/internal/http/handlers"
	"transport-backend/internal/http/middleware"
	"transport-backend/internal/services"
	"transport-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.Metrics(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := services.AuthService{
		Secret:       []byte(env.JWTSecret),
		Username:     env.AdminUsername,
		PasswordHash: env.AdminPasswordHash,
	}
	if !auth.Enabled() {
		utils.Log().Warn("JWT_SECRET not set; admin endpoints are unauthenticated")
	}
	admin := middleware.RequireAdmin(auth)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		api.POST("/auth/login", h.Login(auth))

		routes := api.Group("/routes")
		routes.GET("", h.ListRoutes)
		routes.GET("/:id", h.GetRoute)
		routes.GET("/:id/schedules", h.ListRouteSchedules)

		api.GET("/schedules", h.ListSchedules)
		api.POST("/calculate-price", h.CalculatePrice)

		bookings := api.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("", admin, h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/ticket", h.GetBookingTicket)
		bookings.PATCH("/:id/status", admin, h.UpdateBookingStatus)

		contact := api.Group("/contact")
		contact.POST("", h.SubmitInquiry)
		contact.GET("", admin, h.ListInquiries)
		contact.PATCH("/:id/status", admin, h.UpdateInquiryStatus)

		api.POST("/seed", admin, h.Seed(env.SeedEnabled))
	}

	return r
}
