package routes

import (
	"net/http"
	"time"

	"fundihub/handlers"
	"fundihub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers client account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.POST("/login", hb.User.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware("client"))
		api.GET("/me", hb.User.GetMeHandler)
		api.POST("/logout", handlers.LogoutHandler)
	}
}

// RegisterProviderRoutes registers provider account endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.POST("/register", hb.Provider.RegisterHandler)
		api.POST("/login", hb.Provider.LoginHandler)

		// Profile lookup is open to any authenticated party.
		api.GET("/:id", middleware.JWTAuthMiddleware("client", "provider", "admin"), hb.Provider.GetProviderHandler)
		api.POST("/logout", middleware.JWTAuthMiddleware("provider"), handlers.LogoutHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking workflow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware("client", "provider"))
		bookingGroup.POST("", hb.Booking.CreateBookingHandler)
		bookingGroup.GET("/:id", hb.Booking.GetBookingHandler)
		bookingGroup.PATCH("/:id/status", hb.Booking.TransitionHandler)
	}
}

// RegisterNotificationRoutes registers notification read endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware("client", "provider", "admin"))
		api.GET("", hb.Notification.ListHandler)
		api.PATCH("/:id/read", hb.Notification.MarkReadHandler)
	}
}

// RegisterPaymentRoutes registers payment endpoints plus the unauthenticated
// gateway callback routes.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware("client", "provider"))
		api.GET("/:id", hb.Payment.GetPaymentHandler)
		api.POST("/:id/initiate", hb.Payment.InitiatePaymentHandler)
	}

	r.POST("/webhook/mpesa", hb.Payment.MpesaWebhookHandler)
	r.POST("/webhook/paypal", hb.Payment.PaypalWebhookHandler)
}

// RegisterRealtimeRoutes registers the WebSocket endpoint.
func RegisterRealtimeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/realtime")
	{
		api.Use(middleware.JWTAuthMiddleware("client", "provider"))
		api.GET("/ws", hb.Realtime.ConnectHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware("admin"))
		adminGroup.POST("/providers/:id/suspend", hb.Admin.SuspendProviderHandler)
		adminGroup.POST("/providers/:id/reinstate", hb.Admin.ReinstateProviderHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm FundiHub"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterRealtimeRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
