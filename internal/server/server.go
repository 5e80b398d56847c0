// Package server wires the HTTP surface: routing, middleware and the
// websocket endpoint.
package server

import (
	"context"
	"net/http"
	"time"

	"gymdesk/internal/auth"
	"gymdesk/internal/chat"
	"gymdesk/internal/config"
	"gymdesk/internal/contact"
	"gymdesk/internal/email"
	"gymdesk/internal/eventlog"
	"gymdesk/internal/gym"
	"gymdesk/internal/plan"
	"gymdesk/internal/progress"
	"gymdesk/internal/review"
	"gymdesk/internal/role"
	"gymdesk/internal/schedule"
	"gymdesk/internal/storage"
	"gymdesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	hub    *chat.Hub
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service, rdb *redis.Client) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(50, 100))

	media := storage.New(cfg.MediaStoreURL, cfg.MediaStoreKey)

	eventService := eventlog.NewService(eventlog.NewRepository(db))
	eventHandler := eventlog.NewHandler(eventService)

	userHandler := user.NewHandler(user.NewRepository(db), eventService, cfg.JWTSecret)

	gymService := gym.NewService(gym.NewRepository(db), emailService, media, eventService)
	gymHandler := gym.NewHandler(gymService)

	scheduleService := schedule.NewService(schedule.NewRepository(db), emailService, eventService)
	scheduleHandler := schedule.NewHandler(scheduleService)

	planHandler := plan.NewHandler(plan.NewService(plan.NewRepository(db)))

	hub := chat.NewHub(rdb)
	chatService := chat.NewService(chat.NewRepository(db), hub)
	chatHandler := chat.NewHandler(chatService, hub)

	reviewHandler := review.NewHandler(review.NewService(review.NewRepository(db)))
	contactHandler := contact.NewHandler(contact.NewRepository(db))
	progressHandler := progress.NewHandler(progress.NewService(progress.NewRepository(db), media))

	authed := auth.AuthMiddleware(cfg.JWTSecret)

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", userHandler.Register)
		authGroup.POST("/login", userHandler.Login)
		authGroup.POST("/refresh", userHandler.RefreshToken)

		authGroup.GET("/me", authed, userHandler.GetMe)
		authGroup.PUT("/profile", authed, userHandler.UpdateProfile)
		authGroup.POST("/page-view", authed, userHandler.RecordPageView)
	}

	gymGroup := router.Group("/api/gym")
	{
		gymGroup.GET("/list", gymHandler.ListGyms)
		gymGroup.GET("/:id", gymHandler.GetGym)

		// Trainers see only member requests; gym owners see all.
		gymGroup.GET("/requests", authed, auth.RequireRole(role.Gym, role.Trainer), gymHandler.ListRequests)
		gymGroup.POST("/requests/:id/accept", authed, auth.RequireRole(role.Gym, role.Trainer), gymHandler.AcceptRequest)
		gymGroup.POST("/requests/:id/deny", authed, auth.RequireRole(role.Gym, role.Trainer), gymHandler.DenyRequest)

		owner := gymGroup.Group("", authed, auth.RequireRole(role.Gym))
		{
			owner.PUT("/profile", gymHandler.Update)
			owner.POST("/photos", gymHandler.AddPhoto)
			owner.DELETE("/photos", gymHandler.DeletePhoto)

			owner.POST("/announcements", chatHandler.CreateAnnouncement)
			owner.PUT("/announcements/:id", chatHandler.UpdateAnnouncement)
			owner.DELETE("/announcements/:id", chatHandler.DeleteAnnouncement)
		}
	}

	memberGroup := router.Group("/api/member", authed)
	{
		memberGroup.POST("/join-gym", auth.RequireRole(role.Member, role.Trainer), gymHandler.Join)

		members := memberGroup.Group("", auth.RequireRole(role.Member))
		{
			members.GET("/slots", scheduleHandler.ListAvailableSlots)
			members.POST("/slots/:id/book", scheduleHandler.BookSlot)
			members.GET("/bookings", scheduleHandler.ListMemberBookings)
			members.GET("/schedules", scheduleHandler.ListMemberSchedules)

			members.POST("/plan-requests", planHandler.RequestPlan)
			members.GET("/plan-requests", planHandler.ListMemberRequests)
			members.GET("/workout-plans", planHandler.ListMemberWorkoutPlans)
			members.GET("/diet-plans", planHandler.ListMemberDietPlans)

			members.POST("/macros", progressHandler.LogMacros)
			members.GET("/macros", progressHandler.ListMacros)
			members.DELETE("/macros/:id", progressHandler.DeleteMacroLog)
			members.POST("/progress", progressHandler.LogProgress)
			members.GET("/progress", progressHandler.ListProgress)
			members.POST("/progress/:id/photos", progressHandler.AddPhoto)
			members.DELETE("/progress/:id", progressHandler.DeleteProgressLog)
		}
	}

	trainerGroup := router.Group("/api/trainer", authed, auth.RequireRole(role.Trainer))
	{
		trainerGroup.POST("/slots", scheduleHandler.PublishSlot)
		trainerGroup.GET("/slots", scheduleHandler.ListTrainerSlots)
		trainerGroup.DELETE("/slots/:id", scheduleHandler.DeleteSlot)
		trainerGroup.GET("/bookings", scheduleHandler.ListTrainerBookings)

		trainerGroup.POST("/schedules", scheduleHandler.CreateSchedule)
		trainerGroup.GET("/schedules", scheduleHandler.ListTrainerSchedules)
		trainerGroup.PUT("/schedules/:id", scheduleHandler.UpdateSchedule)
		trainerGroup.DELETE("/schedules/:id", scheduleHandler.DeleteSchedule)

		trainerGroup.GET("/plan-requests", planHandler.ListTrainerRequests)
		trainerGroup.POST("/plan-requests/:id/approve", planHandler.ApproveRequest)
		trainerGroup.POST("/plan-requests/:id/deny", planHandler.DenyRequest)

		trainerGroup.POST("/workout-plans", planHandler.CreateWorkoutPlan)
		trainerGroup.GET("/workout-plans", planHandler.ListTrainerWorkoutPlans)
		trainerGroup.PUT("/workout-plans/:id", planHandler.UpdateWorkoutPlan)
		trainerGroup.DELETE("/workout-plans/:id", planHandler.DeleteWorkoutPlan)

		trainerGroup.POST("/diet-plans", planHandler.CreateDietPlan)
		trainerGroup.GET("/diet-plans", planHandler.ListTrainerDietPlans)
		trainerGroup.PUT("/diet-plans/:id", planHandler.UpdateDietPlan)
		trainerGroup.DELETE("/diet-plans/:id", planHandler.DeleteDietPlan)
	}

	chatGroup := router.Group("/api/chat", authed)
	{
		chatGroup.POST("/messages", chatHandler.SendMessage)
		chatGroup.GET("/history/:userId", chatHandler.History)
		chatGroup.GET("/announcements", chatHandler.ListAnnouncements)
	}

	reviewGroup := router.Group("/api/review", authed, auth.RequireRole(role.Member))
	{
		reviewGroup.POST("", reviewHandler.Submit)
		reviewGroup.GET("", reviewHandler.ListOwnGym)
	}

	router.POST("/api/contact", contactHandler.Submit)

	adminGroup := router.Group("/api/admin", authed, auth.RequireRole(role.Admin))
	{
		adminGroup.GET("/analytics", eventHandler.Analytics)
		adminGroup.GET("/gyms", gymHandler.ListGyms)
		adminGroup.DELETE("/gyms/:id", gymHandler.DeleteGym)
		adminGroup.GET("/reviews", reviewHandler.ListAll)
		adminGroup.DELETE("/reviews/:id", reviewHandler.Delete)
		adminGroup.GET("/contact-messages", contactHandler.List)
		adminGroup.DELETE("/contact-messages/:id", contactHandler.Delete)
	}

	router.GET("/ws", authed, chatHandler.ServeWS)

	router.GET("/health", Health)
	router.GET("/test-email", TestEmail(emailService))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		hub:    hub,
		config: cfg,
	}
}

// Hub exposes the chat hub so the caller can run its fan-out loop.
func (s *Server) Hub() *chat.Hub {
	return s.hub
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
