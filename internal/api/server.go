package api

import (
	"context"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/event-booking/docs"
	v1 "github.com/yizeng/gab/gin/gorm/event-booking/internal/api/handler/v1"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/config"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/gateway"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/mailer"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/repository/dao"
	"github.com/yizeng/gab/gin/gorm/event-booking/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	bookingSvc *service.BookingService
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	bookingRepo := repository.NewBookingRepository(dao.NewBookingDAO(db))
	rsvpRepo := repository.NewRSVPRepository(dao.NewRSVPDAO(db))
	settingsRepo := repository.NewSettingsRepository(dao.NewSettingsDAO(db))

	settingsSvc := service.NewSettingsService(settingsRepo, conf.Payment)
	userSvc := service.NewUserService(userRepo)
	eventSvc := service.NewEventService(eventRepo)
	rsvpSvc := service.NewRSVPService(rsvpRepo, eventRepo)

	notifier := service.NewNotificationService(
		mailer.NewSMTPMailer(conf.SMTP),
		userRepo,
		conf.SMTP.AdminEmail,
	)

	bookingSvc := service.NewBookingService(
		bookingRepo,
		eventRepo,
		userRepo,
		gateway.NewRegistry(),
		settingsSvc,
		notifier,
		conf.API.BaseURL,
		time.Duration(conf.Booking.PendingTTLMinutes)*time.Minute,
	)
	s.bookingSvc = bookingSvc

	dashboardSvc := service.NewDashboardService(bookingRepo, eventRepo, userRepo, rsvpSvc)

	authHandler := v1.NewAuthHandler(conf.API, service.NewAuthService(userRepo))
	userHandler := v1.NewUserHandler(userSvc)
	eventHandler := v1.NewEventHandler(eventSvc)
	bookingHandler := v1.NewBookingHandler(bookingSvc)
	paymentHandler := v1.NewPaymentHandler(bookingSvc)
	rsvpHandler := v1.NewRSVPHandler(rsvpSvc)
	dashboardHandler := v1.NewDashboardHandler(dashboardSvc)
	settingsHandler := v1.NewSettingsHandler(settingsSvc)

	s.MountHandlers(
		userSvc,
		authHandler,
		userHandler,
		eventHandler,
		bookingHandler,
		paymentHandler,
		rsvpHandler,
		dashboardHandler,
		settingsHandler,
	)

	return s
}

// StartBackgroundJobs launches the stale-pending sweep. It is separate from
// NewServer so tests can build a server without spawning goroutines.
func (s *Server) StartBackgroundJobs(ctx context.Context) {
	s.bookingSvc.StartSweeper(ctx, time.Minute)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	userSvc *service.UserService,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	bookingHandler *v1.BookingHandler,
	paymentHandler *v1.PaymentHandler,
	rsvpHandler *v1.RSVPHandler,
	dashboardHandler *v1.DashboardHandler,
	settingsHandler *v1.SettingsHandler,
) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/events", eventHandler.HandleListEvents)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
		public.GET("/events/:eventID/rsvp/counts", rsvpHandler.HandleCountEventResponses)

		public.GET("/settings", settingsHandler.HandleGetPublicSettings)

		public.GET("/payments/gateways", paymentHandler.HandleListGateways)
		public.POST("/payments/:gateway/webhook", paymentHandler.HandleWebhook)
		public.GET("/payments/success", paymentHandler.HandlePaymentSuccess)
		public.GET("/payments/cancel", paymentHandler.HandlePaymentCancel)

		public.GET("/bookings/verify/:reference", bookingHandler.HandleVerifyTicket)
	}

	users := s.Router.Group(basePath, verifyJWT, middleware.LoadRole(userSvc))
	{
		users.GET("/users/me", userHandler.HandleGetMe)
		users.GET("/users/:userID", userHandler.HandleGetUser)

		users.POST("/bookings", bookingHandler.HandleCreateBooking)
		users.GET("/bookings", bookingHandler.HandleListMyBookings)
		users.GET("/bookings/:bookingID", bookingHandler.HandleGetBooking)
		users.POST("/bookings/:bookingID/cancel", bookingHandler.HandleCancelBooking)

		users.POST("/payments/:gateway/checkout", paymentHandler.HandleCheckout)

		users.POST("/events/:eventID/rsvp", rsvpHandler.HandleRespond)
		users.GET("/events/:eventID/rsvp", rsvpHandler.HandleGetMyResponse)
		users.DELETE("/events/:eventID/rsvp", rsvpHandler.HandleWithdraw)

		users.GET("/dashboard", dashboardHandler.HandleUserDashboard)
	}

	admin := s.Router.Group(basePath+"/admin", verifyJWT, middleware.RequireAdmin(userSvc))
	{
		admin.GET("/events", eventHandler.HandleListAllEvents)
		admin.POST("/events", eventHandler.HandleCreateEvent)
		admin.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		admin.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		admin.POST("/events/:eventID/publish", eventHandler.HandlePublishEvent)
		admin.POST("/events/:eventID/cancel", eventHandler.HandleCancelEvent)

		admin.GET("/events/:eventID/bookings", bookingHandler.HandleListEventBookings)
		admin.POST("/bookings/sweep", bookingHandler.HandleSweepStalePending)
		admin.GET("/events/:eventID/rsvps", rsvpHandler.HandleListEventResponses)
		admin.GET("/events/:eventID/stats", dashboardHandler.HandleEventStats)

		admin.GET("/dashboard", dashboardHandler.HandleAdminDashboard)

		admin.GET("/settings", settingsHandler.HandleGetSettings)
		admin.PUT("/settings", settingsHandler.HandleUpdateSettings)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "API for gin/event-booking"
	docs.SwaggerInfo.Description = "This is an example of Go API with Gin."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
