package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"agencydesk/internal/cache"
	"agencydesk/internal/config"
	appcron "agencydesk/internal/cron"
	"agencydesk/internal/database"
	"agencydesk/internal/middleware"
	"agencydesk/internal/modules/availability"
	"agencydesk/internal/modules/booking"
	"agencydesk/internal/modules/calendar"
	"agencydesk/internal/modules/catalog"
	"agencydesk/internal/modules/events"
	"agencydesk/internal/modules/notification"
	jwtsvc "agencydesk/internal/pkg/jwt"
	"agencydesk/internal/pkg/mail"
	"agencydesk/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	hoursRepo := repository.NewWorkingHoursRepository(db)
	clientRepo := repository.NewClientRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	tokenRepo := repository.NewCalendarTokenRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	var slotCache *cache.SlotCache
	if cfg.RedisAddr != "" {
		slotCache = cache.NewSlotCache(cfg.RedisAddr, cfg.SlotCacheTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := slotCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable, slot cache disabled: %v", err)
			slotCache = nil
		}
		cancel()
	}

	hub := events.NewHub()
	defer hub.Close()

	notifService := notification.NewService(notifRepo)
	calendarService := calendar.NewService(calendar.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	}, tokenRepo, bookingRepo)

	var bookingCache booking.SlotCache
	var weekCache availability.SlotCacheInvalidator
	if slotCache != nil {
		bookingCache = slotCache
		weekCache = slotCache
	}

	bookingService := booking.NewService(bookingRepo, hoursRepo, calendarService, notifService, hub, bookingCache)
	availabilityService := availability.NewService(hoursRepo, weekCache)
	catalogService := catalog.NewService(clientRepo, serviceRepo)

	bookingHandler := booking.NewHandler(bookingService)
	availabilityHandler := availability.NewHandler(availabilityService)
	catalogHandler := catalog.NewHandler(catalogService)
	calendarHandler := calendar.NewHandler(calendarService)
	notifHandler := notification.NewHandler(notifService)
	eventsHandler := events.NewHandler(hub)

	mailer := mail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	sweeper := appcron.NewSweeper(bookingService, bookingRepo, mailer, notifService)
	if _, err := sweeper.Start(); err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// Google redirects here without our bearer token
		calendarHandler.RegisterCallbackRoute(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			availabilityHandler.RegisterRoutes(protected)
			calendarHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
			eventsHandler.RegisterRoutes(protected)

			staff := protected.Group("/")
			staff.Use(middleware.RequireRole("admin", "host"))
			{
				catalogHandler.RegisterRoutes(staff)
			}
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
