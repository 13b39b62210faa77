package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bikerental/internal/config"
	"bikerental/internal/database"
	"bikerental/internal/middleware"
	"bikerental/internal/modules/bike"
	"bikerental/internal/modules/booking"
	"bikerental/internal/modules/payment"
	"bikerental/internal/modules/report"
	"bikerental/internal/modules/tracking"
	jwtsvc "bikerental/internal/pkg/jwt"
	"bikerental/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	bikeRepo := repository.NewBikeRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := tracking.NewHub()
	defer hub.Close()
	wsHandler := tracking.NewWSHandler(hub, j)

	bikeService := bike.NewService(bikeRepo)
	bikeHandler := bike.NewHandler(bikeService)

	bookingService := booking.NewService(bookingRepo, bikeRepo, userRepo, hub)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(paymentRepo, bookingRepo, bookingService)
	paymentHandler := payment.NewHandler(paymentService)

	reportService := report.NewService(bookingRepo, paymentRepo, bikeRepo, userRepo)
	reportHandler := report.NewHandler(reportService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		bikeHandler.RegisterPublicRoutes(v1)

		// authenticated users
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
		}

		// admin
		admin := v1.Group("/")
		admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			bikeHandler.RegisterAdminRoutes(admin)
			bookingHandler.RegisterAdminRoutes(admin)
			reportHandler.RegisterRoutes(admin)
		}

		// telemetry: bike trackers push positions with the device
		// credential, not a user token
		device := v1.Group("/")
		device.Use(middleware.DeviceTokenAuth(cfg.DeviceToken))
		{
			bookingHandler.RegisterDeviceRoutes(device)
		}
	}

	r.GET("/ws/tracking", wsHandler.HandleWebSocket)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
