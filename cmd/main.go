package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"trackit-app/trackit/broker"
	"trackit-app/trackit/config"
	"trackit-app/trackit/database"
	"trackit-app/trackit/middleware"
	"trackit-app/trackit/routes"
	"trackit-app/trackit/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// The broker is optional: without it the API still serves, only event
	// dispatch and the live stream are disabled.
	brokerAvailable := true
	if err := broker.InitProducer(cfg.NatsURL); err != nil {
		log.Printf("Warning: Failed to connect to NATS: %v", err)
		log.Println("The application will continue, but event streaming is disabled")
		brokerAvailable = false
	} else {
		defer broker.CloseProducer()
	}

	// Initialize authentication service
	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	services.AuthServiceInstance = authService

	// Initialize user service with auth service dependency
	userService := services.NewUserService(authService)
	services.UserServiceInstance = userService

	// Habit listings need streaks, so the habit service wraps the log service
	habitService := services.NewHabitService(services.HabitLogServiceInstance)
	services.HabitServiceInstance = habitService

	webSocketService := services.NewWebSocketService()
	services.WebSocketServiceInstance = webSocketService

	if brokerAvailable {
		eventDispatcher := services.NewEventDispatcherService(db)
		services.EventDispatcherServiceInstance = eventDispatcher
		eventDispatcher.Start()
		defer eventDispatcher.Stop()

		webSocketService.Start()
		defer webSocketService.Stop()
	} else {
		log.Println("Event dispatcher is disabled due to NATS unavailability")
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Registration and login are the only unauthenticated endpoints
	routes.RegisterAuthRoutes(router, db, authService, userService)
	routes.RegisterWebSocketRoutes(router, authService, webSocketService)

	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(authService))

	routes.RegisterUserRoutes(protected, db, userService)
	routes.RegisterTaskRoutes(protected, db, services.TaskServiceInstance)
	routes.RegisterHabitRoutes(protected, db, habitService)
	routes.RegisterHabitLogRoutes(protected, db, services.HabitLogServiceInstance)
	routes.RegisterAnalyticsRoutes(protected, db, services.AnalyticsServiceInstance)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		broker.CloseProducer()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
