package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jparra05/habit-tracker/internal/config"
	"github.com/jparra05/habit-tracker/internal/database"
	"github.com/jparra05/habit-tracker/internal/handlers"
	"github.com/jparra05/habit-tracker/internal/jobs"
	"github.com/jparra05/habit-tracker/internal/repository"
	cronjobs "github.com/jparra05/habit-tracker/internal/scheduler"
	"github.com/jparra05/habit-tracker/internal/services"
	"github.com/jparra05/habit-tracker/pkg/logger"
	"github.com/jparra05/habit-tracker/pkg/middleware"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	habitService := services.NewHabitService(habitRepo, progressRepo)
	statsService := services.NewStatsService(habitRepo, progressRepo)
	recommendationService := services.NewRecommendationService(habitRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	habitHandler := handlers.NewHabitHandler(habitService, cfg)
	statsHandler := handlers.NewStatsHandler(statsService, cfg)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, cfg)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public user routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")

	// Protected user routes (settings)
	protectedUserRoutes := router.PathPrefix("/users").Subrouter()
	protectedUserRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedUserRoutes.HandleFunc("/me", userHandler.GetProfileHandler).Methods("GET")
	protectedUserRoutes.HandleFunc("/me", userHandler.UpdateProfileHandler).Methods("PATCH")
	protectedUserRoutes.HandleFunc("/me/password", userHandler.ChangePasswordHandler).Methods("PUT")

	// Habit routes
	protectedHabitRoutes := router.PathPrefix("/habits").Subrouter()
	protectedHabitRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedHabitRoutes.HandleFunc("", habitHandler.CreateHabitHandler).Methods("POST")
	protectedHabitRoutes.HandleFunc("", habitHandler.GetHabitsHandler).Methods("GET")
	protectedHabitRoutes.HandleFunc("/{id}", habitHandler.UpdateHabitHandler).Methods("PUT")
	protectedHabitRoutes.HandleFunc("/{id}", habitHandler.DeleteHabitHandler).Methods("DELETE")
	protectedHabitRoutes.HandleFunc("/{id}/progress", habitHandler.LogProgressHandler).Methods("POST")

	// Stats routes
	protectedStatsRoutes := router.PathPrefix("/stats").Subrouter()
	protectedStatsRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedStatsRoutes.HandleFunc("", statsHandler.GetStatsHandler).Methods("GET")
	protectedStatsRoutes.HandleFunc("/{id}/history", statsHandler.GetHabitHistoryHandler).Methods("GET")

	// Recommendation routes
	protectedRecommendationRoutes := router.PathPrefix("/recommendations").Subrouter()
	protectedRecommendationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protectedRecommendationRoutes.HandleFunc("", recommendationHandler.GetRecommendationsHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Background refresh of cached completion rates
	refresher := jobs.NewRateRefresher(habitRepo, progressRepo)
	cronjobs.StartStatsCronJobs(refresher)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
