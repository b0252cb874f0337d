package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/neet-prep/backend/internal/analytics"
	"github.com/neet-prep/backend/internal/auth"
	"github.com/neet-prep/backend/internal/calendar"
	"github.com/neet-prep/backend/internal/database"
	"github.com/neet-prep/backend/internal/generator"
	"github.com/neet-prep/backend/internal/middleware"
	"github.com/neet-prep/backend/internal/progress"
	"github.com/neet-prep/backend/internal/quiz"
	"github.com/neet-prep/backend/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Wire services
	store := progress.NewStore(storage.NewPostgres(db))
	store.Notifier().Subscribe(func() {
		log.Printf("[main] progress updated")
	})

	gen := generator.NewGenerator()
	log.Printf("[main] question generator using model %s", gen.ModelName())

	authHandler := auth.NewHandler(db)
	quizHandler := quiz.NewHandler(quiz.NewService(gen, store))
	progressHandler := progress.NewHandler(store)
	analyticsHandler := analytics.NewHandler(analytics.NewAggregator(store))
	calendarHandler := calendar.NewHandler(calendar.NewService(store))

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/quiz", quizHandler.StartQuiz).Methods("POST")
	protected.HandleFunc("/quiz/{id}/answers", quizHandler.SubmitAnswer).Methods("POST")
	protected.HandleFunc("/quiz/{id}/finish", quizHandler.FinishQuiz).Methods("POST")

	protected.HandleFunc("/daily", quizHandler.StartDaily).Methods("POST")
	protected.HandleFunc("/daily/{id}/answers", quizHandler.SubmitDailyAnswer).Methods("POST")
	protected.HandleFunc("/daily/status", quizHandler.DailyStatus).Methods("GET")

	protected.HandleFunc("/progress/history", progressHandler.GetQuizHistory).Methods("GET")
	protected.HandleFunc("/progress/daily", progressHandler.GetDailyHistory).Methods("GET")

	protected.HandleFunc("/analytics", analyticsHandler.GetAnalytics).Methods("GET")

	protected.HandleFunc("/calendar", calendarHandler.GetMonth).Methods("GET")
	protected.HandleFunc("/calendar/toggle", calendarHandler.ToggleDay).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
