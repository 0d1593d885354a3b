package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/imclatam/imc-backend/internal/config"
	"github.com/imclatam/imc-backend/internal/db"
	"github.com/imclatam/imc-backend/internal/handler"
	"github.com/imclatam/imc-backend/internal/middleware"
	"github.com/imclatam/imc-backend/internal/repository"
	"github.com/imclatam/imc-backend/internal/service"
	"github.com/imclatam/imc-backend/internal/token"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "server").Logger()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET environment variable must be set")
	}

	database, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}

	userRepo := repository.NewMySQLUserRepository(database)
	imcRepo := repository.NewMySQLImcRepository(database)

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	authService := service.NewAuthService(userRepo, issuer)
	userService := service.NewUserService(userRepo)
	imcService := service.NewImcService(imcRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	imcHandler := handler.NewImcHandler(imcService)

	loginRL := middleware.NewRateLimiter(5, 15*time.Minute)

	r := mux.NewRouter()

	// Global middleware: request id → access log → CORS → security headers → body cap
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
			next.ServeHTTP(w, r)
		})
	})

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/auth/register", http.HandlerFunc(authHandler.Register)).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/auth/login", loginRL.Middleware(http.HandlerFunc(authHandler.Login))).Methods(http.MethodPost, http.MethodOptions)

	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(issuer))

	protected.HandleFunc("/imc/calcular", imcHandler.Calcular).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/imc/historial", imcHandler.Historial).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/imc/estadisticas", imcHandler.Estadisticas).Methods(http.MethodGet, http.MethodOptions)

	protected.HandleFunc("/users/profile", userHandler.Profile).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/users", userHandler.GetAll).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/users/{id:[0-9]+}", userHandler.Update).Methods(http.MethodPatch, http.MethodOptions)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("server starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
