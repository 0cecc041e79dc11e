package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/KosalaEhub/ticket-book/internal/attempts"
	"github.com/KosalaEhub/ticket-book/internal/config"
	"github.com/KosalaEhub/ticket-book/internal/handler"
	"github.com/KosalaEhub/ticket-book/internal/middleware"
	"github.com/KosalaEhub/ticket-book/internal/repository"
	"github.com/KosalaEhub/ticket-book/internal/service"
	"github.com/KosalaEhub/ticket-book/internal/storage"
)

// maxLoginAttempts is the number of consecutive failures after which an
// email is locked out until the next successful login or restart.
const maxLoginAttempts = 3

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	uploads, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		slog.Error("upload directory unusable", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	client, err := repository.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			slog.Error("database disconnect failed", "error", err)
		}
	}()

	db := client.Database(cfg.MongoDB)
	userRepo := repository.NewUserRepository(db.Collection("users"))
	contactRepo := repository.NewContactRepository(db.Collection("contact"))

	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			slog.Error("index creation failed", "error", err)
			os.Exit(1)
		}
	}

	tracker := attempts.New(maxLoginAttempts)
	accountService := service.NewAccountService(userRepo, uploads, tracker, cfg.JWTSecret, cfg.SessionTTL)

	var notifier service.Notifier
	if cfg.SMTPHost != "" && cfg.ContactEmail != "" {
		notifier = service.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail, cfg.ContactEmail)
	} else {
		slog.Warn("SMTP not configured — contact notifications disabled")
	}
	contactService := service.NewContactService(contactRepo, notifier)

	render := handler.NewRenderer()
	pageHandler := handler.NewPageHandler(render)
	authHandler := handler.NewAuthHandler(accountService, cfg.SessionTTL, render)
	profileHandler := handler.NewProfileHandler(accountService, render)
	contactHandler := handler.NewContactHandler(contactService, render)
	uploadHandler := handler.NewUploadHandler(uploads)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/", pageHandler.HandleHome)
	r.Get("/about", pageHandler.HandleAbout)
	r.Get("/booking", pageHandler.HandleBooking)
	r.Get("/destinations", pageHandler.HandleDestinations)

	r.Get("/contact", contactHandler.HandleShow)
	r.Get("/register", authHandler.HandleShowRegister)
	r.Get("/login", authHandler.HandleShowLogin)
	r.Get("/uploads/{filename}", uploadHandler.HandleServe)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/contact", contactHandler.HandleSubmit)
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(cfg.JWTSecret))
		r.Get("/dashboard", profileHandler.HandleDashboard)
		r.Get("/profile", profileHandler.HandleShowProfile)
		r.Post("/profile", profileHandler.HandleUpdate)
		r.Get("/update", profileHandler.HandleShowUpdate)
		r.Post("/update", profileHandler.HandleUpdate)
		r.Get("/delete_profile", profileHandler.HandleDelete)
		r.Get("/logout", authHandler.HandleLogout)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
