package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/Himanshu-Rajkumar/notes-app/internal/config"
	noteDelete "github.com/Himanshu-Rajkumar/notes-app/internal/handlers/note/delete"
	"github.com/Himanshu-Rajkumar/notes-app/internal/handlers/note/get"
	"github.com/Himanshu-Rajkumar/notes-app/internal/handlers/note/getall"
	noteSave "github.com/Himanshu-Rajkumar/notes-app/internal/handlers/note/save"
	"github.com/Himanshu-Rajkumar/notes-app/internal/handlers/note/update"
	"github.com/Himanshu-Rajkumar/notes-app/internal/handlers/user/login"
	"github.com/Himanshu-Rajkumar/notes-app/internal/handlers/user/register"
	authmw "github.com/Himanshu-Rajkumar/notes-app/internal/middleware"
	"github.com/Himanshu-Rajkumar/notes-app/internal/storage/postgres"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/auth"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/logger/handlers/slogpretty"
	"github.com/Himanshu-Rajkumar/notes-app/pkg/logger/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	log.Info("starting notes service", slog.String("env", cfg.Env))
	log.Debug("debug log enabled")

	storage, err := postgres.New(cfg.StorageDSN)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		log.Error("failed to init token manager", sl.Err(err))
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Post("/register", register.New(log, storage))
	router.Post("/login", login.New(log, storage, tokens))

	router.Group(func(r chi.Router) {
		r.Use(authmw.Auth(log, tokens))
		r.Get("/myNotes", getall.New(log, storage))
		r.Get("/myNotes/{id}", get.New(log, storage))
		r.Post("/addNote", noteSave.New(log, storage))
		r.Put("/updateNote/{id}", update.New(log, storage))
		r.Delete("/deleteNote/{id}", noteDelete.New(log, storage))
	})

	log.Info("starting server", slog.String("address", cfg.Address))
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Error("failed to start server")
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}
	handler := opts.NewPrettyHandler(os.Stdout)
	return slog.New(handler)
}
