package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/league-api/internal/auth"
	"github.com/crucial707/league-api/internal/config"
	"github.com/crucial707/league-api/internal/db"
	"github.com/crucial707/league-api/internal/handlers"
	"github.com/crucial707/league-api/internal/middleware"
	"github.com/crucial707/league-api/internal/repo"
	"github.com/crucial707/league-api/internal/scheduler"
	"github.com/crucial707/league-api/internal/token"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbOpts := db.Options{
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		Name:         cfg.DBName,
		User:         cfg.DBUser,
		Password:     cfg.DBPass,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	}
	database, err := db.Connect(ctx, dbOpts)
	if err != nil {
		slog.Error("connect to database", "err", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if cfg.MigrateOnStart {
		if err := db.Migrate(dbOpts.URL()); err != nil {
			slog.Error("run migrations", "err", err)
			os.Exit(1)
		}
		slog.Info("migrations applied")
	}

	router, err := newRouter(database, cfg)
	if err != nil {
		slog.Error("build router", "err", err)
		os.Exit(1)
	}

	if cfg.AuditRetentionDays > 0 {
		retention := &scheduler.Retention{
			Purger: repo.NewAuditRepo(database),
			Keep:   time.Duration(cfg.AuditRetentionDays) * 24 * time.Hour,
		}
		go func() {
			if err := scheduler.Run(ctx, cfg.AuditPurgeCron, retention); err != nil {
				slog.Error("audit retention", "err", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown", "err", err)
		}
	}()

	slog.Info("starting server", "port", cfg.Port, "tls", cfg.TLSEnabled(), "require_auth", cfg.RequireAuth)
	if cfg.TLSEnabled() {
		err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server", "err", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func setupLogger(format string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

// newRouter wires repositories, services and handlers onto a chi router.
func newRouter(database *sql.DB, cfg config.Config) (http.Handler, error) {
	codec, err := token.NewCodec([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	codec.Leeway = time.Duration(cfg.JWTLeewaySeconds) * time.Second
	issuer := token.NewIssuer(codec, time.Duration(cfg.JWTExpireMinutes)*time.Minute)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	userRepo := repo.NewUserRepo(database)
	teamRepo := repo.NewTeamRepo(database)
	playerRepo := repo.NewPlayerRepo(database)
	matchRepo := repo.NewMatchRepo(database)
	statRepo := repo.NewStatisticRepo(database)
	auditRepo := repo.NewAuditRepo(database)

	authH := &handlers.AuthHandler{
		Service:   auth.NewService(userRepo, hasher, issuer),
		Users:     userRepo,
		Hasher:    hasher,
		AuditRepo: auditRepo,
	}
	userH := &handlers.UserHandler{Repo: userRepo, Hasher: hasher, AuditRepo: auditRepo}
	teamH := &handlers.TeamHandler{Repo: teamRepo, Players: playerRepo, AuditRepo: auditRepo}
	playerH := &handlers.PlayerHandler{Repo: playerRepo, Stats: statRepo, AuditRepo: auditRepo}
	matchH := &handlers.MatchHandler{Repo: matchRepo, Stats: statRepo, AuditRepo: auditRepo}
	statH := &handlers.StatisticHandler{Repo: statRepo, AuditRepo: auditRepo}
	auditH := &handlers.AuditHandler{Repo: auditRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := database.PingContext(ctx); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authH.Login)
			r.Post("/register", authH.Register)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(codec, cfg.RequireAuth))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userH.ListUsers)
				r.Post("/", userH.CreateUser)
				r.Get("/{id}", userH.GetUser)
				r.Put("/{id}", userH.UpdateUser)
				r.Delete("/{id}", userH.DeleteUser)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", teamH.ListTeams)
				r.Post("/", teamH.CreateTeam)
				r.Get("/{id}", teamH.GetTeam)
				r.Get("/{id}/players", teamH.ListTeamPlayers)
				r.Put("/{id}", teamH.UpdateTeam)
				r.Delete("/{id}", teamH.DeleteTeam)
			})

			r.Route("/players", func(r chi.Router) {
				r.Get("/", playerH.ListPlayers)
				r.Post("/", playerH.CreatePlayer)
				r.Get("/{id}", playerH.GetPlayer)
				r.Get("/{id}/stats", playerH.PlayerStats)
				r.Put("/{id}", playerH.UpdatePlayer)
				r.Delete("/{id}", playerH.DeletePlayer)
			})

			r.Route("/matches", func(r chi.Router) {
				r.Get("/", matchH.ListMatches)
				r.Post("/", matchH.CreateMatch)
				r.Get("/upcoming", matchH.Upcoming)
				r.Get("/team/{teamId}", matchH.ListTeamMatches)
				r.Get("/{id}", matchH.GetMatch)
				r.Get("/{id}/stats", matchH.MatchStats)
				r.Put("/{id}", matchH.UpdateMatch)
				r.Delete("/{id}", matchH.DeleteMatch)
			})

			r.Route("/statistics", func(r chi.Router) {
				r.Get("/", statH.ListStatistics)
				r.Post("/", statH.CreateStatistic)
				r.Get("/top-scorers", statH.TopScorers)
				r.Get("/match/{matchId}", statH.ListByMatch)
				r.Get("/player/{playerId}", statH.ListByPlayer)
				r.Get("/{id}", statH.GetStatistic)
				r.Put("/{id}", statH.UpdateStatistic)
				r.Delete("/{id}", statH.DeleteStatistic)
			})

			r.Get("/audit", auditH.ListAudit)
		})
	})

	return r, nil
}
