package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paymeet/internal/domain/employee"
	"paymeet/internal/domain/meeting"
	"paymeet/internal/domain/payroll"
	"paymeet/internal/domain/profile"
	"paymeet/internal/platform/config"
	"paymeet/internal/platform/db"
	"paymeet/internal/platform/metrics"
	"paymeet/internal/transport/http/api"
	authhandler "paymeet/internal/transport/http/handlers/auth"
	employeehandler "paymeet/internal/transport/http/handlers/employee"
	meetinghandler "paymeet/internal/transport/http/handlers/meeting"
	payrollhandler "paymeet/internal/transport/http/handlers/payroll"
	profilehandler "paymeet/internal/transport/http/handlers/profile"
	"paymeet/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes, cfg.MaxUploadBytes))
	router.Use(middleware.Auth(cfg.JWTSecret, cfg.AuthEnabled))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		api.Success(w, collector.Snapshot())
	})

	employeeStore := employee.NewStore(pool)

	router.Route("/api", func(r chi.Router) {
		authhandler.NewHandler(pool, cfg.JWTSecret).RegisterRoutes(r)
		employeehandler.NewHandler(employeeStore).RegisterRoutes(r)
		payrollhandler.NewHandler(payroll.NewStore(pool), employeeStore).RegisterRoutes(r)
		meetinghandler.NewHandler(meeting.NewStore(pool), employeeStore).RegisterRoutes(r)
		profilehandler.NewHandler(profile.NewStore(pool), cfg.UploadDir, cfg.MaxUploadBytes).RegisterRoutes(r)
	})

	router.Get("/uploads/{file}", serveUpload(cfg.UploadDir))

	return &App{Config: cfg, DB: pool, Router: router, Metrics: collector}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("paymeet server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

var uploadContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

// serveUpload serves stored profile photos. The route parameter is a single
// path segment, and anything that is not a plain file name is refused.
func serveUpload(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "file")
		if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			http.NotFound(w, r)
			return
		}

		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		if ct, ok := uploadContentTypes[strings.ToLower(filepath.Ext(name))]; ok {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, path)
	}
}
