package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tithmeassambo-coder/QCM/internal/game"
	"github.com/tithmeassambo-coder/QCM/internal/handler"
	"github.com/tithmeassambo-coder/QCM/internal/logger"
	"github.com/tithmeassambo-coder/QCM/internal/service"
	"github.com/tithmeassambo-coder/QCM/internal/storage"
	"github.com/tithmeassambo-coder/QCM/internal/ws"
	"go.uber.org/zap"
)

type App struct {
	cfg    Config
	log    *zap.Logger
	closeP func()
	writer *storage.SnapshotWriter
	store  *storage.Store
	hub    *ws.Hub
	srv    *http.Server
}

func New(cfg Config) (*App, error) {
	l, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}
	a, err := newWithLogger(cfg, l)
	if err != nil {
		_ = l.Sync()
		return nil, err
	}
	return a, nil
}

func newWithLogger(cfg Config, l *zap.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p, closeP, err := OpenPersister(ctx, cfg)
	if err != nil {
		return nil, err
	}

	initial, src := storage.Bootstrap(ctx, p, cfg.StartupData, l)
	l.Info("question collection ready", zap.String("source", string(src)), zap.Int("count", len(initial)))

	writer := storage.NewSnapshotWriter(p, cfg.PersistTimeout, l)
	store := storage.NewStore(initial, writer)

	playSvc := service.NewPlayService(store, l)
	adminSvc := service.NewAdminService(store, l)

	gate, err := handler.NewGate(cfg.AdminPassphrase, 0, l)
	if err != nil {
		writer.Close()
		closeP()
		return nil, err
	}
	if cfg.AdminPassphrase == "" {
		l.Warn("admin passphrase not configured, authoring routes disabled")
	}

	hub := ws.NewHub(playSvc, l, cfg.AllowedOrigins...)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(l), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:         300,
	}))
	handler.RegisterHandlers(r, playSvc, hub, l)
	handler.RegisterAdminHandlers(r, adminSvc, gate, l)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:    cfg,
		log:    l,
		closeP: closeP,
		writer: writer,
		store:  store,
		hub:    hub,
		srv:    srv,
	}, nil
}

// OpenPersister opens the snapshot backend named by cfg.StorageDriver. The
// returned func releases it.
func OpenPersister(ctx context.Context, cfg Config) (storage.Persister, func(), error) {
	switch cfg.StorageDriver {
	case DriverMemory:
		return storage.NewMemoryPersister(), func() {}, nil
	case DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		s, err := storage.NewPostgresSnapshotStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return s, pool.Close, nil
	case DriverSQLite, "":
		s, err := storage.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// LoadCollection picks the collection the way the server does at startup,
// without starting one and without writing to the persister.
func LoadCollection(ctx context.Context, cfg Config, payload string, log *zap.Logger) ([]game.Question, error) {
	p, closeP, err := OpenPersister(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeP()
	qs, _ := storage.Bootstrap(ctx, storage.ReadOnly(p), payload, log)
	return qs, nil
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func (a *App) Handler() http.Handler { return a.srv.Handler }

func (a *App) Store() *storage.Store { return a.store }

func (a *App) Run() error {
	a.log.Info("server started",
		zap.String("addr", a.cfg.HTTPAddr),
		zap.String("storage", a.cfg.StorageDriver),
		zap.String("log_level", a.cfg.LogLevel),
	)
	if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.hub.Shutdown()
	return a.srv.Shutdown(ctx)
}

// Close flushes the pending snapshot before releasing the persister.
func (a *App) Close() {
	if a.writer != nil {
		a.writer.Close()
	}
	if a.closeP != nil {
		a.closeP()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
