package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/samsoncodes33/Isaac-IT-frontend/api/swagger"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/handler"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/middleware"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/repository"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/service"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/sifms"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/view"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/cache"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/config"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/database"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/logger"
	corsmiddleware "github.com/samsoncodes33/Isaac-IT-frontend/pkg/middleware/cors"
	reqidmiddleware "github.com/samsoncodes33/Isaac-IT-frontend/pkg/middleware/requestid"
	"github.com/samsoncodes33/Isaac-IT-frontend/pkg/signer"
)

// @title SIFMS Portal
// @version 1.0.0
// @description Student Issue & Feedback Management portal
// @BasePath /
// @schemes http

type sessionStore interface {
	Save(ctx context.Context, slot string, session *models.Session) error
	Load(ctx context.Context, id, slot string) (*models.Session, error)
	Clear(ctx context.Context, id, slot string) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	store, closeStore, err := openSessionStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open session store", zap.String("store", cfg.Session.Store), zap.Error(err))
	}
	defer closeStore()

	times, err := view.NewTimeFormatter(cfg.Display)
	if err != nil {
		logr.Fatal("invalid display settings", zap.Error(err))
	}
	renderer, err := view.NewRenderer(times)
	if err != nil {
		logr.Fatal("failed to parse templates", zap.Error(err))
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	validate := validator.New()
	client := sifms.NewClient(cfg.API, nil, logr.Named("sifms"), metrics)
	sessions := service.NewSessionService(store, metrics, logr.Named("session"), service.SessionConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
	})
	auth := service.NewAuthService(client, sessions, validate, logr.Named("auth"))
	complaints := service.NewComplaintService(client, validate, logr.Named("complaints"))
	exports := service.NewExportService(times, logr.Named("export"), nil, nil)

	cookies := middleware.Cookies{
		SessionName: cfg.Session.CookieName,
		Secure:      cfg.Session.CookieSecure,
		SessionTTL:  cfg.Session.TTL,
		FlashSigner: signer.New(cfg.Session.Secret, time.Minute),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metrics != nil {
		r.Use(middleware.Metrics(metrics))
	}

	handler.Routes{
		Auth:               handler.NewAuthHandler(auth, sessions, renderer, cookies, cfg.Session.SignupMessageTTL, logr),
		Dashboard:          handler.NewDashboardHandler(complaints, exports, renderer, cookies, logr),
		API:                handler.NewComplaintAPIHandler(complaints),
		Metrics:            handler.NewMetricsHandler(metrics),
		Session:            middleware.Session(sessions, cookies, logr),
		RequireSession:     middleware.RequireSession(cookies),
		RequireSessionJSON: middleware.RequireSessionJSON(),
		EnableMetrics:      metrics != nil,
	}.Register(r)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "session_store", cfg.Session.Store, "api", cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openSessionStore connects the backend named by SESSION_STORE.
func openSessionStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (sessionStore, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreMemory, "":
		return repository.NewMemorySessionRepository(), func() {}, nil
	case config.SessionStoreRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewRedisSessionRepository(client, cfg.Session.TTL, logr.Named("session-store"))
		return repo, func() { _ = repo.Close() }, nil
	case config.SessionStorePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewPostgresSessionRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
