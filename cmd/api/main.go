package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catering/internal/auth"
	"catering/internal/blog"
	"catering/internal/catalog"
	"catering/internal/config"
	"catering/internal/db"
	"catering/internal/logger"
	"catering/internal/media"
	"catering/internal/messaging"
	"catering/internal/notify"
	"catering/internal/orders"
	"catering/internal/router"
	"catering/internal/settings"
	"catering/internal/stats"
	"catering/internal/storage"
	"catering/internal/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zlog); err != nil {
		zlog.Fatal("api stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zlog *zap.Logger) error {
	// ───────────────────────── DB ─────────────────────────
	pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, zlog)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.InitSchema(ctx, pool, zlog); err != nil {
		return err
	}

	// ───────────────────────── STORAGE ─────────────────────────
	var objectStore media.Storage
	if cfg.Storage.Enabled() {
		r2, err := storage.NewR2Client(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		objectStore = r2
	} else {
		zlog.Warn("object storage not configured, media uploads disabled")
	}

	// ───────────────────────── NOTIFICATIONS ─────────────────────────
	notifier, closeNotifier, err := newNotifier(cfg, zlog)
	if err != nil {
		return err
	}
	defer closeNotifier()

	// ───────────────────────── AUTH ─────────────────────────
	tokens, err := auth.NewTokens(cfg.JWTSecret)
	if err != nil {
		return err
	}
	authService := auth.NewService(auth.NewPostgresUserRepository(pool))

	// ───────────────────────── SERVICES ─────────────────────────
	catalogService := catalog.NewService(catalog.NewPostgresRepository(pool), zlog)
	orderService := orders.NewService(
		orders.NewPostgresRepository(pool),
		catalogService,
		notifier,
		cfg.DefaultLocale,
		zlog,
	)
	blogService := blog.NewService(blog.NewPostgresRepository(pool), cfg.DefaultLocale, zlog)
	mediaService := media.NewService(media.NewPostgresRepository(pool), objectStore, zlog)
	settingsService := settings.NewService(settings.NewPostgresRepository(pool), zlog)
	statsService := stats.NewService(stats.NewPostgresRepository(pool), zlog)

	drafts := wizard.NewStore(cfg.DraftCapacity, cfg.DraftTTL)

	// ───────────────────────── HTTP ─────────────────────────
	r := router.NewRouter(router.Deps{
		Log:         zlog,
		Tokens:      tokens,
		CORSOrigins: cfg.CORSOrigins,
		Auth:        auth.NewHandler(authService, tokens, cfg.IsProduction(), zlog),
		Catalog:     catalog.NewHandler(catalogService, zlog),
		Wizard:      wizard.NewHandler(drafts, catalogService, orderService, zlog),
		Orders:      orders.NewHandler(orderService, zlog),
		Blog:        blog.NewHandler(blogService, cfg.DefaultLocale, zlog),
		Media:       media.NewHandler(mediaService, zlog),
		Settings:    settings.NewHandler(settingsService, zlog),
		Stats:       stats.NewHandler(statsService, zlog),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Info("api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		zlog.Info("shutting down api")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newNotifier picks how order notifications leave the API: queued for the
// notify worker when RabbitMQ is configured, mailed inline when only SMTP
// is, and logged otherwise.
func newNotifier(cfg *config.Config, zlog *zap.Logger) (notify.Notifier, func(), error) {
	switch {
	case cfg.RabbitMQ.Enabled():
		conn, err := messaging.Dial(cfg.RabbitMQ.URL, zlog)
		if err != nil {
			return nil, nil, err
		}
		pub := messaging.NewPublisher(conn, zlog)
		return notify.NewQueueNotifier(pub, zlog), func() { _ = conn.Close() }, nil

	case cfg.SMTP.Enabled():
		mailer, err := notify.NewSMTPMailer(cfg.SMTP, zlog)
		if err != nil {
			return nil, nil, err
		}
		return mailer, func() {}, nil

	default:
		zlog.Warn("no RabbitMQ or SMTP configured, order notifications are only logged")
		return notify.NewLogNotifier(zlog), func() {}, nil
	}
}
