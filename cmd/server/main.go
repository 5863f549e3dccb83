package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Skotchmaster/printshop/internal/config"
	"github.com/Skotchmaster/printshop/internal/es"
	"github.com/Skotchmaster/printshop/internal/handlers"
	"github.com/Skotchmaster/printshop/internal/jobs"
	"github.com/Skotchmaster/printshop/internal/mailer"
	"github.com/Skotchmaster/printshop/internal/middleware/auth"
	"github.com/Skotchmaster/printshop/internal/mykafka"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/service"
	"github.com/Skotchmaster/printshop/internal/service/search"
	"github.com/Skotchmaster/printshop/internal/storage"
	httpserver "github.com/Skotchmaster/printshop/internal/transport/http"
	pkgdb "github.com/Skotchmaster/printshop/pkg/db"
	"github.com/Skotchmaster/printshop/pkg/logging"
	loggingmw "github.com/Skotchmaster/printshop/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env not loaded: %v, using process environment", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel, cfg.LogFile).With("service", cfg.ServiceName)
	zap.ReplaceGlobals(logger.Desugar())
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatalw("db_open_error", "error", err)
	}

	rp := &repo.GormRepo{DB: db}
	ctx, cancel = context.WithTimeout(context.Background(), time.Minute)
	err = rp.Migrate(ctx)
	cancel()
	if err != nil {
		logger.Fatalw("db_migrate_error", "error", err)
	}

	var events mykafka.Publisher = mykafka.Nop{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
		events = producer
		logger.Infow("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	products := &service.ProductService{Repo: rp, Events: events}
	if cfg.ES.URL != "" {
		esClient, err := es.NewClient(cfg.ES, logger)
		if err != nil {
			logger.Fatalw("es_client_error", "error", err)
		}
		idx := &search.ProductIndex{ES: esClient, Index: cfg.SearchIdx}
		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		if err := idx.EnsureIndex(ctx); err != nil {
			logger.Warnw("es_index_error", "index", cfg.SearchIdx, "error", err)
		}
		cancel()
		products.Index = idx
	}

	var mail mailer.Notifier = mailer.Nop{}
	var dispatcher *mailer.Dispatcher
	if cfg.SMTP.Host != "" {
		dispatcher, err = mailer.New(cfg.SMTP, cfg.MailWorkers)
		if err != nil {
			logger.Fatalw("mailer_error", "error", err)
		}
		mail = dispatcher
	}

	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		logger.Fatalw("snowflake_error", "node_id", cfg.NodeID, "error", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatalw("upload_dir_error", "dir", cfg.UploadDir, "error", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warnw("timezone_error", "timezone", cfg.Timezone, "error", err)
		loc = time.UTC
	}
	janitor := &jobs.Janitor{
		Repo:         rp,
		CheckoutTTL:  cfg.CheckoutTTL,
		GuestCartTTL: cfg.GuestCartTTL,
		Log:          logger.With("job", "janitor"),
	}
	scheduler, err := jobs.Start(janitor, loc)
	if err != nil {
		logger.Fatalw("cron_error", "error", err)
	}

	authSvc := &service.AuthService{Repo: rp, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL, Events: events}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomw.BodyLimit("12M"))

	httpserver.Register(e, &httpserver.Deps{
		DB:        db,
		Auth:      &auth.Middleware{Secret: cfg.JWTSecret, Users: authSvc},
		UploadDir: cfg.UploadDir,

		AuthHandler:      &handlers.AuthHandler{Svc: authSvc},
		UserHandler:      &handlers.UserHandler{Svc: &service.UserService{Repo: rp}},
		ProductHandler:   &handlers.ProductHandler{Svc: products},
		SearchHandler:    &handlers.SearchHandler{Products: products},
		CartHandler:      &handlers.CartHandler{Svc: &service.CartService{Repo: rp}},
		CheckoutHandler:  &handlers.CheckoutHandler{Svc: &service.CheckoutService{Repo: rp, IDs: node, Events: events}},
		OrderHandler:     &handlers.OrderHandler{Svc: &service.OrderService{Repo: rp, Events: events}},
		PortfolioHandler: &handlers.PortfolioHandler{Svc: &service.PortfolioService{Repo: rp}},
		ReviewHandler:    &handlers.ReviewHandler{Svc: &service.ReviewService{Repo: rp}},
		ContactHandler:   &handlers.ContactHandler{Svc: &service.ContactService{Repo: rp, Mail: mail, AdminEmail: cfg.AdminEmail}},
		SubscribeHandler: &handlers.SubscribeHandler{Svc: &service.SubscribeService{Repo: rp, Mail: mail}},
		BlogHandler:      &handlers.BlogHandler{Svc: &service.BlogService{Repo: rp}},
		UploadHandler:    &handlers.UploadHandler{Store: &storage.Local{Dir: cfg.UploadDir, BaseURL: cfg.PublicURL}},
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Infow("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("http_listen_error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Infow("shutting_down")

	<-scheduler.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("http_shutdown_error", "error", err)
	}

	if dispatcher != nil {
		if err := dispatcher.Close(10 * time.Second); err != nil {
			logger.Errorw("mail_close_error", "error", err)
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Errorw("kafka_close_error", "error", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Errorw("db_close_error", "error", err)
		}
	}

	logger.Infow("shutdown_complete")
}
