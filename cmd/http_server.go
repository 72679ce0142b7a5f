package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/topup-commerce/internal"
	"github.com/frahmantamala/topup-commerce/internal/auth"
	authPostgres "github.com/frahmantamala/topup-commerce/internal/auth/postgres"
	"github.com/frahmantamala/topup-commerce/internal/catalog"
	catalogPostgres "github.com/frahmantamala/topup-commerce/internal/catalog/postgres"
	"github.com/frahmantamala/topup-commerce/internal/category"
	categoryPostgres "github.com/frahmantamala/topup-commerce/internal/category/postgres"
	"github.com/frahmantamala/topup-commerce/internal/core/events"
	"github.com/frahmantamala/topup-commerce/internal/order"
	orderPostgres "github.com/frahmantamala/topup-commerce/internal/order/postgres"
	"github.com/frahmantamala/topup-commerce/internal/payment"
	paymentPostgres "github.com/frahmantamala/topup-commerce/internal/payment/postgres"
	"github.com/frahmantamala/topup-commerce/internal/promotion"
	promotionPostgres "github.com/frahmantamala/topup-commerce/internal/promotion/postgres"
	"github.com/frahmantamala/topup-commerce/internal/transport/rest"
	"github.com/frahmantamala/topup-commerce/internal/user"
	userPostgres "github.com/frahmantamala/topup-commerce/internal/user/postgres"
	"github.com/frahmantamala/topup-commerce/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(lg)
	registerEventLogging(eventBus, lg)

	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)

	authService := auth.NewService(authPostgres.NewAuthRepository(gormDB), tokenGenerator, config.Security.BCryptCost)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), lg)
	catalogService := catalog.NewService(catalogPostgres.NewCatalogRepository(gormDB), lg)
	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(gormDB), lg)
	promotionService := promotion.NewService(promotionPostgres.NewPromotionRepository(gormDB), lg)
	paymentService := payment.NewService(paymentPostgres.NewPaymentRepository(gormDB), eventBus, lg)

	orderStore := orderPostgres.NewOrderStore(gormDB)
	orderService := order.NewService(orderStore, orderStore, eventBus, lg)

	handlers := rest.Handlers{
		Auth:      auth.NewHandler(authService),
		User:      user.NewHandler(userService),
		Catalog:   catalog.NewHandler(catalogService),
		Category:  category.NewHandler(categoryService),
		Promotion: promotion.NewHandler(promotionService),
		Order:     order.NewHandler(orderService),
		Payment:   payment.NewHandler(paymentService),
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		GormDB:   gormDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
	}, nil
}

// registerEventLogging writes an audit line for every order lifecycle event.
func registerEventLogging(bus *events.EventBus, lg *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		lg.Info("audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}
	bus.Subscribe(events.EventTypeOrderCreated, audit)
	bus.Subscribe(events.EventTypeOrderStatusChanged, audit)
	bus.Subscribe(events.EventTypePaymentStatusChanged, audit)
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm wraps the already-open pgx connection so sqlx and gorm share one
// pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
}
