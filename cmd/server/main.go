package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-router"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	shopping "github.com/goliatone/go-shopping"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("shop"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	logger := lgr.GetLogger("main")

	cfg, err := shopping.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, cleanup, err := setupDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("failed to set up database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	repo := shopping.NewRepositoryManager(db)
	repo.MustValidate()

	provider := shopping.NewUserProvider(repo.Users()).
		WithProviderLogger(lgr.GetLogger("auth:prv"))

	auther := shopping.NewAuthenticator(provider, cfg).
		WithLogger(lgr.GetLogger("auth"))

	resolver := shopping.NewStrategyResolver(
		auther.TokenService(),
		shopping.WithTokenLookup(cfg.GetTokenLookup(), cfg.GetAuthScheme()),
		shopping.WithStrategyLogger(lgr.GetLogger("auth:jwt")),
	)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, carts will fail until it comes back", "error", err)
	}

	carts := shopping.NewCartStore(rdb,
		shopping.WithCartTTL(cfg.GetCartTTL()),
		shopping.WithCartLogger(lgr.GetLogger("carts")),
	)

	recommender := shopping.NewRecommenderClient(cfg.RecommenderURL,
		shopping.WithRecommenderLogger(lgr.GetLogger("recommender")),
	)

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	shopping.RegisterUserRoutes(srv.Router(), resolver,
		shopping.WithRepositoryManager(repo),
		shopping.WithAuther(auther),
		shopping.WithRecommender(recommender),
		shopping.WithControllerLogger(lgr.GetLogger("users")),
		shopping.WithControllerDebug(cfg.Debug),
	)

	shopping.RegisterCartRoutes(srv.Router(),
		shopping.WithCartStore(carts),
		shopping.WithCartControllerLogger(lgr.GetLogger("carts")),
	)

	logger.Info("server listening", "addr", cfg.HTTPAddr)
	srv.Serve(cfg.HTTPAddr)

	sig := waitExitSignal()
	logger.Info("shutting down", "signal", sig.String())
}

func setupDatabase(ctx context.Context, dsn string) (*bun.DB, func(), error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, nil, err
	}

	goose.SetBaseFS(shopping.GetMigrationsFS())
	if err := goose.SetDialect("sqlite3"); err != nil {
		sqldb.Close()
		return nil, nil, err
	}

	if err := goose.UpContext(ctx, sqldb, "data/sql/migrations"); err != nil {
		sqldb.Close()
		return nil, nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	return db, func() { db.Close() }, nil
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
