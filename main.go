package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos/internal/cart"
	"pos/internal/catalog"
	"pos/internal/checkout"
	"pos/internal/config"
	"pos/internal/database"
	"pos/internal/handlers"
	"pos/internal/logging"
	"pos/internal/member"
	"pos/internal/middleware"
	"pos/internal/orders"
	"pos/internal/store"
	"pos/internal/store/memory"
	"pos/internal/terminal"
)

func main() {
	config.Load()

	logger, err := logging.New(config.AppEnv.LogLevel, config.AppEnv.LogPretty)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	var (
		stores store.Set
		health handlers.Pinger
	)
	if config.AppEnv.MongoURI != "" {
		client, err := database.Connect(config.AppEnv.MongoURI)
		if err != nil {
			logger.Fatal("mongo connect failed", zap.Error(err))
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		db := client.Database(config.AppEnv.DBName)
		logger.Info("MongoDB connected", zap.String("db", db.Name()))

		if err := database.EnsureIndexes(db, logger); err != nil {
			logger.Warn("index warning", zap.Error(err))
		}
		stores = database.NewStores(db)
		health = database.NewPinger(client)
	} else {
		logger.Warn("MONGO_URI not set, using in-memory store")
		mem := memory.New()
		stores = mem.Set()
		health = mem
	}

	loyaltyCfg, err := config.LoadLoyalty(config.AppEnv.LoyaltyConfig)
	if err != nil {
		logger.Fatal("loyalty config", zap.Error(err))
	}
	logger.Info("loyalty policy loaded",
		zap.Float64("unitsOfCurrency", loyaltyCfg.Rate.UnitsOfCurrency),
		zap.Int("pointsPerUnit", loyaltyCfg.Rate.PointsPerUnit),
		zap.Int("tiers", len(loyaltyCfg.Tiers)),
	)

	cat := catalog.NewService(stores.Catalog, logger.Named("catalog"))
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := cat.Load(loadCtx); err != nil {
		logger.Warn("catalog not loaded, starting empty", zap.Error(err))
	}
	cancel()

	members := member.NewService(stores.Members, stores.Rewards, stores.Ledger, logger.Named("member"))
	orch := checkout.New(
		cart.New(),
		stores.Orders,
		member.NewLoyaltyEffect(members, loyaltyCfg),
		logger.Named("checkout"),
	)
	term := terminal.New(cat, orch, members, loyaltyCfg, logger.Named("terminal"))

	h := handlers.New(handlers.Deps{
		Catalog:  cat,
		Terminal: term,
		Members:  members,
		Orders:   orders.NewService(stores.Orders, logger.Named("orders")),
		Health:   health,
		Logger:   logger.Named("http"),
		Timeout:  config.AppEnv.RequestTimeout,
	})

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(logger.Named("access")), middleware.Recovery(logger))
	handlers.RegisterRoutes(r, h)

	logger.Info("listening", zap.String("port", config.AppEnv.Port))
	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
