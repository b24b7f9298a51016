package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/arsh246/weather-app/internal/auth"
	"github.com/arsh246/weather-app/internal/config"
	"github.com/arsh246/weather-app/internal/database"
	"github.com/arsh246/weather-app/internal/enrich"
	"github.com/arsh246/weather-app/internal/handlers"
	"github.com/arsh246/weather-app/internal/logger"
	"github.com/arsh246/weather-app/internal/providers"
	"github.com/arsh246/weather-app/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer zlog.Sync()

	ctx := context.Background()

	// Identity backend
	firebaseClient, err := auth.NewFirebaseClient(ctx, cfg.Identity)
	if err != nil {
		zlog.Fatal("init firebase", zap.Error(err))
	}
	verifier := auth.NewFirebaseVerifier(firebaseClient)
	accounts := auth.NewAccounts(firebaseClient, cfg.Identity)

	// History store
	var history store.HistoryStore
	switch cfg.StoreBackend {
	case "memory":
		zlog.Warn("using in-memory history store, data will not survive restarts")
		history = store.NewMemoryStore()
	default:
		client, err := database.Connect(ctx, cfg.Mongo)
		if err != nil {
			zlog.Fatal("connect database", zap.Error(err))
		}
		defer client.Disconnect(ctx)
		history = store.NewMongoStore(client, cfg.Mongo.DBName)
		zlog.Info("connected to MongoDB", zap.String("db", cfg.Mongo.DBName))
	}

	// Provider clients and the pipeline
	pipeline := enrich.NewPipeline(
		providers.NewWeatherClient(cfg.Weather),
		providers.NewGeocodeClient(cfg.Geocode),
		providers.NewVideoClient(cfg.Videos),
		history,
		cfg.AllowPartial,
		zlog,
	)

	router := handlers.NewRouter(
		handlers.NewWeatherHandler(pipeline, zlog),
		handlers.NewHistoryHandler(history, zlog),
		handlers.NewAuthHandler(accounts, zlog),
		verifier,
		cfg.Server.AllowedOrigins,
		zlog,
	)

	zlog.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
