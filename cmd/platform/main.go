package main

import (
	"log"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"clipshare-platform/pkg/config"
	"clipshare-platform/pkg/db"
	"clipshare-platform/pkg/health"
	"clipshare-platform/pkg/leaderboard"
	"clipshare-platform/pkg/logger"
	"clipshare-platform/pkg/redis"
	"clipshare-platform/pkg/server"
	"clipshare-platform/services/badge"
	"clipshare-platform/services/clip"
	"clipshare-platform/services/collection"
	"clipshare-platform/services/earnings"
	"clipshare-platform/services/trending"
	"clipshare-platform/services/user"
)

func main() {
	opts := []fx.Option{
		config.Module,
		logger.Module,
		db.Module,
		redis.Module,
		leaderboard.Module,
		health.Module,
		fx.Provide(
			server.ProvideEngine,
			server.ProvideHTTPServer,
			provideSnowflakeNode,
		),
		user.Module,
		earnings.Module,
		badge.Module,
		clip.Module,
		collection.Module,
		trending.Module,
		fx.Invoke(
			db.Otel,
			server.RegisterHealthRoutes,
			server.Run,
		),
		fxLogger,
	}

	if err := fx.ValidateApp(opts...); err != nil {
		log.Fatalf("fx validation failed: %v", err)
	}

	app := fx.New(opts...)

	app.Run()
}

var fxLogger = fx.WithLogger(func(cfg *config.Config, logger *zap.Logger) fxevent.Logger {
	return fxevent.NopLogger
})

func provideSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
