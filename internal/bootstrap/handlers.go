package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/eleven-am/chat-analytics/docs"
	"github.com/eleven-am/chat-analytics/internal/analytics"
	"github.com/eleven-am/chat-analytics/internal/chat"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"
)

type HandlerParams struct {
	fx.In

	ChatHandler      *chat.Handler
	AnalyticsHandler *analytics.Handler
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/api")

	params.ChatHandler.RegisterRoutes(api.Group("/chat"))
	params.AnalyticsHandler.RegisterRoutes(api.Group("/analytics"))

	docs.SwaggerInfo.Version = version
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideAnalyticsOptions(cfg *Config) (analytics.Options, error) {
	loc, err := time.LoadLocation(cfg.AnalyticsTimezone)
	if err != nil {
		return analytics.Options{}, fmt.Errorf("ANALYTICS_TIMEZONE: %w", err)
	}
	return analytics.Options{
		Location: loc,
		MaxDates: analytics.DefaultMaxDates,
	}, nil
}

func ProvideSummaryCache(redisClient *redis.Client, cfg *Config) *analytics.Cache {
	return analytics.NewCache(redisClient, cfg.SummaryCacheTTL)
}

func ProvideAnalyticsService(
	chatStore *chat.Store,
	analyticsStore *analytics.Store,
	cache *analytics.Cache,
	opts analytics.Options,
	logger *slog.Logger,
) *analytics.Service {
	return analytics.NewService(chatStore, analyticsStore, cache, opts, logger.With("service", "analytics"))
}

func ProvideChatHandler(store *chat.Store, service *analytics.Service, logger *slog.Logger) *chat.Handler {
	return chat.NewHandler(store, service, logger.With("handler", "chat"))
}

func ProvideAnalyticsHandler(service *analytics.Service, logger *slog.Logger) *analytics.Handler {
	return analytics.NewHandler(service, logger.With("handler", "analytics"))
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideAnalyticsOptions,
		ProvideSummaryCache,
		ProvideAnalyticsService,
		ProvideChatHandler,
		ProvideAnalyticsHandler,
	),
	fx.Invoke(RegisterRoutes),
)
