package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/valoda-app/valoda-backend/internal/config"
	"github.com/valoda-app/valoda-backend/internal/dal"
)

type (
	Dependencies struct {
		Repo       dal.Repository
		Generator  TextGenerator
		Vocabulary VocabularyExtractor
		DailySet   DailySetProvider
		Logger     *slog.Logger
	}
)

func NewRouter(ctx context.Context, conf *config.API, deps Dependencies) http.Handler {
	e := echo.New()
	e.Validator = newRequestValidator()

	e.Use(middleware.RequestID())
	e.Use(loggingMiddleware(ctx, deps.Logger))
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(conf.HTTP.RateLimit))))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     conf.HTTP.CORS.AllowOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: conf.HTTP.ProcessTimeout,
	}))
	e.Use(middleware.Secure())

	e.HTTPErrorHandler = HTTPErrorHandler(deps.Logger)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	jwtProcessor := NewJWTProcessor(conf.HTTP.JWT)
	securedGroup := e.Group("", AuthMiddleware(jwtProcessor, deps.Logger))

	chat := NewChatHandler(deps.Generator, deps.Vocabulary, deps.Logger)
	securedGroup.POST("/chat/respond", chat.Respond)

	vocabulary := NewVocabularyHandler(deps.Repo, deps.Logger)
	securedGroup.GET("/vocabulary", vocabulary.FindVocabulary)
	securedGroup.GET("/vocabulary/stats", vocabulary.Stats)
	securedGroup.DELETE("/vocabulary/:id", vocabulary.DeleteEntry)

	daily := NewDailyHandler(deps.DailySet, conf.DailySet.MustTimeLocation(), deps.Logger)
	securedGroup.GET("/daily-set", daily.GetDailySet)

	return e
}

func loggingMiddleware(ctx context.Context, log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		HandleError: true, // forwards error to the global error handler, so it can decide appropriate status code
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				log.LogAttrs(ctx, slog.LevelInfo, "REQUEST",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
				)
			} else {
				log.LogAttrs(ctx, slog.LevelError, "REQUEST_ERROR",
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.String("err", v.Error.Error()),
				)
			}
			return nil
		},
	})
}
