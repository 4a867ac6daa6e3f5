package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/valoda-app/valoda-backend/internal/api"
	"github.com/valoda-app/valoda-backend/internal/config"
	sqlrepo "github.com/valoda-app/valoda-backend/internal/dal/sql"
	"github.com/valoda-app/valoda-backend/internal/llm"
	"github.com/valoda-app/valoda-backend/internal/schedule"
	"github.com/valoda-app/valoda-backend/internal/vocab"
	"github.com/valoda-app/valoda-backend/pkg/cache"
)

var (
	// Version is set via -ldflags at build time
	Version = "dev" //nolint:gochecknoglobals // must be global to be replaced at build time
	// BuildTime is set via -ldflags at build time
	BuildTime = "unknown" //nolint:gochecknoglobals // must be global to be replaced at build time
)

const (
	exitCodeOK int = iota
	exitCodeConfigParse
	exitCodeDBConnect
	exitCodeDependencies
	exitCodeServerStart
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	go func() {
		<-sigs
		cancel()
	}()
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	conf, err := config.NewAPI(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get config", "error", err) //nolint:sloglint // ignore
		return exitCodeConfigParse
	}
	log := mustLogger(conf.Dev)

	db, err := sql.Open("sqlite", conf.DB.URL)
	if err != nil {
		log.ErrorContext(ctx, "failed to create database connection pool", "error", err)
		return exitCodeDBConnect
	}
	defer db.Close()

	repo := sqlrepo.NewRepository(db, log)
	if err = repo.Bootstrap(ctx); err != nil {
		log.ErrorContext(ctx, "failed to bootstrap database schema", "error", err)
		return exitCodeDBConnect
	}

	llmClient, err := llm.NewClient(llm.Config{
		Endpoint:    conf.LLM.Endpoint,
		Model:       conf.LLM.Model,
		APIKey:      conf.LLM.APIKey,
		Temperature: conf.LLM.Temperature,
	}, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to create llm client", "error", err)
		return exitCodeDependencies
	}

	vocabService := vocab.NewService(repo, log)
	dailyService := vocab.NewDailyService(repo, llmClient, cache.NewInMemory(), log)

	if len(conf.DailySet.PrewarmUserIDs) > 0 {
		go schedule.StartDailySetPrewarm(ctx,
			conf.DailySet.PrewarmUserIDs,
			conf.DailySet.PrewarmInterval,
			conf.DailySet.HourFrom,
			conf.DailySet.HourTo,
			conf.DailySet.MustTimeLocation(),
			dailyService,
			log,
		)
	}

	router := api.NewRouter(ctx, conf, api.Dependencies{
		Repo:       repo,
		Generator:  llmClient,
		Vocabulary: vocabService,
		DailySet:   dailyService,
		Logger:     log,
	})
	log.InfoContext(ctx, "starting api server",
		"version", Version,
		"build_time", BuildTime,
		"address", conf.Server.Addr,
	)

	server := &http.Server{
		ReadHeaderTimeout: conf.Server.ReadHeaderTimeout,
		Addr:              conf.Server.Addr,
		Handler:           router,
	}

	go func() {
		<-ctx.Done()
		cCtx, cCancel := context.WithTimeout(context.Background(), 15*time.Second) //nolint:mnd // ignore mnd
		defer cCancel()

		if sErr := server.Shutdown(cCtx); sErr != nil {
			log.ErrorContext(cCtx, "failed to shutdown api server", "error", sErr)
		}
	}()

	if err = server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "failed to start api server", "error", err)
		return exitCodeServerStart
	}

	log.InfoContext(ctx, "api server is stopped")

	return exitCodeOK
}

func mustLogger(dev bool) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	if dev {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}
