package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/valoda-app/valoda-backend/internal/vocab"
)

const prewarmTimeout = 1 * time.Minute

type SetGenerator interface {
	GetOrGenerate(ctx context.Context, userID, date string) (*vocab.DailySet, error)
}

// StartDailySetPrewarm periodically generates the current day's word set for
// the given users inside the [hourFrom, hourTo] local-time window, so the
// first request of the day is served from storage. Requests for already
// generated dates are cheap cache hits.
func StartDailySetPrewarm(ctx context.Context, userIDs []string, interval time.Duration, hourFrom, hourTo int, loc *time.Location, gen SetGenerator, log *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "panic", "error", r)
		}
	}()

	log.InfoContext(ctx, "daily set prewarm schedule started")
	defer log.InfoContext(ctx, "daily set prewarm schedule stopped")
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
			now := time.Now().In(loc)
			if now.Hour() < hourFrom || now.Hour() > hourTo {
				continue
			}

			date := now.Format(time.DateOnly)
			for _, userID := range userIDs {
				ctx, cancel := context.WithTimeout(ctx, prewarmTimeout)
				if _, err := gen.GetOrGenerate(ctx, userID, date); err != nil {
					log.ErrorContext(ctx, "failed to prewarm daily set", "error", err, "user_id", userID, "date", date)
				}
				cancel()
			}
		}
	}
}
