package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	appctx "github.com/valoda-app/valoda-backend/internal/context"
	"github.com/valoda-app/valoda-backend/internal/vocab"
)

type (
	DailySetProvider interface {
		GetOrGenerate(ctx context.Context, userID, date string) (*vocab.DailySet, error)
	}

	DailySetQueryParams struct {
		Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	}

	DailyWord struct {
		Word        string `json:"word"`
		Translation string `json:"translation"`
		Context     string `json:"context,omitempty"`
	}

	DailyHandler struct {
		provider DailySetProvider
		location *time.Location
		log      *slog.Logger
	}
)

func NewDailyHandler(provider DailySetProvider, location *time.Location, log *slog.Logger) *DailyHandler {
	return &DailyHandler{
		provider: provider,
		location: location,
		log:      log,
	}
}

// GetDailySet returns the daily word set for the requested date, defaulting to
// the current day in the configured location. Generation failures surface to
// the client, unlike chat-turn vocabulary extraction.
func (h *DailyHandler) GetDailySet(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())

	var qp DailySetQueryParams
	if err := c.Bind(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	date := qp.Date
	if date == "" {
		date = time.Now().In(h.location).Format(time.DateOnly)
	}

	set, err := h.provider.GetOrGenerate(c.Request().Context(), userID, date)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to get daily set",
			"error", err,
			"date", date,
		)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	words := make([]DailyWord, len(set.Words))
	for i, w := range set.Words {
		words[i] = DailyWord{
			Word:        w.Word,
			Translation: w.Translation,
			Context:     w.Context,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"topic": set.Topic,
		"date":  set.Date,
		"words": words,
	})
}
