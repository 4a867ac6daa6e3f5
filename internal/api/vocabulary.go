package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	appctx "github.com/valoda-app/valoda-backend/internal/context"
	"github.com/valoda-app/valoda-backend/internal/dal"
)

type (
	VocabularyQueryParams struct {
		ConversationID string `query:"conversation_id"`
		Offset         uint64 `query:"offset" validate:"min=0"`
		Limit          uint64 `query:"limit" validate:"required,min=1,max=100"`
	}

	VocabularyHandler struct {
		repo dal.VocabularyRepository
		log  *slog.Logger
	}
)

func NewVocabularyHandler(repo dal.VocabularyRepository, log *slog.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		repo: repo,
		log:  log,
	}
}

func (h *VocabularyHandler) FindVocabulary(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())

	var qp VocabularyQueryParams
	if err := c.Bind(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&qp); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	filter := dal.VocabularyFilter{
		ConversationID: qp.ConversationID,
		Offset:         qp.Offset,
		Limit:          qp.Limit,
	}
	entries, total, err := h.repo.FindUserVocabulary(c.Request().Context(), userID, filter)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to find vocabulary", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": toViewEntries(entries),
		"total": total,
	})
}

func (h *VocabularyHandler) DeleteEntry(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := h.repo.DeleteVocabularyEntry(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, dal.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Message: "entry not found"})
		}
		h.log.ErrorContext(c.Request().Context(), "failed to delete vocabulary entry", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "message": "entry deleted"})
}

func (h *VocabularyHandler) Stats(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())

	stats, err := h.repo.GetVocabularyStats(c.Request().Context(), userID)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to get vocabulary stats", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total":         stats.Total,
		"last_7_days":   stats.Last7Days,
		"conversations": stats.Conversations,
	})
}
