package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	appctx "github.com/valoda-app/valoda-backend/internal/context"
	"github.com/valoda-app/valoda-backend/internal/dal"
)

const tutorSystemPrompt = `You are a friendly Latvian language tutor chatting with a learner.
Reply in simple Latvian with English support where needed. When you introduce
a new Latvian word, add its English translation in parentheses right after it,
for example: māja (house).`

type (
	TextGenerator interface {
		GenerateResponse(ctx context.Context, prompt, systemMessage string) (string, error)
	}

	VocabularyExtractor interface {
		ExtractAndPersist(ctx context.Context, conversationID, userID, text string) ([]dal.VocabularyEntry, error)
	}

	ChatRequest struct {
		ConversationID string `json:"conversation_id" validate:"required,min=1"`
		Message        string `json:"message" validate:"required,min=1"`
	}

	VocabularyEntry struct {
		ID             string    `json:"id"`
		ConversationID string    `json:"conversation_id"`
		Word           string    `json:"word"`
		Translation    string    `json:"translation"`
		Context        string    `json:"context,omitempty"`
		CreatedAt      time.Time `json:"created_at"`
	}

	ChatHandler struct {
		gen   TextGenerator
		vocab VocabularyExtractor
		log   *slog.Logger
	}
)

func NewChatHandler(gen TextGenerator, vocab VocabularyExtractor, log *slog.Logger) *ChatHandler {
	return &ChatHandler{
		gen:   gen,
		vocab: vocab,
		log:   log,
	}
}

// Respond proxies one chat turn to the tutor model and extracts vocabulary
// from the reply. A vocabulary failure never fails the turn itself; the reply
// is returned with an empty vocabulary list instead.
func (h *ChatHandler) Respond(c echo.Context) error {
	userID := appctx.MustUserIDFromContext(c.Request().Context())

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, BadRequestError)
	}

	if err := c.Validate(&req); err != nil {
		h.log.DebugContext(c.Request().Context(), "failed to validate request", "error", err)
		return err
	}

	reply, err := h.gen.GenerateResponse(c.Request().Context(), req.Message, tutorSystemPrompt)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to generate tutor reply", "error", err)
		return c.JSON(http.StatusInternalServerError, InternalServerError)
	}

	entries, err := h.vocab.ExtractAndPersist(c.Request().Context(), req.ConversationID, userID, reply)
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to extract vocabulary",
			"error", err,
			"conversation_id", req.ConversationID,
		)
		entries = nil
	}

	return c.JSON(http.StatusOK, echo.Map{
		"reply":          reply,
		"new_vocabulary": toViewEntries(entries),
	})
}

func toViewEntries(entries []dal.VocabularyEntry) []VocabularyEntry {
	res := make([]VocabularyEntry, len(entries))
	for i, e := range entries {
		res[i] = VocabularyEntry{
			ID:             e.ID,
			ConversationID: e.ConversationID,
			Word:           e.Word,
			Translation:    e.Translation,
			Context:        e.Context,
			CreatedAt:      e.CreatedAt,
		}
	}
	return res
}
