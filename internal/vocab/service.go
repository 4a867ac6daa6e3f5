package vocab

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/valoda-app/valoda-backend/internal/dal"
)

type Service struct {
	repo dal.VocabularyRepository
	log  *slog.Logger
}

func NewService(repo dal.VocabularyRepository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// ExtractAndPersist extracts vocabulary pairs from a tutor reply and stores
// the ones not already present for the conversation. Dedup keys are
// case-insensitive, so re-running the same reply inserts nothing. Returns the
// entries inserted by this call.
func (s *Service) ExtractAndPersist(ctx context.Context, conversationID, userID, text string) ([]dal.VocabularyEntry, error) {
	pairs := Extract(text)
	if len(pairs) == 0 {
		return nil, nil
	}

	existing, err := s.repo.FindConversationVocabulary(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("find conversation vocabulary: %w", err)
	}

	known := make(map[string]bool, len(existing))
	for _, e := range existing {
		known[pairKey(e.Word, e.Translation)] = true
	}

	now := time.Now().UTC()
	entries := make([]dal.VocabularyEntry, 0, len(pairs))
	for _, p := range pairs {
		if known[pairKey(p.Word, p.Translation)] {
			continue
		}
		entries = append(entries, dal.VocabularyEntry{
			ID:             uuid.NewString(),
			ConversationID: conversationID,
			UserID:         userID,
			Word:           p.Word,
			Translation:    p.Translation,
			Context:        p.Context,
			CreatedAt:      now,
		})
	}

	if len(entries) == 0 {
		return nil, nil
	}

	if err = s.repo.AddVocabularyEntries(ctx, entries); err != nil {
		return nil, fmt.Errorf("add vocabulary entries: %w", err)
	}

	s.log.DebugContext(ctx, "vocabulary persisted",
		"conversation_id", conversationID,
		"extracted", len(pairs),
		"added", len(entries),
	)

	return entries, nil
}
