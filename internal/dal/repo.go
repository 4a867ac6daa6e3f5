package dal

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type (
	VocabularyFilter struct {
		ConversationID string
		Offset         uint64
		Limit          uint64
	}

	VocabularyStats struct {
		UserID        string
		Total         int
		Last7Days     int
		Conversations int
	}

	VocabularyRepository interface {
		FindConversationVocabulary(ctx context.Context, conversationID string) ([]VocabularyEntry, error)
		FindUserVocabulary(ctx context.Context, userID string, filter VocabularyFilter) ([]VocabularyEntry, int, error)
		AddVocabularyEntries(ctx context.Context, entries []VocabularyEntry) error
		DeleteVocabularyEntry(ctx context.Context, userID, id string) error
		GetVocabularyStats(ctx context.Context, userID string) (*VocabularyStats, error)
	}

	DailyWordsRepository interface {
		FindDailyWords(ctx context.Context, userID, date string) ([]DailyWordEntry, error)
		AddDailyWords(ctx context.Context, entries []DailyWordEntry) error
	}

	Repository interface {
		Transact(ctx context.Context, txFunc func(r Repository) error) error
		VocabularyRepository
		DailyWordsRepository
	}
)
