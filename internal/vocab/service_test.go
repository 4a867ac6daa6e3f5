package vocab

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valoda-app/valoda-backend/internal/dal"
)

type fakeVocabularyRepo struct {
	entries   []dal.VocabularyEntry
	findErr   error
	addErr    error
	findCalls int
	addCalls  int
}

func (f *fakeVocabularyRepo) FindConversationVocabulary(_ context.Context, conversationID string) ([]dal.VocabularyEntry, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}

	var res []dal.VocabularyEntry
	for _, e := range f.entries {
		if e.ConversationID == conversationID {
			res = append(res, e)
		}
	}
	return res, nil
}

func (f *fakeVocabularyRepo) FindUserVocabulary(_ context.Context, _ string, _ dal.VocabularyFilter) ([]dal.VocabularyEntry, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeVocabularyRepo) AddVocabularyEntries(_ context.Context, entries []dal.VocabularyEntry) error {
	f.addCalls++
	if f.addErr != nil {
		return f.addErr
	}
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *fakeVocabularyRepo) DeleteVocabularyEntry(_ context.Context, _, _ string) error {
	return errors.New("not implemented")
}

func (f *fakeVocabularyRepo) GetVocabularyStats(_ context.Context, _ string) (*dal.VocabularyStats, error) {
	return nil, errors.New("not implemented")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_ExtractAndPersist(t *testing.T) {
	ctx := context.Background()

	t.Run("persists new pairs", func(t *testing.T) {
		repo := &fakeVocabularyRepo{}
		svc := NewService(repo, testLogger())

		added, err := svc.ExtractAndPersist(ctx, "conv-1", "user-1", "māja (house) un suns - dog")
		require.NoError(t, err)
		require.Len(t, added, 2)

		assert.Equal(t, "māja", added[0].Word)
		assert.Equal(t, "house", added[0].Translation)
		assert.Equal(t, "suns", added[1].Word)
		assert.Equal(t, "dog", added[1].Translation)
		for _, e := range added {
			assert.NotEmpty(t, e.ID)
			assert.Equal(t, "conv-1", e.ConversationID)
			assert.Equal(t, "user-1", e.UserID)
			assert.False(t, e.CreatedAt.IsZero())
		}
		assert.Equal(t, added, repo.entries)
	})

	t.Run("repeat call inserts nothing", func(t *testing.T) {
		repo := &fakeVocabularyRepo{}
		svc := NewService(repo, testLogger())

		first, err := svc.ExtractAndPersist(ctx, "conv-1", "user-1", "labrīt - good morning")
		require.NoError(t, err)
		require.Len(t, first, 1)

		second, err := svc.ExtractAndPersist(ctx, "conv-1", "user-1", "labrīt - good morning")
		require.NoError(t, err)
		assert.Empty(t, second)
		assert.Equal(t, 1, repo.addCalls)
	})

	t.Run("dedup against stored entries is case-insensitive", func(t *testing.T) {
		repo := &fakeVocabularyRepo{entries: []dal.VocabularyEntry{
			{ID: "e1", ConversationID: "conv-1", UserID: "user-1", Word: "Māja", Translation: "House"},
		}}
		svc := NewService(repo, testLogger())

		added, err := svc.ExtractAndPersist(ctx, "conv-1", "user-1", "māja (house)")
		require.NoError(t, err)
		assert.Empty(t, added)
		assert.Zero(t, repo.addCalls)
	})

	t.Run("same pair in another conversation is persisted", func(t *testing.T) {
		repo := &fakeVocabularyRepo{entries: []dal.VocabularyEntry{
			{ID: "e1", ConversationID: "conv-1", UserID: "user-1", Word: "māja", Translation: "house"},
		}}
		svc := NewService(repo, testLogger())

		added, err := svc.ExtractAndPersist(ctx, "conv-2", "user-1", "māja (house)")
		require.NoError(t, err)
		assert.Len(t, added, 1)
	})

	t.Run("text without pairs touches no storage", func(t *testing.T) {
		repo := &fakeVocabularyRepo{}
		svc := NewService(repo, testLogger())

		added, err := svc.ExtractAndPersist(ctx, "conv-1", "user-1", "Sveiki! Kā tev iet?")
		require.NoError(t, err)
		assert.Empty(t, added)
		assert.Zero(t, repo.findCalls)
		assert.Zero(t, repo.addCalls)
	})

	t.Run("lookup failure is propagated", func(t *testing.T) {
		repo := &fakeVocabularyRepo{findErr: errors.New("db down")}
		svc := NewService(repo, testLogger())

		_, err := svc.ExtractAndPersist(ctx, "conv-1", "user-1", "māja (house)")
		require.ErrorContains(t, err, "find conversation vocabulary")
	})

	t.Run("insert failure is propagated", func(t *testing.T) {
		repo := &fakeVocabularyRepo{addErr: errors.New("db down")}
		svc := NewService(repo, testLogger())

		_, err := svc.ExtractAndPersist(ctx, "conv-1", "user-1", "māja (house)")
		require.ErrorContains(t, err, "add vocabulary entries")
	})
}
