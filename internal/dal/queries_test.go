package dal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVocabularyEntriesQuery(t *testing.T) {
	now := time.Now().UTC()
	entries := []VocabularyEntry{
		{ID: "e1", ConversationID: "c1", UserID: "u1", Word: "māja", Translation: "house", Context: "māja (house)", CreatedAt: now},
		{ID: "e2", ConversationID: "c1", UserID: "u1", Word: "suns", Translation: "dog", CreatedAt: now},
	}

	sql, args, err := AddVocabularyEntriesQuery(entries).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "INSERT INTO vocabulary_entries")
	assert.Contains(t, sql, "ON CONFLICT DO NOTHING")
	assert.Len(t, args, 14)
	assert.Equal(t, "e1", args[0])
	assert.Equal(t, "māja", args[3])
}

func TestFindConversationVocabularyQuery(t *testing.T) {
	sql, args, err := FindConversationVocabularyQuery("c1").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM vocabulary_entries")
	assert.Contains(t, sql, "conversation_id = $1")
	assert.Contains(t, sql, "ORDER BY created_at")
	assert.Equal(t, []any{"c1"}, args)
}

func TestFindUserVocabularyQuery(t *testing.T) {
	t.Run("without conversation filter", func(t *testing.T) {
		selectQuery, countQuery := FindUserVocabularyQuery("u1", VocabularyFilter{Offset: 10, Limit: 20})

		sql, args, err := selectQuery.ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "user_id = $1")
		assert.Contains(t, sql, "ORDER BY created_at DESC")
		assert.Contains(t, sql, "LIMIT 20")
		assert.Contains(t, sql, "OFFSET 10")
		assert.Equal(t, []any{"u1"}, args)

		sql, args, err = countQuery.ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "COUNT(*)")
		assert.NotContains(t, sql, "LIMIT")
		assert.Equal(t, []any{"u1"}, args)
	})

	t.Run("with conversation filter", func(t *testing.T) {
		selectQuery, _ := FindUserVocabularyQuery("u1", VocabularyFilter{ConversationID: "c1", Limit: 5})

		sql, args, err := selectQuery.ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "conversation_id = $2")
		assert.Equal(t, []any{"u1", "c1"}, args)
	})
}

func TestDeleteVocabularyEntryQuery(t *testing.T) {
	sql, args, err := DeleteVocabularyEntryQuery("u1", "e1").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "DELETE FROM vocabulary_entries")
	assert.Contains(t, sql, "id = $1")
	assert.Contains(t, sql, "user_id = $2")
	assert.Equal(t, []any{"e1", "u1"}, args)
}

func TestGetVocabularyStatsQuery(t *testing.T) {
	sql, args, err := GetVocabularyStatsQuery("u1").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "COUNT(*) AS total")
	assert.Contains(t, sql, "COUNT(DISTINCT conversation_id) AS conversations")
	assert.Contains(t, sql, "GROUP BY user_id")
	assert.Equal(t, []any{"u1"}, args)
}

func TestFindDailyWordsQuery(t *testing.T) {
	sql, args, err := FindDailyWordsQuery("u1", "2026-09-01").ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM daily_words")
	assert.Contains(t, sql, "date = $1")
	assert.Contains(t, sql, "user_id = $2")
	assert.Equal(t, []any{"2026-09-01", "u1"}, args)
}

func TestAddDailyWordsQuery(t *testing.T) {
	now := time.Now().UTC()
	entries := []DailyWordEntry{
		{ID: "w1", UserID: "u1", Word: "maize", Translation: "bread", Topic: "Food", Date: "2026-09-01", CreatedAt: now},
	}

	sql, args, err := AddDailyWordsQuery(entries).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "INSERT INTO daily_words")
	assert.Len(t, args, 8)
	assert.Equal(t, "w1", args[0])
	assert.Equal(t, "Food", args[5])
}
