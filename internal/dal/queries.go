package dal

import (
	"github.com/Masterminds/squirrel"
)

// AddVocabularyEntriesQuery builds a bulk insert for vocabulary entries.
// Conflicts with the (conversation_id, lower(word), lower(translation)) unique
// index are skipped so concurrent extraction calls cannot duplicate rows.
func AddVocabularyEntriesQuery(entries []VocabularyEntry) squirrel.Sqlizer {
	q := squirrel.Insert("vocabulary_entries").
		Columns("id", "conversation_id", "user_id", "word", "translation", "context", "created_at")
	for _, e := range entries {
		q = q.Values(e.ID, e.ConversationID, e.UserID, e.Word, e.Translation, e.Context, e.CreatedAt)
	}
	return q.
		Suffix("ON CONFLICT DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)
}

// FindConversationVocabularyQuery builds a query to load all vocabulary stored
// for a conversation, in insertion order.
func FindConversationVocabularyQuery(conversationID string) squirrel.Sqlizer {
	return squirrel.Select(
		"id", "conversation_id", "user_id", "word", "translation",
		"COALESCE(context, '')", "created_at",
	).
		From("vocabulary_entries").
		Where(squirrel.Eq{"conversation_id": conversationID}).
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar)
}

// FindUserVocabularyQuery builds paged select and count queries for a user's
// vocabulary, newest first.
func FindUserVocabularyQuery(userID string, filter VocabularyFilter) (selectQuery, countQuery squirrel.Sqlizer) {
	baseQuery := squirrel.Select().
		From("vocabulary_entries").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	if filter.ConversationID != "" {
		baseQuery = baseQuery.Where(squirrel.Eq{"conversation_id": filter.ConversationID})
	}

	selectQuery = baseQuery.
		Columns(
			"id", "conversation_id", "user_id", "word", "translation",
			"COALESCE(context, '')", "created_at",
		).
		OrderBy("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit)

	countQuery = baseQuery.Columns("COUNT(*)")

	return selectQuery, countQuery
}

// DeleteVocabularyEntryQuery builds a query to delete a single entry owned by the user.
func DeleteVocabularyEntryQuery(userID, id string) squirrel.Sqlizer {
	return squirrel.Delete("vocabulary_entries").
		Where(squirrel.Eq{"user_id": userID, "id": id}).
		PlaceholderFormat(squirrel.Dollar)
}

// GetVocabularyStatsQuery builds a query to get aggregate vocabulary counts for a user.
func GetVocabularyStatsQuery(userID string) squirrel.Sqlizer {
	return squirrel.Select(
		"user_id",
		"COUNT(*) AS total",
		"SUM(CASE WHEN created_at >= datetime('now', '-7 days') THEN 1 ELSE 0 END) AS last_7_days",
		"COUNT(DISTINCT conversation_id) AS conversations",
	).
		From("vocabulary_entries").
		Where(squirrel.Eq{"user_id": userID}).
		GroupBy("user_id").
		PlaceholderFormat(squirrel.Dollar)
}

// FindDailyWordsQuery builds a query to load the daily word set for a user and date.
func FindDailyWordsQuery(userID, date string) squirrel.Sqlizer {
	return squirrel.Select(
		"id", "user_id", "word", "translation", "COALESCE(context, '')",
		"topic", "date", "created_at",
	).
		From("daily_words").
		Where(squirrel.Eq{"user_id": userID, "date": date}).
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar)
}

// AddDailyWordsQuery builds a bulk insert for a generated daily word set.
func AddDailyWordsQuery(entries []DailyWordEntry) squirrel.Sqlizer {
	q := squirrel.Insert("daily_words").
		Columns("id", "user_id", "word", "translation", "context", "topic", "date", "created_at")
	for _, e := range entries {
		q = q.Values(e.ID, e.UserID, e.Word, e.Translation, e.Context, e.Topic, e.Date, e.CreatedAt)
	}
	return q.PlaceholderFormat(squirrel.Dollar)
}
