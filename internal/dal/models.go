package dal

import "time"

type VocabularyEntry struct {
	ID             string
	ConversationID string
	UserID         string
	Word           string
	Translation    string
	Context        string
	CreatedAt      time.Time
}

type DailyWordEntry struct {
	ID          string
	UserID      string
	Word        string
	Translation string
	Context     string
	Topic       string
	Date        string
	CreatedAt   time.Time
}
