package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/valoda-app/valoda-backend/internal/dal"
	"github.com/valoda-app/valoda-backend/internal/llm"
	"github.com/valoda-app/valoda-backend/pkg/cache"
)

// DailySetSize is the number of words in one generated set. Fewer stored rows
// for a date are treated as "not generated yet" and regenerated.
const DailySetSize = 5

const dailyCacheTTL = 24 * time.Hour

var dailyTopics = []string{
	"Food", "Travel", "Weather", "Family", "Work",
	"Shopping", "Health", "Education", "Sports", "Nature",
}

const dailySystemPrompt = "You are a Latvian language tutor. You respond with valid JSON only."

type (
	// TextGenerator is the external text-generation collaborator. It is an
	// interface so the pipeline can be exercised with a deterministic stub.
	TextGenerator interface {
		GenerateResponse(ctx context.Context, prompt, systemMessage string) (string, error)
	}

	DailySet struct {
		Topic string               `json:"topic"`
		Date  string               `json:"date"`
		Words []dal.DailyWordEntry `json:"words"`
	}

	DailyService struct {
		repo  dal.Repository
		gen   TextGenerator
		cache *cache.InMemory
		log   *slog.Logger
	}
)

func NewDailyService(repo dal.Repository, gen TextGenerator, c *cache.InMemory, log *slog.Logger) *DailyService {
	return &DailyService{
		repo:  repo,
		gen:   gen,
		cache: c,
		log:   log,
	}
}

// GetOrGenerate returns the themed word set for the user and calendar date,
// generating and persisting it on the first request of the day. Generation,
// parse or validation failures are terminal for the request and write nothing,
// so the next request retries from scratch.
//
// The check-then-insert sequence is not guarded: two concurrent first requests
// for the same user and date may both generate and insert their own set.
func (s *DailyService) GetOrGenerate(ctx context.Context, userID, date string) (*DailySet, error) {
	key := userID + ":" + date
	if raw, ok := s.cache.Get(key); ok {
		var set DailySet
		if err := json.Unmarshal([]byte(raw), &set); err == nil {
			return &set, nil
		}
		s.log.WarnContext(ctx, "invalid cached daily set, ignoring", "key", key)
	}

	rows, err := s.repo.FindDailyWords(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("find daily words: %w", err)
	}
	if len(rows) >= DailySetSize {
		return s.cacheAndReturn(ctx, key, &DailySet{
			Topic: rows[0].Topic,
			Date:  date,
			Words: rows,
		}), nil
	}

	resp, err := s.gen.GenerateResponse(ctx, dailySetPrompt(), dailySystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("generate daily set: %w", err)
	}

	parsed, err := llm.ParseJSONResponse[generatedDailySet](resp)
	if err != nil {
		return nil, fmt.Errorf("parse daily set response: %w", err)
	}
	if err = parsed.validate(); err != nil {
		return nil, fmt.Errorf("invalid daily set response: %w", err)
	}

	now := time.Now().UTC()
	entries := make([]dal.DailyWordEntry, 0, DailySetSize)
	for _, w := range parsed.Words {
		entries = append(entries, dal.DailyWordEntry{
			ID:          uuid.NewString(),
			UserID:      userID,
			Word:        w.Latvian,
			Translation: w.English,
			Context:     w.Context,
			Topic:       parsed.Topic,
			Date:        date,
			CreatedAt:   now,
		})
	}

	err = s.repo.Transact(ctx, func(r dal.Repository) error {
		return r.AddDailyWords(ctx, entries)
	})
	if err != nil {
		return nil, fmt.Errorf("persist daily words: %w", err)
	}

	s.log.InfoContext(ctx, "daily set generated",
		"user_id", userID,
		"date", date,
		"topic", parsed.Topic,
	)

	return s.cacheAndReturn(ctx, key, &DailySet{
		Topic: parsed.Topic,
		Date:  date,
		Words: entries,
	}), nil
}

func (s *DailyService) cacheAndReturn(ctx context.Context, key string, set *DailySet) *DailySet {
	raw, err := json.Marshal(set)
	if err != nil {
		s.log.WarnContext(ctx, "failed to marshal daily set for cache", "error", err)
		return set
	}
	s.cache.Set(key, string(raw), dailyCacheTTL)
	return set
}

type (
	generatedWord struct {
		Latvian string `json:"latvian"`
		English string `json:"english"`
		Context string `json:"context"`
	}

	generatedDailySet struct {
		Topic string          `json:"topic"`
		Words []generatedWord `json:"words"`
	}
)

func (g generatedDailySet) validate() error {
	if strings.TrimSpace(g.Topic) == "" {
		return errors.New("missing topic")
	}
	if len(g.Words) != DailySetSize {
		return fmt.Errorf("expected %d words, got %d", DailySetSize, len(g.Words))
	}
	return nil
}

func dailySetPrompt() string {
	return fmt.Sprintf(`Generate a themed set of %d Latvian vocabulary words for a learner.
Pick one theme from this list: %s.
Respond with a single JSON object and nothing else:
{"topic": "<theme>", "words": [{"latvian": "...", "english": "...", "context": "<short Latvian example sentence>"}]}
The words array must contain exactly %d entries.`,
		DailySetSize, strings.Join(dailyTopics, ", "), DailySetSize)
}
