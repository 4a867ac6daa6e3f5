package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/valoda-app/valoda-backend/internal/dal"
	sqlrepo "github.com/valoda-app/valoda-backend/internal/dal/sql"
	"github.com/valoda-app/valoda-backend/internal/data"
)

var (
	source         string
	dbURL          string
	userID         string
	conversationID string
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	if err := validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	db, err := sql.Open("sqlite", dbURL)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(2)
	}
	defer db.Close()

	repo := sqlrepo.NewRepository(db, slog.Default())
	if err = repo.Bootstrap(ctx); err != nil {
		fmt.Printf("failed to bootstrap database schema: %v\n", err)
		os.Exit(2)
	}

	f, err := os.Open(source)
	if err != nil {
		fmt.Printf("failed to open source file: %v\n", err)
		os.Exit(3)
	}

	lines := make(chan data.Line)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return data.Parse(ctx, f, lines)
	})
	eg.Go(func() error {
		imported := 0
		now := time.Now().UTC()
		for line := range lines {
			entry := dal.VocabularyEntry{
				ID:             uuid.NewString(),
				ConversationID: conversationID,
				UserID:         userID,
				Word:           line.Word,
				Translation:    line.Translation,
				Context:        line.Context,
				CreatedAt:      now,
			}
			if err := repo.AddVocabularyEntries(ctx, []dal.VocabularyEntry{entry}); err != nil {
				return fmt.Errorf("insert vocabulary entry %q: %w", line.Word, err)
			}
			imported++
		}
		fmt.Printf("imported %d entries\n", imported)
		return nil
	})

	if err = eg.Wait(); err != nil {
		var parseErr *data.ParsingError
		if errors.As(err, &parseErr) {
			fmt.Printf("done with invalid lines: %v\n", parseErr.InvalidLines)
			return
		}
		fmt.Printf("import failed: %v\n", err)
		os.Exit(4)
	}

	fmt.Println("done")
}

func validate() error {
	if source == "" {
		return errors.New("source file is required")
	}

	if dbURL == "" {
		return errors.New("database URL is required")
	}

	if userID == "" {
		return errors.New("user ID is required")
	}

	if conversationID == "" {
		return errors.New("conversation ID is required")
	}

	return nil
}

func init() {
	flag.StringVar(&source, "source", "", "source file")
	flag.StringVar(&dbURL, "db-url", "", "database URL")
	flag.StringVar(&userID, "user-id", "", "owner user ID")
	flag.StringVar(&conversationID, "conversation-id", "", "target conversation ID")
	flag.Parse()
}
