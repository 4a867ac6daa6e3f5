package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/valoda-app/valoda-backend/internal/dal"
)

func (r *Repository) FindConversationVocabulary(ctx context.Context, conversationID string) ([]dal.VocabularyEntry, error) {
	query, args, err := dal.FindConversationVocabularyQuery(conversationID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := r.client.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find conversation vocabulary: %w", err)
	}
	defer rows.Close()

	res := make([]dal.VocabularyEntry, 0)
	for rows.Next() {
		entry, err := hydrateVocabularyEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vocabulary entry: %w", err)
		}
		res = append(res, *entry)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate vocabulary entries: %w", rows.Err())
	}

	return res, nil
}

func (r *Repository) FindUserVocabulary(ctx context.Context, userID string, filter dal.VocabularyFilter) ([]dal.VocabularyEntry, int, error) {
	selectQuery, countQuery := dal.FindUserVocabularyQuery(userID, filter)

	eg, ctx := errgroup.WithContext(ctx)
	res := make([]dal.VocabularyEntry, 0, filter.Limit)
	total := 0

	eg.Go(func() error {
		query, args, err := selectQuery.ToSql()
		if err != nil {
			return fmt.Errorf("build select query: %w", err)
		}

		rows, err := r.client.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("find user vocabulary: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			entry, err := hydrateVocabularyEntry(rows)
			if err != nil {
				return fmt.Errorf("scan vocabulary entry: %w", err)
			}
			res = append(res, *entry)
		}

		if rows.Err() != nil {
			return fmt.Errorf("iterate vocabulary entries: %w", rows.Err())
		}

		return nil
	})

	eg.Go(func() error {
		query, args, err := countQuery.ToSql()
		if err != nil {
			return fmt.Errorf("build count query: %w", err)
		}

		if err := r.client.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
			return fmt.Errorf("get total: %w", err)
		}

		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}

	return res, total, nil
}

func (r *Repository) AddVocabularyEntries(ctx context.Context, entries []dal.VocabularyEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query, args, err := dal.AddVocabularyEntriesQuery(entries).ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err = r.client.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add vocabulary entries: %w", err)
	}
	return nil
}

func (r *Repository) DeleteVocabularyEntry(ctx context.Context, userID, id string) error {
	query, args, err := dal.DeleteVocabularyEntryQuery(userID, id).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	res, err := r.client.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete vocabulary entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return dal.ErrNotFound
	}
	return nil
}

func (r *Repository) GetVocabularyStats(ctx context.Context, userID string) (*dal.VocabularyStats, error) {
	query, args, err := dal.GetVocabularyStatsQuery(userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stats query: %w", err)
	}

	var stats dal.VocabularyStats
	err = r.client.QueryRowContext(ctx, query, args...).Scan(
		&stats.UserID,
		&stats.Total,
		&stats.Last7Days,
		&stats.Conversations,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &dal.VocabularyStats{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get vocabulary stats: %w", err)
	}
	return &stats, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func hydrateVocabularyEntry(row scannable) (*dal.VocabularyEntry, error) {
	var e dal.VocabularyEntry
	err := row.Scan(
		&e.ID,
		&e.ConversationID,
		&e.UserID,
		&e.Word,
		&e.Translation,
		&e.Context,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan vocabulary entry: %w", err)
	}
	return &e, nil
}
