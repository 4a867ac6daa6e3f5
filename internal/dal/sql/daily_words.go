package sql

import (
	"context"
	"fmt"

	"github.com/valoda-app/valoda-backend/internal/dal"
)

func (r *Repository) FindDailyWords(ctx context.Context, userID, date string) ([]dal.DailyWordEntry, error) {
	query, args, err := dal.FindDailyWordsQuery(userID, date).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	rows, err := r.client.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find daily words: %w", err)
	}
	defer rows.Close()

	res := make([]dal.DailyWordEntry, 0)
	for rows.Next() {
		var e dal.DailyWordEntry
		err = rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Word,
			&e.Translation,
			&e.Context,
			&e.Topic,
			&e.Date,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan daily word: %w", err)
		}
		res = append(res, e)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate daily words: %w", rows.Err())
	}

	return res, nil
}

func (r *Repository) AddDailyWords(ctx context.Context, entries []dal.DailyWordEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query, args, err := dal.AddDailyWordsQuery(entries).ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err = r.client.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add daily words: %w", err)
	}
	return nil
}
