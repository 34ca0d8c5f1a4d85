package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/icodeforyou/spotprice-go/pricing"
)

// PriceDayRow is the raw price data of one delivery day as a provider
// returned it. Rows are only kept long enough to survive a restart.
type PriceDayRow struct {
	Area      string
	Date      string
	Provider  string
	FetchedAt time.Time
	Entries   []pricing.RawPriceEntry
}

func (d *Database) SavePriceDay(ctx context.Context, row PriceDayRow) error {
	entries, err := json.Marshal(row.Entries)
	if err != nil {
		return fmt.Errorf("encoding price entries for %s %s: %w", row.Area, row.Date, err)
	}

	_, err = d.write.ExecContext(ctx, `
		INSERT INTO price_day (area, date, provider, fetched_at, entries)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(area, date) DO UPDATE SET
			provider = excluded.provider,
			fetched_at = excluded.fetched_at,
			entries = excluded.entries`,
		row.Area,
		row.Date,
		row.Provider,
		row.FetchedAt.UTC().Format(time.RFC3339),
		string(entries))
	if err != nil {
		return fmt.Errorf("saving price day %s %s: %w", row.Area, row.Date, err)
	}
	return nil
}

func (d *Database) GetPriceDay(ctx context.Context, area, date string) (PriceDayRow, error) {
	row := d.read.QueryRowContext(ctx, `
		SELECT area, date, provider, fetched_at, entries
		FROM price_day
		WHERE area = ? AND date = ?`,
		area, date)

	var r PriceDayRow
	var fetchedAt, entries string
	err := row.Scan(&r.Area, &r.Date, &r.Provider, &fetchedAt, &entries)
	if errors.Is(err, sql.ErrNoRows) {
		return PriceDayRow{}, ErrNotFound
	}
	if err != nil {
		return PriceDayRow{}, fmt.Errorf("fetching price day %s %s: %w", area, date, err)
	}

	r.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return PriceDayRow{}, fmt.Errorf("parsing fetched_at: %w", err)
	}
	if err := json.Unmarshal([]byte(entries), &r.Entries); err != nil {
		return PriceDayRow{}, fmt.Errorf("decoding price entries for %s %s: %w", area, date, err)
	}

	return r, nil
}

// PurgePriceDays removes all days before the given date (YYYY-MM-DD).
func (d *Database) PurgePriceDays(ctx context.Context, before string) error {
	d.logger.Debug("purging price days", slog.String("before", before))
	res, err := d.write.ExecContext(ctx, `DELETE FROM price_day WHERE date < ?`, before)
	if err != nil {
		return fmt.Errorf("error when purging price_day: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		d.logger.Warn("can't get rows affected by purge", slog.String("table", "price_day"), slog.Any("error", err))
	} else {
		d.logger.Debug(fmt.Sprintf("purged %d rows from price_day", rows))
	}
	return nil
}
