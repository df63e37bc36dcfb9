package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"OddsLens/internal/domain/models"
	domrepo "OddsLens/internal/domain/repository"
)

// HistorySchema creates the price history table. Applied idempotently at
// startup through the clickhouse client.
var HistorySchema = []string{
	"CREATE DATABASE IF NOT EXISTS oddslens",
	"CREATE TABLE IF NOT EXISTS oddslens.price_history (market_id String, ts DateTime, price Float64) ENGINE=ReplacingMergeTree ORDER BY (market_id, ts)",
}

// ClickHouseHistoryStore persists fetched price points. ReplacingMergeTree
// dedupes the overlap between successive fetches of the same interval.
type ClickHouseHistoryStore struct {
	db    *sql.DB
	table string
}

func NewClickHouseHistoryStore(db *sql.DB, table string) *ClickHouseHistoryStore {
	if table == "" {
		table = "oddslens.price_history"
	}
	return &ClickHouseHistoryStore{db: db, table: table}
}

func (s *ClickHouseHistoryStore) Insert(ctx context.Context, marketID string, points []models.PricePoint) error {
	if len(points) == 0 {
		return nil
	}

	const chunkSize = 2000
	for start := 0; start < len(points); start += chunkSize {
		end := start + chunkSize
		if end > len(points) {
			end = len(points)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*3)
		for _, p := range points[start:end] {
			if p.T.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?)")
			args = append(args, marketID, p.T, p.Price)
		}
		if len(values) == 0 {
			continue
		}

		q := fmt.Sprintf("INSERT INTO %s (market_id, ts, price) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseHistoryStore) Range(ctx context.Context, marketID string, from, to time.Time) ([]models.PricePoint, error) {
	q := fmt.Sprintf("SELECT ts, price FROM %s WHERE market_id = ? AND ts >= ? AND ts <= ? ORDER BY ts ASC", s.table)
	rows, err := s.db.QueryContext(ctx, q, marketID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var points []models.PricePoint
	for rows.Next() {
		var p models.PricePoint
		if err := rows.Scan(&p.T, &p.Price); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

var _ domrepo.HistoryStore = (*ClickHouseHistoryStore)(nil)
