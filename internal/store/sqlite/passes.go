package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"iceberg_farmer/internal/model"
)

// SavePassReport appends one finished pass to the journal.
func (s *Store) SavePassReport(ctx context.Context, r model.PassReport) error {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return errors.New("pass report needs start and finish times")
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode pass report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pass_reports (id, number, started_at, finished_at, accounts, skipped, ads_viewed, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Number, r.StartedAt.UnixMilli(), r.FinishedAt.UnixMilli(), len(r.Accounts), r.Skipped(), r.AdsViewed(), string(raw))
	return err
}

// ListPassReports returns the newest passes first.
func (s *Store) ListPassReports(ctx context.Context, limit int) ([]model.PassReport, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT report_json FROM pass_reports
		ORDER BY started_at DESC, number DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.PassReport, 0, limit)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var r model.PassReport
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("decode pass report: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
