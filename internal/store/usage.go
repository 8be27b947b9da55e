package store

import (
	"context"
	"database/sql"
	"fmt"
)

type usageRepo struct {
	db *sql.DB
}

func (r *usageRepo) AppendLLMRequest(ctx context.Context, rec LLMRequestRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_requests
			(provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Provider, rec.Model, rec.Purpose,
		rec.InputTokens, rec.OutputTokens, rec.LatencyMs,
		rec.Success, rec.ErrorMessage)
	if err != nil {
		return fmt.Errorf("append llm request: %w", err)
	}
	return nil
}

func (r *usageRepo) Summary(ctx context.Context) (UsageSummary, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(input_tokens), 0),
		       COALESCE(SUM(output_tokens), 0)
		FROM llm_requests`)

	var s UsageSummary
	if err := row.Scan(&s.Requests, &s.Failures, &s.InputTokens, &s.OutputTokens); err != nil {
		return UsageSummary{}, fmt.Errorf("usage summary: %w", err)
	}
	return s, nil
}

func (r *usageRepo) SummaryByPurpose(ctx context.Context) (map[string]UsageSummary, error) {
	return r.groupedSummary(ctx, "purpose")
}

func (r *usageRepo) SummaryByModel(ctx context.Context) (map[string]UsageSummary, error) {
	return r.groupedSummary(ctx, "model")
}

func (r *usageRepo) groupedSummary(ctx context.Context, column string) (map[string]UsageSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+column+`,
		       COUNT(*),
		       COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(input_tokens), 0),
		       COALESCE(SUM(output_tokens), 0)
		FROM llm_requests GROUP BY `+column)
	if err != nil {
		return nil, fmt.Errorf("usage by %s: %w", column, err)
	}
	defer rows.Close()

	out := map[string]UsageSummary{}
	for rows.Next() {
		var key string
		var s UsageSummary
		if err := rows.Scan(&key, &s.Requests, &s.Failures, &s.InputTokens, &s.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		out[key] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("usage by %s: %w", column, err)
	}
	return out, nil
}
