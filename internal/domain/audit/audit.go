package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hrimport/internal/platform/querier"
)

const (
	TriggerCLI      = "cli"
	TriggerHTTP     = "http"
	TriggerSchedule = "schedule"
)

const (
	ResultCommitted  = "committed"
	ResultRolledBack = "rolled_back"
)

// Run is one ledger entry per import batch, committed or not.
type Run struct {
	ID         string          `json:"id"`
	BatchID    string          `json:"batchId"`
	Trigger    string          `json:"trigger"`
	ActorID    string          `json:"actorId,omitempty"`
	RequestID  string          `json:"requestId,omitempty"`
	Result     string          `json:"result"`
	Error      string          `json:"error,omitempty"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Summary    json.RawMessage `json:"summary,omitempty"`
}

type Filter struct {
	Result  string
	Trigger string
}

// Service writes to the pool directly so that rolled back batches still
// leave an entry.
type Service struct {
	DB querier.Querier
}

func New(db querier.Querier) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, run Run, summary any) error {
	var summaryJSON []byte
	if summary != nil {
		payload, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		summaryJSON = payload
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO import_runs (batch_id, trigger_source, actor_id, request_id, result, error_message, started_at, finished_at, summary_json)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
  `, nullIfEmpty(run.BatchID), run.Trigger, nullIfEmpty(run.ActorID), nullIfEmpty(run.RequestID),
		run.Result, nullIfEmpty(run.Error), run.StartedAt, run.FinishedAt, summaryJSON)
	return err
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := s.buildBaseQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Service) List(ctx context.Context, filter Filter, includeSummary bool, limit, offset int) ([]Run, error) {
	selectCols := "id::text, COALESCE(batch_id::text, ''), trigger_source, COALESCE(actor_id, ''), COALESCE(request_id, ''), result, COALESCE(error_message, ''), started_at, finished_at"
	if includeSummary {
		selectCols += ", summary_json"
	}
	query, args := s.buildBaseQuery("SELECT "+selectCols, filter)
	query += fmt.Sprintf(" ORDER BY started_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		var run Run
		dest := []any{&run.ID, &run.BatchID, &run.Trigger, &run.ActorID, &run.RequestID, &run.Result, &run.Error, &run.StartedAt, &run.FinishedAt}
		if includeSummary {
			dest = append(dest, &run.Summary)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (s *Service) buildBaseQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM import_runs WHERE 1=1"
	var args []any
	if filter.Result != "" {
		args = append(args, filter.Result)
		query += fmt.Sprintf(" AND result = $%d", len(args))
	}
	if filter.Trigger != "" {
		args = append(args, filter.Trigger)
		query += fmt.Sprintf(" AND trigger_source = $%d", len(args))
	}
	return query, args
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
