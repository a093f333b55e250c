package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/goprovision/internal/domain"
)

const defaultProgressTTL = 24 * time.Hour

// Progress is the last reported state of a calculation run.
type Progress struct {
	RunID      string    `json:"run_id"`
	Processed  int       `json:"processed"`
	Total      int       `json:"total"`
	Message    string    `json:"message"`
	ReportedAt time.Time `json:"reported_at"`
}

// ProgressStore implements usecase.ProgressReporter using Redis. Writes are
// best effort; a failed write is logged and dropped so progress reporting
// can never fail a run.
type ProgressStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewProgressStore creates a new ProgressStore.
func NewProgressStore(client *redis.Client, logger zerolog.Logger) *ProgressStore {
	return &ProgressStore{
		client: client,
		prefix: "progress:",
		ttl:    defaultProgressTTL,
		logger: logger,
	}
}

// Report stores the latest progress of a run, overwriting any previous
// value.
func (s *ProgressStore) Report(ctx context.Context, runID string, processed, total int, message string) {
	payload, err := json.Marshal(Progress{
		RunID:      runID,
		Processed:  processed,
		Total:      total,
		Message:    message,
		ReportedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("run_id", runID).Msg("failed to encode progress")
		return
	}

	if err := s.client.Set(ctx, s.prefix+runID, payload, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("run_id", runID).Msg("failed to store progress")
	}
}

// Get returns the last reported progress of a run, or domain.ErrRunNotFound
// if no progress was ever recorded or it has expired.
func (s *ProgressStore) Get(ctx context.Context, runID string) (*Progress, error) {
	payload, err := s.client.Get(ctx, s.prefix+runID).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	var progress Progress
	if err := json.Unmarshal(payload, &progress); err != nil {
		return nil, err
	}

	return &progress, nil
}
