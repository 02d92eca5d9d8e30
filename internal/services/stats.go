package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mwhitfield/clavier/internal/api"
	"github.com/mwhitfield/clavier/internal/models"
)

// StatsService retrieves the aggregate catalog counts for the dashboard.
type StatsService struct {
	client *api.Client
}

// NewStatsService creates a StatsService backed by the given client.
func NewStatsService(client *api.Client) *StatsService {
	return &StatsService{client: client}
}

type incompleteCount struct {
	Count int `json:"count"`
}

// Get retrieves the stats aggregation. The backend returns data as a
// three-element array: sheets by level, sheets by genre, and a single-row
// incomplete-data count, in that order.
func (s *StatsService) Get(ctx context.Context, token string) (*models.Stats, error) {
	var result Result[[]json.RawMessage]
	if err := s.client.Get(ctx, "stats", token, &result); err != nil {
		return nil, err
	}

	if len(result.Data) < 3 {
		return nil, fmt.Errorf("unexpected stats payload: %d sections", len(result.Data))
	}

	var stats models.Stats
	if err := json.Unmarshal(result.Data[0], &stats.ByLevel); err != nil {
		return nil, fmt.Errorf("failed to decode level counts: %w", err)
	}
	if err := json.Unmarshal(result.Data[1], &stats.ByGenre); err != nil {
		return nil, fmt.Errorf("failed to decode genre counts: %w", err)
	}

	var incomplete []incompleteCount
	if err := json.Unmarshal(result.Data[2], &incomplete); err != nil {
		return nil, fmt.Errorf("failed to decode incomplete count: %w", err)
	}
	if len(incomplete) > 0 {
		stats.Incomplete = incomplete[0].Count
	}

	return &stats, nil
}
