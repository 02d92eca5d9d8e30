package services

import (
	"context"

	"github.com/mwhitfield/clavier/internal/api"
	"github.com/mwhitfield/clavier/internal/models"
)

// LevelService covers the difficulty-level CRUD endpoints.
type LevelService struct {
	client *api.Client
}

// NewLevelService creates a LevelService backed by the given client.
func NewLevelService(client *api.Client) *LevelService {
	return &LevelService{client: client}
}

// List retrieves one page of levels.
func (s *LevelService) List(ctx context.Context, token string, page, limit int, filters models.Filters) (*Result[[]models.Level], error) {
	var result Result[[]models.Level]
	if err := s.client.Get(ctx, listEndpoint("level", page, limit, filters), token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create adds a new level.
func (s *LevelService) Create(ctx context.Context, form models.LevelForm, token string) (*Result[models.Level], error) {
	var result Result[models.Level]
	if err := s.client.Post(ctx, "level", form, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update replaces the level with the given id.
func (s *LevelService) Update(ctx context.Context, id string, form models.LevelForm, token string) (*Result[models.Level], error) {
	var result Result[models.Level]
	if err := s.client.Put(ctx, itemEndpoint("level", id), form, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes the level with the given id.
func (s *LevelService) Delete(ctx context.Context, id, token string) (*Result[struct{}], error) {
	var result Result[struct{}]
	if err := s.client.Delete(ctx, itemEndpoint("level", id), token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
