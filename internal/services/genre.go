package services

import (
	"context"

	"github.com/mwhitfield/clavier/internal/api"
	"github.com/mwhitfield/clavier/internal/models"
)

// GenreService covers the genre CRUD endpoints.
type GenreService struct {
	client *api.Client
}

// NewGenreService creates a GenreService backed by the given client.
func NewGenreService(client *api.Client) *GenreService {
	return &GenreService{client: client}
}

// List retrieves one page of genres.
func (s *GenreService) List(ctx context.Context, token string, page, limit int, filters models.Filters) (*Result[[]models.Genre], error) {
	var result Result[[]models.Genre]
	if err := s.client.Get(ctx, listEndpoint("genre", page, limit, filters), token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create adds a new genre.
func (s *GenreService) Create(ctx context.Context, form models.GenreForm, token string) (*Result[models.Genre], error) {
	var result Result[models.Genre]
	if err := s.client.Post(ctx, "genre", form, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update replaces the genre with the given id.
func (s *GenreService) Update(ctx context.Context, id string, form models.GenreForm, token string) (*Result[models.Genre], error) {
	var result Result[models.Genre]
	if err := s.client.Put(ctx, itemEndpoint("genre", id), form, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes the genre with the given id.
func (s *GenreService) Delete(ctx context.Context, id, token string) (*Result[struct{}], error) {
	var result Result[struct{}]
	if err := s.client.Delete(ctx, itemEndpoint("genre", id), token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
