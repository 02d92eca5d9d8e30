package services

import (
	"context"

	"github.com/mwhitfield/clavier/internal/api"
	"github.com/mwhitfield/clavier/internal/models"
)

// SourceService covers the source CRUD endpoints plus the lightweight
// lookup listing used by sheet forms.
type SourceService struct {
	client *api.Client
}

// NewSourceService creates a SourceService backed by the given client.
func NewSourceService(client *api.Client) *SourceService {
	return &SourceService{client: client}
}

// List retrieves one page of sources.
func (s *SourceService) List(ctx context.Context, token string, page, limit int, filters models.Filters) (*Result[[]models.Source], error) {
	var result Result[[]models.Source]
	if err := s.client.Get(ctx, listEndpoint("source", page, limit, filters), token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create adds a new source.
func (s *SourceService) Create(ctx context.Context, form models.SourceForm, token string) (*Result[models.Source], error) {
	var result Result[models.Source]
	if err := s.client.Post(ctx, "source", form, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update replaces the source with the given id.
func (s *SourceService) Update(ctx context.Context, id string, form models.SourceForm, token string) (*Result[models.Source], error) {
	var result Result[models.Source]
	if err := s.client.Put(ctx, itemEndpoint("source", id), form, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes the source with the given id.
func (s *SourceService) Delete(ctx context.Context, id, token string) (*Result[struct{}], error) {
	var result Result[struct{}]
	if err := s.client.Delete(ctx, itemEndpoint("source", id), token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Lookup retrieves the {id, title} listing for dropdowns.
func (s *SourceService) Lookup(ctx context.Context, token string) (*Result[[]models.SourceLookup], error) {
	var result Result[[]models.SourceLookup]
	if err := s.client.Get(ctx, "source/lookup", token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
