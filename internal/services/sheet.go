package services

import (
	"context"

	"github.com/mwhitfield/clavier/internal/api"
	"github.com/mwhitfield/clavier/internal/models"
)

// SheetService covers the music-sheet CRUD endpoints. Sheet lists accept
// the full filter set (search, key, level, genre, exam-piece flag).
type SheetService struct {
	client *api.Client
}

// NewSheetService creates a SheetService backed by the given client.
func NewSheetService(client *api.Client) *SheetService {
	return &SheetService{client: client}
}

// List retrieves one page of sheets.
func (s *SheetService) List(ctx context.Context, token string, page, limit int, filters models.Filters) (*Result[[]models.Sheet], error) {
	var result Result[[]models.Sheet]
	if err := s.client.Get(ctx, listEndpoint("sheet", page, limit, filters), token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create adds a new sheet.
func (s *SheetService) Create(ctx context.Context, form models.SheetForm, token string) (*Result[models.Sheet], error) {
	var result Result[models.Sheet]
	if err := s.client.Post(ctx, "sheet", form, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update replaces the sheet with the given id.
func (s *SheetService) Update(ctx context.Context, id string, form models.SheetForm, token string) (*Result[models.Sheet], error) {
	var result Result[models.Sheet]
	if err := s.client.Put(ctx, itemEndpoint("sheet", id), form, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes the sheet with the given id.
func (s *SheetService) Delete(ctx context.Context, id, token string) (*Result[struct{}], error) {
	var result Result[struct{}]
	if err := s.client.Delete(ctx, itemEndpoint("sheet", id), token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
