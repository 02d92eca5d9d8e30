package services

import (
	"context"

	"github.com/mwhitfield/clavier/internal/api"
	"github.com/mwhitfield/clavier/internal/models"
)

// ProfileService retrieves the current user's details.
type ProfileService struct {
	client *api.Client
}

// NewProfileService creates a ProfileService backed by the given client.
func NewProfileService(client *api.Client) *ProfileService {
	return &ProfileService{client: client}
}

// Get retrieves the profile of the user the token belongs to.
func (s *ProfileService) Get(ctx context.Context, token string) (*Result[models.AuthUser], error) {
	var result Result[models.AuthUser]
	if err := s.client.Get(ctx, "profile", token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
