package services

import (
	"context"

	"github.com/mwhitfield/clavier/internal/api"
	"github.com/mwhitfield/clavier/internal/models"
)

// AuthService talks to the backend's auth endpoints. Login and signup are
// the only calls in the system issued without a bearer token.
type AuthService struct {
	client *api.Client
}

// NewAuthService creates an AuthService backed by the given client.
func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

// LoginData is the payload of a successful login response.
type LoginData struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token and the user's identity.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Result[LoginData], error) {
	var result Result[LoginData]
	body := loginRequest{Email: email, Password: password}
	if err := s.client.Post(ctx, "auth/login", body, "", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Signup registers a new account. The caller still has to log in afterwards.
func (s *AuthService) Signup(ctx context.Context, email, name, password string) (*Result[struct{}], error) {
	var result Result[struct{}]
	body := signupRequest{Email: email, Name: name, Password: password}
	if err := s.client.Post(ctx, "auth/signup", body, "", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Verify checks a persisted token against the backend and returns the user
// it belongs to. The token travels in the Authorization header.
func (s *AuthService) Verify(ctx context.Context, token string) (*Result[models.AuthUser], error) {
	var result Result[models.AuthUser]
	if err := s.client.Post(ctx, "auth/verify", nil, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
