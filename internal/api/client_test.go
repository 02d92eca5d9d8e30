package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	tu "github.com/mwhitfield/clavier/internal/testing"
)

func TestClient(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			c := NewClient("http://example.com/api", customClient)

			if c.baseURL != "http://example.com/api" {
				t.Errorf("expected baseURL 'http://example.com/api', got %s", c.baseURL)
			}
			if c.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			c := NewClient("", nil)

			if c.baseURL != "http://localhost:3000/api" {
				t.Errorf("expected default baseURL, got %s", c.baseURL)
			}
			if c.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("Trailing Slash Trimmed", func(t *testing.T) {
			c := NewClient("http://example.com/api/", nil)
			if c.baseURL != "http://example.com/api" {
				t.Errorf("expected trailing slash trimmed, got %s", c.baseURL)
			}
		})
	})

	t.Run("Headers", func(t *testing.T) {
		t.Run("Sets Bearer Token and Content Type", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
					t.Errorf("expected bearer header, got %q", got)
				}
				if got := r.Header.Get("Content-Type"); got != "application/json" {
					t.Errorf("expected JSON content type, got %q", got)
				}
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			c := NewClient(server.URL, nil)
			if err := c.Get(context.Background(), "sheet", "tok-123", nil); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Omits Authorization Without Token", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "" {
					t.Errorf("expected no Authorization header, got %q", got)
				}
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			c := NewClient(server.URL, nil)
			if err := c.Post(context.Background(), "auth/login", map[string]string{"email": "a@b.c"}, "", nil); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Errors", func(t *testing.T) {
		t.Run("Non-2xx With Message Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"message": "Sheet not found"})
			}))
			defer server.Close()

			c := NewClient(server.URL, nil)
			err := c.Get(context.Background(), "sheet/missing", "tok", nil)
			if err == nil {
				t.Fatal("expected error")
			}

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if apiErr.StatusCode != http.StatusNotFound {
				t.Errorf("expected status 404, got %d", apiErr.StatusCode)
			}
			if apiErr.Message != "Sheet not found" {
				t.Errorf("expected server message, got %q", apiErr.Message)
			}
		})

		t.Run("Non-2xx With Non-JSON Body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("<html>boom</html>"))
			}))
			defer server.Close()

			c := NewClient(server.URL, nil)
			err := c.Get(context.Background(), "stats", "tok", nil)

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if apiErr.Message != "HTTP Error" {
				t.Errorf("expected fallback message, got %q", apiErr.Message)
			}
			if apiErr.Error() != "500 - HTTP Error" {
				t.Errorf("unexpected error string %q", apiErr.Error())
			}
		})

		t.Run("Network Failure Is Not a Typed Error", func(t *testing.T) {
			c := NewClient("http://example.com", &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
			})

			err := c.Get(context.Background(), "sheet", "tok", nil)
			if err == nil {
				t.Fatal("expected error")
			}

			var apiErr *Error
			if errors.As(err, &apiErr) {
				t.Error("transport failures must not carry a status code")
			}
		})

		t.Run("Unauthorized Status Preserved", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Invalid token"})
			}))
			defer server.Close()

			c := NewClient(server.URL, nil)
			err := c.Get(context.Background(), "profile", "expired", nil)

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if apiErr.StatusCode != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", apiErr.StatusCode)
			}
		})
	})

	t.Run("Decode", func(t *testing.T) {
		t.Run("Populates Destination", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []string{"a"}})
			}))
			defer server.Close()

			var dest struct {
				Success bool     `json:"success"`
				Data    []string `json:"data"`
			}
			c := NewClient(server.URL, nil)
			if err := c.Get(context.Background(), "genre", "tok", &dest); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !dest.Success || len(dest.Data) != 1 {
				t.Errorf("destination not populated: %+v", dest)
			}
		})

		t.Run("Nil Destination Skips Decoding", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("not json at all"))
			}))
			defer server.Close()

			c := NewClient(server.URL, nil)
			if err := c.Delete(context.Background(), "sheet/1", "tok", nil); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("Raw", func(t *testing.T) {
		t.Run("Returns Body and Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"ok":true}`))
			}))
			defer server.Close()

			c := NewClient(server.URL, nil)
			body, status, err := c.Raw(context.Background(), http.MethodPost, "sheet", []byte(`{}`), "tok")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if status != http.StatusCreated {
				t.Errorf("expected 201, got %d", status)
			}
			if string(body) != `{"ok":true}` {
				t.Errorf("unexpected body %q", string(body))
			}
		})
	})
}
