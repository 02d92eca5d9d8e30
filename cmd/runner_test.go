package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwhitfield/clavier/internal/api"
	"github.com/mwhitfield/clavier/internal/shared"
	"github.com/urfave/cli/v3"
)

func testConfig(t *testing.T) *shared.Config {
	t.Helper()
	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "clavier.db")
	return config
}

func migratedRunner(t *testing.T, config *shared.Config, client *api.Client, output *bytes.Buffer) *Runner {
	t.Helper()
	runner := NewRunner(RunnerOpts{Config: config, Client: client, Output: output})

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return runner
}

func TestRunner(t *testing.T) {
	t.Run("Output Helpers", func(t *testing.T) {
		t.Run("writeJSON Compact and Pretty", func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRunner(RunnerOpts{Config: testConfig(t), Output: &buf})

			if err := r.writeJSON(map[string]int{"count": 1}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if buf.String() != "{\"count\":1}\n" {
				t.Errorf("unexpected compact output %q", buf.String())
			}

			buf.Reset()
			if err := r.writeJSON(map[string]int{"count": 1}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(buf.String(), "\n  ") {
				t.Errorf("expected indented output, got %q", buf.String())
			}
		})

		t.Run("writePlainln Appends Newline", func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRunner(RunnerOpts{Config: testConfig(t), Output: &buf})

			if err := r.writePlainln("hello %s", "catalog"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if buf.String() != "hello catalog\n" {
				t.Errorf("unexpected output %q", buf.String())
			}
		})
	})

	t.Run("requireToken", func(t *testing.T) {
		t.Run("Without Stored Session", func(t *testing.T) {
			var buf bytes.Buffer
			r := migratedRunner(t, testConfig(t), nil, &buf)

			_, err := r.requireToken()
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})

		t.Run("After Login", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/auth/login" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Write([]byte(`{"success":true,"data":{"userId":"u1","email":"a@b.c","name":"Ada","token":"tok-1"}}`))
			}))
			defer server.Close()

			config := testConfig(t)
			var buf bytes.Buffer
			r := migratedRunner(t, config, api.NewClient(server.URL, nil), &buf)

			cmd := &cli.Command{
				Name: "login",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "password"},
				},
				Action: r.AuthLogin,
			}
			if err := cmd.Run(context.Background(), []string{"login", "--email", "a@b.c", "--password", "pw"}); err != nil {
				t.Fatalf("login failed: %v", err)
			}
			if !strings.Contains(buf.String(), "Signed in as Ada") {
				t.Errorf("unexpected output %q", buf.String())
			}

			token, err := r.requireToken()
			if err != nil {
				t.Fatalf("expected stored token, got %v", err)
			}
			if token != "tok-1" {
				t.Errorf("expected tok-1, got %q", token)
			}
		})
	})

	t.Run("Logout Clears Session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"data":{"userId":"u1","email":"a@b.c","name":"Ada","token":"tok-1"}}`))
		}))
		defer server.Close()

		config := testConfig(t)
		var buf bytes.Buffer
		r := migratedRunner(t, config, api.NewClient(server.URL, nil), &buf)

		login := &cli.Command{
			Name: "login",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "email"},
				&cli.StringFlag{Name: "password"},
			},
			Action: r.AuthLogin,
		}
		if err := login.Run(context.Background(), []string{"login", "--email", "a@b.c", "--password", "pw"}); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		logout := &cli.Command{Name: "logout", Action: r.AuthLogout}
		if err := logout.Run(context.Background(), []string{"logout"}); err != nil {
			t.Fatalf("logout failed: %v", err)
		}

		if _, err := r.requireToken(); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected session cleared, got %v", err)
		}
	})

	t.Run("register Exposes All Commands", func(t *testing.T) {
		r := NewRunner(RunnerOpts{Config: testConfig(t)})

		commands := r.register()
		names := map[string]bool{}
		for _, c := range commands {
			names[c.Name] = true
		}

		for _, want := range []string{"setup", "auth", "sheet", "source", "level", "genre", "profile", "stats", "export", "api", "tui"} {
			if !names[want] {
				t.Errorf("missing command %q", want)
			}
		}
	})
}
