package query

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/mwhitfield/clavier/internal/api"
)

func TestMutation(t *testing.T) {
	t.Run("Success Returns Result Without Toast", func(t *testing.T) {
		h := &Handler{Toast: func(string) { t.Error("toast on success") }}
		m := NewMutation(h, nil)

		result, ok := RunMutation(context.Background(), m, func(context.Context) (string, error) {
			return "created", nil
		})

		if !ok {
			t.Fatal("expected ok")
		}
		if result != "created" {
			t.Errorf("expected passthrough result, got %q", result)
		}
		if m.IsLoading() {
			t.Error("loading flag not cleared")
		}
	})

	t.Run("Failure Routes Error and Returns Zero", func(t *testing.T) {
		var toasted string
		h := &Handler{Toast: func(msg string) { toasted = msg }}
		m := NewMutation(h, nil)

		result, ok := RunMutation(context.Background(), m, func(context.Context) (int, error) {
			return 42, &api.Error{StatusCode: http.StatusBadRequest, Message: "Title is required"}
		})

		if ok {
			t.Fatal("expected failure")
		}
		if result != 0 {
			t.Errorf("expected zero value, got %d", result)
		}
		if toasted != "Title is required" {
			t.Errorf("expected validation message toasted, got %q", toasted)
		}
		if m.IsLoading() {
			t.Error("loading flag not cleared after failure")
		}
	})

	t.Run("Unauthorized Failure Fires Bound Callback", func(t *testing.T) {
		fired := false
		h := &Handler{Toast: func(string) {}}
		m := NewMutation(h, func() { fired = true })

		_, ok := RunMutation(context.Background(), m, func(context.Context) (struct{}, error) {
			return struct{}{}, &api.Error{StatusCode: http.StatusUnauthorized, Message: "expired"}
		})

		if ok {
			t.Fatal("expected failure")
		}
		if !fired {
			t.Error("unauthorized callback not fired")
		}
	})

	t.Run("Loading Flag Set While In Flight", func(t *testing.T) {
		h := &Handler{}
		m := NewMutation(h, nil)

		var wg sync.WaitGroup
		entered := make(chan struct{})
		release := make(chan struct{})

		wg.Add(1)
		go func() {
			defer wg.Done()
			RunMutation(context.Background(), m, func(context.Context) (struct{}, error) {
				close(entered)
				<-release
				return struct{}{}, nil
			})
		}()

		<-entered
		if !m.IsLoading() {
			t.Error("expected loading while call in flight")
		}
		close(release)
		wg.Wait()

		if m.IsLoading() {
			t.Error("expected loading cleared after call")
		}
	})
}
