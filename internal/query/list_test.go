package query

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/mwhitfield/clavier/internal/api"
	"github.com/mwhitfield/clavier/internal/models"
)

// fakeFetcher records every request and serves canned pages, optionally
// blocking until released so tests can interleave responses.
type fakeFetcher struct {
	mu       sync.Mutex
	requests []Request
	pages    map[int]Page[string]
	err      error
	gate     chan struct{}
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[int]Page[string]{}}
}

func (f *fakeFetcher) setPage(page int, items []string, totalPages int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[page] = Page[string]{
		Items:      items,
		Pagination: &models.Pagination{CurrentPage: page, TotalPages: totalPages},
	}
}

func (f *fakeFetcher) fetch(ctx context.Context, req Request) (Page[string], error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	page, ok := f.pages[req.Page]
	err := f.err
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return Page[string]{}, err
	}
	if !ok {
		return Page[string]{Pagination: &models.Pagination{CurrentPage: req.Page, TotalPages: 1}}, nil
	}
	return page, nil
}

func (f *fakeFetcher) lastRequest() (Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return Request{}, false
	}
	return f.requests[len(f.requests)-1], true
}

func (f *fakeFetcher) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition never met")
}

func newTestList(f *fakeFetcher, handler *Handler) *List[string] {
	if handler == nil {
		handler = &Handler{}
	}
	return NewList(ListConfig[string]{
		Fetch:    f.fetch,
		Handler:  handler,
		Filters:  models.SheetFilters{Level: models.FilterAll, Genre: models.FilterAll},
		Limit:    10,
		Debounce: 5 * time.Millisecond,
	})
}

func TestList(t *testing.T) {
	t.Run("No Fetch Without Token", func(t *testing.T) {
		f := newFakeFetcher()
		l := newTestList(f, nil)

		l.Refresh()
		l.Paginate(2)
		l.SetFilters(models.SheetFilters{Search: "x"})

		time.Sleep(20 * time.Millisecond)
		if f.requestCount() != 0 {
			t.Errorf("expected no fetches without a token, got %d", f.requestCount())
		}
	})

	t.Run("SetToken Triggers Initial Load", func(t *testing.T) {
		f := newFakeFetcher()
		f.setPage(1, []string{"Nocturne", "Prelude"}, 3)
		l := newTestList(f, nil)

		l.SetToken("tok")

		waitFor(t, func() bool { return len(l.State().Items) == 2 })
		state := l.State()
		if state.CurrentPage != 1 || state.TotalPages != 3 {
			t.Errorf("unexpected state: %+v", state)
		}
		if state.IsLoading {
			t.Error("loading flag not cleared")
		}

		req, _ := f.lastRequest()
		if req.Token != "tok" || req.Limit != 10 {
			t.Errorf("unexpected request: %+v", req)
		}
	})

	t.Run("Same Token Does Not Refetch", func(t *testing.T) {
		f := newFakeFetcher()
		l := newTestList(f, nil)

		l.SetToken("tok")
		waitFor(t, func() bool { return f.requestCount() == 1 })

		l.SetToken("tok")
		time.Sleep(20 * time.Millisecond)
		if f.requestCount() != 1 {
			t.Errorf("expected no refetch for identical token, got %d requests", f.requestCount())
		}
	})

	t.Run("Paginate Keeps Filters", func(t *testing.T) {
		f := newFakeFetcher()
		l := newTestList(f, nil)

		l.SetToken("tok")
		waitFor(t, func() bool { return f.requestCount() == 1 })

		l.SetFilters(models.SheetFilters{Key: "Am", Level: models.FilterAll, Genre: models.FilterAll})
		waitFor(t, func() bool { return f.requestCount() == 2 })

		l.Paginate(3)
		waitFor(t, func() bool { return f.requestCount() == 3 })

		req, _ := f.lastRequest()
		if req.Page != 3 {
			t.Errorf("expected page 3, got %d", req.Page)
		}
		filters, ok := req.Filters.(models.SheetFilters)
		if !ok || filters.Key != "Am" {
			t.Errorf("pagination dropped filters: %+v", req.Filters)
		}
	})

	t.Run("SetFilters Resets to Page One", func(t *testing.T) {
		f := newFakeFetcher()
		l := newTestList(f, nil)

		l.SetToken("tok")
		waitFor(t, func() bool { return f.requestCount() == 1 })
		l.Paginate(5)
		waitFor(t, func() bool { return f.requestCount() == 2 })

		l.SetFilters(models.SheetFilters{Genre: "baroque", Level: models.FilterAll})
		waitFor(t, func() bool { return f.requestCount() == 3 })

		req, _ := f.lastRequest()
		if req.Page != 1 {
			t.Errorf("expected filter change to reset to page 1, got %d", req.Page)
		}
	})

	t.Run("Page Below One Clamps", func(t *testing.T) {
		f := newFakeFetcher()
		l := newTestList(f, nil)

		l.SetToken("tok")
		waitFor(t, func() bool { return f.requestCount() == 1 })

		l.Paginate(0)
		waitFor(t, func() bool { return f.requestCount() == 2 })

		req, _ := f.lastRequest()
		if req.Page != 1 {
			t.Errorf("expected clamp to page 1, got %d", req.Page)
		}
	})

	t.Run("Debounced Search Resets Page and Updates Filter", func(t *testing.T) {
		f := newFakeFetcher()
		l := newTestList(f, nil)

		l.SetToken("tok")
		waitFor(t, func() bool { return f.requestCount() == 1 })
		l.Paginate(4)
		waitFor(t, func() bool { return f.requestCount() == 2 })

		l.SetSearch("noc")
		l.SetSearch("noct")
		l.SetSearch("nocturne")

		waitFor(t, func() bool { return f.requestCount() == 3 })
		time.Sleep(20 * time.Millisecond)
		if f.requestCount() != 3 {
			t.Fatalf("expected one debounced fetch, got %d", f.requestCount()-2)
		}

		req, _ := f.lastRequest()
		if req.Page != 1 {
			t.Errorf("expected search to reset to page 1, got %d", req.Page)
		}
		filters, _ := req.Filters.(models.SheetFilters)
		if filters.Search != "nocturne" {
			t.Errorf("expected settled search text, got %q", filters.Search)
		}
	})

	t.Run("Stale Response Is Discarded", func(t *testing.T) {
		f := newFakeFetcher()
		f.setPage(1, []string{"old"}, 2)
		f.setPage(2, []string{"new"}, 2)

		gate := make(chan struct{})
		f.mu.Lock()
		f.gate = gate
		f.mu.Unlock()

		l := newTestList(f, nil)
		l.SetToken("tok")
		waitFor(t, func() bool { return f.requestCount() == 1 })

		// A second fetch supersedes the first while both are blocked.
		l.Paginate(2)
		waitFor(t, func() bool { return f.requestCount() == 2 })

		close(gate)
		waitFor(t, func() bool { return len(l.State().Items) == 1 })
		time.Sleep(20 * time.Millisecond)

		state := l.State()
		if state.Items[0] != "new" {
			t.Errorf("stale page overwrote newer state: %v", state.Items)
		}
		if state.CurrentPage != 2 {
			t.Errorf("expected page 2, got %d", state.CurrentPage)
		}
	})

	t.Run("Fetch Error Routes Through Handler and Keeps Items", func(t *testing.T) {
		f := newFakeFetcher()
		f.setPage(1, []string{"kept"}, 1)

		var mu sync.Mutex
		var toasts []string
		h := &Handler{Toast: func(m string) {
			mu.Lock()
			toasts = append(toasts, m)
			mu.Unlock()
		}}

		l := newTestList(f, h)
		l.SetToken("tok")
		waitFor(t, func() bool { return len(l.State().Items) == 1 })

		f.mu.Lock()
		f.err = &api.Error{StatusCode: http.StatusInternalServerError, Message: "Server error"}
		f.mu.Unlock()

		l.Refresh()
		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(toasts) == 1
		})

		mu.Lock()
		if toasts[0] != "Server error" {
			t.Errorf("expected server message toasted, got %q", toasts[0])
		}
		mu.Unlock()

		state := l.State()
		if len(state.Items) != 1 || state.Items[0] != "kept" {
			t.Errorf("failed fetch dropped existing items: %v", state.Items)
		}
		if state.IsLoading {
			t.Error("loading flag not cleared after failure")
		}
	})

	t.Run("Unauthorized Fetch Fires Bound Callback", func(t *testing.T) {
		f := newFakeFetcher()
		f.mu.Lock()
		f.err = &api.Error{StatusCode: http.StatusUnauthorized, Message: "expired"}
		f.mu.Unlock()

		fired := make(chan struct{}, 1)
		l := NewList(ListConfig[string]{
			Fetch:          f.fetch,
			Handler:        &Handler{Toast: func(string) {}},
			OnUnauthorized: func() { fired <- struct{}{} },
			Filters:        models.SearchFilter{},
			Debounce:       5 * time.Millisecond,
		})

		l.SetToken("expired-tok")

		select {
		case <-fired:
		case <-time.After(2 * time.Second):
			t.Fatal("unauthorized callback never fired")
		}
	})

	t.Run("Close Cancels Pending Search", func(t *testing.T) {
		f := newFakeFetcher()
		l := newTestList(f, nil)

		l.SetToken("tok")
		waitFor(t, func() bool { return f.requestCount() == 1 })

		l.SetSearch("pending")
		l.Close()

		time.Sleep(30 * time.Millisecond)
		if f.requestCount() != 1 {
			t.Errorf("closed list still fetched, got %d requests", f.requestCount())
		}
	})

	t.Run("OnChange Reports Loading Transition", func(t *testing.T) {
		f := newFakeFetcher()
		f.setPage(1, []string{"a"}, 1)

		var mu sync.Mutex
		var loadingSeq []bool
		l := NewList(ListConfig[string]{
			Fetch:   f.fetch,
			Handler: &Handler{},
			OnChange: func(s ListState[string]) {
				mu.Lock()
				loadingSeq = append(loadingSeq, s.IsLoading)
				mu.Unlock()
			},
			Filters:  models.SearchFilter{},
			Debounce: 5 * time.Millisecond,
		})

		l.SetToken("tok")
		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(loadingSeq) >= 2
		})

		mu.Lock()
		defer mu.Unlock()
		if !loadingSeq[0] {
			t.Error("first notification should report loading")
		}
		if loadingSeq[len(loadingSeq)-1] {
			t.Error("final notification should report settled")
		}
	})
}
