package query

import (
	"context"
	"sync"
	"time"

	"github.com/mwhitfield/clavier/internal/models"
)

// Page is one fetched page of a resource list.
type Page[T any] struct {
	Items      []T
	Pagination *models.Pagination
}

// Request carries everything a [Fetcher] needs for one list call.
type Request struct {
	Token   string
	Page    int
	Limit   int
	Filters models.Filters
}

// Fetcher loads one page of a resource list, typically by delegating to a
// service. Fetchers never catch errors.
type Fetcher[T any] func(ctx context.Context, req Request) (Page[T], error)

// ListState is a point-in-time snapshot of a list controller.
type ListState[T any] struct {
	Items       []T
	IsLoading   bool
	CurrentPage int
	// TotalPages is zero until the first page has resolved.
	TotalPages int
}

// ListConfig configures a [List].
type ListConfig[T any] struct {
	// Fetch loads a page. Required.
	Fetch Fetcher[T]
	// Handler receives every caught error. Required.
	Handler *Handler
	// OnUnauthorized is passed to the Handler on every failure; typically
	// bound to session logout.
	OnUnauthorized func()
	// OnChange is invoked outside locks after every state change.
	OnChange func(ListState[T])
	// Filters is the initial filter set. Required; its concrete type fixes
	// the filter shape for the controller's lifetime.
	Filters models.Filters
	// Limit is the page size. Defaults to 10.
	Limit int
	// Debounce is the search settle delay. Defaults to [DefaultDebounce].
	Debounce time.Duration
	// Context bounds every fetch issued by the controller. Defaults to
	// [context.Background].
	Context context.Context
}

// List owns the state of one resource list: items, loading flag, current
// page, filters, debounced search text and a refresh counter. Mutators
// trigger refetches; while no token is present nothing is fetched (not yet
// authenticated is not an error).
//
// Each issued fetch is stamped with the generation current at issue time; a
// response whose generation is no longer the latest when it resolves is
// discarded, so an in-flight stale response can never overwrite newer state.
type List[T any] struct {
	fetch          Fetcher[T]
	handler        *Handler
	onUnauthorized func()
	onChange       func(ListState[T])
	limit          int
	ctx            context.Context
	search         *Debouncer[string]

	mu         sync.Mutex
	token      string
	page       int
	filters    models.Filters
	refresh    int
	generation uint64
	items      []T
	loading    bool
	totalPages int
	closed     bool
}

// NewList creates a list controller. No fetch is issued until a token is
// supplied via SetToken.
func NewList[T any](cfg ListConfig[T]) *List[T] {
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}

	l := &List[T]{
		fetch:          cfg.Fetch,
		handler:        cfg.Handler,
		onUnauthorized: cfg.OnUnauthorized,
		onChange:       cfg.OnChange,
		limit:          cfg.Limit,
		ctx:            cfg.Context,
		page:           1,
		filters:        cfg.Filters,
	}
	l.search = NewDebouncer(cfg.Debounce, l.applySearch)
	return l
}

// State returns a snapshot of the controller.
func (l *List[T]) State() ListState[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Filters returns the current filter set.
func (l *List[T]) Filters() models.Filters {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filters
}

// SetToken installs the ambient auth token. A non-empty token triggers a
// fetch; clearing the token stops future fetches but leaves current items
// in place.
func (l *List[T]) SetToken(token string) {
	l.mu.Lock()
	if token == l.token {
		l.mu.Unlock()
		return
	}
	l.token = token
	l.mu.Unlock()

	l.load()
}

// Refresh requests a refetch of the current page. Safe to call from any
// goroutine and at any frequency; concurrent refreshes are collapsed by
// generation stamping.
func (l *List[T]) Refresh() {
	l.mu.Lock()
	l.refresh++
	l.mu.Unlock()

	l.load()
}

// Paginate moves to the given 1-based page without touching filters.
func (l *List[T]) Paginate(page int) {
	if page < 1 {
		page = 1
	}

	l.mu.Lock()
	l.page = page
	l.mu.Unlock()

	l.load()
}

// SetFilters replaces the filter set and resets the current page to 1: a
// changed filter set invalidates the previous page's meaning.
func (l *List[T]) SetFilters(filters models.Filters) {
	l.mu.Lock()
	l.filters = filters
	l.page = 1
	l.mu.Unlock()

	l.load()
}

// SetSearch routes new search text through the debouncer. Once the text has
// settled the filter set is updated and the page reset to 1, exactly as
// SetFilters does.
func (l *List[T]) SetSearch(text string) {
	l.search.Set(text)
}

// Close cancels the pending debounced search, if any.
func (l *List[T]) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	l.search.Stop()
}

func (l *List[T]) applySearch(text string) {
	l.mu.Lock()
	if l.filters == nil {
		l.mu.Unlock()
		return
	}
	next := l.filters.WithSearch(text)
	l.filters = next
	l.page = 1
	l.mu.Unlock()

	l.load()
}

// load issues a fetch for the current state. Skipped entirely while no
// token is present.
func (l *List[T]) load() {
	l.mu.Lock()
	if l.token == "" || l.closed {
		l.mu.Unlock()
		return
	}

	l.generation++
	gen := l.generation
	req := Request{
		Token:   l.token,
		Page:    l.page,
		Limit:   l.limit,
		Filters: l.filters,
	}
	l.loading = true
	state := l.snapshotLocked()
	l.mu.Unlock()

	l.notify(state)

	go func() {
		page, err := l.fetch(l.ctx, req)

		l.mu.Lock()
		if gen != l.generation {
			// A newer fetch supersedes this one; its resolution wins
			// regardless of arrival order.
			l.mu.Unlock()
			return
		}

		l.loading = false
		if err == nil {
			l.items = page.Items
			if page.Pagination != nil {
				l.totalPages = page.Pagination.TotalPages
			}
		}
		state := l.snapshotLocked()
		l.mu.Unlock()

		if err != nil {
			l.handler.Handle(err, l.onUnauthorized)
		}
		l.notify(state)
	}()
}

func (l *List[T]) snapshotLocked() ListState[T] {
	return ListState[T]{
		Items:       l.items,
		IsLoading:   l.loading,
		CurrentPage: l.page,
		TotalPages:  l.totalPages,
	}
}

func (l *List[T]) notify(state ListState[T]) {
	if l.onChange != nil {
		l.onChange(state)
	}
}
