package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mwhitfield/clavier/internal/models"
	"github.com/mwhitfield/clavier/internal/query"
	"github.com/mwhitfield/clavier/internal/services"
	"github.com/mwhitfield/clavier/internal/session"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	DashboardView
	SheetListView
	SourceListView
	LevelListView
	GenreListView
)

// listViews is the tab cycle order of the catalog screens.
var listViews = []ViewState{DashboardView, SheetListView, SourceListView, LevelListView, GenreListView}

// ModelConfig carries the dependencies of the TUI model.
type ModelConfig struct {
	Context  context.Context
	Auth     *services.AuthService
	Sheets   *services.SheetService
	Sources  *services.SourceService
	Levels   *services.LevelService
	Genres   *services.GenreService
	Stats    *services.StatsService
	Logger   *log.Logger
	PageSize int
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	send   func(tea.Msg)
	keys   keyMap
	help   help.Model
	logger *log.Logger
	width  int
	height int

	session  *session.Store
	notifier *Notifier
	handler  *query.Handler

	auth     *services.AuthService
	sheetSvc *services.SheetService
	srcSvc   *services.SourceService
	lvlSvc   *services.LevelService
	genSvc   *services.GenreService
	statsSvc *services.StatsService

	sheets  *query.List[models.Sheet]
	sources *query.List[models.Source]
	levels  *query.List[models.Level]
	genres  *query.List[models.Genre]
	deletes *query.Mutation

	view         ViewState
	sessionState session.State

	emailInput    textinput.Model
	nameInput     textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	loggingIn     bool
	signupMode    bool

	searchInput textinput.Model
	searching   bool

	sheetList  list.Model
	sourceList list.Model
	levelList  list.Model
	genreList  list.Model

	stats        *models.Stats
	statsLoading bool
}

// NewModel creates a new TUI model with the provided dependencies. A session
// store must be installed with SetSession before the model is run.
func NewModel(cfg ModelConfig) *Model {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}

	m := &Model{
		ctx:      cfg.Context,
		keys:     newKeyMap(),
		help:     help.New(),
		logger:   cfg.Logger,
		auth:     cfg.Auth,
		sheetSvc: cfg.Sheets,
		srcSvc:   cfg.Sources,
		lvlSvc:   cfg.Levels,
		genSvc:   cfg.Genres,
		statsSvc: cfg.Stats,
		view:     LoginView,
	}

	m.notifier = NewNotifier(func() { m.Send(toastsChangedMsg()) })
	m.handler = &query.Handler{
		Toast:  func(msg string) { m.notifier.AddToast(msg, ToastError) },
		Logger: cfg.Logger,
	}
	onUnauthorized := func() {
		if m.session != nil {
			m.session.Logout()
		}
	}
	m.deletes = query.NewMutation(m.handler, onUnauthorized)

	m.sheets = query.NewList(query.ListConfig[models.Sheet]{
		Fetch:          listFetcher(cfg.Sheets.List),
		Handler:        m.handler,
		OnUnauthorized: onUnauthorized,
		OnChange:       func(query.ListState[models.Sheet]) { m.Send(listChangedMsg(SheetListView)) },
		Filters:        models.SheetFilters{Level: models.FilterAll, Genre: models.FilterAll},
		Limit:          cfg.PageSize,
		Context:        cfg.Context,
	})
	m.sources = query.NewList(query.ListConfig[models.Source]{
		Fetch:          listFetcher(cfg.Sources.List),
		Handler:        m.handler,
		OnUnauthorized: onUnauthorized,
		OnChange:       func(query.ListState[models.Source]) { m.Send(listChangedMsg(SourceListView)) },
		Filters:        models.SearchFilter{},
		Limit:          cfg.PageSize,
		Context:        cfg.Context,
	})
	m.levels = query.NewList(query.ListConfig[models.Level]{
		Fetch:          listFetcher(cfg.Levels.List),
		Handler:        m.handler,
		OnUnauthorized: onUnauthorized,
		OnChange:       func(query.ListState[models.Level]) { m.Send(listChangedMsg(LevelListView)) },
		Filters:        models.SearchFilter{},
		Limit:          cfg.PageSize,
		Context:        cfg.Context,
	})
	m.genres = query.NewList(query.ListConfig[models.Genre]{
		Fetch:          listFetcher(cfg.Genres.List),
		Handler:        m.handler,
		OnUnauthorized: onUnauthorized,
		OnChange:       func(query.ListState[models.Genre]) { m.Send(listChangedMsg(GenreListView)) },
		Filters:        models.SearchFilter{},
		Limit:          cfg.PageSize,
		Context:        cfg.Context,
	})

	m.emailInput = textinput.New()
	m.emailInput.Placeholder = "email"
	m.emailInput.Focus()
	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "name"
	m.passwordInput = textinput.New()
	m.passwordInput.Placeholder = "password"
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "search"

	m.sheetList = newEntityList("Sheets")
	m.sourceList = newEntityList("Sources")
	m.levelList = newEntityList("Levels")
	m.genreList = newEntityList("Genres")

	return m
}

// listFetcher adapts a service list method to a [query.Fetcher].
func listFetcher[T any](fn func(ctx context.Context, token string, page, limit int, filters models.Filters) (*services.Result[[]T], error)) query.Fetcher[T] {
	return func(ctx context.Context, req query.Request) (query.Page[T], error) {
		result, err := fn(ctx, req.Token, req.Page, req.Limit, req.Filters)
		if err != nil {
			return query.Page[T]{}, err
		}
		return query.Page[T]{Items: result.Data, Pagination: result.Pagination}, nil
	}
}

func newEntityList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

// SetSession installs the session store the model reads tokens from.
func (m *Model) SetSession(s *session.Store) {
	m.session = s
}

// Notifier exposes the toast/modal store so command wiring can reuse it.
func (m *Model) Notifier() *Notifier {
	return m.notifier
}

// Attach binds the model to a running program so background state changes
// (session transitions, controller updates, toast expiry) repaint the UI.
func (m *Model) Attach(p *tea.Program) {
	m.send = p.Send
}

// Send forwards a message into the program's event loop. Safe to call from
// any goroutine; messages before Attach are dropped.
func (m *Model) Send(msg tea.Msg) {
	if m.send != nil {
		m.send(msg)
	}
}

// SessionChanged is the session store's OnChange callback.
func (m *Model) SessionChanged(state session.State) {
	m.Send(sessionChangedMsg(state))
}

// Init starts the cursor blink; data loading is driven by session changes.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.sheetList, &m.sourceList, &m.levelList, &m.genreList} {
			l.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case Msg:
		return m.handleAppMsg(msg)

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.updateInputs(msg)
}

func (m *Model) handleAppMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSessionChanged:
		state := msg.data.(session.State)
		prev := m.sessionState
		m.sessionState = state

		if state.IsAuthenticated && !prev.IsAuthenticated {
			m.view = DashboardView
			token := state.Token
			m.sheets.SetToken(token)
			m.sources.SetToken(token)
			m.levels.SetToken(token)
			m.genres.SetToken(token)
			return m, m.fetchStats()
		}
		if !state.IsAuthenticated && !state.IsLoading {
			m.view = LoginView
			m.loggingIn = false
			m.signupMode = false
			m.emailInput.SetValue("")
			m.nameInput.SetValue("")
			m.passwordInput.SetValue("")
			m.loginFocus = 0
			m.focusLoginField()
		}
		return m, nil

	case MsgListChanged:
		m.syncList(msg.data.(ViewState))
		return m, nil

	case MsgToastsChanged:
		return m, nil

	case MsgStatsFetched:
		data := msg.data.(struct {
			stats *models.Stats
			err   error
		})
		m.statsLoading = false
		if data.err != nil {
			m.handler.Handle(data.err, func() {
				if m.session != nil {
					m.session.Logout()
				}
			})
			return m, nil
		}
		m.stats = data.stats
		return m, nil

	case MsgLoginResult:
		data := msg.data.(struct {
			result *services.Result[services.LoginData]
			err    error
		})
		m.loggingIn = false
		if data.err != nil {
			m.handler.Handle(data.err, nil)
			return m, nil
		}
		login := data.result.Data
		m.notifier.AddToast("Welcome back, "+login.Name, ToastSuccess)
		m.session.Login(models.AuthUser{ID: login.UserID, Email: login.Email, Name: login.Name}, login.Token)
		return m, nil

	case MsgSignupResult:
		data := msg.data.(struct {
			result *services.Result[struct{}]
			err    error
		})
		m.loggingIn = false
		if data.err != nil {
			m.handler.Handle(data.err, nil)
			return m, nil
		}
		message := "Account created. Sign in to continue."
		if data.result != nil && data.result.Message != "" {
			message = data.result.Message
		}
		m.notifier.AddToast(message, ToastSuccess)
		m.signupMode = false
		m.nameInput.SetValue("")
		m.passwordInput.SetValue("")
		m.loginFocus = 0
		m.focusLoginField()
		return m, nil

	case MsgMutationDone:
		data := msg.data.(struct {
			view    ViewState
			message string
			ok      bool
		})
		if data.ok {
			// The mutation path only toasts failures; success feedback is
			// the caller's job.
			m.notifier.AddToast(data.message, ToastSuccess)
			m.controllerFor(data.view).Refresh()
		}
		return m, nil
	}

	return m, nil
}

// controller is the view-independent surface of a list controller.
type controller interface {
	Refresh()
	Paginate(page int)
	SetSearch(text string)
	SetFilters(filters models.Filters)
	Filters() models.Filters
}

func (m *Model) controllerFor(view ViewState) controller {
	switch view {
	case SourceListView:
		return m.sources
	case LevelListView:
		return m.levels
	case GenreListView:
		return m.genres
	default:
		return m.sheets
	}
}

func (m *Model) listFor(view ViewState) *list.Model {
	switch view {
	case SourceListView:
		return &m.sourceList
	case LevelListView:
		return &m.levelList
	case GenreListView:
		return &m.genreList
	default:
		return &m.sheetList
	}
}

// syncList rebuilds a bubbles list from its controller snapshot.
func (m *Model) syncList(view ViewState) {
	switch view {
	case SheetListView:
		state := m.sheets.State()
		items := make([]list.Item, len(state.Items))
		for i, s := range state.Items {
			items[i] = sheetItem{sheet: s}
		}
		m.sheetList.SetItems(items)
	case SourceListView:
		state := m.sources.State()
		items := make([]list.Item, len(state.Items))
		for i, s := range state.Items {
			items[i] = sourceItem{source: s}
		}
		m.sourceList.SetItems(items)
	case LevelListView:
		state := m.levels.State()
		items := make([]list.Item, len(state.Items))
		for i, l := range state.Items {
			items[i] = levelItem{level: l}
		}
		m.levelList.SetItems(items)
	case GenreListView:
		state := m.genres.State()
		items := make([]list.Item, len(state.Items))
		for i, g := range state.Items {
			items[i] = genreItem{genre: g}
		}
		m.genreList.SetItems(items)
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An open modal captures all keys.
	if modal := m.notifier.Modal(); modal != nil {
		next, cmd, close := modal.Update(msg, m.keys)
		if close {
			m.notifier.CloseModal()
		} else {
			m.notifier.ShowModal(next)
		}
		return m, cmd
	}

	if m.view == LoginView {
		return m.handleLoginKeys(msg)
	}
	if m.searching {
		return m.handleSearchKeys(msg)
	}
	return m.handleCatalogKeys(msg)
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+s":
		m.signupMode = !m.signupMode
		m.loginFocus = 0
		m.focusLoginField()
		return m, nil
	case "tab", "shift+tab":
		fields := 2
		if m.signupMode {
			fields = 3
		}
		m.loginFocus = (m.loginFocus + 1) % fields
		m.focusLoginField()
		return m, nil
	case "enter":
		if m.loggingIn {
			return m, nil
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if m.signupMode {
			name := strings.TrimSpace(m.nameInput.Value())
			if email == "" || name == "" || password == "" {
				m.notifier.AddToast("Email, name and password are required", ToastError)
				return m, nil
			}
			m.loggingIn = true
			return m, m.submitSignup(email, name, password)
		}
		if email == "" || password == "" {
			m.notifier.AddToast("Email and password are required", ToastError)
			return m, nil
		}
		m.loggingIn = true
		return m, m.submitLogin(email, password)
	}

	var cmd tea.Cmd
	switch m.loginFocus {
	case 0:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case 1:
		if m.signupMode {
			m.nameInput, cmd = m.nameInput.Update(msg)
		} else {
			m.passwordInput, cmd = m.passwordInput.Update(msg)
		}
	default:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

// focusLoginField moves focus to the field indexed by loginFocus. In signup
// mode the order is email, name, password; otherwise email, password.
func (m *Model) focusLoginField() {
	m.emailInput.Blur()
	m.nameInput.Blur()
	m.passwordInput.Blur()

	switch m.loginFocus {
	case 0:
		m.emailInput.Focus()
	case 1:
		if m.signupMode {
			m.nameInput.Focus()
		} else {
			m.passwordInput.Focus()
		}
	default:
		m.passwordInput.Focus()
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	// Every keystroke feeds the debouncer; only the settled value reaches
	// the backend.
	m.controllerFor(m.view).SetSearch(m.searchInput.Value())
	return m, cmd
}

func (m *Model) handleCatalogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.view = nextView(m.view)
		m.searchInput.SetValue("")
		if m.view == DashboardView {
			m.statsLoading = true
			return m, m.fetchStats()
		}
		return m, nil

	case "/":
		if m.view != DashboardView {
			m.searching = true
			m.searchInput.Focus()
			return m, textinput.Blink
		}

	case "r":
		if m.view == DashboardView {
			m.statsLoading = true
			return m, m.fetchStats()
		}
		m.controllerFor(m.view).Refresh()
		return m, nil

	case "left", "h":
		if m.view != DashboardView {
			m.paginate(-1)
		}
		return m, nil

	case "right", "l":
		if m.view != DashboardView {
			m.paginate(1)
		}
		return m, nil

	case "x":
		if m.view == SheetListView {
			filters, ok := m.sheets.Filters().(models.SheetFilters)
			if ok {
				filters.ExamPiece = !filters.ExamPiece
				m.sheets.SetFilters(filters)
			}
		}
		return m, nil

	case "d":
		if m.view != DashboardView {
			return m, m.confirmDelete()
		}
	}

	var cmd tea.Cmd
	if m.view != DashboardView {
		target := m.listFor(m.view)
		*target, cmd = target.Update(msg)
	}
	return m, cmd
}

func (m *Model) paginate(delta int) {
	switch m.view {
	case SheetListView:
		s := m.sheets.State()
		m.sheets.Paginate(clampPage(s.CurrentPage+delta, s.TotalPages))
	case SourceListView:
		s := m.sources.State()
		m.sources.Paginate(clampPage(s.CurrentPage+delta, s.TotalPages))
	case LevelListView:
		s := m.levels.State()
		m.levels.Paginate(clampPage(s.CurrentPage+delta, s.TotalPages))
	case GenreListView:
		s := m.genres.State()
		m.genres.Paginate(clampPage(s.CurrentPage+delta, s.TotalPages))
	}
}

func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}

func nextView(view ViewState) ViewState {
	for i, v := range listViews {
		if v == view {
			return listViews[(i+1)%len(listViews)]
		}
	}
	return DashboardView
}

// confirmDelete opens the confirmation modal for the selected record.
func (m *Model) confirmDelete() tea.Cmd {
	view := m.view
	target := m.listFor(view)
	selected := target.SelectedItem()
	if selected == nil {
		return nil
	}

	id, title := selectedRecord(selected)
	if id == "" {
		return nil
	}

	m.notifier.ShowModal(newConfirmModal(
		"Delete "+title,
		fmt.Sprintf("Permanently delete %q from the catalog?", title),
		func() tea.Cmd { return m.deleteRecord(view, id) },
	))
	return nil
}

func selectedRecord(item list.Item) (id, title string) {
	switch it := item.(type) {
	case sheetItem:
		return it.sheet.ID, it.sheet.Title
	case sourceItem:
		return it.source.ID, it.source.Title
	case levelItem:
		return it.level.ID, it.level.Name
	case genreItem:
		return it.genre.ID, it.genre.Name
	}
	return "", ""
}

func (m *Model) deleteRecord(view ViewState, id string) tea.Cmd {
	return func() tea.Msg {
		token := m.session.Token()
		result, ok := query.RunMutation(m.ctx, m.deletes, func(ctx context.Context) (*services.Result[struct{}], error) {
			switch view {
			case SourceListView:
				return m.srcSvc.Delete(ctx, id, token)
			case LevelListView:
				return m.lvlSvc.Delete(ctx, id, token)
			case GenreListView:
				return m.genSvc.Delete(ctx, id, token)
			default:
				return m.sheetSvc.Delete(ctx, id, token)
			}
		})

		message := "Deleted"
		if ok && result != nil && result.Message != "" {
			message = result.Message
		}
		return mutationDoneMsg(view, message, ok)
	}
}

func (m *Model) submitLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.auth.Login(m.ctx, email, password)
		return loginResultMsg(result, err)
	}
}

func (m *Model) submitSignup(email, name, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.auth.Signup(m.ctx, email, name, password)
		return signupResultMsg(result, err)
	}
}

func (m *Model) fetchStats() tea.Cmd {
	m.statsLoading = true
	return func() tea.Msg {
		stats, err := m.statsSvc.Get(m.ctx, m.session.Token())
		return statsFetchedMsg(stats, err)
	}
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.emailInput, cmd = m.emailInput.Update(msg)
	cmds = append(cmds, cmd)
	m.nameInput, cmd = m.nameInput.Update(msg)
	cmds = append(cmds, cmd)
	m.passwordInput, cmd = m.passwordInput.Update(msg)
	cmds = append(cmds, cmd)
	m.searchInput, cmd = m.searchInput.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
