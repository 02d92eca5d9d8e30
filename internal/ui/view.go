package ui

import (
	"fmt"
	"strings"

	"github.com/mwhitfield/clavier/internal/models"
)

// View renders the current view state.
func (m *Model) View() string {
	var b strings.Builder

	switch m.view {
	case LoginView:
		b.WriteString(m.loginView())
	case DashboardView:
		b.WriteString(m.dashboardView())
	default:
		b.WriteString(m.catalogView())
	}

	if toasts := m.notifier.Toasts(); len(toasts) > 0 {
		b.WriteString("\n")
		for _, t := range toasts {
			b.WriteString(toastStyle(t.Kind).Render("• "+t.Message) + "\n")
		}
	}

	if modal := m.notifier.Modal(); modal != nil {
		b.WriteString("\n" + modal.View(m.width))
	}

	return b.String()
}

func (m *Model) loginView() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Clavier") + "\n\n")

	if m.sessionState.IsLoading {
		b.WriteString("Checking stored session...\n")
		return b.String()
	}

	if m.signupMode {
		b.WriteString("Create an account\n\n")
		b.WriteString(m.emailInput.View() + "\n")
		b.WriteString(m.nameInput.View() + "\n")
		b.WriteString(m.passwordInput.View() + "\n\n")
		if m.loggingIn {
			b.WriteString(styles.warn.Render("Creating account...") + "\n")
		}
		b.WriteString(styles.help.Render("tab switch field • enter submit • ctrl+s sign in instead • ctrl+c quit"))
		return b.String()
	}

	b.WriteString("Sign in to your catalog\n\n")
	b.WriteString(m.emailInput.View() + "\n")
	b.WriteString(m.passwordInput.View() + "\n\n")
	if m.loggingIn {
		b.WriteString(styles.warn.Render("Signing in...") + "\n")
	}
	b.WriteString(styles.help.Render("tab switch field • enter submit • ctrl+s create account • ctrl+c quit"))
	return b.String()
}

func (m *Model) dashboardView() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Dashboard") + "\n")

	if m.statsLoading {
		b.WriteString("Loading stats...\n")
	} else if m.stats != nil {
		b.WriteString(renderStats(m.stats))
	} else {
		b.WriteString(styles.help.Render("No stats yet. Press r to load.") + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func renderStats(stats *models.Stats) string {
	var b strings.Builder

	b.WriteString(styles.ok.Render("Sheets by level") + "\n")
	if len(stats.ByLevel) == 0 {
		b.WriteString(styles.help.Render("  none") + "\n")
	}
	for _, row := range stats.ByLevel {
		b.WriteString(fmt.Sprintf("  %-20s %d\n", countLabel(row.LevelName), row.Count))
	}

	b.WriteString("\n" + styles.ok.Render("Sheets by genre") + "\n")
	if len(stats.ByGenre) == 0 {
		b.WriteString(styles.help.Render("  none") + "\n")
	}
	for _, row := range stats.ByGenre {
		b.WriteString(fmt.Sprintf("  %-20s %d\n", countLabel(row.GenreName), row.Count))
	}

	b.WriteString("\n" + styles.warn.Render(fmt.Sprintf("Incomplete sheets: %d", stats.Incomplete)) + "\n")
	return b.String()
}

func countLabel(name *string) string {
	if name == nil || *name == "" {
		return "(unassigned)"
	}
	return *name
}

func (m *Model) catalogView() string {
	var b strings.Builder
	b.WriteString(m.listFor(m.view).View() + "\n")

	if m.searching {
		b.WriteString(m.searchInput.View() + "\n")
	}

	b.WriteString(m.statusLine() + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) statusLine() string {
	var current, total int
	var loading bool

	switch m.view {
	case SheetListView:
		s := m.sheets.State()
		current, total, loading = s.CurrentPage, s.TotalPages, s.IsLoading
	case SourceListView:
		s := m.sources.State()
		current, total, loading = s.CurrentPage, s.TotalPages, s.IsLoading
	case LevelListView:
		s := m.levels.State()
		current, total, loading = s.CurrentPage, s.TotalPages, s.IsLoading
	case GenreListView:
		s := m.genres.State()
		current, total, loading = s.CurrentPage, s.TotalPages, s.IsLoading
	}

	line := fmt.Sprintf("page %d", current)
	if total > 0 {
		line = fmt.Sprintf("page %d/%d", current, total)
	}
	if loading {
		line += " • loading"
	}
	if m.view == SheetListView {
		if filters, ok := m.sheets.Filters().(models.SheetFilters); ok && filters.ExamPiece {
			line += " • exam pieces only"
		}
	}
	return styles.help.Render(line)
}
