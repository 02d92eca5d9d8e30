package models

import "testing"

func TestSheetFilters(t *testing.T) {
	t.Run("Empty Set Produces No Parameters", func(t *testing.T) {
		values := SheetFilters{}.Values()
		if len(values) != 0 {
			t.Errorf("expected empty values, got %v", values)
		}
	})

	t.Run("Sentinel Values Are Omitted", func(t *testing.T) {
		filters := SheetFilters{
			Search:    "",
			Key:       "",
			Level:     FilterAll,
			Genre:     FilterAll,
			ExamPiece: false,
		}

		values := filters.Values()
		if len(values) != 0 {
			t.Errorf("expected all sentinel fields omitted, got %v", values)
		}
	})

	t.Run("Active Filters Use Query Keys", func(t *testing.T) {
		filters := SheetFilters{
			Search:    "nocturne",
			Key:       "Am",
			Level:     "lvl-1",
			Genre:     "gen-2",
			ExamPiece: true,
		}

		values := filters.Values()
		expect := map[string]string{
			"searchQuery":    "nocturne",
			"keyQuery":       "Am",
			"levelQuery":     "lvl-1",
			"genreQuery":     "gen-2",
			"examPieceQuery": "true",
		}
		for key, want := range expect {
			if got := values.Get(key); got != want {
				t.Errorf("expected %s=%q, got %q", key, want, got)
			}
		}
		if len(values) != len(expect) {
			t.Errorf("unexpected extra parameters: %v", values)
		}
	})

	t.Run("ExamPiece False Never Serialized", func(t *testing.T) {
		values := SheetFilters{Search: "x", ExamPiece: false}.Values()
		if values.Has("examPieceQuery") {
			t.Error("false exam filter must be omitted, not sent as 'false'")
		}
	})

	t.Run("WithSearch Returns Modified Copy", func(t *testing.T) {
		original := SheetFilters{Key: "C", Level: "lvl-1"}
		next := original.WithSearch("bach")

		updated, ok := next.(SheetFilters)
		if !ok {
			t.Fatalf("expected SheetFilters, got %T", next)
		}
		if updated.Search != "bach" || updated.Key != "C" || updated.Level != "lvl-1" {
			t.Errorf("WithSearch lost fields: %+v", updated)
		}
		if original.Search != "" {
			t.Error("WithSearch mutated the original")
		}
	})
}

func TestSearchFilter(t *testing.T) {
	t.Run("Search Serialized When Set", func(t *testing.T) {
		values := SearchFilter{Search: "hanon"}.Values()
		if got := values.Get("searchQuery"); got != "hanon" {
			t.Errorf("expected searchQuery=hanon, got %q", got)
		}
	})

	t.Run("Empty Search Omitted", func(t *testing.T) {
		if values := (SearchFilter{}).Values(); len(values) != 0 {
			t.Errorf("expected empty values, got %v", values)
		}
	})

	t.Run("WithSearch Replaces Text", func(t *testing.T) {
		next := SearchFilter{Search: "old"}.WithSearch("new")
		updated, ok := next.(SearchFilter)
		if !ok || updated.Search != "new" {
			t.Errorf("unexpected result: %#v", next)
		}
	})
}
