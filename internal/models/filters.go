package models

import "net/url"

// FilterAll is the sentinel for "no selection" on a dropdown filter.
// Fields holding it are omitted from outgoing query parameters, as are
// empty strings and false booleans.
const FilterAll = "all"

// Filters is implemented by every per-resource filter set. Values returns
// the outgoing query parameters with sentinel fields omitted; WithSearch
// returns a copy with the search text replaced, for the debounced search
// path.
type Filters interface {
	Values() url.Values
	WithSearch(text string) Filters
}

// SearchFilter is the filter set for sources, levels and genres, which only
// support free-text search.
type SearchFilter struct {
	Search string
}

func (f SearchFilter) Values() url.Values {
	values := url.Values{}
	setQuery(values, "searchQuery", f.Search)
	return values
}

func (f SearchFilter) WithSearch(text string) Filters {
	f.Search = text
	return f
}

// SheetFilters is the filter set for the sheet list.
type SheetFilters struct {
	Search    string
	Key       string
	Level     string
	Genre     string
	ExamPiece bool
}

func (f SheetFilters) Values() url.Values {
	values := url.Values{}
	setQuery(values, "searchQuery", f.Search)
	setQuery(values, "keyQuery", f.Key)
	setQuery(values, "levelQuery", f.Level)
	setQuery(values, "genreQuery", f.Genre)
	if f.ExamPiece {
		values.Set("examPieceQuery", "true")
	}
	return values
}

func (f SheetFilters) WithSearch(text string) Filters {
	f.Search = text
	return f
}

func setQuery(values url.Values, key, value string) {
	if value == "" || value == FilterAll {
		return
	}
	values.Set(key, value)
}
