package models

// AuthUser represents the authenticated catalog user.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Source represents a sheet music source (a book, a collection, a website).
type Source struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Format string `json:"format"`
}

// SourceForm carries the writable fields of a [Source].
type SourceForm struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Format string `json:"format"`
}

// SourceLookup is the lightweight source reference returned by the lookup
// endpoint for form dropdowns.
type SourceLookup struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Level represents a difficulty level.
type Level struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LevelForm carries the writable fields of a [Level].
type LevelForm struct {
	Name string `json:"name"`
}

// Genre represents a musical genre.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GenreForm carries the writable fields of a [Genre].
type GenreForm struct {
	Name string `json:"name"`
}

// Sheet represents a music sheet with its foreign keys and the joined
// display names the backend resolves for list rendering.
type Sheet struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Key         string  `json:"key"`
	Composer    string  `json:"composer"`
	SourceID    *string `json:"sourceId"`
	SourceTitle *string `json:"sourceTitle"`
	LevelID     *string `json:"levelId"`
	LevelName   *string `json:"levelName"`
	GenreID     *string `json:"genreId"`
	GenreName   *string `json:"genreName"`
	ExamPiece   bool    `json:"examPiece"`
}

// SheetForm carries the writable fields of a [Sheet].
type SheetForm struct {
	Title     string  `json:"title"`
	Key       string  `json:"key"`
	Composer  string  `json:"composer"`
	SourceID  *string `json:"sourceId"`
	LevelID   *string `json:"levelId"`
	GenreID   *string `json:"genreId"`
	ExamPiece bool    `json:"examPiece"`
}

// Pagination describes the server-side position of a list response.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	PageSize        int  `json:"pageSize"`
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// LevelCount is one slice of the stats aggregation, sheets grouped by level.
type LevelCount struct {
	LevelID   *string `json:"levelId"`
	LevelName *string `json:"levelName"`
	Count     int     `json:"count"`
}

// GenreCount is one slice of the stats aggregation, sheets grouped by genre.
type GenreCount struct {
	GenreID   *string `json:"genreId"`
	GenreName *string `json:"genreName"`
	Count     int     `json:"count"`
}

// Stats aggregates catalog counts for the dashboard.
type Stats struct {
	ByLevel    []LevelCount
	ByGenre    []GenreCount
	Incomplete int
}
