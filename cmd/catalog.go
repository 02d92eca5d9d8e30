package main

import (
	"context"
	"fmt"

	"github.com/mwhitfield/clavier/internal/models"
	"github.com/mwhitfield/clavier/internal/shared"
	"github.com/urfave/cli/v3"
)

// SheetList fetches one page of the sheet catalog.
func (r *Runner) SheetList(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	filters := models.SheetFilters{
		Search:    cmd.String("search"),
		Key:       cmd.String("key"),
		Level:     cmd.String("level"),
		Genre:     cmd.String("genre"),
		ExamPiece: cmd.Bool("exam"),
	}

	result, err := r.sheets.List(ctx, token, cmd.Int("page"), cmd.Int("limit"), filters)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	for _, sheet := range result.Data {
		line := sheet.Title
		if sheet.Composer != "" {
			line = fmt.Sprintf("%s - %s", sheet.Composer, sheet.Title)
		}
		if sheet.Key != "" {
			line = fmt.Sprintf("%s [%s]", line, sheet.Key)
		}
		if sheet.ExamPiece {
			line += " (exam)"
		}
		r.writePlainln("%s  %s", sheet.ID, line)
	}
	return r.writePagination(result.Pagination)
}

// SheetCreate adds a sheet to the catalog.
func (r *Runner) SheetCreate(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	result, err := r.sheets.Create(ctx, sheetForm(cmd), token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlainln("Created sheet %s (%s)", result.Data.Title, result.Data.ID)
}

// SheetUpdate updates a sheet.
func (r *Runner) SheetUpdate(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	result, err := r.sheets.Update(ctx, cmd.String("id"), sheetForm(cmd), token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlainln("Updated sheet %s", result.Data.ID)
}

// SheetDelete removes a sheet from the catalog.
func (r *Runner) SheetDelete(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	if _, err := r.sheets.Delete(ctx, cmd.String("id"), token); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlainln("Deleted sheet %s", cmd.String("id"))
}

func sheetForm(cmd *cli.Command) models.SheetForm {
	return models.SheetForm{
		Title:     cmd.String("title"),
		Composer:  cmd.String("composer"),
		Key:       cmd.String("key"),
		SourceID:  optionalString(cmd.String("source")),
		LevelID:   optionalString(cmd.String("level")),
		GenreID:   optionalString(cmd.String("genre")),
		ExamPiece: cmd.Bool("exam"),
	}
}

// optionalString maps an empty flag value to an absent field.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// SourceList fetches one page of sources.
func (r *Runner) SourceList(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	filters := models.SearchFilter{Search: cmd.String("search")}
	result, err := r.sources.List(ctx, token, cmd.Int("page"), cmd.Int("limit"), filters)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	for _, source := range result.Data {
		line := source.Title
		if source.Author != "" {
			line = fmt.Sprintf("%s (%s)", line, source.Author)
		}
		r.writePlainln("%s  %s", source.ID, line)
	}
	return r.writePagination(result.Pagination)
}

// SourceCreate adds a source.
func (r *Runner) SourceCreate(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	form := models.SourceForm{
		Title:  cmd.String("title"),
		Author: cmd.String("author"),
		Format: cmd.String("format"),
	}
	result, err := r.sources.Create(ctx, form, token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlainln("Created source %s (%s)", result.Data.Title, result.Data.ID)
}

// SourceUpdate updates a source.
func (r *Runner) SourceUpdate(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	form := models.SourceForm{
		Title:  cmd.String("title"),
		Author: cmd.String("author"),
		Format: cmd.String("format"),
	}
	result, err := r.sources.Update(ctx, cmd.String("id"), form, token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlainln("Updated source %s", result.Data.ID)
}

// SourceDelete removes a source.
func (r *Runner) SourceDelete(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	if _, err := r.sources.Delete(ctx, cmd.String("id"), token); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlainln("Deleted source %s", cmd.String("id"))
}

// SourceLookup prints the id/title pairs the backend serves for dropdowns.
func (r *Runner) SourceLookup(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	result, err := r.sources.Lookup(ctx, token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result.Data, true)
	}
	for _, entry := range result.Data {
		r.writePlainln("%s  %s", entry.ID, entry.Title)
	}
	return nil
}

// LevelList fetches one page of levels.
func (r *Runner) LevelList(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	filters := models.SearchFilter{Search: cmd.String("search")}
	result, err := r.levels.List(ctx, token, cmd.Int("page"), cmd.Int("limit"), filters)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}
	for _, level := range result.Data {
		r.writePlainln("%s  %s", level.ID, level.Name)
	}
	return r.writePagination(result.Pagination)
}

// LevelCreate adds a level.
func (r *Runner) LevelCreate(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	result, err := r.levels.Create(ctx, models.LevelForm{Name: cmd.String("name")}, token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writePlainln("Created level %s (%s)", result.Data.Name, result.Data.ID)
}

// LevelUpdate renames a level.
func (r *Runner) LevelUpdate(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	result, err := r.levels.Update(ctx, cmd.String("id"), models.LevelForm{Name: cmd.String("name")}, token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writePlainln("Updated level %s", result.Data.ID)
}

// LevelDelete removes a level.
func (r *Runner) LevelDelete(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	if _, err := r.levels.Delete(ctx, cmd.String("id"), token); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writePlainln("Deleted level %s", cmd.String("id"))
}

// GenreList fetches one page of genres.
func (r *Runner) GenreList(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	filters := models.SearchFilter{Search: cmd.String("search")}
	result, err := r.genres.List(ctx, token, cmd.Int("page"), cmd.Int("limit"), filters)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}
	for _, genre := range result.Data {
		r.writePlainln("%s  %s", genre.ID, genre.Name)
	}
	return r.writePagination(result.Pagination)
}

// GenreCreate adds a genre.
func (r *Runner) GenreCreate(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	result, err := r.genres.Create(ctx, models.GenreForm{Name: cmd.String("name")}, token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writePlainln("Created genre %s (%s)", result.Data.Name, result.Data.ID)
}

// GenreUpdate renames a genre.
func (r *Runner) GenreUpdate(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	result, err := r.genres.Update(ctx, cmd.String("id"), models.GenreForm{Name: cmd.String("name")}, token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writePlainln("Updated genre %s", result.Data.ID)
}

// GenreDelete removes a genre.
func (r *Runner) GenreDelete(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	if _, err := r.genres.Delete(ctx, cmd.String("id"), token); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return r.writePlainln("Deleted genre %s", cmd.String("id"))
}

// Profile prints the signed-in user's details.
func (r *Runner) Profile(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	result, err := r.profile.Get(ctx, token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result.Data, true)
	}
	return r.writePlainln("%s (%s)", result.Data.Name, result.Data.Email)
}

// Stats prints the catalog aggregates.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	stats, err := r.stats.Get(ctx, token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	r.writePlainln("Sheets by level:")
	for _, row := range stats.ByLevel {
		r.writePlainln("  %-20s %d", shared.StringValue(row.LevelName, "(unassigned)"), row.Count)
	}
	r.writePlainln("Sheets by genre:")
	for _, row := range stats.ByGenre {
		r.writePlainln("  %-20s %d", shared.StringValue(row.GenreName, "(unassigned)"), row.Count)
	}
	return r.writePlainln("Incomplete sheets: %d", stats.Incomplete)
}

func (r *Runner) writePagination(p *models.Pagination) error {
	if p == nil {
		return nil
	}
	return r.writePlainln("page %d/%d (%d total)", p.CurrentPage, p.TotalPages, p.TotalItems)
}
