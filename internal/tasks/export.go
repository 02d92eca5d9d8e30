package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mwhitfield/clavier/internal/formatter"
	"github.com/mwhitfield/clavier/internal/models"
	"github.com/mwhitfield/clavier/internal/services"
	"golang.org/x/time/rate"
)

// SheetLister is the catalog surface the export engine walks.
// *services.SheetService satisfies it.
type SheetLister interface {
	List(ctx context.Context, token string, page, limit int, filters models.Filters) (*services.Result[[]models.Sheet], error)
}

// ExportOpts contains configuration for a catalog export.
type ExportOpts struct {
	Format    string         // Export format: json, csv, markdown, txt
	Output    string         // Output path (default: catalog_export_{epoch}.{ext})
	PageSize  int            // Sheets fetched per request (default: 50)
	RateLimit float64        // Requests per second (default: 5)
	Filters   models.Filters // Optional filter set applied to every page
}

// ExportResult summarizes a finished export.
type ExportResult struct {
	Path        string
	TotalSheets int
	PagesWalked int
}

// ExportEngine materializes the full sheet catalog through the paginated
// list endpoint.
type ExportEngine struct {
	sheets SheetLister
}

// NewExportEngine creates an ExportEngine over the given catalog surface.
func NewExportEngine(sheets SheetLister) *ExportEngine {
	return &ExportEngine{sheets: sheets}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run walks every catalog page under a rate limiter, then writes the
// collected sheets in the requested format. Pagination metadata from the
// first page fixes the page count; pages appearing mid-walk are ignored.
func (e *ExportEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, token string, opts ExportOpts) (*ExportResult, error) {
	if e.sheets == nil {
		return nil, fmt.Errorf("sheet service not initialized")
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 50
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Output == "" {
		opts.Output = fmt.Sprintf("catalog_export_%d%s", time.Now().Unix(), extensionFor(opts.Format))
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	export := &formatter.CatalogExport{}
	page := 1
	totalPages := 1

	for page <= totalPages {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		e.sendProgress(progress, fetchPageUpdate(page, totalPages))

		result, err := e.sheets.List(ctx, token, page, opts.PageSize, opts.Filters)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch catalog page %d: %w", page, err)
		}

		export.Sheets = append(export.Sheets, result.Data...)
		if page == 1 && result.Pagination != nil {
			totalPages = result.Pagination.TotalPages
			if totalPages < 1 {
				totalPages = 1
			}
		}
		page++
	}

	export.TotalSheets = len(export.Sheets)

	e.sendProgress(progress, writeOutputUpdate(opts.Output))
	path, err := formatter.WriteExport(export, opts.Format, opts.Output)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Path:        path,
		TotalSheets: export.TotalSheets,
		PagesWalked: page - 1,
	}, nil
}

func extensionFor(format string) string {
	switch format {
	case "csv":
		return ".csv"
	case "markdown", "md":
		return ".md"
	case "txt", "text":
		return ".txt"
	default:
		return ".json"
	}
}
