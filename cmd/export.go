package main

import (
	"context"
	"fmt"

	"github.com/mwhitfield/clavier/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export walks every page of the sheet catalog and writes it to a file.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}

	opts := tasks.ExportOpts{
		Format:    cmd.String("format"),
		Output:    cmd.String("output"),
		RateLimit: cmd.Float("rate"),
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlainln("[%s] %s", update.Phase, update.Message)
		}
	}()

	result, err := r.engine.Run(ctx, progress, token, opts)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	return r.writePlainln("Exported %d sheets (%d pages) to %s", result.TotalSheets, result.PagesWalked, result.Path)
}
