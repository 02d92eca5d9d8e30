package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mwhitfield/clavier/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the backend
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path argument is required", shared.ErrMissingArgument)
	}

	token, err := r.requireToken()
	if err != nil {
		return err
	}

	r.logger.Info("GET request", "path", path)

	body, status, err := r.client.Raw(ctx, http.MethodGet, path, nil, token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, status, string(body))
	}

	return r.writeRawJSON(body)
}

// APIPost makes a direct POST request to the backend
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	data := cmd.String("data")

	if path == "" {
		return fmt.Errorf("%w: path argument is required", shared.ErrMissingArgument)
	}
	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}

	var jsonTest any
	if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
		return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
	}

	token, err := r.requireToken()
	if err != nil {
		return err
	}

	r.logger.Info("POST request", "path", path)

	body, status, err := r.client.Raw(ctx, http.MethodPost, path, []byte(data), token)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, status, string(body))
	}

	return r.writeRawJSON(body)
}

// writeRawJSON pretty-prints a raw JSON body, falling back to the bytes as
// received when they do not parse.
func (r *Runner) writeRawJSON(body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		r.output.Write(body)
		r.output.Write([]byte("\n"))
		return nil
	}
	buf.WriteByte('\n')
	_, err := r.output.Write(buf.Bytes())
	return err
}
