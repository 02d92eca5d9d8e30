// Package services maps catalog CRUD verbs onto HTTP client calls.
//
// Each service is a thin, stateless mapping from a (resource, verb) pair to
// a backend endpoint. Services never catch errors; failures from
// [api.Client] propagate unchanged to the calling controller, which owns the
// error policy.
package services

import (
	"net/url"
	"strconv"

	"github.com/mwhitfield/clavier/internal/models"
)

// Result is the parsed JSON envelope of every catalog response.
type Result[T any] struct {
	Success    bool               `json:"success"`
	Status     string             `json:"status"`
	Message    string             `json:"message"`
	Data       T                  `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
}

// listEndpoint builds a collection path with pagination and filter query
// parameters. Zero page or limit values are omitted, as are filter fields
// holding their sentinel values.
func listEndpoint(resource string, page, limit int, filters models.Filters) string {
	values := url.Values{}
	if filters != nil {
		values = filters.Values()
	}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	if len(values) == 0 {
		return resource
	}
	return resource + "?" + values.Encode()
}

// itemEndpoint builds an item path for update and delete calls.
func itemEndpoint(resource, id string) string {
	return resource + "/" + url.PathEscape(id)
}
