// Package crud serves simple collections whose behavior is fully described by
// a Resource: how to filter a listing, how to prepare a new document and
// which error a missing document maps to.
package crud

import (
	"net/url"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/store"
)

type Resource[T any] struct {
	// Name is used in log lines.
	Name string

	// Filter turns query parameters into a listing query. Nil lists everything.
	Filter func(params url.Values) *store.Query

	// Prepare validates a new document and fills its defaults.
	Prepare func(doc *T) error

	// StatusField is the stored status column. Empty disables PATCH /{id}/status.
	StatusField string

	NotFound *internal.AppError
}

func (r Resource[T]) query(params url.Values) *store.Query {
	if r.Filter == nil {
		return store.NewQuery()
	}
	return r.Filter(params)
}

func (r Resource[T]) notFound() error {
	if r.NotFound == nil {
		return internal.NewNotFoundError("Document not found", internal.ErrCodeDocumentNotFound)
	}
	return r.NotFound
}
