package ports

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// InvoiceStorage abstracts the blob store holding invoice files.
type InvoiceStorage interface {
	// Upload stores the file under a key namespaced by project id and
	// timestamp and returns the public URL.
	Upload(ctx context.Context, projectID uuid.UUID, filename, contentType string, size int64, content io.Reader) (string, error)
	// Remove deletes the object behind a previously returned URL.
	Remove(ctx context.Context, url string) error
}
