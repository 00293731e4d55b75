// Package storage holds uploaded files (notice attachments, association
// documents). Two backends exist: S3-compatible object storage for real
// deployments and a local filesystem store for development and tests.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectExists is returned when an upload targets a key that already holds
// an object. Uploads never overwrite; pick a new key instead.
var ErrObjectExists = errors.New("storage: object already exists")

// Uploader writes and serves uploaded files.
type Uploader interface {
	// Upload stores the object under key. Fails with ErrObjectExists if the
	// key is taken.
	Upload(ctx context.Context, key, contentType string, body io.Reader) error

	// URL returns the public or routable URL for a stored object.
	URL(key string) string

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
