// Package objectstore defines the contract with the external file storage
// service. The journal core never moves bytes; it only brokers presigned
// URLs and tracks file keys.
package objectstore

import (
	"context"

	"github.com/louisbranch/slipjar/internal/journal/domain"
)

// Upload describes a presigned upload slot issued by the store.
type Upload struct {
	// URL is the presigned PUT target for the client.
	URL string
	// Key is the storage key to record alongside the media row.
	Key string
}

// ObjectStore brokers presigned access to externally stored files.
type ObjectStore interface {
	// RequestUploadURL issues a presigned upload slot for a new file of the
	// given kind and content type.
	RequestUploadURL(ctx context.Context, kind domain.MediaKind, contentType string) (Upload, error)
	// RequestDownloadURL issues a presigned read URL for an existing key.
	RequestDownloadURL(ctx context.Context, key string) (string, error)
	// Delete removes the file behind the key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a file is stored behind the key.
	Exists(ctx context.Context, key string) (bool, error)
}
