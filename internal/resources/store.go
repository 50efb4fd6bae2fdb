// Package resources stores and serves the course PDFs the portal links
// to. A Store abstracts where the files live: a local directory in
// development, an S3 bucket in production.
//
// The package also carries the stale-link repairer: data files
// accumulate references to PDFs that were since renamed, and Repairer
// resolves such references against what the store actually holds.
package resources

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"
	"time"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("resources: not found")

// ErrInvalidKey is returned for keys that escape the store root.
var ErrInvalidKey = errors.New("resources: invalid key")

// Info describes one stored resource.
type Info struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Resource is an opened resource. The caller owns Body.
type Resource struct {
	Info
	ContentType string
	Body        io.ReadCloser
}

// Close closes the resource body.
func (r *Resource) Close() error {
	if r.Body != nil {
		return r.Body.Close()
	}
	return nil
}

// Store is a read-only view of the resource files.
type Store interface {
	// Open streams the resource at key.
	Open(ctx context.Context, key string) (*Resource, error)

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// List returns the keys under prefix, in unspecified order.
	List(ctx context.Context, prefix string) ([]Info, error)
}

// cleanKey normalizes a store key and rejects escapes. Keys use forward
// slashes regardless of platform.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

// contentTypeFor guesses a MIME type from the key's extension.
func contentTypeFor(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
