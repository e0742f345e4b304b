package storage

import (
	"context"
	"io"
)

// Storage persists generated artifacts (document snapshots, uploads) and
// hands back a URL clients can fetch them from.
type Storage interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
