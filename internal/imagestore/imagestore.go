package imagestore

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Folder is the key prefix for article images.
const Folder = "articles"

// Store keeps uploaded article images and hands back their public URL.
type Store interface {
	Put(ctx context.Context, fileName, contentType string, body io.Reader) (url string, err error)
	// Delete removes the object behind a URL previously returned by Put.
	// Unknown URLs are not an error.
	Delete(ctx context.Context, url string) error
}

// NewKey builds a unique object key that keeps the file extension.
func NewKey(fileName string) string {
	return path.Join(Folder, uuid.NewString()+strings.ToLower(path.Ext(fileName)))
}
