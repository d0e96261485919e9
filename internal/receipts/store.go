// Package receipts stores receipt files attached to transactions.
package receipts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"financas/internal/config"
	"financas/internal/uuid"
)

// ErrNotFound is returned by Open when no object exists under the key.
var ErrNotFound = errors.New("receipt not found")

// ErrInvalidKey is returned for keys that are empty or escape the store root.
var ErrInvalidKey = errors.New("invalid receipt key")

// Store defines the operations a receipt backend must support.
type Store interface {
	// Save writes the content under key and returns the stored key.
	// A negative size means the length is unknown.
	Save(ctx context.Context, key string, data io.Reader, contentType string, size int64) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// NewStore builds the backend selected by cfg.ReceiptBackend.
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.ReceiptBackend {
	case config.ReceiptBackendS3:
		return NewS3Store(ctx, cfg.S3)
	case config.ReceiptBackendLocal, "":
		return NewLocalStore(cfg.UploadFolder)
	default:
		return nil, fmt.Errorf("unknown receipt backend %q", cfg.ReceiptBackend)
	}
}

// ObjectKey builds a unique key for a transaction's receipt, keeping the
// original file extension when it is safe.
func ObjectKey(transactionID, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if len(ext) > 10 || strings.ContainsAny(ext, " /") {
		ext = ""
	}
	return path.Join("transactions", transactionID, uuid.New()+ext)
}

// cleanKey normalises key to a relative slash path and rejects traversal.
func cleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
