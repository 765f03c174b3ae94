// Package storage keeps uploaded resume files outside the database. Rows only
// hold the object key returned by Save.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/job-board/internal/config"
)

var ErrObjectNotFound = errors.New("stored object not found")

type ResumeStore interface {
	// Save stores the content under a fresh key derived from the original file name.
	Save(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// New picks the driver named in the storage configuration.
func New(ctx context.Context, cfg config.StorageConfig, log logrus.FieldLogger) (ResumeStore, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.LocalDir)
	case "minio":
		return NewMinIOStore(ctx, cfg.MinIO, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// NewKey returns a collision-free object key that keeps the file extension.
func NewKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return uuid.NewString() + ext
}

// validKey rejects keys that could escape the storage root.
func validKey(key string) bool {
	return key != "" && !strings.Contains(key, "/") && !strings.Contains(key, `\`) && !strings.HasPrefix(key, ".")
}
