package storage

import (
	"context"
	"io"
	"time"
)

type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedURL string, err error)
}

type Deleter interface {
	Delete(ctx context.Context, objectName string) error
}

type Signer interface {
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}

// ObjectStore is the full blob-store surface the services need.
type ObjectStore interface {
	Uploader
	Deleter
}
