// Package source fetches the latest dataset workbook from local or remote storage.
package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrNotFound indicates the dataset does not exist at the configured location.
var ErrNotFound = errors.New("dataset not found")

// Blob is one fetched version of the dataset.
type Blob struct {
	// Data is the raw workbook content.
	Data []byte
	// Version identifies the content; equal versions mean equal content.
	Version string
	// ModTime is the last modification time reported by the store.
	ModTime time.Time
	// Origin names where the blob was read from.
	Origin string
}

// Source yields the latest dataset blob.
type Source interface {
	// Latest fetches the current blob.
	Latest(ctx context.Context) (Blob, error)
	// Name describes the source for logs.
	Name() string
}

// ContentVersion derives a version tag from content.
func ContentVersion(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}

// Retry runs fn up to attempts times, doubling the delay after each failure.
// It stops early when ctx is done or fn returns ErrNotFound.
func Retry[T any](ctx context.Context, attempts int, backoff time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if attempts < 1 {
		attempts = 1
	}
	var (
		zero T
		err  error
	)
	delay := backoff
	for i := 0; i < attempts; i++ {
		var v T
		v, err = fn(ctx)
		if err == nil {
			return v, nil
		}
		if errors.Is(err, ErrNotFound) || i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return zero, err
}
