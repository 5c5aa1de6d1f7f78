// Package images implements the image-processing pipelines: background
// removal, the mirror-flip transform, object-store persistence, and deletion
// of stored results.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/cutout/service/internal/removebg"
	"github.com/cutout/service/internal/storage"
	"github.com/cutout/service/internal/transform"
)

// ErrStorageNotConfigured is returned when a pipeline needs the object store
// but no storage credentials were configured.
var ErrStorageNotConfigured = errors.New("object storage not configured")

// Recorder persists processed-image history. Implementations must tolerate
// concurrent use; failures are logged and never fail the pipeline.
type Recorder interface {
	Record(ctx context.Context, originalName, resultURL string) error
}

// Result is the outcome of one processing request: a public URL in the
// persisting variant, raw processed bytes in the direct variant.
type Result struct {
	URL  string
	Data []byte
}

// Service orchestrates the pipelines. Each call is independent and
// stateless; per-request UUID keys make store writes collision-free without
// coordination.
type Service struct {
	remover removebg.Remover
	store   storage.Storage // nil when storage credentials are absent
	history Recorder        // nil when history is disabled
}

// NewService creates an images Service. store and history may be nil; the
// pipelines that need them report the missing configuration per request.
func NewService(remover removebg.Remover, store storage.Storage, history Recorder) *Service {
	return &Service{remover: remover, store: store, history: history}
}

// Process runs one upload through the pipeline: background removal, then —
// in the persisting variant — the horizontal flip and a store put under a
// fresh "{uuid}-flipped.png" key. The direct variant returns the processed
// bytes untouched; the client applies the flip itself at download time.
//
// Persistence is ordered strictly last so a failure at any step leaves no
// orphaned object behind. A single failure aborts the pipeline; there are
// no retries.
func (s *Service) Process(ctx context.Context, data []byte, originalName string, persist bool) (*Result, error) {
	if persist && s.store == nil {
		return nil, ErrStorageNotConfigured
	}

	processed, err := s.remover.Remove(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("remove background: %w", err)
	}

	if !persist {
		return &Result{Data: processed}, nil
	}

	flipped, err := transform.FlipHorizontal(processed)
	if err != nil {
		return nil, fmt.Errorf("flip image: %w", err)
	}

	key := uuid.NewString() + "-flipped.png"
	if err := s.store.Upload(ctx, key, bytes.NewReader(flipped), int64(len(flipped)), "image/png"); err != nil {
		return nil, fmt.Errorf("store result: %w", err)
	}
	resultURL := s.store.PublicURL(key)

	if s.history != nil {
		if err := s.history.Record(ctx, originalName, resultURL); err != nil {
			log.Printf("history record failed for %q: %v", resultURL, err)
		}
	}

	return &Result{URL: resultURL}, nil
}

// StoreRaw puts raw bytes into the store under a fresh "{uuid}.png" key and
// returns the public URL. This backs the generic upload endpoint.
func (s *Service) StoreRaw(ctx context.Context, data []byte) (string, error) {
	if s.store == nil {
		return "", ErrStorageNotConfigured
	}

	key := uuid.NewString() + ".png"
	if err := s.store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), "image/png"); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return s.store.PublicURL(key), nil
}

// Delete removes a previously stored result identified by its public URL.
func (s *Service) Delete(ctx context.Context, url string) error {
	if s.store == nil {
		return ErrStorageNotConfigured
	}

	key, err := s.store.KeyFromURL(url)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
