// README: Cloud service loads the catalog once at startup and serves the live list.
package cloud

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrDataFetch means the entity source failed; nothing else can work until a
// catalog is loaded.
var ErrDataFetch = errors.New("unable to load data")

// SnapshotSink receives the catalog contents after a successful load.
type SnapshotSink interface {
	PutSnapshot(ctx context.Context, clouds []Cloud) error
}

// SnapshotSinkFunc adapts a function to SnapshotSink.
type SnapshotSinkFunc func(ctx context.Context, clouds []Cloud) error

func (f SnapshotSinkFunc) PutSnapshot(ctx context.Context, clouds []Cloud) error {
	return f(ctx, clouds)
}

// Invalidator is a Source holding a copy that must be dropped when the
// catalog built from it fails to load.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	source Source
	sinks  []SnapshotSink

	mu      sync.RWMutex
	catalog *Catalog
	loadErr error
}

func NewService(source Source, sinks ...SnapshotSink) *Service {
	return &Service{source: source, sinks: sinks}
}

// Load fetches the entity set once. A later call after success is a no-op,
// so the catalog stays immutable for the life of the process. After a
// failure Load may be called again.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalog != nil {
		return nil
	}

	clouds, err := s.source.FetchClouds(ctx)
	if err != nil {
		s.loadErr = fmt.Errorf("%w: %v", ErrDataFetch, err)
		if inv, ok := s.source.(Invalidator); ok {
			if ierr := inv.Invalidate(ctx); ierr != nil {
				log.Printf("cloud source: invalidate failed: %v", ierr)
			}
		}
		return s.loadErr
	}
	s.catalog = NewCatalog(clouds)
	s.loadErr = nil
	log.Printf("cloud catalog loaded: %d clouds, %d providers", s.catalog.Len(), len(s.catalog.Providers()))

	for _, sink := range s.sinks {
		if err := sink.PutSnapshot(ctx, clouds); err != nil {
			log.Printf("cloud snapshot failed: %v", err)
		}
	}
	return nil
}

// Catalog returns the loaded catalog, or an error wrapping ErrDataFetch.
func (s *Service) Catalog() (*Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog != nil {
		return s.catalog, nil
	}
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return nil, fmt.Errorf("%w: catalog not loaded", ErrDataFetch)
}

// FetchLive returns the current upstream list, bypassing the session catalog.
func (s *Service) FetchLive(ctx context.Context) ([]Cloud, error) {
	return s.source.FetchClouds(ctx)
}
