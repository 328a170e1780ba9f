// Package catalogstore gives the HTTP API a place to park an ingested
// catalog (§6 CatalogRef) so repeated generate() calls against the same
// course list don't need to re-upload it every time. Same TTL-map shape as
// internal/jobs.Store, keyed by an opaque ref instead of a job id.
package catalogstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/classwise/timetabler/internal/engine"
	appErrors "github.com/classwise/timetabler/pkg/errors"
)

type entry struct {
	courses   []engine.Course
	version   string
	createdAt time.Time
}

// Store is an in-memory, TTL-expiring table of uploaded catalogs.
type Store struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]entry
}

// NewStore builds a Store with the given TTL; non-positive TTL defaults to
// 24 hours, long enough to outlive a single planning session.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{ttl: ttl, items: make(map[string]entry)}
}

// Put stores a catalog and returns the ref a caller passes back as
// GenerateScheduleRequest.CatalogRef. The version is a content hash of the
// catalog, used as the compile-cache key's version component so two
// uploads with identical courses share cached compilations.
func (s *Store) Put(courses []engine.Course) string {
	ref := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[ref] = entry{courses: courses, version: ContentVersion(courses), createdAt: time.Now().UTC()}
	return ref
}

// CatalogByRef implements the service layer's catalogSource interface.
func (s *Store) CatalogByRef(_ context.Context, ref string) ([]engine.Course, string, error) {
	s.mu.RLock()
	e, ok := s.items[ref]
	s.mu.RUnlock()
	if !ok {
		return nil, "", appErrors.ErrNotFound
	}
	if time.Since(e.createdAt) > s.ttl {
		s.mu.Lock()
		delete(s.items, ref)
		s.mu.Unlock()
		return nil, "", appErrors.ErrNotFound
	}
	return e.courses, e.version, nil
}

// ContentVersion derives a stable hash of every field of a catalog's
// courses, used as the compile-cache key's version component so two calls
// over the same courses (whether submitted inline or resolved via
// CatalogRef) share a cached compilation.
func ContentVersion(courses []engine.Course) string {
	h := sha256.New()
	for _, c := range courses {
		fmt.Fprintf(h, "%s\x00%s\x00%d\x00%s\x00%s\x00%s\x00", c.ID, c.Name, c.Credits, c.Professor, c.Category, c.TargetGrade)
		for _, s := range c.TimeSlots {
			fmt.Fprintf(h, "%d %d %d %s\x00", s.Day, s.Start, s.End, s.Room)
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
