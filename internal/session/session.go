// Package session hosts the completion resolver for an editor. It owns the
// current catalog snapshot and a generation counter the host compares
// before applying results, so completions computed against a replaced
// catalog are dropped instead of applied.
package session

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/completion"
	"github.com/NikitaCOEUR/mcfunction/internal/logger"
	"github.com/NikitaCOEUR/mcfunction/internal/schemastore"
)

// TriggerCharacters are the characters after which the host should request
// completions
const TriggerCharacters = " [{=,!@\n"

// snapshot is everything one resolution reads. It is never modified after
// being published.
type snapshot struct {
	generation uint64
	catalog    *catalog.Catalog
	resolver   *completion.Resolver
}

// Session is safe for concurrent use. Complete may race with Reload; the
// response generation tells the host which catalog produced it.
type Session struct {
	// mu orders Reload calls so the published snapshot always carries the
	// latest generation
	mu         sync.Mutex
	current    atomic.Pointer[snapshot]
	generation atomic.Uint64
	log        *logger.Logger
}

// Response is the outcome of one Complete call
type Response struct {
	Generation uint64
	Result     completion.Result
	OK         bool
}

// New creates a session serving cat. schemas may be nil.
func New(cat *catalog.Catalog, schemas *schemastore.Store, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	s := &Session{log: log}
	s.Reload(cat, schemas)
	return s
}

// Reload replaces the catalog and schema store and starts a new generation.
// Responses from earlier generations stop being current.
func (s *Session) Reload(cat *catalog.Catalog, schemas *schemastore.Store) uint64 {
	if cat == nil {
		cat = catalog.New(nil, nil, nil)
	}

	// A nil *Store must not become a non-nil interface value.
	var store completion.SchemaStore
	if schemas != nil {
		store = schemas
	}

	resolver := completion.NewResolver(cat, store, s.log)

	s.mu.Lock()
	gen := s.generation.Add(1)
	s.current.Store(&snapshot{
		generation: gen,
		catalog:    cat,
		resolver:   resolver,
	})
	s.mu.Unlock()

	s.log.Debug().
		Uint64("generation", gen).
		Int("commands", len(cat.CommandNames())).
		Msg("Catalog reloaded")

	return gen
}

// Generation returns the current generation
func (s *Session) Generation() uint64 {
	return s.generation.Load()
}

// IsCurrent reports whether gen is still the latest generation
func (s *Session) IsCurrent(gen uint64) bool {
	return gen == s.generation.Load()
}

// Complete resolves completions for cursor on line (1-based lineNumber)
func (s *Session) Complete(ctx context.Context, lineNumber int, line string, cursor int) Response {
	snap := s.current.Load()
	result, ok := snap.resolver.ResolveAt(ctx, lineNumber, line, cursor)
	return Response{Generation: snap.generation, Result: result, OK: ok}
}

// Apply calls fn with the response result when the response is current and
// resolved. It reports whether fn was called.
func (s *Session) Apply(resp Response, fn func(completion.Result)) bool {
	if !resp.OK {
		return false
	}
	if !s.IsCurrent(resp.Generation) {
		s.log.Debug().
			Uint64("generation", resp.Generation).
			Uint64("current", s.Generation()).
			Msg("Dropping stale completions")
		return false
	}
	fn(resp.Result)
	return true
}

// ShouldTrigger reports whether typing ch should request completions
func ShouldTrigger(ch rune) bool {
	return strings.ContainsRune(TriggerCharacters, ch)
}

// CommandNames returns the distinct command names of the current catalog
func (s *Session) CommandNames() []string {
	return s.current.Load().catalog.CommandNames()
}

// SelectorArgumentNames returns the distinct selector argument names of the
// current catalog
func (s *Session) SelectorArgumentNames() []string {
	return s.current.Load().catalog.SelectorArgumentNames()
}

// Catalog returns the current catalog snapshot
func (s *Session) Catalog() *catalog.Catalog {
	return s.current.Load().catalog
}
