package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/store"
	"github.com/aussiebroadwan/renewal/pkg/slogx"
)

// SchemaFlags caches the optional schema capabilities detected at startup.
// A nil *SchemaFlags behaves like a schema without any optional columns.
type SchemaFlags struct {
	decisions atomic.Bool
}

func NewSchemaFlags(caps store.Capabilities) *SchemaFlags {
	f := &SchemaFlags{}
	f.decisions.Store(caps.Decisions)
	return f
}

// DetectSchema probes the store once.
func DetectSchema(ctx context.Context, s store.Store) (*SchemaFlags, error) {
	caps, err := s.Capabilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("probe schema capabilities: %w", err)
	}
	return NewSchemaFlags(caps), nil
}

func (f *SchemaFlags) Decisions() bool {
	return f != nil && f.decisions.Load()
}

// DowngradeDecisions records that the decision columns turned out to be
// missing. Only the first caller logs.
func (f *SchemaFlags) DowngradeDecisions(ctx context.Context) {
	if f == nil {
		return
	}
	if f.decisions.CompareAndSwap(true, false) {
		slogx.FromContext(ctx).Warn("decision columns unavailable, falling back to status-only mode")
	}
}

// Clock returns the current instant. A nil Clock reads the wall clock.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

func locationOrDefault(loc *time.Location) *time.Location {
	if loc == nil {
		return domain.LoadLocation(domain.DefaultTimezone)
	}
	return loc
}
