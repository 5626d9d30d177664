// ABOUTME: Engine ties the achievement catalog, the stats transition, and a Store together.
// ABOUTME: Holds no per-user state; all coordination is left to the store.
package engine

import (
	"time"

	"github.com/harperreed/crumb/internal/achievements"
	"github.com/harperreed/crumb/internal/models"
	"github.com/harperreed/crumb/internal/storage"
	"go.uber.org/zap"
)

// Engine runs the meal-log and achievement operations against a store.
type Engine struct {
	store   storage.Store
	catalog *achievements.Catalog
	log     *zap.Logger
	now     func() time.Time
	loc     *time.Location
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLocation sets the zone whose calendar decides what "today" is. Default UTC.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// New returns an engine over store. A nil catalog means the standard one.
func New(store storage.Store, catalog *achievements.Catalog, opts ...Option) *Engine {
	if catalog == nil {
		catalog = achievements.NewCatalog()
	}
	e := &Engine{
		store:   store,
		catalog: catalog,
		log:     zap.NewNop(),
		now:     time.Now,
		loc:     time.UTC,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine evaluates.
func (e *Engine) Catalog() *achievements.Catalog {
	return e.catalog
}

// Store returns the underlying store.
func (e *Engine) Store() storage.Store {
	return e.store
}

// Today returns the current calendar date in the engine's zone.
func (e *Engine) Today() time.Time {
	return models.CalendarDate(e.now(), e.loc)
}
