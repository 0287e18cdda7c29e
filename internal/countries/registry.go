package countries

import (
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultFallbackLocale is the fallback locale of an unconfigured registry.
	DefaultFallbackLocale = "en"
)

// DefaultLocales returns the default preload set.
func DefaultLocales() []string {
	return []string{DefaultFallbackLocale}
}

// Options configures a Registry.
// A zero FallbackLocale or a nil Locales leaves the current value unchanged.
type Options struct {
	FallbackLocale string   `json:"fallback_locale" yaml:"fallback_locale"`
	Locales        []string `json:"locales" yaml:"locales"`
}

// Registry caches country tables per locale.
// It is safe for concurrent use.
type Registry struct {
	source Source
	logger *slog.Logger

	mu       sync.RWMutex
	fallback string
	preload  []string
	tables   map[string]Table
	gen      uint64

	group singleflight.Group
}

// Option customizes a Registry at construction.
type Option func(*Registry)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty registry backed by src with default configuration.
// Nothing is loaded until Configure, LoadAll or LoadOne is called.
func New(src Source, opts ...Option) *Registry {
	r := &Registry{
		source:   src,
		logger:   slog.Default(),
		fallback: DefaultFallbackLocale,
		preload:  DefaultLocales(),
		tables:   make(map[string]Table),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Configure applies opts and loads the preload locales and the fallback locale.
// A nil opts restores the defaults: fallback "en", preload ["en"].
func (r *Registry) Configure(opts *Options) {
	r.mu.Lock()
	if opts == nil {
		r.fallback = DefaultFallbackLocale
		r.preload = DefaultLocales()
	} else {
		if opts.FallbackLocale != "" {
			r.fallback = opts.FallbackLocale
		}
		if opts.Locales != nil {
			r.preload = slices.Clone(opts.Locales)
		}
	}
	preload := slices.Clone(r.preload)
	r.mu.Unlock()

	r.LoadAll(preload...)
}

// FallbackLocale returns the configured fallback locale.
func (r *Registry) FallbackLocale() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// Locales returns the configured preload set.
func (r *Registry) Locales() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.preload)
}

// LoadAll loads each locale in order, then the fallback locale if it is
// still missing. Failures are logged and skipped.
func (r *Registry) LoadAll(locales ...string) {
	for _, locale := range locales {
		r.LoadOne(locale)
	}

	fallback := r.FallbackLocale()
	if !r.IsLoaded(fallback) {
		r.LoadOne(fallback)
	}
}

// LoadOne loads the table for locale unless it is already cached.
// Concurrent calls for the same locale share a single fetch and the first
// successful table is kept. A fetch that started before a Reset is not
// shared with calls made after it. Use IsLoaded to observe the outcome.
func (r *Registry) LoadOne(locale string) {
	r.mu.RLock()
	_, ok := r.tables[locale]
	gen := r.gen
	r.mu.RUnlock()
	if ok {
		return
	}

	key := strconv.FormatUint(gen, 10) + "/" + locale
	_, _, _ = r.group.Do(key, func() (any, error) {
		if r.IsLoaded(locale) {
			return nil, nil
		}

		table, err := r.source.Load(locale)
		if err != nil {
			r.logger.Warn("failed to load countries list", "locale", locale, "error", err)
			return nil, nil
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.gen != gen {
			// reset while loading
			return nil, nil
		}
		if _, ok := r.tables[locale]; !ok {
			r.tables[locale] = maps.Clone(table)
		}
		r.logger.Debug("loaded countries list", "locale", locale, "countries", len(table))
		return nil, nil
	})
}

// IsLoaded reports whether a table for locale is cached.
func (r *Registry) IsLoaded(locale string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tables[locale]
	return ok
}

// All returns the cached tables keyed by locale.
// The map is a copy; the tables are shared and must not be modified.
func (r *Registry) All() map[string]Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.tables)
}

// Loaded returns the cached locales, sorted.
func (r *Registry) Loaded() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.tables))
}

// Reset drops every cached table. Configuration is kept.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = make(map[string]Table)
	r.gen++
}

// Table returns the table for locale, or the fallback locale's table, or
// an empty table. It never loads. The result must not be modified.
func (r *Registry) Table(locale string) Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table(locale)
}

func (r *Registry) table(locale string) Table {
	if t, ok := r.tables[locale]; ok {
		return t
	}
	if t, ok := r.tables[r.fallback]; ok {
		return t
	}
	return Table{}
}

// Exists reports whether code is in the fallback locale's table.
func (r *Registry) Exists(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.table(r.fallback)[code]
	return ok
}

// Name returns the name of code in locale, falling back to the fallback
// locale's table when locale is not loaded. It returns "" if not found.
func (r *Registry) Name(code, locale string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table(locale)[code]
}
