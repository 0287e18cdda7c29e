package countries

var std = New(Embedded())

// Default returns the process-wide registry backed by the embedded datasets.
func Default() *Registry {
	return std
}

// Init configures the default registry. See Registry.Configure.
func Init(opts *Options) {
	std.Configure(opts)
}

// LoadAll loads locales into the default registry.
func LoadAll(locales ...string) {
	std.LoadAll(locales...)
}

// LoadOne loads a locale into the default registry.
func LoadOne(locale string) {
	std.LoadOne(locale)
}

// IsLoaded reports whether the default registry has locale cached.
func IsLoaded(locale string) bool {
	return std.IsLoaded(locale)
}

// All returns the default registry's cached tables.
func All() map[string]Table {
	return std.All()
}

// Reset empties the default registry's cache.
func Reset() {
	std.Reset()
}

// Get returns the default registry's table for locale.
func Get(locale string) Table {
	return std.Table(locale)
}

// IsValid reports whether code is a known country in the default registry.
func IsValid(code string) bool {
	return std.Exists(code)
}

// GetName returns the name of code in locale from the default registry.
// Returns empty string if not found.
func GetName(code, locale string) string {
	return std.Name(code, locale)
}
