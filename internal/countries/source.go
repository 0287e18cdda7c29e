package countries

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrDatasetUnavailable reports that no usable dataset exists for a locale:
// it is missing, unreadable or malformed.
var ErrDatasetUnavailable = errors.New("dataset unavailable")

// Source fetches the country table for a locale.
// Any non-nil error is treated as ErrDatasetUnavailable.
type Source interface {
	Load(locale string) (Table, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(locale string) (Table, error)

// Load calls f(locale).
func (f SourceFunc) Load(locale string) (Table, error) {
	return f(locale)
}

//go:embed resources/*.json
var embeddedResources embed.FS

// ResourcesDir is the directory of the embedded datasets.
const ResourcesDir = "resources"

// Extensions lists the dataset file extensions in lookup order.
var Extensions = []string{".json", ".yaml", ".yml", ".txt"}

// FSSource loads datasets named "<locale><ext>" from a directory of an fs.FS.
type FSSource struct {
	fsys fs.FS
	dir  string
}

// NewFSSource creates a source reading from dir inside fsys.
// Use "." for the root of fsys.
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{fsys: fsys, dir: dir}
}

// Embedded returns a source over the datasets compiled into the binary.
func Embedded() *FSSource {
	return NewFSSource(embeddedResources, ResourcesDir)
}

// Load reads and parses the dataset for locale.
func (s *FSSource) Load(locale string) (Table, error) {
	if !validLocale(locale) {
		return nil, fmt.Errorf("locale %q: invalid name: %w", locale, ErrDatasetUnavailable)
	}

	for _, ext := range Extensions {
		name := path.Join(s.dir, locale+ext)
		data, err := fs.ReadFile(s.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Join(fmt.Errorf("read %s: %w", name, ErrDatasetUnavailable), err)
		}

		table, err := decode(ext, data)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("parse %s: %w", name, ErrDatasetUnavailable), err)
		}
		return table, nil
	}

	return nil, fmt.Errorf("locale %q: no dataset in %s: %w", locale, s.dir, ErrDatasetUnavailable)
}

// Locales returns the locales this source has a dataset for, sorted.
func (s *FSSource) Locales() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dataset dir: %w", err)
	}

	seen := make(map[string]bool)
	var locales []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := path.Ext(name)
		if !supportedExt(ext) {
			continue
		}
		locale := strings.TrimSuffix(name, ext)
		if !validLocale(locale) || seen[locale] {
			continue
		}
		seen[locale] = true
		locales = append(locales, locale)
	}

	sort.Strings(locales)
	return locales, nil
}

func decode(ext string, data []byte) (Table, error) {
	var table Table
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, err
		}
	case ".txt":
		return ParseText(string(data))
	default:
		return nil, fmt.Errorf("unsupported extension %q", ext)
	}

	// "null" documents decode without error into a nil map
	if table == nil {
		return nil, errors.New("dataset is not a mapping")
	}
	return table, nil
}

func supportedExt(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// validLocale accepts any dataset name that stays inside the directory.
func validLocale(locale string) bool {
	if locale == "" || locale == "." || locale == ".." {
		return false
	}
	return !strings.ContainsAny(locale, `/\`)
}

// MapSource serves fixed in-memory tables.
type MapSource map[string]Table

// Load returns the table registered for locale.
func (m MapSource) Load(locale string) (Table, error) {
	table, ok := m[locale]
	if !ok {
		return nil, fmt.Errorf("locale %q: %w", locale, ErrDatasetUnavailable)
	}
	return table, nil
}

// Chain returns a Source that tries each source in order and returns the
// first successful load.
func Chain(sources ...Source) Source {
	return SourceFunc(func(locale string) (Table, error) {
		errs := make([]error, 0, len(sources))
		for _, src := range sources {
			table, err := src.Load(locale)
			if err == nil {
				return table, nil
			}
			errs = append(errs, err)
		}
		if len(errs) == 0 {
			return nil, fmt.Errorf("locale %q: no sources: %w", locale, ErrDatasetUnavailable)
		}
		return nil, errors.Join(errs...)
	})
}
