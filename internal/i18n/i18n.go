// Package i18n loads UI catalogs and substitutes {name} placeholders.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/tango/internal/vocab"
)

//go:embed locales/*.json
var embedded embed.FS

// ErrDataUnavailable is returned when no catalog, not even English, loads.
var ErrDataUnavailable = errors.New("translations unavailable")

// Catalog maps keys to translated strings for one language.
type Catalog struct {
	lang    vocab.Language
	entries map[string]string
}

// NewCatalog builds a catalog from entries. Mostly useful in tests.
func NewCatalog(lang vocab.Language, entries map[string]string) *Catalog {
	if entries == nil {
		entries = map[string]string{}
	}
	return &Catalog{lang: lang, entries: entries}
}

// Lang returns the language the catalog was loaded for.
func (c *Catalog) Lang() vocab.Language {
	if c == nil {
		return vocab.LangEN
	}
	return c.lang
}

// Has reports whether key has a translation.
func (c *Catalog) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.entries[key]
	return ok
}

// T returns the translation of key with every {name} replaced by subs[name].
// Missing keys echo the key itself.
func (c *Catalog) T(key string, subs map[string]any) string {
	text := key
	if c != nil {
		if s, ok := c.entries[key]; ok && s != "" {
			text = s
		}
	}
	for name, v := range subs {
		text = strings.ReplaceAll(text, "{"+name+"}", fmt.Sprint(v))
	}
	return text
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Loader reads <lang>.json catalogs from a filesystem and caches them.
type Loader struct {
	fsys fs.FS
	log  logrus.FieldLogger

	mu    sync.Mutex
	cache map[vocab.Language]*Catalog
}

// NewLoader returns a loader over fsys. A nil fsys uses the built-in
// catalogs.
func NewLoader(fsys fs.FS, log logrus.FieldLogger) *Loader {
	if fsys == nil {
		sub, err := fs.Sub(embedded, "locales")
		if err != nil {
			panic(err)
		}
		fsys = sub
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Loader{fsys: fsys, log: log, cache: map[vocab.Language]*Catalog{}}
}

// DirLoader reads catalogs from dir, e.g. a user override directory.
func DirLoader(dir string, log logrus.FieldLogger) *Loader {
	return NewLoader(os.DirFS(dir), log)
}

// Load returns the catalog for lang. If it cannot be read the English
// catalog is tried once. When that fails too, an empty catalog is returned
// together with ErrDataUnavailable, and T echoes keys.
func (l *Loader) Load(lang vocab.Language) (*Catalog, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, err := l.load(lang)
	if err == nil {
		return c, nil
	}
	l.log.WithError(err).WithField("lang", string(lang)).Warn("catalog load failed")
	if lang == vocab.LangEN {
		return NewCatalog(vocab.LangEN, nil), fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	c, enErr := l.load(vocab.LangEN)
	if enErr != nil {
		l.log.WithError(enErr).Warn("fallback catalog load failed")
		return NewCatalog(vocab.LangEN, nil), fmt.Errorf("%w: %v", ErrDataUnavailable, enErr)
	}
	return c, nil
}

func (l *Loader) load(lang vocab.Language) (*Catalog, error) {
	if c, ok := l.cache[lang]; ok {
		return c, nil
	}
	raw, err := fs.ReadFile(l.fsys, string(lang)+".json")
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", lang, err)
	}
	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", lang, err)
	}
	c := NewCatalog(lang, entries)
	l.cache[lang] = c
	return c, nil
}
