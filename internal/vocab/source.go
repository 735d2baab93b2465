package vocab

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Source loads the lessons of a level. Fetch is a one-shot load.
type Source interface {
	Fetch(ctx context.Context, level Level) (Lessons, error)
}

//go:embed data/*.json
var embeddedData embed.FS

// EmbeddedSource serves the sample lessons compiled into the binary.
type EmbeddedSource struct{}

var _ Source = EmbeddedSource{}

// Fetch returns the embedded lessons for level.
func (EmbeddedSource) Fetch(_ context.Context, level Level) (Lessons, error) {
	return fetchFS(embeddedData, "data", level, "embedded")
}

// DirSource reads <Dir>/<level>.json from disk.
type DirSource struct {
	Dir string
}

var _ Source = DirSource{}

// Fetch reads and validates the lesson file for level.
func (s DirSource) Fetch(_ context.Context, level Level) (Lessons, error) {
	return fetchFS(os.DirFS(s.Dir), ".", level, s.Dir)
}

func fetchFS(fsys fs.FS, dir string, level Level, origin string) (Lessons, error) {
	name := string(level) + ".json"
	raw, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(dir, name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no %s lessons in %s", ErrDataUnavailable, level, origin)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrDataUnavailable, name, err)
	}
	return Decode(origin+"/"+name, raw)
}

// NewSource picks a source for a data location: "embedded" (or empty),
// an http(s) URL, or a directory path. cache is used only by HTTP sources
// and may be nil.
func NewSource(location string, cache Cache, opts ...HTTPOption) Source {
	switch {
	case location == "" || location == "embedded":
		return EmbeddedSource{}
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, cache, opts...)
	default:
		return DirSource{Dir: location}
	}
}
