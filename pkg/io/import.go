package io

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/starmap/pkg/errors"
	"github.com/matzehuels/starmap/pkg/geom"
	"github.com/matzehuels/starmap/pkg/httputil"
	"github.com/matzehuels/starmap/pkg/render/plot"
)

type catalog struct {
	Systems []system `json:"systems" toml:"systems"`
}

type system struct {
	Name string         `json:"name" toml:"name"`
	X    float64        `json:"x" toml:"x"`
	Y    float64        `json:"y" toml:"y"`
	Meta map[string]any `json:"meta,omitempty" toml:"meta,omitempty"`
}

// ReadJSON decodes a JSON catalog from r.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]plot.System, error) {
	var data catalog
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode json")
	}
	return convert(data)
}

// ReadTOML decodes a TOML catalog from r.
// ReadTOML does not close r.
func ReadTOML(r io.Reader) ([]plot.System, error) {
	var data catalog
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode toml")
	}
	return convert(data)
}

func convert(data catalog) ([]plot.System, error) {
	systems := make([]plot.System, 0, len(data.Systems))
	seen := make(map[string]bool, len(data.Systems))

	for i, s := range data.Systems {
		if err := errors.ValidateSystemName(s.Name); err != nil {
			return nil, fmt.Errorf("system %d: %w", i, err)
		}
		if seen[s.Name] {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "duplicate system %q", s.Name)
		}
		seen[s.Name] = true
		if !finite(s.X) || !finite(s.Y) {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "system %q: coordinates must be finite, got (%v, %v)", s.Name, s.X, s.Y)
		}
		if key, ok := nonFiniteMeta(s.Meta); ok {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "system %q: meta %q is not a finite number", s.Name, key)
		}

		systems = append(systems, plot.System{
			Name:        s.Name,
			Coordinates: geom.Pt(s.X, s.Y),
			Meta:        plot.Metadata(s.Meta),
		})
	}
	return systems, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// nonFiniteMeta returns the first metadata key holding NaN or ±Inf, at any
// depth. TOML allows them; hashing and JSON export do not.
func nonFiniteMeta(meta map[string]any) (string, bool) {
	for k, v := range meta {
		if nonFiniteValue(v) {
			return k, true
		}
	}
	return "", false
}

func nonFiniteValue(v any) bool {
	switch v := v.(type) {
	case float64:
		return !finite(v)
	case map[string]any:
		_, bad := nonFiniteMeta(v)
		return bad
	case []any:
		return slices.ContainsFunc(v, nonFiniteValue)
	case []map[string]any:
		return slices.ContainsFunc(v, func(m map[string]any) bool {
			_, bad := nonFiniteMeta(m)
			return bad
		})
	}
	return false
}

// ImportJSON reads a JSON catalog file.
func ImportJSON(path string) ([]plot.System, error) {
	return importFile(path, ReadJSON)
}

// ImportTOML reads a TOML catalog file.
func ImportTOML(path string) ([]plot.System, error) {
	return importFile(path, ReadTOML)
}

// Import reads a catalog file, choosing the decoder by extension.
func Import(path string) ([]plot.System, error) {
	read, err := decoderFor(path)
	if err != nil {
		return nil, err
	}
	return importFile(path, read)
}

// Fetch downloads a catalog with f, choosing the decoder by the extension
// of the URL path.
func Fetch(ctx context.Context, f *httputil.Fetcher, rawURL string) ([]plot.System, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "catalog url")
	}
	read, err := decoderFor(u.Path)
	if err != nil {
		return nil, err
	}

	body, err := f.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	systems, err := read(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rawURL, err)
	}
	return systems, nil
}

func decoderFor(path string) (func(io.Reader) ([]plot.System, error), error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ReadJSON, nil
	case ".toml":
		return ReadTOML, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported catalog extension %q (want .json or .toml)", ext)
	}
}

func importFile(path string, read func(io.Reader) ([]plot.System, error)) ([]plot.System, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	systems, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return systems, nil
}
