package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/starmap/pkg/render/plot"
)

// WriteJSON encodes systems as a JSON catalog and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(systems []plot.System, w io.Writer) error {
	out := catalog{Systems: make([]system, len(systems))}
	for i, s := range systems {
		out.Systems[i] = system{
			Name: s.Name,
			X:    s.Coordinates.X,
			Y:    s.Coordinates.Y,
			Meta: s.Meta,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes systems to a JSON catalog file at path.
func ExportJSON(systems []plot.System, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(systems, f)
}
