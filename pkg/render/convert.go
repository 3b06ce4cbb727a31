package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/matzehuels/starmap/pkg/errors"
)

// Converter is the external SVG converter binary.
var Converter = "rsvg-convert"

// ToPDF converts an SVG document to PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "-f", "pdf")
}

// ToPNG converts an SVG document to PNG. A scale of 2.0 doubles the
// resolution; non-positive scales mean 1.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	zoom := strconv.FormatFloat(scale, 'f', -1, 64)
	return convert(svg, "-f", "png", "-z", zoom)
}

func convert(svg []byte, args ...string) ([]byte, error) {
	path, err := exec.LookPath(Converter)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "%s not found; install librsvg", Converter)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := bytes.TrimSpace(stderr.Bytes())
		if len(msg) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", Converter, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", Converter, err)
	}
	return stdout.Bytes(), nil
}
