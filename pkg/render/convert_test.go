package render

import (
	"bytes"
	"os/exec"
	"testing"

	"github.com/matzehuels/starmap/pkg/errors"
)

const tinySVG = `<svg version="1.1" xmlns="http://www.w3.org/2000/svg" height="10" width="10"><rect height="10" width="10" fill="#000000" /></svg>`

func TestMissingConverter(t *testing.T) {
	defer func(c string) { Converter = c }(Converter)
	Converter = "starmap-no-such-converter"

	if _, err := ToPDF([]byte(tinySVG)); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF err = %v, want UNSUPPORTED", err)
	}
	if _, err := ToPNG([]byte(tinySVG), 2); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG err = %v, want UNSUPPORTED", err)
	}
}

func TestConvert(t *testing.T) {
	if _, err := exec.LookPath(Converter); err != nil {
		t.Skip("rsvg-convert not installed")
	}

	png, err := ToPNG([]byte(tinySVG), 0)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("ToPNG output is not a PNG")
	}

	pdf, err := ToPDF([]byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("ToPDF output is not a PDF")
	}
}
