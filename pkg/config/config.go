// Package config loads starmap.toml configuration files.
//
// A config file holds two tables:
//
//	[options]
//	scale = 2
//	grid = true
//	formats = ["svg", "png"]
//	circles = [[0, 0, 30]]
//
//	[palette]
//	title_key = "display_name"
//
//	[palette.colors]
//	"Lyran Commonwealth" = "#3366ff"
//
// Values are decoded over a base set of options, so anything the file does
// not mention keeps its base value.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/starmap/pkg/errors"
	"github.com/matzehuels/starmap/pkg/palette"
	"github.com/matzehuels/starmap/pkg/pipeline"
)

// FileName is the config file looked up in the working directory.
const FileName = "starmap.toml"

type file struct {
	Options pipeline.Options `toml:"options"`
	Palette palette.Config   `toml:"palette"`
}

// Load decodes the config file at path over base. It also returns the keys
// the file sets that starmap does not know, so callers can warn about typos.
func Load(path string, base pipeline.Options) (pipeline.Options, []string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return base, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return base, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "config %s", path)
	}

	f := file{Options: base, Palette: base.Palette}
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return base, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}

	opts := f.Options
	opts.Palette = f.Palette
	return opts, unknown, nil
}

// Find returns the first config file that exists: ./starmap.toml, then
// <user config dir>/starmap/config.toml. It returns "" if there is none.
func Find() string {
	candidates := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "starmap", "config.toml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}
