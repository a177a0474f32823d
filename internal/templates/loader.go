package templates

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Assets holds the bundled catalogue and template artwork. Artwork refs of
// the form embed://<name> resolve against the assets/ directory.
//
//go:embed catalogue.yaml assets/*.svg
var Assets embed.FS

// EmbedScheme prefixes artwork refs that live in Assets.
const EmbedScheme = "embed://"

// AssetsDir is the directory inside Assets that embed:// refs are relative to.
const AssetsDir = "assets"

type catalogueFile struct {
	Templates []Template `yaml:"templates"`
}

// ParseCatalogue reads a YAML catalogue and builds a registry from it.
func ParseCatalogue(r io.Reader) (*Registry, error) {
	var cf catalogueFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil {
		return nil, fmt.Errorf("decoding catalogue: %w", err)
	}
	return NewRegistry(cf.Templates)
}

// LoadCatalogue loads a catalogue from fsys. An empty path loads the bundled
// catalogue.
func LoadCatalogue(fsys fs.FS, path string) (*Registry, error) {
	if fsys == nil {
		fsys = Assets
	}
	if path == "" {
		path = "catalogue.yaml"
	}
	fp, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalogue %s: %w", path, err)
	}
	defer fp.Close()

	reg, err := ParseCatalogue(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return reg, nil
}

// LoadCatalogueFile loads a catalogue from the local filesystem, falling back
// to the bundled catalogue when path is empty.
func LoadCatalogueFile(path string) (*Registry, error) {
	if path == "" {
		return LoadCatalogue(Assets, "")
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalogue %s: %w", path, err)
	}
	defer fp.Close()

	reg, err := ParseCatalogue(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return reg, nil
}

// DefaultRegistry returns the bundled catalogue. It panics if the embedded
// catalogue is malformed, which can only happen at build time.
func DefaultRegistry() *Registry {
	reg, err := LoadCatalogue(Assets, "")
	if err != nil {
		panic(err)
	}
	return reg
}
