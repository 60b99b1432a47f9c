package layout

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document accepts either a single layout or a list under "layouts".
type document struct {
	Layout  `yaml:",inline"`
	Layouts []Layout `yaml:"layouts"`
}

// Decode reads layouts from a YAML document.
func Decode(r io.Reader) ([]Layout, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if len(doc.Layouts) > 0 {
		return doc.Layouts, nil
	}
	if doc.Name == "" && len(doc.Days) == 0 {
		return nil, nil
	}
	return []Layout{doc.Layout}, nil
}

// LoadFile reads layouts from the YAML file at path.
func LoadFile(path string) ([]Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layouts file: %w", err)
	}
	defer f.Close()

	layouts, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return layouts, nil
}
