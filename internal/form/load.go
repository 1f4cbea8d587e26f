package form

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_template.yaml
var defaultTemplateYAML []byte

// DefaultTemplateID identifies the built-in template.
const DefaultTemplateID = "default"

// ParseJSON decodes and validates a JSON template document.
func ParseJSON(data []byte) (*Template, error) {
	var t Template
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode template json: %w", err)
	}
	return prepare(&t)
}

// ParseYAML decodes and validates a YAML template document.
func ParseYAML(data []byte) (*Template, error) {
	var t Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode template yaml: %w", err)
	}
	return prepare(&t)
}

// LoadFile reads a template from disk, choosing the decoder by extension.
func LoadFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported template format %q", filepath.Ext(path))
	}
}

// Default returns a fresh copy of the built-in template.
func Default() *Template {
	t, err := ParseYAML(defaultTemplateYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in template is invalid: %v", err))
	}
	return t
}

func prepare(t *Template) (*Template, error) {
	normalizeDefaults(t)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// normalizeDefaults turns decoder-specific number types in default values
// into float64 so both formats yield the same data bag.
func normalizeDefaults(t *Template) {
	for si := range t.Steps {
		for fi := range t.Steps[si].Fields {
			f := &t.Steps[si].Fields[fi]
			switch v := f.DefaultValue.(type) {
			case json.Number:
				if n, err := v.Float64(); err == nil {
					f.DefaultValue = n
				}
			case int:
				f.DefaultValue = float64(v)
			}
		}
	}
}
