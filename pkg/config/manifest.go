package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// LoadManifests reads the theme manifests listed in ThemeFiles.
func (r Render) LoadManifests() ([]*theme.Manifest, error) {
	manifests := make([]*theme.Manifest, 0, len(r.ThemeFiles))
	for _, path := range r.ThemeFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read theme %s: %w", path, err)
		}
		manifest, err := ParseManifest(data, path)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, manifest)
	}
	return manifests, nil
}

// ParseManifest decodes a JSON or YAML theme manifest. The manifest must be
// named.
func ParseManifest(data []byte, source string) (*theme.Manifest, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("config: theme %s is empty", source)
	}

	manifest := &theme.Manifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		manifest = &theme.Manifest{}
		if err := yaml.Unmarshal(data, manifest); err != nil {
			return nil, fmt.Errorf("config: parse theme %s: invalid JSON or YAML: %w", source, err)
		}
	}
	if strings.TrimSpace(manifest.Name) == "" {
		return nil, fmt.Errorf("config: theme %s has no name", source)
	}
	return manifest, nil
}
