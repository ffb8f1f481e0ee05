// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadPack reads a pack from path. Files ending in .yaml or .yml are YAML,
// anything else is JSON.
func LoadPack(path string) (*TemplatePack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pack TemplatePack
	if isYAML(path) {
		err = yaml.Unmarshal(data, &pack)
	} else {
		err = json.Unmarshal(data, &pack)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse template pack %s: %w", path, err)
	}
	return &pack, nil
}

// SavePack writes pack to path in the format its extension names.
func SavePack(path string, pack *TemplatePack) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(pack)
	} else {
		data, err = json.MarshalIndent(pack, "", "  ")
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
