package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"penguind/internal/common/fsutil"
	"penguind/pkg/types"
)

// DescriptorName is the registry file expected inside the models directory.
const DescriptorName = "registry.json"

// Load reads the registry descriptor at path. The descriptor names the
// default model and the set of selectable model names; a missing file or an
// absent default_model is a configuration error and fatal at startup.
// Supports .json and .yaml/.yml descriptors.
func Load(path string) (types.Registry, error) {
	var reg types.Registry
	base, err := fsutil.ExpandHome(path)
	if err != nil {
		return reg, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return reg, fmt.Errorf("abs path: %w", err)
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		return reg, fmt.Errorf("read registry descriptor: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(abs)); ext {
	case ".json":
		if err := json.Unmarshal(b, &reg); err != nil {
			return reg, fmt.Errorf("parse registry descriptor: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &reg); err != nil {
			return reg, fmt.Errorf("parse registry descriptor: %w", err)
		}
	default:
		return reg, fmt.Errorf("unsupported registry descriptor extension: %s", ext)
	}
	if reg.DefaultModel == "" {
		return reg, fmt.Errorf("registry descriptor %s has no default_model", abs)
	}
	return reg, nil
}
