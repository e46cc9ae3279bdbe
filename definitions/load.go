package definitions

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/uicctools/cardfs"
)

// Load reads a tree definitions file. Supports both YAML (.yaml, .yml) and
// JSON (.json) formats; the top level is a list of node definitions placed
// under the MF.
func Load(path string) ([]cardfs.FileDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var defs []cardfs.FileDefinition

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal definitions file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal definitions file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown definitions file extension: %s", path)
	}

	return defs, nil
}
