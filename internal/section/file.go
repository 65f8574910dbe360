package section

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromFile loads a section definition from a JSON or YAML file
func LoadFromFile(path string) (*Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Section
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	default:
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing section file %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
