package rules

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML rule file. Absent fields stay empty.
func ParseYAML(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, &ConfigError{Field: "yaml", Err: err}
	}
	return &rs, nil
}

// ParseJSON decodes a JSON rule file. Comments and trailing commas are
// accepted.
func ParseJSON(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := json.Unmarshal(jsonc.ToJSON(data), &rs); err != nil {
		return nil, &ConfigError{Field: "json", Err: err}
	}
	return &rs, nil
}

// Load reads a rule file. Files ending in .json or .jsonc are JSON; all
// others, and "-" for standard input, are YAML.
func Load(path string) (*RuleSet, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading rules %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return ParseJSON(data)
	default:
		return ParseYAML(data)
	}
}
