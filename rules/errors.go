package rules

import "fmt"

// ConfigError reports a rule file that cannot be normalized.
type ConfigError struct {
	Field string // Rule field, e.g. "nodes.of_type"
	Value string // Offending identifier, empty for file-level errors
	Err   error  // Underlying error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("rules: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("rules: %s: %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
