package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reglet-dev/imgres/internal/application/dto"
)

// Variable pattern: {{ .vars.key }}
var varPattern = regexp.MustCompile(`\{\{\s*\.vars\.([a-zA-Z0-9_.]+)\s*\}\}`)

// VariableSubstitutor expands {{ .vars.key }} references in manifest
// values and module names. Nested vars are addressed with dots, as in
// {{ .vars.paths.icons }}.
type VariableSubstitutor struct{}

// NewVariableSubstitutor creates a new variable substitutor.
func NewVariableSubstitutor() *VariableSubstitutor {
	return &VariableSubstitutor{}
}

// Substitute expands references in place. A reference to an undefined
// variable is an error.
func (s *VariableSubstitutor) Substitute(m *dto.Manifest) error {
	var err error
	if m.Module, err = s.substituteInString(m.Module, m.Vars); err != nil {
		return fmt.Errorf("module: %w", err)
	}

	for i := range m.Requests {
		req := &m.Requests[i]
		if req.Value, err = s.substituteInString(req.Value, m.Vars); err != nil {
			return fmt.Errorf("request %s: value: %w", req.ID, err)
		}
		if req.Module, err = s.substituteInString(req.Module, m.Vars); err != nil {
			return fmt.Errorf("request %s: module: %w", req.ID, err)
		}
		for k, v := range req.Tags {
			if req.Tags[k], err = s.substituteInString(v, m.Vars); err != nil {
				return fmt.Errorf("request %s: tag %s: %w", req.ID, k, err)
			}
		}
	}

	return nil
}

// substituteInString replaces every reference in str.
func (s *VariableSubstitutor) substituteInString(str string, vars map[string]interface{}) (string, error) {
	if !strings.Contains(str, "{{") {
		return str, nil
	}

	var lastErr error
	result := varPattern.ReplaceAllStringFunc(str, func(match string) string {
		submatches := varPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			lastErr = fmt.Errorf("invalid variable pattern: %s", match)
			return match
		}

		value, err := lookupVar(vars, submatches[1])
		if err != nil {
			lastErr = err
			return match
		}
		return fmt.Sprintf("%v", value)
	})

	if lastErr != nil {
		return "", lastErr
	}
	return result, nil
}

// lookupVar looks up a variable value by dotted path (e.g., "paths.icons").
func lookupVar(vars map[string]interface{}, path string) (interface{}, error) {
	parts := strings.Split(path, ".")
	current := interface{}(vars)

	for i, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("variable path %s: cannot access %s (not a map)", path, strings.Join(parts[:i+1], "."))
		}

		value, exists := m[part]
		if !exists {
			return nil, fmt.Errorf("variable not found: %s", path)
		}
		current = value
	}

	if _, isMap := current.(map[string]interface{}); isMap {
		return nil, fmt.Errorf("variable %s is a map, not a value", path)
	}
	return current, nil
}
