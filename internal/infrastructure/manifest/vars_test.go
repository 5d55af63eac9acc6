package manifest

import (
	"testing"

	"github.com/reglet-dev/imgres/internal/application/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_VariableSubstitutor_Substitute(t *testing.T) {
	m := &dto.Manifest{
		Module: "{{ .vars.module }}",
		Vars: map[string]interface{}{
			"module": "shell32.dll",
			"paths":  map[string]interface{}{"icons": "assets/icons"},
			"size":   uint64(32),
		},
		Requests: []dto.LoadRequest{
			{ID: "app", Source: "file", Value: "{{ .vars.paths.icons }}/app.ico", Tags: map[string]string{"size": "{{.vars.size}}"}},
			{ID: "logo", Source: "name", Value: "LOGOBMP"},
		},
	}

	require.NoError(t, NewVariableSubstitutor().Substitute(m))
	assert.Equal(t, "shell32.dll", m.Module)
	assert.Equal(t, "assets/icons/app.ico", m.Requests[0].Value)
	assert.Equal(t, "32", m.Requests[0].Tags["size"])
	assert.Equal(t, "LOGOBMP", m.Requests[1].Value)
}

func Test_VariableSubstitutor_Errors(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{"undefined", "{{ .vars.nope }}/a.ico", "variable not found: nope"},
		{"through a value", "{{ .vars.module.name }}", "not a map"},
		{"map as value", "{{ .vars.paths }}", "is a map"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &dto.Manifest{
				Vars: map[string]interface{}{
					"module": "shell32.dll",
					"paths":  map[string]interface{}{"icons": "assets"},
				},
				Requests: []dto.LoadRequest{{ID: "r", Value: tt.value}},
			}
			err := NewVariableSubstitutor().Substitute(m)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "request r: value")
		})
	}
}
