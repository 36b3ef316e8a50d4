package config

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSchemaJSON(t *testing.T) {
	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(GetSchemaJSON()), &schema))
	assert.Equal(t, "mcfunction Configuration", schema["title"])
}

func TestValidateWithSchema(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		valid   bool
		field   string
	}{
		{name: "valid yaml", path: "c.yml", content: "log_level: debug\nline_number: 2\n", valid: true},
		{name: "empty yaml", path: "c.yaml", content: "", valid: true},
		{name: "valid toml", path: "c.toml", content: "catalog = \"commands.json\"\n", valid: true},
		{name: "valid json", path: "c.json", content: `{"format": "{{ .Label }}"}`, valid: true},
		{name: "unknown level", path: "c.yml", content: "log_level: loud\n", valid: false, field: "log_level"},
		{name: "line number too small", path: "c.yml", content: "line_number: 0\n", valid: false, field: "line_number"},
		{name: "unknown key", path: "c.json", content: `{"colour": "red"}`, valid: false},
		{name: "bad yaml", path: "c.yml", content: "log_level: [", valid: false, field: "syntax"},
		{name: "bad json", path: "c.json", content: "{", valid: false, field: "syntax"},
		{name: "bad toml", path: "c.toml", content: "log_level = ", valid: false, field: "syntax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateWithSchema(tt.path, []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid, result.Errors)
			if tt.field != "" {
				require.NotEmpty(t, result.Errors)
				assert.Contains(t, result.Errors[0].Field, tt.field)
			}
		})
	}
}

func TestValidateWithSchema_UnsupportedFormat(t *testing.T) {
	_, err := ValidateWithSchema(filepath.Join("x", "c.ini"), []byte("a=b"))
	assert.Error(t, err)
}
