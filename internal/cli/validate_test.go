package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/mcfunction/internal/derrors"
)

func TestValidate_Catalog(t *testing.T) {
	dir := setupProject(t, "")

	var out bytes.Buffer
	err := Validate(ValidateParams{Common: Common{Dir: dir, Output: &out}, Path: filepath.Join(dir, "commands.json")})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Catalog is valid")
}

func TestValidate_CatalogFromConfig(t *testing.T) {
	dir := setupProject(t, "")

	var out bytes.Buffer
	err := Validate(ValidateParams{Common: Common{Dir: dir, Output: &out}})
	require.NoError(t, err)
	assert.Contains(t, out.String(), filepath.Join(dir, "commands.json"))
}

func TestValidate_BuiltInCatalog(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	err := Validate(ValidateParams{Common: Common{Dir: t.TempDir(), Output: &out}})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "built-in catalog")
	assert.Contains(t, out.String(), "Catalog is valid")
}

func TestValidate_InvalidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"commands": [{"commandName": "x", "arguments": [{"type": "number"}]}]}`), 0644))

	var out bytes.Buffer
	err := Validate(ValidateParams{Common: Common{Output: &out}, Path: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out.String(), "[commands/x/0]")
	assert.Contains(t, out.String(), "Found 1 error(s)")

	var verr *derrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "commands/x/0", verr.Field)
	assert.Equal(t, "VALIDATION_ERROR", verr.Code())
}

func TestValidate_Config(t *testing.T) {
	dir := setupProject(t, "")

	var out bytes.Buffer
	err := Validate(ValidateParams{Common: Common{Dir: dir, Output: &out}, Config: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), filepath.Join(dir, ".mcfunction.yml"))
	assert.Contains(t, out.String(), "Configuration is valid")
}

func TestValidate_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mcfunction.yml")
	require.NoError(t, os.WriteFile(path, []byte("line_number: 0\nunknown: true\n"), 0644))

	var out bytes.Buffer
	err := Validate(ValidateParams{Common: Common{Output: &out}, Path: path, Config: true})
	require.Error(t, err)
	assert.Contains(t, out.String(), "Configuration has errors")
}

func TestValidate_NoConfigFound(t *testing.T) {
	err := Validate(ValidateParams{Common: Common{Dir: t.TempDir(), Output: &bytes.Buffer{}}, Config: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
}
