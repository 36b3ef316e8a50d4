package schemastore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/mcfunction/internal/derrors"
)

const blocksSchema = `{
  "type": "string",
  "anyOf": [
    { "enum": ["minecraft:stone", "minecraft:dirt"] },
    { "$ref": "#/$defs/wood" },
    { "const": "minecraft:air" }
  ],
  "$defs": {
    "wood": { "enum": ["minecraft:planks", "minecraft:stone"] },
    "liquid": { "oneOf": [ { "const": "minecraft:water" }, { "const": "minecraft:lava" } ] },
    "loop": { "anyOf": [ { "$ref": "#/$defs/loop" }, { "const": "x" } ] }
  }
}`

const entitySchema = `{
  "type": "object",
  "definitions": {
    "family": { "type": "string", "examples": ["monster", "undead"] }
  },
  "properties": {
    "identifier": { "type": "string", "enum": ["minecraft:cow", "minecraft:pig"] },
    "count": { "type": "integer", "enum": [1, 2] }
  }
}`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.Add("blocks.json", []byte(blocksSchema)))
	require.NoError(t, s.Add("./data/entity.json", []byte(entitySchema)))
	return s
}

func TestStore_ResolveAndEnumerate(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name      string
		reference string
		want      []string
	}{
		{
			name:      "whole document",
			reference: "blocks.json",
			want:      []string{"minecraft:stone", "minecraft:dirt", "minecraft:planks", "minecraft:air"},
		},
		{
			name:      "definition",
			reference: "blocks.json#/$defs/liquid",
			want:      []string{"minecraft:water", "minecraft:lava"},
		},
		{
			name:      "self reference terminates",
			reference: "blocks.json#/$defs/loop",
			want:      []string{"x"},
		},
		{
			name:      "property",
			reference: "data/entity.json#/properties/identifier",
			want:      []string{"minecraft:cow", "minecraft:pig"},
		},
		{
			name:      "draft-07 definitions and examples",
			reference: "data/entity.json#/definitions/family",
			want:      []string{"monster", "undead"},
		},
		{
			name:      "non-string enum values are skipped",
			reference: "data/entity.json#/properties/count",
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := s.Resolve(context.Background(), tt.reference)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Enumerate(schema))
		})
	}
}

func TestStore_ResolveErrors(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Resolve(context.Background(), "missing.json")
	var notFound *derrors.NotFoundError
	assert.True(t, errors.As(err, &notFound))

	_, err = s.Resolve(context.Background(), "blocks.json#/$defs/nope")
	var schemaErr *derrors.SchemaError
	assert.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "blocks.json#/$defs/nope", schemaErr.Reference)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Resolve(ctx, "blocks.json")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ResolveIsCached(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Resolve(context.Background(), "blocks.json#/$defs/wood")
	require.NoError(t, err)
	second, err := s.Resolve(context.Background(), "blocks.json#/$defs/wood")
	require.NoError(t, err)
	assert.Same(t, first, second)

	// Replacing a document drops cached references into it
	require.NoError(t, s.Add("blocks.json", []byte(`{"$defs": {"wood": {"enum": ["minecraft:log"]}}}`)))
	third, err := s.Resolve(context.Background(), "blocks.json#/$defs/wood")
	require.NoError(t, err)
	assert.Equal(t, []string{"minecraft:log"}, s.Enumerate(third))
}

func TestStore_AddInvalid(t *testing.T) {
	s := New()
	err := s.Add("broken.json", []byte(`{"type": `))
	require.Error(t, err)

	var schemaErr *derrors.SchemaError
	assert.True(t, errors.As(err, &schemaErr))
	assert.Empty(t, s.Documents())
}

func TestEnumerate_Nil(t *testing.T) {
	assert.Nil(t, New().Enumerate(nil))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "general"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocks.json"), []byte(blocksSchema), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "general", "entity.json"), []byte(entitySchema), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# not a schema"), 0644))

	s, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"blocks.json", "general/entity.json"}, s.Documents())

	schema, err := s.Resolve(context.Background(), "general/entity.json#/properties/identifier")
	require.NoError(t, err)
	assert.Equal(t, []string{"minecraft:cow", "minecraft:pig"}, s.Enumerate(schema))
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
