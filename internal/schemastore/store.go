// Package schemastore resolves schema references used by catalog arguments
// and enumerates the literal values a schema allows.
package schemastore

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"

	"github.com/NikitaCOEUR/mcfunction/internal/derrors"
)

// Schema is a resolved reference: the addressed node plus the document it
// lives in, needed to follow local $ref pointers.
type Schema struct {
	Reference string
	node      *jsonschema.Schema
	root      *jsonschema.Schema
}

// Store holds parsed schema documents keyed by name
type Store struct {
	mu        sync.RWMutex
	documents map[string]*jsonschema.Schema
	resolved  map[string]*Schema
}

// New creates an empty store
func New() *Store {
	return &Store{
		documents: make(map[string]*jsonschema.Schema),
		resolved:  make(map[string]*Schema),
	}
}

// LoadDir adds every *.json file below dir, named by its slash-separated
// path relative to dir
func LoadDir(dir string) (*Store, error) {
	s := New()

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		return s.Add(filepath.ToSlash(rel), data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load schemas from %s: %w", dir, err)
	}

	return s, nil
}

// Add parses and registers a schema document. The document must compile as
// a JSON Schema on its own.
func (s *Store) Add(name string, data []byte) error {
	if _, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data)); err != nil {
		return derrors.NewSchemaError(name, "invalid schema document", err)
	}

	doc := &jsonschema.Schema{}
	if err := json.Unmarshal(hoistDefinitions(data), doc); err != nil {
		return derrors.NewSchemaError(name, "failed to decode schema document", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[normalizeName(name)] = doc
	// A replaced document invalidates every reference into it
	s.resolved = make(map[string]*Schema)

	return nil
}

// Documents returns the registered document names, sorted
func (s *Store) Documents() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.documents))
	for name := range s.documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up a reference of the form "document" or
// "document#/json/pointer". It is the only call in a completion pass that
// may block, so it honours ctx.
func (s *Store) Resolve(ctx context.Context, reference string) (*Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	cached, ok := s.resolved[reference]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	name, pointer, _ := strings.Cut(reference, "#")

	s.mu.RLock()
	root, ok := s.documents[normalizeName(name)]
	s.mu.RUnlock()
	if !ok {
		return nil, derrors.NewNotFoundError(name, fmt.Sprintf("schema document not found: %s", name))
	}

	node, err := walkPointer(root, pointer)
	if err != nil {
		return nil, derrors.NewSchemaError(reference, "cannot resolve reference", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved := &Schema{Reference: reference, node: node, root: root}

	s.mu.Lock()
	s.resolved[reference] = resolved
	s.mu.Unlock()

	return resolved, nil
}

// Enumerate returns the distinct string literals a schema admits, gathered
// from enum, const and examples and from every anyOf/oneOf/allOf branch, in
// document order. Local $ref pointers are followed.
func (s *Store) Enumerate(schema *Schema) []string {
	if schema == nil || schema.node == nil {
		return nil
	}

	e := enumerator{
		root:    schema.root,
		visited: make(map[*jsonschema.Schema]bool),
		seen:    make(map[string]bool),
	}
	e.walk(schema.node)

	return e.values
}

type enumerator struct {
	root    *jsonschema.Schema
	visited map[*jsonschema.Schema]bool
	seen    map[string]bool
	values  []string
}

func (e *enumerator) add(v any) {
	str, ok := v.(string)
	if !ok || e.seen[str] {
		return
	}
	e.seen[str] = true
	e.values = append(e.values, str)
}

func (e *enumerator) walk(node *jsonschema.Schema) {
	if node == nil || e.visited[node] {
		return
	}
	e.visited[node] = true

	if strings.HasPrefix(node.Ref, "#") {
		if target, err := walkPointer(e.root, strings.TrimPrefix(node.Ref, "#")); err == nil {
			e.walk(target)
		}
	}

	for _, v := range node.Enum {
		e.add(v)
	}
	if node.Const != nil {
		e.add(node.Const)
	}
	for _, v := range node.Examples {
		e.add(v)
	}

	for _, branch := range node.AllOf {
		e.walk(branch)
	}
	for _, branch := range node.AnyOf {
		e.walk(branch)
	}
	for _, branch := range node.OneOf {
		e.walk(branch)
	}
}

// walkPointer follows a JSON pointer through the schema keywords that can
// hold subschemas
func walkPointer(root *jsonschema.Schema, pointer string) (*jsonschema.Schema, error) {
	node := root
	segments := splitPointer(pointer)

	for i := 0; i < len(segments); i++ {
		if node == nil {
			return nil, fmt.Errorf("pointer %q leads nowhere", pointer)
		}

		keyword := segments[i]
		switch keyword {
		case "items":
			node = node.Items
			continue
		case "not":
			node = node.Not
			continue
		}

		if i+1 >= len(segments) {
			return nil, fmt.Errorf("pointer %q ends after %q", pointer, keyword)
		}
		i++
		key := segments[i]

		switch keyword {
		case "$defs", "definitions":
			next, ok := node.Definitions[key]
			if !ok {
				return nil, fmt.Errorf("no definition %q", key)
			}
			node = next
		case "properties":
			if node.Properties == nil {
				return nil, fmt.Errorf("no property %q", key)
			}
			next, ok := node.Properties.Get(key)
			if !ok {
				return nil, fmt.Errorf("no property %q", key)
			}
			node = next
		case "allOf", "anyOf", "oneOf":
			branches := map[string][]*jsonschema.Schema{
				"allOf": node.AllOf,
				"anyOf": node.AnyOf,
				"oneOf": node.OneOf,
			}[keyword]
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(branches) {
				return nil, fmt.Errorf("invalid %s index %q", keyword, key)
			}
			node = branches[idx]
		default:
			return nil, fmt.Errorf("unsupported pointer keyword %q", keyword)
		}
	}

	if node == nil {
		return nil, fmt.Errorf("pointer %q leads nowhere", pointer)
	}
	return node, nil
}

func splitPointer(pointer string) []string {
	pointer = strings.Trim(pointer, "/")
	if pointer == "" {
		return nil
	}

	parts := strings.Split(pointer, "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return parts
}

// hoistDefinitions renames a top-level draft-07 "definitions" block to
// "$defs", the only spelling the document model decodes
func hoistDefinitions(data []byte) []byte {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return data
	}

	defs, ok := raw["definitions"]
	if !ok {
		return data
	}
	if _, exists := raw["$defs"]; exists {
		return data
	}

	raw["$defs"] = defs
	delete(raw, "definitions")

	out, err := json.Marshal(raw)
	if err != nil {
		return data
	}
	return out
}

func normalizeName(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "./")
}
