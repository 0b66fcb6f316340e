// Package tools exposes the extraction and summarization operations as a set
// of named, JSON-schema-described tools a host process can call over stdio.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// Handler executes a tool with raw JSON arguments and returns a raw JSON
// result. Caller input errors (bad index, missing id) are returned as
// structured {"error": ...} results, not as handler errors; a handler error
// means the tool itself could not run.
type Handler func(ctx context.Context, args json.RawMessage) (json.RawMessage, error)

// Definition describes one callable tool. Name is a stable lowercase
// snake_case identifier that never changes across versions.
type Definition struct {
	Name        string
	Description string
	// Schema is a JSON Schema object for the arguments.
	Schema  json.RawMessage
	Handler Handler
}

// Spec is the serializable view of a Definition, returned by list_tools.
type Spec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
}

// Registry holds the available tools keyed by name.
type Registry struct {
	defs map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

var nameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Register adds or replaces a tool after validating its identity and schema.
func (r *Registry) Register(def Definition) error {
	if !nameRe.MatchString(def.Name) {
		return fmt.Errorf("invalid tool name %q: must be lowercase snake_case starting with a letter", def.Name)
	}
	if len(def.Schema) == 0 || !isJSONObject(def.Schema) {
		return fmt.Errorf("tool %q: schema must be a non-empty JSON object", def.Name)
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %q: handler must not be nil", def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Specs returns the tool catalog sorted by name for deterministic output.
func (r *Registry) Specs() []Spec {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	specs := make([]Spec, 0, len(names))
	for _, name := range names {
		def := r.defs[name]
		specs = append(specs, Spec{Name: def.Name, Description: def.Description, Schema: def.Schema})
	}
	return specs
}

// ErrUnknownTool is returned by Call for names not in the registry.
var ErrUnknownTool = errors.New("unknown tool")

// Call dispatches a tool by name.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	return def.Handler(ctx, args)
}

func isJSONObject(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	_, ok := v.(map[string]any)
	return ok
}
