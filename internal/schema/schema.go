// Package schema compiles and caches JSON Schemas used to check
// payloads coming from the quiz service and from LLM providers.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema defines the JSON structure a payload must follow.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "trivia-quiz".
	Name string

	// Description is sent to LLM providers to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// ViolationError reports a payload that does not conform to a Schema.
type ViolationError struct {
	Schema  string
	Content json.RawMessage
	Err     error
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("payload does not match schema %q: %v", e.Schema, e.Err)
}

func (e *ViolationError) Unwrap() error { return e.Err }

// compiled caches compiled schemas by name.
var compiled sync.Map // map[string]*jsonschema.Schema

// Validate checks raw JSON against s. A nil schema accepts anything.
// Failures are returned as *ViolationError.
func Validate(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ViolationError{Schema: s.Name, Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	c, err := compile(s)
	if err != nil {
		return &ViolationError{Schema: s.Name, Content: raw, Err: err}
	}

	if err := c.Validate(parsed); err != nil {
		return &ViolationError{Schema: s.Name, Content: raw, Err: err}
	}
	return nil
}

func compile(s *Schema) (*jsonschema.Schema, error) {
	if cached, ok := compiled.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not a Go map with typed slices.
	defBytes, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	out, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", s.Name, err)
	}

	compiled.Store(s.Name, out)
	return out, nil
}
