package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

var (
	schemaMu    sync.Mutex
	schemaCache = make(map[string]*jsonschema.Schema)
)

// compiledSchema compiles an embedded schema once per name
func compiledSchema(name string, src []byte) (*jsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if s, ok := schemaCache[name]; ok {
		return s, nil
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, bytes.NewReader(src)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	s, err := c.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	schemaCache[name] = s
	return s, nil
}

// validateYAML checks a YAML document against a JSON schema
// The document goes through a JSON round trip so numbers and maps match what the validator expects
func validateYAML(document, schemaName string, schemaSrc, raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return &ValidationError{Document: document, Err: fmt.Errorf("parse: %w", err)}
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return &ValidationError{Document: document, Err: fmt.Errorf("convert: %w", err)}
	}
	var inst any
	if err := json.Unmarshal(js, &inst); err != nil {
		return &ValidationError{Document: document, Err: fmt.Errorf("convert: %w", err)}
	}

	schema, err := compiledSchema(schemaName, schemaSrc)
	if err != nil {
		return err
	}
	if err := schema.Validate(inst); err != nil {
		return &ValidationError{Document: document, Err: err}
	}
	return nil
}
