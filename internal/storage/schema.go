package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaSet validates persisted documents against JSON Schemas keyed by the
// exact storage key. Keys without a registered schema pass unchecked.
type SchemaSet struct {
	schemas map[string]*jsonschema.Schema
}

// DefaultSchemas compiles schemas for the documents whose shape the rest of
// the application depends on. A document that drifted (manual edit, partial
// write) is rejected on load so the caller's default takes over.
func DefaultSchemas() (*SchemaSet, error) {
	sources := map[string]string{
		KeyUsers: `{
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "username"],
				"properties": {
					"id": {"type": "string"},
					"username": {"type": "string", "minLength": 1},
					"isAdmin": {"type": "boolean"},
					"isBlocked": {"type": "boolean"},
					"blockedUsers": {"type": "array", "items": {"type": "string"}}
				}
			}
		}`,
		KeyMessages: `{
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "username"],
				"properties": {
					"id": {"type": "string"},
					"username": {"type": "string"},
					"text": {"type": "string"},
					"taggedUsers": {"type": "array", "items": {"type": "string"}}
				}
			}
		}`,
		KeyCurrentPoll: `{
			"type": "object",
			"required": ["title", "items"],
			"properties": {
				"title": {"type": "string"},
				"items": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["id", "title"],
						"properties": {
							"id": {"type": "string"},
							"title": {"type": "string"},
							"votes": {"type": "array", "items": {"type": "string"}}
						}
					}
				}
			}
		}`,
	}

	set := &SchemaSet{schemas: make(map[string]*jsonschema.Schema, len(sources))}
	for key, source := range sources {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(key+".json", bytes.NewReader([]byte(source))); err != nil {
			return nil, fmt.Errorf("failed to register schema for %s: %w", key, err)
		}
		schema, err := compiler.Compile(key + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema for %s: %w", key, err)
		}
		set.schemas[key] = schema
	}

	return set, nil
}

// Validate checks a raw JSON document against the schema registered for key,
// if any.
func (s *SchemaSet) Validate(key string, payload []byte) error {
	if s == nil {
		return nil
	}

	schema, ok := s.schemas[key]
	if !ok {
		return nil
	}

	var document interface{}
	if err := json.Unmarshal(payload, &document); err != nil {
		return err
	}

	return schema.Validate(document)
}
