package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// catalogSchema describes the JSON catalog export format accepted by Load.
const catalogSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["skills"],
  "properties": {
    "skills": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "group", "rank"],
        "properties": {
          "id": {"type": "integer", "minimum": 1},
          "name": {"type": "string", "minLength": 1},
          "group": {"type": "string", "minLength": 1},
          "rank": {"type": "integer", "minimum": 1},
          "prerequisites": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "level"],
              "properties": {
                "id": {"type": "integer", "minimum": 1},
                "level": {"type": "integer", "minimum": 1, "maximum": 5}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// getSchema compiles the catalog schema once and caches it.
func getSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(catalogSchema), &parsed); err != nil {
			schemaErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://catalog.json", parsed); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://catalog.json")
	})
	return compiledSchema, schemaErr
}
