package blocklog

import (
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "mem://blocklog.schema.json"

// blockLogSchema only constrains what the converter reads: a "blocks" list of
// objects with integral x, y and z. Metadata such as block_type or found_time
// is free-form. An integral value written as 64.0 counts as an integer.
const blockLogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["blocks"],
  "properties": {
    "blocks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["x", "y", "z"],
        "properties": {
          "x": {"type": "integer"},
          "y": {"type": "integer"},
          "z": {"type": "integer"}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func validate(doc any) error {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if schemaErr = c.AddResource(schemaURL, strings.NewReader(blockLogSchema)); schemaErr != nil {
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	if schemaErr != nil {
		return schemaErr
	}
	return schema.Validate(doc)
}
