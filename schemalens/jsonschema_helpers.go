package schemalens

import "github.com/google/jsonschema-go/jsonschema"

// TrueSchema returns a schema that validates everything (marshals to
// JSON true), matching the teacher's own helpers.go.
func TrueSchema() *jsonschema.Schema {
	return &jsonschema.Schema{}
}
