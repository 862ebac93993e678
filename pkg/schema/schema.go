// Package schema implements the optional per-route response-schema
// assertion supplement described in SPEC_FULL.md: a route may declare
// response_schema, a path to a JSON Schema file, and every environment's
// response body is validated against it after extraction. A violation
// surfaces as an additional comparator error cause (SchemaViolation),
// distinct from spec.md §1's non-goal of inferring schemas — nothing here
// is inferred, only validated against a schema the user already wrote.
// Grounded on the teacher's SchemaValidationTool (pkg/core/tools/schema.go).
package schema

import (
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Violation reports that a response body failed JSON-Schema validation.
type Violation struct {
	Route  string
	Errors []string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("route %q: SchemaViolation: %s", v.Route, strings.Join(v.Errors, "; "))
}

// Validate checks body against the schema file at path, returning a
// *Violation if it fails to conform. A missing or unreadable schema file is
// a configuration problem, not a violation, and is returned as a plain
// error so it can be told apart at the call site.
func Validate(routeName, path string, body []byte) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("schema: failed to read %s: %w", path, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(raw)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema: validation error for route %q: %w", routeName, err)
	}

	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		errs = append(errs, e.String())
	}
	return &Violation{Route: routeName, Errors: errs}
}
