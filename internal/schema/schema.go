// Package schema runs an optional post-repair JSON Schema conformance
// check, grounded on internal/contract/jsonschema.go's
// jsonSchemaValidator (compiler.AddResource + compiler.Compile +
// schema.Validate). Unlike the teacher's contract gate, a schema
// mismatch here is always a warning: schema conformance is explicitly
// a Non-goal of the repair itself (spec.md §1) — this package checks
// the already-repaired value, it never feeds back into repair.
package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Result is the outcome of checking a repaired value against a schema.
type Result struct {
	Conforms bool
	Warning  string
}

// CheckFile compiles the schema at schemaPath and validates value
// against it. A compile or read failure is itself reported as a
// Result warning rather than a Go error, matching the "soft-failure"
// contract every caller of this package expects.
func CheckFile(schemaPath string, value any) Result {
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return Result{Conforms: false, Warning: fmt.Sprintf("schema: read %s: %v", schemaPath, err)}
	}
	return Check(data, value)
}

// Check compiles schemaJSON and validates value against it.
func Check(schemaJSON []byte, value any) Result {
	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return Result{Conforms: false, Warning: fmt.Sprintf("schema: parse schema: %v", err)}
	}

	compiler := jsonschema.NewCompiler()
	const resourceURL = "jsonremedy://schema.json"
	if err := compiler.AddResource(resourceURL, schemaDoc); err != nil {
		return Result{Conforms: false, Warning: fmt.Sprintf("schema: add resource: %v", err)}
	}

	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return Result{Conforms: false, Warning: fmt.Sprintf("schema: compile: %v", err)}
	}

	if err := compiled.Validate(value); err != nil {
		return Result{Conforms: false, Warning: err.Error()}
	}
	return Result{Conforms: true}
}
