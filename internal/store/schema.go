package store

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/reminders/internal/todo"
)

//go:embed reminders.schema.json
var schemaJSON []byte

const schemaURL = "https://nibzard.github.io/reminders/reminders.schema.json"

// SchemaJSON returns the embedded task file schema.
func SchemaJSON() []byte {
	return bytes.Clone(schemaJSON)
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add task file schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile task file schema: %w", err)
	}
	return schema, nil
})

// ValidationError reports a schema violation at a document path.
type ValidationError struct {
	Path string // dotted path, e.g. tasks[0].description
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SchemaError collects every violation found in one document.
type SchemaError struct {
	Violations []*ValidationError
}

func (e *SchemaError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return "invalid task file: " + strings.Join(msgs, "; ")
}

// Is reports schema failures as todo.ErrInvalidInput.
func (e *SchemaError) Is(target error) bool {
	return target == todo.ErrInvalidInput
}

// Unwrap exposes the individual violations to errors.As.
func (e *SchemaError) Unwrap() []error {
	errs := make([]error, 0, len(e.Violations))
	for _, v := range e.Violations {
		errs = append(errs, v)
	}
	return errs
}

// Validate checks a decoded JSON value against the task file schema.
func Validate(instance any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	err = schema.Validate(instance)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate task file: %w", err)
	}
	result := &SchemaError{}
	collectSchemaErrors(result, ve)
	return result
}

func collectSchemaErrors(result *SchemaError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Violations = append(result.Violations, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath converts "/tasks/0/description" to "tasks[0].description".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
