package coverage

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/gdtdd/gdtdd/schema"
)

const schemaName = "coverage.schema.json"

var (
	reportSchema *jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compileSchema compiles the embedded coverage schema once.
func compileSchema() error {
	compileOnce.Do(func() {
		data, err := schemafs.FS.ReadFile(schemaName)
		if err != nil {
			compileErr = fmt.Errorf("read coverage schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal coverage schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaName, doc); err != nil {
			compileErr = fmt.Errorf("add coverage schema resource: %w", err)
			return
		}

		reportSchema, err = compiler.Compile(schemaName)
		if err != nil {
			compileErr = fmt.Errorf("compile coverage schema: %w", err)
		}
	})

	return compileErr
}

// validate checks the shape of a coverage artifact. A missing files array is valid.
func validate(data []byte) error {
	if err := compileSchema(); err != nil {
		return err
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := reportSchema.Validate(v); err != nil {
		return fmt.Errorf("coverage validation failed: %w", err)
	}

	return nil
}
