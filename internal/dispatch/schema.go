package dispatch

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/capilize/capilize/internal/quiz"
)

const payloadSchemaURL = "schema://send-diagnosis.json"

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// PayloadSchema returns the JSON Schema definition of the dispatch body.
func PayloadSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"email", "answers"},
		"properties": map[string]any{
			"email": map[string]any{
				"type":      "string",
				"minLength": 1,
				"pattern":   "\\S",
			},
			"answers": map[string]any{
				"type":     "object",
				"required": []any{"oilScalp", "chemicalFrequency", "strandCondition", "difficulties"},
				"properties": map[string]any{
					"oilScalp":          enumOf(quiz.AllOilScalp),
					"chemicalFrequency": enumOf(quiz.AllChemicalFrequency),
					"strandCondition":   enumOf(quiz.AllStrandCondition),
					"difficulties": map[string]any{
						"type":        "array",
						"items":       enumOf(quiz.AllDifficulties),
						"uniqueItems": true,
					},
				},
			},
			"photo": map[string]any{
				"type":    []any{"string", "null"},
				"pattern": "^data:image/[A-Za-z0-9.+-]+;base64,",
			},
		},
	}
}

func enumOf[T ~string](values []T) map[string]any {
	enum := make([]any, 0, len(values))
	for _, v := range values {
		enum = append(enum, string(v))
	}
	return map[string]any{"type": "string", "enum": enum}
}

// Validate checks a raw request body against the dispatch contract and
// decodes it. Returns *ErrInvalidPayload on failure.
func Validate(raw []byte) (Payload, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Payload{}, &ErrInvalidPayload{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compiled()
	if err != nil {
		return Payload{}, &ErrInvalidPayload{Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := schema.Validate(parsed); err != nil {
		return Payload{}, &ErrInvalidPayload{Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, &ErrInvalidPayload{Err: err}
	}
	return p, nil
}

func compiled() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not Go maps
		// with typed slices. Round-trip through JSON to get one.
		defBytes, err := json.Marshal(PayloadSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(payloadSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(payloadSchemaURL)
	})
	return compiledSchema, compileErr
}
