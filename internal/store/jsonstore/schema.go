package jsonstore

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// sessionSchema describes the on-disk document. id and notes are optional so
// files written before ids existed still load.
var sessionSchema = map[string]interface{}{
	"type": "array",
	"items": map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id":               map[string]interface{}{"type": "string"},
			"date":             map[string]interface{}{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
			"instrument":       map[string]interface{}{"type": "string"},
			"piece":            map[string]interface{}{"type": "string"},
			"duration_minutes": map[string]interface{}{"type": "integer"},
			"notes":            map[string]interface{}{"type": "string"},
		},
		"required": []interface{}{"date", "instrument", "piece", "duration_minutes"},
	},
}

var compiledSchema *gojsonschema.Schema

func init() {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(sessionSchema))
	if err != nil {
		panic(fmt.Sprintf("jsonstore: bad session schema: %v", err))
	}
	compiledSchema = schema
}

func validateDocument(raw []byte) error {
	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrCorruptStore, strings.Join(msgs, "; "))
	}
	return nil
}
