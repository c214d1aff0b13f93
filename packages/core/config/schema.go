package config

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kyrosle/xdiff/packages/errdef"
)

const requestSchemaDef = `{
  "type": "object",
  "required": ["url"],
  "properties": {
    "method": {"type": "string"},
    "url": {"type": "string", "minLength": 1},
    "params": {"type": ["object", "null"]},
    "headers": {
      "type": ["object", "null"],
      "additionalProperties": {"type": ["string", "number", "boolean"]}
    },
    "body": {"type": ["object", "null"]}
  }
}`

const responseSchemaDef = `{
  "type": ["object", "null"],
  "properties": {
    "skip_headers": {"type": ["array", "null"], "items": {"type": "string"}},
    "skip_body": {"type": ["array", "null"], "items": {"type": "string"}}
  }
}`

var requestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {"request": ` + requestSchemaDef + `},
  "$ref": "#/definitions/request"
}`

var diffSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "request": ` + requestSchemaDef + `,
    "response": ` + responseSchemaDef + `
  },
  "type": "object",
  "required": ["req1", "req2"],
  "properties": {
    "req1": {"$ref": "#/definitions/request"},
    "req2": {"$ref": "#/definitions/request"},
    "res": {"$ref": "#/definitions/response"}
  }
}`

// validateShape checks one raw profile against schema. Errors name the
// offending field, e.g. "req1.params: Invalid type. Expected: object".
func validateShape(schema *gojsonschema.Schema, name string, raw any) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return errdef.Wrap(errdef.CodeValidation, err, "failed to validate profile: %s", name)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return errdef.New(errdef.CodeValidation, "failed to validate profile: %s: %s", name, strings.Join(problems, "; "))
}

func compileSchema(def string) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(def))
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeConfig, err, "compile profile schema")
	}
	return schema, nil
}
