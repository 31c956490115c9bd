/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package schema provides JSON schema validation for import and restore
// envelopes. Persona and preset payloads carried inside an envelope are
// validated separately with field-level Korean messages.
package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/PivotLLM/Preceptor/logging"
)

// Schema names accepted by ValidateNamed
const (
	NameSnapshot      = "snapshot"
	NamePersonaExport = "persona_export"
	NamePresetExport  = "preset_export"
)

// Validator validates JSON documents against the built-in envelope schemas
type Validator struct {
	logger      *logging.Logger
	schemaCache map[string]*gojsonschema.Schema
}

// Result represents the result of a validation
type Result struct {
	Valid     bool     `json:"valid"`
	Errors    []string `json:"errors,omitempty"`     // User-friendly error messages
	RawErrors []string `json:"raw_errors,omitempty"` // Original error messages from validator
}

// New creates a new Validator
func New(logger *logging.Logger) *Validator {
	return &Validator{
		logger:      logger,
		schemaCache: make(map[string]*gojsonschema.Schema),
	}
}

// ValidateJSON validates JSON data against a schema string
func (v *Validator) ValidateJSON(data []byte, schemaJSON string) (*Result, error) {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	return buildResult(result), nil
}

// ValidateNamed validates JSON data against one of the built-in schemas,
// compiling and caching the schema on first use
func (v *Validator) ValidateNamed(data []byte, name string) (*Result, error) {
	schema, ok := v.schemaCache[name]
	if !ok {
		source, found := schemaSources[name]
		if !found {
			return nil, fmt.Errorf("unknown schema: %s", name)
		}

		compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		if v.logger != nil {
			v.logger.Debugf("Compiled schema %s", name)
		}
		v.schemaCache[name] = compiled
		schema = compiled
	}

	documentLoader := gojsonschema.NewBytesLoader(data)
	result, err := schema.Validate(documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	return buildResult(result), nil
}

// ValidateSnapshot validates a full backup document
func (v *Validator) ValidateSnapshot(data []byte) (*Result, error) {
	return v.ValidateNamed(data, NameSnapshot)
}

// ValidatePersonaExport validates a single-persona export envelope
func (v *Validator) ValidatePersonaExport(data []byte) (*Result, error) {
	return v.ValidateNamed(data, NamePersonaExport)
}

// ValidatePresetExport validates a single-preset export envelope
func (v *Validator) ValidatePresetExport(data []byte) (*Result, error) {
	return v.ValidateNamed(data, NamePresetExport)
}

// buildResult converts a gojsonschema result into a Result with both raw and
// user-friendly error messages
func buildResult(result *gojsonschema.Result) *Result {
	r := &Result{
		Valid: result.Valid(),
	}

	if !result.Valid() {
		for _, desc := range result.Errors() {
			rawError := desc.String()
			r.RawErrors = append(r.RawErrors, rawError)
			r.Errors = append(r.Errors, formatValidationError(rawError))
		}
	}

	return r
}

// formatValidationError converts technical validation errors to user-friendly messages
func formatValidationError(rawError string) string {
	// Common patterns from gojsonschema:
	// "(root): field is required" -> "Missing required field: field"
	// "(root): Additional property x is not allowed" -> "Unexpected field: x (not allowed by schema)"
	// "field: Invalid type. Expected: string, given: number" -> "Field 'field': expected string, got number"
	// "(root).field: field is required" -> "Missing required field: field"

	// Handle "is required" errors
	if strings.Contains(rawError, "is required") {
		// Extract the field name - it's usually after ": " or after "(root)."
		parts := strings.SplitN(rawError, ": ", 2)
		if len(parts) == 2 {
			fieldPart := parts[1]
			fieldName := strings.TrimSuffix(fieldPart, " is required")
			// Clean up context prefix like "(root)." or "(root)"
			if strings.HasPrefix(parts[0], "(root).") {
				context := strings.TrimPrefix(parts[0], "(root).")
				return fmt.Sprintf("Missing required field: %s (in %s)", fieldName, context)
			}
			return fmt.Sprintf("Missing required field: %s", fieldName)
		}
	}

	// Handle "Additional property" errors
	if strings.Contains(rawError, "Additional property") {
		// "(root): Additional property x is not allowed"
		parts := strings.SplitN(rawError, "Additional property ", 2)
		if len(parts) == 2 {
			fieldPart := strings.TrimSuffix(parts[1], " is not allowed")
			return fmt.Sprintf("Unexpected field: %s (not allowed by schema)", fieldPart)
		}
	}

	// Handle "Invalid type" errors
	if strings.Contains(rawError, "Invalid type") {
		// "field: Invalid type. Expected: string, given: number"
		parts := strings.SplitN(rawError, ": Invalid type. ", 2)
		if len(parts) == 2 {
			field := parts[0]
			if field == "(root)" {
				field = "root object"
			}
			typeInfo := strings.ReplaceAll(parts[1], "Expected: ", "expected ")
			typeInfo = strings.ReplaceAll(typeInfo, ", given: ", ", got ")
			return fmt.Sprintf("Field '%s': %s", field, typeInfo)
		}
	}

	// Handle enum errors
	if strings.Contains(rawError, "must be one of the following") {
		parts := strings.SplitN(rawError, ": ", 2)
		if len(parts) == 2 {
			field := parts[0]
			if field == "(root)" {
				field = "root value"
			}
			return fmt.Sprintf("Field '%s': %s", field, parts[1])
		}
	}

	// Default: clean up (root) prefix at minimum
	if strings.HasPrefix(rawError, "(root): ") {
		return strings.TrimPrefix(rawError, "(root): ")
	}
	if strings.HasPrefix(rawError, "(root).") {
		return strings.TrimPrefix(rawError, "(root).")
	}

	return rawError
}
