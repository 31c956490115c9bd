/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package schema

// schemaSources maps schema names to their JSON schema definitions.
// Envelope schemas check structure only; payload contents get field-level
// validation elsewhere so the user sees Korean messages for those.
var schemaSources = map[string]string{
	NameSnapshot:      snapshotSchema,
	NamePersonaExport: personaExportSchema,
	NamePresetExport:  presetExportSchema,
}

// snapshotSchema describes a full backup: every stored persona plus the
// user-defined presets keyed by name.
const snapshotSchema = `{
  "type": "object",
  "required": ["teachers", "presets"],
  "properties": {
    "teachers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1}
        }
      }
    },
    "presets": {
      "type": "object",
      "additionalProperties": {"type": "object"}
    },
    "backup_date": {"type": "string"}
  }
}`

// personaExportSchema describes a single-persona export envelope.
const personaExportSchema = `{
  "type": "object",
  "required": ["teacher_name", "config"],
  "properties": {
    "teacher_name": {"type": "string", "minLength": 1},
    "config": {"type": "object"},
    "export_date": {"type": "string"},
    "version": {"type": "string"}
  }
}`

// presetExportSchema describes a single-preset export envelope.
const presetExportSchema = `{
  "type": "object",
  "required": ["preset_name", "preset_config"],
  "properties": {
    "preset_name": {"type": "string", "minLength": 1},
    "preset_config": {"type": "object"},
    "export_version": {"type": "string"}
  }
}`
