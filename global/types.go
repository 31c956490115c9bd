/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import "time"

// Persona represents a saved tutor configuration. Records are immutable once
// created: edits produce a new record with a new id, and deletion is by id.
type Persona struct {
	ID                  string             `json:"id"`
	CreatedAt           time.Time          `json:"created_at"`
	Name                string             `json:"name"`
	Title               string             `json:"title,omitempty"`
	Background          string             `json:"background,omitempty"`
	Subject             string             `json:"subject"`
	Level               string             `json:"level"`
	Personality         map[string]float64 `json:"personality"`
	VoiceSettings       VoiceSettings      `json:"voice_settings"`
	DocumentRefs        []DocumentRef      `json:"document_refs,omitempty"`
	UseGeneralKnowledge bool               `json:"use_general_knowledge"`
	Version             string             `json:"version"`
}

// Clone returns a deep copy of the persona. Callers that overlay preset
// fields mutate the copy, never the original.
func (p Persona) Clone() Persona {
	out := p
	if p.Personality != nil {
		out.Personality = make(map[string]float64, len(p.Personality))
		for k, v := range p.Personality {
			out.Personality[k] = v
		}
	}
	if p.DocumentRefs != nil {
		out.DocumentRefs = make([]DocumentRef, len(p.DocumentRefs))
		copy(out.DocumentRefs, p.DocumentRefs)
	}
	return out
}

// VoiceSettings controls the speech collaborator's synthesis parameters.
type VoiceSettings struct {
	Speed    float64 `json:"speed"`
	Pitch    float64 `json:"pitch"`
	Volume   float64 `json:"volume"`
	AutoPlay bool    `json:"auto_play"`
}

// DefaultVoiceSettings returns the voice parameters used when a persona or
// preset does not specify its own.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Speed:    1.0,
		Pitch:    1.0,
		Volume:   0.8,
		AutoPlay: true,
	}
}

// DocumentRef describes one piece of imported reference material. The core
// treats the content as opaque; Path points at the stored (possibly
// markdown-converted) copy.
type DocumentRef struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Path string `json:"path,omitempty"`
}

// Preset is a named, reusable partial persona. Built-in presets carry no
// stamps; user presets get created_at/updated_at in PresetStampLayout form.
type Preset struct {
	Subject       string             `json:"subject,omitempty"`
	Level         string             `json:"level,omitempty"`
	Personality   map[string]float64 `json:"personality,omitempty"`
	VoiceSettings *VoiceSettings     `json:"voice_settings,omitempty"`
	Description   string             `json:"description,omitempty"`
	CreatedAt     string             `json:"created_at,omitempty"`
	UpdatedAt     string             `json:"updated_at,omitempty"`
}

// Clone returns a deep copy of the preset.
func (p Preset) Clone() Preset {
	out := p
	if p.Personality != nil {
		out.Personality = make(map[string]float64, len(p.Personality))
		for k, v := range p.Personality {
			out.Personality[k] = v
		}
	}
	if p.VoiceSettings != nil {
		vs := *p.VoiceSettings
		out.VoiceSettings = &vs
	}
	return out
}

// Snapshot is the full backup envelope. The teachers/presets key names are
// the on-disk contract for the export/restore round trip.
type Snapshot struct {
	Teachers   []Persona         `json:"teachers"`
	Presets    map[string]Preset `json:"presets"`
	BackupDate string            `json:"backup_date"`
}

// PersonaExport is the single-record export envelope.
type PersonaExport struct {
	TeacherName string  `json:"teacher_name"`
	Config      Persona `json:"config"`
	ExportDate  string  `json:"export_date"`
	Version     string  `json:"version"`
}

// PresetExport is the single-preset export envelope.
type PresetExport struct {
	PresetName    string `json:"preset_name"`
	PresetConfig  Preset `json:"preset_config"`
	ExportVersion string `json:"export_version"`
}

// StorageStats summarizes the persisted collections.
type StorageStats struct {
	PersonaCount     int    `json:"persona_count"`
	PresetCount      int    `json:"preset_count"`
	PersonaFileBytes int64  `json:"persona_file_bytes"`
	PresetFileBytes  int64  `json:"preset_file_bytes"`
	Backend          string `json:"backend"`
}

// PersonaListResponse is the wire shape for persona_list and persona_recent.
type PersonaListResponse struct {
	Personas      []Persona `json:"personas"`
	TotalCount    int       `json:"total_count"`
	ReturnedCount int       `json:"returned_count"`
}

// PresetListResponse is the wire shape for preset_list.
type PresetListResponse struct {
	Names         []string `json:"names"`
	BuiltinCount  int      `json:"builtin_count"`
	UserCount     int      `json:"user_count"`
	ReturnedCount int      `json:"returned_count"`
}

// Suggestion is one scored preset recommendation.
type Suggestion struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ChatTurn is a single entry of conversation history handed to the chat
// collaborator. Role is "user" or "assistant"; other roles are dropped.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Voice describes one synthesis voice offered by the speech collaborator.
type Voice struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
}
