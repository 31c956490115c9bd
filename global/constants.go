/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import "fmt"

//goland:noinspection GoCommentStart,GoUnusedConst,GoUnusedConst,GoUnusedConst
const (
	// Configuration constants
	ConfigEnvVar          = "PRECEPTOR_CONFIG"
	DefaultBaseDir        = "~/.preceptor"
	DefaultConfigFileName = "config.json"
	DefaultDataDir        = "data"
	DefaultLogFileName    = "preceptor.log"

	// MCP Tool Names - Personas
	ToolPersonaCreate       = "persona_create"
	ToolPersonaGet          = "persona_get"
	ToolPersonaList         = "persona_list"
	ToolPersonaRecent       = "persona_recent"
	ToolPersonaDelete       = "persona_delete"
	ToolPersonaValidate     = "persona_validate"
	ToolPersonaExport       = "persona_export"
	ToolPersonaImport       = "persona_import"
	ToolPersonaSanitizeName = "persona_sanitize_name"

	// MCP Tool Names - Presets
	ToolPresetList    = "preset_list"
	ToolPresetGet     = "preset_get"
	ToolPresetSave    = "preset_save"
	ToolPresetDelete  = "preset_delete"
	ToolPresetSuggest = "preset_suggest"
	ToolPresetApply   = "preset_apply"
	ToolPresetProfile = "preset_profile"
	ToolPresetExport  = "preset_export"
	ToolPresetImport  = "preset_import"

	// MCP Tool Names - Prompt Composition
	ToolPromptCompose = "prompt_compose"
	ToolLessonCompose = "lesson_compose"

	// MCP Tool Names - Chat Collaborator
	ToolChatSend = "chat_send"
	ToolChatPing = "chat_ping"

	// MCP Tool Names - Speech Collaborator
	ToolSpeechPrepare    = "speech_prepare"
	ToolSpeechSynthesize = "speech_synthesize"
	ToolSpeechVoices     = "speech_voices"

	// MCP Tool Names - Reference Documents
	ToolDocumentImport = "document_import"
	ToolDocumentList   = "document_list"
	ToolDocumentRemove = "document_remove"

	// MCP Tool Names - Storage
	ToolBackupExport   = "backup_export"
	ToolBackupRestore  = "backup_restore"
	ToolStorageStats   = "storage_stats"
	ToolStorageCleanup = "storage_cleanup"

	// MCP Tool Names - System
	ToolHealth = "health"

	// Persona Schema Version (embedded in every record)
	PersonaSchemaVersion = "1.0"

	// Export envelope version for single persona/preset exports
	ExportVersion = "1.0"

	// File Constants (on-disk contract within the data directory)
	PersonaFileName = "personas.json"
	PresetFileName  = "presets.json"
	DocumentsDir    = "documents"
	LockSuffix      = ".lock"
	MetaSuffix      = ".meta.json"

	// Preset timestamp layout (on-disk contract for created_at/updated_at)
	PresetStampLayout = "2006-01-02 15:04"

	// Default Values
	DefaultMaxPersonas   = 20 // retention cap: most recent N records kept
	MaxPersonasLimit     = 500
	DefaultCleanupDays   = 30 // age cutoff for storage_cleanup
	DefaultHistoryWindow = 10 // recent chat turns forwarded to the collaborator
	MaxHistoryWindow     = 50
	DefaultSuggestLimit  = 5  // preset suggestions returned
	DefaultRecentLimit   = 10 // recent personas returned when no limit given

	// Backup timestamp layout (backup_date in snapshot documents)
	BackupStampLayout = "2006-01-02T15:04:05"

	// Chat collaborator defaults
	DefaultChatEndpoint    = "https://api.anthropic.com"
	DefaultChatModel       = "claude-3-sonnet-20240229"
	DefaultChatMaxTokens   = 2000
	DefaultChatTemperature = 0.7

	// Speech collaborator defaults
	DefaultSpeechEndpoint = "https://texttospeech.googleapis.com"
	DefaultSpeechLanguage = "ko-KR"
	DefaultSpeechVoice    = "ko-KR-Standard-A"

	// Document import limits
	DefaultMaxDocumentMB  = 10
	DefaultMaxDocsPerName = 5

	// Trait value bounds
	TraitMin = 0.0
	TraitMax = 100.0

	// Voice setting bounds
	VoiceSpeedMin  = 0.5
	VoiceSpeedMax  = 2.0
	VoicePitchMin  = 0.5
	VoicePitchMax  = 2.0
	VoiceVolumeMin = 0.1
	VoiceVolumeMax = 1.0

	// Log Levels
	LogLevelDebug = "DEBUG"
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
	LogLevelFatal = "FATAL"
)

// Personality trait names. The fixed 12-trait set; every persona carries all
// of them with values in [TraitMin, TraitMax].
const (
	TraitFriendliness         = "friendliness"
	TraitHumorLevel           = "humor_level"
	TraitEncouragement        = "encouragement"
	TraitInteractionFrequency = "interaction_frequency"
	TraitExplanationDetail    = "explanation_detail"
	TraitTheoryVsPractice     = "theory_vs_practice"
	TraitSafetyEmphasis       = "safety_emphasis"
	TraitAdaptability         = "adaptability"
	TraitNaturalSpeech        = "natural_speech"
	TraitQuestionSensitivity  = "question_sensitivity"
	TraitResponseSpeed        = "response_speed"
	TraitVocabularyLevel      = "vocabulary_level"
)

// TraitNames lists the 12 traits in canonical order. Prompt rendering and
// validation reporting follow this order.
var TraitNames = []string{
	TraitFriendliness,
	TraitHumorLevel,
	TraitEncouragement,
	TraitInteractionFrequency,
	TraitExplanationDetail,
	TraitTheoryVsPractice,
	TraitSafetyEmphasis,
	TraitAdaptability,
	TraitNaturalSpeech,
	TraitQuestionSensitivity,
	TraitResponseSpeed,
	TraitVocabularyLevel,
}

// TraitDefaults holds the default value for each trait. Zero or missing
// traits are filled from this table when a persona is assembled.
var TraitDefaults = map[string]float64{
	TraitFriendliness:         70,
	TraitHumorLevel:           30,
	TraitEncouragement:        80,
	TraitInteractionFrequency: 60,
	TraitExplanationDetail:    70,
	TraitTheoryVsPractice:     50,
	TraitSafetyEmphasis:       90,
	TraitAdaptability:         75,
	TraitNaturalSpeech:        80,
	TraitQuestionSensitivity:  70,
	TraitResponseSpeed:        60,
	TraitVocabularyLevel:      50,
}

// EducationLevels lists the canonical level values in ascending order.
// The Korean values are the on-disk contract shared with the built-in
// preset catalog.
var EducationLevels = []string{
	"초등학교",
	"중학교",
	"고등학교",
	"대학교",
	"대학원",
}

// Subjects lists the canonical subject set. Free-text subjects are accepted
// everywhere; this set drives selection surfaces and suggestion matching.
var Subjects = []string{
	"물리학",
	"화학",
	"생물학",
	"수학",
	"지구과학",
	"공학",
	"컴퓨터과학",
	"의학",
	"약학",
	"간호학",
	"기타",
}

// ValidateRetention validates and normalizes a retention cap.
// Returns the validated value or an error if out of bounds.
// If retention is 0, returns DefaultMaxPersonas.
func ValidateRetention(retention int) (int, error) {
	if retention == 0 {
		return DefaultMaxPersonas, nil
	}
	if retention < 1 {
		return 0, fmt.Errorf("max_personas must be at least 1")
	}
	if retention > MaxPersonasLimit {
		return 0, fmt.Errorf("max_personas must be at most %d", MaxPersonasLimit)
	}
	return retention, nil
}

// ValidateHistoryWindow validates and normalizes a chat history window.
// Returns the validated value or an error if out of bounds.
// If window is 0, returns DefaultHistoryWindow.
func ValidateHistoryWindow(window int) (int, error) {
	if window == 0 {
		return DefaultHistoryWindow, nil
	}
	if window < 1 {
		return 0, fmt.Errorf("history_window must be at least 1")
	}
	if window > MaxHistoryWindow {
		return 0, fmt.Errorf("history_window must be at most %d", MaxHistoryWindow)
	}
	return window, nil
}

// ValidateCleanupDays validates and normalizes a cleanup age cutoff.
// If days is 0, returns DefaultCleanupDays.
func ValidateCleanupDays(days int) (int, error) {
	if days == 0 {
		return DefaultCleanupDays, nil
	}
	if days < 1 {
		return 0, fmt.Errorf("cleanup_days must be at least 1")
	}
	return days, nil
}

// IsEducationLevel reports whether level is one of the canonical values.
func IsEducationLevel(level string) bool {
	for _, l := range EducationLevels {
		if l == level {
			return true
		}
	}
	return false
}

// IsTraitName reports whether name is one of the canonical 12 traits.
func IsTraitName(name string) bool {
	for _, t := range TraitNames {
		if t == name {
			return true
		}
	}
	return false
}
