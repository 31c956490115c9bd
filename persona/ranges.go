/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package persona

import (
	"time"

	"github.com/google/uuid"

	"github.com/PivotLLM/Preceptor/global"
)

// TraitRange describes one personality dimension for clients rendering
// sliders or validating input.
type TraitRange struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// VoiceRange describes one voice parameter.
type VoiceRange struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

var traitLabels = map[string]string{
	global.TraitFriendliness:         "친근함",
	global.TraitHumorLevel:           "유머 수준",
	global.TraitEncouragement:        "격려 수준",
	global.TraitInteractionFrequency: "상호작용 빈도",
	global.TraitExplanationDetail:    "설명 상세도",
	global.TraitTheoryVsPractice:     "이론-실습 균형",
	global.TraitSafetyEmphasis:       "안전 강조",
	global.TraitAdaptability:         "적응성",
	global.TraitNaturalSpeech:        "자연스러운 말투",
	global.TraitQuestionSensitivity:  "질문 민감도",
	global.TraitResponseSpeed:        "응답 속도",
	global.TraitVocabularyLevel:      "어휘 수준",
}

// TraitRanges returns every personality dimension in canonical order.
func TraitRanges() []TraitRange {
	ranges := make([]TraitRange, 0, len(global.TraitNames))
	for _, name := range global.TraitNames {
		ranges = append(ranges, TraitRange{
			Name:    name,
			Label:   traitLabels[name],
			Min:     global.TraitMin,
			Max:     global.TraitMax,
			Default: global.TraitDefaults[name],
		})
	}
	return ranges
}

// VoiceRanges returns the voice parameter bounds.
func VoiceRanges() []VoiceRange {
	defaults := global.DefaultVoiceSettings()
	return []VoiceRange{
		{Name: "speed", Label: "속도", Min: global.VoiceSpeedMin, Max: global.VoiceSpeedMax, Default: defaults.Speed, Step: 0.1},
		{Name: "pitch", Label: "높낮이", Min: global.VoicePitchMin, Max: global.VoicePitchMax, Default: defaults.Pitch, Step: 0.1},
		{Name: "volume", Label: "음량", Min: global.VoiceVolumeMin, Max: global.VoiceVolumeMax, Default: defaults.Volume, Step: 0.1},
	}
}

// Defaults returns a complete starting persona. Clients edit it and pass the
// result back through Assemble or straight to storage.
func Defaults() global.Persona {
	personality := make(map[string]float64, len(global.TraitDefaults))
	for name, score := range global.TraitDefaults {
		personality[name] = score
	}

	return global.Persona{
		ID:                  uuid.NewString(),
		CreatedAt:           time.Now(),
		Name:                "김선생",
		Subject:             "수학",
		Level:               "고등학교",
		Personality:         personality,
		VoiceSettings:       global.DefaultVoiceSettings(),
		UseGeneralKnowledge: true,
		Version:             global.PersonaSchemaVersion,
	}
}
