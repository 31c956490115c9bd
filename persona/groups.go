/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package persona assembles, sanitizes, and validates tutor persona records.
// Everything here is pure: no storage, no I/O, no hidden state.
package persona

import (
	"github.com/PivotLLM/Preceptor/global"
)

// CoreSettings holds the teaching-behavior traits.
type CoreSettings struct {
	ExplanationDetail   float64 `json:"explanation_detail"`
	QuestionSensitivity float64 `json:"question_sensitivity"`
	SafetyEmphasis      float64 `json:"safety_emphasis"`
	TheoryVsPractice    float64 `json:"theory_vs_practice"`
}

// StyleSettings holds the conversation-style traits.
type StyleSettings struct {
	NaturalSpeech float64 `json:"natural_speech"`
	Adaptability  float64 `json:"adaptability"`
	Encouragement float64 `json:"encouragement"`
}

// PersonalityTuning holds the character traits. Together with CoreSettings
// and StyleSettings it covers the full trait set exactly once.
type PersonalityTuning struct {
	Friendliness         float64 `json:"friendliness"`
	HumorLevel           float64 `json:"humor_level"`
	InteractionFrequency float64 `json:"interaction_frequency"`
	ResponseSpeed        float64 `json:"response_speed"`
	VocabularyLevel      float64 `json:"vocabulary_level"`
}

// SpecialtySettings selects what the persona teaches. A non-empty
// CustomSubject wins over Subject.
type SpecialtySettings struct {
	Subject       string `json:"subject"`
	CustomSubject string `json:"custom_subject,omitempty"`
	Level         string `json:"level"`
}

// DocumentSettings references imported teaching material.
type DocumentSettings struct {
	Refs                []global.DocumentRef `json:"refs,omitempty"`
	UseGeneralKnowledge bool                 `json:"use_general_knowledge"`
}

// IdentitySettings names the persona.
type IdentitySettings struct {
	Name       string `json:"name"`
	Title      string `json:"title,omitempty"`
	Background string `json:"background,omitempty"`
}

// traits flattens the three numeric groups into a trait map. Zero scores
// fall back to the trait defaults so an untouched slider doesn't produce a
// persona with a zeroed dimension.
func traits(core CoreSettings, style StyleSettings, tuning PersonalityTuning) map[string]float64 {
	m := map[string]float64{
		global.TraitExplanationDetail:    core.ExplanationDetail,
		global.TraitQuestionSensitivity:  core.QuestionSensitivity,
		global.TraitSafetyEmphasis:       core.SafetyEmphasis,
		global.TraitTheoryVsPractice:     core.TheoryVsPractice,
		global.TraitNaturalSpeech:        style.NaturalSpeech,
		global.TraitAdaptability:         style.Adaptability,
		global.TraitEncouragement:        style.Encouragement,
		global.TraitFriendliness:         tuning.Friendliness,
		global.TraitHumorLevel:           tuning.HumorLevel,
		global.TraitInteractionFrequency: tuning.InteractionFrequency,
		global.TraitResponseSpeed:        tuning.ResponseSpeed,
		global.TraitVocabularyLevel:      tuning.VocabularyLevel,
	}

	for name, score := range m {
		if score == 0 {
			m[name] = global.TraitDefaults[name]
		}
	}

	return m
}
