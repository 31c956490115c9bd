/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package persona

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/PivotLLM/Preceptor/global"
)

// requiredFields must be present in every persona or preset document.
var requiredFields = []string{"subject", "level", "personality"}

// requiredPersonality are the trait sub-fields a document must carry. Other
// traits are optional but still range-checked when present.
var requiredPersonality = []string{
	global.TraitFriendliness,
	global.TraitHumorLevel,
	global.TraitEncouragement,
	global.TraitExplanationDetail,
}

// ValidateDocument checks a persona or preset in its JSON document form and
// collects every violation instead of stopping at the first. Messages are
// Korean, matching the catalog's language.
func ValidateDocument(doc map[string]interface{}) (bool, []string) {
	var errors []string

	for _, field := range requiredFields {
		if _, ok := doc[field]; !ok {
			errors = append(errors, fmt.Sprintf("필수 필드 '%s'가 누락되었습니다.", field))
		}
	}

	if raw, ok := doc["personality"]; ok {
		personality, ok := raw.(map[string]interface{})
		if !ok {
			personality = map[string]interface{}{}
		}
		errors = append(errors, validatePersonality(personality)...)
	}

	if raw, ok := doc["voice_settings"]; ok {
		if voice, ok := raw.(map[string]interface{}); ok {
			errors = append(errors, validateVoice(voice)...)
		}
	}

	return len(errors) == 0, errors
}

func validatePersonality(personality map[string]interface{}) []string {
	var errors []string

	required := make(map[string]bool, len(requiredPersonality))
	for _, field := range requiredPersonality {
		required[field] = true

		value, ok := personality[field]
		if !ok {
			errors = append(errors, fmt.Sprintf("성격 설정 '%s'가 누락되었습니다.", field))
			continue
		}
		if !inTraitRange(value) {
			errors = append(errors, fmt.Sprintf("성격 설정 '%s'는 0-100 사이의 숫자여야 합니다.", field))
		}
	}

	// Optional traits are still range-checked when present
	extras := make([]string, 0, len(personality))
	for field := range personality {
		if !required[field] {
			extras = append(extras, field)
		}
	}
	sort.Strings(extras)

	for _, field := range extras {
		if !inTraitRange(personality[field]) {
			errors = append(errors, fmt.Sprintf("성격 설정 '%s'는 0-100 사이의 숫자여야 합니다.", field))
		}
	}

	return errors
}

func validateVoice(voice map[string]interface{}) []string {
	var errors []string

	if value, ok := voice["speed"]; ok {
		if _, ok := asNumber(value); !ok {
			errors = append(errors, "음성 속도는 숫자여야 합니다.")
		}
	}
	if value, ok := voice["pitch"]; ok {
		if _, ok := asNumber(value); !ok {
			errors = append(errors, "음성 높이는 숫자여야 합니다.")
		}
	}

	return errors
}

// Validate applies the document rules to a full persona record. The full
// record shape additionally requires a name; a record without one is
// rejected even though presets carry no name field.
func Validate(p global.Persona) (bool, []string) {
	data, err := json.Marshal(p)
	if err != nil {
		return false, []string{fmt.Sprintf("설정을 검사할 수 없습니다: %v", err)}
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, []string{fmt.Sprintf("설정을 검사할 수 없습니다: %v", err)}
	}

	_, errors := ValidateDocument(doc)
	if p.Name == "" {
		errors = append([]string{fmt.Sprintf("필수 필드 '%s'가 누락되었습니다.", "name")}, errors...)
	}

	return len(errors) == 0, errors
}

func inTraitRange(value interface{}) bool {
	score, ok := asNumber(value)
	return ok && score >= global.TraitMin && score <= global.TraitMax
}

// asNumber accepts the numeric shapes a document can arrive with: float64
// from JSON decoding, int variants from maps built in code.
func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
