/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package persona

import (
	"strings"
	"testing"

	"github.com/PivotLLM/Preceptor/global"
)

func validDocument() map[string]interface{} {
	return map[string]interface{}{
		"subject": "화학",
		"level":   "고등학교",
		"personality": map[string]interface{}{
			"friendliness":       float64(80),
			"humor_level":        float64(50),
			"encouragement":      float64(85),
			"explanation_detail": float64(70),
		},
		"voice_settings": map[string]interface{}{
			"speed": 1.1,
			"pitch": 1.0,
		},
	}
}

func TestValidateDocument(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		ok, errors := ValidateDocument(validDocument())
		if !ok {
			t.Errorf("Expected valid document, got errors: %v", errors)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		doc := validDocument()
		delete(doc, "subject")

		ok, errors := ValidateDocument(doc)
		if ok {
			t.Fatal("Expected validation failure")
		}
		if !containsMessage(errors, "필수 필드 'subject'가 누락되었습니다.") {
			t.Errorf("Expected missing subject message, got: %v", errors)
		}
	})

	t.Run("missing humor_level names the field", func(t *testing.T) {
		doc := validDocument()
		delete(doc["personality"].(map[string]interface{}), "humor_level")

		ok, errors := ValidateDocument(doc)
		if ok {
			t.Fatal("Expected validation failure")
		}
		if !containsMessage(errors, "성격 설정 'humor_level'가 누락되었습니다.") {
			t.Errorf("Expected missing humor_level message, got: %v", errors)
		}
	})

	t.Run("out of range trait", func(t *testing.T) {
		doc := validDocument()
		doc["personality"].(map[string]interface{})["friendliness"] = float64(150)

		ok, errors := ValidateDocument(doc)
		if ok {
			t.Fatal("Expected validation failure")
		}
		if !containsMessage(errors, "성격 설정 'friendliness'는 0-100 사이의 숫자여야 합니다.") {
			t.Errorf("Expected range message for friendliness, got: %v", errors)
		}
	})

	t.Run("non-numeric trait", func(t *testing.T) {
		doc := validDocument()
		doc["personality"].(map[string]interface{})["encouragement"] = "높음"

		ok, errors := ValidateDocument(doc)
		if ok {
			t.Fatal("Expected validation failure")
		}
		if !containsMessage(errors, "성격 설정 'encouragement'는 0-100 사이의 숫자여야 합니다.") {
			t.Errorf("Expected numeric message for encouragement, got: %v", errors)
		}
	})

	t.Run("optional trait still range checked", func(t *testing.T) {
		doc := validDocument()
		doc["personality"].(map[string]interface{})["safety_emphasis"] = float64(250)

		ok, errors := ValidateDocument(doc)
		if ok {
			t.Fatal("Expected validation failure")
		}
		if !containsMessage(errors, "성격 설정 'safety_emphasis'는 0-100 사이의 숫자여야 합니다.") {
			t.Errorf("Expected range message for safety_emphasis, got: %v", errors)
		}
	})

	t.Run("personality not an object", func(t *testing.T) {
		doc := validDocument()
		doc["personality"] = "friendly"

		ok, errors := ValidateDocument(doc)
		if ok {
			t.Fatal("Expected validation failure")
		}
		// Every required sub-field reported missing
		if len(errors) != len(requiredPersonality) {
			t.Errorf("Expected %d errors, got %d: %v", len(requiredPersonality), len(errors), errors)
		}
	})

	t.Run("voice speed must be numeric", func(t *testing.T) {
		doc := validDocument()
		doc["voice_settings"].(map[string]interface{})["speed"] = "빠르게"

		ok, errors := ValidateDocument(doc)
		if ok {
			t.Fatal("Expected validation failure")
		}
		if !containsMessage(errors, "음성 속도는 숫자여야 합니다.") {
			t.Errorf("Expected voice speed message, got: %v", errors)
		}
	})

	t.Run("voice pitch must be numeric", func(t *testing.T) {
		doc := validDocument()
		doc["voice_settings"].(map[string]interface{})["pitch"] = true

		ok, errors := ValidateDocument(doc)
		if ok {
			t.Fatal("Expected validation failure")
		}
		if !containsMessage(errors, "음성 높이는 숫자여야 합니다.") {
			t.Errorf("Expected voice pitch message, got: %v", errors)
		}
	})

	t.Run("all violations collected", func(t *testing.T) {
		doc := map[string]interface{}{
			"personality": map[string]interface{}{
				"friendliness": float64(-10),
			},
		}

		ok, errors := ValidateDocument(doc)
		if ok {
			t.Fatal("Expected validation failure")
		}
		// Missing subject, missing level, bad friendliness, three missing sub-fields
		if len(errors) != 6 {
			t.Errorf("Expected 6 errors, got %d: %v", len(errors), errors)
		}
	})

	t.Run("integer values accepted", func(t *testing.T) {
		doc := validDocument()
		doc["personality"].(map[string]interface{})["friendliness"] = 80

		ok, errors := ValidateDocument(doc)
		if !ok {
			t.Errorf("Expected int trait value to pass, got errors: %v", errors)
		}
	})

	t.Run("boundary values accepted", func(t *testing.T) {
		doc := validDocument()
		personality := doc["personality"].(map[string]interface{})
		personality["friendliness"] = float64(0)
		personality["humor_level"] = float64(100)

		ok, errors := ValidateDocument(doc)
		if !ok {
			t.Errorf("Expected boundary values to pass, got errors: %v", errors)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		ok, errors := Validate(Defaults())
		if !ok {
			t.Errorf("Expected default persona to validate, got errors: %v", errors)
		}
	})

	t.Run("assembled persona is valid", func(t *testing.T) {
		p := Assemble(CoreSettings{}, StyleSettings{}, PersonalityTuning{},
			SpecialtySettings{Subject: "수학", Level: "중학교"},
			DocumentSettings{}, IdentitySettings{Name: "박선생"}, global.VoiceSettings{})

		ok, errors := Validate(p)
		if !ok {
			t.Errorf("Expected assembled persona to validate, got errors: %v", errors)
		}
	})

	t.Run("missing name fails", func(t *testing.T) {
		p := Defaults()
		p.Name = ""

		ok, errors := Validate(p)
		if ok {
			t.Fatal("Expected validation failure")
		}
		if !containsMessage(errors, "필수 필드 'name'가 누락되었습니다.") {
			t.Errorf("Expected missing name message, got: %v", errors)
		}
	})

	t.Run("out of range trait fails naming the field", func(t *testing.T) {
		p := Defaults()
		p.Personality[global.TraitResponseSpeed] = 180

		ok, errors := Validate(p)
		if ok {
			t.Fatal("Expected validation failure")
		}
		found := false
		for _, msg := range errors {
			if strings.Contains(msg, global.TraitResponseSpeed) {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected an error naming response_speed, got: %v", errors)
		}
	})
}

func containsMessage(errors []string, want string) bool {
	for _, msg := range errors {
		if msg == want {
			return true
		}
	}
	return false
}
