/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package preset

import (
	"fmt"
	"testing"

	"github.com/PivotLLM/Preceptor/global"
)

func TestSuggest(t *testing.T) {
	catalog, _ := newTestCatalog(t)

	t.Run("exact subject and level ranks first", func(t *testing.T) {
		suggestions := catalog.Suggest("화학", "고등학교")
		if len(suggestions) == 0 {
			t.Fatal("Expected at least one suggestion")
		}
		if suggestions[0].Name != "화학 실험 조교" {
			t.Errorf("Expected 화학 실험 조교 first, got %s", suggestions[0].Name)
		}
		if suggestions[0].Score != 4 {
			t.Errorf("Expected score 4, got %d", suggestions[0].Score)
		}
	})

	t.Run("empty query yields nothing", func(t *testing.T) {
		suggestions := catalog.Suggest("", "")
		if len(suggestions) != 0 {
			t.Errorf("Expected no suggestions, got %v", suggestions)
		}
	})

	t.Run("no match yields nothing", func(t *testing.T) {
		suggestions := catalog.Suggest("음악", "유치원")
		if len(suggestions) != 0 {
			t.Errorf("Expected no suggestions, got %v", suggestions)
		}
	})

	t.Run("substring level matches", func(t *testing.T) {
		suggestions := catalog.Suggest("", "대학")
		if len(suggestions) != 3 {
			t.Fatalf("Expected 3 suggestions, got %d: %v", len(suggestions), suggestions)
		}

		// Equal scores keep catalog order
		expected := []string{"물리 교수님", "생물학 박사", "공학 멘토"}
		for i, want := range expected {
			if suggestions[i].Name != want {
				t.Errorf("Expected %s at position %d, got %s", want, i, suggestions[i].Name)
			}
			if suggestions[i].Score != 1 {
				t.Errorf("Expected score 1 for %s, got %d", want, suggestions[i].Score)
			}
		}
	})

	t.Run("case-insensitive match", func(t *testing.T) {
		if err := catalog.SaveUserPreset("Chemistry Lab", presetFor(t, "Chemistry", "College")); err != nil {
			t.Fatalf("SaveUserPreset failed: %v", err)
		}

		suggestions := catalog.Suggest("chemistry", "college")
		if len(suggestions) != 1 {
			t.Fatalf("Expected 1 suggestion, got %d: %v", len(suggestions), suggestions)
		}
		if suggestions[0].Name != "Chemistry Lab" || suggestions[0].Score != 4 {
			t.Errorf("Expected Chemistry Lab with score 4, got %+v", suggestions[0])
		}
	})

	t.Run("capped at five", func(t *testing.T) {
		for i := 0; i < 6; i++ {
			name := fmt.Sprintf("화학 프리셋 %d", i)
			if err := catalog.SaveUserPreset(name, presetFor(t, "화학", "대학원")); err != nil {
				t.Fatalf("SaveUserPreset failed: %v", err)
			}
		}

		suggestions := catalog.Suggest("화학", "고등학교")
		if len(suggestions) != 5 {
			t.Fatalf("Expected 5 suggestions, got %d", len(suggestions))
		}
		if suggestions[0].Name != "화학 실험 조교" {
			t.Errorf("Expected exact match first, got %s", suggestions[0].Name)
		}
	})
}

func presetFor(t *testing.T, subject, level string) global.Preset {
	t.Helper()
	p := completePreset()
	p.Subject = subject
	p.Level = level
	return p
}
