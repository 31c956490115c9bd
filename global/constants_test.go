/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"testing"
)

func TestValidateRetention(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
		wantErr  bool
	}{
		{
			name:     "zero uses default",
			input:    0,
			expected: DefaultMaxPersonas,
			wantErr:  false,
		},
		{
			name:     "valid value",
			input:    50,
			expected: 50,
			wantErr:  false,
		},
		{
			name:     "minimum value",
			input:    1,
			expected: 1,
			wantErr:  false,
		},
		{
			name:     "maximum value",
			input:    MaxPersonasLimit,
			expected: MaxPersonasLimit,
			wantErr:  false,
		},
		{
			name:    "negative value",
			input:   -1,
			wantErr: true,
		},
		{
			name:    "above limit",
			input:   MaxPersonasLimit + 1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateRetention(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ValidateRetention(%d) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateRetention(%d) error = %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ValidateRetention(%d) = %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidateHistoryWindow(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
		wantErr  bool
	}{
		{
			name:     "zero uses default",
			input:    0,
			expected: DefaultHistoryWindow,
			wantErr:  false,
		},
		{
			name:     "valid value",
			input:    20,
			expected: 20,
			wantErr:  false,
		},
		{
			name:    "negative value",
			input:   -5,
			wantErr: true,
		},
		{
			name:    "above limit",
			input:   MaxHistoryWindow + 1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateHistoryWindow(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ValidateHistoryWindow(%d) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateHistoryWindow(%d) error = %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("ValidateHistoryWindow(%d) = %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidateCleanupDays(t *testing.T) {
	t.Run("zero uses default", func(t *testing.T) {
		result, err := ValidateCleanupDays(0)
		if err != nil {
			t.Fatalf("ValidateCleanupDays(0) error = %v", err)
		}
		if result != DefaultCleanupDays {
			t.Errorf("ValidateCleanupDays(0) = %d, want %d", result, DefaultCleanupDays)
		}
	})

	t.Run("valid value", func(t *testing.T) {
		result, err := ValidateCleanupDays(90)
		if err != nil {
			t.Fatalf("ValidateCleanupDays(90) error = %v", err)
		}
		if result != 90 {
			t.Errorf("ValidateCleanupDays(90) = %d, want 90", result)
		}
	})

	t.Run("negative value", func(t *testing.T) {
		_, err := ValidateCleanupDays(-1)
		if err == nil {
			t.Error("ValidateCleanupDays(-1) expected error, got nil")
		}
	})
}

func TestIsEducationLevel(t *testing.T) {
	for _, level := range EducationLevels {
		if !IsEducationLevel(level) {
			t.Errorf("IsEducationLevel(%q) = false, want true", level)
		}
	}

	if IsEducationLevel("유치원") {
		t.Error("IsEducationLevel(유치원) = true, want false")
	}
	if IsEducationLevel("") {
		t.Error("IsEducationLevel(\"\") = true, want false")
	}
}

func TestIsTraitName(t *testing.T) {
	if len(TraitNames) != 12 {
		t.Fatalf("TraitNames length = %d, want 12", len(TraitNames))
	}

	for _, name := range TraitNames {
		if !IsTraitName(name) {
			t.Errorf("IsTraitName(%q) = false, want true", name)
		}
	}

	if IsTraitName("patience") {
		t.Error("IsTraitName(patience) = true, want false")
	}
}

func TestTraitDefaults(t *testing.T) {
	for _, name := range TraitNames {
		value, ok := TraitDefaults[name]
		if !ok {
			t.Errorf("TraitDefaults missing %q", name)
			continue
		}
		if value < TraitMin || value > TraitMax {
			t.Errorf("TraitDefaults[%q] = %v, out of range", name, value)
		}
	}

	if len(TraitDefaults) != len(TraitNames) {
		t.Errorf("TraitDefaults has %d entries, want %d", len(TraitDefaults), len(TraitNames))
	}
}
