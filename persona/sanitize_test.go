/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package persona

import (
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"korean name", "김선생", "김선생"},
		{"korean with space", "김 선생", "김_선생"},
		{"ascii with spaces", "Professor Kim", "Professor_Kim"},
		{"hyphen becomes underscore", "physics-101", "physics_101"},
		{"mixed separators collapse", "a - b  -- c", "a_b_c"},
		{"punctuation stripped", "김선생!@#$", "김선생"},
		{"slashes stripped", "a/b\\c", "abc"},
		{"leading and trailing whitespace", "  김선생  ", "김선생"},
		{"underscores kept", "kim_teacher", "kim_teacher"},
		{"underscore runs collapse", "a__b___c", "a_b_c"},
		{"digits kept", "튜터2호", "튜터2호"},
		{"empty", "", ""},
		{"only punctuation", "!@#$%", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeName(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestSanitizeNameIdempotent(t *testing.T) {
	inputs := []string{
		"김선생",
		"김 선생님 (물리)",
		"Professor Kim - Physics",
		"  a -- b __ c  ",
		"!@#$",
		"화학 실험 조교",
	}

	for _, input := range inputs {
		once := SanitizeName(input)
		twice := SanitizeName(once)
		if once != twice {
			t.Errorf("Expected idempotent result for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestSanitizeNameProperties(t *testing.T) {
	inputs := []string{
		"  김선생  ",
		"- leading hyphen",
		"trailing hyphen -",
		"_wrapped_",
		"spaces   everywhere   here",
	}

	for _, input := range inputs {
		result := SanitizeName(input)
		if strings.HasPrefix(result, "_") || strings.HasSuffix(result, "_") {
			t.Errorf("Expected no leading/trailing underscores in %q (from %q)", result, input)
		}
		if strings.ContainsAny(result, " \t\n-") {
			t.Errorf("Expected no whitespace or hyphens in %q (from %q)", result, input)
		}
	}
}
