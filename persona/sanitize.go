/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package persona

import (
	"strings"
	"unicode"
)

// SanitizeName turns a display name into an identifier safe for file and
// directory names. Letters and digits (any script, names are usually Korean)
// survive, runs of hyphens, whitespace, and underscores collapse to a single
// underscore, and everything else is dropped. Idempotent: sanitizing an
// already-sanitized name returns it unchanged.
func SanitizeName(raw string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return r
		case r == '-' || r == '_' || unicode.IsSpace(r):
			return '_'
		default:
			return -1
		}
	}, raw)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range mapped {
		if r == '_' {
			if prevUnderscore {
				continue
			}
			prevUnderscore = true
		} else {
			prevUnderscore = false
		}
		b.WriteRune(r)
	}

	return strings.Trim(b.String(), "_")
}
