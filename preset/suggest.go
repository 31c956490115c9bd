/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package preset

import (
	"sort"
	"strings"

	"github.com/PivotLLM/Preceptor/global"
)

// Suggest scores every preset against the requested subject and level and
// returns up to five matches, best first. Exact matches score 2 per field,
// substring matches 1; only presets with a positive score are returned.
// Ties keep catalog order: built-ins first, then user presets by name.
func (c *Catalog) Suggest(subject, level string) []global.Suggestion {
	type candidate struct {
		name   string
		preset global.Preset
	}

	candidates := make([]candidate, 0, len(c.builtins))
	for _, name := range builtinOrder {
		candidates = append(candidates, candidate{name, c.builtins[name]})
	}

	users, err := c.store.ListUserPresets()
	if err != nil {
		if c.logger != nil {
			c.logger.Warnf("Suggesting from built-ins only, user presets unavailable: %v", err)
		}
	} else {
		userNames := make([]string, 0, len(users))
		for name := range users {
			if _, shadowed := c.builtins[name]; !shadowed {
				userNames = append(userNames, name)
			}
		}
		sort.Strings(userNames)
		for _, name := range userNames {
			candidates = append(candidates, candidate{name, users[name]})
		}
	}

	suggestions := make([]global.Suggestion, 0, len(candidates))
	for _, cand := range candidates {
		score := matchScore(subject, level, cand.preset)
		if score > 0 {
			suggestions = append(suggestions, global.Suggestion{Name: cand.name, Score: score})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > global.DefaultSuggestLimit {
		suggestions = suggestions[:global.DefaultSuggestLimit]
	}

	return suggestions
}

func matchScore(subject, level string, p global.Preset) int {
	score := 0

	if subject != "" {
		want := strings.ToLower(subject)
		have := strings.ToLower(p.Subject)
		if have == want {
			score += 2
		} else if have != "" && strings.Contains(have, want) {
			score++
		}
	}

	if level != "" {
		want := strings.ToLower(level)
		have := strings.ToLower(p.Level)
		if have == want {
			score += 2
		} else if have != "" && strings.Contains(have, want) {
			score++
		}
	}

	return score
}
