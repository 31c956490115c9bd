/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package preset

import (
	"github.com/PivotLLM/Preceptor/global"
)

// Profile summarizes a preset's personality as Korean labels. Unknown
// presets and presets without personality data yield an empty map. Traits
// missing from the preset are read as the midpoint.
func (c *Catalog) Profile(name string) map[string]string {
	preset, ok := c.Get(name)
	if !ok || preset.Personality == nil {
		return map[string]string{}
	}

	score := func(trait string) float64 {
		if v, ok := preset.Personality[trait]; ok {
			return v
		}
		return 50
	}

	pick := func(value float64, threshold float64, below, atOrAbove string) string {
		if value < threshold {
			return below
		}
		return atOrAbove
	}

	return map[string]string{
		"teaching_style":      pick(score(global.TraitTheoryVsPractice), 50, "이론 중심", "실습 중심"),
		"interaction_level":   pick(score(global.TraitInteractionFrequency), 50, "일방적", "상호작용적"),
		"difficulty_level":    pick(score(global.TraitVocabularyLevel), 50, "기초", "고급"),
		"communication_style": pick(score(global.TraitFriendliness), 50, "격식적", "친근함"),
		"humor_tendency":      pick(score(global.TraitHumorLevel), 30, "진지함", "유머러스"),
	}
}
