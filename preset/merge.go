/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package preset

import (
	"github.com/PivotLLM/Preceptor/global"
)

// Apply overlays the named preset onto a copy of base. Only subject, level,
// personality, and voice settings ever come from a preset; every other field
// keeps its base value. Personality replaces the whole map, never a per-trait
// merge. An unknown name returns base unchanged.
func (c *Catalog) Apply(name string, base global.Persona) global.Persona {
	preset, ok := c.Get(name)
	if !ok {
		return base
	}

	merged := base.Clone()

	if preset.Subject != "" {
		merged.Subject = preset.Subject
	}
	if preset.Level != "" {
		merged.Level = preset.Level
	}
	if preset.Personality != nil {
		merged.Personality = preset.Personality
	}
	if preset.VoiceSettings != nil {
		merged.VoiceSettings = *preset.VoiceSettings
	}

	if c.logger != nil {
		c.logger.Debugf("Applied preset %s to %s", name, base.Name)
	}
	return merged
}
