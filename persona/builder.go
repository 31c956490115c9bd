/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package persona

import (
	"time"

	"github.com/google/uuid"

	"github.com/PivotLLM/Preceptor/global"
)

// Assemble aggregates the setting groups into a persona record with a fresh
// id and timestamp. It never validates; callers run Validate as a separate
// step. A zero voice falls back to the defaults.
func Assemble(core CoreSettings, style StyleSettings, tuning PersonalityTuning,
	specialty SpecialtySettings, documents DocumentSettings, identity IdentitySettings,
	voice global.VoiceSettings) global.Persona {

	subject := specialty.Subject
	if specialty.CustomSubject != "" {
		subject = specialty.CustomSubject
	}

	if voice == (global.VoiceSettings{}) {
		voice = global.DefaultVoiceSettings()
	}

	return global.Persona{
		ID:                  uuid.NewString(),
		CreatedAt:           time.Now(),
		Name:                identity.Name,
		Title:               identity.Title,
		Background:          identity.Background,
		Subject:             subject,
		Level:               specialty.Level,
		Personality:         traits(core, style, tuning),
		VoiceSettings:       voice,
		DocumentRefs:        documents.Refs,
		UseGeneralKnowledge: documents.UseGeneralKnowledge,
		Version:             global.PersonaSchemaVersion,
	}
}
