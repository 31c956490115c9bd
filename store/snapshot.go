/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PivotLLM/Preceptor/global"
)

// ExportAll returns a snapshot of every persona and user preset, stamped
// with the backup date. Personas keep their storage order so a restore
// reproduces the collection exactly.
func (s *Service) ExportAll() (*global.Snapshot, error) {
	personas, err := s.loadPersonas()
	if err != nil {
		return nil, err
	}

	presets, err := s.loadPresets()
	if err != nil {
		return nil, err
	}

	snapshot := &global.Snapshot{
		Teachers:   personas,
		Presets:    presets,
		BackupDate: time.Now().Format(global.BackupStampLayout),
	}

	if s.logger != nil {
		s.logger.Infof("Exported snapshot: %d personas, %d presets", len(personas), len(presets))
	}
	return snapshot, nil
}

// RestoreAll replaces all personas and user presets with the contents of a
// snapshot document. The snapshot must carry both collections. Restores
// both or neither: if the preset write fails the previous personas are put
// back. Writes go straight to the backend so the snapshot's persona order
// is preserved untouched.
func (s *Service) RestoreAll(data []byte) (int, int, error) {
	result, err := s.validator.ValidateSnapshot(data)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to validate snapshot: %w", err)
	}
	if !result.Valid {
		return 0, 0, fmt.Errorf("invalid snapshot: %s", strings.Join(result.Errors, "; "))
	}

	var snapshot global.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return 0, 0, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	previous, err := s.loadPersonas()
	if err != nil {
		return 0, 0, err
	}

	if snapshot.Teachers == nil {
		snapshot.Teachers = []global.Persona{}
	}
	if snapshot.Presets == nil {
		snapshot.Presets = map[string]global.Preset{}
	}

	err = s.backend.WithLock(global.PersonaFileName, func() error {
		return s.backend.Save(global.PersonaFileName, snapshot.Teachers)
	})
	if err != nil {
		return 0, 0, err
	}

	err = s.backend.WithLock(global.PresetFileName, func() error {
		return s.savePresets(snapshot.Presets)
	})
	if err != nil {
		rollbackErr := s.backend.WithLock(global.PersonaFileName, func() error {
			return s.backend.Save(global.PersonaFileName, previous)
		})
		if rollbackErr != nil && s.logger != nil {
			s.logger.Errorf("Failed to roll back personas after preset restore failure: %v", rollbackErr)
		}
		return 0, 0, err
	}

	if s.logger != nil {
		s.logger.Infof("Restored snapshot: %d personas, %d presets", len(snapshot.Teachers), len(snapshot.Presets))
	}
	return len(snapshot.Teachers), len(snapshot.Presets), nil
}

// ExportPersona returns a single persona wrapped in an export envelope.
func (s *Service) ExportPersona(id string) (*global.PersonaExport, error) {
	persona, found, err := s.GetPersona(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("persona not found: %s", id)
	}

	export := &global.PersonaExport{
		TeacherName: persona.Name,
		Config:      persona.Clone(),
		ExportDate:  time.Now().Format(global.BackupStampLayout),
		Version:     global.ExportVersion,
	}

	if s.logger != nil {
		s.logger.Debugf("Exported persona: %s (%s)", persona.Name, id)
	}
	return export, nil
}

// ParsePersonaExport validates an export envelope and unwraps the persona
// record. The record itself still needs field validation before saving.
func (s *Service) ParsePersonaExport(data []byte) (*global.Persona, error) {
	result, err := s.validator.ValidatePersonaExport(data)
	if err != nil {
		return nil, fmt.Errorf("failed to validate persona export: %w", err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid persona export: %s", strings.Join(result.Errors, "; "))
	}

	var export global.PersonaExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to parse persona export: %w", err)
	}

	persona := export.Config
	if persona.Name == "" {
		persona.Name = export.TeacherName
	}

	return &persona, nil
}
