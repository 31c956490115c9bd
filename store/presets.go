/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/PivotLLM/Preceptor/global"
)

// loadPresets reads the user preset document. Missing or corrupt files are
// empty maps, same policy as loadPersonas. Built-in presets never live here.
func (s *Service) loadPresets() (map[string]global.Preset, error) {
	var presets map[string]global.Preset
	if _, err := s.backend.Load(global.PresetFileName, &presets); err != nil {
		var storageErr *global.StorageError
		if errors.As(err, &storageErr) && storageErr.Op == "parse" {
			if s.logger != nil {
				s.logger.Warnf("Preset document is corrupt, treating as empty: %v", err)
			}
			return map[string]global.Preset{}, nil
		}
		return nil, err
	}
	if presets == nil {
		presets = map[string]global.Preset{}
	}
	return presets, nil
}

func (s *Service) savePresets(presets map[string]global.Preset) error {
	return s.backend.Save(global.PresetFileName, presets)
}

// SaveUserPreset upserts a user preset under the given name. The first save
// stamps created_at; every save stamps updated_at.
func (s *Service) SaveUserPreset(name string, preset global.Preset) error {
	if name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}

	err := s.backend.WithLock(global.PresetFileName, func() error {
		presets, err := s.loadPresets()
		if err != nil {
			return err
		}

		now := time.Now().Format(global.PresetStampLayout)
		if existing, ok := presets[name]; ok && existing.CreatedAt != "" {
			preset.CreatedAt = existing.CreatedAt
		} else {
			preset.CreatedAt = now
		}
		preset.UpdatedAt = now

		presets[name] = preset
		return s.savePresets(presets)
	})
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Saved user preset: %s", name)
	}
	return nil
}

// GetUserPreset returns a stored user preset by name. Absence is not an error.
func (s *Service) GetUserPreset(name string) (*global.Preset, bool, error) {
	presets, err := s.loadPresets()
	if err != nil {
		return nil, false, err
	}

	preset, ok := presets[name]
	if !ok {
		return nil, false, nil
	}

	return &preset, true, nil
}

// ListUserPresets returns all stored user presets keyed by name.
func (s *Service) ListUserPresets() (map[string]global.Preset, error) {
	return s.loadPresets()
}

// DeleteUserPreset removes a stored user preset by name. Deleting a name
// that is not stored is a no-op, not an error.
func (s *Service) DeleteUserPreset(name string) error {
	removed := false
	err := s.backend.WithLock(global.PresetFileName, func() error {
		presets, err := s.loadPresets()
		if err != nil {
			return err
		}

		if _, ok := presets[name]; !ok {
			return nil
		}

		delete(presets, name)
		removed = true
		return s.savePresets(presets)
	})
	if err != nil {
		return err
	}

	if s.logger != nil && removed {
		s.logger.Infof("Deleted user preset: %s", name)
	}
	return nil
}
