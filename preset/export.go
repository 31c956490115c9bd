/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package preset

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PivotLLM/Preceptor/global"
)

// ExportPreset wraps the named preset in an export envelope. Built-ins can
// be exported like any other preset.
func (c *Catalog) ExportPreset(name string) (*global.PresetExport, error) {
	preset, ok := c.Get(name)
	if !ok {
		return nil, fmt.Errorf("preset not found: %s", name)
	}

	return &global.PresetExport{
		PresetName:    name,
		PresetConfig:  preset,
		ExportVersion: global.ExportVersion,
	}, nil
}

// ImportPreset validates an export envelope and saves its preset under the
// envelope's name. Returns the preset name on success.
func (c *Catalog) ImportPreset(data []byte) (string, error) {
	result, err := c.validator.ValidatePresetExport(data)
	if err != nil {
		return "", fmt.Errorf("failed to validate preset export: %w", err)
	}
	if !result.Valid {
		return "", fmt.Errorf("invalid preset export: %s", strings.Join(result.Errors, "; "))
	}

	var export global.PresetExport
	if err := json.Unmarshal(data, &export); err != nil {
		return "", fmt.Errorf("failed to parse preset export: %w", err)
	}

	if err := c.SaveUserPreset(export.PresetName, export.PresetConfig); err != nil {
		return "", err
	}

	if c.logger != nil {
		c.logger.Infof("Imported preset: %s", export.PresetName)
	}
	return export.PresetName, nil
}
