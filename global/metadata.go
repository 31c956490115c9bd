/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// DocumentMeta is sidecar metadata for imported reference documents.
// Stored in .meta.json files alongside the stored copies.
type DocumentMeta struct {
	Source     string    `json:"source"`
	Size       int64     `json:"size"`
	Converted  bool      `json:"converted"`
	ImportedAt time.Time `json:"imported_at"`
}

// LoadDocumentMeta loads metadata from a sidecar file.
// Returns nil, nil if the metadata file doesn't exist.
func LoadDocumentMeta(filePath string) (*DocumentMeta, error) {
	metaPath := filePath + MetaSuffix

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		return nil, nil // No metadata file
	}

	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	var meta DocumentMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metadata file: %w", err)
	}

	return &meta, nil
}

// SaveDocumentMeta saves metadata to a sidecar file atomically.
func SaveDocumentMeta(filePath string, meta *DocumentMeta) error {
	metaPath := filePath + MetaSuffix

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	return AtomicWrite(metaPath, data)
}

// DeleteDocumentMeta removes the sidecar metadata file for a given file.
// Returns nil if the metadata file doesn't exist.
func DeleteDocumentMeta(filePath string) error {
	metaPath := filePath + MetaSuffix

	err := os.Remove(metaPath)
	if os.IsNotExist(err) {
		return nil // No metadata file to delete
	}
	return err
}

// NewDocumentMeta creates metadata for a newly imported document.
func NewDocumentMeta(source string, size int64, converted bool) *DocumentMeta {
	return &DocumentMeta{
		Source:     source,
		Size:       size,
		Converted:  converted,
		ImportedAt: time.Now(),
	}
}
