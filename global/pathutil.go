/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePathWithinDir validates that a relative path, when resolved against
// baseDir, stays within baseDir. This prevents path traversal through
// user-supplied document or file names.
// Returns the absolute resolved path if valid, or an error if traversal is
// detected.
func ValidatePathWithinDir(baseDir, relativePath string) (string, error) {
	if filepath.IsAbs(relativePath) {
		return "", fmt.Errorf("absolute paths not allowed: %s", relativePath)
	}

	cleanPath := filepath.Clean(relativePath)

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute base directory: %w", err)
	}

	absFilePath, err := filepath.Abs(filepath.Join(absBaseDir, cleanPath))
	if err != nil {
		return "", fmt.Errorf("failed to get absolute file path: %w", err)
	}

	if !IsPathWithin(absBaseDir, absFilePath) {
		return "", fmt.Errorf("path traversal attempt detected: %s", relativePath)
	}

	return absFilePath, nil
}

// ValidateFileName rejects names that could escape their directory: empty
// names, names with separators, and dot segments.
func ValidateFileName(name string) error {
	if name == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid file name: %s", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("file name cannot contain path separators: %s", name)
	}
	return nil
}

// IsPathWithin checks if resolvedPath is within or equal to baseDir.
// Both paths should be absolute.
func IsPathWithin(baseDir, resolvedPath string) bool {
	return strings.HasPrefix(resolvedPath, baseDir+string(filepath.Separator)) ||
		resolvedPath == baseDir
}
