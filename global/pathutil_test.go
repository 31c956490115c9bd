/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"os"
	"strings"
	"testing"
)

func TestValidatePathWithinDir(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "pathutil-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func(path string) {
		_ = os.RemoveAll(path)
	}(tmpDir)

	tests := []struct {
		name        string
		baseDir     string
		path        string
		wantErr     bool
		errContains string
	}{
		{
			name:    "valid simple path",
			baseDir: tmpDir,
			path:    "file.txt",
			wantErr: false,
		},
		{
			name:    "valid nested path",
			baseDir: tmpDir,
			path:    "subdir/file.txt",
			wantErr: false,
		},
		{
			name:        "path traversal with ..",
			baseDir:     tmpDir,
			path:        "../outside.txt",
			wantErr:     true,
			errContains: "path traversal",
		},
		{
			name:        "path traversal nested",
			baseDir:     tmpDir,
			path:        "subdir/../../outside.txt",
			wantErr:     true,
			errContains: "path traversal",
		},
		{
			name:        "path traversal to root",
			baseDir:     tmpDir,
			path:        "../../../../etc/passwd",
			wantErr:     true,
			errContains: "path traversal",
		},
		{
			name:    "path with dot current dir",
			baseDir: tmpDir,
			path:    "./file.txt",
			wantErr: false,
		},
		{
			name:        "absolute path rejected",
			baseDir:     tmpDir,
			path:        "/etc/passwd",
			wantErr:     true,
			errContains: "absolute paths not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidatePathWithinDir(tt.baseDir, tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ValidatePathWithinDir() expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("ValidatePathWithinDir() error = %v, want error containing %q", err, tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("ValidatePathWithinDir() unexpected error: %v", err)
				}
				if !IsPathWithin(tmpDir, result) {
					t.Errorf("ValidatePathWithinDir() result %s is not within %s", result, tmpDir)
				}
			}
		})
	}
}

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "simple name",
			input:   "notes.md",
			wantErr: false,
		},
		{
			name:    "korean name",
			input:   "물리학_강의노트.pdf",
			wantErr: false,
		},
		{
			name:    "empty name",
			input:   "",
			wantErr: true,
		},
		{
			name:    "single dot",
			input:   ".",
			wantErr: true,
		},
		{
			name:    "double dot",
			input:   "..",
			wantErr: true,
		},
		{
			name:    "forward slash",
			input:   "a/b.txt",
			wantErr: true,
		},
		{
			name:    "backslash",
			input:   `a\b.txt`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileName(tt.input)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateFileName(%q) expected error, got nil", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateFileName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

func TestIsPathWithin(t *testing.T) {
	tests := []struct {
		name     string
		baseDir  string
		path     string
		expected bool
	}{
		{
			name:     "path within base dir",
			baseDir:  "/base/dir",
			path:     "/base/dir/file.txt",
			expected: true,
		},
		{
			name:     "path equals base dir",
			baseDir:  "/base/dir",
			path:     "/base/dir",
			expected: true,
		},
		{
			name:     "path outside base dir",
			baseDir:  "/base/dir",
			path:     "/base/other/file.txt",
			expected: false,
		},
		{
			name:     "path is parent of base dir",
			baseDir:  "/base/dir",
			path:     "/base",
			expected: false,
		},
		{
			name:     "similar prefix but different dir",
			baseDir:  "/base/dir",
			path:     "/base/directory/file.txt",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsPathWithin(tt.baseDir, tt.path)
			if result != tt.expected {
				t.Errorf("IsPathWithin(%q, %q) = %v, want %v", tt.baseDir, tt.path, result, tt.expected)
			}
		})
	}
}
