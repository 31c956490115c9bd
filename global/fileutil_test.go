/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "fileutil-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func(path string) {
		_ = os.RemoveAll(path)
	}(tmpDir)

	t.Run("write new file", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "new-file.txt")
		content := []byte("Hello, World!")

		err := AtomicWrite(filePath, content)
		if err != nil {
			t.Fatalf("AtomicWrite() error = %v", err)
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(data) != string(content) {
			t.Errorf("File content = %q, want %q", string(data), string(content))
		}
	})

	t.Run("overwrite existing file", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "existing-file.txt")

		if err := os.WriteFile(filePath, []byte("old content"), 0644); err != nil {
			t.Fatalf("Failed to create initial file: %v", err)
		}

		newContent := []byte("new content")
		err := AtomicWrite(filePath, newContent)
		if err != nil {
			t.Fatalf("AtomicWrite() error = %v", err)
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(data) != string(newContent) {
			t.Errorf("File content = %q, want %q", string(data), string(newContent))
		}
	})

	t.Run("create nested directories", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "a", "b", "c", "nested-file.txt")
		content := []byte("nested content")

		err := AtomicWrite(filePath, content)
		if err != nil {
			t.Fatalf("AtomicWrite() error = %v", err)
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(data) != string(content) {
			t.Errorf("File content = %q, want %q", string(data), string(content))
		}
	})

	t.Run("no temp file left on success", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "clean-file.txt")
		tempPath := filePath + ".tmp"

		err := AtomicWrite(filePath, []byte("content"))
		if err != nil {
			t.Fatalf("AtomicWrite() error = %v", err)
		}

		if FileExists(tempPath) {
			t.Error("Temp file should not exist after successful write")
		}
	})
}

func TestAtomicWriteJSON(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "fileutil-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func(path string) {
		_ = os.RemoveAll(path)
	}(tmpDir)

	t.Run("pretty printed output", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "data.json")
		value := map[string]string{"name": "김선생", "subject": "수학"}

		err := AtomicWriteJSON(filePath, value)
		if err != nil {
			t.Fatalf("AtomicWriteJSON() error = %v", err)
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if !strings.Contains(string(data), "\n  ") {
			t.Error("Output should be indented")
		}
		if !strings.HasSuffix(string(data), "\n") {
			t.Error("Output should end with a newline")
		}

		var decoded map[string]string
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Failed to parse written JSON: %v", err)
		}
		if decoded["name"] != "김선생" {
			t.Errorf("Round-trip name = %q, want %q", decoded["name"], "김선생")
		}
	})

	t.Run("unmarshalable value fails without writing", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "bad.json")

		err := AtomicWriteJSON(filePath, make(chan int))
		if err == nil {
			t.Fatal("AtomicWriteJSON() expected error for unmarshalable value")
		}
		if FileExists(filePath) {
			t.Error("No file should be written on marshal failure")
		}
	})
}

func TestFileExists(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "fileutil-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func(path string) {
		_ = os.RemoveAll(path)
	}(tmpDir)

	t.Run("existing file", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "exists.txt")
		if err := os.WriteFile(filePath, []byte("content"), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}

		if !FileExists(filePath) {
			t.Error("FileExists() = false, want true for existing file")
		}
	})

	t.Run("non-existent file", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "not-exists.txt")

		if FileExists(filePath) {
			t.Error("FileExists() = true, want false for non-existent file")
		}
	})

	t.Run("directory is not a file", func(t *testing.T) {
		if FileExists(tmpDir) {
			t.Error("FileExists() = true, want false for directory")
		}
	})
}

func TestDirExists(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "fileutil-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func(path string) {
		_ = os.RemoveAll(path)
	}(tmpDir)

	t.Run("existing directory", func(t *testing.T) {
		if !DirExists(tmpDir) {
			t.Error("DirExists() = false, want true for existing directory")
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		dirPath := filepath.Join(tmpDir, "not-exists")

		if DirExists(dirPath) {
			t.Error("DirExists() = true, want false for non-existent directory")
		}
	})

	t.Run("file is not a directory", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "file.txt")
		if err := os.WriteFile(filePath, []byte("content"), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}

		if DirExists(filePath) {
			t.Error("DirExists() = true, want false for file")
		}
	})
}

func TestFileSize(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "fileutil-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func(path string) {
		_ = os.RemoveAll(path)
	}(tmpDir)

	t.Run("existing file", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "sized.txt")
		if err := os.WriteFile(filePath, []byte("12345"), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}

		if size := FileSize(filePath); size != 5 {
			t.Errorf("FileSize() = %d, want 5", size)
		}
	})

	t.Run("missing file is zero", func(t *testing.T) {
		if size := FileSize(filepath.Join(tmpDir, "missing.txt")); size != 0 {
			t.Errorf("FileSize() = %d, want 0 for missing file", size)
		}
	})
}

func TestExpandHomePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("No home directory available: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde prefix",
			input:    "~/foo/bar",
			expected: filepath.Join(home, "foo", "bar"),
		},
		{
			name:     "bare tilde",
			input:    "~",
			expected: home,
		},
		{
			name:     "absolute path unchanged",
			input:    "/tmp/foo",
			expected: "/tmp/foo",
		},
		{
			name:     "relative path unchanged",
			input:    "foo/bar",
			expected: "foo/bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandHomePath(tt.input)
			if err != nil {
				t.Fatalf("ExpandHomePath() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("ExpandHomePath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
