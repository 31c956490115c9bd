/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package documents

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PivotLLM/Preceptor/global"
)

// fakeConverter stands in for the markdown converter so tests control the
// conversion outcome.
type fakeConverter struct {
	fail bool
	err  error
}

func (f fakeConverter) Convert(path string) (int, int, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	if f.fail {
		return 0, 1, nil
	}
	mdPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".md"
	if err := os.WriteFile(mdPath, []byte("# converted\n"), 0644); err != nil {
		return 0, 0, err
	}
	return 1, 0, nil
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()

	merged := append([]Option{WithDataDir(t.TempDir()), WithConverter(fakeConverter{})}, opts...)
	return NewService(merged...)
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}
	return path
}

func TestImportTextDocument(t *testing.T) {
	svc := newTestService(t)
	source := writeSource(t, "notes.txt", "뉴턴의 운동 법칙")

	ref, err := svc.Import("김선생님", source)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if ref.Name != "notes.txt" {
		t.Errorf("Expected ref name notes.txt, got %s", ref.Name)
	}
	if ref.Size != int64(len("뉴턴의 운동 법칙")) {
		t.Errorf("Expected source size, got %d", ref.Size)
	}
	if !global.FileExists(ref.Path) {
		t.Error("Expected stored copy to exist")
	}

	stored, err := os.ReadFile(ref.Path)
	if err != nil {
		t.Fatalf("Failed to read stored copy: %v", err)
	}
	if string(stored) != "뉴턴의 운동 법칙" {
		t.Errorf("Stored copy differs from source: %q", stored)
	}

	refs, err := svc.List("김선생님")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(refs) != 1 || refs[0].Name != "notes.txt" {
		t.Errorf("Expected one listed ref, got %+v", refs)
	}
}

func TestImportSanitizesPersonaDirectory(t *testing.T) {
	svc := newTestService(t)
	source := writeSource(t, "notes.md", "# 자료")

	ref, err := svc.Import("김 선생님!", source)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !strings.Contains(ref.Path, string(filepath.Separator)+"김_선생님"+string(filepath.Separator)) {
		t.Errorf("Expected sanitized directory in path, got %s", ref.Path)
	}
}

func TestImportConvertedDocument(t *testing.T) {
	svc := newTestService(t)
	source := writeSource(t, "lecture.pdf", "%PDF-fake")

	ref, err := svc.Import("박교수", source)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if ref.Name != "lecture.md" {
		t.Errorf("Expected ref to point at markdown copy, got %s", ref.Name)
	}
	if !global.FileExists(ref.Path) {
		t.Error("Expected markdown copy to exist")
	}

	// The stored original stays beside the markdown copy but is not a ref.
	refs, err := svc.List("박교수")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(refs) != 1 || refs[0].Name != "lecture.md" {
		t.Errorf("Expected only the markdown ref, got %+v", refs)
	}
}

func TestImportConversionFailureKeepsOriginal(t *testing.T) {
	svc := newTestService(t, WithConverter(fakeConverter{fail: true}))
	source := writeSource(t, "lecture.pdf", "%PDF-fake")

	ref, err := svc.Import("박교수", source)
	if err != nil {
		t.Fatalf("Import should survive conversion failure: %v", err)
	}
	if ref.Name != "lecture.pdf" {
		t.Errorf("Expected ref to fall back to stored original, got %s", ref.Name)
	}

	refs, err := svc.List("박교수")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(refs) != 1 || refs[0].Name != "lecture.pdf" {
		t.Errorf("Expected the original as the ref, got %+v", refs)
	}
}

func TestImportRejectsUnsupportedType(t *testing.T) {
	svc := newTestService(t)
	source := writeSource(t, "virus.exe", "MZ")

	if _, err := svc.Import("김선생님", source); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}

func TestImportRejectsMissingSource(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Import("김선생님", "/no/such/file.txt"); err == nil {
		t.Error("Expected error for missing source")
	}
}

func TestImportRejectsOversizeFile(t *testing.T) {
	svc := newTestService(t, WithMaxFileMB(1))
	source := writeSource(t, "big.txt", string(bytes.Repeat([]byte("a"), 1<<20+1)))

	_, err := svc.Import("김선생님", source)
	if err == nil {
		t.Fatal("Expected error for oversize file")
	}
	if !strings.Contains(err.Error(), "1 MB") {
		t.Errorf("Expected size limit in message, got: %v", err)
	}
}

func TestImportEnforcesPerPersonaCap(t *testing.T) {
	svc := newTestService(t, WithMaxPerPersona(2))

	for _, name := range []string{"a.txt", "b.txt"} {
		if _, err := svc.Import("김선생님", writeSource(t, name, "내용")); err != nil {
			t.Fatalf("Import of %s failed: %v", name, err)
		}
	}

	if _, err := svc.Import("김선생님", writeSource(t, "c.txt", "내용")); err == nil {
		t.Error("Expected error past the per-persona cap")
	}

	// Another persona is not affected by the first one's documents.
	if _, err := svc.Import("박교수", writeSource(t, "d.txt", "내용")); err != nil {
		t.Errorf("Cap should be per persona: %v", err)
	}
}

func TestImportRejectsDuplicateName(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Import("김선생님", writeSource(t, "notes.txt", "첫 번째")); err != nil {
		t.Fatalf("First import failed: %v", err)
	}
	if _, err := svc.Import("김선생님", writeSource(t, "notes.txt", "두 번째")); err == nil {
		t.Error("Expected error for duplicate document name")
	}
}

func TestImportRejectsEmptyPersonaName(t *testing.T) {
	svc := newTestService(t)
	source := writeSource(t, "notes.txt", "내용")

	if _, err := svc.Import("", source); err == nil {
		t.Error("Expected error for empty persona name")
	}
	if _, err := svc.Import("!!!", source); err == nil {
		t.Error("Expected error for name that sanitizes to nothing")
	}
}

func TestListWithoutImports(t *testing.T) {
	svc := newTestService(t)

	refs, err := svc.List("김선생님")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("Expected no refs, got %+v", refs)
	}
}

func TestListSkipsStrayFiles(t *testing.T) {
	dataDir := t.TempDir()
	svc := NewService(WithDataDir(dataDir), WithConverter(fakeConverter{}))

	if _, err := svc.Import("김선생님", writeSource(t, "notes.txt", "내용")); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	stray := filepath.Join(dataDir, global.DocumentsDir, "김선생님", "stray.txt")
	if err := os.WriteFile(stray, []byte("sidecar 없음"), 0644); err != nil {
		t.Fatalf("Failed to plant stray file: %v", err)
	}

	refs, err := svc.List("김선생님")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(refs) != 1 || refs[0].Name != "notes.txt" {
		t.Errorf("Expected stray file to be skipped, got %+v", refs)
	}
}

func TestRemove(t *testing.T) {
	svc := newTestService(t)

	ref, err := svc.Import("김선생님", writeSource(t, "notes.txt", "내용"))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if err := svc.Remove("김선생님", ref.Name); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if global.FileExists(ref.Path) {
		t.Error("Expected stored copy to be gone")
	}
	if global.FileExists(ref.Path + global.MetaSuffix) {
		t.Error("Expected metadata sidecar to be gone")
	}

	refs, err := svc.List("김선생님")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("Expected no refs after removal, got %+v", refs)
	}
}

func TestRemoveConvertedCleansOriginal(t *testing.T) {
	svc := newTestService(t)

	ref, err := svc.Import("박교수", writeSource(t, "lecture.pdf", "%PDF-fake"))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	original := strings.TrimSuffix(ref.Path, ".md") + ".pdf"
	if !global.FileExists(original) {
		t.Fatal("Expected stored original beside the markdown copy")
	}

	if err := svc.Remove("박교수", ref.Name); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if global.FileExists(ref.Path) {
		t.Error("Expected markdown copy to be gone")
	}
	if global.FileExists(original) {
		t.Error("Expected stored original to be gone")
	}
}

func TestRemoveMissingDocument(t *testing.T) {
	svc := newTestService(t)

	err := svc.Remove("김선생님", "ghost.txt")
	if err == nil {
		t.Fatal("Expected error for missing document")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not-found message, got: %v", err)
	}
}

func TestRemoveRejectsPathEscape(t *testing.T) {
	svc := newTestService(t)

	for _, name := range []string{"", "../escape.txt", "a/b.txt"} {
		if err := svc.Remove("김선생님", name); err == nil {
			t.Errorf("Expected error for name %q", name)
		}
	}
}
