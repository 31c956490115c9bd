/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package documents stores per-persona reference material under the data
// directory. Imports copy the source in, give non-text formats a markdown
// sibling, and leave a metadata sidecar next to the stored copy. The sidecar
// marks which files are document refs; anything without one is ignored.
package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tenebris-tech/x2md/convert"

	"github.com/PivotLLM/Preceptor/global"
	"github.com/PivotLLM/Preceptor/logging"
	"github.com/PivotLLM/Preceptor/persona"
)

const mdExt = ".md"

// Import allow-list. Text formats are stored as-is; the others get a
// markdown sibling the ref points at.
var (
	textExtensions    = map[string]bool{".txt": true, ".md": true}
	convertExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true}
)

func allowedExtension(ext string) bool {
	return textExtensions[ext] || convertExtensions[ext]
}

// Converter produces a markdown sibling for a stored document. It reports
// how many files converted and how many failed.
type Converter interface {
	Convert(path string) (converted int, failed int, err error)
}

// x2mdConverter is the default Converter.
type x2mdConverter struct{}

func (x2mdConverter) Convert(path string) (int, int, error) {
	converter := convert.New(
		convert.WithRecursion(false),
		convert.WithSkipExisting(true),
	)

	result, err := converter.Convert(path)
	if err != nil {
		return 0, 0, err
	}
	return result.Converted, result.Failed, nil
}

// Service manages reference documents for personas.
type Service struct {
	dataDir       string
	maxFileBytes  int64
	maxPerPersona int
	converter     Converter
	logger        *logging.Logger
}

// Option is a functional option for configuring Service
type Option func(*Service)

// WithDataDir sets the data directory documents are stored under
func WithDataDir(dir string) Option {
	return func(s *Service) {
		s.dataDir = dir
	}
}

// WithMaxFileMB sets the per-file size cap in megabytes
func WithMaxFileMB(mb int) Option {
	return func(s *Service) {
		if mb > 0 {
			s.maxFileBytes = int64(mb) * 1024 * 1024
		}
	}
}

// WithMaxPerPersona sets how many documents one persona may hold
func WithMaxPerPersona(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxPerPersona = limit
		}
	}
}

// WithConverter sets the markdown converter
func WithConverter(c Converter) Option {
	return func(s *Service) {
		if c != nil {
			s.converter = c
		}
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new document service.
func NewService(opts ...Option) *Service {
	s := &Service{
		maxFileBytes:  global.DefaultMaxDocumentMB * 1024 * 1024,
		maxPerPersona: global.DefaultMaxDocsPerName,
		converter:     x2mdConverter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// personaDir returns the storage directory for one persona's documents.
// Returns an error when the name sanitizes to nothing.
func (s *Service) personaDir(personaName string) (string, error) {
	sanitized := persona.SanitizeName(personaName)
	if sanitized == "" {
		return "", fmt.Errorf("persona name cannot be empty")
	}
	return filepath.Join(s.dataDir, global.DocumentsDir, sanitized), nil
}

// resolveRef validates a document name and resolves it inside the persona's
// directory, preventing traversal.
func (s *Service) resolveRef(personaName, name string) (string, error) {
	dir, err := s.personaDir(personaName)
	if err != nil {
		return "", err
	}
	if err := global.ValidateFileName(name); err != nil {
		return "", err
	}
	return global.ValidatePathWithinDir(dir, name)
}

// Import copies a document into the persona's document directory. Files that
// are not already text get a markdown sibling; the returned ref points at
// the markdown copy when conversion produced one, otherwise at the stored
// original. Conversion failures are logged, never fatal.
func (s *Service) Import(personaName, sourcePath string) (*global.DocumentRef, error) {
	dir, err := s.personaDir(personaName)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(sourcePath))
	if !allowedExtension(ext) {
		return nil, fmt.Errorf("unsupported document type %q (allowed: pdf, doc, docx, txt, md)", ext)
	}

	info, err := os.Stat(sourcePath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("document not found: %s", sourcePath)
	}
	if err != nil {
		return nil, &global.StorageError{Op: "read", Path: sourcePath, Err: err}
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source is a directory, not a document: %s", sourcePath)
	}
	if info.Size() > s.maxFileBytes {
		return nil, fmt.Errorf("document exceeds the %d MB limit", s.maxFileBytes/(1024*1024))
	}

	existing, err := s.List(personaName)
	if err != nil {
		return nil, err
	}
	if len(existing) >= s.maxPerPersona {
		return nil, fmt.Errorf("persona already has %d documents (limit %d)", len(existing), s.maxPerPersona)
	}

	if err := global.EnsureDir(dir); err != nil {
		return nil, &global.StorageError{Op: "write", Path: dir, Err: err}
	}

	destPath, err := s.resolveRef(personaName, filepath.Base(sourcePath))
	if err != nil {
		return nil, err
	}
	if global.FileExists(destPath) {
		return nil, fmt.Errorf("document already exists: %s", filepath.Base(destPath))
	}
	if err := copyFile(sourcePath, destPath); err != nil {
		return nil, &global.StorageError{Op: "write", Path: destPath, Err: err}
	}

	refPath := destPath
	converted := false
	if convertExtensions[ext] {
		mdPath := strings.TrimSuffix(destPath, ext) + mdExt
		count, failed, convertErr := s.converter.Convert(destPath)
		switch {
		case convertErr != nil:
			if s.logger != nil {
				s.logger.Warnf("Conversion failed for %s: %v", destPath, convertErr)
			}
		case failed > 0:
			if s.logger != nil {
				s.logger.Warnf("Conversion failed for %s (%d failed)", destPath, failed)
			}
		case global.FileExists(mdPath):
			converted = true
			refPath = mdPath
			if s.logger != nil {
				s.logger.Debugf("Converted %d file(s) to markdown for %s", count, personaName)
			}
		}
	}

	meta := global.NewDocumentMeta(sourcePath, info.Size(), converted)
	if err := global.SaveDocumentMeta(refPath, meta); err != nil {
		return nil, &global.StorageError{Op: "write", Path: refPath, Err: err}
	}

	if s.logger != nil {
		s.logger.Infof("Imported document %s for %s", filepath.Base(refPath), personaName)
	}

	return &global.DocumentRef{
		Name: filepath.Base(refPath),
		Size: info.Size(),
		Path: refPath,
	}, nil
}

// List returns the persona's document refs sorted by name. A persona with
// no document directory has no documents. Files without a metadata sidecar
// (conversion originals, strays) are not refs and are skipped.
func (s *Service) List(personaName string) ([]global.DocumentRef, error) {
	dir, err := s.personaDir(personaName)
	if err != nil {
		return nil, err
	}

	if !global.DirExists(dir) {
		return []global.DocumentRef{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &global.StorageError{Op: "read", Path: dir, Err: err}
	}

	refs := make([]global.DocumentRef, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasSuffix(name, global.MetaSuffix) {
			continue
		}

		path := filepath.Join(dir, name)
		meta, err := global.LoadDocumentMeta(path)
		if err != nil {
			if s.logger != nil {
				s.logger.Warnf("Document metadata for %s is corrupt, skipping: %v", name, err)
			}
			continue
		}
		if meta == nil {
			continue
		}

		refs = append(refs, global.DocumentRef{Name: name, Size: meta.Size, Path: path})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Remove deletes one document ref, its metadata sidecar, and the stored
// original when the ref is a converted markdown copy.
func (s *Service) Remove(personaName, refName string) error {
	path, err := s.resolveRef(personaName, refName)
	if err != nil {
		return err
	}
	if !global.FileExists(path) {
		return fmt.Errorf("document not found: %s", refName)
	}

	if err := os.Remove(path); err != nil {
		return &global.StorageError{Op: "delete", Path: path, Err: err}
	}
	if err := global.DeleteDocumentMeta(path); err != nil && s.logger != nil {
		s.logger.Warnf("Failed to remove metadata for %s: %v", refName, err)
	}

	// A converted ref leaves the stored original beside it.
	if strings.HasSuffix(refName, mdExt) {
		base := strings.TrimSuffix(path, mdExt)
		for ext := range convertExtensions {
			original := base + ext
			if global.FileExists(original) {
				_ = os.Remove(original)
			}
		}
	}

	if s.logger != nil {
		s.logger.Infof("Removed document %s for %s", refName, personaName)
	}
	return nil
}

// copyFile copies a file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	_, err = dstFile.ReadFrom(srcFile)
	return err
}
