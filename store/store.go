/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package store persists personas and user presets as JSON documents in the
// data directory, with an in-memory fallback when the directory is not
// writable. All mutations are atomic writes under per-document locks.
package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/PivotLLM/Preceptor/global"
	"github.com/PivotLLM/Preceptor/logging"
	"github.com/PivotLLM/Preceptor/schema"
)

// Service provides persona and preset storage operations.
type Service struct {
	dataDir   string
	backend   Backend
	retention int  // most recent N personas kept on save
	fileLock  bool // guard file writes with .lock sibling files
	logger    *logging.Logger
	validator *schema.Validator
}

// Option is a functional option for configuring Service
type Option func(*Service)

// WithDataDir sets the data directory for file storage
func WithDataDir(dir string) Option {
	return func(s *Service) {
		s.dataDir = dir
	}
}

// WithBackend sets an explicit storage backend, skipping the writability probe
func WithBackend(b Backend) Option {
	return func(s *Service) {
		s.backend = b
	}
}

// WithRetention sets how many personas are kept; older records are dropped
// on save. Values outside the accepted range fall back to the default.
func WithRetention(n int) Option {
	return func(s *Service) {
		validated, err := global.ValidateRetention(n)
		if err != nil {
			validated = global.DefaultMaxPersonas
		}
		s.retention = validated
	}
}

// WithFileLock enables or disables cross-process lock files (default on)
func WithFileLock(enabled bool) Option {
	return func(s *Service) {
		s.fileLock = enabled
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithValidator sets the schema validator used for import and restore
func WithValidator(v *schema.Validator) Option {
	return func(s *Service) {
		s.validator = v
	}
}

// NewService creates a new storage service. When no backend is given the
// data directory is probed for writability and an in-memory backend is used
// if the probe fails.
func NewService(opts ...Option) *Service {
	s := &Service{
		retention: global.DefaultMaxPersonas,
		fileLock:  true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.backend == nil {
		if s.dataDir != "" {
			s.backend = probeBackend(s.dataDir, s.fileLock, s.logger)
		} else {
			s.backend = newMemoryBackend()
		}
	}

	if s.validator == nil {
		s.validator = schema.New(s.logger)
	}

	return s
}

// Backend returns the name of the active storage backend
func (s *Service) Backend() string {
	return s.backend.Name()
}

// loadPersonas reads the persona document. A missing file is an empty
// collection, and so is a corrupt one: storage never refuses a read, it
// logs the problem and starts over.
func (s *Service) loadPersonas() ([]global.Persona, error) {
	var personas []global.Persona
	if _, err := s.backend.Load(global.PersonaFileName, &personas); err != nil {
		var storageErr *global.StorageError
		if errors.As(err, &storageErr) && storageErr.Op == "parse" {
			if s.logger != nil {
				s.logger.Warnf("Persona document is corrupt, treating as empty: %v", err)
			}
			return []global.Persona{}, nil
		}
		return nil, err
	}
	if personas == nil {
		personas = []global.Persona{}
	}
	return personas, nil
}

// savePersonas writes the persona document truncated to the retention cap.
// Storage order is insertion order, so the newest records are the tail.
func (s *Service) savePersonas(personas []global.Persona) error {
	if len(personas) > s.retention {
		dropped := len(personas) - s.retention
		personas = personas[dropped:]
		if s.logger != nil {
			s.logger.Infof("Retention cap %d reached, dropped %d oldest personas", s.retention, dropped)
		}
	}

	return s.backend.Save(global.PersonaFileName, personas)
}

// SavePersona appends a record to the persisted collection. Records are
// immutable: an edited persona arrives here as a new record with a new id.
// The write is all-or-nothing; a failure leaves the prior content intact.
func (s *Service) SavePersona(p global.Persona) error {
	err := s.backend.WithLock(global.PersonaFileName, func() error {
		personas, err := s.loadPersonas()
		if err != nil {
			return err
		}

		personas = append(personas, p)
		return s.savePersonas(personas)
	})
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Saved persona: %s (%s, %s)", p.Name, p.Subject, p.Level)
	}
	return nil
}

// ListPersonas returns all persisted records in storage order.
func (s *Service) ListPersonas() ([]global.Persona, error) {
	return s.loadPersonas()
}

// ListRecentPersonas returns records sorted by creation time descending,
// truncated to limit.
func (s *Service) ListRecentPersonas(limit int) ([]global.Persona, error) {
	if limit <= 0 {
		limit = global.DefaultRecentLimit
	}

	personas, err := s.loadPersonas()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(personas, func(i, j int) bool {
		return personas[i].CreatedAt.After(personas[j].CreatedAt)
	})

	if len(personas) > limit {
		personas = personas[:limit]
	}

	return personas, nil
}

// GetPersona returns a stored persona by id. Absence is not an error.
func (s *Service) GetPersona(id string) (*global.Persona, bool, error) {
	personas, err := s.loadPersonas()
	if err != nil {
		return nil, false, err
	}

	for i := range personas {
		if personas[i].ID == id {
			return &personas[i], true, nil
		}
	}

	return nil, false, nil
}

// DeletePersona removes every record with the given id. Deleting an id that
// is not stored is a no-op, not an error: only I/O failures are reported.
func (s *Service) DeletePersona(id string) error {
	removed := 0
	err := s.backend.WithLock(global.PersonaFileName, func() error {
		personas, err := s.loadPersonas()
		if err != nil {
			return err
		}

		kept := personas[:0]
		for _, p := range personas {
			if p.ID == id {
				removed++
				continue
			}
			kept = append(kept, p)
		}

		if removed == 0 {
			return nil
		}

		return s.savePersonas(kept)
	})
	if err != nil {
		return err
	}

	if s.logger != nil && removed > 0 {
		s.logger.Infof("Deleted persona: %s", id)
	}
	return nil
}

// ImportPersona validates an export envelope, unwraps the record, and stores
// it as a fresh record with a new id and creation time.
func (s *Service) ImportPersona(data []byte) (*global.Persona, error) {
	persona, err := s.ParsePersonaExport(data)
	if err != nil {
		return nil, err
	}

	var problems []string
	if persona.Name == "" {
		problems = append(problems, fmt.Sprintf("필수 필드 '%s'가 누락되었습니다.", "name"))
	}
	if persona.Subject == "" {
		problems = append(problems, fmt.Sprintf("필수 필드 '%s'가 누락되었습니다.", "subject"))
	}
	if persona.Level == "" {
		problems = append(problems, fmt.Sprintf("필수 필드 '%s'가 누락되었습니다.", "level"))
	}
	if len(persona.Personality) == 0 {
		problems = append(problems, fmt.Sprintf("필수 필드 '%s'가 누락되었습니다.", "personality"))
	}
	if err := global.NewValidationErrors(problems); err != nil {
		return nil, err
	}

	persona.ID = uuid.New().String()
	persona.CreatedAt = time.Now()
	if persona.Version == "" {
		persona.Version = global.PersonaSchemaVersion
	}

	if err := s.SavePersona(*persona); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Infof("Imported persona: %s", persona.Name)
	}
	return persona, nil
}

// CleanOldPersonas removes personas created more than the given number of
// days ago. Records without a creation time are kept. Returns how many
// records were removed.
func (s *Service) CleanOldPersonas(days int) (int, error) {
	validated, err := global.ValidateCleanupDays(days)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().AddDate(0, 0, -validated)
	removed := 0

	err = s.backend.WithLock(global.PersonaFileName, func() error {
		personas, err := s.loadPersonas()
		if err != nil {
			return err
		}

		kept := personas[:0]
		for _, p := range personas {
			if p.CreatedAt.IsZero() || p.CreatedAt.After(cutoff) {
				kept = append(kept, p)
			} else {
				removed++
			}
		}

		if removed == 0 {
			return nil
		}

		return s.savePersonas(kept)
	})
	if err != nil {
		return 0, err
	}

	if s.logger != nil && removed > 0 {
		s.logger.Infof("Cleanup removed %d personas older than %d days", removed, validated)
	}
	return removed, nil
}

// Stats returns counts, document sizes, and the active backend name.
func (s *Service) Stats() (*global.StorageStats, error) {
	personas, err := s.loadPersonas()
	if err != nil {
		return nil, err
	}

	presets, err := s.loadPresets()
	if err != nil {
		return nil, err
	}

	return &global.StorageStats{
		PersonaCount:     len(personas),
		PresetCount:      len(presets),
		PersonaFileBytes: s.backend.Size(global.PersonaFileName),
		PresetFileBytes:  s.backend.Size(global.PresetFileName),
		Backend:          s.backend.Name(),
	}, nil
}
