/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"fmt"
	"strings"
)

// ServiceErrorKind classifies external collaborator failures.
type ServiceErrorKind string

const (
	ServiceErrorTransient ServiceErrorKind = "transient"
	ServiceErrorAuth      ServiceErrorKind = "auth"
	ServiceErrorQuota     ServiceErrorKind = "quota"
)

// ValidationErrors collects every violation found during a validation pass.
// Callers get the full list, not just the first failure.
type ValidationErrors struct {
	Problems []string
}

func (e *ValidationErrors) Error() string {
	if len(e.Problems) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Problems, "; "))
}

// NewValidationErrors wraps a non-empty problem list. Returns nil for an
// empty list so callers can return it directly.
func NewValidationErrors(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationErrors{Problems: problems}
}

// StorageError reports an I/O or parse failure at the persistence boundary.
// It never escapes the store as a panic; callers check the returned error.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ServiceError reports a chat or speech collaborator failure. Kind lets the
// caller choose a user-facing fallback without parsing vendor messages.
type ServiceError struct {
	Service string
	Kind    ServiceErrorKind
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service error (%s): %v", e.Service, e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ConfigError reports a missing or invalid configuration value, including
// absent collaborator credentials.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error for %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("configuration error for %s", e.Key)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
