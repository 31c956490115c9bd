/******************************************************************************
 * Copyright (c) 2025-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package preset holds the built-in persona templates and the lookup, merge,
// and suggestion logic combining them with user-saved presets. Built-ins are
// parsed once from the embedded catalog and never change at runtime; user
// presets live in the store.
package preset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PivotLLM/Preceptor/global"
	"github.com/PivotLLM/Preceptor/logging"
	"github.com/PivotLLM/Preceptor/persona"
	"github.com/PivotLLM/Preceptor/schema"
)

//go:embed builtins.json
var builtinsJSON []byte

// builtinOrder fixes the catalog iteration order for suggestions and
// category listings. Names must match the embedded catalog exactly.
var builtinOrder = []string{
	"물리 교수님",
	"화학 실험 조교",
	"친근한 수학 선생님",
	"생물학 박사",
	"공학 멘토",
}

// Store is the user-preset persistence the catalog delegates to.
type Store interface {
	SaveUserPreset(name string, preset global.Preset) error
	GetUserPreset(name string) (*global.Preset, bool, error)
	ListUserPresets() (map[string]global.Preset, error)
	DeleteUserPreset(name string) error
}

// Catalog provides preset lookup and management.
type Catalog struct {
	builtins  map[string]global.Preset
	store     Store
	validator *schema.Validator
	logger    *logging.Logger
}

// Option is a functional option for configuring Catalog
type Option func(*Catalog)

// WithStore sets the user-preset store
func WithStore(s Store) Option {
	return func(c *Catalog) {
		c.store = s
	}
}

// WithLogger sets the logger for the catalog
func WithLogger(logger *logging.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithValidator sets the schema validator used for preset imports
func WithValidator(v *schema.Validator) Option {
	return func(c *Catalog) {
		c.validator = v
	}
}

// New creates a preset catalog with the embedded built-in set.
func New(opts ...Option) (*Catalog, error) {
	c := &Catalog{}
	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		return nil, fmt.Errorf("preset catalog requires a store")
	}
	if c.validator == nil {
		c.validator = schema.New(c.logger)
	}

	var builtins map[string]global.Preset
	if err := json.Unmarshal(builtinsJSON, &builtins); err != nil {
		return nil, fmt.Errorf("failed to parse built-in presets: %w", err)
	}
	if len(builtins) != len(builtinOrder) {
		return nil, fmt.Errorf("built-in preset catalog is inconsistent: %d entries, expected %d",
			len(builtins), len(builtinOrder))
	}
	for _, name := range builtinOrder {
		if _, ok := builtins[name]; !ok {
			return nil, fmt.Errorf("built-in preset catalog is inconsistent: missing %s", name)
		}
	}
	c.builtins = builtins

	return c, nil
}

// Get returns the named preset, checking built-ins first. The returned
// preset is always a copy; mutating it never touches the catalog.
func (c *Catalog) Get(name string) (global.Preset, bool) {
	if builtin, ok := c.builtins[name]; ok {
		return builtin.Clone(), true
	}

	stored, found, err := c.store.GetUserPreset(name)
	if err != nil {
		if c.logger != nil {
			c.logger.Warnf("Failed to read user preset %s: %v", name, err)
		}
		return global.Preset{}, false
	}
	if !found {
		return global.Preset{}, false
	}

	return stored.Clone(), true
}

// IsBuiltin reports whether the name belongs to the built-in set.
func (c *Catalog) IsBuiltin(name string) bool {
	_, ok := c.builtins[name]
	return ok
}

// Names returns the union of built-in and user preset names, deduplicated
// and sorted.
func (c *Catalog) Names() ([]string, error) {
	seen := make(map[string]bool, len(c.builtins))
	names := make([]string, 0, len(c.builtins))

	for name := range c.builtins {
		seen[name] = true
		names = append(names, name)
	}

	users, err := c.store.ListUserPresets()
	if err != nil {
		return nil, err
	}
	for name := range users {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}

// Categories splits the catalog into built-in and user preset names.
func (c *Catalog) Categories() (map[string][]string, error) {
	users, err := c.store.ListUserPresets()
	if err != nil {
		return nil, err
	}

	userNames := make([]string, 0, len(users))
	for name := range users {
		userNames = append(userNames, name)
	}
	sort.Strings(userNames)

	builtins := make([]string, len(builtinOrder))
	copy(builtins, builtinOrder)

	return map[string][]string{
		"기본 프리셋":  builtins,
		"사용자 프리셋": userNames,
	}, nil
}

// SaveUserPreset validates and stores a user preset. Built-in names are
// reserved; saving one is refused so the built-in never gets shadowed.
func (c *Catalog) SaveUserPreset(name string, preset global.Preset) error {
	if c.IsBuiltin(name) {
		return fmt.Errorf("cannot overwrite built-in preset: %s", name)
	}

	if ok, errors := validatePreset(preset); !ok {
		return fmt.Errorf("invalid preset: %s", strings.Join(errors, " "))
	}

	return c.store.SaveUserPreset(name, preset)
}

// DeleteUserPreset removes a user preset. Built-ins cannot be deleted.
func (c *Catalog) DeleteUserPreset(name string) error {
	if c.IsBuiltin(name) {
		return fmt.Errorf("cannot delete built-in preset: %s", name)
	}

	return c.store.DeleteUserPreset(name)
}

// Validate checks a preset document and collects every violation.
func (c *Catalog) Validate(doc map[string]interface{}) (bool, []string) {
	return persona.ValidateDocument(doc)
}

// validatePreset applies the document rules to a typed preset.
func validatePreset(p global.Preset) (bool, []string) {
	data, err := json.Marshal(p)
	if err != nil {
		return false, []string{fmt.Sprintf("설정을 검사할 수 없습니다: %v", err)}
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, []string{fmt.Sprintf("설정을 검사할 수 없습니다: %v", err)}
	}

	return persona.ValidateDocument(doc)
}
