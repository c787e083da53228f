// SPDX-License-Identifier: MIT

// Package config holds the broadcasting defaults consumed by labels and
// reshape entry points.
//
// Settings are plain values: they are loaded once by the caller (from the
// environment, a YAML document or Default) and threaded explicitly into every
// top-level call through WithSettings options. No package reads ambient state.
//
//	VECTRA_BROADCASTING_INDEX_FROM=stack
//	VECTRA_BROADCASTING_KEEP=last
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Defaults (single source of truth). The struct tags below MUST mirror them.
const (
	DefaultIndexFrom      = "strict"
	DefaultColumnsFrom    = "stack"
	DefaultDropDuplicates = true
	DefaultDropRedundant  = true
	DefaultKeep           = "first"

	// DefaultEnvPrefix is the envconfig prefix used by FromEnv("").
	DefaultEnvPrefix = "VECTRA"
)

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("config: invalid settings")

// Settings is the complete configuration surface.
type Settings struct {
	Broadcasting Broadcasting `yaml:"broadcasting" envconfig:"BROADCASTING"`
}

// Broadcasting controls label resolution during broadcast and stacking.
type Broadcasting struct {
	IndexFrom      string `yaml:"index_from" envconfig:"INDEX_FROM" default:"strict" validate:"oneof=strict stack none"`
	ColumnsFrom    string `yaml:"columns_from" envconfig:"COLUMNS_FROM" default:"stack" validate:"oneof=strict stack none"`
	DropDuplicates bool   `yaml:"drop_duplicates" envconfig:"DROP_DUPLICATES" default:"true"`
	DropRedundant  bool   `yaml:"drop_redundant" envconfig:"DROP_REDUNDANT" default:"true"`
	Keep           string `yaml:"keep" envconfig:"KEEP" default:"first" validate:"oneof=first last"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{Broadcasting: Broadcasting{
		IndexFrom:      DefaultIndexFrom,
		ColumnsFrom:    DefaultColumnsFrom,
		DropDuplicates: DefaultDropDuplicates,
		DropRedundant:  DefaultDropRedundant,
		Keep:           DefaultKeep,
	}}
}

// FromEnv loads settings from environment variables under prefix
// (DefaultEnvPrefix when empty). Unset variables take their tag defaults.
func FromEnv(prefix string) (Settings, error) {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	var s Settings
	if err := envconfig.Process(prefix, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to load settings from env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// FromYAML decodes a YAML document over Default, so omitted keys keep their
// defaults.
func FromYAML(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// Validate checks the enumerated fields.
func (s Settings) Validate() error {
	v := validator.New()
	if err := v.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s=%q must be one of [%s]", ErrInvalidSettings, fe.Field(), fe.Value(), fe.Param())
		}
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	return nil
}
