// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultProvider is the remote model provider used when none is configured
const DefaultProvider = "openai"

// ErrInvalid is the base for all configuration errors
var ErrInvalid = errors.Base("invalid configuration")

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🤖 ModelArgs selects and tunes the remote model provider
type ModelArgs struct {
	Provider     string `json:"provider,omitempty" yaml:"provider,omitempty"`           // Registered provider name (openai, gemini)
	MappingModel string `json:"mapping_model,omitempty" yaml:"mapping_model,omitempty"` // Model used to plan the file mapping
	EditModel    string `json:"edit_model,omitempty" yaml:"edit_model,omitempty"`       // Model used to rewrite file contents
	BaseURL      string `json:"base_url,omitempty" yaml:"base_url,omitempty"`           // Optional API endpoint override

	// APIKey is injected by the caller, never read from a config file.
	APIKey string `json:"-" yaml:"-"`
}

// 📚 Config represents the complete configuration of a codemod run
type Config struct {
	InputFolder    string    `json:"input_folder" yaml:"input_folder"`
	OutputFolder   string    `json:"output_folder,omitempty" yaml:"output_folder,omitempty"`
	IgnorePatterns Patterns  `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`
	MatchPatterns  Patterns  `json:"match_patterns,omitempty" yaml:"match_patterns,omitempty"`
	Instructions   string    `json:"instructions" yaml:"instructions"`
	Temperature    *float64  `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Concurrency    int       `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Model          ModelArgs `json:"model,omitempty" yaml:"model,omitempty"`
}

// 🎯 Load loads the configuration from a file.
// The result is not validated, so flags can still fill in missing fields.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks that the configuration can drive a run and applies defaults
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.Errorf("%w: must supply options for codemod", ErrInvalid)
	}
	if strings.TrimSpace(cfg.Instructions) == "" {
		return errors.Errorf("%w: must supply instructions for codemod operation", ErrInvalid)
	}
	if cfg.InputFolder == "" {
		return errors.Errorf("%w: input_folder is required", ErrInvalid)
	}
	if cfg.Concurrency < 0 {
		return errors.WithDetails(errors.Errorf("%w: concurrency must not be negative", ErrInvalid), "concurrency", cfg.Concurrency)
	}

	cfg.InputFolder = filepath.Clean(cfg.InputFolder)
	if cfg.OutputFolder != "" {
		cfg.OutputFolder = filepath.Clean(cfg.OutputFolder)
	}

	if cfg.Concurrency == 0 {
		cfg.Concurrency = 1
	}
	if cfg.Model.Provider == "" {
		cfg.Model.Provider = DefaultProvider
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	out := cfg.OutputFolder
	if out == "" {
		out = "<default>"
	}
	return fmt.Sprintf("%s -> %s (%q)", cfg.InputFolder, out, cfg.Instructions)
}
