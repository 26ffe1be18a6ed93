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
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/qtyconfirm/pkg/text"
	"gitlab.com/tozd/go/errors"
)

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
	name := strings.ToLower(filepath.Base(filename))
	for _, p := range parsers {
		if p.CanParse(name) {
			return p
		}
	}
	return nil
}

// 🎯 TriggerArgs selects the increment buttons to match
type TriggerArgs struct {
	Action string `json:"action,omitempty" yaml:"action,omitempty"` // onclick function, e.g. updateQty
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`   // button text, e.g. +
}

// ✅ ConfirmArgs shapes the generated confirm button
type ConfirmArgs struct {
	Action string  `json:"action,omitempty" yaml:"action,omitempty"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	Class  string  `json:"class,omitempty" yaml:"class,omitempty"`
	Indent *string `json:"indent,omitempty" yaml:"indent,omitempty"` // nil keeps the default, "" disables indentation
}

// 📦 BatchArgs configures the batch command
type BatchArgs struct {
	Globs  []string `json:"globs,omitempty" yaml:"globs,omitempty"`   // input patterns relative to the root
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"` // patterns for files to skip
	Jobs   int      `json:"jobs,omitempty" yaml:"jobs,omitempty"`     // 0 means one per CPU
}

// 📚 Config represents the complete configuration. Every field is optional.
type Config struct {
	Trigger *TriggerArgs `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	Confirm *ConfirmArgs `json:"confirm,omitempty" yaml:"confirm,omitempty"`
	Batch   *BatchArgs   `json:"batch,omitempty" yaml:"batch,omitempty"`
}

// 🏭 Default returns an empty configuration, which yields text.DefaultRule
func Default() *Config {
	return &Config{}
}

// 🎯 Load loads the configuration from a file
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

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔧 Rule merges the configured overrides onto text.DefaultRule
func (cfg *Config) Rule() text.Rule {
	rule := text.DefaultRule()

	if t := cfg.Trigger; t != nil {
		if t.Action != "" {
			rule.TriggerAction = t.Action
		}
		if t.Label != "" {
			rule.TriggerLabel = t.Label
		}
	}

	if c := cfg.Confirm; c != nil {
		if c.Action != "" {
			rule.ConfirmAction = c.Action
		}
		if c.Label != "" {
			rule.ConfirmLabel = c.Label
		}
		if c.Class != "" {
			rule.ConfirmClass = c.Class
		}
		if c.Indent != nil {
			rule.Indent = *c.Indent
		}
	}

	return rule
}

// 📂 BatchGlobs returns the configured input patterns, or **/*.html
func (cfg *Config) BatchGlobs() []string {
	if cfg.Batch == nil || len(cfg.Batch.Globs) == 0 {
		return []string{"**/*.html"}
	}
	return cfg.Batch.Globs
}

// 🙈 BatchIgnore returns the configured ignore patterns
func (cfg *Config) BatchIgnore() []string {
	if cfg.Batch == nil {
		return nil
	}
	return cfg.Batch.Ignore
}

// ⚡ BatchJobs returns the configured parallelism, 0 when unset
func (cfg *Config) BatchJobs() int {
	if cfg.Batch == nil {
		return 0
	}
	return cfg.Batch.Jobs
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if err := text.ValidateRule(cfg.Rule()); err != nil {
		return errors.Errorf("invalid rule: %w", err)
	}

	if cfg.Batch != nil {
		for _, pattern := range cfg.Batch.Globs {
			if !doublestar.ValidatePattern(pattern) {
				return errors.Errorf("batch.globs: invalid pattern %q", pattern)
			}
		}
		for _, pattern := range cfg.Batch.Ignore {
			if !doublestar.ValidatePattern(pattern) {
				return errors.Errorf("batch.ignore: invalid pattern %q", pattern)
			}
		}
		if cfg.Batch.Jobs < 0 {
			return errors.Errorf("batch.jobs must not be negative, got %d", cfg.Batch.Jobs)
		}
	}

	return nil
}
