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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/qtyconfirm/pkg/text"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "qtyconfirm.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// The default indent is exposed so rules can be written as indent = "${indent}  "
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"indent": cty.StringVal(strings.Repeat(" ", text.DefaultIndentWidth)),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Trigger *struct {
			Action string `hcl:"action,optional"`
			Label  string `hcl:"label,optional"`
		} `hcl:"trigger,block"`
		Confirm *struct {
			Action string  `hcl:"action,optional"`
			Label  string  `hcl:"label,optional"`
			Class  string  `hcl:"class,optional"`
			Indent *string `hcl:"indent,optional"`
		} `hcl:"confirm,block"`
		Batch *struct {
			Globs  []string `hcl:"globs,optional"`
			Ignore []string `hcl:"ignore,optional"`
			Jobs   int      `hcl:"jobs,optional"`
		} `hcl:"batch,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{}
	if t := hclCfg.Trigger; t != nil {
		cfg.Trigger = &TriggerArgs{
			Action: t.Action,
			Label:  t.Label,
		}
	}
	if c := hclCfg.Confirm; c != nil {
		cfg.Confirm = &ConfirmArgs{
			Action: c.Action,
			Label:  c.Label,
			Class:  c.Class,
			Indent: c.Indent,
		}
	}
	if b := hclCfg.Batch; b != nil {
		cfg.Batch = &BatchArgs{
			Globs:  b.Globs,
			Ignore: b.Ignore,
			Jobs:   b.Jobs,
		}
	}

	return cfg, nil
}
