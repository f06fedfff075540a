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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
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

// 📝 Parse parses the config from HCL.
// Expressions can read environment variables through the env object, e.g. env.HOME.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "codemod.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		InputFolder    string    `hcl:"input_folder,optional"`
		OutputFolder   string    `hcl:"output_folder,optional"`
		IgnorePatterns cty.Value `hcl:"ignore_patterns,optional"`
		MatchPatterns  cty.Value `hcl:"match_patterns,optional"`
		Instructions   string    `hcl:"instructions,optional"`
		Temperature    *float64  `hcl:"temperature,optional"`
		Concurrency    int       `hcl:"concurrency,optional"`
		Model          *struct {
			Provider     string `hcl:"provider,optional"`
			MappingModel string `hcl:"mapping_model,optional"`
			EditModel    string `hcl:"edit_model,optional"`
			BaseURL      string `hcl:"base_url,optional"`
		} `hcl:"model,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	ignore, err := patternsFromCty(hclCfg.IgnorePatterns)
	if err != nil {
		return nil, errors.Errorf("decoding ignore_patterns: %w", err)
	}
	match, err := patternsFromCty(hclCfg.MatchPatterns)
	if err != nil {
		return nil, errors.Errorf("decoding match_patterns: %w", err)
	}

	// Convert to model
	cfg := &Config{
		InputFolder:    hclCfg.InputFolder,
		OutputFolder:   hclCfg.OutputFolder,
		IgnorePatterns: ignore,
		MatchPatterns:  match,
		Instructions:   hclCfg.Instructions,
		Temperature:    hclCfg.Temperature,
		Concurrency:    hclCfg.Concurrency,
	}

	if hclCfg.Model != nil {
		cfg.Model = ModelArgs{
			Provider:     hclCfg.Model.Provider,
			MappingModel: hclCfg.Model.MappingModel,
			EditModel:    hclCfg.Model.EditModel,
			BaseURL:      hclCfg.Model.BaseURL,
		}
	}

	return cfg, nil
}

// envObject exposes the process environment to HCL expressions
func envObject() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}
