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

package commands

import (
	"context"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemod/cmd/codemod/opts"
	"github.com/walteh/codemod/pkg/config"
	"github.com/walteh/codemod/pkg/model"
	"github.com/walteh/codemod/pkg/operation"
)

// runFlags are the flags shared by run and plan
type runFlags struct {
	instructions string
	output       string
	match        []string
	ignore       []string
	temperature  float64
	concurrency  int
	mappingModel string
	editModel    string
	baseURL      string
}

func (f *runFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.instructions, "instructions", "i", "", "natural-language instructions for the codemod")
	fs.StringVarP(&f.output, "output", "o", "", "output folder (default <input-folder>_codemod_output)")
	fs.StringArrayVarP(&f.match, "match", "m", nil, "glob pattern selecting input files, repeatable (default **/*)")
	fs.StringArrayVar(&f.ignore, "ignore", nil, "glob pattern excluding input files, repeatable")
	fs.Float64Var(&f.temperature, "temperature", 0, "sampling temperature for the edit call")
	fs.IntVar(&f.concurrency, "concurrency", 1, "number of files edited at once")
	fs.StringVar(&f.mappingModel, "mapping-model", "", "model used to plan the file mapping")
	fs.StringVar(&f.editModel, "edit-model", "", "model used to edit files")
	fs.StringVar(&f.baseURL, "base-url", "", "model API base URL")
}

// 📚 buildConfig loads the config file, if any, applies flags and args on top
// and validates the result before any client is created
func buildConfig(ctx context.Context, cmd *cobra.Command, args []string, root *opts.RootOpts, f *runFlags) (*config.Config, error) {
	cfg := &config.Config{}
	if root.ConfigFile != "" {
		loaded, err := config.Load(ctx, root.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.InputFolder = args[0]
	}

	changed := cmd.Flags().Changed
	if changed("instructions") {
		cfg.Instructions = f.instructions
	}
	if changed("output") {
		cfg.OutputFolder = f.output
	}
	if changed("match") {
		cfg.MatchPatterns = config.Patterns(f.match)
	}
	if changed("ignore") {
		cfg.IgnorePatterns = config.Patterns(f.ignore)
	}
	if changed("temperature") {
		t := f.temperature
		cfg.Temperature = &t
	}
	if changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if changed("mapping-model") {
		cfg.Model.MappingModel = f.mappingModel
	}
	if changed("edit-model") {
		cfg.Model.EditModel = f.editModel
	}
	if changed("base-url") {
		cfg.Model.BaseURL = f.baseURL
	}
	if root.Provider != "" {
		cfg.Model.Provider = root.Provider
	}
	if cfg.Model.Provider == "" {
		cfg.Model.Provider = config.DefaultProvider
	}
	cfg.Model.APIKey = root.ResolveAPIKey(cfg.Model.Provider)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// 🏗️ newRunner creates the model client and a runner that reports stages to the user
func newRunner(ctx context.Context, root *opts.RootOpts, cfg *config.Config) (*operation.Runner, error) {
	client, err := model.New(ctx, cfg.Model.Provider, model.Settings{
		APIKey:       cfg.Model.APIKey,
		BaseURL:      cfg.Model.BaseURL,
		MappingModel: cfg.Model.MappingModel,
		EditModel:    cfg.Model.EditModel,
	})
	if err != nil {
		return nil, err
	}

	return operation.New(operation.Options{
		Client: client,
		OnStateChange: func(s operation.State) {
			reportState(root, s)
		},
	})
}

// stageCount is the number of non-terminal stages of a full run
const stageCount = int(operation.StateWriting)

func reportState(root *opts.RootOpts, s operation.State) {
	if root.UserLogger == nil {
		return
	}
	switch s {
	case operation.StateIdle:
		return
	case operation.StateDone, operation.StateFailed:
		root.UserLogger.LogStateChange("codemod run " + s.String())
	default:
		root.UserLogger.LogStage(s.String(), int(s), stageCount)
	}
}
