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

package operation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemod/pkg/config"
	"github.com/walteh/codemod/pkg/editor"
	"github.com/walteh/codemod/pkg/enumerate"
	"github.com/walteh/codemod/pkg/log"
	"github.com/walteh/codemod/pkg/mapping"
	"github.com/walteh/codemod/pkg/model"
	"github.com/walteh/codemod/pkg/output"
)

// 🏃 Runner drives a codemod run through its states
type Runner struct {
	client        model.Client
	onStateChange func(State)

	mu    sync.Mutex
	state State
}

// 🏗️ New creates a new runner
func New(opts Options) (*Runner, error) {
	if opts.Client == nil {
		return nil, errors.Errorf("client is required")
	}
	return &Runner{
		client:        opts.Client,
		onStateChange: opts.OnStateChange,
		state:         StateIdle,
	}, nil
}

// State returns the current state
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) transition(ctx context.Context, s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Stringer("state", s).Msg("state change")
	if r.onStateChange != nil {
		r.onStateChange(s)
	}
}

// fail moves the run into StateFailed and returns err unchanged
func (r *Runner) fail(ctx context.Context, err error) error {
	r.transition(ctx, StateFailed)
	console := log.FromContext(ctx)
	console.EndRun(ctx)
	console.Errorf("codemod run failed: %s", err.Error())
	return err
}

// ▶️ Run executes a full run: validate, enumerate, plan, edit, write
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	ctx, res, err := r.prepare(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := r.planFiles(ctx, cfg, res); err != nil {
		return nil, err
	}

	r.transition(ctx, StateEditing)
	records, err := editor.Edit(ctx, r.client, editor.Options{
		InputFolder:  cfg.InputFolder,
		Files:        res.Files,
		Mapping:      res.Mapping,
		Instructions: cfg.Instructions,
		Temperature:  cfg.Temperature,
		Concurrency:  cfg.Concurrency,
	})
	if err != nil {
		return nil, r.fail(ctx, errors.Errorf("editing files: %w", err))
	}
	res.Records = records

	r.transition(ctx, StateWriting)
	if err := output.NewWriter(res.OutputFolder).WriteAll(ctx, records); err != nil {
		return nil, r.fail(ctx, errors.Errorf("writing output: %w", err))
	}

	console := log.FromContext(ctx)
	console.Header("output files")
	for _, rec := range records {
		console.LogFileOperation(ctx, log.FileOperation{
			Path:      rec.Path,
			Type:      "output",
			Status:    "WRITTEN",
			IsWritten: true,
			Size:      len(rec.Content),
		})
	}

	r.finish(ctx, res)
	console.Successf("done in %s, output written to %s", res.Elapsed.Round(time.Millisecond), res.OutputFolder)
	return res, nil
}

// 🔍 Plan is a dry run: it stops after the mapping is known and writes nothing
func (r *Runner) Plan(ctx context.Context, cfg *config.Config) (*Result, error) {
	ctx, res, err := r.prepare(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := r.planFiles(ctx, cfg, res); err != nil {
		return nil, err
	}

	r.finish(ctx, res)
	log.FromContext(ctx).Successf("planned %d files in %s", len(res.Files), res.Elapsed.Round(time.Millisecond))
	return res, nil
}

// prepare validates cfg and tags the context with a new run id.
// Validation happens before any filesystem or network access.
func (r *Runner) prepare(ctx context.Context, cfg *config.Config) (context.Context, *Result, error) {
	res := &Result{
		ID:      uuid.NewString(),
		Started: time.Now(),
	}

	logger := zerolog.Ctx(ctx).With().Str("run_id", res.ID).Logger()
	ctx = logger.WithContext(ctx)

	r.transition(ctx, StateValidating)
	if err := cfg.Validate(); err != nil {
		r.transition(ctx, StateFailed)
		return ctx, nil, err
	}

	res.InputFolder = cfg.InputFolder
	res.OutputFolder = output.ResolveFolder(cfg.InputFolder, cfg.OutputFolder)

	log.FromContext(ctx).StartRun(ctx, log.RunOperation{
		ID:           res.ID,
		InputFolder:  res.InputFolder,
		OutputFolder: res.OutputFolder,
		Instructions: cfg.Instructions,
	})

	return ctx, res, nil
}

// planFiles runs the enumerating and planning states
func (r *Runner) planFiles(ctx context.Context, cfg *config.Config, res *Result) error {
	console := log.FromContext(ctx)

	r.transition(ctx, StateEnumerating)

	patterns := cfg.MatchPatterns
	if len(patterns) == 0 {
		patterns = []string{enumerate.DefaultMatchPattern}
	}
	console.Infof("match patterns: %s", strings.Join(patterns, ", "))

	files, err := enumerate.Files(ctx, enumerate.Options{
		InputFolder:    cfg.InputFolder,
		MatchPatterns:  patterns,
		IgnorePatterns: cfg.IgnorePatterns,
	})
	if err != nil {
		return r.fail(ctx, errors.Errorf("enumerating input files: %w", err))
	}
	if len(files) > MaxInputFiles {
		return r.fail(ctx, errors.WithDetails(
			errors.Errorf("%w: found %d files, current max is %d files", ErrTooManyFiles, len(files), MaxInputFiles),
			"count", len(files), "limit", MaxInputFiles,
		))
	}
	res.Files = files

	console.Header("input files")
	for _, f := range files {
		console.LogFileOperation(ctx, log.FileOperation{Path: f, Type: "input", Status: "MATCHED"})
	}

	r.transition(ctx, StatePlanning)
	m, err := mapping.Plan(ctx, r.client, cfg.Instructions, files)
	if err != nil {
		return r.fail(ctx, err)
	}
	res.Mapping = m

	console.Header("file mapping")
	for _, f := range files {
		console.LogFileOperation(ctx, mappingOperation(f, m.Lookup(f)))
	}

	return nil
}

func (r *Runner) finish(ctx context.Context, res *Result) {
	res.Elapsed = log.FromContext(ctx).EndRun(ctx)
	if res.Elapsed == 0 {
		res.Elapsed = time.Since(res.Started)
	}
	res.State = StateDone
	r.transition(ctx, StateDone)

	zerolog.Ctx(ctx).Info().
		Dur("elapsed", res.Elapsed).
		Str("output_folder", res.OutputFolder).
		Int("records", len(res.Records)).
		Msg("codemod run done")
}

// mappingOperation renders one mapping decision for the console
func mappingOperation(name string, entry mapping.Entry) log.FileOperation {
	op := log.FileOperation{Path: name, Type: "mapping"}
	switch entry.Operation {
	case mapping.OperationDelete:
		op.Status = "DELETE"
		op.IsDeleted = true
	case mapping.OperationRename:
		op.Status = "RENAME"
		if entry.Name != "" {
			op.Status = fmt.Sprintf("RENAME %s", entry.Name)
			op.IsRenamed = true
		}
	case mapping.OperationExpand:
		op.Status = "EXPAND"
	default:
		op.Status = "NONE"
	}
	return op
}
