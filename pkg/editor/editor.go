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

// Package editor rewrites the contents of each input file through the
// remote model, one call per file.
package editor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/codemod/pkg/log"
	"github.com/walteh/codemod/pkg/mapping"
	"github.com/walteh/codemod/pkg/model"
	"github.com/walteh/codemod/pkg/output"
)

// MaxFileCharacters is the largest file, in characters, sent to the model
const MaxFileCharacters = 10000

// ErrFileTooLarge is returned before any remote call for oversize files
var ErrFileTooLarge = errors.Base("file too large")

// 📝 Options configures an edit pass
type Options struct {
	InputFolder  string
	Files        []string // relative to InputFolder, slash separated
	Mapping      mapping.Mapping
	Instructions string
	Temperature  *float64
	Concurrency  int // 0 or 1 edits files one at a time
}

// ✏️ Edit rewrites every non-deleted file and returns one record per output
// file, in the order of opts.Files. The first failure aborts the pass.
func Edit(ctx context.Context, client model.Client, opts Options) ([]output.Record, error) {
	logger := zerolog.Ctx(ctx)

	var pending []string
	for _, name := range opts.Files {
		if opts.Mapping.Deleted(name) {
			logger.Info().Str("file", name).Msg("skipping deleted file")
			continue
		}
		pending = append(pending, name)
	}

	records := make([]output.Record, len(pending))
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))

	for i, name := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record, err := editFile(gctx, client, opts, name)
			if err != nil {
				return err
			}
			records[i] = record

			logger.Info().
				Str("file", name).
				Str("output", record.Path).
				Msg(log.FormatProgress(int(done.Add(1)), len(pending)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// editFile runs the edit call for a single file
func editFile(ctx context.Context, client model.Client, opts Options, name string) (output.Record, error) {
	logger := zerolog.Ctx(ctx).With().Str("file", name).Logger()

	data, err := os.ReadFile(filepath.Join(opts.InputFolder, filepath.FromSlash(name)))
	if err != nil {
		return output.Record{}, errors.Errorf("reading %s: %w", name, err)
	}

	content := string(data)
	if n := utf8.RuneCountInString(content); n > MaxFileCharacters {
		return output.Record{}, errors.WithDetails(
			errors.Errorf("%w: %s is %d characters, limit is %d", ErrFileTooLarge, name, n, MaxFileCharacters),
			"file", name, "length", n, "limit", MaxFileCharacters,
		)
	}

	if entry := opts.Mapping.Lookup(name); entry.Operation == mapping.OperationExpand {
		log.FromContext(ctx).Warningf("expand is not supported, keeping %s as is (proposed %s)", name, strings.Join(entry.Names, ", "))
	}

	logger.Debug().Int("length", len(content)).Msg("editing file")

	resp, err := client.Edit(ctx, model.EditRequest{
		Input:       content,
		Instruction: opts.Instructions,
		Temperature: opts.Temperature,
		N:           1,
	})
	if err != nil {
		model.LogFailure(ctx, err)
		return output.Record{}, errors.Errorf("editing %s: %w", name, err)
	}

	return output.Record{
		Path:    opts.Mapping.OutputName(name),
		Content: resp.First(),
	}, nil
}
