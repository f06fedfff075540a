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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/codemod/cmd/codemod/opts"
	"github.com/walteh/codemod/pkg/mapping"
)

// NewPlanCmd creates the plan command
func NewPlanCmd(o *opts.RootOpts) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "plan [input-folder]",
		Short: "Show the file mapping without editing or writing anything",
		Long: `Plan is a dry run. It enumerates the input files, asks the model for a
file mapping and prints it. No file is edited and nothing is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "plan").Logger().WithContext(cmd.Context())

			cfg, err := buildConfig(ctx, cmd, args, o, f)
			if err != nil {
				return err
			}

			runner, err := newRunner(ctx, o, cfg)
			if err != nil {
				return errors.Errorf("creating runner: %w", err)
			}

			res, err := runner.Plan(ctx, cfg)
			if err != nil {
				return errors.Errorf("planning codemod: %w", err)
			}

			if o.UserLogger == nil {
				return nil
			}
			return o.UserLogger.LogTable(planRows(res.Files, res.Mapping))
		},
	}

	f.register(cmd)

	return cmd
}

// planRows renders the mapping as a table with a header row
func planRows(files []string, m mapping.Mapping) [][]string {
	rows := [][]string{{"File", "Operation", "Output"}}
	for _, name := range files {
		entry := m.Lookup(name)
		out := m.OutputName(name)
		if m.Deleted(name) {
			out = "-"
		}
		rows = append(rows, []string{name, string(entry.Operation), out})
	}
	return rows
}
