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
)

// NewRunCmd creates the run command
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [input-folder]",
		Short: "Rewrite files and write them to the output folder",
		Long: `Run executes a full codemod:
1. Enumerate the input files matching the patterns
2. Ask the model for a file mapping (rename, delete, none)
3. Ask the model to rewrite each remaining file
4. Write the results to the output folder`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "run").Logger().WithContext(cmd.Context())

			cfg, err := buildConfig(ctx, cmd, args, o, f)
			if err != nil {
				return err
			}

			runner, err := newRunner(ctx, o, cfg)
			if err != nil {
				return errors.Errorf("creating runner: %w", err)
			}

			res, err := runner.Run(ctx, cfg)
			if err != nil {
				return errors.Errorf("running codemod: %w", err)
			}

			if o.UserLogger != nil {
				o.UserLogger.LogValidation(true, "Wrote "+res.OutputFolder, nil)
			}
			return nil
		},
	}

	f.register(cmd)

	return cmd
}
