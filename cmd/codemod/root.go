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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/codemod/cmd/codemod/commands"
	"github.com/walteh/codemod/cmd/codemod/opts"
	"github.com/walteh/codemod/pkg/config"
	"github.com/walteh/codemod/pkg/log"
)

// NewRootCommand builds the codemod command tree
func NewRootCommand(creds opts.Credentials) *cobra.Command {
	rootOpts := &opts.RootOpts{Credentials: creds}

	rootCmd := &cobra.Command{
		Use:   "codemod",
		Short: "Rewrite a folder of source files with a large language model",
		Long: `codemod asks a remote model to plan file-level changes (rename, delete)
for a folder of source files, then rewrites each file according to
natural-language instructions and writes the results to an output folder.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := setupLogging(cmd.Context(), rootOpts.Debug)
			rootOpts.UserLogger = log.NewUserLogger(ctx)
			cmd.SetContext(ctx)
		},
	}

	addRootFlags(rootCmd, rootOpts)

	rootCmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewPlanCmd(rootOpts),
		commands.NewVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (.yaml, .json or .hcl)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&o.Provider, "provider", "", "model provider (default "+config.DefaultProvider+")")
	cmd.PersistentFlags().StringVar(&o.APIKey, "api-key", "", "model API key, overrides the provider's environment variable")
}

// setupLogging configures zerolog based on flags and attaches the console logger
func setupLogging(ctx context.Context, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.Ctx(ctx).Level(level)
	ctx = logger.WithContext(ctx)

	return log.NewContext(ctx, log.New(os.Stdout, logger))
}
