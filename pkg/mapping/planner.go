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

package mapping

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/codemod/pkg/model"
	"gitlab.com/tozd/go/errors"
)

const (
	// MaxTokens bounds the planning response
	MaxTokens = 200

	// planTemperature keeps planning deterministic
	planTemperature = 0
)

// 📐 Plan asks the model for a file mapping. A failed call or an unparsable
// response aborts the run; there is no fallback mapping.
func Plan(ctx context.Context, client model.Client, instructions string, files []string) (Mapping, error) {
	logger := zerolog.Ctx(ctx)

	resp, err := client.Complete(ctx, model.CompletionRequest{
		Prompt:      BuildPrompt(instructions, files),
		MaxTokens:   MaxTokens,
		Temperature: planTemperature,
		N:           1,
	})
	if err != nil {
		model.LogFailure(ctx, err)
		return nil, errors.Errorf("requesting file mapping using instructions %q: %w", instructions, err)
	}

	text := resp.First()
	logger.Debug().Str("text", text).Msg("mapping response")

	m, err := Parse(text)
	if err != nil {
		logger.Error().Err(err).Str("text", text).Msg("unparsable mapping response")
		return nil, errors.Errorf("parsing file mapping response for instructions %q: %w", instructions, err)
	}

	if dropped := m.Restrict(files); len(dropped) > 0 {
		logger.Warn().Strs("keys", dropped).Msg("ignoring mapping entries for unknown files")
	}

	logger.Debug().Interface("mapping", m).Msg("parsed mapping")

	return m, nil
}
