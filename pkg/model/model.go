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

// Package model abstracts the remote large-language-model API used to plan
// and edit files.
package model

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Client is the remote model API surface a codemod run needs
type Client interface {
	// 📝 Complete runs a text completion for a prompt
	Complete(ctx context.Context, req CompletionRequest) (*Response, error)

	// ✏️ Edit rewrites input according to a natural-language instruction
	Edit(ctx context.Context, req EditRequest) (*Response, error)
}

// CompletionRequest is a single text-completion call
type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
	N           int // number of choices, 0 means 1
}

// EditRequest is a single edit call
type EditRequest struct {
	Input       string
	Instruction string
	Temperature *float64 // nil keeps the provider default
	N           int      // number of choices, 0 means 1
}

// Response holds the text choices returned by a call
type Response struct {
	Choices []string
}

// First returns the first choice, or "" when the model returned nothing
func (r *Response) First() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0]
}

// APIError carries the status and body of a failed remote call for diagnostics
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// 🔍 LogFailure surfaces the status and body of a failed call before it is wrapped
func LogFailure(ctx context.Context, err error) {
	logger := zerolog.Ctx(ctx)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		logger.Error().
			Str("provider", apiErr.Provider).
			Int("status", apiErr.StatusCode).
			Str("body", apiErr.Body).
			Msg("remote model call failed")
		return
	}

	logger.Error().Err(err).Msg("remote model call failed")
}

// 🔧 Settings configures a provider
type Settings struct {
	APIKey       string
	BaseURL      string
	MappingModel string // model used for Complete
	EditModel    string // model used for Edit
}

// 🏭 Factory creates a new client
type Factory func(ctx context.Context, settings Settings) (Client, error)

var (
	// 🗺️ providers is a map of provider names to factories
	providers = make(map[string]Factory)
)

// 📝 Register registers a provider factory
func Register(name string, factory Factory) {
	providers[name] = factory
}

// 🎯 Get returns a provider factory by name
func Get(name string) Factory {
	return providers[name]
}

// 🏭 New creates a client for the named provider
func New(ctx context.Context, name string, settings Settings) (Client, error) {
	factory := Get(name)
	if factory == nil {
		return nil, errors.Errorf("provider %s not found, options: %s", name, strings.Join(Names(), ", "))
	}

	client, err := factory(ctx, settings)
	if err != nil {
		return nil, errors.Errorf("creating %s client: %w", name, err)
	}
	return client, nil
}

// Names returns the registered provider names in sorted order
func Names() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
