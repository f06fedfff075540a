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

// Package openai implements model.Client with the official openai-go SDK.
package openai

import (
	"context"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/walteh/codemod/pkg/model"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultMappingModel supports the legacy completions endpoint
	DefaultMappingModel = "gpt-3.5-turbo-instruct"
	// DefaultEditModel is used for chat based edits
	DefaultEditModel = "gpt-4o-mini"

	providerName = "openai"
)

func init() {
	model.Register(providerName, func(ctx context.Context, settings model.Settings) (model.Client, error) {
		return New(settings)
	})
}

// 🎯 Client implements model.Client for OpenAI
type Client struct {
	client       openai.Client
	mappingModel string
	editModel    string
}

// 🏭 New creates a new OpenAI client. SDK retries are disabled: a failed call fails the run.
func New(settings model.Settings, extra ...option.RequestOption) (*Client, error) {
	if settings.APIKey == "" {
		return nil, errors.New("openai api key missing; set OPENAI_API_KEY or --api-key")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(settings.APIKey),
		option.WithMaxRetries(0),
	}
	if settings.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(settings.BaseURL))
	}
	opts = append(opts, extra...)

	c := &Client{
		client:       openai.NewClient(opts...),
		mappingModel: settings.MappingModel,
		editModel:    settings.EditModel,
	}
	if c.mappingModel == "" {
		c.mappingModel = DefaultMappingModel
	}
	if c.editModel == "" {
		c.editModel = DefaultEditModel
	}
	return c, nil
}

// 📝 Complete calls the completions endpoint
func (c *Client) Complete(ctx context.Context, req model.CompletionRequest) (*model.Response, error) {
	params := openai.CompletionNewParams{
		Model:       openai.CompletionNewParamsModel(c.mappingModel),
		Prompt:      openai.CompletionNewParamsPromptUnion{OfString: openai.String(req.Prompt)},
		Temperature: openai.Float(req.Temperature),
		N:           openai.Int(int64(choiceCount(req.N))),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Completions.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	out := &model.Response{}
	for _, choice := range resp.Choices {
		out.Choices = append(out.Choices, choice.Text)
	}
	return out, nil
}

// ✏️ Edit asks a chat model to apply the instruction to the input.
// The instruction is the system message and the file content the user message.
func (c *Client) Edit(ctx context.Context, req model.EditRequest) (*model.Response, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.editModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(editSystemPrompt(req.Instruction)),
			openai.UserMessage(req.Input),
		},
		N: openai.Int(int64(choiceCount(req.N))),
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	out := &model.Response{}
	for _, choice := range resp.Choices {
		out.Choices = append(out.Choices, choice.Message.Content)
	}
	return out, nil
}

func editSystemPrompt(instruction string) string {
	return "Apply the following instruction to the file the user sends. " +
		"Reply with the complete new file contents only, without explanations or code fences.\n\n" +
		"Instruction: " + instruction
}

func choiceCount(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// wrapError converts SDK errors into model.APIError
func wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &model.APIError{
			Provider:   providerName,
			StatusCode: apiErr.StatusCode,
			Body:       apiErr.RawJSON(),
			Err:        err,
		}
	}
	return &model.APIError{Provider: providerName, Err: err}
}
