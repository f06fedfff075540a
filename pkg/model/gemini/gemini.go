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

// Package gemini implements model.Client with the Google GenAI SDK.
package gemini

import (
	"context"
	"strings"

	"github.com/walteh/codemod/pkg/model"
	"gitlab.com/tozd/go/errors"
	"google.golang.org/genai"
)

const (
	// DefaultModel is used for both planning and editing when none is configured
	DefaultModel = "gemini-2.0-flash"

	providerName = "gemini"
)

func init() {
	model.Register(providerName, New)
}

// 🎯 Client implements model.Client for Gemini
type Client struct {
	client       *genai.Client
	mappingModel string
	editModel    string
}

// 🏭 New creates a new Gemini client
func New(ctx context.Context, settings model.Settings) (model.Client, error) {
	if settings.APIKey == "" {
		return nil, errors.New("gemini api key missing; set GEMINI_API_KEY or --api-key")
	}

	cfg := &genai.ClientConfig{
		APIKey:  settings.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if settings.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: settings.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.Errorf("creating genai client: %w", err)
	}

	c := &Client{
		client:       client,
		mappingModel: settings.MappingModel,
		editModel:    settings.EditModel,
	}
	if c.mappingModel == "" {
		c.mappingModel = DefaultModel
	}
	if c.editModel == "" {
		c.editModel = DefaultModel
	}
	return c, nil
}

// 📝 Complete generates content for the prompt
func (c *Client) Complete(ctx context.Context, req model.CompletionRequest) (*model.Response, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:    genai.Ptr(float32(req.Temperature)),
		CandidateCount: int32(choiceCount(req.N)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.mappingModel, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, wrapError(err)
	}
	return toResponse(resp), nil
}

// ✏️ Edit sends the instruction as system instruction and the input as content
func (c *Client) Edit(ctx context.Context, req model.EditRequest) (*model.Response, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: editSystemPrompt(req.Instruction)}},
		},
		CandidateCount: int32(choiceCount(req.N)),
	}
	if req.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*req.Temperature))
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.editModel, genai.Text(req.Input), cfg)
	if err != nil {
		return nil, wrapError(err)
	}
	return toResponse(resp), nil
}

func editSystemPrompt(instruction string) string {
	return "Apply the following instruction to the file the user sends. " +
		"Reply with the complete new file contents only, without explanations or code fences.\n\n" +
		"Instruction: " + instruction
}

// toResponse joins the text parts of every candidate
func toResponse(resp *genai.GenerateContentResponse) *model.Response {
	out := &model.Response{}
	if resp == nil {
		return out
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			out.Choices = append(out.Choices, "")
			continue
		}
		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		out.Choices = append(out.Choices, sb.String())
	}
	return out
}

func choiceCount(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// wrapError converts SDK errors into model.APIError
func wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &model.APIError{Provider: providerName, StatusCode: apiErr.Code, Body: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &model.APIError{Provider: providerName, StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message, Err: err}
	}
	return &model.APIError{Provider: providerName, Err: err}
}
