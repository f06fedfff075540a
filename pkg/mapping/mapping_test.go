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

package mapping_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/codemod/pkg/mapping"
	"github.com/walteh/codemod/pkg/model"
	"github.com/walteh/codemod/pkg/model/modeltest"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		want        mapping.Mapping
		errContains string
	}{
		{
			name: "all_operations",
			text: `
{
  "a.js": {"operation": "none"},
  "b.js": {"operation": "delete"},
  "c.js": {"operation": "rename", "name": "c.ts"},
  "d.js": {"operation": "expand", "names": ["d1.js", "d2.js"]}
}`,
			want: mapping.Mapping{
				"a.js": {Operation: mapping.OperationNone},
				"b.js": {Operation: mapping.OperationDelete},
				"c.js": {Operation: mapping.OperationRename, Name: "c.ts"},
				"d.js": {Operation: mapping.OperationExpand, Names: []string{"d1.js", "d2.js"}},
			},
		},
		{
			name: "empty_object",
			text: `{}`,
			want: mapping.Mapping{},
		},
		{
			name:        "empty_text",
			text:        "  \n",
			errContains: "empty response",
		},
		{
			name:        "not_json",
			text:        "Sure! Here is your mapping:",
			errContains: "invalid character",
		},
		{
			name:        "array",
			text:        `["a.js"]`,
			errContains: "cannot unmarshal array",
		},
		{
			name:        "null",
			text:        `null`,
			errContains: "expected a JSON object",
		},
		{
			name:        "unknown_operation",
			text:        `{"a.js": {"operation": "move", "name": "b.js"}}`,
			errContains: `unknown operation "move"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mapping.Parse(tt.text)
			if tt.errContains != "" {
				require.Error(t, err, "should fail to parse")
				assert.True(t, errors.Is(err, mapping.ErrParse), "error should be a parse error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}
			require.NoError(t, err, "should parse")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mapping mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMappingLookup(t *testing.T) {
	m := mapping.Mapping{
		"keep.js":    {Operation: mapping.OperationNone},
		"gone.js":    {Operation: mapping.OperationDelete},
		"moved.js":   {Operation: mapping.OperationRename, Name: "lib/moved.ts"},
		"unnamed.js": {Operation: mapping.OperationRename},
		"split.js":   {Operation: mapping.OperationExpand, Names: []string{"a.js", "b.js"}},
	}

	tests := []struct {
		name        string
		file        string
		wantDeleted bool
		wantOutput  string
	}{
		{name: "none", file: "keep.js", wantOutput: "keep.js"},
		{name: "absent_is_none", file: "other.js", wantOutput: "other.js"},
		{name: "delete", file: "gone.js", wantDeleted: true, wantOutput: "gone.js"},
		{name: "rename", file: "moved.js", wantOutput: "lib/moved.ts"},
		{name: "rename_without_target", file: "unnamed.js", wantOutput: "unnamed.js"},
		{name: "expand_is_pass_through", file: "split.js", wantOutput: "split.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantDeleted, m.Deleted(tt.file), "deleted should match")
			assert.Equal(t, tt.wantOutput, m.OutputName(tt.file), "output name should match")
		})
	}

	assert.Equal(t, mapping.OperationNone, m.Lookup("other.js").Operation, "absent files should be none")
}

func TestRestrict(t *testing.T) {
	m := mapping.Mapping{
		"a.js":        {Operation: mapping.OperationNone},
		"invented.js": {Operation: mapping.OperationDelete},
	}

	dropped := m.Restrict([]string{"a.js", "b.js"})
	assert.Equal(t, []string{"invented.js"}, dropped, "unknown keys should be reported")
	if diff := cmp.Diff(mapping.Mapping{"a.js": {Operation: mapping.OperationNone}}, m); diff != "" {
		t.Errorf("mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := mapping.BuildPrompt(`Translate "javascript" to typescript`, []string{"test.js", "lib/util.js"})

	assert.Contains(t, prompt, `"operation" "none"`, "should explain none")
	assert.Contains(t, prompt, `"operation" "delete"`, "should explain delete")
	assert.Contains(t, prompt, `"operation" "rename"`, "should explain rename")
	assert.Contains(t, prompt, `"operation" "expand"`, "should explain expand")
	assert.Contains(t, prompt, `"name": "folderName/test.ts"`, "should include the rename example")
	assert.Contains(t, prompt, `"pineapples/main.js": {`, "should include the none example")
	assert.Contains(t, prompt, `Instructions: "Translate \"javascript\" to typescript"`, "should quote the instructions")
	assert.Contains(t, prompt, `["test.js", "lib/util.js"]`, "should list the files")
	assert.True(t, strings.HasSuffix(prompt, "Output:\n"), "should end with the output cue")
	assert.Less(t, strings.Index(prompt, "Now it's your turn."), strings.Index(prompt, `"test.js"`), "examples should come first")
}

func TestPlan(t *testing.T) {
	files := []string{"test.js"}
	instructions := "Translate javascript to typescript"

	t.Run("success", func(t *testing.T) {
		client := modeltest.NewMockClient(t)
		client.On("Complete", mock.Anything, model.CompletionRequest{
			Prompt:      mapping.BuildPrompt(instructions, files),
			MaxTokens:   mapping.MaxTokens,
			Temperature: 0,
			N:           1,
		}).Return(modeltest.Choices(
			`{"test.js": {"operation": "rename", "name": "test.ts"}, "ghost.js": {"operation": "delete"}}`,
			`{"test.js": {"operation": "none"}}`,
		), nil).Once()

		m, err := mapping.Plan(testContext(t), client, instructions, files)
		require.NoError(t, err, "should plan")
		want := mapping.Mapping{"test.js": {Operation: mapping.OperationRename, Name: "test.ts"}}
		if diff := cmp.Diff(want, m); diff != "" {
			t.Errorf("mapping mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("remote_failure", func(t *testing.T) {
		client := modeltest.NewMockClient(t)
		cause := &model.APIError{Provider: "openai", StatusCode: 500, Body: `{"error":"boom"}`, Err: errors.New("server error")}
		client.On("Complete", mock.Anything, mock.Anything).Return(nil, cause).Once()

		_, err := mapping.Plan(testContext(t), client, instructions, files)
		require.Error(t, err, "should fail")
		assert.Contains(t, err.Error(), `using instructions "Translate javascript to typescript"`, "error should carry the instructions")

		var apiErr *model.APIError
		assert.True(t, errors.As(err, &apiErr), "remote error should be preserved")
	})

	t.Run("unparsable_response", func(t *testing.T) {
		client := modeltest.NewMockClient(t)
		client.On("Complete", mock.Anything, mock.Anything).Return(modeltest.Choices("not json"), nil).Once()

		_, err := mapping.Plan(testContext(t), client, instructions, files)
		require.Error(t, err, "should fail")
		assert.True(t, errors.Is(err, mapping.ErrParse), "error should be a parse error")
		assert.Contains(t, err.Error(), `for instructions "Translate javascript to typescript"`, "error should carry the instructions")
	})

	t.Run("no_choices", func(t *testing.T) {
		client := modeltest.NewMockClient(t)
		client.On("Complete", mock.Anything, mock.Anything).Return(modeltest.Choices(), nil).Once()

		_, err := mapping.Plan(testContext(t), client, instructions, files)
		require.Error(t, err, "should fail")
		assert.True(t, errors.Is(err, mapping.ErrParse), "an empty answer is not a mapping")
	})
}
