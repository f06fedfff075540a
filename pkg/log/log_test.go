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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:      "test.ts",
					Type:      "output",
					Status:    "WRITTEN",
					IsWritten: true,
					Size:      42,
				})
			},
			wantLogs: []string{
				"✓ test.ts                             output     WRITTEN",
			},
		},
		{
			name: "log_run_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRun(context.Background(), RunOperation{
					ID:           "run-1",
					InputFolder:  "/tmp/src",
					OutputFolder: "/tmp/src_codemod_output",
					Instructions: "convert to typescript",
				})
			},
			wantLogs: []string{
				"[codemod /tmp/src]",
				"◆ convert to typescript → /tmp/src_codemod_output",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("planning file mapping")
			},
			wantLogs: []string{
				"codemod • planning file mapping",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback, "missing logger should fall back to a discard logger")
	assert.NotPanics(t, func() {
		fallback.Info("dropped")
	})
}

func TestRunLifecycle(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	buf := &bytes.Buffer{}
	zbuf := &bytes.Buffer{}
	logger := New(buf, zerolog.New(zbuf))
	ctx := context.Background()

	assert.Zero(t, logger.EndRun(ctx), "ending without a run reports no time")

	logger.StartRun(ctx, RunOperation{ID: "abc", InputFolder: "in", OutputFolder: "out", Instructions: "x"})
	logger.LogFileOperation(ctx, FileOperation{Path: "a.js", Type: "input"})
	elapsed := logger.EndRun(ctx)

	assert.GreaterOrEqual(t, int64(elapsed), int64(0))
	assert.Contains(t, zbuf.String(), `"run_id":"abc"`)
	assert.Contains(t, zbuf.String(), `"files":1`)
	assert.Contains(t, zbuf.String(), "codemod run complete")
}

func TestFileOperationFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "written_output_file",
			op: FileOperation{
				Path:      "test.ts",
				Type:      "output",
				Status:    "WRITTEN",
				IsWritten: true,
			},
			want: "    ✓ test.ts                             output     WRITTEN        ",
		},
		{
			name: "renamed_file",
			op: FileOperation{
				Path:      "test.js",
				Type:      "mapping",
				Status:    "RENAME test.ts",
				IsRenamed: true,
			},
			want: "    ⟳ test.js                             mapping    RENAME test.ts ",
		},
		{
			name: "deleted_file",
			op: FileOperation{
				Path:      "old.js",
				Type:      "mapping",
				Status:    "DELETE",
				IsDeleted: true,
			},
			want: "    ✗ old.js                              mapping    DELETE         ",
		},
		{
			name: "input_file",
			op: FileOperation{
				Path:   "test.js",
				Type:   "input",
				Status: "120 chars",
			},
			want: "    • test.js                             input      120 chars      ",
		},
		{
			name: "unchanged_file",
			op: FileOperation{
				Path:   "stable.js",
				Type:   "mapping",
				Status: "NONE",
			},
			want: "    - stable.js                           mapping    NONE           ",
		},
	}

	logger := New(io.Discard, zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logger.formatFileOperation(tt.op)
			assert.Equal(t, tt.want, got, "formatted output should match")
		})
	}
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{name: "started", current: 0, total: 4, want: "⏳ Progress: 0/4 (0%)"},
		{name: "halfway", current: 2, total: 4, want: "⏳ Progress: 2/4 (50%)"},
		{name: "complete", current: 3, total: 3, want: "✅ Progress: 3/3 (100%)"},
		{name: "empty", current: 0, total: 0, want: "✅ Progress: 0/0 (0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatProgress(tt.current, tt.total))
		})
	}
}
