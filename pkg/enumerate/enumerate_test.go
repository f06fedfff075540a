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

package enumerate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/codemod/pkg/enumerate"
	"gitlab.com/tozd/go/errors"
)

// 🧪 createTree writes the given files below a temp dir and returns its path
func createTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating parent dirs")
		require.NoError(t, os.WriteFile(path, []byte("// "+f+"\n"), 0644), "writing file")
	}
	return root
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestFiles(t *testing.T) {
	tree := []string{
		"test.js",
		"lib/util.js",
		"lib/util.ts",
		"lib/nested/deep.js",
		"node_modules/pkg/index.js",
		"README.md",
	}

	tests := []struct {
		name   string
		match  []string
		ignore []string
		want   []string
	}{
		{
			name: "default_matches_everything",
			want: []string{
				"README.md",
				"lib/nested/deep.js",
				"lib/util.js",
				"lib/util.ts",
				"node_modules/pkg/index.js",
				"test.js",
			},
		},
		{
			name:  "single_pattern",
			match: []string{"**/*.js"},
			want: []string{
				"lib/nested/deep.js",
				"lib/util.js",
				"node_modules/pkg/index.js",
				"test.js",
			},
		},
		{
			name:   "ignore_patterns",
			match:  []string{"**/*.js"},
			ignore: []string{"node_modules/**", "lib/nested/**"},
			want: []string{
				"lib/util.js",
				"test.js",
			},
		},
		{
			name:   "overlapping_patterns_are_deduplicated",
			match:  []string{"lib/*.js", "**/util.*", "*.md"},
			ignore: []string{"**/*.ts"},
			want: []string{
				"lib/util.js",
				"README.md",
			},
		},
		{
			name:  "no_matches",
			match: []string{"**/*.py"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := createTree(t, tree...)

			files, err := enumerate.Files(testContext(t), enumerate.Options{
				InputFolder:    root,
				MatchPatterns:  tt.match,
				IgnorePatterns: tt.ignore,
			})
			require.NoError(t, err, "should enumerate files")
			assert.ElementsMatch(t, tt.want, files, "files should match")
		})
	}
}

func TestFilesSkipsDirectories(t *testing.T) {
	root := createTree(t, "a/b/c.txt")

	files, err := enumerate.Files(testContext(t), enumerate.Options{InputFolder: root})
	require.NoError(t, err, "should enumerate files")
	assert.Equal(t, []string{"a/b/c.txt"}, files, "only regular files should be returned")
}

func TestFilesErrors(t *testing.T) {
	t.Run("missing_folder", func(t *testing.T) {
		_, err := enumerate.Files(testContext(t), enumerate.Options{
			InputFolder: filepath.Join(t.TempDir(), "missing"),
		})
		require.Error(t, err, "should fail for a missing folder")
		assert.True(t, errors.Is(err, enumerate.ErrInputFolder), "error should be an input folder error")
	})

	t.Run("not_a_directory", func(t *testing.T) {
		root := createTree(t, "file.txt")
		_, err := enumerate.Files(testContext(t), enumerate.Options{
			InputFolder: filepath.Join(root, "file.txt"),
		})
		require.Error(t, err, "should fail for a file root")
		assert.True(t, errors.Is(err, enumerate.ErrInputFolder), "error should be an input folder error")
		assert.Contains(t, err.Error(), "not a directory", "error should explain the problem")
	})

	t.Run("bad_match_pattern", func(t *testing.T) {
		root := createTree(t, "file.txt")
		_, err := enumerate.Files(testContext(t), enumerate.Options{
			InputFolder:   root,
			MatchPatterns: []string{"[unterminated"},
		})
		require.Error(t, err, "should fail for a bad pattern")
		assert.Contains(t, err.Error(), "expanding pattern", "error should name the step")
	})

	t.Run("bad_ignore_pattern", func(t *testing.T) {
		root := createTree(t, "file.txt")
		_, err := enumerate.Files(testContext(t), enumerate.Options{
			InputFolder:    root,
			IgnorePatterns: []string{"[unterminated"},
		})
		require.Error(t, err, "should fail for a bad pattern")
		assert.Contains(t, err.Error(), "invalid ignore pattern", "error should name the pattern")
	})
}

func TestFilesKeepsPatternOrder(t *testing.T) {
	root := createTree(t, "a.js", "b.js")

	files, err := enumerate.Files(testContext(t), enumerate.Options{
		InputFolder:   root,
		MatchPatterns: []string{"b.js", "a.js", "b.js"},
	})
	require.NoError(t, err, "should enumerate files")
	assert.Equal(t, []string{"b.js", "a.js"}, files, "first-seen order should be kept")
}

func TestFilesSkipsDotfiles(t *testing.T) {
	root := createTree(t, "test.js", ".env", ".git/HEAD", "lib/.cache/x.js", ".github/workflows/ci.yml")

	tests := []struct {
		name  string
		match []string
		want  []string
	}{
		{name: "default_pattern", match: nil, want: []string{"test.js"}},
		{name: "extension_pattern", match: []string{"**/*.js"}, want: []string{"test.js"}},
		{name: "named_dotfile", match: []string{".env"}, want: []string{".env"}},
		{name: "named_dot_directory", match: []string{".github/**/*.yml"}, want: []string{".github/workflows/ci.yml"}},
		{name: "dot_wildcard", match: []string{"**/.cache/*.js"}, want: []string{"lib/.cache/x.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := enumerate.Files(testContext(t), enumerate.Options{
				InputFolder:   root,
				MatchPatterns: tt.match,
			})
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, files)
		})
	}
}
