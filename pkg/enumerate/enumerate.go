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

// Package enumerate resolves the input files of a codemod run.
package enumerate

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultMatchPattern matches every file below the input folder
const DefaultMatchPattern = "**/*"

// ErrInputFolder is returned when the input folder cannot be read
var ErrInputFolder = errors.Base("cannot access input folder")

// 📋 Options controls file enumeration
type Options struct {
	InputFolder    string   // Root folder to search
	MatchPatterns  []string // Glob patterns relative to InputFolder, empty means DefaultMatchPattern
	IgnorePatterns []string // Glob patterns relative to InputFolder to exclude
}

// normalizedMatchPatterns returns the configured patterns, or the match-all default
func (o Options) normalizedMatchPatterns() []string {
	if len(o.MatchPatterns) == 0 {
		return []string{DefaultMatchPattern}
	}
	return o.MatchPatterns
}

// 📂 Files returns the de-duplicated, slash separated paths of all files
// below opts.InputFolder that match a match pattern and no ignore pattern.
// Paths are relative to the input folder and keep first-seen order.
func Files(ctx context.Context, opts Options) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if err := checkReadable(opts.InputFolder); err != nil {
		return nil, err
	}

	for _, pattern := range opts.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	fsys := os.DirFS(opts.InputFolder)
	seen := make(map[string]struct{})
	files := []string{}

	for _, pattern := range opts.normalizedMatchPatterns() {
		logger.Debug().Str("pattern", pattern).Msg("expanding match pattern")

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			if hidden(pattern, match) {
				continue
			}
			if ignored(ctx, opts.IgnorePatterns, match) {
				continue
			}
			seen[match] = struct{}{}
			files = append(files, match)
		}
	}

	logger.Debug().Strs("files", files).Msg("enumerated input files")

	return files, nil
}

// checkReadable verifies that root is a directory we can list
func checkReadable(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Errorf("%w %q: %s", ErrInputFolder, root, err.Error())
	}
	if !info.IsDir() {
		return errors.Errorf("%w %q: not a directory", ErrInputFolder, root)
	}

	dir, err := os.Open(root)
	if err != nil {
		return errors.Errorf("%w %q: %s", ErrInputFolder, root, err.Error())
	}
	defer dir.Close()

	if _, err := dir.ReadDir(1); err != nil && !errors.Is(err, io.EOF) {
		return errors.Errorf("%w %q: %s", ErrInputFolder, root, err.Error())
	}

	return nil
}

// hidden reports whether path has a segment starting with "." that pattern
// does not name with a dot segment of its own. Wildcards never match dotfiles.
func hidden(pattern, path string) bool {
	patternSegments := strings.Split(pattern, "/")
	for _, segment := range strings.Split(path, "/") {
		if !strings.HasPrefix(segment, ".") {
			continue
		}
		if !namesDotSegment(patternSegments, segment) {
			return true
		}
	}
	return false
}

func namesDotSegment(patternSegments []string, segment string) bool {
	for _, p := range patternSegments {
		if !strings.HasPrefix(p, ".") {
			continue
		}
		if matched, err := doublestar.Match(p, segment); err == nil && matched {
			return true
		}
	}
	return false
}

// ignored reports whether path matches any of the ignore patterns
func ignored(ctx context.Context, patterns []string, path string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			zerolog.Ctx(ctx).Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}
