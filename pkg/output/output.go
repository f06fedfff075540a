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

// Package output materializes edited files below an output folder.
package output

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// FolderSuffix is appended to the input folder when no output folder is configured
const FolderSuffix = "_codemod_output"

// 📄 Record is one file to write, relative to the output folder
type Record struct {
	Path    string // slash separated relative path
	Content string
}

// 📂 ResolveFolder returns outputFolder, or inputFolder with FolderSuffix appended
func ResolveFolder(inputFolder, outputFolder string) string {
	if outputFolder != "" {
		return filepath.Clean(outputFolder)
	}
	return filepath.Clean(inputFolder) + FolderSuffix
}

// 💾 Writer writes records below a base directory
type Writer struct {
	baseDir string
}

// 🏭 NewWriter creates a new writer rooted at baseDir
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: filepath.Clean(baseDir)}
}

// BaseDir returns the output folder
func (w *Writer) BaseDir() string {
	return w.baseDir
}

// 🔒 getAbsPath returns the absolute path for a given relative path
func (w *Writer) getAbsPath(path string) string {
	return filepath.Join(w.baseDir, filepath.FromSlash(path))
}

// 📝 WriteAll creates the output folder and writes every record in order,
// overwriting existing files. The first failure stops the write.
func (w *Writer) WriteAll(ctx context.Context, records []Record) error {
	if err := w.CreateDir(ctx, ""); err != nil {
		return err
	}

	for _, record := range records {
		if err := w.WriteFile(ctx, record.Path, []byte(record.Content)); err != nil {
			return errors.Errorf("writing %s: %w", record.Path, err)
		}
	}

	return nil
}

// CreateDir creates path below the base directory. Existing directories are fine.
func (w *Writer) CreateDir(ctx context.Context, path string) error {
	absPath := w.getAbsPath(path)
	if err := os.MkdirAll(absPath, 0755); err != nil {
		return errors.Errorf("creating directory %s: %w", absPath, err)
	}
	return nil
}

// WriteFile creates the parent directories of path and writes content atomically
func (w *Writer) WriteFile(ctx context.Context, path string, content []byte) error {
	absPath := w.getAbsPath(path)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return errors.Errorf("creating parent directories of %s: %w", absPath, err)
	}

	if err := w.writeFileAtomic(absPath, content); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Int("size", len(content)).Msg("wrote file")
	return nil
}

// writeFileAtomic writes to a unique hidden temp file next to absPath and renames it into place
func (w *Writer) writeFileAtomic(absPath string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*")
	if err != nil {
		return errors.Errorf("creating temp file for %s: %w", absPath, err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file %s: %w", tempPath, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("setting mode of temp file %s: %w", tempPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file %s: %w", tempPath, err)
	}

	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file to %s: %w", absPath, err)
	}

	return nil
}
