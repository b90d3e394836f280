// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan lists source files waiting for documentation.
package scan

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/scriptdoc/pkg/types"
)

// Scan returns a SourceFile for every entry directly under dir whose name
// ends with ext, in directory listing order. Subdirectories are ignored even
// when their name matches. An empty result is not an error; an unreadable
// directory or matching file is.
func Scan(fsys afero.Fs, dir, ext string) ([]types.SourceFile, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var files []types.SourceFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading source file %s: %w", path, err)
		}

		files = append(files, types.SourceFile{
			Name:    entry.Name(),
			Content: string(data),
			Path:    path,
		})
	}
	return files, nil
}
