// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview writes generated documentation to disk instead of
// publishing it, for dry runs.
package preview

import (
	"fmt"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/afero"

	"github.com/pdiddy/scriptdoc/pkg/types"
)

// Writer stores each document as <name>.html (the exact page body) and
// <name>.md (a readable rendering) under Dir.
type Writer struct {
	FS  afero.Fs
	Dir string
}

// New returns a Writer rooted at dir on fsys.
func New(fsys afero.Fs, dir string) *Writer {
	return &Writer{FS: fsys, Dir: dir}
}

// Write stores doc for the source file name and returns the Markdown path.
func (w *Writer) Write(name string, doc types.Documentation) (string, error) {
	if err := w.FS.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating preview directory %s: %w", w.Dir, err)
	}

	md, err := htmltomarkdown.ConvertString(string(doc))
	if err != nil {
		return "", fmt.Errorf("converting %s to markdown: %w", name, err)
	}

	base := filepath.Join(w.Dir, name)
	if err := afero.WriteFile(w.FS, base+".html", []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("writing %s.html: %w", base, err)
	}

	mdPath := base + ".md"
	content := fmt.Sprintf("# %s\n\n%s\n", name, strings.TrimSpace(md))
	if err := afero.WriteFile(w.FS, mdPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", mdPath, err)
	}
	return mdPath, nil
}
