// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive moves published source files out of the input folder.
package archive

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// Archiver moves files into Dir, keeping their base names.
type Archiver struct {
	FS  afero.Fs
	Dir string
}

// New returns an Archiver rooted at dir on fsys.
func New(fsys afero.Fs, dir string) *Archiver {
	return &Archiver{FS: fsys, Dir: dir}
}

// Ensure creates the archive directory if it does not exist.
func (a *Archiver) Ensure() error {
	if err := a.FS.MkdirAll(a.Dir, 0o755); err != nil {
		return fmt.Errorf("creating archive directory %s: %w", a.Dir, err)
	}
	return nil
}

// Archive moves path into the archive directory and returns the destination.
// A plain rename is tried first; when that fails (for example across
// filesystems) the file is copied through a temp file and the source removed.
// If the source cannot be removed the copy is deleted again, so a failed
// archive leaves the file only in the input folder.
func (a *Archiver) Archive(path string) (string, error) {
	if _, err := a.FS.Stat(path); err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	dest := filepath.Join(a.Dir, filepath.Base(path))
	if err := a.FS.Rename(path, dest); err == nil {
		return dest, nil
	}

	if err := a.copyFile(path, dest); err != nil {
		return "", fmt.Errorf("moving %s to %s: %w", path, dest, err)
	}
	if err := a.FS.Remove(path); err != nil {
		a.FS.Remove(dest)
		return "", fmt.Errorf("removing %s after copy: %w", path, err)
	}
	return dest, nil
}

// copyFile writes src to dest via a temp file in the archive directory and
// renames it into place, so a partial copy never appears under dest.
func (a *Archiver) copyFile(src, dest string) error {
	in, err := a.FS.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	tmp, err := afero.TempFile(a.FS, a.Dir, ".archive-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, copyErr := io.Copy(tmp, in)
	closeErr := tmp.Close()
	if copyErr != nil {
		a.FS.Remove(tmpPath)
		return fmt.Errorf("copying: %w", copyErr)
	}
	if closeErr != nil {
		a.FS.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := a.FS.Rename(tmpPath, dest); err != nil {
		a.FS.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
