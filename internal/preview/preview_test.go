// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preview

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	w := New(fsys, "preview")

	path, err := w.Write("etl_job.py", "<h2>Purpose</h2><p>Loads <strong>daily</strong> sales.</p><ul><li>pandas</li></ul>")
	require.NoError(t, err)
	assert.Equal(t, "preview/etl_job.py.md", path)

	md, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# etl_job.py")
	assert.Contains(t, string(md), "## Purpose")
	assert.Contains(t, string(md), "**daily**")
	assert.Contains(t, string(md), "pandas")

	raw, err := afero.ReadFile(fsys, "preview/etl_job.py.html")
	require.NoError(t, err)
	assert.Equal(t, "<h2>Purpose</h2><p>Loads <strong>daily</strong> sales.</p><ul><li>pandas</li></ul>", string(raw))
}

func TestWriteReadOnly(t *testing.T) {
	w := New(afero.NewReadOnlyFs(afero.NewMemMapFs()), "preview")
	_, err := w.Write("a.py", "<p>x</p>")
	require.Error(t, err)
}
