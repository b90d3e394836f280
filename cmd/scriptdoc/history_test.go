// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scriptdoc/internal/ledger"
	"github.com/pdiddy/scriptdoc/pkg/types"
)

func TestFormatHistory(t *testing.T) {
	entries := []ledger.Entry{
		{
			File:       "etl_job.py",
			Outcome:    types.OutcomeCompleted,
			PageURL:    "https://acme.atlassian.net/wiki/spaces/DOC/pages/1",
			RecordedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			File:       "broken.py",
			Outcome:    types.OutcomeSkippedNoDoc,
			Error:      "HTTP 500: upstream down",
			RecordedAt: time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC),
		},
	}

	tests := []struct {
		format string
		want   []string
	}{
		{"table", []string{"2026-03-01 12:00:00", "etl_job.py", "completed", "/wiki/spaces/DOC/pages/1", "HTTP 500: upstream down"}},
		{"json", []string{`"file": "etl_job.py"`, `"outcome": "skipped_no_doc"`}},
		{"yaml", []string{"file: broken.py", "outcome: completed"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, formatHistory(&buf, entries, tt.format))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestFormatHistoryEmptyAndUnknown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatHistory(&buf, nil, "table"))
	assert.Contains(t, buf.String(), "No history recorded.")

	assert.Error(t, formatHistory(&buf, nil, "xml"))
}
