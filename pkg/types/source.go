// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SourceFile is a candidate file read from the input folder.
type SourceFile struct {
	// Name is the base file name; it doubles as the wiki page title.
	Name string `json:"name" yaml:"name"`

	// Content is the full text of the file.
	Content string `json:"-" yaml:"-"`

	// Path is the filesystem path the file was read from.
	Path string `json:"path" yaml:"path"`
}

// Documentation is the markup returned by the completion API, ready to be
// embedded as a Confluence page body in storage representation.
type Documentation string

// Outcome is the terminal state of one file in a run.
type Outcome string

const (
	OutcomeSkippedNoDoc  Outcome = "skipped_no_doc"
	OutcomePublishFailed Outcome = "publish_failed"
	OutcomeCompleted     Outcome = "completed"
	OutcomePreviewed     Outcome = "previewed"
)

// FileResult records what happened to a single source file.
type FileResult struct {
	File    SourceFile `json:"file" yaml:"file"`
	Outcome Outcome    `json:"outcome" yaml:"outcome"`

	PageID    string `json:"page_id,omitempty" yaml:"page_id,omitempty"`
	PageTitle string `json:"page_title,omitempty" yaml:"page_title,omitempty"`
	PageURL   string `json:"page_url,omitempty" yaml:"page_url,omitempty"`

	// Archived is set when the archive move succeeded; ArchivePath is the destination.
	Archived    bool   `json:"archived" yaml:"archived"`
	ArchivePath string `json:"archive_path,omitempty" yaml:"archive_path,omitempty"`

	// Err is the error that stopped progression, or the archive error for a
	// completed file whose move failed.
	Err error `json:"-" yaml:"-"`
}

// ErrMessage returns the error text, or "" when there was none.
func (r FileResult) ErrMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// RunSummary holds counts and per-file results from one pipeline run.
type RunSummary struct {
	RunID         string
	Completed     int
	Skipped       int
	PublishFailed int
	Previewed     int

	// ArchiveFailed counts completed files whose archive move failed.
	ArchiveFailed int

	Results []FileResult
}

// Total returns the number of files processed.
func (s RunSummary) Total() int {
	return s.Completed + s.Skipped + s.PublishFailed + s.Previewed
}

// HasFailures reports whether any file did not reach its final stage.
func (s RunSummary) HasFailures() bool {
	return s.Skipped > 0 || s.PublishFailed > 0 || s.ArchiveFailed > 0
}

// Add tallies a file result into the summary.
func (s *RunSummary) Add(r FileResult) {
	switch r.Outcome {
	case OutcomeCompleted:
		s.Completed++
		if !r.Archived {
			s.ArchiveFailed++
		}
	case OutcomeSkippedNoDoc:
		s.Skipped++
	case OutcomePublishFailed:
		s.PublishFailed++
	case OutcomePreviewed:
		s.Previewed++
	}
	s.Results = append(s.Results, r)
}
