// Package apperr holds the fatal error kinds of the analysis pipeline.
// Recoverable conditions are model.Diagnostic values, not errors.
package apperr

import "fmt"

// MalformedFileError means the MIDI container itself cannot be trusted:
// bad header, inconsistent chunk lengths, or no track chunks. It aborts
// processing of the offending file only.
type MalformedFileError struct {
	Path   string
	Reason error
}

func (e *MalformedFileError) Error() string {
	return fmt.Sprintf("malformed midi file %v: %v", e.Path, e.Reason)
}

func (e *MalformedFileError) Unwrap() error {
	return e.Reason
}

// EmptyScoreError means the file parsed fine but holds no pitched,
// non-percussion notes, so there is nothing to analyze.
type EmptyScoreError struct {
	Path string
}

func (e *EmptyScoreError) Error() string {
	if e.Path == "" {
		return "empty score: no pitched, non-percussion notes"
	}
	return fmt.Sprintf("empty score: no pitched, non-percussion notes in %v", e.Path)
}
