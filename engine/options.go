package engine

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jwhitt/romannotate/constants"
	"github.com/jwhitt/romannotate/model"
)

// Stage names the coarse pipeline milestones reported to the progress
// callback.
type Stage string

const (
	StageParsed      Stage = "parsed"
	StageKeyDetected Stage = "key_detected"
	StageMeasure     Stage = "measure"
	StageDone        Stage = "done"
)

// ProgressFunc receives stage milestones. It must not block; the engine
// calls it inline and ignores whatever it does. measure is meaningful for
// StageMeasure (the measure just labeled) and StageDone (the total).
type ProgressFunc func(stage Stage, measure int)

// MetadataLookup resolves catalog metadata for a source filename. A nil
// result with a nil error means no metadata exists.
type MetadataLookup func(filename string) (*model.SourceMetadata, error)

type options struct {
	logger              logrus.FieldLogger
	progress            ProgressFunc
	percussionChannel   uint8
	confidenceThreshold float64
	metadata            MetadataLookup
}

type Option func(*options)

// WithLogger injects the diagnostic log sink. Absent, the engine logs
// nowhere.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithProgress injects the stage-boundary callback.
func WithProgress(f ProgressFunc) Option {
	return func(o *options) {
		o.progress = f
	}
}

// WithPercussionChannel overrides the zero-based channel excluded from
// analysis, for fixtures with non-standard layouts.
func WithPercussionChannel(ch uint8) Option {
	return func(o *options) {
		o.percussionChannel = ch
	}
}

// WithConfidenceThreshold overrides the score under which key detection
// raises a low-confidence warning.
func WithConfidenceThreshold(v float64) Option {
	return func(o *options) {
		o.confidenceThreshold = v
	}
}

// WithMetadataLookup enables sidecar metadata enrichment. Lookup failures
// are recorded as diagnostics, never fatal.
func WithMetadataLookup(f MetadataLookup) Option {
	return func(o *options) {
		o.metadata = f
	}
}

func newOptions(opts []Option) options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	o := options{
		logger:              discard,
		percussionChannel:   constants.PercussionChannel,
		confidenceThreshold: constants.LowKeyConfidence,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) report(stage Stage, measure int) {
	if o.progress != nil {
		o.progress(stage, measure)
	}
}
