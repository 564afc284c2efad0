// Package engine runs the whole analysis pipeline for one file: read,
// filter percussion, segment into measures, detect the key, label every
// measure, assemble the sidecar document. It holds no state between
// calls and is safe to invoke concurrently for different files.
package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/jwhitt/romannotate/apperr"
	"github.com/jwhitt/romannotate/constants"
	"github.com/jwhitt/romannotate/filter"
	"github.com/jwhitt/romannotate/harmony"
	"github.com/jwhitt/romannotate/key"
	"github.com/jwhitt/romannotate/measure"
	"github.com/jwhitt/romannotate/midi"
	"github.com/jwhitt/romannotate/model"
)

// Analyze processes the MIDI file at path and returns its sidecar
// document. Fatal failures are *apperr.MalformedFileError or
// *apperr.EmptyScoreError; everything recoverable lands in the document's
// Diagnostics.
func Analyze(path string, opts ...Option) (*model.SidecarDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading midi file")
	}
	return AnalyzeBytes(data, filepath.Base(path), opts...)
}

// AnalyzeBytes runs the pipeline on raw SMF bytes. name labels the source
// in the document and in errors.
func AnalyzeBytes(data []byte, name string, opts ...Option) (*model.SidecarDocument, error) {
	o := newOptions(opts)
	log := o.logger.WithField("file", name)

	parsed, err := midi.Parse(data, name)
	if err != nil {
		log.WithError(err).Error("parse failed")
		return nil, err
	}
	log.WithField("ppq", parsed.TicksPerQuarter).
		WithField("notes", len(parsed.Notes)).
		WithField("tempo_changes", len(parsed.Tempos)).
		Info("parsed midi file")
	o.report(StageParsed, 0)

	diags := make([]model.Diagnostic, 0, len(parsed.Anomalies))
	for _, a := range parsed.Anomalies {
		log.Warn(a.Message)
		diags = append(diags, a)
	}

	notes := filter.Percussion(parsed.Notes, o.percussionChannel)

	measures, err := measure.Segment(parsed.TicksPerQuarter, parsed.TimeSignatures, notes)
	if err != nil {
		var empty *apperr.EmptyScoreError
		if errors.As(err, &empty) {
			empty.Path = name
		}
		log.WithError(err).Error("segmentation failed")
		return nil, err
	}

	// the detector sees the complete filtered note set, never a subset
	detected := key.Detect(notes)
	log.WithField("key", detected.TonicName()).
		WithField("mode", detected.Mode.String()).
		WithField("confidence", detected.Confidence).
		Info("detected key")
	if detected.Confidence < o.confidenceThreshold {
		msg := fmt.Sprintf("key %v %v scored %.3f, below %.2f",
			detected.TonicName(), detected.Mode, detected.Confidence, o.confidenceThreshold)
		log.Warn(msg)
		diags = append(diags, model.Diagnostic{Code: model.DiagLowConfidenceKey, Message: msg})
	}
	o.report(StageKeyDetected, 0)

	if first := parsed.TimeSignatures[0]; first.Numerator != constants.DefaultMeterNumerator ||
		first.Denominator != constants.DefaultMeterDenominator {
		msg := fmt.Sprintf("time signature %v/%v detected (%v/%v expected)",
			first.Numerator, first.Denominator,
			constants.DefaultMeterNumerator, constants.DefaultMeterDenominator)
		log.Warn(msg)
		diags = append(diags, model.Diagnostic{Code: model.DiagUncommonMeter, Message: msg})
	}

	doc := model.SidecarDocument{
		SourceFilename: name,
		Key:            detected,
		Measures:       make([]model.MeasureHarmony, 0, len(measures)),
	}

	meters := make([]model.Meter, 0, len(measures))
	for _, m := range measures {
		mh := harmony.AnalyzeMeasure(m, detected)
		if mh.Token() == model.NoHarmony {
			msg := fmt.Sprintf("measure %v has no pitched notes", m.Index)
			log.Debug(msg)
			diags = append(diags, model.Diagnostic{Code: model.DiagEmptyMeasure, Message: msg})
		}
		doc.Measures = append(doc.Measures, mh)
		meters = append(meters, m.Meter())
		o.report(StageMeasure, m.Index)
	}

	if constant := constantMeter(meters); constant != nil {
		doc.Meter = constant
	} else {
		doc.Meters = meters
	}

	if o.metadata != nil {
		meta, metaErr := o.metadata(name)
		if metaErr != nil {
			msg := fmt.Sprintf("metadata lookup failed: %v", metaErr)
			log.Warn(msg)
			diags = append(diags, model.Diagnostic{Code: model.DiagMetadataLookup, Message: msg})
		} else {
			doc.Metadata = meta
		}
	}

	doc.Diagnostics = diags
	o.report(StageDone, len(measures))
	return &doc, nil
}

func constantMeter(meters []model.Meter) *model.Meter {
	if len(meters) == 0 {
		return nil
	}
	for _, m := range meters[1:] {
		if m != meters[0] {
			return nil
		}
	}
	first := meters[0]
	return &first
}
