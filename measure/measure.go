// Package measure maps the tick axis onto bars using the time-signature
// map and attaches each note to every bar it overlaps.
package measure

import (
	"github.com/jwhitt/romannotate/apperr"
	"github.com/jwhitt/romannotate/constants"
	"github.com/jwhitt/romannotate/model"
	"github.com/jwhitt/romannotate/util"
)

// BarTicks is the length of one bar in ticks under the given signature.
func BarTicks(ticksPerQuarter uint32, numerator, denominator uint8) uint64 {
	return uint64(ticksPerQuarter) * 4 * uint64(numerator) / uint64(denominator)
}

// Segment partitions [0, end) of the piece into measures, where end is the
// last note's end tick rounded up to a full bar. Measure boundaries restart
// at every time-signature change; a change landing mid-bar truncates the
// bar so the partition stays gapless. Notes must already be filtered;
// an empty set is an *apperr.EmptyScoreError.
func Segment(ticksPerQuarter uint32, sigs model.TimeSignatureMap, notes []model.NoteEvent) ([]model.Measure, error) {
	if len(notes) == 0 {
		return nil, &apperr.EmptyScoreError{}
	}
	if len(sigs) == 0 {
		sigs = model.TimeSignatureMap{{
			Tick:        0,
			Numerator:   constants.DefaultMeterNumerator,
			Denominator: constants.DefaultMeterDenominator,
		}}
	}

	var scoreEnd uint64
	for _, n := range notes {
		scoreEnd = util.Max(scoreEnd, n.EndTick())
	}

	var measures []model.Measure
	for i, sig := range sigs {
		segStart := sig.Tick
		if segStart >= scoreEnd {
			break
		}

		bar := BarTicks(ticksPerQuarter, sig.Numerator, sig.Denominator)
		if bar == 0 {
			bar = BarTicks(ticksPerQuarter, constants.DefaultMeterNumerator, constants.DefaultMeterDenominator)
		}

		var segEnd uint64
		if i+1 < len(sigs) && sigs[i+1].Tick < scoreEnd {
			segEnd = sigs[i+1].Tick
		} else {
			// last effective signature: pad to a full bar
			bars := (scoreEnd - segStart + bar - 1) / bar
			segEnd = segStart + bars*bar
		}

		for t := segStart; t < segEnd; t += bar {
			m := model.Measure{
				Index:       len(measures),
				StartTick:   t,
				EndTick:     util.Min(t+bar, segEnd),
				Numerator:   sig.Numerator,
				Denominator: sig.Denominator,
			}
			m.Notes = notesWithin(notes, m.StartTick, m.EndTick)
			measures = append(measures, m)
		}
	}

	return measures, nil
}

// notesWithin returns every note active anywhere in [start, end). Notes
// are sorted by start tick, so the scan stops at the first note starting
// at or past end.
func notesWithin(notes []model.NoteEvent, start, end uint64) []model.NoteEvent {
	var res []model.NoteEvent
	for _, n := range notes {
		if n.StartTick >= end {
			break
		}
		if n.EndTick() > start {
			res = append(res, n)
		}
	}
	return res
}
