// Package harmony labels measures with Roman numerals relative to a
// detected key. Each segment's distinct pitch classes are matched against
// the seven diatonic triads of the key's mode; the triad with the largest
// overlap names the segment.
package harmony

import (
	"strings"

	"github.com/jwhitt/romannotate/model"
)

var scales = map[model.Mode][7]uint8{
	model.ModeMajor:         {0, 2, 4, 5, 7, 9, 11},
	model.ModeMinorNatural:  {0, 2, 3, 5, 7, 8, 10},
	model.ModeMinorHarmonic: {0, 2, 3, 5, 7, 8, 11},
}

// Triad qualities per scale degree. Harmonic minor uses the true
// qualities, including the augmented III.
var qualities = map[model.Mode][7]model.Quality{
	model.ModeMajor: {
		model.QualityMajor, model.QualityMinor, model.QualityMinor,
		model.QualityMajor, model.QualityMajor, model.QualityMinor,
		model.QualityDiminished,
	},
	model.ModeMinorNatural: {
		model.QualityMinor, model.QualityDiminished, model.QualityMajor,
		model.QualityMinor, model.QualityMinor, model.QualityMajor,
		model.QualityMajor,
	},
	model.ModeMinorHarmonic: {
		model.QualityMinor, model.QualityDiminished, model.QualityAugmented,
		model.QualityMinor, model.QualityMajor, model.QualityMajor,
		model.QualityDiminished,
	},
}

var romans = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

var triadIntervals = map[model.Quality][3]uint8{
	model.QualityMajor:      {0, 4, 7},
	model.QualityMinor:      {0, 3, 7},
	model.QualityDiminished: {0, 3, 6},
	model.QualityAugmented:  {0, 4, 8},
}

// DegreeTriad returns the pitch classes of the diatonic triad on the
// given scale degree (0..6) of the key.
func DegreeTriad(k model.KeyResult, degree int) [3]uint8 {
	root := (k.Tonic + scales[k.Mode][degree]) % 12
	iv := triadIntervals[qualities[k.Mode][degree]]
	return [3]uint8{root, (root + iv[1]) % 12, (root + iv[2]) % 12}
}

// Numeral renders the degree's Roman numeral: lowercase for minor and
// diminished triads, ° for diminished, + for augmented.
func Numeral(mode model.Mode, degree int) (string, model.Quality) {
	q := qualities[mode][degree]
	r := romans[degree]
	switch q {
	case model.QualityMinor:
		r = strings.ToLower(r)
	case model.QualityDiminished:
		r = strings.ToLower(r) + "°"
	case model.QualityAugmented:
		r += "+"
	}
	return r, q
}

// labelSegment names the harmony sounding in [start, end). The second
// return is false when no pitched note is active there.
func labelSegment(notes []model.NoteEvent, k model.KeyResult, start, end uint64) (model.HarmonyLabel, bool) {
	var present [12]bool
	any := false
	for _, n := range notes {
		if n.StartTick < end && n.EndTick() > start {
			present[n.PitchClass()] = true
			any = true
		}
	}
	if !any {
		return model.HarmonyLabel{Numeral: model.NoHarmony, Quality: model.QualityNone}, false
	}

	bestDegree := 0
	bestOverlap := -1
	for d := 0; d < 7; d++ {
		triad := DegreeTriad(k, d)
		overlap := 0
		for _, pc := range triad {
			if present[pc] {
				overlap++
			}
		}
		// strict improvement keeps the lowest degree on ties
		if overlap > bestOverlap {
			bestOverlap = overlap
			bestDegree = d
		}
	}

	numeral, q := Numeral(k.Mode, bestDegree)
	return model.HarmonyLabel{Numeral: numeral, Quality: q}, true
}

// AnalyzeMeasure labels one measure, splitting it at the half-bar when the
// two halves disagree. A half with no notes takes the other half's label
// (the sounding harmony carries through silence); a fully silent measure
// gets the no-harmony placeholder.
func AnalyzeMeasure(m model.Measure, k model.KeyResult) model.MeasureHarmony {
	first, okFirst := labelSegment(m.Notes, k, m.StartTick, m.MidTick())
	second, okSecond := labelSegment(m.Notes, k, m.MidTick(), m.EndTick)

	res := model.MeasureHarmony{Index: m.Index}
	switch {
	case !okFirst && !okSecond:
		res.Labels = []model.HarmonyLabel{{Numeral: model.NoHarmony, Quality: model.QualityNone, AppliesTo: model.WholeMeasure}}
	case !okSecond:
		first.AppliesTo = model.WholeMeasure
		res.Labels = []model.HarmonyLabel{first}
	case !okFirst:
		second.AppliesTo = model.WholeMeasure
		res.Labels = []model.HarmonyLabel{second}
	case first.Numeral == second.Numeral:
		first.AppliesTo = model.WholeMeasure
		res.Labels = []model.HarmonyLabel{first}
	default:
		first.AppliesTo = model.FirstHalf
		second.AppliesTo = model.SecondHalf
		res.Labels = []model.HarmonyLabel{first, second}
	}
	return res
}
