// Package key detects the key of a piece with the Krumhansl-Schmuckler
// profile method: a duration-weighted pitch-class histogram is correlated
// against 36 hypotheses (major, natural minor, harmonic minor at every
// tonic) and the best correlation wins.
package key

import (
	"math"

	"github.com/jwhitt/romannotate/model"
	"github.com/jwhitt/romannotate/util"
)

// Krumhansl-Schmuckler tonal hierarchy profiles.
var (
	ProfileMajor = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	ProfileMinor = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}

	// The published data covers only major and minor. The harmonic
	// variant reuses the minor profile with the b7 and leading-tone
	// weights exchanged, so a prominent raised seventh pulls this
	// template ahead of the natural one.
	ProfileMinorHarmonic = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.17, 3.34}
)

// modeOrder fixes the tie-break: on equal scores the earlier mode and
// then the lower tonic wins.
var modeOrder = []struct {
	mode    model.Mode
	profile [12]float64
}{
	{model.ModeMajor, ProfileMajor},
	{model.ModeMinorNatural, ProfileMinor},
	{model.ModeMinorHarmonic, ProfileMinorHarmonic},
}

// Histogram builds the 12-bin pitch-class histogram of the whole note
// set, weighted by note duration in ticks.
func Histogram(notes []model.NoteEvent) [12]float64 {
	var hist [12]float64
	for _, n := range notes {
		hist[n.PitchClass()] += float64(n.DurationTicks)
	}
	return hist
}

// Detect runs over the entire filtered note set and never fails: sparse
// or atonal content just scores low. Deterministic for a given input.
func Detect(notes []model.NoteEvent) model.KeyResult {
	hist := Histogram(notes)

	var best model.KeyResult
	first := true
	for _, cand := range modeOrder {
		for tonic := 0; tonic < 12; tonic++ {
			score := correlate(hist, cand.profile, tonic)
			if first || score > best.Confidence {
				first = false
				best = model.KeyResult{Tonic: uint8(tonic), Mode: cand.mode, Confidence: score}
			}
		}
	}
	return best
}

// correlate is the Pearson correlation between the histogram and the
// profile rotated so its first weight sits on tonic. Zero-variance input
// (a perfectly flat histogram) correlates as 0.
func correlate(hist [12]float64, profile [12]float64, tonic int) float64 {
	var x [12]float64
	for i := 0; i < 12; i++ {
		x[i] = hist[(tonic+i)%12]
	}

	meanX := util.Sum(x[:]) / 12
	meanY := util.Sum(profile[:]) / 12

	var cov, varX, varY float64
	for i := 0; i < 12; i++ {
		dx := x[i] - meanX
		dy := profile[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
