package harmony

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwhitt/romannotate/model"
)

func cMajor() model.KeyResult {
	return model.KeyResult{Tonic: 0, Mode: model.ModeMajor}
}

func aHarmonicMinor() model.KeyResult {
	return model.KeyResult{Tonic: 9, Mode: model.ModeMinorHarmonic}
}

func triadNotes(start, dur uint64, pitches ...uint8) []model.NoteEvent {
	var notes []model.NoteEvent
	for _, p := range pitches {
		notes = append(notes, model.NoteEvent{Pitch: p, StartTick: start, DurationTicks: dur})
	}
	return notes
}

func TestWholeMeasureTonicTriad(t *testing.T) {
	m := model.Measure{Index: 0, StartTick: 0, EndTick: 1920, Notes: triadNotes(0, 1920, 60, 64, 67)}

	mh := AnalyzeMeasure(m, cMajor())

	assert := assert.New(t)
	assert.Equal("I", mh.Token())
	assert.Len(mh.Labels, 1)
	assert.Equal(model.WholeMeasure, mh.Labels[0].AppliesTo)
	assert.Equal(model.QualityMajor, mh.Labels[0].Quality)
}

func TestHalfSplitEmitsBothNumerals(t *testing.T) {
	notes := triadNotes(0, 960, 60, 64, 67)
	notes = append(notes, triadNotes(960, 960, 67, 71, 74)...)
	m := model.Measure{Index: 0, StartTick: 0, EndTick: 1920, Notes: notes}

	mh := AnalyzeMeasure(m, cMajor())

	assert := assert.New(t)
	assert.Equal("I|V", mh.Token())
	assert.Len(mh.Labels, 2)
	assert.Equal(model.FirstHalf, mh.Labels[0].AppliesTo)
	assert.Equal(model.SecondHalf, mh.Labels[1].AppliesTo)
}

func TestEmptyMeasureGetsPlaceholder(t *testing.T) {
	m := model.Measure{Index: 3, StartTick: 0, EndTick: 1920}

	mh := AnalyzeMeasure(m, cMajor())

	assert := assert.New(t)
	assert.Equal(model.NoHarmony, mh.Token())
	assert.Equal(model.QualityNone, mh.Labels[0].Quality)
}

func TestSilentHalfCarriesTheSoundingHarmony(t *testing.T) {
	m := model.Measure{Index: 0, StartTick: 0, EndTick: 1920, Notes: triadNotes(0, 960, 65, 69, 72)}

	mh := AnalyzeMeasure(m, cMajor())

	assert := assert.New(t)
	assert.Equal("IV", mh.Token())
	assert.Len(mh.Labels, 1)
	assert.Equal(model.WholeMeasure, mh.Labels[0].AppliesTo)
}

func TestDiminishedMarker(t *testing.T) {
	m := model.Measure{Index: 0, StartTick: 0, EndTick: 1920, Notes: triadNotes(0, 1920, 71, 74, 77)}

	mh := AnalyzeMeasure(m, cMajor())

	assert := assert.New(t)
	assert.Equal("vii°", mh.Token())
	assert.Equal(model.QualityDiminished, mh.Labels[0].Quality)
}

func TestAugmentedMarkerInHarmonicMinor(t *testing.T) {
	// C, E, G# is the augmented III of A harmonic minor
	m := model.Measure{Index: 0, StartTick: 0, EndTick: 1920, Notes: triadNotes(0, 1920, 60, 64, 68)}

	mh := AnalyzeMeasure(m, aHarmonicMinor())

	assert := assert.New(t)
	assert.Equal("III+", mh.Token())
	assert.Equal(model.QualityAugmented, mh.Labels[0].Quality)
}

func TestTieBreakPrefersLowestDegree(t *testing.T) {
	// a single G is in I (C-E-G), iii (E-G-B) and V (G-B-D); the lowest
	// degree wins
	m := model.Measure{Index: 0, StartTick: 0, EndTick: 1920, Notes: triadNotes(0, 1920, 67)}

	mh := AnalyzeMeasure(m, cMajor())

	assert.Equal(t, "I", mh.Token())
}

func TestDegreeTriads(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([3]uint8{0, 4, 7}, DegreeTriad(cMajor(), 0))
	assert.Equal([3]uint8{7, 11, 2}, DegreeTriad(cMajor(), 4))
	assert.Equal([3]uint8{11, 2, 5}, DegreeTriad(cMajor(), 6))
	assert.Equal([3]uint8{0, 4, 8}, DegreeTriad(aHarmonicMinor(), 2))
	assert.Equal([3]uint8{4, 8, 11}, DegreeTriad(aHarmonicMinor(), 4))
}
