package key

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwhitt/romannotate/model"
)

func TestHistogramWeightsByDuration(t *testing.T) {
	notes := []model.NoteEvent{
		{Pitch: 60, DurationTicks: 300},
		{Pitch: 72, DurationTicks: 200},
		{Pitch: 62, DurationTicks: 100},
	}

	hist := Histogram(notes)

	assert := assert.New(t)
	assert.Equal(500.0, hist[0])
	assert.Equal(100.0, hist[2])
	assert.Equal(0.0, hist[1])
}

func TestDetectsCMajorFromEvenScale(t *testing.T) {
	var notes []model.NoteEvent
	for _, pitch := range []uint8{60, 62, 64, 65, 67, 69, 71} {
		notes = append(notes, model.NoteEvent{Pitch: pitch, DurationTicks: 480})
	}

	res := Detect(notes)

	assert := assert.New(t)
	assert.Equal(uint8(0), res.Tonic)
	assert.Equal(model.ModeMajor, res.Mode)
	assert.Equal("C", res.TonicName())
	assert.Greater(res.Confidence, 0.5)
}

// notesFromProfile builds one note per pitch class whose duration mirrors
// the profile rotated to the tonic, so the histogram correlates perfectly.
func notesFromProfile(profile [12]float64, tonic uint8) []model.NoteEvent {
	var notes []model.NoteEvent
	for i := 0; i < 12; i++ {
		pc := (int(tonic) + i) % 12
		notes = append(notes, model.NoteEvent{
			Pitch:         uint8(60 + pc),
			DurationTicks: uint64(profile[i] * 100),
		})
	}
	return notes
}

func TestDetectsNaturalMinor(t *testing.T) {
	res := Detect(notesFromProfile(ProfileMinor, 9))

	assert := assert.New(t)
	assert.Equal(uint8(9), res.Tonic)
	assert.Equal(model.ModeMinorNatural, res.Mode)
	assert.Equal("A", res.TonicName())
	assert.Greater(res.Confidence, 0.99)
}

func TestDetectsHarmonicMinor(t *testing.T) {
	res := Detect(notesFromProfile(ProfileMinorHarmonic, 9))

	assert := assert.New(t)
	assert.Equal(uint8(9), res.Tonic)
	assert.Equal(model.ModeMinorHarmonic, res.Mode)
	assert.Greater(res.Confidence, 0.99)
}

func TestDeterministic(t *testing.T) {
	var notes []model.NoteEvent
	for _, pitch := range []uint8{62, 66, 69, 73, 74, 78} {
		notes = append(notes, model.NoteEvent{Pitch: pitch, DurationTicks: 240})
	}

	first := Detect(notes)
	second := Detect(notes)

	assert.Equal(t, first, second)
}

func TestFlatChromaticFallsBackToCMajor(t *testing.T) {
	var notes []model.NoteEvent
	for pc := uint8(0); pc < 12; pc++ {
		notes = append(notes, model.NoteEvent{Pitch: 60 + pc, DurationTicks: 100})
	}

	res := Detect(notes)

	// every hypothesis scores 0 on a flat histogram; the tie-break keeps
	// major at the lowest tonic
	assert := assert.New(t)
	assert.Equal(uint8(0), res.Tonic)
	assert.Equal(model.ModeMajor, res.Mode)
	assert.Equal(0.0, res.Confidence)
}
