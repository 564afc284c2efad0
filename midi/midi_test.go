package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwhitt/romannotate/apperr"
	"github.com/jwhitt/romannotate/miditest"
	"github.com/jwhitt/romannotate/model"
)

func TestParsesNotesAndMaps(t *testing.T) {
	data := miditest.NewBuilder(480).
		Tempo(0, 100).
		Meter(0, 3, 4).
		Note(0, 0, 60, 100, 480).
		Note(480, 9, 36, 100, 240).
		Note(480, 0, 64, 90, 480).
		Bytes(t)

	parsed, err := Parse(data, "fixture.mid")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(uint32(480), parsed.TicksPerQuarter)
	assert.Len(parsed.Notes, 3)
	assert.Equal(model.NoteEvent{Pitch: 60, Velocity: 100, Channel: 0, StartTick: 0, DurationTicks: 480}, parsed.Notes[0])

	assert.Equal(model.TempoMap{{Tick: 0, MicrosPerQuarter: 600000}}, parsed.Tempos)
	assert.Equal(model.TimeSignatureMap{{Tick: 0, Numerator: 3, Denominator: 4}}, parsed.TimeSignatures)
	assert.Empty(parsed.Anomalies)
}

func TestMergesTracksIntoOneOrderedStream(t *testing.T) {
	data := miditest.NewBuilder(480).
		Note(480, 0, 64, 100, 480).
		NextTrack().
		Note(0, 1, 48, 100, 960).
		Bytes(t)

	parsed, err := Parse(data, "fixture.mid")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(parsed.Notes, 2)
	assert.Equal(uint64(0), parsed.Notes[0].StartTick)
	assert.Equal(uint8(1), parsed.Notes[0].Channel)
	assert.Equal(uint64(480), parsed.Notes[1].StartTick)
}

func TestDefaultsTempoAndMeter(t *testing.T) {
	data := miditest.NewBuilder(480).
		Note(0, 0, 60, 100, 480).
		Bytes(t)

	parsed, err := Parse(data, "fixture.mid")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.TempoMap{{Tick: 0, MicrosPerQuarter: 500000}}, parsed.Tempos)
	assert.Equal(model.TimeSignatureMap{{Tick: 0, Numerator: 4, Denominator: 4}}, parsed.TimeSignatures)
}

func TestClosesUnmatchedNoteOnAtEndOfTrack(t *testing.T) {
	data := miditest.NewBuilder(480).
		NoteOn(0, 0, 60, 100).
		Note(960, 0, 64, 100, 480).
		Bytes(t)

	parsed, err := Parse(data, "fixture.mid")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(parsed.Notes, 2)

	// the open note runs to the track's final tick
	var open model.NoteEvent
	for _, n := range parsed.Notes {
		if n.Pitch == 60 {
			open = n
		}
	}
	assert.Equal(uint64(1440), open.DurationTicks)
	assert.Len(parsed.Anomalies, 1)
	assert.Equal(model.DiagAnomalousEvent, parsed.Anomalies[0].Code)
	assert.Contains(parsed.Anomalies[0].Message, "no note-off")
}

func TestIgnoresOrphanNoteOff(t *testing.T) {
	data := miditest.NewBuilder(480).
		NoteOff(240, 0, 72).
		Note(480, 0, 60, 100, 480).
		Bytes(t)

	parsed, err := Parse(data, "fixture.mid")

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(parsed.Notes, 1)
	assert.Len(parsed.Anomalies, 1)
	assert.Contains(parsed.Anomalies[0].Message, "orphan note-off")
}

func TestMalformedHeader(t *testing.T) {
	assert := assert.New(t)

	for _, data := range [][]byte{
		[]byte("this is not a midi file"),
		{},
		[]byte("MThd\x00\x00\x00\x06"),
	} {
		parsed, err := Parse(data, "bad.mid")
		assert.Nil(parsed)

		var malformed *apperr.MalformedFileError
		assert.ErrorAs(err, &malformed)
		assert.Equal("bad.mid", malformed.Path)
	}
}
