package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwhitt/romannotate/constants"
	"github.com/jwhitt/romannotate/model"
)

func TestRemovesPercussionOnly(t *testing.T) {
	notes := []model.NoteEvent{
		{Pitch: 60, Channel: 0, StartTick: 0, DurationTicks: 100},
		{Pitch: 36, Channel: constants.PercussionChannel, StartTick: 0, DurationTicks: 100},
		{Pitch: 64, Channel: 1, StartTick: 50, DurationTicks: 100},
		{Pitch: 38, Channel: constants.PercussionChannel, StartTick: 100, DurationTicks: 100},
		{Pitch: 67, Channel: 15, StartTick: 200, DurationTicks: 100},
	}

	res := Percussion(notes, constants.PercussionChannel)

	assert := assert.New(t)
	assert.Len(res, 3)
	for _, n := range res {
		assert.NotEqual(uint8(constants.PercussionChannel), n.Channel)
	}

	// order preserved, input untouched
	assert.Equal(uint8(60), res[0].Pitch)
	assert.Equal(uint8(64), res[1].Pitch)
	assert.Equal(uint8(67), res[2].Pitch)
	assert.Len(notes, 5)
}

func TestOtherChannelCountsUnchanged(t *testing.T) {
	var notes []model.NoteEvent
	for ch := uint8(0); ch < 16; ch++ {
		notes = append(notes, model.NoteEvent{Pitch: 60, Channel: ch, DurationTicks: 10})
	}

	res := Percussion(notes, constants.PercussionChannel)

	counts := make(map[uint8]int)
	for _, n := range res {
		counts[n.Channel]++
	}

	assert := assert.New(t)
	for ch := uint8(0); ch < 16; ch++ {
		if ch == constants.PercussionChannel {
			assert.Equal(0, counts[ch])
		} else {
			assert.Equal(1, counts[ch])
		}
	}
}

func TestOverriddenChannel(t *testing.T) {
	notes := []model.NoteEvent{
		{Pitch: 60, Channel: 2, DurationTicks: 10},
		{Pitch: 62, Channel: 3, DurationTicks: 10},
	}

	res := Percussion(notes, 2)

	assert := assert.New(t)
	assert.Len(res, 1)
	assert.Equal(uint8(3), res[0].Channel)
}
