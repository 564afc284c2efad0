package filter

import (
	"github.com/jwhitt/romannotate/model"
)

// Percussion returns notes with every event on the given channel removed.
// Order-preserving; the input slice is left untouched.
func Percussion(notes []model.NoteEvent, channel uint8) []model.NoteEvent {
	res := make([]model.NoteEvent, 0, len(notes))
	for _, n := range notes {
		if n.Channel != channel {
			res = append(res, n)
		}
	}
	return res
}
