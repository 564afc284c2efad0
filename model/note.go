package model

// NoteNames spells the 12 pitch classes with sharps.
var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteEvent is a single pitched note with its absolute tick interval.
// Immutable once built by the reader.
type NoteEvent struct {
	Pitch         uint8
	Velocity      uint8
	Channel       uint8
	StartTick     uint64
	DurationTicks uint64
}

func (n NoteEvent) EndTick() uint64 {
	return n.StartTick + n.DurationTicks
}

func (n NoteEvent) PitchClass() uint8 {
	return n.Pitch % 12
}
