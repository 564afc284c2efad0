package model

// Mode is the scale pattern applied to the tonic.
type Mode uint8

const (
	ModeMajor Mode = iota
	ModeMinorNatural
	ModeMinorHarmonic
)

func (m Mode) String() string {
	switch m {
	case ModeMajor:
		return "major"
	case ModeMinorNatural:
		return "minor_natural"
	case ModeMinorHarmonic:
		return "minor_harmonic"
	}
	return "unknown"
}

// KeyResult is the detected key of the whole piece. Confidence is the
// winning profile-correlation score, kept for diagnostics only.
type KeyResult struct {
	Tonic      uint8
	Mode       Mode
	Confidence float64
}

func (k KeyResult) TonicName() string {
	return NoteNames[k.Tonic%12]
}
