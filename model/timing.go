package model

import "fmt"

// TempoChange sets the tempo from Tick onward.
type TempoChange struct {
	Tick             uint64
	MicrosPerQuarter uint32
}

// TempoMap is ordered by tick, strictly increasing, first entry at tick 0.
type TempoMap []TempoChange

// TimeSignature sets the meter from Tick onward.
type TimeSignature struct {
	Tick        uint64
	Numerator   uint8
	Denominator uint8
}

// TimeSignatureMap is ordered by tick, strictly increasing, first entry at
// tick 0.
type TimeSignatureMap []TimeSignature

// Meter is a plain numerator/denominator pair as reported in the sidecar.
type Meter struct {
	Numerator   uint8
	Denominator uint8
}

func (m Meter) String() string {
	return fmt.Sprintf("%d/%d", m.Numerator, m.Denominator)
}

// Measure is one bar of the piece. Notes holds every NoteEvent active
// anywhere within [StartTick, EndTick); a note spanning a boundary appears
// in every measure it overlaps.
type Measure struct {
	Index       int
	StartTick   uint64
	EndTick     uint64
	Numerator   uint8
	Denominator uint8
	Notes       []NoteEvent
}

func (m Measure) MidTick() uint64 {
	return m.StartTick + (m.EndTick-m.StartTick)/2
}

func (m Measure) Meter() Meter {
	return Meter{Numerator: m.Numerator, Denominator: m.Denominator}
}
