// Package miditest builds small SMF byte blobs for tests, so fixtures are
// real MIDI containers rather than canned binaries.
package miditest

import (
	"bytes"
	"sort"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	prioMeta = iota
	prioNoteOff
	prioNoteOn
)

type timedMessage struct {
	track int
	tick  uint64
	prio  int
	msg   []byte
}

// Builder accumulates absolute-tick events and renders an SMF. Events go
// to the current track; NextTrack starts another one for multi-track
// fixtures.
type Builder struct {
	ppq     uint16
	current int
	events  []timedMessage
}

func NewBuilder(ppq uint16) *Builder {
	return &Builder{ppq: ppq}
}

func (b *Builder) NextTrack() *Builder {
	b.current++
	return b
}

func (b *Builder) Tempo(tick uint64, bpm float64) *Builder {
	b.events = append(b.events, timedMessage{track: b.current, tick: tick, prio: prioMeta, msg: smf.MetaTempo(bpm)})
	return b
}

func (b *Builder) Meter(tick uint64, num, denom uint8) *Builder {
	b.events = append(b.events, timedMessage{track: b.current, tick: tick, prio: prioMeta, msg: smf.MetaMeter(num, denom)})
	return b
}

// Note adds a paired note-on/note-off spanning [tick, tick+duration).
func (b *Builder) Note(tick uint64, channel, pitch, velocity uint8, duration uint64) *Builder {
	b.NoteOn(tick, channel, pitch, velocity)
	b.NoteOff(tick+duration, channel, pitch)
	return b
}

// NoteOn adds an unpaired note-on, for exercising end-of-track closure.
func (b *Builder) NoteOn(tick uint64, channel, pitch, velocity uint8) *Builder {
	b.events = append(b.events, timedMessage{track: b.current, tick: tick, prio: prioNoteOn, msg: midi.NoteOn(channel, pitch, velocity)})
	return b
}

// NoteOff adds an unpaired note-off, for exercising orphan handling.
func (b *Builder) NoteOff(tick uint64, channel, pitch uint8) *Builder {
	b.events = append(b.events, timedMessage{track: b.current, tick: tick, prio: prioNoteOff, msg: midi.NoteOff(channel, pitch)})
	return b
}

// Bytes renders the accumulated events as a finished SMF. Events at the
// same tick are ordered meta, note-off, note-on.
func (b *Builder) Bytes(t *testing.T) []byte {
	t.Helper()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(b.ppq)

	for trackNum := 0; trackNum <= b.current; trackNum++ {
		var events []timedMessage
		for _, ev := range b.events {
			if ev.track == trackNum {
				events = append(events, ev)
			}
		}
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].tick != events[j].tick {
				return events[i].tick < events[j].tick
			}
			return events[i].prio < events[j].prio
		})

		var track smf.Track
		var lastTick uint64
		for _, ev := range events {
			track.Add(uint32(ev.tick-lastTick), ev.msg)
			lastTick = ev.tick
		}
		track.Close(0)

		if err := s.Add(track); err != nil {
			t.Fatalf("adding track: %v", err)
		}
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("writing smf: %v", err)
	}
	return buf.Bytes()
}
