// Package midi turns a standard MIDI file into a normalized, tick-ordered
// note stream plus tempo and time-signature maps. Container parsing is
// delegated to gomidi's smf package; event pairing and map normalization
// happen here.
package midi

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jwhitt/romannotate/apperr"
	"github.com/jwhitt/romannotate/constants"
	"github.com/jwhitt/romannotate/model"
)

// Parsed is the reader's complete output for one file. Notes are merged
// across tracks and sorted by start tick. Anomalies records recoverable
// oddities (orphan note-offs, note-ons left open at end of track).
type Parsed struct {
	TicksPerQuarter uint32
	Notes           []model.NoteEvent
	Tempos          model.TempoMap
	TimeSignatures  model.TimeSignatureMap
	Anomalies       []model.Diagnostic
}

// ReadFile reads and parses the file at path.
func ReadFile(path string) (*Parsed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading midi file")
	}
	return Parse(data, path)
}

// Parse parses raw SMF bytes. name is used only in error reporting.
// Structural problems (bad header, no tracks, SMPTE time format) surface
// as *apperr.MalformedFileError.
func Parse(data []byte, name string) (p *Parsed, err error) {
	// the smf package panics on some malformed inputs
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = &apperr.MalformedFileError{Path: name, Reason: fmt.Errorf("%v", r)}
		}
	}()

	s, readErr := smf.ReadFrom(bytes.NewReader(data))
	if readErr != nil {
		return nil, &apperr.MalformedFileError{Path: name, Reason: readErr}
	}
	if len(s.Tracks) == 0 {
		return nil, &apperr.MalformedFileError{Path: name, Reason: errors.New("no track chunks")}
	}
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, &apperr.MalformedFileError{Path: name, Reason: fmt.Errorf("unsupported time format %v", s.TimeFormat)}
	}

	res := Parsed{TicksPerQuarter: uint32(mt.Resolution())}

	for trackNum, track := range s.Tracks {
		extractTrack(&res, trackNum, track)
	}

	sort.SliceStable(res.Notes, func(i, j int) bool {
		a, b := res.Notes[i], res.Notes[j]
		if a.StartTick != b.StartTick {
			return a.StartTick < b.StartTick
		}
		if a.Channel != b.Channel {
			return a.Channel < b.Channel
		}
		return a.Pitch < b.Pitch
	})

	res.Tempos = normalizeTempos(res.Tempos)
	res.TimeSignatures = normalizeTimeSignatures(res.TimeSignatures)

	return &res, nil
}

type openKey struct {
	channel uint8
	pitch   uint8
}

type openNote struct {
	startTick uint64
	velocity  uint8
}

// extractTrack walks one track with a running absolute tick, pairing
// note-ons with note-offs per channel+pitch. A note-on still open at the
// track's final tick is closed there and flagged; an orphan note-off is
// dropped and flagged.
func extractTrack(res *Parsed, trackNum int, track smf.Track) {
	var absTicks uint64
	open := make(map[openKey]openNote)

	for _, event := range track {
		absTicks += uint64(event.Delta)
		msg := event.Message

		var channel, pitch, velocity uint8
		var bpm float64
		var num, denom uint8
		switch {
		case msg.GetMetaTempo(&bpm):
			if bpm > 0 {
				micros := uint32(math.Round(60000000.0 / bpm))
				res.Tempos = append(res.Tempos, model.TempoChange{Tick: absTicks, MicrosPerQuarter: micros})
			}
		case msg.GetMetaMeter(&num, &denom):
			if num == 0 || denom == 0 {
				res.Anomalies = append(res.Anomalies, model.Diagnostic{
					Code:    model.DiagAnomalousEvent,
					Message: fmt.Sprintf("track %v: invalid time signature %v/%v at tick %v, ignored", trackNum, num, denom, absTicks),
				})
				break
			}
			res.TimeSignatures = append(res.TimeSignatures, model.TimeSignature{Tick: absTicks, Numerator: num, Denominator: denom})
		case msg.GetNoteStart(&channel, &pitch, &velocity):
			k := openKey{channel: channel, pitch: pitch}
			if prev, ok := open[k]; ok {
				// retrigger without a note-off closes the previous note here
				closeNote(res, prev, k, absTicks)
				res.Anomalies = append(res.Anomalies, model.Diagnostic{
					Code:    model.DiagAnomalousEvent,
					Message: fmt.Sprintf("track %v: note %v on channel %v retriggered at tick %v before its note-off", trackNum, pitch, channel, absTicks),
				})
			}
			open[k] = openNote{startTick: absTicks, velocity: velocity}
		case msg.GetNoteEnd(&channel, &pitch):
			k := openKey{channel: channel, pitch: pitch}
			prev, ok := open[k]
			if !ok {
				res.Anomalies = append(res.Anomalies, model.Diagnostic{
					Code:    model.DiagAnomalousEvent,
					Message: fmt.Sprintf("track %v: orphan note-off for note %v on channel %v at tick %v, ignored", trackNum, pitch, channel, absTicks),
				})
				break
			}
			delete(open, k)
			closeNote(res, prev, k, absTicks)
		}
	}

	// unmatched note-ons are closed at the track's final tick
	for k, prev := range open {
		closeNote(res, prev, k, absTicks)
		res.Anomalies = append(res.Anomalies, model.Diagnostic{
			Code:    model.DiagAnomalousEvent,
			Message: fmt.Sprintf("track %v: note %v on channel %v had no note-off, closed at end of track (tick %v)", trackNum, k.pitch, k.channel, absTicks),
		})
	}
}

func closeNote(res *Parsed, n openNote, k openKey, endTick uint64) {
	if endTick <= n.startTick {
		return
	}
	res.Notes = append(res.Notes, model.NoteEvent{
		Pitch:         k.pitch,
		Velocity:      n.velocity,
		Channel:       k.channel,
		StartTick:     n.startTick,
		DurationTicks: endTick - n.startTick,
	})
}

// normalizeTempos sorts entries, keeps the last one for any duplicated
// tick, and defaults tick 0 to 120 BPM when absent.
func normalizeTempos(tempos model.TempoMap) model.TempoMap {
	sort.SliceStable(tempos, func(i, j int) bool {
		return tempos[i].Tick < tempos[j].Tick
	})
	var res model.TempoMap
	for _, t := range tempos {
		if len(res) > 0 && res[len(res)-1].Tick == t.Tick {
			res[len(res)-1] = t
			continue
		}
		res = append(res, t)
	}
	if len(res) == 0 || res[0].Tick != 0 {
		res = append(model.TempoMap{{Tick: 0, MicrosPerQuarter: constants.DefaultMicrosPerQuarter}}, res...)
	}
	return res
}

func normalizeTimeSignatures(sigs model.TimeSignatureMap) model.TimeSignatureMap {
	sort.SliceStable(sigs, func(i, j int) bool {
		return sigs[i].Tick < sigs[j].Tick
	})
	var res model.TimeSignatureMap
	for _, ts := range sigs {
		if len(res) > 0 && res[len(res)-1].Tick == ts.Tick {
			res[len(res)-1] = ts
			continue
		}
		res = append(res, ts)
	}
	if len(res) == 0 || res[0].Tick != 0 {
		first := model.TimeSignature{
			Tick:        0,
			Numerator:   constants.DefaultMeterNumerator,
			Denominator: constants.DefaultMeterDenominator,
		}
		res = append(model.TimeSignatureMap{first}, res...)
	}
	return res
}
