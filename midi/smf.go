package midi

import (
	"fmt"
	"io"
	"iter"

	"gitlab.com/gomidi/midi/v2/smf"
)

// WriteSMF writes events as a single-track Standard MIDI File. Events are
// keyed by their absolute tick and must come in non-decreasing tick order;
// markers become marker meta events.
func WriteSMF(w io.Writer, events iter.Seq2[uint32, Event], ticksPerBeat uint16, bpm float64) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerBeat)

	var track smf.Track
	track.Add(0, smf.MetaTempo(bpm))
	var last uint32
	for tick, ev := range events {
		if tick < last {
			return fmt.Errorf("event %v at tick %d comes after tick %d", ev, tick, last)
		}
		track.Add(tick-last, ev.smfMessage())
		last = tick
	}
	track.Close(0)

	if err := s.Add(track); err != nil {
		return fmt.Errorf("error adding track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("error writing MIDI file: %w", err)
	}
	return nil
}
