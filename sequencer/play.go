package sequencer

import (
	"context"

	"go-music/midi"
	"go-music/music"
)

// Warmup is the delay, in beats, PlayMusic leaves before the first note so
// the output has settled when playback begins.
const Warmup = 0.125

// PlayMusic plays m on out and waits until it has been played or ctx is done.
func PlayMusic(ctx context.Context, m music.Music, out midi.Out, opts ...Option) error {
	s := New(out, opts...)
	defer s.Close()
	return s.PlayAndWait(ctx, m, Warmup)
}

// PlayAndWait schedules m from atBeat, starts playback and waits until
// everything has been sent or ctx is done. Cancelling ctx stops the wait,
// not the playback.
func (s *Sequencer) PlayAndWait(ctx context.Context, m music.Music, atBeat float64) error {
	if err := m.Play(s, atBeat); err != nil {
		return err
	}
	done, err := s.Start()
	if err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
