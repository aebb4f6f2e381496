package music

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"strconv"
)

var ErrInvalidDuration = errors.New("duration must be a non-negative number of beats")

// Player schedules notes for playback. sequencer.Sequencer is the MIDI
// implementation.
type Player interface {
	// AddNote schedules pitch played by instr from startBeat for numBeats.
	AddNote(instr Instrument, pitch Pitch, startBeat, numBeats float64) error
}

// Music is an immutable piece of music. The set of implementations is closed:
// Rest, Note and Sequence.
//
// A parallel combinator (two pieces starting at the same beat) would be a
// fourth variant; it is not part of the model yet.
type Music interface {
	// Duration is the total length in beats.
	Duration() float64
	// Play schedules the piece on p, starting at atBeat.
	Play(p Player, atBeat float64) error
	// Equal reports whether other is the same music expression, compared
	// structurally.
	Equal(other Music) bool
	String() string

	isMusic()
}

// Rest is silence lasting a number of beats.
type Rest struct {
	duration float64
}

// Note is a pitch played by an instrument for a number of beats.
type Note struct {
	duration   float64
	pitch      Pitch
	instrument Instrument
}

// Sequence is two pieces of music played one after the other.
type Sequence struct {
	first, second Music
}

func checkDuration(d float64) error {
	if math.IsNaN(d) || d < 0 {
		return fmt.Errorf("%v: %w", d, ErrInvalidDuration)
	}
	return nil
}

// NewRest returns a rest lasting duration beats.
func NewRest(duration float64) (Music, error) {
	if err := checkDuration(duration); err != nil {
		return nil, err
	}
	return Rest{duration: duration}, nil
}

// NewNote returns pitch played by instrument for duration beats.
func NewNote(duration float64, pitch Pitch, instrument Instrument) (Music, error) {
	if err := checkDuration(duration); err != nil {
		return nil, err
	}
	return Note{duration: duration, pitch: pitch, instrument: instrument}, nil
}

// Concat returns first followed by second.
func Concat(first, second Music) Music {
	return Sequence{first: first, second: second}
}

// ConcatAll folds ms left to right with Concat, starting from an empty rest,
// the same shape Notes produces.
func ConcatAll(ms ...Music) Music {
	var m Music = Rest{}
	for _, next := range ms {
		m = Concat(m, next)
	}
	return m
}

func (Rest) isMusic()     {}
func (Note) isMusic()     {}
func (Sequence) isMusic() {}

func (r Rest) Duration() float64 { return r.duration }

func (r Rest) Play(Player, float64) error { return nil }

func (r Rest) Equal(other Music) bool {
	o, ok := other.(Rest)
	return ok && r.duration == o.duration
}

func (r Rest) String() string {
	d := formatDuration(r.duration)
	if d == "" {
		d = "1"
	}
	return "." + d
}

func (n Note) Duration() float64 { return n.duration }

// Pitch returns the pitch of the note.
func (n Note) Pitch() Pitch { return n.pitch }

// Instrument returns the instrument playing the note.
func (n Note) Instrument() Instrument { return n.instrument }

func (n Note) Play(p Player, atBeat float64) error {
	return p.AddNote(n.instrument, n.pitch, atBeat, n.duration)
}

func (n Note) Equal(other Music) bool {
	o, ok := other.(Note)
	return ok && n.duration == o.duration &&
		n.instrument == o.instrument &&
		n.pitch.Equal(o.pitch)
}

func (n Note) String() string {
	return n.pitch.String() + formatDuration(n.duration)
}

func (s Sequence) Duration() float64 {
	return s.first.Duration() + s.second.Duration()
}

// First returns the piece played first.
func (s Sequence) First() Music { return s.first }

// Second returns the piece played after First.
func (s Sequence) Second() Music { return s.second }

func (s Sequence) Play(p Player, atBeat float64) error {
	if err := s.first.Play(p, atBeat); err != nil {
		return err
	}
	return s.second.Play(p, atBeat+s.first.Duration())
}

func (s Sequence) Equal(other Music) bool {
	o, ok := other.(Sequence)
	return ok && s.first.Equal(o.first) && s.second.Equal(o.second)
}

func (s Sequence) String() string {
	return s.first.String() + " " + s.second.String()
}

// Leaves yields the notes and rests of m in playback order.
func Leaves(m Music) iter.Seq[Music] {
	return func(yield func(Music) bool) {
		walk(m, yield)
	}
}

func walk(m Music, yield func(Music) bool) bool {
	switch m := m.(type) {
	case Sequence:
		return walk(m.first, yield) && walk(m.second, yield)
	case Rest, Note:
		return yield(m)
	}
	return true
}

// formatDuration renders d in the duration syntax of Notes: empty for one
// beat, otherwise n, /m or n/m.
func formatDuration(d float64) string {
	for den := 1; den <= 128; den++ {
		num := math.Round(d * float64(den))
		if math.Abs(num-d*float64(den)) > 1e-9 {
			continue
		}
		n := strconv.FormatInt(int64(num), 10)
		switch {
		case den == 1 && num == 1:
			return ""
		case den == 1:
			return n
		case num == 1:
			return "/" + strconv.Itoa(den)
		default:
			return n + "/" + strconv.Itoa(den)
		}
	}
	return strconv.FormatFloat(d, 'g', -1, 64)
}
