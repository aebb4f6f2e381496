package sequencer

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
	"strconv"
	"sync"
	"time"

	"go-music/debug"
	"go-music/midi"
	"go-music/music"
)

const (
	DefaultTempo        = 120 // beats per minute
	DefaultTicksPerBeat = 64

	// MIDI key of middle C
	middleCKey = 60

	// reserved callback id fired when every scheduled event has been sent
	doneID = -1

	// live note-offs go out this much early so they never collide with a
	// note-on of the same key at the same instant
	noteOffLead = time.Millisecond
)

var (
	ErrAlreadyStarted    = errors.New("sequencer already started")
	ErrChannelsExhausted = errors.New("no free MIDI channel for instrument")
	ErrKeyOutOfRange     = errors.New("pitch outside the MIDI key range")
	ErrInvalidBeat       = errors.New("beat must be a non-negative number")
)

type state int

const (
	buffering state = iota // events are queued until Start
	live                   // events go straight to the clock
)

type queued struct {
	beat  float64
	event midi.Event
}

// Sequencer schedules notes and callbacks at beat positions and plays them
// on a MIDI output.
//
// Until Start is called every event is queued. Start opens the output,
// hands the whole queue to the clock with each beat converted to a delay
// from the start instant, and from then on new events are handed to the
// clock as they are scheduled. The switch happens once and cannot be undone.
//
// Each instrument gets its own channel, allocated on first use in order
// 0, 1, 2, ... together with a program change selecting the instrument.
//
// Live events wait in one list ordered by due time. Clock timers only wake
// the sequencer up; whichever timer fires sends every event that is due, in
// list order, so events due at the same instant go out in the order they
// were scheduled.
//
// Scheduled events cannot be cancelled.
type Sequencer struct {
	out          midi.Out
	clock        Clock
	bpm          float64
	ticksPerBeat uint16
	observer     func(midi.Event)

	mu          sync.Mutex
	state       state
	queue       []queued
	pending     []pendingEvent // live events by due time
	conn        midi.Conn
	startTime   time.Time
	outstanding int // events scheduled but not sent yet
	channels    map[music.Instrument]uint8
	callbacks   map[int]func()

	drainMu sync.Mutex // one drain at a time keeps sends in list order
}

type pendingEvent struct {
	due   time.Time
	event midi.Event
}

type Option func(*Sequencer)

// WithTempo sets the tempo in beats per minute.
func WithTempo(bpm float64) Option {
	return func(s *Sequencer) {
		if bpm > 0 {
			s.bpm = bpm
		}
	}
}

// WithTicksPerBeat sets the resolution of Queued.
func WithTicksPerBeat(n uint16) Option {
	return func(s *Sequencer) {
		if n > 0 {
			s.ticksPerBeat = n
		}
	}
}

func WithClock(c Clock) Option {
	return func(s *Sequencer) { s.clock = c }
}

// WithObserver registers f to be called with every event after it is sent.
func WithObserver(f func(midi.Event)) Option {
	return func(s *Sequencer) { s.observer = f }
}

// New creates a sequencer that will play on out.
func New(out midi.Out, opts ...Option) *Sequencer {
	s := &Sequencer{
		out:          out,
		clock:        RealClock{},
		bpm:          DefaultTempo,
		ticksPerBeat: DefaultTicksPerBeat,
		channels:     make(map[music.Instrument]uint8),
		callbacks:    make(map[int]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func checkBeat(beat float64) error {
	if math.IsNaN(beat) || math.IsInf(beat, 0) || beat < 0 {
		return fmt.Errorf("%v: %w", beat, ErrInvalidBeat)
	}
	return nil
}

// AddNote schedules pitch played by instr starting at startBeat for
// numBeats. While playing, startBeat must be now or in the future.
func (s *Sequencer) AddNote(instr music.Instrument, pitch music.Pitch, startBeat, numBeats float64) error {
	if err := checkBeat(startBeat); err != nil {
		return err
	}
	if err := checkBeat(numBeats); err != nil {
		return err
	}
	key := middleCKey + pitch.Difference(music.MiddleC)
	if key < 0 || key > 127 {
		return fmt.Errorf("%v: %w", pitch, ErrKeyOutOfRange)
	}

	s.mu.Lock()
	ch, err := s.channel(instr)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.outstanding += 2
	s.emit(startBeat, midi.NoteOnEvent(ch, uint8(key)), 0)
	s.emit(startBeat+numBeats, midi.NoteOffEvent(ch, uint8(key)), min(noteOffLead, s.duration(numBeats)))
	s.mu.Unlock()

	debug.Log("schedule", "%v on %v ch=%d at beat %v for %v", pitch, instr, ch, startBeat, numBeats)
	return nil
}

// AddEvent schedules callback to be called with atBeat once playback
// reaches atBeat.
func (s *Sequencer) AddEvent(callback func(beat float64), atBeat float64) error {
	if err := checkBeat(atBeat); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := 0
	for {
		if _, ok := s.callbacks[id]; !ok {
			break
		}
		id++
	}
	s.callbacks[id] = func() { callback(atBeat) }
	s.outstanding++
	s.emit(atBeat, midi.MarkerEvent(strconv.Itoa(id)), 0)
	return nil
}

// Start opens the output and begins playback. The returned channel is
// closed once every event scheduled so far, and any scheduled meanwhile,
// has been sent.
//
// Start succeeds only once; later calls fail with ErrAlreadyStarted. If the
// output cannot be opened nothing is sent and the sequencer keeps buffering.
func (s *Sequencer) Start() (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == live {
		return nil, ErrAlreadyStarted
	}
	conn, err := s.out.Open()
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	s.conn = conn
	s.startTime = s.clock.Now()

	s.sortQueue()
	var last time.Duration = -1
	for _, q := range s.queue {
		d := s.duration(q.beat)
		s.pending = append(s.pending, pendingEvent{due: s.startTime.Add(d), event: q.event})
		// one wake-up per distinct due time
		if d != last {
			s.clock.AfterFunc(d, s.drain)
			last = d
		}
	}
	debug.Log("start", "flushed %d events at %v bpm", len(s.queue), s.bpm)
	s.queue = nil
	s.state = live

	done := make(chan struct{})
	if s.outstanding <= 0 {
		close(done)
	} else {
		s.callbacks[doneID] = func() { close(done) }
	}
	return done, nil
}

// Close closes the output connection. Events still pending are dropped as
// they come due.
func (s *Sequencer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// Queued yields the events waiting for Start, in the order Start will send
// them, keyed by tick (beat * ticks per beat).
func (s *Sequencer) Queued() iter.Seq2[uint32, midi.Event] {
	s.mu.Lock()
	s.sortQueue()
	q := slices.Clone(s.queue)
	tpb := float64(s.ticksPerBeat)
	s.mu.Unlock()

	return func(yield func(uint32, midi.Event) bool) {
		for _, e := range q {
			if !yield(uint32(math.Round(e.beat*tpb)), e.event) {
				return
			}
		}
	}
}

// Channel returns the channel allocated to instr, if any.
func (s *Sequencer) Channel(instr music.Instrument) (uint8, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.channels[instr]
	return ch, ok
}

// Outstanding returns the number of scheduled events not sent yet.
func (s *Sequencer) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outstanding
}

// Live reports whether Start has been called successfully.
func (s *Sequencer) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == live
}

func (s *Sequencer) Tempo() float64 { return s.bpm }

func (s *Sequencer) TicksPerBeat() uint16 { return s.ticksPerBeat }

// channel returns the channel for instr, allocating one on first use.
// Requires s.mu.
func (s *Sequencer) channel(instr music.Instrument) (uint8, error) {
	if ch, ok := s.channels[instr]; ok {
		return ch, nil
	}
	if len(s.channels) >= midi.NumChannels {
		return 0, fmt.Errorf("%v: %w", instr, ErrChannelsExhausted)
	}
	ch := uint8(len(s.channels))
	s.channels[instr] = ch
	s.outstanding++

	program := midi.ProgramEvent(ch, instr.Program())
	if s.state == live {
		s.schedule(0, program)
		return ch, nil
	}
	s.queue = append(s.queue, queued{beat: 0, event: program})
	return ch, nil
}

// emit queues ev at beat, or while live schedules it early before beat.
// Requires s.mu.
func (s *Sequencer) emit(beat float64, ev midi.Event, early time.Duration) {
	switch s.state {
	case buffering:
		s.queue = append(s.queue, queued{beat: beat, event: ev})
	case live:
		delay := s.duration(beat) - s.clock.Now().Sub(s.startTime) - early
		if delay < 0 {
			debug.Log("schedule", "%v is %v late, sending now", ev, -delay)
			delay = 0
		}
		s.schedule(delay, ev)
	}
}

// schedule adds ev to the pending list after every event due no later than
// it, and sets a timer to send it. Requires s.mu.
func (s *Sequencer) schedule(delay time.Duration, ev midi.Event) {
	due := s.clock.Now().Add(delay)
	i, _ := slices.BinarySearchFunc(s.pending, due, func(p pendingEvent, t time.Time) int {
		if p.due.After(t) {
			return 1
		}
		return -1
	})
	s.pending = slices.Insert(s.pending, i, pendingEvent{due: due, event: ev})
	s.clock.AfterFunc(delay, s.drain)
}

// drain sends the pending events that are due, oldest first. Each event
// stays outstanding until its callbacks have run, so anything they schedule
// holds back done.
func (s *Sequencer) drain() {
	s.drainMu.Lock()
	defer s.drainMu.Unlock()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 || s.pending[0].due.After(s.clock.Now()) {
			s.mu.Unlock()
			return
		}
		ev := s.pending[0].event
		s.pending = slices.Delete(s.pending, 0, 1)
		after := s.deliver(ev)
		s.mu.Unlock()
		runAll(after)

		s.mu.Lock()
		s.outstanding--
		var done func()
		if s.outstanding <= 0 {
			done = s.callbacks[doneID]
			delete(s.callbacks, doneID)
		}
		s.mu.Unlock()
		if done != nil {
			done()
		}
	}
}

// deliver sends ev. It returns the callbacks that came due, to be run once
// s.mu is released. Requires s.mu.
func (s *Sequencer) deliver(ev midi.Event) []func() {
	var after []func()
	if s.observer != nil {
		observer := s.observer
		after = append(after, func() { observer(ev) })
	}
	if ev.Type == midi.Marker {
		if id, err := strconv.Atoi(ev.Text); err == nil {
			if cb, ok := s.callbacks[id]; ok {
				delete(s.callbacks, id)
				after = append(after, cb)
			}
		}
	}

	if s.conn != nil {
		if err := s.conn.Send(ev); err != nil {
			debug.Log("dispatch", "send %v failed: %v", ev, err)
		}
	}
	debug.Log("dispatch", "%v", ev)
	return after
}

// sortQueue orders the queue by beat, keeping the scheduling order of events
// on the same beat so program changes precede notes. Requires s.mu.
func (s *Sequencer) sortQueue() {
	slices.SortStableFunc(s.queue, func(a, b queued) int {
		return cmp.Compare(a.beat, b.beat)
	})
}

// duration converts beats to time at the sequencer's tempo.
func (s *Sequencer) duration(beats float64) time.Duration {
	return time.Duration(beats / s.bpm * 60 * float64(time.Second))
}

func runAll(fs []func()) {
	for _, f := range fs {
		f()
	}
}
