package music

import (
	"errors"
	"math"
	"testing"
)

type addedNote struct {
	instr    Instrument
	pitch    Pitch
	start    float64
	numBeats float64
}

type recordingPlayer struct {
	notes []addedNote
	fail  error
}

func (r *recordingPlayer) AddNote(instr Instrument, pitch Pitch, startBeat, numBeats float64) error {
	if r.fail != nil {
		return r.fail
	}
	r.notes = append(r.notes, addedNote{instr, pitch, startBeat, numBeats})
	return nil
}

func mustNote(t *testing.T, d float64, p Pitch, instr Instrument) Music {
	t.Helper()
	m, err := NewNote(d, p, instr)
	if err != nil {
		t.Fatalf("NewNote(%v) error: %v", d, err)
	}
	return m
}

func mustRest(t *testing.T, d float64) Music {
	t.Helper()
	m, err := NewRest(d)
	if err != nil {
		t.Fatalf("NewRest(%v) error: %v", d, err)
	}
	return m
}

func TestInvalidDuration(t *testing.T) {
	if _, err := NewRest(-1); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("NewRest(-1) err=%v", err)
	}
	if _, err := NewNote(-0.5, MiddleC, Piano); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("NewNote(-0.5) err=%v", err)
	}
	if _, err := NewRest(math.NaN()); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("NewRest(NaN) err=%v", err)
	}
	if _, err := NewRest(0); err != nil {
		t.Fatalf("NewRest(0) err=%v", err)
	}
}

func TestDurationIsSumOfLeaves(t *testing.T) {
	pieces := []Music{
		mustRest(t, 0),
		mustNote(t, 1, MustPitch('C'), Piano),
		Concat(mustNote(t, 0.5, MustPitch('D'), Piano), mustRest(t, 1.5)),
		Concat(Concat(mustRest(t, 2), mustNote(t, 0.25, MustPitch('G'), Violin)), mustNote(t, 3, MustPitch('A'), Piano)),
		MustNotes("C D E F G A B C' | .2 _D/2 ^F3/4", Piano),
	}
	for _, m := range pieces {
		sum := 0.0
		for leaf := range Leaves(m) {
			sum += leaf.Duration()
		}
		if math.Abs(sum-m.Duration()) > 1e-12 {
			t.Errorf("%v: Duration()=%v; leaves sum to %v", m, m.Duration(), sum)
		}
	}
}

func TestEqualValue(t *testing.T) {
	build := func() Music {
		return Concat(
			Concat(mustNote(t, 1, MustPitch('C'), Piano), mustRest(t, 0.5)),
			mustNote(t, 2, MustPitch('E').Transpose(-1), Flute),
		)
	}
	a, b, c := build(), build(), build()
	if !a.Equal(a) {
		t.Fatalf("not reflexive")
	}
	if !a.Equal(b) || !b.Equal(a) {
		t.Fatalf("not symmetric")
	}
	if !b.Equal(c) || !a.Equal(c) {
		t.Fatalf("not transitive")
	}

	note := mustNote(t, 1, MustPitch('C'), Piano)
	different := []struct {
		name string
		x, y Music
	}{
		{"rest vs note", mustRest(t, 1), note},
		{"note vs sequence", note, Concat(note, mustRest(t, 0))},
		{"rest vs sequence", mustRest(t, 1), Concat(mustRest(t, 1), mustRest(t, 0))},
		{"duration", note, mustNote(t, 2, MustPitch('C'), Piano)},
		{"pitch", note, mustNote(t, 1, MustPitch('D'), Piano)},
		{"instrument", note, mustNote(t, 1, MustPitch('C'), Violin)},
		{"rest duration", mustRest(t, 1), mustRest(t, 2)},
		{"order", Concat(note, mustRest(t, 1)), Concat(mustRest(t, 1), note)},
	}
	for _, d := range different {
		if d.x.Equal(d.y) || d.y.Equal(d.x) {
			t.Errorf("%s: %v equals %v", d.name, d.x, d.y)
		}
	}
}

func TestPlayOffsetsByPrefixDuration(t *testing.T) {
	m := Concat(
		Concat(mustNote(t, 1, MustPitch('C'), Piano), mustRest(t, 0.5)),
		Concat(mustNote(t, 2, MustPitch('E'), Flute), mustNote(t, 0.25, MustPitch('G'), Piano)),
	)
	var p recordingPlayer
	if err := m.Play(&p, 10); err != nil {
		t.Fatalf("Play error: %v", err)
	}
	want := []addedNote{
		{Piano, MustPitch('C'), 10, 1},
		{Flute, MustPitch('E'), 11.5, 2},
		{Piano, MustPitch('G'), 13.5, 0.25},
	}
	if len(p.notes) != len(want) {
		t.Fatalf("got %d notes: %#v", len(p.notes), p.notes)
	}
	for i := range want {
		if p.notes[i] != want[i] {
			t.Errorf("note %d=%#v; want %#v", i, p.notes[i], want[i])
		}
	}
}

func TestPlayPropagatesPlayerError(t *testing.T) {
	boom := errors.New("boom")
	p := recordingPlayer{fail: boom}
	if err := MustNotes("C D", Piano).Play(&p, 0); !errors.Is(err, boom) {
		t.Fatalf("Play err=%v; want boom", err)
	}
	if err := mustRest(t, 1).Play(&p, 0); err != nil {
		t.Fatalf("rest Play err=%v", err)
	}
}

func TestConcatAll(t *testing.T) {
	c := mustNote(t, 1, MustPitch('C'), Piano)
	d := mustNote(t, 1, MustPitch('D'), Piano)
	if !ConcatAll(c, d).Equal(MustNotes("C D", Piano)) {
		t.Fatalf("ConcatAll(C, D) != Notes(\"C D\")")
	}
}

func TestMusicString(t *testing.T) {
	m := MustNotes("C D/2 .3 _E3/4 G,2", Piano)
	if got, want := m.String(), ".0 C D/2 .3 ^D3/4 G,2"; got != want {
		t.Fatalf("String()=%q; want %q", got, want)
	}
	if got := mustRest(t, 1).String(); got != ".1" {
		t.Fatalf("rest String()=%q", got)
	}
}

func TestInstrumentNames(t *testing.T) {
	if Piano != 0 || Gunshot != 127 || Violin != 40 || Flute != 73 {
		t.Fatalf("instrument numbering is off: piano=%d violin=%d flute=%d gunshot=%d", Piano, Violin, Flute, Gunshot)
	}
	for i := 0; i < 128; i++ {
		instr := Instrument(i)
		got, err := ParseInstrument(instr.String())
		if err != nil || got != instr {
			t.Fatalf("ParseInstrument(%q)=%v, %v", instr.String(), got, err)
		}
	}
	if _, err := ParseInstrument("kazoo"); err == nil {
		t.Fatalf("expected error for unknown instrument")
	}
}
