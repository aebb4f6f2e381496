package music

import (
	"errors"
	"testing"
)

func TestNotesScale(t *testing.T) {
	m, err := Notes("C D E", Piano)
	if err != nil {
		t.Fatalf("Notes error: %v", err)
	}
	if m.Duration() != 3 {
		t.Fatalf("Duration()=%v; want 3", m.Duration())
	}
	var leaves []Music
	for leaf := range Leaves(m) {
		leaves = append(leaves, leaf)
	}
	// leading zero rest, then the three notes
	if len(leaves) != 4 {
		t.Fatalf("got %d leaves: %v", len(leaves), leaves)
	}
	if !leaves[0].Equal(Rest{}) {
		t.Fatalf("first leaf=%v; want empty rest", leaves[0])
	}
	for i, letter := range "CDE" {
		n, ok := leaves[i+1].(Note)
		if !ok {
			t.Fatalf("leaf %d is %T", i+1, leaves[i+1])
		}
		if n.Duration() != 1 || n.Instrument() != Piano || !n.Pitch().Equal(MustPitch(letter)) {
			t.Errorf("leaf %d=%v", i+1, n)
		}
	}

	want := Concat(Concat(Concat(Rest{},
		Note{1, MustPitch('C'), Piano}),
		Note{1, MustPitch('D'), Piano}),
		Note{1, MustPitch('E'), Piano})
	if !m.Equal(want) {
		t.Fatalf("Notes(\"C D E\")=%v; want %v", m, want)
	}
}

func TestNotesSymbols(t *testing.T) {
	cases := []struct {
		in   string
		want Music
	}{
		{"_D/2", Note{0.5, MustPitch('D').Transpose(-1), Piano}},
		{"^F", Note{1, MustPitch('F').Transpose(1), Piano}},
		{"A'2", Note{2, MustPitch('A').Transpose(Octave), Piano}},
		{"C,,3/4", Note{0.75, MustPitch('C').Transpose(-2 * Octave), Piano}},
		{"^C'", Note{1, MustPitch('C').Transpose(Octave + 1), Piano}},
		{"C',", Note{1, MustPitch('C'), Piano}},
		{".", Rest{1}},
		{".3", Rest{3}},
		{"./4", Rest{0.25}},
		{".0", Rest{0}},
	}
	for _, c := range cases {
		m, err := Notes(c.in, Piano)
		if err != nil {
			t.Errorf("Notes(%q) error: %v", c.in, err)
			continue
		}
		if want := Concat(Rest{}, c.want); !m.Equal(want) {
			t.Errorf("Notes(%q)=%v; want %v", c.in, m, want)
		}
	}
}

func TestNotesDelimiters(t *testing.T) {
	a := MustNotes("C D | E F |G\tA\n\nB", Piano)
	b := MustNotes("C D E F G A B", Piano)
	if !a.Equal(b) {
		t.Fatalf("bars and whitespace should only delimit: %v vs %v", a, b)
	}
	empty := MustNotes("  | | ", Piano)
	if !empty.Equal(Rest{}) || empty.Duration() != 0 {
		t.Fatalf("empty notation=%v", empty)
	}
}

func TestNotesDurationIsSumOfSymbols(t *testing.T) {
	m := MustNotes("C C C3/4 D/4 E | E3/4 D/4 E3/4 F/4 G2 | .2 C'/3 C'/3 C'/3", Piano)
	if got, want := m.Duration(), 3+1+3+2+2+1.0; got != want {
		t.Fatalf("Duration()=%v; want %v", got, want)
	}
}

func TestNotesErrors(t *testing.T) {
	cases := []struct {
		in   string
		want []error
	}{
		{"H", []error{ErrMalformedPitch, ErrInvalidLetter}},
		{"c", []error{ErrMalformedPitch, ErrInvalidLetter}},
		{"CD", []error{ErrMalformedPitch}},
		{"^", []error{ErrMalformedPitch}},
		{"''", []error{ErrMalformedPitch}},
		{"C^", []error{ErrMalformedPitch}},
		{"..", []error{ErrMalformedPitch}},
		{"3", []error{ErrMalformedSymbol}},
		{"/2", []error{ErrMalformedSymbol}},
		{"C/", []error{ErrMalformedSymbol}},
		{"C2x", []error{ErrMalformedSymbol}},
		{"C1/0", []error{ErrMalformedSymbol}},
		{"C D H E", []error{ErrMalformedPitch, ErrInvalidLetter}},
	}
	for _, c := range cases {
		m, err := Notes(c.in, Piano)
		if err == nil {
			t.Errorf("Notes(%q)=%v; want error", c.in, m)
			continue
		}
		if m != nil {
			t.Errorf("Notes(%q) returned partial music %v", c.in, m)
		}
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Notes(%q) err=%v is not a *SyntaxError", c.in, err)
		}
		for _, w := range c.want {
			if !errors.Is(err, w) {
				t.Errorf("Notes(%q) err=%v; want %v", c.in, err, w)
			}
		}
	}
}

func TestNotesStringRoundTrip(t *testing.T) {
	m := MustNotes("C C C3/4 D/4 E | _B,2 ^F'/3 .1/2 G''5/8", Flute)
	again, err := Notes(m.String(), Flute)
	if err != nil {
		t.Fatalf("Notes(%q) error: %v", m.String(), err)
	}
	var got, want []Music
	for leaf := range Leaves(again) {
		got = append(got, leaf)
	}
	for leaf := range Leaves(m) {
		want = append(want, leaf)
	}
	// reparsing adds one more leading empty rest
	if len(got) != len(want)+1 {
		t.Fatalf("round trip has %d leaves; want %d", len(got), len(want)+1)
	}
	for i := range want {
		if !got[i+1].Equal(want[i]) {
			t.Fatalf("leaf %d=%v; want %v", i, got[i+1], want[i])
		}
	}
	if again.String() != ".0 "+m.String() {
		t.Fatalf("round trip rendering %q; want %q", again.String(), ".0 "+m.String())
	}
}
