package music

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidLetter       = errors.New("pitch letter must be in the range A-G")
	ErrNonIntegerTranspose = errors.New("transposition must be a whole number of semitones")
)

// Octave is the number of semitones in an octave.
const Octave = 12

// Pitch is a musical pitch, stored as the number of semitones above middle C
// (negative below it). The zero value is middle C.
//
// Pitch is an immutable value type: compare with == or Equal.
type Pitch struct {
	value int
}

// MiddleC is the reference pitch every other pitch is measured from.
var MiddleC = Pitch{}

// semitones above C for each letter in the middle octave
var scale = map[rune]int{
	'C': 0,
	'D': 2,
	'E': 4,
	'F': 5,
	'G': 7,
	'A': 9,
	'B': 11,
}

var valueNames = [Octave]string{
	"C", "^C", "D", "^D", "E", "F", "^F", "G", "^G", "A", "^A", "B",
}

// MakePitch returns the pitch named by letter in the middle octave; for
// example MakePitch('C') is middle C.
func MakePitch(letter rune) (Pitch, error) {
	v, ok := scale[letter]
	if !ok {
		return Pitch{}, fmt.Errorf("%q: %w", letter, ErrInvalidLetter)
	}
	return Pitch{value: v}, nil
}

// MustPitch is like MakePitch but panics on an invalid letter.
func MustPitch(letter rune) Pitch {
	p, err := MakePitch(letter)
	if err != nil {
		panic(err)
	}
	return p
}

// Transpose returns the pitch semitones above p (below it when negative).
func (p Pitch) Transpose(semitones int) Pitch {
	return Pitch{value: p.value + semitones}
}

// TransposeBy is Transpose for amounts computed as floating point numbers.
// The amount must be a whole number.
func (p Pitch) TransposeBy(semitones float64) (Pitch, error) {
	if math.IsNaN(semitones) || math.IsInf(semitones, 0) || math.Trunc(semitones) != semitones {
		return Pitch{}, fmt.Errorf("%v: %w", semitones, ErrNonIntegerTranspose)
	}
	return p.Transpose(int(semitones)), nil
}

// Difference returns the number of semitones n such that
// other.Transpose(n) equals p.
func (p Pitch) Difference(other Pitch) int {
	return p.value - other.value
}

// Equal reports whether p and other are the same pitch.
func (p Pitch) Equal(other Pitch) bool {
	return p.value == other.value
}

// String renders p in the notation accepted by ParsePitch, using sharps for
// accidentals and ' or , for octaves above or below the middle one.
func (p Pitch) String() string {
	var suffix strings.Builder
	v := p.value
	for v < 0 {
		suffix.WriteByte(',')
		v += Octave
	}
	for v >= Octave {
		suffix.WriteByte('\'')
		v -= Octave
	}
	return valueNames[v] + suffix.String()
}
