package music

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	ErrMalformedSymbol = errors.New("malformed symbol")
	ErrMalformedPitch  = errors.New("malformed pitch")
)

// SyntaxError reports a symbol of the notation that could not be parsed.
type SyntaxError struct {
	Symbol string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("couldn't understand %q: %v", e.Symbol, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

var (
	delimiters = regexp.MustCompile(`[\s|]+`)
	symbolRe   = regexp.MustCompile(`^([^/0-9]+)([0-9]+)?(/[0-9]+)?$`)
)

// Notes parses a simplified abc notation into Music played by instr.
//
// The notation is a sequence of symbols separated by whitespace; the bar |
// separates measures and is treated like a space.
//
//	notes      ::= symbol*
//	symbol     ::= . duration       // rest
//	             | pitch duration   // note
//	pitch      ::= accidental letter octave*
//	accidental ::= ""  // natural
//	             | _   // flat
//	             | ^   // sharp
//	letter     ::= [A-G]
//	octave     ::= '   // one octave up
//	             | ,   // one octave down
//	duration   ::= ""  // 1 beat
//	             | /m  // 1/m beat
//	             | n   // n beats
//	             | n/m // n/m beats
//
// For example "C" is one beat of middle C, "A'2" two beats of the A above it
// and "_D/2" half a beat of D flat.
func Notes(notes string, instr Instrument) (Music, error) {
	var m Music = Rest{}
	for _, sym := range delimiters.Split(notes, -1) {
		if sym == "" {
			continue
		}
		next, err := parseSymbol(sym, instr)
		if err != nil {
			return nil, &SyntaxError{Symbol: sym, Err: err}
		}
		m = Concat(m, next)
	}
	return m, nil
}

// MustNotes is like Notes but panics if notes cannot be parsed.
func MustNotes(notes string, instr Instrument) Music {
	m, err := Notes(notes, instr)
	if err != nil {
		panic(err)
	}
	return m
}

func parseSymbol(sym string, instr Instrument) (Music, error) {
	groups := symbolRe.FindStringSubmatch(sym)
	if groups == nil {
		return nil, ErrMalformedSymbol
	}
	pitch, numerator, denominator := groups[1], groups[2], groups[3]

	duration := 1.0
	if numerator != "" {
		n, err := strconv.Atoi(numerator)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSymbol, err)
		}
		duration *= float64(n)
	}
	if denominator != "" {
		d, err := strconv.Atoi(denominator[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSymbol, err)
		}
		if d == 0 {
			return nil, fmt.Errorf("%w: zero denominator", ErrMalformedSymbol)
		}
		duration /= float64(d)
	}

	if pitch == "." {
		return NewRest(duration)
	}
	p, err := ParsePitch(pitch)
	if err != nil {
		return nil, err
	}
	return NewNote(duration, p, instr)
}

// ParsePitch parses the pitch part of a note symbol, for example "^F," or
// "C''". It is the inverse of Pitch.String.
func ParsePitch(s string) (Pitch, error) {
	switch {
	case strings.HasSuffix(s, "'"):
		p, err := ParsePitch(s[:len(s)-1])
		return p.Transpose(Octave), err
	case strings.HasSuffix(s, ","):
		p, err := ParsePitch(s[:len(s)-1])
		return p.Transpose(-Octave), err
	case strings.HasPrefix(s, "^"):
		p, err := ParsePitch(s[1:])
		return p.Transpose(1), err
	case strings.HasPrefix(s, "_"):
		p, err := ParsePitch(s[1:])
		return p.Transpose(-1), err
	case utf8.RuneCountInString(s) != 1:
		return Pitch{}, fmt.Errorf("%w: %q", ErrMalformedPitch, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	p, err := MakePitch(r)
	if err != nil {
		return Pitch{}, fmt.Errorf("%w: %w", ErrMalformedPitch, err)
	}
	return p, nil
}
