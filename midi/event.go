package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Event types. Channel messages use their MIDI status nibble.
const (
	NoteOn        uint8 = 0x90
	NoteOff       uint8 = 0x80
	ProgramChange uint8 = 0xC0
	Marker        uint8 = 0xFF // out-of-band, never sent to a device
)

// DefaultVelocity is used for every note-on.
const DefaultVelocity uint8 = 127

// NumChannels is the number of MIDI channels on one port.
const NumChannels = 16

// Event is a single output event produced by the sequencer
type Event struct {
	Type     uint8 // NoteOn, NoteOff, ProgramChange, Marker
	Channel  uint8 // 0-15
	Note     uint8
	Velocity uint8
	Program  uint8
	Text     string // Marker payload
}

func NoteOnEvent(channel, note uint8) Event {
	return Event{Type: NoteOn, Channel: channel, Note: note, Velocity: DefaultVelocity}
}

func NoteOffEvent(channel, note uint8) Event {
	return Event{Type: NoteOff, Channel: channel, Note: note}
}

func ProgramEvent(channel, program uint8) Event {
	return Event{Type: ProgramChange, Channel: channel, Program: program}
}

func MarkerEvent(text string) Event {
	return Event{Type: Marker, Text: text}
}

// Message converts a channel event to its wire message. Markers have no wire
// form and return nil.
func (e Event) Message() gomidi.Message {
	switch e.Type {
	case NoteOn:
		return gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
	case NoteOff:
		return gomidi.NoteOff(e.Channel, e.Note)
	case ProgramChange:
		return gomidi.ProgramChange(e.Channel, e.Program)
	}
	return nil
}

// smfMessage is the form of e stored in a Standard MIDI File track.
func (e Event) smfMessage() smf.Message {
	if e.Type == Marker {
		return smf.MetaMarker(e.Text)
	}
	return smf.Message(e.Message())
}

func (e Event) String() string {
	switch e.Type {
	case NoteOn:
		return fmt.Sprintf("note-on ch=%d note=%d vel=%d", e.Channel, e.Note, e.Velocity)
	case NoteOff:
		return fmt.Sprintf("note-off ch=%d note=%d", e.Channel, e.Note)
	case ProgramChange:
		return fmt.Sprintf("program ch=%d program=%d", e.Channel, e.Program)
	case Marker:
		return fmt.Sprintf("marker %q", e.Text)
	}
	return fmt.Sprintf("unknown type=%#x", e.Type)
}
