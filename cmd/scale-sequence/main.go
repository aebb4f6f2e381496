// Command scale-sequence plays an octave up and back down from middle C,
// scheduling every note on the sequencer by hand.
package main

import (
	"fmt"
	"os"

	"go-music/midi"
	"go-music/music"
	"go-music/sequencer"
)

func main() {
	// a beat is a quarter note
	s := sequencer.New(midi.PortOut{}, sequencer.WithTempo(120), sequencer.WithTicksPerBeat(2))
	defer s.Close()

	c := music.MustPitch('C')
	pitches := []music.Pitch{
		c, music.MustPitch('D'), music.MustPitch('E'), music.MustPitch('F'),
		music.MustPitch('G'), music.MustPitch('A'), music.MustPitch('B'),
		c.Transpose(music.Octave),
		music.MustPitch('B'), music.MustPitch('A'), music.MustPitch('G'),
		music.MustPitch('F'), music.MustPitch('E'), music.MustPitch('D'), c,
	}
	for i, p := range pitches {
		if err := s.AddNote(music.Piano, p, float64(i), 1); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("playing now...")
	done, err := s.Start()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	<-done
	fmt.Println("playing done")
}
