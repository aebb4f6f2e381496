// Command scale plays an octave up and back down written in notation.
package main

import (
	"context"
	"fmt"
	"os"

	"go-music/midi"
	"go-music/music"
	"go-music/sequencer"
)

func main() {
	scale := music.MustNotes("C D E F G A B C' B A G F E D C", music.Piano)
	fmt.Println(scale)

	fmt.Println("playing now...")
	if err := sequencer.PlayMusic(context.Background(), scale, midi.PortOut{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("playing done")
}
