// Command row-your-boat plays the round's melody once.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go-music/midi"
	"go-music/music"
	"go-music/sequencer"
)

func main() {
	bars := []string{
		"C C C3/4 D/4 E",                                     // Row, row, row your boat,
		"E3/4 D/4 E3/4 F/4 G2",                               // Gently down the stream.
		"C'/3 C'/3 C'/3 G/3 G/3 G/3 E/3 E/3 E/3 C/3 C/3 C/3", // Merrily, merrily, merrily, merrily,
		"G3/4 F/4 E3/4 D/4 C2",                               // Life is but a dream.
	}
	rowYourBoat := music.MustNotes(strings.Join(bars, " | "), music.Piano)
	fmt.Println(rowYourBoat)

	fmt.Println("playing now...")
	if err := sequencer.PlayMusic(context.Background(), rowYourBoat, midi.PortOut{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("playing done")
}
