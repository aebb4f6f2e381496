package main

import (
	"fmt"
	"os"
	"slices"
	"time"

	"go-music/midi"
	"go-music/music"
	"go-music/sequencer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	port := ""
	if len(os.Args) > 2 {
		port = os.Args[2]
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "note":
		testNote(port)
	case "poll":
		pollPorts()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list         - List MIDI output ports")
	fmt.Println("  note [port]  - Play middle C on every channel in turn")
	fmt.Println("  poll         - Poll for output port changes")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	names, err := midi.ListOutPorts(3 * time.Second)
	if err != nil {
		fmt.Println("\nTIMEOUT! The MIDI service is hung.")
		fmt.Println("Fix (macOS): sudo killall coreaudiod midiserver")
		return
	}
	for i, name := range names {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

// testNote walks middle C across 16 instruments, one per channel, so a
// misrouted channel is easy to hear.
func testNote(port string) {
	s := sequencer.New(midi.PortOut{Name: port}, sequencer.WithTempo(240))
	defer s.Close()

	for i := range midi.NumChannels {
		instr := music.Instrument(i * 8)
		if err := s.AddNote(instr, music.MiddleC, float64(i), 1); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		ch, _ := s.Channel(instr)
		fmt.Printf("  ch %2d: %s\n", ch+1, instr)
	}

	done, err := s.Start()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	<-done
	fmt.Println("done")
}

func pollPorts() {
	fmt.Println("Polling output ports every second (Ctrl+C to stop)...")

	var last []string
	for {
		names, err := midi.ListOutPorts(3 * time.Second)
		if err != nil {
			fmt.Printf("[%s] %v\n", time.Now().Format("15:04:05"), err)
		} else if !slices.Equal(names, last) {
			fmt.Printf("[%s] %d ports\n", time.Now().Format("15:04:05"), len(names))
			for _, name := range names {
				if !slices.Contains(last, name) {
					fmt.Printf("  + %s\n", name)
				}
			}
			for _, name := range last {
				if !slices.Contains(names, name) {
					fmt.Printf("  - %s\n", name)
				}
			}
			last = names
		}
		time.Sleep(time.Second)
	}
}
