package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-music/config"
	"go-music/debug"
	"go-music/midi"
	"go-music/music"
	"go-music/sequencer"
	"go-music/theme"
	"go-music/tui"
)

const defaultNotes = "C D E F G A B C' B A G F E D C"

func main() {
	var (
		bpm        = flag.Float64("bpm", 0, "tempo in beats per minute (default from config, 120)")
		tpb        = flag.Uint("tpb", 0, "ticks per beat for -o (default from config, 64)")
		warmup     = flag.Float64("warmup", 0, "beats of silence before the first note (default from config, 0.125)")
		port       = flag.String("port", "", "MIDI output port name or part of it (default: first port)")
		instrument = flag.String("instrument", "", "General MIDI instrument, e.g. piano, violin, flute")
		configPath = flag.String("config", "", "config file, .json or .yaml (default ~/.config/go-music/config.json)")
		outFile    = flag.String("o", "", "write a Standard MIDI File instead of playing")
		useTUI     = flag.Bool("tui", false, "show a playback view")
		dryRun     = flag.Bool("dry-run", false, "print the events instead of sending them")
		debugLog   = flag.Bool("debug", false, "write a debug log to ~/.config/go-music/debug.log")
		list       = flag.Bool("list", false, "list MIDI output ports and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: go-music [flags] [notes]\n\n")
		fmt.Fprintf(os.Stderr, "notes use a simplified abc notation, default %q\n\n", defaultNotes)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fail(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bpm":
			cfg.Tempo = *bpm
		case "tpb":
			cfg.TicksPerBeat = uint16(*tpb)
		case "warmup":
			cfg.Warmup = max(0, *warmup)
		case "port":
			cfg.Port = *port
		case "instrument":
			cfg.Instrument = *instrument
		case "debug":
			cfg.Debug = *debugLog
		}
	})

	if cfg.Debug {
		if err := debug.Enable(""); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: debug log: %v\n", err)
		}
		defer debug.Disable()
	}
	debug.Log("config", "%+v", *cfg)

	if *list {
		listPorts()
		return
	}

	notes := defaultNotes
	if flag.NArg() > 0 {
		notes = flag.Arg(0)
	}
	instr, err := music.ParseInstrument(cfg.Instrument)
	if err != nil {
		fail(err)
	}
	m, err := music.Notes(notes, instr)
	if err != nil {
		fail(err)
	}
	fmt.Println(m)

	opts := []sequencer.Option{
		sequencer.WithTempo(cfg.Tempo),
		sequencer.WithTicksPerBeat(cfg.TicksPerBeat),
	}

	switch {
	case *outFile != "":
		err = export(m, *outFile, cfg.Warmup, opts)
	case *dryRun:
		err = dryPlay(m, cfg.Warmup, opts)
	case *useTUI:
		err = playTUI(m, notes, midi.PortOut{Name: cfg.Port}, cfg.Warmup, cfg.Palette, opts)
	default:
		err = play(m, midi.PortOut{Name: cfg.Port}, cfg.Warmup, opts)
	}
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	names, err := midi.ListOutPorts(3 * time.Second)
	if err != nil {
		fmt.Println(err)
		return
	}
	if len(names) == 0 {
		fmt.Println("  (none)")
	}
	for i, name := range names {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func play(m music.Music, out midi.Out, warmup float64, opts []sequencer.Option) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sequencer.New(out, opts...)
	defer s.Close()

	fmt.Println("playing now...")
	if err := s.PlayAndWait(ctx, m, warmup); err != nil {
		return err
	}
	fmt.Println("playing done")
	return nil
}

// dryPlay runs the schedule on a manual clock and prints every event with
// the time it would have been sent.
func dryPlay(m music.Music, warmup float64, opts []sequencer.Option) error {
	clk := sequencer.NewManualClock(time.Time{})
	rec := &midi.Recorder{OnSend: func(ev midi.Event) {
		fmt.Printf("%10s  %v\n", clk.Now().Sub(time.Time{}).Round(time.Millisecond), ev)
	}}
	s := sequencer.New(rec, append(opts, sequencer.WithClock(clk))...)
	defer s.Close()

	if err := m.Play(s, warmup); err != nil {
		return err
	}
	fmt.Println("playing now...")
	done, err := s.Start()
	if err != nil {
		return err
	}
	clk.RunAll()
	<-done
	fmt.Println("playing done")
	return nil
}

func export(m music.Music, path string, warmup float64, opts []sequencer.Option) error {
	s := sequencer.New(nil, opts...)
	if err := m.Play(s, warmup); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := midi.WriteSMF(f, s.Queued(), s.TicksPerBeat(), s.Tempo()); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func playTUI(m music.Music, notes string, out midi.Out, warmup float64, palettePath string, opts []sequencer.Option) error {
	palette, err := theme.LoadPalette(palettePath)
	if err != nil {
		return err
	}
	model, err := tui.NewModel(m, notes, out, warmup, theme.New(palette), opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	return final.(tui.Model).Err()
}
