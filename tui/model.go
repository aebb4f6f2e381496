package tui

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-music/midi"
	"go-music/music"
	"go-music/sequencer"
	"go-music/theme"
	"go-music/widgets"
)

// Messages fed to the model from the sequencer's timer goroutines.
type (
	BeatMsg  float64 // playback reached this beat
	EventMsg midi.Event
	DoneMsg  struct{}
	ErrMsg   struct{ Err error }
)

type channelState struct {
	instrument string
	held       []uint8 // MIDI keys sounding, in note-on order
}

// Model shows a piece while it plays: a beat progress bar and one line per
// MIDI channel with the notes it holds.
type Model struct {
	Title string
	Theme *theme.Theme

	seq     *sequencer.Sequencer
	total   float64 // beats, warmup included
	updates chan tea.Msg
	stop    chan struct{}
	once    *sync.Once

	beat     float64
	channels map[uint8]*channelState
	finished bool
	err      error
	quitting bool
	width    int
}

// NewModel schedules m on a new sequencer playing to out, warmup beats in.
// Playback begins when the bubbletea program starts the model.
func NewModel(m music.Music, title string, out midi.Out, warmup float64, th *theme.Theme, opts ...sequencer.Option) (Model, error) {
	model := Model{
		Title:    title,
		Theme:    th,
		total:    warmup + m.Duration(),
		updates:  make(chan tea.Msg, 256),
		stop:     make(chan struct{}),
		once:     &sync.Once{},
		channels: make(map[uint8]*channelState),
		width:    80,
	}

	opts = append(opts, sequencer.WithObserver(func(ev midi.Event) {
		model.send(EventMsg(ev))
	}))
	model.seq = sequencer.New(out, opts...)

	if err := m.Play(model.seq, warmup); err != nil {
		return Model{}, err
	}
	for b := 0.0; b <= m.Duration(); b++ {
		if err := model.seq.AddEvent(func(beat float64) { model.send(BeatMsg(beat)) }, warmup+b); err != nil {
			return Model{}, err
		}
	}
	return model, nil
}

// send hands msg to the program unless the model has quit.
func (m Model) send(msg tea.Msg) {
	if m.stopped() {
		return
	}
	select {
	case m.updates <- msg:
	case <-m.stop:
	}
}

func (m Model) stopped() bool {
	select {
	case <-m.stop:
		return true
	default:
		return false
	}
}

func (m Model) start() tea.Msg {
	done, err := m.seq.Start()
	if err != nil {
		return ErrMsg{err}
	}
	go func() {
		<-done
		m.send(DoneMsg{})
	}()
	return nil
}

func (m Model) listen() tea.Msg {
	if m.stopped() {
		return nil
	}
	select {
	case msg := <-m.updates:
		return msg
	case <-m.stop:
		return nil
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.start, m.listen)
}

// Err is the error that ended playback, if any.
func (m Model) Err() error { return m.err }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			m.once.Do(func() {
				close(m.stop)
				m.seq.Close()
			})
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case BeatMsg:
		m.beat = float64(msg)
		return m, m.listen

	case EventMsg:
		m.apply(midi.Event(msg))
		return m, m.listen

	case DoneMsg:
		m.finished = true
		m.beat = m.total
		return m, nil

	case ErrMsg:
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) apply(ev midi.Event) {
	switch ev.Type {
	case midi.ProgramChange:
		m.channel(ev.Channel).instrument = music.Instrument(ev.Program).String()
	case midi.NoteOn:
		st := m.channel(ev.Channel)
		st.held = append(st.held, ev.Note)
	case midi.NoteOff:
		st := m.channel(ev.Channel)
		if i := slices.Index(st.held, ev.Note); i >= 0 {
			st.held = slices.Delete(st.held, i, i+1)
		}
	}
}

func (m Model) channel(ch uint8) *channelState {
	st, ok := m.channels[ch]
	if !ok {
		st = &channelState{}
		m.channels[ch] = st
	}
	return st
}

func keyName(key uint8) string {
	return music.MiddleC.Transpose(int(key) - 60).String()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	errStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	state := "PLAY"
	if m.finished {
		state = "DONE"
	}
	header := headerStyle.Render(fmt.Sprintf("go-music  %s  %3.0fbpm  beat %.0f/%.0f",
		state, m.seq.Tempo(), m.beat, m.total))

	barWidth := max(10, min(m.width-4, 64))
	frac := 0.0
	if m.total > 0 {
		frac = m.beat / m.total
	}
	bar := widgets.RenderProgress(barWidth, frac, m.Theme.Symbols.Done, m.Theme.Symbols.Pending,
		m.Theme.Palette.Lookup(theme.RoleSuccess), m.Theme.Palette.Lookup(theme.RoleMuted))

	numbers := make([]uint8, 0, len(m.channels))
	for ch := range m.channels {
		numbers = append(numbers, ch)
	}
	slices.Sort(numbers)
	var rows []widgets.Channel
	for _, ch := range numbers {
		st := m.channels[ch]
		row := widgets.Channel{Number: ch, Instrument: st.instrument, Color: m.Theme.ChannelRGB(ch)}
		for _, key := range st.held {
			row.Held = append(row.Held, keyName(key))
		}
		rows = append(rows, row)
	}

	title := m.Title
	if w := max(10, m.width-4); len(title) > w {
		title = title[:w-3] + "..."
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n  ")
	out.WriteString(bar)
	out.WriteString("\n\n")
	if len(rows) > 0 {
		out.WriteString(widgets.RenderChannels(rows, m.Theme.Symbols.Sounding, m.Theme.Symbols.Silent))
		out.WriteString("\n\n")
	}
	out.WriteString(dimStyle.Render("  " + title))
	out.WriteString("\n\n")
	if m.err != nil {
		out.WriteString(errStyle.Render("  Error: " + m.err.Error()))
		out.WriteString("\n\n")
	}
	out.WriteString(dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{{Key: "q", Desc: "stop and quit"}}},
	})))

	return out.String()
}
