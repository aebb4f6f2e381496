package midi

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-music/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var ErrDeviceUnavailable = errors.New("MIDI output device unavailable")

// Out is something an output connection can be opened on.
type Out interface {
	// Open connects to the device. Errors wrap ErrDeviceUnavailable.
	Open() (Conn, error)
}

// Conn is an open output connection.
type Conn interface {
	// Send delivers ev to the device now.
	Send(ev Event) error
	Close() error
}

// PortOut opens a MIDI output port of the system driver.
type PortOut struct {
	// Name selects the port: exact match first, then case-insensitive
	// substring. Empty takes the first port.
	Name string
}

func (o PortOut) Open() (Conn, error) {
	port, err := findOutPort(o.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("%w: open output %s: %v", ErrDeviceUnavailable, port.String(), err)
	}
	debug.Log("port", "opened output %s", port.String())
	return &portConn{port: port, send: send}, nil
}

func findOutPort(name string) (drivers.Out, error) {
	outs := gomidi.GetOutPorts()
	if len(outs) == 0 {
		return nil, errors.New("no MIDI output ports")
	}
	if name == "" {
		return outs[0], nil
	}
	for _, p := range outs {
		if p.String() == name {
			return p, nil
		}
	}
	lower := strings.ToLower(name)
	for _, p := range outs {
		if strings.Contains(strings.ToLower(p.String()), lower) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no MIDI output port matching %q", name)
}

type portConn struct {
	port drivers.Out
	send func(msg gomidi.Message) error
	mu   sync.Mutex // timers deliver from their own goroutines
}

func (c *portConn) Send(ev Event) error {
	if ev.Type == Marker {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.send(ev.Message())
}

func (c *portConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.port.Close()
}

// ListOutPorts returns the names of the output ports. Some drivers hang
// while enumerating, so the scan gives up after timeout.
func ListOutPorts(timeout time.Duration) ([]string, error) {
	ch := make(chan []string, 1)
	go func() {
		var names []string
		for _, p := range gomidi.GetOutPorts() {
			names = append(names, p.String())
		}
		ch <- names
	}()

	select {
	case names := <-ch:
		return names, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("listing MIDI ports timed out after %v", timeout)
	}
}

// Recorder is an in-memory Out that keeps every event it is sent.
type Recorder struct {
	// Err, when set, makes Open fail with it wrapped in ErrDeviceUnavailable.
	Err error
	// OnSend is called for every event sent, after it is recorded.
	OnSend func(Event)

	mu     sync.Mutex
	events []Event
	opened int
	closed bool
}

func (r *Recorder) Open() (Conn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, r.Err)
	}
	r.opened++
	return recorderConn{r}, nil
}

// Events returns a copy of the events sent so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Opened returns how many connections were opened.
func (r *Recorder) Opened() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opened
}

// Closed reports whether a connection was closed.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

type recorderConn struct{ r *Recorder }

func (c recorderConn) Send(ev Event) error {
	c.r.mu.Lock()
	c.r.events = append(c.r.events, ev)
	onSend := c.r.OnSend
	c.r.mu.Unlock()
	if onSend != nil {
		onSend(ev)
	}
	return nil
}

func (c recorderConn) Close() error {
	c.r.mu.Lock()
	defer c.r.mu.Unlock()
	c.r.closed = true
	return nil
}
