package grbl

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/mastercactapus/alevel/machine"
)

// statusInterval is how often the adapter polls grbl for a status
// report.
const statusInterval = 500 * time.Millisecond

// SerialAdapter drives a grbl controller over a direct serial
// connection.
type SerialAdapter struct {
	*Conn

	mx    sync.Mutex
	last  machine.State
	state chan machine.State
	data  chan string

	probes      []machine.ProbeResult
	getProbes   chan []machine.ProbeResult
	resetProbes chan struct{}
}

var _ machine.Adapter = &SerialAdapter{}

func NewSerialAdapter(rw io.ReadWriter) *SerialAdapter {
	adapter := &SerialAdapter{
		Conn: NewConn(rw),

		state:       make(chan machine.State),
		data:        make(chan string),
		getProbes:   make(chan []machine.ProbeResult),
		resetProbes: make(chan struct{}),
	}
	go adapter.pollStatus()
	go adapter.readLoop()
	go adapter.loop()

	return adapter
}

func (adapter *SerialAdapter) Probes() []machine.ProbeResult { return <-adapter.getProbes }

func (adapter *SerialAdapter) ResetProbes() { adapter.resetProbes <- struct{}{} }

func (adapter *SerialAdapter) State() chan machine.State { return adapter.state }

func (adapter *SerialAdapter) CurrentState() machine.State {
	adapter.mx.Lock()
	defer adapter.mx.Unlock()
	return adapter.last
}

func (adapter *SerialAdapter) pollStatus() {
	for range time.NewTicker(statusInterval).C {
		adapter.Conn.WriteByte('?')
	}
}

func (adapter *SerialAdapter) readLoop() {
	buf := make([]byte, 1024)
	for {
		n, err := adapter.Read(buf)
		if err != nil {
			log.Println("ERROR: read from port:", err)
			continue
		}
		adapter.data <- string(buf[:n])
	}
}

func (adapter *SerialAdapter) loop() {
	for {
		select {
		case <-adapter.resetProbes:
			adapter.probes = nil
		case adapter.getProbes <- adapter.probes:
		case data := <-adapter.data:
			adapter.handlePush(data)
		}
	}
}

// handlePush dispatches grbl PUSH messages: status reports and probe
// results. Everything else is protocol chatter Conn already handled.
func (adapter *SerialAdapter) handlePush(data string) {
	if len(data) == 0 {
		return
	}

	switch data[0] {
	case '<':
		stat, err := parseStatus(adapter.CurrentState(), data)
		if err != nil {
			log.Println("ERROR: parse status:", err)
			return
		}
		adapter.mx.Lock()
		adapter.last = *stat
		adapter.mx.Unlock()
		select {
		case adapter.state <- *stat:
		default:
		}
	case '[':
		prb, err := parseProbe(data)
		if err != nil {
			log.Println("ERROR: parse:", err)
			return
		}
		adapter.probes = append(adapter.probes, *prb)
	}
}
