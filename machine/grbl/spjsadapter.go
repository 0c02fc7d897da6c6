package grbl

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mastercactapus/alevel/machine"
	"github.com/mastercactapus/alevel/spjs"
)

// sendBatchSize is the number of lines to send per sendjson request.
const sendBatchSize = 100

var lastID int64

func nextID() string {
	id := atomic.AddInt64(&lastID, 1)
	return "cmd_" + strconv.FormatInt(id, 36)
}

// SPJSAdapter drives a grbl controller through a Serial Port JSON
// Server, letting spjs own the port and its buffering.
type SPJSAdapter struct {
	sp   *spjs.SPJS
	port string

	cmds    chan cmdBatch
	waiting map[string]chan error

	mx    sync.Mutex
	last  machine.State
	state chan machine.State

	probes      []machine.ProbeResult
	getProbes   chan []machine.ProbeResult
	resetProbes chan struct{}
}

var _ machine.Adapter = &SPJSAdapter{}

type cmdBatch struct {
	spjs.JSON
	wait chan error
}

func NewSPJSAdapter(sp *spjs.SPJS, port string) *SPJSAdapter {
	adapter := &SPJSAdapter{
		sp:   sp,
		port: port,

		waiting: make(map[string]chan error, 100),
		cmds:    make(chan cmdBatch, 1000),

		state:       make(chan machine.State),
		getProbes:   make(chan []machine.ProbeResult),
		resetProbes: make(chan struct{}),
	}
	go adapter.loop()

	return adapter
}

func (adapter *SPJSAdapter) Probes() []machine.ProbeResult { return <-adapter.getProbes }

func (adapter *SPJSAdapter) ResetProbes() { adapter.resetProbes <- struct{}{} }

func (adapter *SPJSAdapter) State() chan machine.State { return adapter.state }

func (adapter *SPJSAdapter) CurrentState() machine.State {
	adapter.mx.Lock()
	defer adapter.mx.Unlock()
	return adapter.last
}

func (adapter *SPJSAdapter) setMachineState(state machine.State) {
	adapter.mx.Lock()
	adapter.last = state
	adapter.mx.Unlock()
	select {
	case adapter.state <- state:
	default:
	}
}

func (adapter *SPJSAdapter) loop() {
	for {
		select {
		case adapter.getProbes <- adapter.probes:
		case <-adapter.resetProbes:
			adapter.probes = nil
		case resp := <-adapter.sp.Messages():
			adapter.handleMessage(resp)
		case msg := <-adapter.cmds:
			adapter.sp.SendJSON(msg.JSON)
			if msg.wait != nil {
				adapter.waiting[msg.Data[len(msg.Data)-1].ID] = msg.wait
			}
		}
	}
}

func (adapter *SPJSAdapter) handleMessage(resp interface{}) {
	switch msg := resp.(type) {
	case *spjs.DataFrame:
		if len(msg.Data) == 0 {
			return
		}
		switch msg.Data[0] {
		case '<':
			stat, err := parseStatus(adapter.CurrentState(), msg.Data)
			if err != nil {
				log.Println("ERROR: parse status:", err)
				return
			}
			adapter.setMachineState(*stat)
		case '[':
			prb, err := parseProbe(msg.Data)
			if err != nil {
				log.Println("ERROR: parse:", err)
				return
			}
			adapter.probes = append(adapter.probes, *prb)
		}
	case *spjs.CmdStatus:
		switch msg.Cmd {
		case "WipedQueue":
			for key, ch := range adapter.waiting {
				ch <- errors.New("wiped queue")
				delete(adapter.waiting, key)
			}
		case "Complete":
			if adapter.waiting[msg.ID] != nil {
				adapter.waiting[msg.ID] <- nil
				delete(adapter.waiting, msg.ID)
			}
		}
	case *spjs.SerialPortList:
		for _, port := range msg.SerialPorts {
			if port.Name != adapter.port {
				continue
			}
			if !port.IsOpen {
				adapter.sp.WriteString("open " + adapter.port + " grbl 115200")
			}
		}
	}
}

// ReadFrom streams lines in batches, returning once the final batch
// completes on the device.
func (adapter *SPJSAdapter) ReadFrom(r io.Reader) (n int64, err error) {
	scan := bufio.NewScanner(r)
	var wait chan error
	for {
		var j spjs.JSON
		j.Port = adapter.port
		for scan.Scan() {
			n += int64(len(scan.Bytes()))
			j.Data = append(j.Data, spjs.Data{
				Data: strings.TrimSpace(scan.Text()) + "\n",
				ID:   nextID(),
			})
			if len(j.Data) == sendBatchSize {
				break
			}
		}
		if len(j.Data) == 0 {
			break
		}
		wait = make(chan error, 1)
		adapter.cmds <- cmdBatch{JSON: j, wait: wait}
	}

	if wait == nil {
		return 0, nil
	}

	return n, <-wait
}

func (adapter *SPJSAdapter) WriteByte(b byte) error {
	_, err := adapter.Write([]byte{b, '\n'})
	return err
}

func (adapter *SPJSAdapter) Write(p []byte) (int, error) {
	n, err := adapter.ReadFrom(bytes.NewBuffer(p))
	return int(n), err
}
