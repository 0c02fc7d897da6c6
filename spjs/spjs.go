// Package spjs is a client for Serial Port JSON Server, a websocket
// frontend for serial devices. It reconnects automatically and keeps
// unsent commands queued across reconnects.
package spjs

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

type SPJS struct {
	url string

	outgoing chan message
	incoming chan interface{}
}

type message struct {
	done    chan struct{}
	payload []byte
}

// DataFrame is a line of output from a serial port.
type DataFrame struct {
	Port string `json:"P"`
	Data string `json:"D"`
}

// CmdStatus reports queueing progress of a sent command.
type CmdStatus struct {
	Cmd        string
	QueueCount int `json:"QCnt"`
	Type       []string
	Data       []string `json:"D"`
	ID         string   `json:"Id"`
}

type ErrorMessage struct {
	Error string
}
type SerialPortList struct {
	SerialPorts []SerialPort
}
type SerialPort struct {
	Name                      string
	Friendly                  string
	SerialNumber              string
	DeviceClass               string
	IsOpen                    bool
	IsPrimary                 bool
	RelatedNames              []string
	Baud                      int
	BufferAlgorithm           string
	AvailableBufferAlgorithms []string
	Ver                       float64
	USBVID                    string
	USBPID                    string
	FeedRateOverride          float64
}

var dialer = &websocket.Dialer{HandshakeTimeout: 10 * time.Second}

func NewSPJS(url string) *SPJS {
	sp := &SPJS{
		url:      url,
		outgoing: make(chan message, 1000),
		incoming: make(chan interface{}, 1000),
	}

	go sp.loop()

	return sp
}

// Messages returns the channel of decoded server messages. Values are
// one of *DataFrame, *CmdStatus, *SerialPortList, or *ErrorMessage.
func (sp *SPJS) Messages() chan interface{} {
	return sp.incoming
}

func decodeMessage(data []byte) (interface{}, error) {
	var fields map[string]json.RawMessage
	err := json.Unmarshal(data, &fields)
	if err != nil {
		return nil, err
	}

	var val interface{}
	switch {
	case fields["Error"] != nil:
		val = &ErrorMessage{}
	case fields["SerialPorts"] != nil:
		val = &SerialPortList{}
	case fields["Type"] != nil:
		val = &CmdStatus{}
	case fields["D"] != nil:
		val = &DataFrame{}
	default:
		return nil, errors.New("unknown message: " + string(data))
	}

	err = json.Unmarshal(data, val)
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (sp *SPJS) readLoop(ws *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			log.Println("ERROR: read:", err)
			return
		}
		if !bytes.HasPrefix(data, []byte("{")) {
			// command echoes, version banner
			continue
		}
		val, err := decodeMessage(data)
		if err != nil {
			log.Println("ERROR: parse:", err)
			continue
		}
		sp.incoming <- val
	}
}

func (sp *SPJS) loop() {
	var nextUp message

reconnect:
	for {
		log.Println("Connecting to", sp.url)
		ws, _, err := dialer.Dial(sp.url, nil)
		if err != nil {
			log.Println("ERROR: connect:", err)
			time.Sleep(3 * time.Second)
			continue
		}
		log.Println("Connected.")
		ch := make(chan struct{})
		go sp.readLoop(ws, ch)
		go sp.WriteString("list") // refresh port list on reconnect

		for {
			if nextUp.done != nil {
				err = ws.WriteMessage(websocket.TextMessage, nextUp.payload)
				if err != nil {
					log.Println("ERROR: send:", err)
					continue reconnect
				}
				close(nextUp.done)
				nextUp.done = nil
			}

			select {
			case <-ch:
				continue reconnect
			case nextUp = <-sp.outgoing:
			}
		}
	}
}

// JSON is a batch of commands for one port, sent as a `sendjson`
// request.
type JSON struct {
	Port string `json:"P"`
	Data []Data
}
type Data struct {
	Data string `json:"D"`
	ID   string `json:"Id"`
}

// SendJSON queues a command batch, blocking until it is written to
// the server.
func (sp *SPJS) SendJSON(v JSON) {
	data, err := json.Marshal(v)
	if err != nil {
		// shouldn't happen since we control everything that's sent out
		log.Panicln("ERROR: sendjson (marshal):", err)
	}

	ch := make(chan struct{})
	sp.outgoing <- message{done: ch, payload: append([]byte("sendjson "), data...)}
	<-ch
}

// WriteString queues a raw command, blocking until it is written.
func (sp *SPJS) WriteString(data string) {
	ch := make(chan struct{})
	sp.outgoing <- message{done: ch, payload: []byte(data)}
	<-ch
}
