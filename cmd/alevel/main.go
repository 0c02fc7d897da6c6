package main

import (
	"flag"
	"log"
	"net/http"
	"path/filepath"

	"github.com/mastercactapus/alevel/coord"
	"github.com/mastercactapus/alevel/eeprom"
	"github.com/mastercactapus/alevel/machine"
	"github.com/mastercactapus/alevel/machine/grbl"
	"github.com/mastercactapus/alevel/spjs"
	"github.com/tarm/serial"
)

func main() {
	log.SetFlags(log.Lshortfile)

	port := flag.String("port", "/dev/ttyUSB0", "Port path (or name if using SPJS).")
	baud := flag.Int("baud", 115200, "Baud rate for a direct serial connection.")
	spjsURL := flag.String("spjs", "", "Websocket URL of the SPJS server to use instead of a direct connection.")
	addr := flag.String("addr", ":9091", "Address to bind the alevel server to.")
	dir := flag.String("dir", "./data", "Data directory to use.")

	mode := flag.String("level", "skew", "Leveling strategy: none, skew, tilt, or mesh.")
	maxDev := flag.Float64("max-deviation", 0.5, "Max allowed Z spread across probe points, in mm.")
	probeZOffset := flag.Float64("probe-z-offset", 0, "Probe tip to tool tip distance, in mm.")
	stepsX := flag.Float64("steps-x", 80, "X axis steps per mm.")
	stepsY := flag.Float64("steps-y", 80, "Y axis steps per mm.")
	stepsZ := flag.Float64("steps-z", 400, "Z axis steps per mm.")
	flag.Parse()

	var adapter machine.Adapter
	if *spjsURL != "" {
		adapter = grbl.NewSPJSAdapter(spjs.NewSPJS(*spjsURL), *port)
	} else {
		s, err := serial.OpenPort(&serial.Config{Name: *port, Baud: *baud})
		if err != nil {
			log.Fatal("open port: ", err)
		}
		adapter = grbl.NewSerialAdapter(s)
	}

	m := machine.NewMachine(adapter)

	scale := coord.Scale{X: *stepsX, Y: *stepsY, Z: *stepsZ}

	ee, err := eeprom.Open(filepath.Join(*dir, "eeprom.bin"))
	if err != nil {
		log.Fatal("load calibration: ", err)
	}

	api := newAPI(m, *dir, levelConfig{
		Mode:    *mode,
		Scale:   scale,
		MaxZ:    scale.StepsZ(*maxDev),
		ZOffset: scale.StepsZ(*probeZOffset),
		Cal:     ee,
	})

	err = http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
		api.ServeHTTP(w, req)
	}))
	if err != nil {
		log.Fatal(err)
	}
}
