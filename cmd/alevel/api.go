package main

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	"github.com/mastercactapus/alevel/coord"
	"github.com/mastercactapus/alevel/eeprom"
	"github.com/mastercactapus/alevel/level"
	"github.com/mastercactapus/alevel/machine"
)

type levelConfig struct {
	// Mode selects the correction strategy: none, skew, or tilt.
	Mode string

	Scale coord.Scale

	// MaxZ is the allowed Z spread across probe points, in steps.
	MaxZ int32

	// ZOffset is the probe-to-tool distance, in steps.
	ZOffset int32

	Cal *eeprom.EEPROM
}

func (cfg levelConfig) corrector() level.Corrector {
	switch cfg.Mode {
	case "skew":
		return level.NewSkewCorrector(cfg.Cal, cfg.MaxZ, cfg.ZOffset)
	case "tilt":
		return level.NewTiltCorrector(cfg.MaxZ)
	}
	return level.Identity{}
}

type api struct {
	http.Handler
	m       *machine.Machine
	dataDir string
	sse     *sse.Server

	cfg levelConfig

	mx     sync.Mutex
	points []coord.Point
	status level.Status
}

func newAPI(m *machine.Machine, dir string, cfg levelConfig) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		m:       m,
		dataDir: dir,
		cfg:     cfg,
		status:  level.NotActive,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
	}

	fs := http.FileServer(http.Dir(dir))
	r.PathPrefix("/data/").Handler(http.StripPrefix("/data", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case "GET":
			fs.ServeHTTP(w, req)
		case "PUT":
			a.putFile(w, req)
		case "DELETE":
			a.deleteFile(w, req)
		default:
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})))

	r.HandleFunc("/api/run", a.run).Methods("POST")
	r.HandleFunc("/api/probe", a.probe).Methods("POST")
	r.HandleFunc("/api/level", a.levelStatus).Methods("GET")
	r.HandleFunc("/api/level", a.level).Methods("POST")
	r.HandleFunc("/api/level/calibrate", a.calibrate).Methods("POST")
	r.HandleFunc("/api/tool-change", a.toolChange).Methods("POST")

	r.PathPrefix("/events/").Handler(a.sse)
	go func() {
		for state := range m.State() {
			data, err := json.Marshal(state)
			if err != nil {
				log.Printf("ERROR: marshal json: %+v", err)
				continue
			}
			a.sse.SendMessage("/events/state", sse.SimpleMessage(string(data)))
		}
	}()
	go func() {
		for msg := range m.HoldMessage() {
			a.sse.SendMessage("/events/message", sse.SimpleMessage(msg))
		}
	}()

	return a
}

func safePath(base, name string) (bool, string) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		log.Println("invalid path '" + name + "'")
		return false, ""
	}
	dir := base
	if dir == "" {
		dir = "."
	}
	fullName := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
	return true, fullName
}

// floatParser builds a FormValue float parser that records the first
// failure instead of returning it each call.
func floatParser(req *http.Request, err *error) func(param string) float64 {
	return func(param string) (val float64) {
		if *err != nil {
			return 0
		}
		val, *err = strconv.ParseFloat(req.FormValue(param), 64)
		return val
	}
}

func (a *api) run(w http.ResponseWriter, req *http.Request) {
	a.mx.Lock()
	points := a.points
	a.mx.Unlock()

	// the body is the gcode program, so options are query-only
	q := req.URL.Query()

	granularity := 5.0
	if s := q.Get("granularity"); s != "" {
		var err error
		granularity, err = strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var err error
	switch {
	case q.Get("level") != "1" || a.cfg.Mode == "none":
		_, err = a.m.ReadFrom(req.Body)
	case points == nil:
		http.Error(w, "not leveled: run a level first", http.StatusBadRequest)
		return
	case a.cfg.Mode == "mesh":
		_, err = a.m.ReadFromMesh(req.Body, granularity, points)
	default:
		_, err = a.m.ReadFromPlane(req.Body, granularity, a.cfg.corrector(), a.cfg.Scale, points)
	}
	if err != nil {
		log.Printf("ERROR: run: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) probe(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, "grid.json")
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var err error
	parse := floatParser(req, &err)

	var opt machine.ProbeOptions
	opt.ZeroZAxis = req.FormValue("zeroZAxis") == "1"
	opt.FeedRate = parse("feedRate")
	opt.MaxTravel = parse("maxZTravel")

	grid := req.FormValue("grid") == "1"
	var gridOpt machine.ProbeGridOptions
	if grid {
		gridOpt.ProbeOptions = opt
		gridOpt.DistanceX = parse("xDist")
		gridOpt.DistanceY = parse("yDist")
		gridOpt.Granularity = parse("granularity")
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var res interface{}
	if grid {
		res, err = a.m.ProbeZGrid(gridOpt)
	} else {
		res, err = a.m.ProbeZ(opt)
	}

	if err != nil {
		log.Printf("ERROR: probe grid=%t: %+v", grid, err)
		http.Error(w, err.Error(), 500)
		return
	}

	out := io.Writer(w)
	if grid {
		os.MkdirAll(filepath.Dir(name), 0755)
		f, err := os.Create(name)
		if err != nil {
			log.Printf("ERROR: create '%s': %+v", name, err)
		} else {
			defer f.Close()
			out = io.MultiWriter(w, f)
		}
	}
	err = json.NewEncoder(out).Encode(res)
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	os.MkdirAll(filepath.Dir(name), 0755)
	f, err := os.Create(name)
	if err != nil {
		log.Printf("ERROR: create '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()
	_, err = io.Copy(f, req.Body)
	if err != nil {
		log.Printf("ERROR: write '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}
func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.dataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.Remove(name)
	if err != nil {
		log.Printf("ERROR: delete '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

type levelState struct {
	Mode   string
	Active bool
	Status string

	// Deviation is the Z spread across the probe points, in mm. Only
	// meaningful while Active.
	Deviation float64

	Points []coord.Point
}

func (a *api) levelStatus(w http.ResponseWriter, req *http.Request) {
	a.mx.Lock()
	st := levelState{
		Mode:   a.cfg.Mode,
		Active: a.status.Active(),
		Status: a.status.String(),
		Points: a.points,
	}
	if a.status.Active() {
		st.Deviation = a.cfg.Scale.MMZ(int32(a.status))
	}
	a.mx.Unlock()

	err := json.NewEncoder(w).Encode(st)
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

// level probes the bed at three points and calibrates the configured
// correction strategy from the results.
func (a *api) level(w http.ResponseWriter, req *http.Request) {
	var err error
	parse := floatParser(req, &err)

	var opt machine.ThreePointOptions
	opt.FeedRate = parse("feedRate")
	opt.MaxTravel = parse("maxZTravel")
	for i := range opt.Points {
		n := strconv.Itoa(i + 1)
		opt.Points[i].X = parse("x" + n)
		opt.Points[i].Y = parse("y" + n)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	probes, err := a.m.ProbeThreePoint(opt)
	if err != nil {
		log.Printf("ERROR: level: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}

	points := make([]coord.Point, len(probes))
	for i, p := range probes {
		points[i] = p.Point
	}

	c := a.cfg.corrector()
	scale := a.cfg.Scale
	ok := c.Init(scale.Steps(points[0]), scale.Steps(points[1]), scale.Steps(points[2]))
	if !ok {
		a.mx.Lock()
		a.points, a.status = nil, c.Status()
		a.mx.Unlock()
		http.Error(w, "level failed: "+c.Status().String(), http.StatusConflict)
		return
	}

	a.mx.Lock()
	a.points, a.status = points, c.Status()
	a.mx.Unlock()

	a.levelStatus(w, req)
}

// calibrate stores probe compensation and probe XY offset, in mm.
func (a *api) calibrate(w http.ResponseWriter, req *http.Request) {
	var err error
	parse := floatParser(req, &err)

	var comp [3]int32
	for i := range comp {
		comp[i] = a.cfg.Scale.StepsZ(parse("comp" + strconv.Itoa(i+1)))
	}
	off := a.cfg.Scale.Steps(coord.Point{
		X: parse("offsetX"),
		Y: parse("offsetY"),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a.cfg.Cal.SetProbeCalibration(comp, [2]int32{off.X, off.Y})
	err = a.cfg.Cal.Save()
	if err != nil {
		log.Printf("ERROR: save calibration: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) toolChange(w http.ResponseWriter, req *http.Request) {
	var err error
	parse := floatParser(req, &err)

	var opt machine.ToolChangeOptions
	opt.ChangePos.X = parse("changeX")
	opt.ChangePos.Y = parse("changeY")
	opt.ChangePos.Z = parse("changeZ")
	opt.ProbePos.X = parse("probeX")
	opt.ProbePos.Y = parse("probeY")
	opt.ProbePos.Z = parse("probeZ")
	opt.FeedRate = parse("feedRate")
	opt.MaxTravel = parse("maxZTravel")
	opt.TravelHeight = parse("travelHeight")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = a.m.ToolChange(opt)
	if err != nil {
		log.Printf("ERROR: tool change: %+v", err)
		http.Error(w, err.Error(), 500)
		return
	}
}
