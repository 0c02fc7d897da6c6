package grbl

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mastercactapus/alevel/coord"
	"github.com/mastercactapus/alevel/machine"
)

// parseCoords parses a comma-separated x,y,z triple.
func parseCoords(data string) (coord.Point, error) {
	var p coord.Point
	parts := strings.Split(data, ",")
	if len(parts) != 3 {
		return p, errors.New("invalid number of elements")
	}

	var err error
	for i, dst := range []*float64{&p.X, &p.Y, &p.Z} {
		*dst, err = strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

// parseProbe parses a `[PRB:x,y,z:ok]` push message.
func parseProbe(data string) (*machine.ProbeResult, error) {
	data = strings.TrimSpace(data)
	data = strings.TrimPrefix(data, "[")
	data = strings.TrimSuffix(data, "]")
	parts := strings.Split(data, ":")
	if parts[0] != "PRB" || len(parts) != 3 {
		return nil, errors.New("unknown PUSH message: " + data)
	}

	var res machine.ProbeResult
	res.Valid = parts[2] == "1"

	var err error
	res.Point, err = parseCoords(parts[1])
	if err != nil {
		return nil, err
	}

	return &res, nil
}

// parseStatus parses a `<Status|MPos:...|WCO:...>` report. Fields the
// report omits carry over from the previous state; grbl only includes
// WCO intermittently.
func parseStatus(stat machine.State, data string) (*machine.State, error) {
	data = strings.TrimSpace(data)
	data = strings.TrimPrefix(data, "<")
	data = strings.TrimSuffix(data, ">")
	parts := strings.Split(data, "|")
	stat.Status = parts[0]

	var err error
	for _, s := range parts[1:] {
		name, val, ok := cutField(s)
		if !ok {
			continue
		}
		switch name {
		case "MPos":
			stat.MPos, err = parseCoords(val)
		case "WCO":
			stat.WCO, err = parseCoords(val)
		}
		if err != nil {
			return nil, err
		}
	}
	return &stat, nil
}

func cutField(s string) (name, val string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i == -1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
