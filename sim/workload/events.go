package workload

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ride-sim/ride-sim/sim"
	"github.com/ride-sim/ride-sim/sim/geo"
)

// MaxCoordinate bounds the absolute value of a parsed row or column so that
// grid distances, and the travel times derived from them, fit in an int64.
const MaxCoordinate = 1 << 30

// Line tokens for the two request kinds an events file may contain.
const (
	tokenDriverRequest = "DriverRequest"
	tokenRiderRequest  = "RiderRequest"
)

// LoadEvents reads an events file and returns its initial events in file order.
func LoadEvents(path string) ([]sim.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening events file: %w", err)
	}
	defer file.Close()

	events, err := ParseEvents(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	logrus.Infof("Loaded %d events from %s", len(events), path)
	return events, nil
}

// ParseEvents reads the line-oriented events format:
//
//	<ts> DriverRequest <id> <row,col> <speed>
//	<ts> RiderRequest <id> <row,col> <row,col> <patience>
//
// Blank lines and lines starting with '#' are skipped. A driver ID that
// appears again refers to the same driver; rider IDs must be unique.
func ParseEvents(r io.Reader) ([]sim.Event, error) {
	p := &eventParser{
		drivers: make(map[string]*sim.Driver),
		riders:  make(map[string]bool),
	}
	var events []sim.Event
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := p.parseLine(strings.Fields(line))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	return events, nil
}

type eventParser struct {
	drivers map[string]*sim.Driver
	riders  map[string]bool
}

func (p *eventParser) parseLine(tokens []string) (sim.Event, error) {
	if len(tokens) < 2 {
		return nil, fmt.Errorf("expected '<timestamp> <event type> ...', got %d tokens", len(tokens))
	}
	ts, err := parseNonNegative("timestamp", tokens[0])
	if err != nil {
		return nil, err
	}
	switch tokens[1] {
	case tokenDriverRequest:
		return p.parseDriverRequest(ts, tokens)
	case tokenRiderRequest:
		return p.parseRiderRequest(ts, tokens)
	default:
		return nil, fmt.Errorf("unknown event type %q; valid: %s, %s", tokens[1], tokenDriverRequest, tokenRiderRequest)
	}
}

func (p *eventParser) parseDriverRequest(ts int64, tokens []string) (sim.Event, error) {
	if len(tokens) != 5 {
		return nil, fmt.Errorf("%s takes <id> <row,col> <speed>, got %d fields", tokenDriverRequest, len(tokens)-2)
	}
	id := tokens[2]
	loc, err := parseLocation(tokens[3])
	if err != nil {
		return nil, err
	}
	speed, err := strconv.Atoi(tokens[4])
	if err != nil {
		return nil, fmt.Errorf("invalid speed %q: %w", tokens[4], err)
	}
	if speed <= 0 {
		return nil, fmt.Errorf("speed must be positive, got %d", speed)
	}

	driver, seen := p.drivers[id]
	if !seen {
		driver = sim.NewDriver(id, loc, speed)
		p.drivers[id] = driver
	} else if driver.Location != loc || driver.Speed() != speed {
		logrus.Warnf("driver %s requested again as (%s, speed %d); keeping (%s, speed %d)",
			id, loc, speed, driver.Location, driver.Speed())
	}
	return sim.NewDriverRequestEvent(ts, driver), nil
}

func (p *eventParser) parseRiderRequest(ts int64, tokens []string) (sim.Event, error) {
	if len(tokens) != 6 {
		return nil, fmt.Errorf("%s takes <id> <row,col> <row,col> <patience>, got %d fields", tokenRiderRequest, len(tokens)-2)
	}
	id := tokens[2]
	if p.riders[id] {
		return nil, fmt.Errorf("duplicate rider id %q", id)
	}
	origin, err := parseLocation(tokens[3])
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	destination, err := parseLocation(tokens[4])
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	patience, err := parseNonNegative("patience", tokens[5])
	if err != nil {
		return nil, err
	}
	if ts > math.MaxInt64-patience {
		return nil, fmt.Errorf("timestamp %d plus patience %d overflows the clock", ts, patience)
	}
	p.riders[id] = true
	return sim.NewRiderRequestEvent(ts, sim.NewRider(id, patience, origin, destination)), nil
}

func parseLocation(s string) (geo.Location, error) {
	loc, err := geo.ParseLocation(s)
	if err != nil {
		return geo.Location{}, err
	}
	if !inRange(loc.Row) || !inRange(loc.Column) {
		return geo.Location{}, fmt.Errorf("location %q out of range; coordinates must be within +/-%d", s, MaxCoordinate)
	}
	return loc, nil
}

func inRange(v int) bool {
	return v >= -MaxCoordinate && v <= MaxCoordinate
}

func parseNonNegative(name, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must be non-negative, got %d", name, v)
	}
	return v, nil
}

// WriteEvents serializes request events in the format ParseEvents reads.
// Drivers are written at their current location, so call it before running.
func WriteEvents(w io.Writer, events []sim.Event) error {
	bw := bufio.NewWriter(w)
	for i, ev := range events {
		var err error
		switch e := ev.(type) {
		case *sim.DriverRequestEvent:
			_, err = fmt.Fprintf(bw, "%d %s %s %s %d\n",
				e.Timestamp(), tokenDriverRequest, e.Driver.ID, e.Driver.Location, e.Driver.Speed())
		case *sim.RiderRequestEvent:
			_, err = fmt.Fprintf(bw, "%d %s %s %s %s %d\n",
				e.Timestamp(), tokenRiderRequest, e.Rider.ID, e.Rider.Origin, e.Rider.Destination, e.Rider.Patience)
		default:
			return fmt.Errorf("event %d: cannot serialize %s event", i, ev.Kind())
		}
		if err != nil {
			return fmt.Errorf("writing event %d: %w", i, err)
		}
	}
	return bw.Flush()
}
