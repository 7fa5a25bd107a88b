package force

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MaxTicks bounds a headless run. The cooling schedule reaches the settle
// threshold after roughly 300 ticks; the margin covers reheats.
const MaxTicks = 1000

// Position is one node's settled coordinates.
type Position struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Layout is the serializable result of a headless simulation run.
type Layout struct {
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Seed      int64      `json:"seed"`
	Ticks     int        `json:"ticks"`
	Positions []Position `json:"positions"`
}

// Position returns the coordinates for a node id.
func (l *Layout) Position(id string) (Position, bool) {
	for _, p := range l.Positions {
		if p.ID == id {
			return p, true
		}
	}
	return Position{}, false
}

// Run ticks the simulation until it settles (or MaxTicks elapses) and
// returns the snapshot. Used by the headless layout pipeline; the
// interactive view drives ticks itself.
func (s *Simulation) Run() Layout {
	ticks := 0
	for !s.Settled() && ticks < MaxTicks {
		s.Tick()
		ticks++
	}
	l := s.Snapshot()
	l.Ticks = ticks
	return l
}

// Snapshot captures the current node positions.
func (s *Simulation) Snapshot() Layout {
	l := Layout{
		Width:     s.opts.Width,
		Height:    s.opts.Height,
		Seed:      s.opts.Seed,
		Positions: make([]Position, len(s.bodies)),
	}
	for i, b := range s.bodies {
		l.Positions[i] = Position{ID: b.ID, X: b.X, Y: b.Y}
	}
	return l
}

// MarshalLayout converts a layout to indented JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteLayout(l, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteLayout writes a layout as JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteLayoutFile writes a layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(l, f)
}

// ReadLayout decodes a JSON layout from r.
func ReadLayout(r io.Reader) (Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("decode: %w", err)
	}
	return l, nil
}

// ReadLayoutFile reads a JSON file and returns the decoded layout.
func ReadLayoutFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}
