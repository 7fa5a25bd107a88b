package relation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mlindqvist/arkigraf/pkg/errors"
)

// =============================================================================
// Record Loading
// =============================================================================

// ReadRecords decodes a JSON array of relation records from r.
//
// Decode failures are DATA_LOAD errors: the caller must not build a graph or
// start the simulation, only surface the failure to the user.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoad, err, "decode records")
	}
	return records, nil
}

// ReadRecordsFile reads a JSON file of relation records.
func ReadRecordsFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataLoad, err, "open %s", path)
	}
	defer f.Close()
	return ReadRecords(f)
}

// =============================================================================
// Graph Serialization
// =============================================================================

// MarshalGraph converts a graph to indented JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as JSON to w.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph from r and validates its invariants:
// unique node ids, edge endpoints that reference existing nodes, and one
// neighbor label per incident edge. The degree bookkeeping feeds the link
// force's strength normalization, so a graph that undercounts it would
// divide by zero inside the simulation.
func ReadGraph(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	g.reindex()

	if len(g.byID) != len(g.Nodes) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate node ids")
	}
	incident := make(map[string]int, len(g.Nodes))
	for i, e := range g.Edges {
		if g.byID[e.Source] == nil || g.byID[e.Target] == nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"edge %d: endpoint %s→%s references unknown node", i, e.Source, e.Target)
		}
		incident[e.Source]++
		incident[e.Target]++
	}
	for _, n := range g.Nodes {
		if n.Degree() != incident[n.ID] {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"node %s: %d neighbor labels for %d incident edges", n.ID, n.Degree(), incident[n.ID])
		}
	}
	return &g, nil
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
