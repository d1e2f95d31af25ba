package eventgraph

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/kotonoha/eventgraph/knp"
)

// The binary form is full fidelity: it carries the parser analyses, and the
// graph is rebuilt from them on load. Building is deterministic, so the
// loaded graph is identical to the saved one, attached analysis included.
// The format is gob and makes no cross-version promise.

const gobFormatVersion = 1

type gobGraph struct {
	Version  int
	Analyses []*knp.Sentence
}

// SaveBinary writes the graph in the full-fidelity binary form. Detached
// graphs cannot be saved this way.
func (g *EventGraph) SaveBinary(w io.Writer) error {
	if g.detached {
		return fmt.Errorf("save binary: %w", ErrDetached)
	}
	doc := gobGraph{Version: gobFormatVersion}
	for _, s := range g.sentences {
		doc.Analyses = append(doc.Analyses, s.analysis)
	}
	if err := gob.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// SaveBinaryFile writes the binary form to a file.
func (g *EventGraph) SaveBinaryFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := g.SaveBinary(f); err != nil {
		return err
	}
	return f.Close()
}

// LoadBinary reads a graph from the full-fidelity binary form.
func LoadBinary(r io.Reader, opts ...Option) (*EventGraph, error) {
	var doc gobGraph
	if err := gob.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGraph, err)
	}
	if doc.Version != gobFormatVersion {
		return nil, fmt.Errorf("%w: format version %d, want %d", ErrInvalidGraph, doc.Version, gobFormatVersion)
	}
	if len(doc.Analyses) == 0 {
		return nil, fmt.Errorf("%w: no analyses", ErrInvalidGraph)
	}
	return Build(doc.Analyses, opts...)
}

// LoadBinaryFile reads the binary form from a file.
func LoadBinaryFile(path string, opts ...Option) (*EventGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return LoadBinary(f, opts...)
}
