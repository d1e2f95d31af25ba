// Package eventgraph converts the per-sentence output of the KNP dependency
// and case-structure parser into a graph of events: clause-level
// predicate-argument structures annotated with tense, negation, and modality,
// connected by typed relations such as cause, condition, and adnominal
// modification.
//
// Build is the entry point. The returned graph is immutable: all further
// operations are read-only and safe for concurrent use.
package eventgraph

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kotonoha/eventgraph/knp"
)

// EventGraph is the built aggregate: sentences, their events, and the
// relations between events, in document order.
type EventGraph struct {
	sentences []*Sentence
	events    []*Event
	relations []*Relation
	eventByID map[int]*Event

	// detached marks graphs loaded from the lossy JSON form, which carry no
	// parser analysis.
	detached bool
}

// Option configures a Build call.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for build progress. Defaults to
// slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) *config {
	c := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Build constructs an event graph from parsed sentences. The sentences are
// taken in document order; their serial IDs (SSIDs) are their positions in
// the slice.
func Build(results []*knp.Sentence, opts ...Option) (*EventGraph, error) {
	c := newConfig(opts)
	return newBuilder(c.logger).build(results)
}

// BuildFromReader parses KNP-format analysis output and builds the graph.
func BuildFromReader(r io.Reader, opts ...Option) (*EventGraph, error) {
	results, err := knp.ParseResult(r)
	if err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	return Build(results, opts...)
}

// BuildFromFile reads a KNP result file and builds the graph.
func BuildFromFile(path string, opts ...Option) (*EventGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open analysis: %w", err)
	}
	defer f.Close()
	return BuildFromReader(f, opts...)
}

// Sentences returns the document's sentences in order.
func (g *EventGraph) Sentences() []*Sentence {
	return append([]*Sentence(nil), g.sentences...)
}

// Events returns all events in document order.
func (g *EventGraph) Events() []*Event {
	return append([]*Event(nil), g.events...)
}

// Relations returns all relations in extraction order.
func (g *EventGraph) Relations() []*Relation {
	return append([]*Relation(nil), g.relations...)
}

// Event looks up an event by ID.
func (g *EventGraph) Event(id int) (*Event, error) {
	e, ok := g.eventByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownEvent, id)
	}
	return e, nil
}

// Detached reports whether the graph was loaded from the lossy JSON form.
// Detached graphs cannot recompute modifier-merged surfaces.
func (g *EventGraph) Detached() bool { return g.detached }
