// Package viz renders an event graph as Graphviz DOT for an external
// rendering backend. Events become boxed nodes grouped per sentence;
// relations become labelled directed edges.
package viz

import (
	"fmt"
	"io"

	"github.com/emicklei/dot"

	"github.com/kotonoha/eventgraph"
)

// Option configures the export.
type Option func(*config)

type config struct {
	detail  bool
	rankDir string
}

// WithDetail adds tense, negation, and modality to node labels.
func WithDetail() Option {
	return func(c *config) { c.detail = true }
}

// WithRankDir sets the graph layout direction ("TB", "LR", ...).
func WithRankDir(dir string) Option {
	return func(c *config) { c.rankDir = dir }
}

// Graph converts an event graph to a DOT graph: one node per event, one
// edge per relation.
func Graph(g *eventgraph.EventGraph, opts ...Option) *dot.Graph {
	c := &config{rankDir: "TB"}
	for _, opt := range opts {
		opt(c)
	}

	dg := dot.NewGraph(dot.Directed)
	dg.Attr("rankdir", c.rankDir)

	nodes := make(map[int]dot.Node)
	for _, sent := range g.Sentences() {
		sub := dg.Subgraph(fmt.Sprintf("cluster_s%d", sent.SSID))
		sub.Attr("label", fmt.Sprintf("sentence %d", sent.SSID))
		sub.Attr("style", "dotted")
		for _, e := range sent.Events() {
			n := sub.Node(fmt.Sprintf("evt%d", e.ID))
			n.Attr("shape", "box")
			n.Attr("label", nodeLabel(e, c.detail))
			nodes[e.ID] = n
		}
	}

	for _, r := range g.Relations() {
		from, ok := nodes[r.Modifier.ID]
		if !ok {
			continue
		}
		to, ok := nodes[r.Head.ID]
		if !ok {
			continue
		}
		edge := dg.Edge(from, to)
		edge.Attr("label", edgeLabel(r))
		if !r.Reliable {
			edge.Attr("style", "dashed")
		}
	}
	return dg
}

// WriteDOT writes the DOT rendering of the graph.
func WriteDOT(w io.Writer, g *eventgraph.EventGraph, opts ...Option) error {
	Graph(g, opts...).Write(w)
	return nil
}

func nodeLabel(e *eventgraph.Event, detail bool) string {
	label := fmt.Sprintf("#%d %s", e.ID, e.SurfWithMark)
	if !detail {
		return label
	}
	label += fmt.Sprintf("\ntense: %s", e.Features.Tense)
	if e.Features.Negation {
		label += "\nnegated"
	}
	if e.Features.Modality != "" {
		label += fmt.Sprintf("\nmodality: %s", e.Features.Modality)
	}
	return label
}

func edgeLabel(r *eventgraph.Relation) string {
	if r.Surface != "" {
		return fmt.Sprintf("%s (%s)", r.Label, r.Surface)
	}
	return string(r.Label)
}
