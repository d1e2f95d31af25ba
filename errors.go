package eventgraph

import "errors"

var (
	// ErrNoAnalysis is returned when Build is given an empty document.
	ErrNoAnalysis = errors.New("eventgraph: no analysis to build from")

	// ErrInvalidGraph is returned when serialized input does not describe a
	// well-formed event graph. The wrapping error names the offending field.
	ErrInvalidGraph = errors.New("eventgraph: invalid serialized graph")

	// ErrUnknownEvent is returned when an event ID does not exist in the
	// graph.
	ErrUnknownEvent = errors.New("eventgraph: unknown event")

	// ErrDetached is returned when an operation needs the original parser
	// analysis but the graph was loaded from the lossy JSON form.
	ErrDetached = errors.New("eventgraph: graph detached from parser analysis")
)
