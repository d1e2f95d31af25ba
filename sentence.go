package eventgraph

import (
	"strings"

	"github.com/kotonoha/eventgraph/knp"
)

// Sentence is one parsed sentence of the document, holding the events
// segmented from it.
type Sentence struct {
	SID  string // the parser's sentence ID, taken from the result comment
	SSID int    // serial position in the document, starting at 0

	Surf  string
	Mrphs string
	Reps  string

	graph    *EventGraph
	analysis *knp.Sentence
	events   []*Event
}

func newSentence(graph *EventGraph, ssid int, analysis *knp.Sentence) *Sentence {
	return &Sentence{
		SID:      analysis.SID,
		SSID:     ssid,
		graph:    graph,
		analysis: analysis,
	}
}

// Analysis returns the parser analysis behind this sentence, or nil when the
// graph was loaded from the lossy JSON form.
func (s *Sentence) Analysis() *knp.Sentence { return s.analysis }

// Events returns this sentence's events in segmentation order.
func (s *Sentence) Events() []*Event {
	return append([]*Event(nil), s.events...)
}

func (s *Sentence) finalize() {
	if s.analysis == nil {
		return
	}
	ms := s.analysis.Morphemes()
	s.Surf = strings.Join(surfaceList(ms), "")
	s.Mrphs = strings.Join(surfaceList(ms), " ")
	s.Reps = strings.Join(repList(ms), " ")
}
