package eventgraph

import (
	"github.com/kotonoha/eventgraph/knp"
)

// Event is one clause-level event: a span of basic phrases anchored on a
// clause head, with its predicate-argument structure, linguistic features,
// and relations to other events.
//
// Span boundaries are phrase IDs into the owning sentence rather than
// pointers, so events survive serialization without dragging the parser
// analysis along.
type Event struct {
	ID   int
	SSID int

	StartTID int // first phrase of the span
	HeadTID  int // clause head
	EndTID   int // clause end

	PAS      *PAS
	Features Features

	// Outgoing links this event as modifier; Incoming as head.
	Outgoing []*Relation
	Incoming []*Relation

	// ParentID is the event this one's head depends on, -1 for roots.
	ParentID int

	Surf                    string
	SurfWithMark            string
	Mrphs                   string
	MrphsWithMark           string
	NormalizedSurf          string
	NormalizedSurfWithMark  string
	NormalizedMrphs         string
	NormalizedMrphsWithMark string

	// The without-exophora pair strips resolver-only fillers (著者,
	// 不特定:人) that never appear in the text.
	NormalizedMrphsWithoutExophora         string
	NormalizedMrphsWithMarkWithoutExophora string

	Reps                   string
	RepsWithMark           string
	NormalizedReps         string
	NormalizedRepsWithMark string
	ContentRepList         []string

	sentence *Sentence
	bps      *BasicPhraseList

	// Merged phrase lists are memoized per includeModifiers flag; building
	// them walks the adnominal/complement closure.
	merged map[bool]*BasicPhraseList
}

func newEvent(id int, sent *Sentence, start, head, end *knp.Phrase) *Event {
	return &Event{
		ID:       id,
		SSID:     sent.SSID,
		StartTID: start.ID,
		HeadTID:  head.ID,
		EndTID:   end.ID,
		PAS:      newPAS(head),
		ParentID: -1,
		sentence: sent,
		bps:      newBasicPhraseList(),
	}
}

// Sentence returns the sentence this event was segmented from.
func (e *Event) Sentence() *Sentence { return e.sentence }

// Head returns the clause-head phrase, or nil when the event is detached
// from its parser analysis.
func (e *Event) Head() *knp.Phrase {
	if e.sentence == nil || e.sentence.analysis == nil {
		return nil
	}
	return e.sentence.analysis.Phrase(e.HeadTID)
}

// End returns the clause-end phrase, or nil when detached.
func (e *Event) End() *knp.Phrase {
	if e.sentence == nil || e.sentence.analysis == nil {
		return nil
	}
	return e.sentence.analysis.Phrase(e.EndTID)
}

// Parent returns the parent event, or nil for roots and detached graphs.
func (e *Event) Parent() *Event {
	if e.ParentID < 0 || e.sentence == nil || e.sentence.graph == nil {
		return nil
	}
	ev, _ := e.sentence.graph.Event(e.ParentID)
	return ev
}

func (e *Event) push(bp *BasicPhrase) {
	e.bps.Push(bp)
	e.merged = nil
}

// basicPhraseList returns the event's phrases, optionally merged with the
// phrases of adnominal and complement modifier events. The merge works on
// clones, so repeated calls see identical state.
func (e *Event) basicPhraseList(includeModifiers bool) *BasicPhraseList {
	if l, ok := e.merged[includeModifiers]; ok {
		return l
	}

	var bps []*BasicPhrase
	for _, bp := range e.bps.All() {
		bps = append(bps, bp.clone())
	}
	list := newBasicPhraseList(bps...)

	if includeModifiers {
		seen := map[int]bool{e.ID: true}
		queue := append([]int(nil), list.adnominalEventIDs()...)
		queue = append(queue, list.complementEventIDs()...)
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			if seen[id] || e.sentence == nil || e.sentence.graph == nil {
				continue
			}
			seen[id] = true
			mod, err := e.sentence.graph.Event(id)
			if err != nil {
				continue
			}
			sub := mod.basicPhraseList(false)
			for _, bp := range sub.All() {
				if !list.Contains(bp) {
					list.Push(bp.clone())
				}
			}
			queue = append(queue, sub.adnominalEventIDs()...)
			queue = append(queue, sub.complementEventIDs()...)
		}
	}

	if e.merged == nil {
		e.merged = make(map[bool]*BasicPhraseList)
	}
	e.merged[includeModifiers] = list
	return list
}

// SurfWithModifiers returns the event surface with the text of its
// adnominal and complement modifier events merged in, in sentence order.
// Fails with ErrDetached on graphs loaded from the lossy JSON form, which
// no longer carry the phrases the merge works on.
func (e *Event) SurfWithModifiers() (string, error) {
	o := defaultStringOptions()
	o.space = false
	return e.renderWithModifiers(o)
}

// MrphsWithModifiers is SurfWithModifiers with space-separated morphemes.
func (e *Event) MrphsWithModifiers() (string, error) {
	return e.renderWithModifiers(defaultStringOptions())
}

// RepsWithModifiers is MrphsWithModifiers over representative strings.
func (e *Event) RepsWithModifiers() (string, error) {
	o := defaultStringOptions()
	o.typ = repString
	return e.renderWithModifiers(o)
}

func (e *Event) renderWithModifiers(o stringOptions) (string, error) {
	if e.sentence == nil || e.sentence.analysis == nil {
		return "", ErrDetached
	}
	return e.basicPhraseList(true).toString(o), nil
}

// finalize renders the event's string representations and its PAS. Called
// once per event after relation extraction, when every modifier annotation
// is in place.
func (e *Event) finalize() {
	e.PAS.finalize()
	e.Features = buildFeatures(e.analysis(), e.Head())
	if end := e.End(); end != nil && end.ClauseEndType() == "補文" {
		e.Features.Complement = true
	}

	bps := e.basicPhraseList(false)

	render := func(o stringOptions) string { return bps.toString(o) }
	base := defaultStringOptions()

	o := base
	o.space = false
	e.Surf = render(o)
	o.mark = true
	e.SurfWithMark = render(o)

	o = base
	e.Mrphs = render(o)
	o.mark = true
	e.MrphsWithMark = render(o)

	o = base
	o.space = false
	o.truncate = true
	e.NormalizedSurf = render(o)
	o.mark = true
	e.NormalizedSurfWithMark = render(o)

	o = base
	o.truncate = true
	e.NormalizedMrphs = render(o)
	o.mark = true
	e.NormalizedMrphsWithMark = render(o)
	o.includeExophora = false
	o.mark = false
	e.NormalizedMrphsWithoutExophora = render(o)
	o.mark = true
	e.NormalizedMrphsWithMarkWithoutExophora = render(o)

	o = base
	o.typ = repString
	e.Reps = render(o)
	o.mark = true
	e.RepsWithMark = render(o)
	o.mark = false
	o.truncate = true
	e.NormalizedReps = render(o)
	o.mark = true
	e.NormalizedRepsWithMark = render(o)

	e.ContentRepList = bps.contentReps()
}

func (e *Event) analysis() *knp.Sentence {
	if e.sentence == nil {
		return nil
	}
	return e.sentence.analysis
}
