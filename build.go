package eventgraph

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/kotonoha/eventgraph/knp"
)

// builder carries the state of one Build call. Event IDs come from a
// builder-local counter, so two builds over the same input always number
// events identically.
type builder struct {
	graph *EventGraph
	log   *slog.Logger

	nextEventID int

	// Modifier annotations recorded during relation extraction, applied to
	// every basic phrase created afterwards.
	adnominal  map[phraseRef][]int
	complement map[phraseRef][]int

	seenRelations map[relationKey]bool
}

type phraseRef struct {
	ssid, tid int
}

func newBuilder(log *slog.Logger) *builder {
	return &builder{
		graph:         &EventGraph{eventByID: make(map[int]*Event)},
		log:           log,
		adnominal:     make(map[phraseRef][]int),
		complement:    make(map[phraseRef][]int),
		seenRelations: make(map[relationKey]bool),
	}
}

func (b *builder) build(results []*knp.Sentence) (*EventGraph, error) {
	if len(results) == 0 {
		return nil, ErrNoAnalysis
	}

	b.log.Debug("extract sentences", "count", len(results))
	for ssid, analysis := range results {
		sent := newSentence(b.graph, ssid, analysis)
		b.graph.sentences = append(b.graph.sentences, sent)
	}

	b.log.Debug("extract events")
	for _, sent := range b.graph.sentences {
		b.segmentEvents(sent)
	}

	b.log.Debug("extract relations")
	for _, sent := range b.graph.sentences {
		for _, e := range sent.events {
			b.extractRelations(e)
		}
	}

	b.log.Debug("assign basic phrases")
	for _, e := range b.graph.events {
		b.assignBasicPhrases(e)
	}

	for _, e := range b.graph.events {
		e.finalize()
	}
	for _, sent := range b.graph.sentences {
		sent.finalize()
	}
	b.log.Debug("built event graph",
		"sentences", len(b.graph.sentences),
		"events", len(b.graph.events),
		"relations", len(b.graph.relations))
	return b.graph, nil
}

// ---------------------------------------------------------------------------
// Segmentation

// segmentEvents scans the sentence's phrases in order. A clause-head feature
// marks the pending head; a clause-end feature closes the span. Spans that
// close without a head are dropped.
func (b *builder) segmentEvents(sent *Sentence) {
	start := 0
	var head *knp.Phrase
	for i := range sent.analysis.Phrases {
		p := &sent.analysis.Phrases[i]
		if head == nil && p.IsClauseHead() {
			head = p
		}
		if !p.IsClauseEnd() {
			continue
		}
		if head == nil {
			b.log.Debug("span closed without a clause head",
				"ssid", sent.SSID, "start", start, "end", p.ID)
		} else {
			e := newEvent(b.nextEventID, sent, sent.analysis.Phrase(start), head, p)
			b.nextEventID++
			sent.events = append(sent.events, e)
			b.graph.events = append(b.graph.events, e)
			b.graph.eventByID[e.ID] = e
		}
		start = p.ID + 1
		head = nil
	}
}

// eventAt returns the event of the given sentence whose span contains tid.
func (b *builder) eventAt(ssid, tid int) *Event {
	if ssid < 0 || ssid >= len(b.graph.sentences) {
		return nil
	}
	for _, e := range b.graph.sentences[ssid].events {
		if e.StartTID <= tid && tid <= e.EndTID {
			return e
		}
	}
	return nil
}

// eventHeadedAt returns the event of the given sentence headed at tid.
func (b *builder) eventHeadedAt(ssid, tid int) *Event {
	if ssid < 0 || ssid >= len(b.graph.sentences) {
		return nil
	}
	for _, e := range b.graph.sentences[ssid].events {
		if e.HeadTID == tid || e.EndTID == tid {
			return e
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Relation extraction

// extractRelations derives the outgoing relations of one event. The label
// sources are tried in a fixed precedence order; the first that yields a
// relation wins, except that clause-function, parallel, and dependency labels
// only apply when no adnominal/complement/discourse relation fired.
func (b *builder) extractRelations(e *Event) {
	end := e.End()
	sent := e.sentence.analysis

	parent := b.parentEvent(e)
	if parent != nil {
		e.ParentID = parent.ID
	}

	switch end.ClauseEndType() {
	case "連体修飾":
		if parent := sent.Phrase(end.ParentID); parent != nil {
			if head := b.eventAt(e.SSID, parent.ID); head != nil && head != e {
				b.addRelation(e, head, LabelAdnominal, "", parent.ID)
				ref := phraseRef{ssid: e.SSID, tid: parent.ID}
				b.adnominal[ref] = append(b.adnominal[ref], e.ID)
			}
		}
		return
	case "補文":
		if parent := sent.Phrase(end.ParentID); parent != nil {
			if head := b.eventAt(e.SSID, parent.ID); head != nil && head != e {
				b.addRelation(e, head, LabelComplement, "", parent.ID)
				ref := phraseRef{ssid: e.SSID, tid: parent.ID}
				b.complement[ref] = append(b.complement[ref], e.ID)
			}
		}
		return
	}

	if b.extractDiscourse(e, end) {
		return
	}

	if fns := end.ClauseFunctions(); len(fns) > 0 && parent != nil {
		for _, fn := range fns {
			name, marker, _ := strings.Cut(fn, ":")
			label, ok := clauseFunctionLabels[name]
			if !ok {
				if l, found := connectiveLabel(marker); found {
					label = l
				} else {
					label = Label(name)
				}
			}
			b.addRelation(e, parent, label, marker, -1)
		}
		return
	}

	if parent == nil {
		return
	}
	if end.DepType == knp.DepParallel {
		b.addRelation(e, parent, LabelParallel, "", -1)
		return
	}
	b.addRelation(e, parent, LabelDependency, "", -1)
}

// extractDiscourse adds discourse relations annotated on the clause-end
// phrase. Entries look like "<sdist>/<tid>/<sid>:<sense>" separated by ";",
// where sdist is the head sentence's offset from this one. Sentences can
// point backward, so sdist may be negative.
func (b *builder) extractDiscourse(e *Event, end *knp.Phrase) bool {
	raw := end.Features.Get("談話関係")
	if raw == "" {
		return false
	}
	added := false
	for _, entry := range strings.Split(raw, ";") {
		ref, sense, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		parts := strings.Split(ref, "/")
		if len(parts) != 3 {
			continue
		}
		sdist, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		tid, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		head := b.eventHeadedAt(e.SSID+sdist, tid)
		if head == nil || head == e {
			continue
		}
		b.addRelation(e, head, discourseLabel(sense), "", -1)
		added = true
	}
	return added
}

// parentEvent walks the dependency chain upward from the event head to the
// first phrase belonging to a later event.
func (b *builder) parentEvent(e *Event) *Event {
	sent := e.sentence.analysis
	cur := e.Head()
	for cur != nil && cur.ParentID >= 0 {
		cur = sent.Phrase(cur.ParentID)
		if cur == nil {
			break
		}
		if head := b.eventAt(e.SSID, cur.ID); head != nil && head != e {
			return head
		}
	}
	return nil
}

func (b *builder) addRelation(modifier, head *Event, label Label, surface string, headTID int) {
	r := newRelation(modifier, head, label, surface, headTID)
	if b.seenRelations[r.key()] {
		return
	}
	b.seenRelations[r.key()] = true
	b.graph.relations = append(b.graph.relations, r)
	modifier.Outgoing = append(modifier.Outgoing, r)
	head.Incoming = append(head.Incoming, r)
}

// ---------------------------------------------------------------------------
// Basic-phrase assignment

// newBP wraps a phrase and applies the modifier annotations recorded during
// relation extraction.
func (b *builder) newBP(p *knp.Phrase, ssid int) *BasicPhrase {
	bp := newBasicPhrase(p, ssid, p.BunsetsuID)
	ref := phraseRef{ssid: ssid, tid: p.ID}
	bp.AdnominalEventIDs = append([]int(nil), b.adnominal[ref]...)
	bp.ComplementEventIDs = append([]int(nil), b.complement[ref]...)
	return bp
}

// assignBasicPhrases populates the event's PAS components and its own phrase
// list: arguments from the case analysis (overt, zero-anaphoric, exophoric),
// then the predicate span itself, each with its dependent children.
func (b *builder) assignBasicPhrases(e *Event) {
	for _, c := range e.PAS.Cases() {
		b.assignArgument(e, c, e.PAS.Arguments[c][0])
	}
	b.assignPredicate(e)
}

func (b *builder) assignArgument(e *Event, c Case, arg *Argument) {
	filler := arg.filler
	argSSID := e.SSID - filler.SentenceDist

	push := func(bp *BasicPhrase) {
		arg.push(bp)
		e.push(bp)
	}

	switch filler.Flag {
	case knp.FlagExophora:
		push(newExophoraBP(filler.Surface, argSSID, -1, c))
		return
	case knp.FlagZero:
		p := b.phraseAt(argSSID, filler.PhraseID)
		if p == nil {
			return
		}
		bp := b.newBP(p, argSSID)
		bp.IsOmitted = true
		bp.Case = c
		bp.ArgIndex = 0
		push(bp)
		return
	}

	p := b.phraseAt(argSSID, filler.PhraseID)
	if p == nil {
		return
	}
	// A filler inside the predicate span is the predicate itself, not an
	// argument realization.
	if argSSID == e.SSID && e.HeadTID <= p.ID && p.ID <= e.EndTID {
		return
	}

	sent := b.analysisAt(argSSID)

	bp := b.newBP(p, argSSID)
	bp.Case = c
	bp.ArgIndex = 0
	bps := []*BasicPhrase{bp}

	// Compound case markers span onto the following phrase.
	for next := sent.Phrase(p.ID + 1); next != nil && next.Features.Has("複合辞"); next = sent.Phrase(next.ID + 1) {
		cont := b.newBP(next, argSSID)
		cont.Case = c
		bps = append(bps, cont)
	}

	for _, child := range b.collectChildren(sent, p) {
		cbp := b.newBP(child, argSSID)
		cbp.Case = c
		cbp.IsChild = true
		bps = append(bps, cbp)
	}

	// An argument whose filler heads or closes an earlier clause is a
	// modifier clause. It stays on the PAS, but the event's own surface
	// excludes it: the clause text reaches the event through the merged
	// renderings.
	own := true
	for _, cand := range bps {
		if !cand.IsChild && !b.showsInEvent(e, sent, cand) {
			own = false
			break
		}
	}
	for _, cand := range bps {
		arg.push(cand)
		if own {
			e.push(cand)
		}
	}
}

// showsInEvent reports whether an argument phrase may appear in the event's
// own phrase list. Phrases that head or close a clause before this event's
// head, and phrases past its end, belong to other events.
func (b *builder) showsInEvent(e *Event, sent *knp.Sentence, bp *BasicPhrase) bool {
	if bp.IsOmitted || bp.SSID != e.SSID {
		return true
	}
	if bp.TID < e.HeadTID && (bp.isEventHead(sent) || bp.isEventEnd(sent)) {
		return false
	}
	return bp.TID <= e.EndTID
}

func (b *builder) assignPredicate(e *Event) {
	sent := e.sentence.analysis
	pred := e.PAS.Predicate
	push := func(bp *BasicPhrase) {
		pred.push(bp)
		e.push(bp)
	}

	for tid := e.HeadTID; tid <= e.EndTID; tid++ {
		p := sent.Phrase(tid)
		if p == nil {
			continue
		}
		push(b.newBP(p, e.SSID))
	}
	for _, child := range b.collectChildren(sent, e.Head()) {
		// Argument fillers already own their subtrees.
		if b.isArgumentPhrase(e, child.ID) {
			continue
		}
		cbp := b.newBP(child, e.SSID)
		cbp.IsChild = true
		push(cbp)
	}
}

func (b *builder) isArgumentPhrase(e *Event, tid int) bool {
	for _, args := range e.PAS.Arguments {
		for _, a := range args {
			if a.filler == nil || a.filler.Flag == knp.FlagExophora {
				continue
			}
			if e.SSID-a.filler.SentenceDist == e.SSID && a.filler.PhraseID == tid {
				return true
			}
		}
	}
	return false
}

// collectChildren gathers the dependents of a phrase breadth-first, stopping
// at clause heads and clause ends so a modifier clause stays with its own
// event.
func (b *builder) collectChildren(sent *knp.Sentence, p *knp.Phrase) []*knp.Phrase {
	var out []*knp.Phrase
	queue := sent.Children(p.ID)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c.IsClauseHead() || c.IsClauseEnd() {
			continue
		}
		out = append(out, c)
		queue = append(queue, sent.Children(c.ID)...)
	}
	return out
}

func (b *builder) phraseAt(ssid, tid int) *knp.Phrase {
	sent := b.analysisAt(ssid)
	if sent == nil {
		return nil
	}
	return sent.Phrase(tid)
}

func (b *builder) analysisAt(ssid int) *knp.Sentence {
	if ssid < 0 || ssid >= len(b.graph.sentences) {
		return nil
	}
	return b.graph.sentences[ssid].analysis
}
