package eventgraph

import (
	"sort"
	"strings"

	"github.com/kotonoha/eventgraph/knp"
)

// BasicPhrase wraps one parser phrase with the derived fields the event
// pipeline needs: its document position, its case assignment, and whether it
// entered the event as an elided (omitted) argument.
//
// A BasicPhrase with a nil parser phrase represents an exophoric argument:
// a filler that exists only as the resolver's surface string (著者, 不特定:人).
type BasicPhrase struct {
	phrase   *knp.Phrase
	Exophora string

	SSID int // serial sentence ID
	BID  int // bunsetsu ID within the sentence
	TID  int // phrase ID within the sentence; -1 for exophora

	IsChild    bool
	IsOmitted  bool
	IsModifier bool

	Case     Case // empty when the phrase carries no case information
	ArgIndex int

	// Event IDs of clauses that modify this phrase. Filled in during
	// relation extraction, before events are finalized.
	AdnominalEventIDs  []int
	ComplementEventIDs []int

	possessive bool
}

// newBasicPhrase wraps a parser phrase.
func newBasicPhrase(p *knp.Phrase, ssid, bid int) *BasicPhrase {
	return &BasicPhrase{
		phrase:     p,
		SSID:       ssid,
		BID:        bid,
		TID:        p.ID,
		ArgIndex:   -1,
		IsModifier: p.Features.Has("修飾"),
		possessive: p.Features.Get("係") == "ノ格",
	}
}

// newExophoraBP wraps an exophoric filler that has no phrase in the text.
func newExophoraBP(surface string, ssid, bid int, c Case) *BasicPhrase {
	return &BasicPhrase{
		Exophora:  surface,
		SSID:      ssid,
		BID:       bid,
		TID:       -1,
		IsOmitted: true,
		Case:      c,
		ArgIndex:  0,
	}
}

// Phrase returns the underlying parser phrase, or nil for exophora.
func (bp *BasicPhrase) Phrase() *knp.Phrase { return bp.phrase }

// Surf returns the raw surface form of this basic phrase.
func (bp *BasicPhrase) Surf() string {
	content, _, _ := bp.tokens(surfaceString, normNone, false, false)
	return strings.Join(content, "")
}

// clone returns a shallow copy. Read-time merges work on clones so the
// phrases owned by an event are never mutated after finalization.
func (bp *BasicPhrase) clone() *BasicPhrase {
	cp := *bp
	return &cp
}

// position identifies a basic phrase. Omitted phrases additionally carry
// their case: the same antecedent can fill two different slots.
type position struct {
	ssid, bid, tid int
	omittedCase    Case
}

func (bp *BasicPhrase) position() position {
	pos := position{ssid: bp.SSID, bid: bp.BID, tid: bp.TID}
	if bp.IsOmitted {
		pos.omittedCase = bp.Case
	}
	return pos
}

// sortKey orders basic phrases for display: omitted arguments first, in
// canonical case order, then document order.
func (bp *BasicPhrase) sortKey() [4]int {
	order := 99
	if bp.IsOmitted {
		order = caseOrder(bp.Case)
	}
	return [4]int{order, bp.SSID, bp.BID, bp.TID}
}

func lessKey(a, b [4]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// isEventHead reports whether this phrase heads a clause, directly or
// through a parallel sibling.
func (bp *BasicPhrase) isEventHead(sent *knp.Sentence) bool {
	if bp.phrase == nil {
		return false
	}
	if bp.phrase.IsClauseHead() {
		return true
	}
	for _, p := range parallelPhrases(sent, bp.phrase) {
		if p.IsClauseHead() {
			return true
		}
	}
	return false
}

// isEventEnd reports whether this phrase closes a clause, directly or
// through a parallel sibling.
func (bp *BasicPhrase) isEventEnd(sent *knp.Sentence) bool {
	if bp.phrase == nil {
		return false
	}
	if bp.phrase.IsClauseEnd() {
		return true
	}
	for _, p := range parallelPhrases(sent, bp.phrase) {
		if p.IsClauseEnd() {
			return true
		}
	}
	return false
}

// parallelPhrases returns phrases linked to p by parallel dependency.
func parallelPhrases(sent *knp.Sentence, p *knp.Phrase) []*knp.Phrase {
	var out []*knp.Phrase
	if sent == nil {
		return out
	}
	cur := p
	for cur != nil && cur.DepType == knp.DepParallel {
		next := sent.Phrase(cur.ParentID)
		if next == nil {
			break
		}
		out = append(out, next)
		cur = next
	}
	return out
}

// BasicPhraseList is an ordered collection of basic phrases. It keeps
// itself sorted by display order on every push.
type BasicPhraseList struct {
	bps []*BasicPhrase
}

func newBasicPhraseList(bps ...*BasicPhrase) *BasicPhraseList {
	l := &BasicPhraseList{bps: append([]*BasicPhrase(nil), bps...)}
	l.sort()
	return l
}

// Len returns the number of basic phrases.
func (l *BasicPhraseList) Len() int { return len(l.bps) }

// All returns the basic phrases in display order.
func (l *BasicPhraseList) All() []*BasicPhrase {
	return append([]*BasicPhrase(nil), l.bps...)
}

// Push inserts a basic phrase, keeping the list ordered.
func (l *BasicPhraseList) Push(bp *BasicPhrase) {
	l.bps = append(l.bps, bp)
	l.sort()
}

func (l *BasicPhraseList) sort() {
	sort.SliceStable(l.bps, func(i, j int) bool {
		return lessKey(l.bps[i].sortKey(), l.bps[j].sortKey())
	})
}

// Contains reports whether a basic phrase at the same position is present.
func (l *BasicPhraseList) Contains(bp *BasicPhrase) bool {
	want := bp.position()
	for _, b := range l.bps {
		if b.position() == want {
			return true
		}
	}
	return false
}

// head returns the sublist of non-child basic phrases.
func (l *BasicPhraseList) head() *BasicPhraseList {
	var bps []*BasicPhrase
	for _, bp := range l.bps {
		if !bp.IsChild {
			bps = append(bps, bp)
		}
	}
	return newBasicPhraseList(bps...)
}

// child returns the sublist of child basic phrases.
func (l *BasicPhraseList) child() *BasicPhraseList {
	var bps []*BasicPhrase
	for _, bp := range l.bps {
		if bp.IsChild {
			bps = append(bps, bp)
		}
	}
	return newBasicPhraseList(bps...)
}

// bunsetsuGroups splits the list into per-bunsetsu runs, preserving display
// order. Phrase IDs are ignored when grouping: an omitted argument and its
// compound-marker continuation share a group.
type bunsetsuKey struct {
	order, ssid, bid int
}

func (l *BasicPhraseList) bunsetsuGroups() []*BasicPhraseList {
	grouped := make(map[bunsetsuKey][]*BasicPhrase)
	var keys []bunsetsuKey
	for _, bp := range l.bps {
		k := bp.sortKey()
		key := bunsetsuKey{order: k[0], ssid: k[1], bid: k[2]}
		if _, ok := grouped[key]; !ok {
			keys = append(keys, key)
		}
		grouped[key] = append(grouped[key], bp)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.order != b.order {
			return a.order < b.order
		}
		if a.ssid != b.ssid {
			return a.ssid < b.ssid
		}
		return a.bid < b.bid
	})
	groups := make([]*BasicPhraseList, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, newBasicPhraseList(grouped[key]...))
	}
	return groups
}

// phrases returns the distinct parser phrases behind this list in sentence
// order.
func (l *BasicPhraseList) phrases() []*knp.Phrase {
	seen := make(map[int]bool)
	var out []*knp.Phrase
	for _, bp := range l.bps {
		if bp.phrase == nil || seen[bp.TID] {
			continue
		}
		seen[bp.TID] = true
		out = append(out, bp.phrase)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// adnominalEventIDs collects the adnominal modifier event IDs of all phrases.
func (l *BasicPhraseList) adnominalEventIDs() []int {
	var ids []int
	for _, bp := range l.bps {
		ids = append(ids, bp.AdnominalEventIDs...)
	}
	return ids
}

// complementEventIDs collects the complement modifier event IDs of all
// phrases.
func (l *BasicPhraseList) complementEventIDs() []int {
	var ids []int
	for _, bp := range l.bps {
		ids = append(ids, bp.ComplementEventIDs...)
	}
	return ids
}
