package eventgraph

import (
	"sort"
	"strings"

	"github.com/kotonoha/eventgraph/knp"
)

// Case is a grammatical case label from the parser's closed vocabulary.
// Parser updates may introduce labels outside the named constants; they are
// carried through verbatim rather than rejected.
type Case string

const (
	CaseGa2      Case = "ガ２" // outer/secondary subject
	CaseGa       Case = "ガ"  // nominative
	CaseWo       Case = "ヲ"  // accusative
	CaseNi       Case = "ニ"  // dative
	CaseDe       Case = "デ"  // instrumental/locative
	CaseTo       Case = "ト"  // comitative/quotative
	CaseKara     Case = "カラ" // ablative
	CaseMade     Case = "マデ" // terminative
	CaseYori     Case = "ヨリ" // comparative
	CaseHe       Case = "ヘ"  // allative
	CaseNo       Case = "ノ"  // adnominal
	CaseTime     Case = "時間"
	CaseUnlinked Case = "外の関係"
)

// pasOrder fixes the display order of argument slots: the core cases come
// first, everything else keeps document order.
var pasOrder = map[Case]int{
	CaseGa2: 0,
	CaseGa:  1,
	CaseWo:  2,
	CaseNi:  3,
}

func caseOrder(c Case) int {
	if o, ok := pasOrder[c]; ok {
		return o
	}
	return 99
}

// sortCases orders case labels canonically: core cases first, the rest by
// label.
func sortCases(cases []Case) {
	sort.SliceStable(cases, func(i, j int) bool {
		oi, oj := caseOrder(cases[i]), caseOrder(cases[j])
		if oi != oj {
			return oi < oj
		}
		return cases[i] < cases[j]
	})
}

// ChildPhrase is the rendered form of a dependent basic phrase attached to
// a predicate or argument.
type ChildPhrase struct {
	Surf               string `json:"surf"`
	NormalizedSurf     string `json:"normalized_surf"`
	Mrphs              string `json:"mrphs"`
	NormalizedMrphs    string `json:"normalized_mrphs"`
	Reps               string `json:"reps"`
	NormalizedReps     string `json:"normalized_reps"`
	AdnominalEventIDs  []int  `json:"adnominal_event_ids"`
	ComplementEventIDs []int  `json:"complement_event_ids"`
	Modifier           bool   `json:"modifier"`
	Possessive         bool   `json:"possessive"`
}

// PAS is the predicate-argument structure of one event. Every case key in
// Arguments maps to at least one argument.
type PAS struct {
	Predicate *Predicate
	Arguments map[Case][]*Argument
}

func newPAS(head *knp.Phrase) *PAS {
	pas := &PAS{
		Predicate: &Predicate{head: head},
		Arguments: make(map[Case][]*Argument),
	}
	if head.PAS != nil {
		for _, c := range head.PAS.Cases {
			filler := head.PAS.Filler(c)
			if filler == nil {
				continue
			}
			pas.Arguments[Case(c)] = []*Argument{newArgument(filler)}
		}
	}
	return pas
}

// Cases returns the argument case labels in canonical order.
func (p *PAS) Cases() []Case {
	cases := make([]Case, 0, len(p.Arguments))
	for c := range p.Arguments {
		cases = append(cases, c)
	}
	sortCases(cases)
	return cases
}

func (p *PAS) finalize() {
	p.Predicate.finalize()
	// Drop argument slots whose basic phrases never materialized so that
	// every remaining case key holds at least one rendered argument.
	for c, args := range p.Arguments {
		kept := args[:0]
		for _, a := range args {
			a.finalize()
			if a.Surf != "" {
				kept = append(kept, a)
			}
		}
		if len(kept) == 0 {
			delete(p.Arguments, c)
		} else {
			p.Arguments[c] = kept
		}
	}
}

// Predicate is the head of a PAS with its rendered representations.
type Predicate struct {
	head *knp.Phrase
	bps  *BasicPhraseList

	Surf            string
	NormalizedSurf  string
	Mrphs           string
	NormalizedMrphs string
	Reps            string
	NormalizedReps  string
	StandardReps    string
	Type            string // 動: verbal, 形: adjectival, 判: nominal

	AdnominalEventIDs  []int
	ComplementEventIDs []int
	Children           []ChildPhrase
}

// BasicPhrases returns the basic phrases realizing this predicate.
func (p *Predicate) BasicPhrases() *BasicPhraseList {
	if p.bps == nil {
		return newBasicPhraseList()
	}
	return newBasicPhraseList(p.bps.All()...)
}

func (p *Predicate) push(bp *BasicPhrase) {
	if p.bps == nil {
		p.bps = newBasicPhraseList()
	}
	p.bps.Push(bp)
}

func (p *Predicate) finalize() {
	if p.bps == nil {
		p.bps = newBasicPhraseList()
	}
	headBPs := p.bps.head()

	p.Mrphs = p.coreMrphs()
	p.NormalizedMrphs = p.Mrphs
	p.Surf = strings.ReplaceAll(p.Mrphs, " ", "")
	p.NormalizedSurf = p.Surf
	p.Reps = p.coreReps()
	p.NormalizedReps = p.Reps
	p.StandardReps = p.standardReps()
	if p.head != nil {
		p.Type = p.head.PredicateType()
	}
	p.AdnominalEventIDs = headBPs.adnominalEventIDs()
	p.ComplementEventIDs = headBPs.complementEventIDs()
	p.Children = renderChildren(p.bps.child(), normPredicate)
}

// coreMrphs renders the predicate's core morphemes: the span the parser
// marks as the predicate expression, with the final morpheme replaced by
// its lemma.
func (p *Predicate) coreMrphs() string {
	var tokens []string
	within := false
	for _, phrase := range p.headPhrases() {
		for i := range phrase.Morphemes {
			m := &phrase.Morphemes[i]
			if m.Features.Has("用言表記先頭") {
				within = true
			}
			if m.Features.Has("用言表記末尾") {
				tokens = append(tokens, m.Lemma)
				return strings.Join(tokens, " ")
			}
			if within {
				tokens = append(tokens, m.Surface)
			}
		}
	}
	if len(tokens) == 0 && p.head != nil {
		// The parser did not bracket the predicate expression; fall back
		// to the lemma-normalized head phrase.
		content, _, _ := (&BasicPhrase{phrase: p.head}).normalizePredicate(surfaceString, true)
		tokens = content
	}
	return strings.Join(tokens, " ")
}

func (p *Predicate) coreReps() string {
	for _, phrase := range p.headPhrases() {
		if rep := phrase.Features.Get("用言代表表記"); rep != "" {
			return rep
		}
	}
	if p.head == nil {
		return ""
	}
	return strings.Join(repList(p.head.Morphemes), " ")
}

func (p *Predicate) standardReps() string {
	for _, phrase := range p.headPhrases() {
		if rep := phrase.Features.Get("標準用言代表表記"); rep != "" {
			return rep
		}
	}
	return p.Reps
}

func (p *Predicate) headPhrases() []*knp.Phrase {
	return p.bps.head().phrases()
}

// Argument is one filler of a case slot with its rendered representations.
type Argument struct {
	filler *knp.CaseFiller
	bps    *BasicPhraseList

	Surf            string
	NormalizedSurf  string
	Mrphs           string
	NormalizedMrphs string
	Reps            string
	NormalizedReps  string
	HeadReps        string

	EntityID     int
	Flag         string
	SentenceDist int
	EventHead    bool

	AdnominalEventIDs  []int
	ComplementEventIDs []int
	Children           []ChildPhrase
}

func newArgument(filler *knp.CaseFiller) *Argument {
	return &Argument{filler: filler, EntityID: -1}
}

// BasicPhrases returns the basic phrases realizing this argument.
func (a *Argument) BasicPhrases() *BasicPhraseList {
	if a.bps == nil {
		return newBasicPhraseList()
	}
	return newBasicPhraseList(a.bps.All()...)
}

func (a *Argument) push(bp *BasicPhrase) {
	if a.bps == nil {
		a.bps = newBasicPhraseList()
	}
	a.bps.Push(bp)
}

func (a *Argument) render(o stringOptions) string {
	o.mode = normArgument
	return a.bps.head().toString(o)
}

func (a *Argument) finalize() {
	if a.bps == nil {
		a.bps = newBasicPhraseList()
	}
	headBPs := a.bps.head()
	if headBPs.Len() == 0 {
		return
	}

	base := defaultStringOptions()

	o := base
	o.space = false
	a.Surf = a.render(o)
	o.truncate = true
	a.NormalizedSurf = a.render(o)

	o = base
	a.Mrphs = a.render(o)
	o.truncate = true
	a.NormalizedMrphs = a.render(o)

	o = base
	o.typ = repString
	a.Reps = a.render(o)
	o.truncate = true
	a.NormalizedReps = a.render(o)

	a.HeadReps = a.headRepname(headBPs)
	if a.filler != nil {
		a.EntityID = a.filler.EntityID
		a.Flag = a.filler.Flag
		a.SentenceDist = a.filler.SentenceDist
	}
	a.AdnominalEventIDs = headBPs.adnominalEventIDs()
	a.ComplementEventIDs = headBPs.complementEventIDs()
	a.Children = renderChildren(a.bps.child(), normArgument)

	for _, bp := range headBPs.bps {
		if bp.phrase != nil && (bp.phrase.IsClauseHead() || bp.phrase.IsClauseEnd()) {
			a.EventHead = true
			break
		}
	}
}

// headRepname prefers the parser's head-word representative annotation over
// the rendered representation.
func (a *Argument) headRepname(headBPs *BasicPhraseList) string {
	if headBPs.Len() == 0 {
		return ""
	}
	headBP := headBPs.bps[0]

	reps := ""
	if headBP.phrase != nil {
		if rep := headBP.phrase.Features.Get("正規化代表表記"); rep != "" {
			reps = rep
		}
	}
	if reps == "" {
		return a.NormalizedReps
	}
	if headBP.IsOmitted {
		return "[" + reps + "]"
	}
	return reps
}

// renderChildren renders child basic phrases, most recent first.
func renderChildren(children *BasicPhraseList, mode normMode) []ChildPhrase {
	bps := children.All()
	sort.SliceStable(bps, func(i, j int) bool { return bps[i].TID > bps[j].TID })

	out := make([]ChildPhrase, 0, len(bps))
	for _, bp := range bps {
		single := newBasicPhraseList(bp)
		render := func(o stringOptions) string {
			o.mode = mode
			o.normalizeChild = true
			return single.toString(o)
		}
		base := defaultStringOptions()

		var c ChildPhrase
		o := base
		o.space = false
		c.Surf = render(o)
		o.truncate = true
		c.NormalizedSurf = render(o)

		o = base
		c.Mrphs = render(o)
		o.truncate = true
		c.NormalizedMrphs = render(o)

		o = base
		o.typ = repString
		c.Reps = render(o)
		o.truncate = true
		c.NormalizedReps = render(o)

		c.AdnominalEventIDs = bp.AdnominalEventIDs
		c.ComplementEventIDs = bp.ComplementEventIDs
		c.Modifier = bp.IsModifier
		c.Possessive = bp.possessive
		out = append(out, c)
	}
	return out
}
