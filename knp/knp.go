// Package knp models the per-sentence output of the KNP dependency and
// case-structure parser: morphemes, basic phrases (tags), dependency links,
// and case analysis. The eventgraph core only reads these structures; it
// never mutates them.
package knp

import "strings"

// Dependency types used by the parser.
const (
	DepNormal   = "D" // ordinary dependency
	DepParallel = "P" // coordinate/parallel structure
	DepApposit  = "A" // apposition
	DepIncomp   = "I" // incomplete parallel
)

// Morpheme is a single morphological unit as produced by the parser.
type Morpheme struct {
	Surface   string // inflected surface form (midasi)
	Reading   string // reading in hiragana (yomi)
	Lemma     string // base form (genkei)
	POS       string // part of speech (hinsi)
	POSSub    string // part-of-speech subcategory
	ConjType  string // conjugation type
	ConjForm  string // conjugation form
	Semantics string // semantic information string
	Features  FeatureSet
}

// Repname returns the representative string of this morpheme, falling back
// to "surface/surface" when the parser assigned none.
func (m *Morpheme) Repname() string {
	if rep := m.Features.Get("代表表記"); rep != "" {
		return rep
	}
	if i := strings.Index(m.Semantics, "代表表記:"); i >= 0 {
		rest := m.Semantics[i+len("代表表記:"):]
		if j := strings.IndexByte(rest, ' '); j >= 0 {
			rest = rest[:j]
		}
		if rest != "" {
			return rest
		}
	}
	return m.Surface + "/" + m.Surface
}

// conjugatingPOS lists parts of speech that inflect.
var conjugatingPOS = map[string]bool{
	"動詞":  true,
	"形容詞": true,
	"助動詞": true,
	"判定詞": true,
}

// IsConjugating reports whether this morpheme inflects. The parser's 活用語
// feature takes precedence; the part of speech decides otherwise.
func (m *Morpheme) IsConjugating() bool {
	if m.Features.Has("活用語") {
		return true
	}
	return conjugatingPOS[m.POS]
}

// contentPOS lists parts of speech treated as content-bearing when the
// parser did not tag the morpheme explicitly.
var contentPOS = map[string]bool{
	"名詞":  true,
	"動詞":  true,
	"形容詞": true,
	"副詞":  true,
	"指示詞": true,
	"連体詞": true,
}

// IsContentWord reports whether this morpheme is a content word.
func (m *Morpheme) IsContentWord() bool {
	if m.Features.Has("内容語") || m.Features.Has("準内容語") {
		return true
	}
	if m.Features.Has("付属") {
		return false
	}
	return contentPOS[m.POS]
}

// Phrase is one basic phrase (KNP tag): the smallest dependency unit,
// holding its morphemes, its dependency link, and the parser's features.
type Phrase struct {
	ID         int    // phrase index within the sentence
	ParentID   int    // dependency parent index; -1 for the sentence root
	DepType    string // dependency type (D, P, A, I)
	BunsetsuID int    // index of the enclosing bunsetsu
	Morphemes  []Morpheme
	Features   FeatureSet
	PAS        *CaseAnalysis // nil when the phrase is not a predicate
}

// Surface returns the concatenated surface form of the phrase.
func (p *Phrase) Surface() string {
	var b strings.Builder
	for i := range p.Morphemes {
		b.WriteString(p.Morphemes[i].Surface)
	}
	return b.String()
}

// IsPredicate reports whether the parser marked this phrase as a predicate.
func (p *Phrase) IsPredicate() bool {
	return p.Features.Has("用言")
}

// PredicateType returns the predicate category (動: verbal, 形: adjectival,
// 判: nominal+copula) or the empty string for non-predicates.
func (p *Phrase) PredicateType() string {
	return p.Features.Get("用言")
}

// IsClauseHead reports whether this phrase is the syntactic head of a clause.
func (p *Phrase) IsClauseHead() bool {
	return p.Features.Has("節-主辞")
}

// IsClauseEnd reports whether this phrase closes a clause.
func (p *Phrase) IsClauseEnd() bool {
	return p.Features.Has("節-区切")
}

// ClauseEndType returns the value of the clause-end feature (for example
// 連体修飾 or 補文), or the empty string.
func (p *Phrase) ClauseEndType() string {
	return p.Features.Get("節-区切")
}

// ClauseFunctions returns the clause-function annotations of this phrase in
// parser order. Each entry is either "label" or "label:marker".
func (p *Phrase) ClauseFunctions() []string {
	return p.Features.Values("節-機能-")
}

// Sentence is the full analysis of one sentence: an ordered phrase sequence
// plus the original sentence ID.
type Sentence struct {
	SID     string // original sentence ID from the parser comment line
	Comment string // full comment line, if any
	Phrases []Phrase
}

// Phrase returns the phrase with the given index, or nil.
func (s *Sentence) Phrase(id int) *Phrase {
	if id < 0 || id >= len(s.Phrases) {
		return nil
	}
	return &s.Phrases[id]
}

// Children returns the phrases whose dependency parent is the given phrase,
// in sentence order.
func (s *Sentence) Children(id int) []*Phrase {
	var children []*Phrase
	for i := range s.Phrases {
		if s.Phrases[i].ParentID == id {
			children = append(children, &s.Phrases[i])
		}
	}
	return children
}

// Morphemes returns all morphemes of the sentence in surface order.
func (s *Sentence) Morphemes() []Morpheme {
	var ms []Morpheme
	for i := range s.Phrases {
		ms = append(ms, s.Phrases[i].Morphemes...)
	}
	return ms
}

// Surface returns the raw sentence text.
func (s *Sentence) Surface() string {
	var b strings.Builder
	for _, m := range s.Morphemes() {
		b.WriteString(m.Surface)
	}
	return b.String()
}
