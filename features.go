package eventgraph

import (
	"strings"

	"github.com/kotonoha/eventgraph/knp"
)

// Tense classifies an event as past or non-past. Events whose head carries
// no tense cue stay unspecified.
type Tense string

const (
	TensePast        Tense = "past"
	TenseNonPast     Tense = "non-past"
	TenseUnspecified Tense = "unspecified"
)

// Modality classifies the speaker's stance toward the event.
type Modality string

const (
	ModalityHearsay     Modality = "hearsay"
	ModalitySpeculation Modality = "speculation"
	ModalityObligation  Modality = "obligation"
	ModalityRequest     Modality = "request"
	ModalityVolition    Modality = "volition"
)

// State classifies the predicate as describing a state or a change.
type State string

const (
	StateStative State = "stative"
	StateDynamic State = "dynamic"
)

// Features holds the linguistic attributes computed for one event.
type Features struct {
	Negation   bool     `json:"negation"`
	Tense      Tense    `json:"tense"`
	Modality   Modality `json:"modality,omitempty"`
	State      State    `json:"state,omitempty"`
	Complement bool     `json:"complement"`
	Passive    bool     `json:"passive"`
	Causal     bool     `json:"causal"`
	Potential  bool     `json:"potential"`
}

// modalityCues is checked in order; the first match wins. More specific
// markers come before the broad ones they contain, and each cue lists its
// orthographic variants.
var modalityCues = []struct {
	patterns []string
	modality Modality
}{
	{[]string{"そうだ"}, ModalityHearsay},
	{[]string{"らしい"}, ModalityHearsay},
	{[]string{"という"}, ModalityHearsay},
	{[]string{"かもしれない", "かも知れない"}, ModalitySpeculation},
	{[]string{"に違いない", "にちがいない"}, ModalitySpeculation},
	{[]string{"はずだ", "筈だ"}, ModalitySpeculation},
	{[]string{"だろう"}, ModalitySpeculation},
	{[]string{"でしょう"}, ModalitySpeculation},
	{[]string{"なければならない", "なければ成らない"}, ModalityObligation},
	{[]string{"ねばならない"}, ModalityObligation},
	{[]string{"べきだ"}, ModalityObligation},
	{[]string{"てほしい", "て欲しい"}, ModalityRequest},
	{[]string{"てください", "て下さい"}, ModalityRequest},
	{[]string{"つもりだ"}, ModalityVolition},
	{[]string{"たい"}, ModalityVolition},
}

var negationAux = map[string]bool{
	"ない": true,
	"ぬ":  true,
	"ん":  true,
	"まい": true,
	"ず":  true,
}

// buildFeatures computes the features for an event head. When the head is a
// non-modifying functional predicate, the cues of its parent phrase also
// count: the functional head carries tense and modality for the whole unit.
func buildFeatures(sent *knp.Sentence, head *knp.Phrase) Features {
	f := Features{Tense: TenseUnspecified}

	phrases := []*knp.Phrase{head}
	if parent := functionalParent(sent, head); parent != nil {
		phrases = append(phrases, parent)
	}

	f.Tense = detectTense(phrases)
	f.Negation = detectNegation(phrases)
	f.Modality = detectModality(phrases)
	f.State = detectState(head)
	for _, p := range phrases {
		if p.Features.Has("補文") {
			f.Complement = true
		}
		if p.Features.Has("受動") {
			f.Passive = true
		}
		if p.Features.Has("使役") {
			f.Causal = true
		}
		if p.Features.Has("可能") {
			f.Potential = true
		}
	}
	if parent := sent.Phrase(head.ParentID); parent != nil {
		if parent.Features.Has("弱用言") || parent.Features.Has("思う能動") {
			if f.Modality == "" {
				f.Modality = ModalitySpeculation
			}
		}
	}
	return f
}

// functionalParent returns the parent phrase when it is a functional
// predicate completing this head, rather than an independent event.
func functionalParent(sent *knp.Sentence, head *knp.Phrase) *knp.Phrase {
	if sent == nil || head.ParentID < 0 {
		return nil
	}
	parent := sent.Phrase(head.ParentID)
	if parent == nil {
		return nil
	}
	if parent.Features.Has("機能的基本句") && !parent.IsClauseHead() {
		return parent
	}
	return nil
}

func detectTense(phrases []*knp.Phrase) Tense {
	for _, p := range phrases {
		switch {
		case p.Features.Has("時制-過去"):
			return TensePast
		case p.Features.Has("時制-未来"), p.Features.Has("時制-現在"):
			return TenseNonPast
		}
		if t := p.Features.Get("時制"); t != "" {
			if strings.Contains(t, "過去") {
				return TensePast
			}
			return TenseNonPast
		}
	}
	// No explicit tense feature: check the conjugation form and the
	// trailing auxiliaries.
	for _, p := range phrases {
		for i := range p.Morphemes {
			m := &p.Morphemes[i]
			if strings.HasPrefix(m.ConjForm, "タ形") {
				return TensePast
			}
			if m.POS == "助動詞" && (m.Lemma == "た" || m.Lemma == "だ") &&
				i > 0 && p.Morphemes[i-1].IsConjugating() {
				return TensePast
			}
		}
	}
	for _, p := range phrases {
		if p.IsPredicate() {
			return TenseNonPast
		}
	}
	return TenseUnspecified
}

func detectNegation(phrases []*knp.Phrase) bool {
	for _, p := range phrases {
		if p.Features.Has("否定表現") {
			return true
		}
		for i := range p.Morphemes {
			m := &p.Morphemes[i]
			if m.POS == "助動詞" && negationAux[m.Lemma] {
				return true
			}
		}
	}
	return false
}

func detectModality(phrases []*knp.Phrase) Modality {
	var surfs, lemmas strings.Builder
	for _, p := range phrases {
		for i := range p.Morphemes {
			surfs.WriteString(p.Morphemes[i].Surface)
			lemmas.WriteString(p.Morphemes[i].Lemma)
		}
		if mod := p.Features.Get("モダリティ"); mod != "" {
			surfs.WriteString(mod)
		}
	}
	for _, cue := range modalityCues {
		for _, pattern := range cue.patterns {
			if strings.Contains(surfs.String(), pattern) || strings.Contains(lemmas.String(), pattern) {
				return cue.modality
			}
		}
	}
	return ""
}

func detectState(head *knp.Phrase) State {
	switch {
	case head.Features.Has("状態述語"):
		return StateStative
	case head.Features.Has("動態述語"):
		return StateDynamic
	}
	return ""
}
