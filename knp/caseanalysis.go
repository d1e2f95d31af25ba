package knp

import (
	"strconv"
	"strings"
)

// Case-filler flags assigned by the parser's anaphora resolution.
const (
	FlagOvert    = "C" // filler appears in the same sentence with a case marker
	FlagNominal  = "N" // filler appears without an explicit case marker
	FlagZero     = "O" // zero anaphora: filler elided, resolved to a phrase
	FlagDiscRef  = "D" // resolved across sentences
	FlagExophora = "E" // exophora: filler is outside the text ("不特定:人" etc.)
	FlagUnknown  = "U" // slot exists in the case frame but was not filled
)

// CaseFiller is one resolved argument slot of a predicate.
type CaseFiller struct {
	Case         string // case label (ガ, ヲ, ニ, ガ２, ...)
	Flag         string // one of the Flag* constants
	Surface      string // surface form recorded by the parser
	PhraseID     int    // phrase index of the filler; -1 for exophora
	SentenceDist int    // how many sentences back the filler appears
	SID          string // original sentence ID of the filler
	EntityID     int    // discourse entity ID; -1 when unassigned
}

// CaseAnalysis is the parser's case analysis attached to a predicate phrase.
// Fillers preserve parser order within each case.
type CaseAnalysis struct {
	Predicate string // case-frame identifier, e.g. "長い/ながい:形10"
	Cases     []string
	Fillers   map[string][]CaseFiller
}

// Filler returns the first filler for the given case, or nil.
func (ca *CaseAnalysis) Filler(c string) *CaseFiller {
	if ca == nil {
		return nil
	}
	fs := ca.Fillers[c]
	if len(fs) == 0 {
		return nil
	}
	return &fs[0]
}

// parseCaseAnalysis parses the value of a 格解析結果 feature:
//
//	長い/ながい:形10:ガ/C/勤務/1/0/S-ID1;ニ/U/-/-1/-1/-
//
// Sections are colon-separated (predicate repname, case-frame ID, argument
// list); arguments are semicolon-separated, each with slash-separated
// case/flag/surface/phrase-ID/sentence-distance/sentence-ID fields.
// Unfilled slots (flag U, surface "-") are dropped: a predicate with no
// derivable case information simply yields no fillers.
func parseCaseAnalysis(value string) *CaseAnalysis {
	parts := strings.SplitN(value, ":", 3)
	if len(parts) < 3 {
		return nil
	}
	ca := &CaseAnalysis{
		Predicate: parts[0] + ":" + parts[1],
		Fillers:   make(map[string][]CaseFiller),
	}
	for _, argStr := range strings.Split(parts[2], ";") {
		fields := strings.Split(argStr, "/")
		if len(fields) < 6 {
			continue
		}
		flag := fields[1]
		if flag == FlagUnknown || fields[2] == "-" {
			continue
		}
		filler := CaseFiller{
			Case:         fields[0],
			Flag:         flag,
			Surface:      fields[2],
			PhraseID:     atoiOr(fields[3], -1),
			SentenceDist: atoiOr(fields[4], 0),
			SID:          fields[5],
			EntityID:     -1,
		}
		if len(fields) > 6 {
			filler.EntityID = atoiOr(fields[6], -1)
		}
		if _, ok := ca.Fillers[filler.Case]; !ok {
			ca.Cases = append(ca.Cases, filler.Case)
		}
		ca.Fillers[filler.Case] = append(ca.Fillers[filler.Case], filler)
	}
	if len(ca.Cases) == 0 {
		return nil
	}
	return ca
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
