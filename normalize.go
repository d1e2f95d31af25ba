package eventgraph

import (
	"strings"

	"github.com/kotonoha/eventgraph/knp"
)

// stringType selects which morpheme representation a rendering uses.
type stringType int

const (
	surfaceString stringType = iota // inflected surface forms
	repString                       // reading-annotated representative forms
)

// normMode selects the normalization applied when rendering a basic phrase.
type normMode int

const (
	normNone      normMode = iota // render morphemes as-is
	normPredicate                 // truncate trailing non-content conjugation
	normArgument                  // truncate trailing particles and copulas
)

func surfaceList(ms []knp.Morpheme) []string {
	out := make([]string, len(ms))
	for i := range ms {
		out[i] = ms[i].Surface
	}
	return out
}

func repList(ms []knp.Morpheme) []string {
	out := make([]string, len(ms))
	for i := range ms {
		out[i] = ms[i].Repname()
	}
	return out
}

// katakanaToHiragana converts katakana runes to their hiragana counterparts,
// leaving everything else untouched. Case labels arrive in katakana (ガ) but
// render in hiragana (が) when shown as surface text.
func katakanaToHiragana(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'ァ' && r <= 'ヶ' {
			r -= 0x60
		}
		b.WriteRune(r)
	}
	return b.String()
}

// tokens renders one basic phrase into content tokens and adjunct tokens.
// Content tokens are the part that survives normalization; adjunct tokens
// are what truncation strips. The returned flag reports whether a
// normalization point was found, which stops normalization of the phrases
// that follow (only the first normalized phrase of a display unit is
// truncated).
//
// Rendering is pure: identical input yields identical output, and the
// phrase is never mutated.
func (bp *BasicPhrase) tokens(st stringType, mode normMode, truncate, normalizeChild bool) (content, adjunct []string, normalized bool) {
	if bp.IsOmitted {
		if bp.Exophora != "" {
			content = []string{bp.Exophora}
		} else {
			content, _, _ = bp.normalizeArgument(st, true)
		}
		omittedCase := katakanaToHiragana(string(bp.Case))
		if st == repString {
			omittedCase = omittedCase + "/" + omittedCase
		}
		if mode == normArgument {
			return content, []string{omittedCase}, true
		}
		return append(content, omittedCase), nil, false
	}

	switch {
	case mode == normNone || (bp.IsChild && !normalizeChild):
		return bp.rawTokens(st), nil, false
	case mode == normPredicate:
		return bp.normalizePredicate(st, truncate)
	default:
		return bp.normalizeArgument(st, truncate)
	}
}

func (bp *BasicPhrase) rawTokens(st stringType) []string {
	if bp.phrase == nil {
		return nil
	}
	if st == surfaceString {
		return surfaceList(bp.phrase.Morphemes)
	}
	return repList(bp.phrase.Morphemes)
}

// normalizePredicate finds the last conjugating morpheme and truncates the
// phrase there, replacing that morpheme with its lemma. Special cases:
// adjective + です drops です (美しいです -> 美しい); a conjugating form + じゃ
// drops じゃ (使えないじゃん -> 使えない); the auxiliary ぬ keeps its surface
// form; のだ/んだ never count as the content tail.
func (bp *BasicPhrase) normalizePredicate(st stringType, truncate bool) (content, adjunct []string, normalized bool) {
	ms := bp.phrase.Morphemes

	slicer := -1
	useLemma := true
	for i := len(ms) - 1; i >= 0; i-- {
		m := &ms[i]
		if m.POS == "助動詞" && m.Lemma == "です" && i > 0 && ms[i-1].POS == "形容詞" {
			slicer = i
			break
		}
		if m.POS == "判定詞" && m.Surface == "じゃ" && i > 0 && ms[i-1].IsConjugating() {
			slicer = i
			break
		}
		if (m.IsConjugating() || m.Features.Has("用言意味表記末尾")) && m.Lemma != "のだ" && m.Lemma != "んだ" {
			slicer = i + 1
			if m.POS == "助動詞" && m.Lemma == "ぬ" {
				useLemma = false
			}
			break
		}
	}
	if !truncate {
		useLemma = false
	}

	if slicer == -1 {
		return bp.rawTokens(st), nil, false
	}
	if st == surfaceString {
		content = surfaceList(ms[:slicer-1])
		tail := ms[slicer-1].Surface
		if useLemma {
			tail = ms[slicer-1].Lemma
		}
		content = append(content, tail)
		adjunct = surfaceList(ms[slicer:])
	} else {
		content = repList(ms[:slicer])
		adjunct = repList(ms[slicer:])
	}
	if len(content) == 0 {
		// Stripping must never yield an empty span.
		return bp.rawTokens(st), nil, false
	}
	return content, adjunct, true
}

// normalizeArgument truncates an argument phrase at the first particle,
// punctuation, or copula that follows a content word.
func (bp *BasicPhrase) normalizeArgument(st stringType, truncate bool) (content, adjunct []string, normalized bool) {
	ms := bp.phrase.Morphemes

	isAdjunctPOS := func(m *knp.Morpheme) bool {
		return m.POS == "助詞" || m.POS == "特殊" || m.POS == "判定詞"
	}
	slicer := -1
	sawContent := false
	for i := range ms {
		if isAdjunctPOS(&ms[i]) && sawContent {
			slicer = i
			break
		}
		if !isAdjunctPOS(&ms[i]) {
			sawContent = true
		}
	}

	tailForm := func(m *knp.Morpheme) string {
		if truncate {
			return m.Lemma
		}
		return m.Surface
	}

	if slicer == -1 {
		if len(ms) == 0 {
			return nil, nil, false
		}
		if st == surfaceString {
			content = surfaceList(ms[:len(ms)-1])
			content = append(content, tailForm(&ms[len(ms)-1]))
		} else {
			content = repList(ms)
		}
		return content, nil, true
	}
	if st == surfaceString {
		content = surfaceList(ms[:slicer-1])
		content = append(content, tailForm(&ms[slicer-1]))
		adjunct = surfaceList(ms[slicer:])
	} else {
		content = repList(ms[:slicer])
		adjunct = repList(ms[slicer:])
	}
	if len(content) == 0 {
		return bp.rawTokens(st), nil, false
	}
	return content, adjunct, true
}

// stringOptions controls how a basic phrase list renders to text.
type stringOptions struct {
	typ             stringType
	mark            bool // insert ▼/■/| marks for modifier sites and gaps
	space           bool // join morphemes with spaces
	mode            normMode
	truncate        bool // drop adjunct tokens instead of appending them
	includeExophora bool
	normalizeChild  bool
}

func defaultStringOptions() stringOptions {
	return stringOptions{
		typ:             surfaceString,
		space:           true,
		mode:            normPredicate,
		includeExophora: true,
	}
}

// toString renders the list. Omitted arguments render first as bracketed
// prefixes ("[著者が]"); adnominal and complement modifier sites are marked
// with ▼ and ■ when marks are requested; a | marks a discontinuity between
// phrases that skip over text. Truncation drops adjunct tokens, except that
// marked renderings keep them parenthesized.
func (l *BasicPhraseList) toString(o stringOptions) string {
	joiner := ""
	if o.space {
		joiner = " "
	}

	var omittedTokens, contentTokens, adjunctTokens []string

	afterNormalization := false
	var prev *BasicPhrase
	for _, group := range l.bunsetsuGroups() {
		exophora, omittedCase := "", Case("")
		needsAdnominal, needsComplement := false, false
		for _, bp := range group.bps {
			if bp.IsOmitted {
				exophora = bp.Exophora
				omittedCase = bp.Case
			}
			if o.mark && len(bp.AdnominalEventIDs) > 0 {
				needsAdnominal = true
			}
			if o.mark && len(bp.ComplementEventIDs) > 0 {
				needsComplement = true
			}
		}

		if !o.includeExophora && exophora != "" {
			continue
		}

		var contentGroup, adjunctGroup []string
		for _, bp := range group.bps {
			needsSeparator := false
			if prev != nil {
				gap := prev.SSID == bp.SSID && prev.TID+1 < bp.TID
				needsSeparator = o.mark && gap && !prev.IsOmitted &&
					!needsAdnominal && !needsComplement
			}

			var content, adjunct []string
			if afterNormalization {
				// A later phrase of an already-normalized unit renders
				// unnormalized into the adjunct part.
				adjunct, _, _ = bp.tokens(o.typ, normNone, o.truncate, o.normalizeChild)
			} else {
				var normalized bool
				content, adjunct, normalized = bp.tokens(o.typ, o.mode, o.truncate, o.normalizeChild)
				afterNormalization = afterNormalization || normalized
				if needsSeparator {
					content = append([]string{"|"}, content...)
				}
			}

			// An omitted argument rendered un-truncated keeps its case
			// marker inline rather than as an adjunct.
			if omittedCase != "" && o.mode == normArgument && !o.truncate {
				content = append(content, adjunct...)
				adjunct = nil
				afterNormalization = false
			}

			contentGroup = append(contentGroup, content...)
			adjunctGroup = append(adjunctGroup, adjunct...)
			prev = bp
		}

		if len(contentGroup) > 0 {
			s := strings.Join(contentGroup, joiner)
			switch {
			case omittedCase != "":
				omittedTokens = append(omittedTokens, "["+s+"]")
			case needsAdnominal:
				contentTokens = append(contentTokens, "▼"+joiner+s)
			case needsComplement:
				contentTokens = append(contentTokens, "■"+joiner+s)
			default:
				contentTokens = append(contentTokens, s)
			}
		}
		if len(adjunctGroup) > 0 {
			adjunctTokens = append(adjunctTokens, strings.Join(adjunctGroup, joiner))
		}
	}

	omitted := strings.Join(omittedTokens, "")
	content := strings.Join(contentTokens, joiner)
	adjunct := strings.Join(adjunctTokens, joiner)

	if omitted != "" {
		if content != "" {
			content = omitted + joiner + content
		} else {
			content = omitted
		}
	}

	if adjunct == "" {
		return content
	}
	if o.truncate {
		// Marked normalized renderings keep the stripped tail visible.
		if o.mark {
			return content + joiner + "(" + adjunct + ")"
		}
		return content
	}
	return content + joiner + adjunct
}

// contentReps lists the representative strings of content words, one entry
// per content morpheme, in display order.
func (l *BasicPhraseList) contentReps() []string {
	var reps []string
	for _, group := range l.bunsetsuGroups() {
		for _, bp := range group.bps {
			if bp.phrase == nil {
				continue
			}
			for i := range bp.phrase.Morphemes {
				m := &bp.phrase.Morphemes[i]
				if m.IsContentWord() {
					reps = append(reps, m.Repname())
				}
			}
		}
	}
	return reps
}
