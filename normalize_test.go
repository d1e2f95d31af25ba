package eventgraph

import (
	"testing"

	"github.com/kotonoha/eventgraph/knp"
)

func adjective(surface, lemma string) knp.Morpheme {
	return knp.Morpheme{Surface: surface, Lemma: lemma, POS: "形容詞", Features: knp.NewFeatureSet("活用語")}
}

func verb(surface, lemma string) knp.Morpheme {
	return knp.Morpheme{Surface: surface, Lemma: lemma, POS: "動詞", Features: knp.NewFeatureSet("活用語")}
}

func noun(surface string) knp.Morpheme {
	return knp.Morpheme{Surface: surface, Lemma: surface, POS: "名詞", Features: knp.NewFeatureSet("内容語")}
}

func particle(surface string) knp.Morpheme {
	return knp.Morpheme{Surface: surface, Lemma: surface, POS: "助詞"}
}

func aux(surface, lemma string) knp.Morpheme {
	return knp.Morpheme{Surface: surface, Lemma: lemma, POS: "助動詞"}
}

func phraseOf(ms ...knp.Morpheme) *BasicPhrase {
	return newBasicPhrase(&knp.Phrase{ParentID: -1, DepType: knp.DepNormal, Morphemes: ms}, 0, 0)
}

// ---------------------------------------------------------------------------
// Predicate normalization
// ---------------------------------------------------------------------------

func TestNormalizePredicate(t *testing.T) {
	tests := []struct {
		name string
		bp   *BasicPhrase
		want string
	}{
		{
			name: "last conjugating morpheme becomes lemma",
			bp:   phraseOf(verb("した", "する"), knp.Morpheme{Surface: "。", Lemma: "。", POS: "特殊"}),
			want: "する",
		},
		{
			name: "adjective plus です drops です",
			bp:   phraseOf(adjective("美しい", "美しい"), aux("です", "です")),
			want: "美しい",
		},
		{
			name: "conjugating form plus じゃ drops じゃ",
			bp: phraseOf(aux("ない", "ない"),
				knp.Morpheme{Surface: "じゃ", Lemma: "だ", POS: "判定詞"},
				knp.Morpheme{Surface: "ん", Lemma: "ん", POS: "助詞"}),
			want: "ない",
		},
		{
			name: "auxiliary ぬ keeps its surface form",
			bp:   phraseOf(verb("知ら", "知る"), aux("ぬ", "ぬ")),
			want: "知らぬ",
		},
		{
			name: "のだ does not terminate the content span",
			bp:   phraseOf(verb("行く", "行く"), aux("のだ", "のだ")),
			want: "行く",
		},
		{
			name: "already normalized form is unchanged",
			bp:   phraseOf(adjective("長い", "長い")),
			want: "長い",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, _, _ := tt.bp.normalizePredicate(surfaceString, true)
			got := ""
			for _, tok := range content {
				got += tok
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeArgument(t *testing.T) {
	bp := phraseOf(noun("勤務"), particle("が"))

	content, adjunct, normalized := bp.normalizeArgument(surfaceString, true)
	if !normalized {
		t.Fatal("expected a normalization point")
	}
	if len(content) != 1 || content[0] != "勤務" {
		t.Errorf("content = %v, want [勤務]", content)
	}
	if len(adjunct) != 1 || adjunct[0] != "が" {
		t.Errorf("adjunct = %v, want [が]", adjunct)
	}
}

func TestNormalizeArgumentNoParticle(t *testing.T) {
	bp := phraseOf(noun("海外"))
	content, adjunct, _ := bp.normalizeArgument(surfaceString, true)
	if len(content) != 1 || content[0] != "海外" {
		t.Errorf("content = %v, want [海外]", content)
	}
	if len(adjunct) != 0 {
		t.Errorf("adjunct = %v, want none", adjunct)
	}
}

// Rendering the same list twice yields the same string; normalizing an
// already-normalized phrase is the identity.
func TestRenderingIsPure(t *testing.T) {
	l := newBasicPhraseList(phraseOf(noun("勤務"), particle("が")), phraseOf(adjective("長い", "長い")))
	o := defaultStringOptions()
	o.truncate = true
	first := l.toString(o)
	second := l.toString(o)
	if first != second {
		t.Errorf("renders differ: %q then %q", first, second)
	}
}

func TestKatakanaToHiragana(t *testing.T) {
	tests := []struct{ in, want string }{
		{"ガ", "が"},
		{"ヲ", "を"},
		{"ガ２", "が２"},
		{"時間", "時間"},
	}
	for _, tt := range tests {
		if got := katakanaToHiragana(tt.in); got != tt.want {
			t.Errorf("katakanaToHiragana(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOmittedArgumentRendersBracketed(t *testing.T) {
	exo := newExophoraBP("著者", 0, -1, CaseGa)
	l := newBasicPhraseList(exo, phraseOf(verb("書く", "書く")))
	o := defaultStringOptions()
	o.space = false
	if got, want := l.toString(o), "[著者が]書く"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
