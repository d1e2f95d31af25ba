package eventgraph

import (
	"bytes"
	"testing"
)

// ---------------------------------------------------------------------------
// Segmentation and relation scenarios
// ---------------------------------------------------------------------------

func TestBuildCausalClauses(t *testing.T) {
	g := buildGraph(t, knpCauseResult)

	if got := len(g.Sentences()); got != 1 {
		t.Fatalf("sentence count = %d, want 1", got)
	}
	events := g.Events()
	if len(events) != 2 {
		t.Fatalf("event count = %d, want 2", len(events))
	}
	if got, want := events[0].Surf, "海外勤務が長いので、"; got != want {
		t.Errorf("event 0 surf = %q, want %q", got, want)
	}
	if got, want := events[1].Surf, "彼女は英語がうまいに違いない。"; got != want {
		t.Errorf("event 1 surf = %q, want %q", got, want)
	}

	relations := g.Relations()
	if len(relations) != 1 {
		t.Fatalf("relation count = %d, want 1", len(relations))
	}
	r := relations[0]
	if r.Label != LabelCause {
		t.Errorf("label = %q, want %q", r.Label, LabelCause)
	}
	if r.Surface != "ので" {
		t.Errorf("surface = %q, want %q", r.Surface, "ので")
	}
	if r.Modifier.ID != 0 || r.Head.ID != 1 {
		t.Errorf("relation %d->%d, want 0->1", r.Modifier.ID, r.Head.ID)
	}
	if !r.Reliable {
		t.Error("relation between the sentence's last two events should be reliable")
	}
	if events[0].ParentID != 1 {
		t.Errorf("event 0 parent = %d, want 1", events[0].ParentID)
	}
}

func TestBuildDoubleSubjectArguments(t *testing.T) {
	g := buildGraph(t, knpCauseResult)
	e := g.Events()[1]

	ga2 := e.PAS.Arguments[CaseGa2]
	if len(ga2) == 0 {
		t.Fatal("missing ガ２ argument")
	}
	if got, want := ga2[0].NormalizedSurf, "彼女"; got != want {
		t.Errorf("ガ２ normalized surf = %q, want %q", got, want)
	}
	ga := e.PAS.Arguments[CaseGa]
	if len(ga) == 0 {
		t.Fatal("missing ガ argument")
	}
	if got, want := ga[0].Surf, "英語が"; got != want {
		t.Errorf("ガ surf = %q, want %q", got, want)
	}

	// ガ２ sorts before ガ.
	cases := e.PAS.Cases()
	if len(cases) != 2 || cases[0] != CaseGa2 || cases[1] != CaseGa {
		t.Errorf("case order = %v, want [ガ２ ガ]", cases)
	}
}

func TestBuildAdnominalClause(t *testing.T) {
	g := buildGraph(t, knpAdnominalResult)

	events := g.Events()
	if len(events) != 2 {
		t.Fatalf("event count = %d, want 2", len(events))
	}
	relations := g.Relations()
	if len(relations) != 1 {
		t.Fatalf("relation count = %d, want 1", len(relations))
	}
	if relations[0].Label != LabelAdnominal {
		t.Errorf("label = %q, want %q", relations[0].Label, LabelAdnominal)
	}
	if relations[0].HeadTID != 3 {
		t.Errorf("head tid = %d, want 3", relations[0].HeadTID)
	}

	// The modified phrase carries the modifier mark.
	if got, want := events[1].SurfWithMark, "▼作り方をして欲しい。"; got != want {
		t.Errorf("surf with mark = %q, want %q", got, want)
	}

	// Merging the modifier back in reconstructs the original sentence.
	merged, err := events[1].SurfWithModifiers()
	if err != nil {
		t.Fatalf("merged surf: %v", err)
	}
	if want := "もっととろみが持続する作り方をして欲しい。"; merged != want {
		t.Errorf("merged surf = %q, want %q", merged, want)
	}
}

func TestBuildDropsHeadlessSpan(t *testing.T) {
	g := buildGraph(t, knpHeadlessResult)
	if got := len(g.Events()); got != 0 {
		t.Fatalf("event count = %d, want 0 for a span without a clause head", got)
	}
	if got := len(g.Sentences()); got != 1 {
		t.Fatalf("sentence count = %d, want 1", got)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	if _, err := Build(nil); err != ErrNoAnalysis {
		t.Fatalf("err = %v, want ErrNoAnalysis", err)
	}
}

// ---------------------------------------------------------------------------
// Invariants
// ---------------------------------------------------------------------------

func TestBuildDeterminism(t *testing.T) {
	src := knpCauseResult + knpAdnominalResult

	var a, b bytes.Buffer
	if err := buildGraph(t, src).SaveJSON(&a); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := buildGraph(t, src).SaveJSON(&b); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two builds of the same input serialized differently")
	}
}

func TestBuildEveryCaseHasArgument(t *testing.T) {
	for _, src := range []string{knpCauseResult, knpAdnominalResult} {
		g := buildGraph(t, src)
		for _, e := range g.Events() {
			for c, args := range e.PAS.Arguments {
				if len(args) == 0 {
					t.Errorf("event %d: case %s has no arguments", e.ID, c)
				}
				for _, a := range args {
					if a.Surf == "" {
						t.Errorf("event %d: case %s has an empty argument", e.ID, c)
					}
				}
			}
		}
	}
}

func TestBuildNoDuplicateRelations(t *testing.T) {
	g := buildGraph(t, knpCauseResult+knpAdnominalResult)
	seen := make(map[relationKey]bool)
	for _, r := range g.Relations() {
		k := r.key()
		if seen[k] {
			t.Errorf("duplicate relation %d->%d %q", k.modifier, k.head, k.label)
		}
		seen[k] = true
	}
}

func TestEventLookup(t *testing.T) {
	g := buildGraph(t, knpCauseResult)
	e, err := g.Event(0)
	if err != nil {
		t.Fatalf("Event(0): %v", err)
	}
	if e.ID != 0 {
		t.Errorf("id = %d, want 0", e.ID)
	}
	if _, err := g.Event(99); err == nil {
		t.Fatal("expected error for unknown event id")
	}
}

// ---------------------------------------------------------------------------
// Features
// ---------------------------------------------------------------------------

func TestBuildFeaturesFromScenario(t *testing.T) {
	g := buildGraph(t, knpCauseResult)
	events := g.Events()

	f := events[1].Features
	if f.Modality != ModalitySpeculation {
		t.Errorf("modality = %q, want speculation for に違いない", f.Modality)
	}
	if f.Tense != TenseNonPast {
		t.Errorf("tense = %q, want non-past", f.Tense)
	}
	if f.Negation {
		t.Error("に違いない is a modality marker, not a negation")
	}
	if f.State != StateStative {
		t.Errorf("state = %q, want stative", f.State)
	}

	if got := events[0].Features.Modality; got != "" {
		t.Errorf("event 0 modality = %q, want none", got)
	}
}

func TestBuildComplementClause(t *testing.T) {
	g := buildGraph(t, knpComplementResult)

	events := g.Events()
	if len(events) != 2 {
		t.Fatalf("event count = %d, want 2", len(events))
	}
	relations := g.Relations()
	if len(relations) != 1 {
		t.Fatalf("relation count = %d, want 1", len(relations))
	}
	r := relations[0]
	if r.Label != LabelComplement {
		t.Errorf("label = %q, want %q", r.Label, LabelComplement)
	}
	if r.HeadTID != 2 {
		t.Errorf("head tid = %d, want 2", r.HeadTID)
	}

	// The matrix clause renders without the complement clause's text; the
	// merge brings it back in.
	if got, want := events[1].Surf, "思った。"; got != want {
		t.Errorf("matrix surf = %q, want %q", got, want)
	}
	if got, want := events[1].SurfWithMark, "■思った。"; got != want {
		t.Errorf("matrix surf with mark = %q, want %q", got, want)
	}
	merged, err := events[1].SurfWithModifiers()
	if err != nil {
		t.Fatalf("SurfWithModifiers: %v", err)
	}
	if want := "雨が降ると思った。"; merged != want {
		t.Errorf("merged surf = %q, want %q", merged, want)
	}

	// The clause filler stays on the PAS.
	wo := events[1].PAS.Arguments[CaseWo]
	if len(wo) == 0 {
		t.Fatal("missing ヲ argument")
	}
	if got, want := wo[0].Surf, "降ると"; got != want {
		t.Errorf("ヲ surf = %q, want %q", got, want)
	}
	if !wo[0].EventHead {
		t.Error("clause filler should be flagged as an event head")
	}

	if !events[0].Features.Complement {
		t.Error("complement clause should carry the complement flag")
	}
	if events[1].Features.Complement {
		t.Error("matrix clause should not carry the complement flag")
	}
}

func TestBuildDiscourseRelation(t *testing.T) {
	g := buildGraph(t, knpDiscourseResult)

	events := g.Events()
	if len(events) != 2 {
		t.Fatalf("event count = %d, want 2", len(events))
	}
	relations := g.Relations()
	if len(relations) != 1 {
		t.Fatalf("relation count = %d, want 1", len(relations))
	}
	r := relations[0]
	if want := DiscourseLabel("cause"); r.Label != want {
		t.Errorf("label = %q, want %q", r.Label, want)
	}
	if r.Modifier.ID != events[1].ID || r.Head.ID != events[0].ID {
		t.Errorf("relation %d->%d, want %d->%d",
			r.Modifier.ID, r.Head.ID, events[1].ID, events[0].ID)
	}
	if r.Reliable {
		t.Error("discourse relations are never reliable")
	}
}

func TestBuildExophoraRenderings(t *testing.T) {
	g := buildGraph(t, knpExophoraResult)
	e := g.Events()[0]

	if got, want := e.NormalizedMrphs, "[著者 が] 本 を 読む"; got != want {
		t.Errorf("normalized mrphs = %q, want %q", got, want)
	}
	if got, want := e.NormalizedMrphsWithoutExophora, "本 を 読む"; got != want {
		t.Errorf("normalized mrphs without exophora = %q, want %q", got, want)
	}
	if got, want := e.NormalizedMrphsWithMarkWithoutExophora, "本 を 読む (。)"; got != want {
		t.Errorf("marked variant = %q, want %q", got, want)
	}

	var buf bytes.Buffer
	if err := g.SaveJSON(&buf); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	loaded, err := LoadJSON(&buf)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	le := loaded.Events()[0]
	if le.NormalizedMrphsWithoutExophora != e.NormalizedMrphsWithoutExophora {
		t.Errorf("loaded variant = %q, want %q",
			le.NormalizedMrphsWithoutExophora, e.NormalizedMrphsWithoutExophora)
	}
}
