package eventgraph

import "testing"

func TestConnectiveLabel(t *testing.T) {
	tests := []struct {
		marker string
		want   Label
		ok     bool
	}{
		{"ので", LabelCause, true},
		{"から", LabelCause, true},
		{"のに", LabelConcession, true},
		{"けど", LabelConcession, true},
		{"たら", LabelCondition, true},
		{"ば", LabelCondition, true},
		{"ように", LabelPurpose, true},
		{"ながら", LabelTemporal, true},
		{"を", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := connectiveLabel(tt.marker)
		if got != tt.want || ok != tt.ok {
			t.Errorf("connectiveLabel(%q) = %q, %v, want %q, %v", tt.marker, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClauseFunctionLabels(t *testing.T) {
	tests := []struct {
		fn   string
		want Label
	}{
		{"原因・理由", LabelCause},
		{"逆接", LabelConcession},
		{"条件", LabelCondition},
		{"目的", LabelPurpose},
		{"時間経過", LabelTemporal},
	}
	for _, tt := range tests {
		if got := clauseFunctionLabels[tt.fn]; got != tt.want {
			t.Errorf("clauseFunctionLabels[%q] = %q, want %q", tt.fn, got, tt.want)
		}
	}
}

func TestDiscourseLabel(t *testing.T) {
	if got := discourseLabel("原因・理由"); got != Label("discourse:cause") {
		t.Errorf("discourseLabel(原因・理由) = %q", got)
	}
	// Unknown senses pass through untranslated.
	if got := discourseLabel("談話関係その他"); got != Label("discourse:談話関係その他") {
		t.Errorf("discourseLabel passthrough = %q", got)
	}

	if !DiscourseLabel("cause").IsDiscourse() {
		t.Error("discourse label not recognized as discourse")
	}
	if LabelCause.IsDiscourse() {
		t.Error("cause is not a discourse label")
	}
}

func TestRelationReliability(t *testing.T) {
	g := buildGraph(t, knpCauseResult)

	rels := g.Relations()
	if len(rels) != 1 {
		t.Fatalf("relations = %d, want 1", len(rels))
	}
	if !rels[0].Reliable {
		t.Error("relation between the last two events should be reliable")
	}

	// A relation key collapses duplicate edges but keeps distinct labels
	// apart.
	k := rels[0].key()
	same := relationKey{modifier: rels[0].Modifier.ID, head: rels[0].Head.ID, label: rels[0].Label}
	if k != same {
		t.Errorf("key = %+v, want %+v", k, same)
	}
	other := relationKey{modifier: k.modifier, head: k.head, label: LabelParallel}
	if k == other {
		t.Error("keys with different labels should differ")
	}
}
