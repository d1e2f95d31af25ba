package viz

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/kotonoha/eventgraph"
)

// Parser output for 海外勤務が長いので、英語がうまい。: two events, one
// cause relation.
const testAnalysis = `# S-ID:1 KNP:4.19
* 2D
+ 2D <体言><係:ガ格>
勤務 きんむ 勤務 名詞 6 サ変名詞 2 * 0 * 0 "代表表記:勤務/きんむ" <代表表記:勤務/きんむ><内容語>
が が が 助詞 9 格助詞 1 * 0 * 0 NIL <付属>
* 4D
+ 4D <節-主辞><節-区切><節-機能-原因・理由:ので><用言:形><状態述語><格解析結果:長い/ながい:形10:ガ/C/勤務/0/0/1>
長い ながい 長い 形容詞 3 * 0 イ形容詞アウオ段 18 基本形 2 "代表表記:長い/ながい" <代表表記:長い/ながい><内容語><活用語>
ので ので のだ 助動詞 5 * 0 ナ形容詞 21 ダ列タ系連用テ形 12 NIL <付属><活用語>
、 、 、 特殊 1 読点 2 * 0 * 0 NIL <付属>
* 4D
+ 4D <体言><係:ガ格>
英語 えいご 英語 名詞 6 普通名詞 1 * 0 * 0 "代表表記:英語/えいご" <代表表記:英語/えいご><内容語>
が が が 助詞 9 格助詞 1 * 0 * 0 NIL <付属>
* -1D
+ -1D <節-主辞><節-区切><用言:形><状態述語><格解析結果:うまい/うまい:形5:ガ/C/英語/3/0/1>
うまい うまい うまい 形容詞 3 * 0 イ形容詞アウオ段 18 基本形 2 "代表表記:旨い/うまい" <代表表記:旨い/うまい><内容語><活用語>
。 。 。 特殊 1 句点 1 * 0 * 0 NIL <付属>
EOS
`

func buildTestGraph(t *testing.T) *eventgraph.EventGraph {
	t.Helper()
	g, err := eventgraph.BuildFromReader(strings.NewReader(testAnalysis))
	if err != nil {
		t.Fatalf("building graph: %v", err)
	}
	return g
}

func renderDOT(t *testing.T, g *eventgraph.EventGraph, opts ...Option) string {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteDOT(&buf, g, opts...); err != nil {
		t.Fatalf("writing DOT: %v", err)
	}
	return buf.String()
}

func TestWriteDOT(t *testing.T) {
	g := buildTestGraph(t)
	out := renderDOT(t, g)

	if !strings.HasPrefix(out, "digraph") {
		t.Errorf("output does not start with digraph: %q", out[:min(len(out), 40)])
	}
	for _, e := range g.Events() {
		if !strings.Contains(out, fmt.Sprintf("evt%d", e.ID)) {
			t.Errorf("missing node for event %d", e.ID)
		}
		if !strings.Contains(out, e.SurfWithMark) {
			t.Errorf("missing label text %q", e.SurfWithMark)
		}
	}
	if !strings.Contains(out, "cluster_s0") {
		t.Error("missing sentence cluster")
	}
	if !strings.Contains(out, "cause (ので)") {
		t.Error("missing edge label")
	}
	if !strings.Contains(out, `"shape"="box"`) && !strings.Contains(out, `shape="box"`) {
		t.Error("nodes are not boxes")
	}
}

func TestWriteDOTDetail(t *testing.T) {
	g := buildTestGraph(t)

	plain := renderDOT(t, g)
	detail := renderDOT(t, g, WithDetail())

	if strings.Contains(plain, "tense:") {
		t.Error("plain output carries detail lines")
	}
	if !strings.Contains(detail, "tense: non-past") {
		t.Error("detail output misses tense line")
	}
}

func TestWriteDOTRankDir(t *testing.T) {
	g := buildTestGraph(t)
	out := renderDOT(t, g, WithRankDir("LR"))
	if !strings.Contains(out, "LR") {
		t.Error("rankdir not applied")
	}
}

func TestGraphNodeAndEdgeCounts(t *testing.T) {
	g := buildTestGraph(t)
	dg := Graph(g)

	out := dg.String()
	if got := strings.Count(out, "->"); got != len(g.Relations()) {
		t.Errorf("edges = %d, want %d", got, len(g.Relations()))
	}
}
