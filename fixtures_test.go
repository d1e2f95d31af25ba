package eventgraph

import (
	"strings"
	"testing"

	"github.com/kotonoha/eventgraph/knp"
)

// Parser output for 彼女は海外勤務が長いので、英語がうまいに違いない。
// Two clauses joined by the causal connective ので; the second carries a
// double-subject case analysis (ガ２).
const knpCauseResult = `# S-ID:1 KNP:4.19
* 5D
+ 5D <SM-主体><ハ><体言>
彼女 かのじょ 彼女 名詞 6 普通名詞 1 * 0 * 0 "代表表記:彼女/かのじょ" <代表表記:彼女/かのじょ><内容語>
は は は 助詞 9 副助詞 2 * 0 * 0 NIL <付属>
* 3D
+ 2D <体言>
海外 かいがい 海外 名詞 6 普通名詞 1 * 0 * 0 "代表表記:海外/かいがい" <代表表記:海外/かいがい><内容語>
+ 3D <体言><係:ガ格>
勤務 きんむ 勤務 名詞 6 サ変名詞 2 * 0 * 0 "代表表記:勤務/きんむ" <代表表記:勤務/きんむ><内容語>
が が が 助詞 9 格助詞 1 * 0 * 0 NIL <付属>
* 5D
+ 5D <節-主辞><節-区切><節-機能-原因・理由:ので><用言:形><状態述語><格解析結果:長い/ながい:形10:ガ/C/勤務/2/0/1;ニ/U/-/-1/-1/->
長い ながい 長い 形容詞 3 * 0 イ形容詞アウオ段 18 基本形 2 "代表表記:長い/ながい" <代表表記:長い/ながい><内容語><活用語>
ので ので のだ 助動詞 5 * 0 ナ形容詞 21 ダ列タ系連用テ形 12 NIL <付属><活用語>
、 、 、 特殊 1 読点 2 * 0 * 0 NIL <付属>
* 5D
+ 5D <体言><係:ガ格>
英語 えいご 英語 名詞 6 普通名詞 1 * 0 * 0 "代表表記:英語/えいご" <代表表記:英語/えいご><内容語>
が が が 助詞 9 格助詞 1 * 0 * 0 NIL <付属>
* -1D
+ -1D <節-主辞><節-区切><用言:形><状態述語><格解析結果:うまい/うまい:形5:ガ/C/英語/4/0/1;ガ２/N/彼女/0/0/1>
うまい うまい うまい 形容詞 3 * 0 イ形容詞アウオ段 18 基本形 2 "代表表記:旨い/うまい" <代表表記:旨い/うまい><内容語><活用語>
に に に 助詞 9 格助詞 1 * 0 * 0 NIL <付属>
違い ちがい 違い 名詞 6 普通名詞 1 * 0 * 0 "代表表記:違い/ちがい" <付属>
ない ない ない 接尾辞 14 形容詞性述語接尾辞 5 イ形容詞アウオ段 18 基本形 2 NIL <付属>
。 。 。 特殊 1 句点 1 * 0 * 0 NIL <付属>
EOS
`

// Parser output for もっととろみが持続する作り方をして欲しい。
// The first clause adnominally modifies 作り方.
const knpAdnominalResult = `# S-ID:1 KNP:4.19
* 2D
+ 2D <修飾>
もっと もっと もっと 副詞 8 * 0 * 0 * 0 "代表表記:もっと/もっと" <代表表記:もっと/もっと><内容語>
* 2D
+ 2D <体言><係:ガ格>
とろみ とろみ とろみ 名詞 6 普通名詞 1 * 0 * 0 "代表表記:とろみ/とろみ" <代表表記:とろみ/とろみ><内容語>
が が が 助詞 9 格助詞 1 * 0 * 0 NIL <付属>
* 3D
+ 3D <節-主辞><節-区切:連体修飾><用言:動><動態述語><格解析結果:持続/じぞく:動1:ガ/C/とろみ/1/0/1>
持続 じぞく 持続 名詞 6 サ変名詞 2 * 0 * 0 "代表表記:持続/じぞく" <代表表記:持続/じぞく><内容語>
する する する 動詞 2 * 0 サ変動詞 16 基本形 2 "代表表記:する/する" <代表表記:する/する><付属><活用語>
* 4D
+ 4D <体言><係:ヲ格>
作り づくり 作り 名詞 6 普通名詞 1 * 0 * 0 "代表表記:作り/づくり" <代表表記:作り/づくり><内容語>
方 かた 方 名詞 6 普通名詞 1 * 0 * 0 "代表表記:方/かた" <付属>
を を を 助詞 9 格助詞 1 * 0 * 0 NIL <付属>
* -1D
+ -1D <節-主辞><節-区切><用言:動><動態述語><格解析結果:する/する:動2:ヲ/C/作り方/3/0/1>
して して する 動詞 2 * 0 サ変動詞 16 タ系連用テ形 14 "代表表記:する/する" <代表表記:する/する><内容語><活用語>
欲しい ほしい 欲しい 接尾辞 14 形容詞性述語接尾辞 5 イ形容詞アウオ段 18 基本形 2 "代表表記:欲しい/ほしい" <付属><活用語>
。 。 。 特殊 1 句点 1 * 0 * 0 NIL <付属>
EOS
`

// Parser output for 雨が降ると思った。
// The first clause is the sentential complement of 思った.
const knpComplementResult = `# S-ID:1 KNP:4.19
* 1D
+ 1D <体言><係:ガ格>
雨 あめ 雨 名詞 6 普通名詞 1 * 0 * 0 "代表表記:雨/あめ" <代表表記:雨/あめ><内容語>
が が が 助詞 9 格助詞 1 * 0 * 0 NIL <付属>
* 2D
+ 2D <節-主辞><節-区切:補文><補文><用言:動><動態述語><格解析結果:降る/ふる:動1:ガ/C/雨/0/0/1>
降る ふる 降る 動詞 2 * 0 子音動詞ラ行 10 基本形 2 "代表表記:降る/ふる" <代表表記:降る/ふる><内容語><活用語>
と と と 助詞 9 格助詞 1 * 0 * 0 NIL <付属>
* -1D
+ -1D <節-主辞><節-区切><用言:動><動態述語><格解析結果:思う/おもう:動2:ヲ/C/降る/1/0/1>
思った おもった 思う 動詞 2 * 0 子音動詞ワ行 12 タ形 8 "代表表記:思う/おもう" <代表表記:思う/おもう><内容語><活用語>
。 。 。 特殊 1 句点 1 * 0 * 0 NIL <付属>
EOS
`

// Parser output for 雨が降った。地面が濡れた。
// The second clause carries a discourse relation pointing one sentence back.
const knpDiscourseResult = `# S-ID:1 KNP:4.19
* 1D
+ 1D <体言><係:ガ格>
雨 あめ 雨 名詞 6 普通名詞 1 * 0 * 0 "代表表記:雨/あめ" <代表表記:雨/あめ><内容語>
が が が 助詞 9 格助詞 1 * 0 * 0 NIL <付属>
* -1D
+ -1D <節-主辞><節-区切><用言:動><動態述語><格解析結果:降る/ふる:動1:ガ/C/雨/0/0/1>
降った ふった 降る 動詞 2 * 0 子音動詞ラ行 10 タ形 8 "代表表記:降る/ふる" <代表表記:降る/ふる><内容語><活用語>
。 。 。 特殊 1 句点 1 * 0 * 0 NIL <付属>
EOS
# S-ID:2 KNP:4.19
* 1D
+ 1D <体言><係:ガ格>
地面 じめん 地面 名詞 6 普通名詞 1 * 0 * 0 "代表表記:地面/じめん" <代表表記:地面/じめん><内容語>
が が が 助詞 9 格助詞 1 * 0 * 0 NIL <付属>
* -1D
+ -1D <節-主辞><節-区切><用言:動><動態述語><談話関係:-1/1/1:原因・理由><格解析結果:濡れる/ぬれる:動1:ガ/C/地面/0/0/1>
濡れた ぬれた 濡れる 動詞 2 * 0 母音動詞 1 タ形 8 "代表表記:濡れる/ぬれる" <代表表記:濡れる/ぬれる><内容語><活用語>
。 。 。 特殊 1 句点 1 * 0 * 0 NIL <付属>
EOS
`

// Parser output for 本を読んだ。
// The ガ slot is resolved exophorically to 著者.
const knpExophoraResult = `# S-ID:1 KNP:4.19
* 1D
+ 1D <体言><係:ヲ格>
本 ほん 本 名詞 6 普通名詞 1 * 0 * 0 "代表表記:本/ほん" <代表表記:本/ほん><内容語>
を を を 助詞 9 格助詞 1 * 0 * 0 NIL <付属>
* -1D
+ -1D <節-主辞><節-区切><用言:動><動態述語><格解析結果:読む/よむ:動1:ヲ/C/本/0/0/1;ガ/E/著者/-/-/->
読んだ よんだ 読む 動詞 2 * 0 子音動詞マ行 9 タ形 8 "代表表記:読む/よむ" <代表表記:読む/よむ><内容語><活用語>
。 。 。 特殊 1 句点 1 * 0 * 0 NIL <付属>
EOS
`

// A clause end without any clause head in the sentence; the span yields no
// event.
const knpHeadlessResult = `# S-ID:1 KNP:4.19
* -1D
+ -1D <節-区切><体言>
朝 あさ 朝 名詞 6 時相名詞 10 * 0 * 0 "代表表記:朝/あさ" <代表表記:朝/あさ><内容語>
。 。 。 特殊 1 句点 1 * 0 * 0 NIL <付属>
EOS
`

func parseKNP(t *testing.T, src string) []*knp.Sentence {
	t.Helper()
	sentences, err := knp.ParseResult(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsing analysis: %v", err)
	}
	return sentences
}

func buildGraph(t *testing.T, src string) *EventGraph {
	t.Helper()
	g, err := Build(parseKNP(t, src))
	if err != nil {
		t.Fatalf("building graph: %v", err)
	}
	return g
}
