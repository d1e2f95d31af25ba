package eventgraph

import "strings"

// Label names the linguistic relation an edge carries. Discourse relations
// use the "discourse:<sense>" form so new parser senses pass through without
// a code change.
type Label string

const (
	LabelCause      Label = "cause"
	LabelConcession Label = "concession"
	LabelCondition  Label = "condition"
	LabelPurpose    Label = "purpose"
	LabelTemporal   Label = "temporal"
	LabelAdnominal  Label = "adnominal"
	LabelComplement Label = "complement"
	LabelParallel   Label = "parallel"
	LabelDependency Label = "dependency"
)

// DiscourseLabel builds the label for a parser discourse sense.
func DiscourseLabel(sense string) Label {
	return Label("discourse:" + sense)
}

// IsDiscourse reports whether the label came from discourse-relation
// annotation rather than syntax.
func (l Label) IsDiscourse() bool {
	return strings.HasPrefix(string(l), "discourse:")
}

// clauseFunctionLabels maps the parser's clause-function annotations to
// relation labels. Functions outside this table yield no relation.
var clauseFunctionLabels = map[string]Label{
	"原因・理由": LabelCause,
	"逆接":    LabelConcession,
	"条件":    LabelCondition,
	"目的":    LabelPurpose,
	"時間経過":  LabelTemporal,
}

// discourseSenseLabels normalizes the parser's discourse sense names to the
// same English vocabulary as clause functions. Unknown senses pass through
// under the discourse: prefix.
var discourseSenseLabels = map[string]Label{
	"原因・理由": DiscourseLabel("cause"),
	"逆接":    DiscourseLabel("concession"),
	"条件":    DiscourseLabel("condition"),
	"目的":    DiscourseLabel("purpose"),
	"根拠":    DiscourseLabel("ground"),
	"対比":    DiscourseLabel("contrast"),
}

func discourseLabel(sense string) Label {
	if l, ok := discourseSenseLabels[sense]; ok {
		return l
	}
	return DiscourseLabel(sense)
}

// connectiveLabels classifies a clause-final connective marker when the
// parser reports no clause function. Longer markers are listed before their
// prefixes and matched first.
var connectiveLabels = []struct {
	marker string
	label  Label
}{
	{"ので", LabelCause},
	{"から", LabelCause},
	{"ため", LabelCause},
	{"のに", LabelConcession},
	{"けれど", LabelConcession},
	{"けど", LabelConcession},
	{"が", LabelConcession},
	{"たら", LabelCondition},
	{"なら", LabelCondition},
	{"ば", LabelCondition},
	{"と", LabelCondition},
	{"ように", LabelPurpose},
	{"ために", LabelPurpose},
	{"ながら", LabelTemporal},
	{"つつ", LabelTemporal},
}

func connectiveLabel(marker string) (Label, bool) {
	for _, c := range connectiveLabels {
		if c.marker == marker {
			return c.label, true
		}
	}
	return "", false
}

// Relation is a directed, labeled edge from a modifier event to its head
// event.
type Relation struct {
	Modifier *Event
	Head     *Event

	Label   Label
	Surface string // connective marker, empty when none applies

	// Reliable marks relations whose modifier and head are the last two
	// events of their sentence, where the dependency analysis is most
	// trustworthy.
	Reliable bool

	// HeadTID is the phrase the modifier attaches to inside the head
	// event, -1 when the attachment is the head event's own head.
	HeadTID int
}

func newRelation(modifier, head *Event, label Label, surface string, headTID int) *Relation {
	return &Relation{
		Modifier: modifier,
		Head:     head,
		Label:    label,
		Surface:  surface,
		Reliable: !label.IsDiscourse() && isReliable(modifier, head),
		HeadTID:  headTID,
	}
}

// isReliable reports whether modifier and head are the final two events of
// the same sentence.
func isReliable(modifier, head *Event) bool {
	if modifier == nil || head == nil || modifier.SSID != head.SSID {
		return false
	}
	sent := modifier.sentence
	if sent == nil || len(sent.events) < 2 {
		return false
	}
	last := sent.events[len(sent.events)-1]
	prev := sent.events[len(sent.events)-2]
	return modifier == prev && head == last
}

// relationKey identifies a relation for duplicate suppression: one label
// per ordered event pair.
type relationKey struct {
	modifier, head int
	label          Label
}

func (r *Relation) key() relationKey {
	return relationKey{modifier: r.Modifier.ID, head: r.Head.ID, label: r.Label}
}
