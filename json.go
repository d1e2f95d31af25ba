package eventgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// The JSON form is the interchange format: everything a consumer needs to
// read events and relations, without the parser analysis behind them. A graph
// loaded from JSON is detached; operations that recompute surfaces from the
// analysis return ErrDetached.

type jsonGraph struct {
	Sentences []jsonSentence `json:"sentences"`
	Events    []jsonEvent    `json:"events"`
	Relations []jsonRelation `json:"relations"`
}

type jsonSentence struct {
	SSID  int    `json:"ssid"`
	SID   string `json:"sid"`
	Surf  string `json:"surf"`
	Mrphs string `json:"mrphs"`
	Reps  string `json:"reps"`
}

type jsonEvent struct {
	EventID       int    `json:"event_id"`
	SSID          int    `json:"ssid"`
	SID           string `json:"sid"`
	ParentEventID int    `json:"parent_event_id"`

	Surf                    string `json:"surf"`
	SurfWithMark            string `json:"surf_with_mark"`
	Mrphs                   string `json:"mrphs"`
	MrphsWithMark           string `json:"mrphs_with_mark"`
	NormalizedSurf          string `json:"normalized_surf"`
	NormalizedSurfWithMark  string `json:"normalized_surf_with_mark"`
	NormalizedMrphs         string `json:"normalized_mrphs"`
	NormalizedMrphsWithMark string `json:"normalized_mrphs_with_mark"`

	NormalizedMrphsWithoutExophora         string `json:"normalized_mrphs_without_exophora"`
	NormalizedMrphsWithMarkWithoutExophora string `json:"normalized_mrphs_with_mark_without_exophora"`

	Reps                   string   `json:"reps"`
	RepsWithMark           string   `json:"reps_with_mark"`
	NormalizedReps         string   `json:"normalized_reps"`
	NormalizedRepsWithMark string   `json:"normalized_reps_with_mark"`
	ContentRepList         []string `json:"content_rep_list"`

	PAS      jsonPAS  `json:"pas"`
	Features Features `json:"features"`
}

type jsonPAS struct {
	Predicate jsonPredicate             `json:"predicate"`
	Arguments map[string][]jsonArgument `json:"argument"`
}

type jsonPredicate struct {
	Surf               string        `json:"surf"`
	NormalizedSurf     string        `json:"normalized_surf"`
	Mrphs              string        `json:"mrphs"`
	NormalizedMrphs    string        `json:"normalized_mrphs"`
	Reps               string        `json:"reps"`
	NormalizedReps     string        `json:"normalized_reps"`
	StandardReps       string        `json:"standard_reps"`
	Type               string        `json:"type"`
	AdnominalEventIDs  []int         `json:"adnominal_event_ids"`
	ComplementEventIDs []int         `json:"complement_event_ids"`
	Children           []ChildPhrase `json:"children"`
}

type jsonArgument struct {
	Surf               string        `json:"surf"`
	NormalizedSurf     string        `json:"normalized_surf"`
	Mrphs              string        `json:"mrphs"`
	NormalizedMrphs    string        `json:"normalized_mrphs"`
	Reps               string        `json:"reps"`
	NormalizedReps     string        `json:"normalized_reps"`
	HeadReps           string        `json:"head_reps"`
	EventHead          bool          `json:"event_head"`
	EntityID           int           `json:"entity_id"`
	Flag               string        `json:"flag"`
	SentenceDist       int           `json:"sdist"`
	AdnominalEventIDs  []int         `json:"adnominal_event_ids"`
	ComplementEventIDs []int         `json:"complement_event_ids"`
	Children           []ChildPhrase `json:"children"`
}

type jsonRelation struct {
	ModifierEventID int    `json:"event_id"`
	HeadEventID     int    `json:"parent_event_id"`
	Label           string `json:"label"`
	Surf            string `json:"surf"`
	Reliable        bool   `json:"reliable"`
	HeadTID         int    `json:"head_tid"`
}

// SaveJSON writes the graph in the lossy JSON form.
func (g *EventGraph) SaveJSON(w io.Writer) error {
	doc := jsonGraph{
		Sentences: make([]jsonSentence, 0, len(g.sentences)),
		Events:    make([]jsonEvent, 0, len(g.events)),
		Relations: make([]jsonRelation, 0, len(g.relations)),
	}
	for _, s := range g.sentences {
		doc.Sentences = append(doc.Sentences, jsonSentence{
			SSID: s.SSID, SID: s.SID, Surf: s.Surf, Mrphs: s.Mrphs, Reps: s.Reps,
		})
	}
	for _, e := range g.events {
		doc.Events = append(doc.Events, encodeEvent(e))
	}
	for _, r := range g.relations {
		doc.Relations = append(doc.Relations, jsonRelation{
			ModifierEventID: r.Modifier.ID,
			HeadEventID:     r.Head.ID,
			Label:           string(r.Label),
			Surf:            r.Surface,
			Reliable:        r.Reliable,
			HeadTID:         r.HeadTID,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// SaveJSONFile writes the JSON form to a file.
func (g *EventGraph) SaveJSONFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := g.SaveJSON(f); err != nil {
		return err
	}
	return f.Close()
}

func encodeEvent(e *Event) jsonEvent {
	je := jsonEvent{
		EventID:       e.ID,
		SSID:          e.SSID,
		SID:           e.sentence.SID,
		ParentEventID: e.ParentID,

		Surf:                    e.Surf,
		SurfWithMark:            e.SurfWithMark,
		Mrphs:                   e.Mrphs,
		MrphsWithMark:           e.MrphsWithMark,
		NormalizedSurf:          e.NormalizedSurf,
		NormalizedSurfWithMark:  e.NormalizedSurfWithMark,
		NormalizedMrphs:         e.NormalizedMrphs,
		NormalizedMrphsWithMark: e.NormalizedMrphsWithMark,

		NormalizedMrphsWithoutExophora:         e.NormalizedMrphsWithoutExophora,
		NormalizedMrphsWithMarkWithoutExophora: e.NormalizedMrphsWithMarkWithoutExophora,

		Reps:                   e.Reps,
		RepsWithMark:           e.RepsWithMark,
		NormalizedReps:         e.NormalizedReps,
		NormalizedRepsWithMark: e.NormalizedRepsWithMark,
		ContentRepList:         e.ContentRepList,

		Features: e.Features,
	}
	p := e.PAS.Predicate
	je.PAS.Predicate = jsonPredicate{
		Surf:               p.Surf,
		NormalizedSurf:     p.NormalizedSurf,
		Mrphs:              p.Mrphs,
		NormalizedMrphs:    p.NormalizedMrphs,
		Reps:               p.Reps,
		NormalizedReps:     p.NormalizedReps,
		StandardReps:       p.StandardReps,
		Type:               p.Type,
		AdnominalEventIDs:  p.AdnominalEventIDs,
		ComplementEventIDs: p.ComplementEventIDs,
		Children:           p.Children,
	}
	je.PAS.Arguments = make(map[string][]jsonArgument, len(e.PAS.Arguments))
	for _, c := range e.PAS.Cases() {
		for _, a := range e.PAS.Arguments[c] {
			je.PAS.Arguments[string(c)] = append(je.PAS.Arguments[string(c)], jsonArgument{
				Surf:               a.Surf,
				NormalizedSurf:     a.NormalizedSurf,
				Mrphs:              a.Mrphs,
				NormalizedMrphs:    a.NormalizedMrphs,
				Reps:               a.Reps,
				NormalizedReps:     a.NormalizedReps,
				HeadReps:           a.HeadReps,
				EventHead:          a.EventHead,
				EntityID:           a.EntityID,
				Flag:               a.Flag,
				SentenceDist:       a.SentenceDist,
				AdnominalEventIDs:  a.AdnominalEventIDs,
				ComplementEventIDs: a.ComplementEventIDs,
				Children:           a.Children,
			})
		}
	}
	return je
}

// LoadJSON reads a graph from the lossy JSON form. The result is detached:
// it has no parser analysis, so surfaces are read back as stored and
// modifier merges cannot be recomputed.
func LoadJSON(r io.Reader) (*EventGraph, error) {
	var doc jsonGraph
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGraph, err)
	}

	g := &EventGraph{
		eventByID: make(map[int]*Event, len(doc.Events)),
		detached:  true,
	}
	for i, js := range doc.Sentences {
		if js.SSID != i {
			return nil, fmt.Errorf("%w: sentences[%d].ssid is %d, want %d", ErrInvalidGraph, i, js.SSID, i)
		}
		g.sentences = append(g.sentences, &Sentence{
			SID: js.SID, SSID: js.SSID, Surf: js.Surf, Mrphs: js.Mrphs, Reps: js.Reps,
			graph: g,
		})
	}
	for i, je := range doc.Events {
		if je.SSID < 0 || je.SSID >= len(g.sentences) {
			return nil, fmt.Errorf("%w: events[%d].ssid %d out of range", ErrInvalidGraph, i, je.SSID)
		}
		if _, dup := g.eventByID[je.EventID]; dup {
			return nil, fmt.Errorf("%w: events[%d].event_id %d duplicated", ErrInvalidGraph, i, je.EventID)
		}
		if je.Surf == "" {
			return nil, fmt.Errorf("%w: events[%d].surf missing", ErrInvalidGraph, i)
		}
		e := decodeEvent(je, g.sentences[je.SSID])
		g.events = append(g.events, e)
		g.eventByID[e.ID] = e
		e.sentence.events = append(e.sentence.events, e)
	}
	for i, jr := range doc.Relations {
		if jr.Label == "" {
			return nil, fmt.Errorf("%w: relations[%d].label missing", ErrInvalidGraph, i)
		}
		modifier, ok := g.eventByID[jr.ModifierEventID]
		if !ok {
			return nil, fmt.Errorf("%w: relations[%d].event_id %d unknown", ErrInvalidGraph, i, jr.ModifierEventID)
		}
		head, ok := g.eventByID[jr.HeadEventID]
		if !ok {
			return nil, fmt.Errorf("%w: relations[%d].parent_event_id %d unknown", ErrInvalidGraph, i, jr.HeadEventID)
		}
		r := &Relation{
			Modifier: modifier,
			Head:     head,
			Label:    Label(jr.Label),
			Surface:  jr.Surf,
			Reliable: jr.Reliable,
			HeadTID:  jr.HeadTID,
		}
		g.relations = append(g.relations, r)
		modifier.Outgoing = append(modifier.Outgoing, r)
		head.Incoming = append(head.Incoming, r)
	}
	return g, nil
}

// LoadJSONFile reads the JSON form from a file.
func LoadJSONFile(path string) (*EventGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return LoadJSON(f)
}

func decodeEvent(je jsonEvent, sent *Sentence) *Event {
	e := &Event{
		ID:       je.EventID,
		SSID:     je.SSID,
		ParentID: je.ParentEventID,
		StartTID: -1,
		HeadTID:  -1,
		EndTID:   -1,

		Surf:                    je.Surf,
		SurfWithMark:            je.SurfWithMark,
		Mrphs:                   je.Mrphs,
		MrphsWithMark:           je.MrphsWithMark,
		NormalizedSurf:          je.NormalizedSurf,
		NormalizedSurfWithMark:  je.NormalizedSurfWithMark,
		NormalizedMrphs:         je.NormalizedMrphs,
		NormalizedMrphsWithMark: je.NormalizedMrphsWithMark,

		NormalizedMrphsWithoutExophora:         je.NormalizedMrphsWithoutExophora,
		NormalizedMrphsWithMarkWithoutExophora: je.NormalizedMrphsWithMarkWithoutExophora,

		Reps:                   je.Reps,
		RepsWithMark:           je.RepsWithMark,
		NormalizedReps:         je.NormalizedReps,
		NormalizedRepsWithMark: je.NormalizedRepsWithMark,
		ContentRepList:         je.ContentRepList,

		Features: je.Features,
		sentence: sent,
	}
	jp := je.PAS.Predicate
	e.PAS = &PAS{
		Predicate: &Predicate{
			Surf:               jp.Surf,
			NormalizedSurf:     jp.NormalizedSurf,
			Mrphs:              jp.Mrphs,
			NormalizedMrphs:    jp.NormalizedMrphs,
			Reps:               jp.Reps,
			NormalizedReps:     jp.NormalizedReps,
			StandardReps:       jp.StandardReps,
			Type:               jp.Type,
			AdnominalEventIDs:  jp.AdnominalEventIDs,
			ComplementEventIDs: jp.ComplementEventIDs,
			Children:           jp.Children,
		},
		Arguments: make(map[Case][]*Argument, len(je.PAS.Arguments)),
	}
	for c, jas := range je.PAS.Arguments {
		for _, ja := range jas {
			e.PAS.Arguments[Case(c)] = append(e.PAS.Arguments[Case(c)], &Argument{
				Surf:               ja.Surf,
				NormalizedSurf:     ja.NormalizedSurf,
				Mrphs:              ja.Mrphs,
				NormalizedMrphs:    ja.NormalizedMrphs,
				Reps:               ja.Reps,
				NormalizedReps:     ja.NormalizedReps,
				HeadReps:           ja.HeadReps,
				EventHead:          ja.EventHead,
				EntityID:           ja.EntityID,
				Flag:               ja.Flag,
				SentenceDist:       ja.SentenceDist,
				AdnominalEventIDs:  ja.AdnominalEventIDs,
				ComplementEventIDs: ja.ComplementEventIDs,
				Children:           ja.Children,
			})
		}
	}
	return e
}
