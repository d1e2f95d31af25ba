package knp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformed is returned when the analysis text violates the KNP result
// format.
var ErrMalformed = errors.New("knp: malformed analysis")

// ParseResult reads a stream of KNP analysis output and returns one
// Sentence per EOS-terminated block.
func ParseResult(r io.Reader) ([]*Sentence, error) {
	var sentences []*Sentence

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var cur *Sentence
	bunsetsuID := -1
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		if cur == nil {
			cur = &Sentence{}
			bunsetsuID = -1
		}

		switch {
		case strings.HasPrefix(line, "#"):
			cur.Comment = line
			cur.SID = parseSID(line)

		case line == "EOS":
			if len(cur.Phrases) > 0 {
				sentences = append(sentences, cur)
			}
			cur = nil

		case strings.HasPrefix(line, "* "):
			bunsetsuID++

		case strings.HasPrefix(line, "+ "):
			phrase, err := parsePhraseLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			phrase.ID = len(cur.Phrases)
			phrase.BunsetsuID = bunsetsuID
			cur.Phrases = append(cur.Phrases, *phrase)

		default:
			if len(cur.Phrases) == 0 {
				return nil, fmt.Errorf("line %d: %w: morpheme before phrase", lineNo, ErrMalformed)
			}
			m, err := parseMorphemeLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			p := &cur.Phrases[len(cur.Phrases)-1]
			p.Morphemes = append(p.Morphemes, *m)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading analysis: %w", err)
	}
	if cur != nil && len(cur.Phrases) > 0 {
		return nil, fmt.Errorf("%w: missing EOS", ErrMalformed)
	}
	return sentences, nil
}

// ReadResultFile reads a file of KNP analysis results.
func ReadResultFile(path string) ([]*Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening analysis file: %w", err)
	}
	defer f.Close()
	return ParseResult(f)
}

// parseSID extracts the sentence ID from a comment line like
// "# S-ID:w201106-0000060050-1 ...".
func parseSID(line string) string {
	i := strings.Index(line, "S-ID:")
	if i < 0 {
		return ""
	}
	rest := line[i+len("S-ID:"):]
	if j := strings.IndexByte(rest, ' '); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

// parsePhraseLine parses a tag line of the form "+ 4D <features>".
func parsePhraseLine(line string) (*Phrase, error) {
	rest := strings.TrimPrefix(line, "+ ")
	dep := rest
	featStr := ""
	if i := strings.IndexByte(rest, '<'); i >= 0 {
		dep = strings.TrimSpace(rest[:i])
		featStr = rest[i:]
	} else {
		dep = strings.TrimSpace(dep)
	}
	if dep == "" {
		return nil, fmt.Errorf("%w: phrase line %q", ErrMalformed, line)
	}

	depType := dep[len(dep)-1:]
	parentID, err := strconv.Atoi(dep[:len(dep)-1])
	if err != nil {
		return nil, fmt.Errorf("%w: dependency %q", ErrMalformed, dep)
	}

	phrase := &Phrase{
		ParentID: parentID,
		DepType:  depType,
		Features: ParseFeatures(featStr),
	}
	if v := phrase.Features.Get("格解析結果"); v != "" {
		phrase.PAS = parseCaseAnalysis(v)
	} else if v := phrase.Features.Get("述語項構造"); v != "" {
		phrase.PAS = parseCaseAnalysis(v)
	}
	return phrase, nil
}

// parseMorphemeLine parses a JUMAN morpheme line:
//
//	長い ながい 長い 形容詞 3 * 0 イ形容詞アウオ段 18 基本形 2 "代表表記:長い/ながい" <代表表記:長い/ながい><活用語>
//
// Eleven fixed fields, then the quoted semantic information, then angle
// bracketed features.
func parseMorphemeLine(line string) (*Morpheme, error) {
	featStr := ""
	head := line
	if i := strings.IndexByte(line, '<'); i >= 0 {
		head = line[:i]
		featStr = line[i:]
	}

	fields := strings.Fields(head)
	if len(fields) < 11 {
		return nil, fmt.Errorf("%w: morpheme line %q", ErrMalformed, line)
	}

	sem := strings.Join(fields[11:], " ")
	sem = strings.Trim(sem, `"`)
	if sem == "NIL" {
		sem = ""
	}

	return &Morpheme{
		Surface:   fields[0],
		Reading:   fields[1],
		Lemma:     fields[2],
		POS:       fields[3],
		POSSub:    fields[5],
		ConjType:  fields[7],
		ConjForm:  fields[9],
		Semantics: sem,
		Features:  ParseFeatures(featStr),
	}, nil
}
