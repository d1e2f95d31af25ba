package knp

import "strings"

// FeatureSet holds the parser's feature annotations for a phrase or
// morpheme. Features appear in the analysis as a run of angle-bracketed
// entries ("<節-主辞><格解析結果:...>"); order is preserved because some
// consumers scan prefixed families of features in parser order.
type FeatureSet struct {
	entries []string
}

// ParseFeatures parses a feature string of the form "<a><b:c>..." into a
// FeatureSet. Text outside angle brackets is ignored.
func ParseFeatures(raw string) FeatureSet {
	var fs FeatureSet
	for {
		i := strings.IndexByte(raw, '<')
		if i < 0 {
			break
		}
		j := strings.IndexByte(raw[i:], '>')
		if j < 0 {
			break
		}
		entry := raw[i+1 : i+j]
		if entry != "" {
			fs.entries = append(fs.entries, entry)
		}
		raw = raw[i+j+1:]
	}
	return fs
}

// NewFeatureSet builds a FeatureSet from bare entries ("節-主辞",
// "格解析結果:..."). Used by callers that construct analyses directly.
func NewFeatureSet(entries ...string) FeatureSet {
	return FeatureSet{entries: append([]string(nil), entries...)}
}

// Has reports whether a feature with the given key is present, with or
// without a value.
func (fs FeatureSet) Has(key string) bool {
	for _, e := range fs.entries {
		if e == key || strings.HasPrefix(e, key+":") {
			return true
		}
	}
	return false
}

// Get returns the value of the first feature with the given key
// ("key:value" or "key-value"), or the empty string.
func (fs FeatureSet) Get(key string) string {
	for _, e := range fs.entries {
		if e == key {
			return ""
		}
		if strings.HasPrefix(e, key+":") {
			return e[len(key)+1:]
		}
		if strings.HasPrefix(e, key+"-") {
			return e[len(key)+1:]
		}
	}
	return ""
}

// Values returns, in order, the remainders of every feature entry that
// starts with the given prefix. Used for families such as 節-機能- and
// 談話関係; a phrase may carry several.
func (fs FeatureSet) Values(prefix string) []string {
	var vals []string
	for _, e := range fs.entries {
		if strings.HasPrefix(e, prefix) {
			vals = append(vals, e[len(prefix):])
		}
	}
	return vals
}

// Entries returns the raw feature entries in parser order.
func (fs FeatureSet) Entries() []string {
	return append([]string(nil), fs.entries...)
}

// GobEncode implements gob.GobEncoder. Entries are joined in their on-disk
// form, which never contains angle brackets itself.
func (fs FeatureSet) GobEncode() ([]byte, error) {
	return []byte(fs.String()), nil
}

// GobDecode implements gob.GobDecoder.
func (fs *FeatureSet) GobDecode(data []byte) error {
	*fs = ParseFeatures(string(data))
	return nil
}

// String reassembles the feature set in its on-disk form.
func (fs FeatureSet) String() string {
	var b strings.Builder
	for _, e := range fs.entries {
		b.WriteByte('<')
		b.WriteString(e)
		b.WriteByte('>')
	}
	return b.String()
}
