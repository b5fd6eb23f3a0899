package pricing

import (
	"sort"
	"strconv"
	"strings"
)

// OptionSet is a canonical, comparable set of modifier option ids. Two sets
// built from the same ids compare equal regardless of the order the ids were
// given in. Ids are length-prefixed internally so no id content can collide
// with another combination.
type OptionSet struct {
	encoded string
}

func NewOptionSet(ids ...string) OptionSet {
	if len(ids) == 0 {
		return OptionSet{}
	}
	sorted := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	var b strings.Builder
	for _, id := range sorted {
		b.WriteString(strconv.Itoa(len(id)))
		b.WriteByte(':')
		b.WriteString(id)
	}
	return OptionSet{encoded: b.String()}
}

func (s OptionSet) IsEmpty() bool {
	return s.encoded == ""
}

// IDs returns the option ids in canonical (sorted) order.
func (s OptionSet) IDs() []string {
	ids, _ := decodeOptionSet(s.encoded)
	return ids
}

func (s OptionSet) Len() int {
	return len(s.IDs())
}

// Encoded returns the canonical encoding; ParseOptionSet reverses it.
func (s OptionSet) Encoded() string {
	return s.encoded
}

func ParseOptionSet(encoded string) (OptionSet, error) {
	ids, err := decodeOptionSet(encoded)
	if err != nil {
		return OptionSet{}, err
	}
	set := NewOptionSet(ids...)
	if set.encoded != encoded {
		return OptionSet{}, errMalformedOptionSet
	}
	return set, nil
}

func decodeOptionSet(encoded string) ([]string, error) {
	var ids []string
	rest := encoded
	for rest != "" {
		colon := strings.IndexByte(rest, ':')
		if colon <= 0 {
			return nil, errMalformedOptionSet
		}
		n, err := strconv.Atoi(rest[:colon])
		if err != nil || n < 0 || colon+1+n > len(rest) {
			return nil, errMalformedOptionSet
		}
		ids = append(ids, rest[colon+1:colon+1+n])
		rest = rest[colon+1+n:]
	}
	return ids, nil
}
