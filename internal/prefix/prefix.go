// Package prefix implements the word-prefix index used to filter keys as the
// user types.
package prefix

import (
	"sort"
	"strings"
	"unicode"
)

type token struct {
	text string
	pos  int
}

// Index maps lower-cased key tokens back to key positions.
type Index struct {
	tokens []token
	size   int
}

// New indexes keys; a match reports the position of the key in this slice.
// Each key contributes its whole text plus every word separated by
// whitespace or one of / - _ . :
func New(keys []string) *Index {
	x := &Index{size: len(keys)}
	for pos, k := range keys {
		for _, t := range tokenize(k) {
			x.tokens = append(x.tokens, token{text: t, pos: pos})
		}
	}
	sort.Slice(x.tokens, func(i, j int) bool {
		if x.tokens[i].text != x.tokens[j].text {
			return x.tokens[i].text < x.tokens[j].text
		}
		return x.tokens[i].pos < x.tokens[j].pos
	})
	return x
}

func isSep(r rune) bool {
	switch r {
	case '/', '-', '_', '.', ':':
		return true
	}
	return unicode.IsSpace(r)
}

func tokenize(key string) []string {
	lower := strings.ToLower(key)
	out := []string{lower}
	seen := map[string]bool{lower: true}
	for _, w := range strings.FieldsFunc(lower, isSep) {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// Match returns, in ascending order, the positions of keys where every
// whitespace-separated word of query is a prefix of one of the key's tokens.
// Matching ignores case. A blank query matches every key.
func (x *Index) Match(query string) []int {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		all := make([]int, x.size)
		for i := range all {
			all[i] = i
		}
		return all
	}
	var hits map[int]bool
	for _, w := range words {
		cur := x.lookup(w)
		if hits != nil {
			for pos := range cur {
				if !hits[pos] {
					delete(cur, pos)
				}
			}
		}
		hits = cur
		if len(hits) == 0 {
			return nil
		}
	}
	out := make([]int, 0, len(hits))
	for pos := range hits {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}

func (x *Index) lookup(prefix string) map[int]bool {
	i := sort.Search(len(x.tokens), func(i int) bool { return x.tokens[i].text >= prefix })
	hits := map[int]bool{}
	for ; i < len(x.tokens) && strings.HasPrefix(x.tokens[i].text, prefix); i++ {
		hits[x.tokens[i].pos] = true
	}
	return hits
}
