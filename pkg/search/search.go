// Package search finds literal text in a document by rune offset.
package search

import (
	"unicode"

	"example.com/tabedit/pkg/buffer"
)

func fold(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func smartCase(query string) bool {
	for _, r := range query {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// FindAll returns the non-overlapping occurrences of query in text as rune
// ranges. The search ignores case unless query has an upper case letter.
// An empty query has no matches.
func FindAll(text, query string) []buffer.Range {
	if query == "" {
		return nil
	}
	hay, needle := []rune(text), []rune(query)
	if !smartCase(query) {
		hay, needle = fold(hay), fold(needle)
	}
	var res []buffer.Range
	for i := 0; i+len(needle) <= len(hay); {
		if equalAt(hay, needle, i) {
			res = append(res, buffer.Range{Start: i, End: i + len(needle)})
			i += len(needle)
			continue
		}
		i++
	}
	return res
}

func equalAt(hay, needle []rune, at int) bool {
	for j, r := range needle {
		if hay[at+j] != r {
			return false
		}
	}
	return true
}

// Next returns the index of the first match starting at or after pos,
// wrapping to the first match. It returns -1 when there are none.
func Next(ranges []buffer.Range, pos int) int {
	if len(ranges) == 0 {
		return -1
	}
	for i, r := range ranges {
		if r.Start >= pos {
			return i
		}
	}
	return 0
}
