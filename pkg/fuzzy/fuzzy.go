// Package fuzzy ranks file paths against a typed query.
package fuzzy

import (
	"context"
	"sort"
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Result is one matching candidate. Positions are the rune indexes of the
// matched query characters, ascending.
type Result struct {
	Path      string
	Score     int
	Positions []int
}

// earlyBonus is the most extra score a match starting at index 0 gets; it
// falls by one per rune of delay.
const earlyBonus = 8

const checkEvery = 256

var initOnce sync.Once

func setup() {
	// path scheme: bonus after '/' and at the start of the file name
	initOnce.Do(func() { algo.Init("path") })
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Match ranks candidates against query, best first. Candidates the query
// is not a subsequence of are left out. Matching is case insensitive
// unless the query has an upper case letter.
func Match(query string, candidates []string) []Result {
	out, _ := MatchContext(context.Background(), query, candidates)
	return out
}

// MatchContext is Match that stops early with ctx.Err() when ctx is done.
func MatchContext(ctx context.Context, query string, candidates []string) ([]Result, error) {
	setup()
	caseSensitive := hasUpper(query)
	pattern := []rune(query)
	if !caseSensitive {
		for i, r := range pattern {
			pattern[i] = unicode.ToLower(r)
		}
	}
	slab := util.MakeSlab(100*1024, 2048)

	var out []Result
	for i, c := range candidates {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if len(pattern) == 0 {
			out = append(out, Result{Path: c})
			continue
		}
		chars := util.ToChars([]byte(c))
		res, pos := algo.FuzzyMatchV2(caseSensitive, false, true, &chars, pattern, true, slab)
		if res.Start < 0 {
			continue
		}
		r := Result{Path: c, Score: res.Score}
		if res.Start < earlyBonus {
			r.Score += earlyBonus - res.Start
		}
		if pos != nil {
			r.Positions = append([]int(nil), (*pos)...)
			sort.Ints(r.Positions)
		}
		out = append(out, r)
	}
	sortResults(out)
	return out, nil
}

func sortResults(rs []Result) {
	sort.Slice(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Path) != len(b.Path) {
			return len(a.Path) < len(b.Path)
		}
		return a.Path < b.Path
	})
}
