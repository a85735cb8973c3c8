package buffer

import "sort"

// lineIndex records the rune offset at which each line starts. starts[0] is
// always 0 and a new line begins after every '\n'.
type lineIndex struct {
	starts []int
}

func newLineIndex(text []rune) *lineIndex {
	li := &lineIndex{starts: []int{0}}
	for i, r := range text {
		if r == '\n' {
			li.starts = append(li.starts, i+1)
		}
	}
	return li
}

func (li *lineIndex) count() int { return len(li.starts) }

// lineOf returns the line containing offset. Offsets past the last line
// start belong to the last line.
func (li *lineIndex) lineOf(offset int) int {
	return sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
}

// update adjusts the index for removed runes at [start, start+removed)
// replaced by inserted. Only the inserted runes are scanned; line starts
// after the edit are shifted by the length delta.
func (li *lineIndex) update(start, removed int, inserted []rune) {
	end := start + removed
	delta := len(inserted) - removed

	// first line start strictly after the edit start
	lo := sort.SearchInts(li.starts, start+1)
	// first line start that survives the removal
	hi := sort.SearchInts(li.starts, end+1)

	var fresh []int
	for i, r := range inserted {
		if r == '\n' {
			fresh = append(fresh, start+i+1)
		}
	}

	tail := li.starts[hi:]
	for i := range tail {
		tail[i] += delta
	}
	if hi-lo == len(fresh) {
		copy(li.starts[lo:hi], fresh)
		return
	}
	next := make([]int, 0, lo+len(fresh)+len(tail))
	next = append(next, li.starts[:lo]...)
	next = append(next, fresh...)
	next = append(next, tail...)
	li.starts = next
}

func (li *lineIndex) equal(other *lineIndex) bool {
	if len(li.starts) != len(other.starts) {
		return false
	}
	for i := range li.starts {
		if li.starts[i] != other.starts[i] {
			return false
		}
	}
	return true
}
