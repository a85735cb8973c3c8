package buffer

// TextStorage defines the minimal storage operations used by Buffer.
// Positions and lengths are expressed in runes (not bytes).
type TextStorage interface {
	Insert(pos int, s []rune) error
	Delete(start, end int) error
	Slice(start, end int) []rune
	RuneAt(i int) rune
	Len() int
}

var _ TextStorage = (*GapBuffer)(nil)
