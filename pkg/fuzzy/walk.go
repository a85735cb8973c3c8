package fuzzy

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultDepth is how many path components deep Candidates looks.
const DefaultDepth = 3

// MaxCandidates caps the listing so huge trees stay responsive.
const MaxCandidates = 20000

// DefaultIgnores are skipped even without a .gitignore.
var DefaultIgnores = []string{".git", ".DS_Store", "Thumbs.db", "*.swp", "*.swo", "*~"}

var errFull = errors.New("fuzzy: candidate limit reached")

func ignoreLines(root string) []string {
	lines := append([]string(nil), DefaultIgnores...)
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return lines
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

// Candidates lists the files under root as slash separated relative paths,
// sorted. Hidden entries and paths matched by root's .gitignore are
// skipped; files deeper than depth components are not listed.
func Candidates(root string, depth int) ([]string, error) {
	if depth <= 0 {
		depth = DefaultDepth
	}
	ign := ignore.CompileIgnoreLines(ignoreLines(root)...)
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// unreadable entries are skipped
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		hidden := strings.HasPrefix(d.Name(), ".")
		n := strings.Count(rel, "/") + 1
		if d.IsDir() {
			if hidden || n >= depth || ign.MatchesPath(rel) || ign.MatchesPath(rel+"/") {
				return fs.SkipDir
			}
			return nil
		}
		if hidden || ign.MatchesPath(rel) {
			return nil
		}
		if len(out) >= MaxCandidates {
			return errFull
		}
		out = append(out, rel)
		return nil
	})
	if err != nil && !errors.Is(err, errFull) {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}
