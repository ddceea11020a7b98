package ini

import "strings"

// cutset for trimming: ASCII space and tab only. Line terminators are the
// line source's responsibility and are never part of a line.
const whitespace = " \t"

// lineClass is the classification of one raw line.
type lineClass int

const (
	lineBlank lineClass = iota
	lineComment
	lineHeader
	lineCandidate
)

// classify determines what kind of line raw is after trimming. For
// lineHeader it also returns the trimmed section name between the
// brackets; for every other class name is empty.
func classify(raw string) (name string, class lineClass) {
	line := strings.Trim(raw, whitespace)
	if line == "" {
		return "", lineBlank
	}
	switch line[0] {
	case ';', '#':
		return "", lineComment
	case '[':
		// "[x]" is the shortest possible header.
		if len(line) >= 3 && line[len(line)-1] == ']' {
			return strings.Trim(line[1:len(line)-1], whitespace), lineHeader
		}
	}
	return "", lineCandidate
}

// equalFoldASCII reports whether a and b are equal ignoring ASCII case.
// Strings of different length are never equal, so the comparison
// short-circuits on length without folding anything.
func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
