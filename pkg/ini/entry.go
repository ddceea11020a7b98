package ini

import "strings"

// Entry is a single key/value pair parsed from one line. The key is
// always non-empty; the value may be empty (`key=` is a legal entry).
type Entry struct {
	Key   string
	Value string
}

// parseEntry attempts to parse line as a key/value entry. It reports
// ok=false for lines that aren't entries: no '=' separator at all, or an
// empty key before the first '='. The separator's presence is checked
// before any substring is taken, so a malformed line can never scan past
// the end of the string. The value is trimmed and then unquoted.
func parseEntry(line string) (entry Entry, ok bool) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return Entry{}, false
	}
	key := strings.Trim(line[:i], whitespace)
	if key == "" {
		return Entry{}, false
	}
	value := unquote(strings.Trim(line[i+1:], whitespace))
	return Entry{Key: key, Value: value}, true
}

// unquote strips exactly one matched pair of surrounding double quotes.
// A lone quote (e.g. `"unterminated`) is left in place, and no escape
// processing or recursive stripping is done.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
