package ini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEntry(t *testing.T) {
	tests := map[string]struct {
		line          string
		expectedEntry Entry
		expectedOK    bool
	}{
		"simple entry": {
			line:          "key=value",
			expectedEntry: Entry{Key: "key", Value: "value"},
			expectedOK:    true,
		},
		"entry with whitespace": {
			line:          "  key \t=   value  ",
			expectedEntry: Entry{Key: "key", Value: "value"},
			expectedOK:    true,
		},
		"quoted value": {
			line:          `email = "somebody@domain.com"`,
			expectedEntry: Entry{Key: "email", Value: "somebody@domain.com"},
			expectedOK:    true,
		},
		"quoted value with spaces": {
			line:          `greeting = "hello there"`,
			expectedEntry: Entry{Key: "greeting", Value: "hello there"},
			expectedOK:    true,
		},
		"unterminated quote kept verbatim": {
			line:          `key = "unterminated`,
			expectedEntry: Entry{Key: "key", Value: `"unterminated`},
			expectedOK:    true,
		},
		"empty value is legal": {
			line:          "key=",
			expectedEntry: Entry{Key: "key", Value: ""},
			expectedOK:    true,
		},
		"empty quoted value": {
			line:          `key=""`,
			expectedEntry: Entry{Key: "key", Value: ""},
			expectedOK:    true,
		},
		"value containing equals splits on first": {
			line:          "connstr=host=localhost;port=5432",
			expectedEntry: Entry{Key: "connstr", Value: "host=localhost;port=5432"},
			expectedOK:    true,
		},
		"no separator": {
			line:       "not an entry",
			expectedOK: false,
		},
		"empty key": {
			line:       "=value",
			expectedOK: false,
		},
		"whitespace key": {
			line:       "   =value",
			expectedOK: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			entry, ok := parseEntry(tt.line)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedEntry, entry)
		})
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{`"value"`, "value"},
		{`""`, ""},
		{`"`, `"`},
		{`""value""`, `"value"`}, // only one pair is stripped
		{`"half`, `"half`},
		{`half"`, `half"`},
		{"bareword", "bareword"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.expected, unquote(tt.in), "unquote(%q)", tt.in)
	}
}
