// Package ini implements a streaming, section-scoped lookup of a single
// key in an INI-style configuration document. The document is consumed
// one line at a time and scanning stops as soon as the outcome is known:
// either the key was found in the requested section, or the section ended
// (a new header began, or the document ran out) without it.
//
// Section and key names are compared ignoring ASCII case. Values are
// returned verbatim after trimming surrounding spaces/tabs and stripping
// one matched pair of surrounding double quotes if present.
package ini

import (
	"bufio"
	"errors"
	"os"
)

var (
	// ErrEmptySection is returned when the requested section name is empty.
	ErrEmptySection = errors.New("section name must not be empty")

	// ErrEmptyKey is returned when the requested key name is empty.
	ErrEmptyKey = errors.New("key name must not be empty")
)

// LineSource supplies successive lines of text, without trailing line
// terminators. It is the subset of *bufio.Scanner the lookup needs, so a
// Scanner over any io.Reader satisfies it directly. After Scan returns
// false, Err distinguishes end of input (nil) from a read failure.
type LineSource interface {
	Scan() bool
	Text() string
	Err() error
}

// lookupState tracks where the scan is relative to the requested section.
type lookupState int

const (
	// seeking means the requested section's header hasn't been seen yet.
	seeking lookupState = iota
	// inSection means lines now belong to the requested section.
	inSection
)

// Lookup scans src for the first entry matching key within the section
// named section, comparing both names case-insensitively. It returns the
// entry's trimmed, unquoted value and found=true on a match. It returns
// found=false if the section is missing, or if the section ends (next
// header or end of input) before the key appears. A read failure from src
// is returned as err and is distinct from a not-found result.
//
// Lookup holds no more than the current line and never rewinds: the
// requested section is assumed to appear at most once, so scanning stops
// at the first header following it. Malformed lines (no '=' separator, or
// an empty key) are skipped, never treated as errors.
func Lookup(src LineSource, section, key string) (value string, found bool, err error) {
	if section == "" {
		return "", false, ErrEmptySection
	}
	if key == "" {
		return "", false, ErrEmptyKey
	}

	state := seeking
	for src.Scan() {
		name, class := classify(src.Text())
		switch class {
		case lineBlank, lineComment:
			continue
		case lineHeader:
			if state == inSection {
				// The requested section ended without the key.
				return "", false, nil
			}
			if equalFoldASCII(name, section) {
				state = inSection
			}
		case lineCandidate:
			if state != inSection {
				continue
			}
			entry, ok := parseEntry(src.Text())
			if ok && equalFoldASCII(entry.Key, key) {
				return entry.Value, true, nil
			}
		}
	}
	if err := src.Err(); err != nil {
		return "", false, err
	}
	return "", false, nil
}

// LookupFile opens the file at path and performs a Lookup over its lines.
// An unreadable file surfaces as an error, distinct from a missing
// section or key.
func LookupFile(path, section, key string) (value string, found bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer f.Close()
	return Lookup(bufio.NewScanner(f), section, key)
}
