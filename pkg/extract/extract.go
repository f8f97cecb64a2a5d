package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrPatternNotFound is returned when a required pattern is absent from the
// input, or present with an empty required capture.
var ErrPatternNotFound = errors.New("pattern not found")

// RelocationDelimiter introduces the part of the description that moves to
// the additional information field.
const RelocationDelimiter = `Move to "Additional event information" section below`

var (
	emailPattern = regexp.MustCompile(`Email:[ \t]*([^\r\n]*)`)

	delimiterLine = regexp.MustCompile(regexp.QuoteMeta(RelocationDelimiter) + `(?:\r\n|\n|\r|$)`)
)

// Fields are the values read out of the event description.
type Fields struct {
	LeaderEmail   string
	MoveBelowText string
}

// ExtractLeaderEmail returns the value of the first "Email:" line.
func ExtractLeaderEmail(text string) (string, error) {
	m := emailPattern.FindStringSubmatch(text)
	if m == nil {
		return "", fmt.Errorf("leader email: %w", ErrPatternNotFound)
	}
	email := strings.TrimSpace(m[1])
	if email == "" {
		return "", fmt.Errorf("leader email: empty value: %w", ErrPatternNotFound)
	}
	return email, nil
}

// ExtractRelocatedSection returns everything after the relocation delimiter
// line. The delimiter must end its line; a delimiter with nothing after it
// yields "".
func ExtractRelocatedSection(text string) (string, error) {
	loc := delimiterLine.FindStringIndex(text)
	if loc == nil {
		return "", fmt.Errorf("relocated section: %w", ErrPatternNotFound)
	}
	return text[loc[1]:], nil
}

// ExtractFields runs both extractions. Either failure fails the whole call.
func ExtractFields(text string) (Fields, error) {
	email, err := ExtractLeaderEmail(text)
	if err != nil {
		return Fields{}, err
	}
	moveBelow, err := ExtractRelocatedSection(text)
	if err != nil {
		return Fields{}, err
	}
	return Fields{LeaderEmail: email, MoveBelowText: moveBelow}, nil
}
