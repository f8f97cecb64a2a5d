package extract

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	lineBreaks = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

	relocatedTail = regexp.MustCompile(`(?s)Move to (?:"|&quot;)Additional event information(?:"|&quot;).*`)

	multiSpace = regexp.MustCompile(` {2,}`)
)

// Cleaner rewrites raw description markup into the form saved back to the
// editor.
type Cleaner struct {
	Rules []Rule
}

// NewCleaner returns a Cleaner using DefaultRules.
func NewCleaner() *Cleaner {
	return &Cleaner{Rules: DefaultRules()}
}

// CleanDescriptionHTML cleans raw with the default rule table.
func CleanDescriptionHTML(raw string) (string, error) {
	return NewCleaner().Clean(raw)
}

// Clean drops all line breaks, then repeats until the markup stops changing:
//
//  1. cut everything before the first <strong> start tag
//  2. cut the relocation delimiter and everything after it
//  3. apply the rule table until no rule matches
//  4. collapse runs of spaces
//
// Removing a blank bold line can expose leading text, and collapsing spaces
// can complete a delimiter, so one pass is not enough. The result always
// starts with a <strong> tag; if none survives, Clean fails.
func (c *Cleaner) Clean(raw string) (string, error) {
	s := lineBreaks.Replace(raw)

	for {
		start := firstBoldStart(s)
		if start < 0 {
			return "", fmt.Errorf("bold marker: %w", ErrPatternNotFound)
		}

		before := s[start:]
		s = relocatedTail.ReplaceAllString(before, "")
		s = c.applyRules(s)
		s = multiSpace.ReplaceAllString(s, " ")

		if s == before {
			return s, nil
		}
	}
}

// applyRules repeats the table until a full pass changes nothing. Removing one
// fragment can join its neighbours into another match.
func (c *Cleaner) applyRules(s string) string {
	for {
		before := s
		for _, rule := range c.Rules {
			s = rule.Apply(s)
		}
		if s == before {
			return s
		}
	}
}

// firstBoldStart returns the byte offset of the first <strong> start tag in
// s, or -1.
func firstBoldStart(s string) int {
	z := html.NewTokenizer(strings.NewReader(s))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return -1
		}
		n := len(z.Raw())
		if tt == html.StartTagToken {
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Strong {
				return offset
			}
		}
		offset += n
	}
}
