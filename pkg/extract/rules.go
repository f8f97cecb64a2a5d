package extract

import "regexp"

// Rule is one rewrite applied to description markup.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply rewrites every match of the rule in s. Replacement may refer to
// capture groups ("${1}").
func (r Rule) Apply(s string) string {
	return r.Pattern.ReplaceAllString(s, r.Replacement)
}

// blankField matches a template line whose value was left empty, e.g.
// "<STRONG>Difficulty: </STRONG> <br>". The label must open the bold wrapper
// or follow a tag directly, so "Total Distance:" is not a blank distance line.
// The tag end before an unwrapped label is captured and put back.
func blankField(name, label, unit string) Rule {
	expr := `(?i)(?:<strong>|(^|>))\s*` + label + `\s*:\s*(?:</strong>)?\s*`
	if unit != "" {
		expr += unit + `\s*`
	}
	return Rule{Name: name, Pattern: regexp.MustCompile(expr + `<br\s*/?>`), Replacement: "${1}"}
}

// DefaultRules returns the placeholder lines the event template leaves behind
// when the organizer does not fill them in.
func DefaultRules() []Rule {
	return []Rule{
		blankField("distance", "Distance", "miles"),
		{Name: "rating", Pattern: regexp.MustCompile(`R-,`)},
		blankField("difficulty", "Difficulty", ""),
		blankField("elevation-gain", `Elevation\s+Gain`, `ft\.?`),
		blankField("required-gear", `Required\s+Gear`, ""),
		blankField("max-participants", `Max\s+Participants`, ""),
	}
}
