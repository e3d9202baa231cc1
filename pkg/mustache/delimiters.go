package mustache

import "strings"

// maxDelimiterLength bounds each delimiter so a delimiter pair always
// fits within the tag buffer.
const maxDelimiterLength = 16

// Delimiters is the pair of strings bounding tags in template text.
// The pair in force can change over the course of one render as
// delimiter-change tags are encountered.
type Delimiters struct {
	Open  string
	Close string
}

// DefaultDelimiters returns the mustache default pair.
func DefaultDelimiters() Delimiters {
	return Delimiters{Open: "{{", Close: "}}"}
}

// parseDelimiterChange parses the inner text of a delimiter-change tag
// such as "=<% %>=". The text arrives with both '=' markers still in
// place; between them, the new open and close delimiters are separated
// by whitespace and must both be non-empty.
func parseDelimiterChange(inner string) (Delimiters, bool) {
	// Shortest valid form is "=a b=".
	if len(inner) < 5 || inner[0] != '=' || inner[len(inner)-1] != '=' {
		return Delimiters{}, false
	}

	fields := strings.Fields(inner[1 : len(inner)-1])
	if len(fields) != 2 {
		return Delimiters{}, false
	}

	open, clos := fields[0], fields[1]
	if len(open) > maxDelimiterLength || len(clos) > maxDelimiterLength {
		return Delimiters{}, false
	}

	return Delimiters{Open: open, Close: clos}, true
}
