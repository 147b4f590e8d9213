package compiler

import "strings"

// StripComment removes a #-comment from a line. A # starts a comment only
// when preceded by start-of-line or whitespace; a doubled ## collapses to a
// single literal # and scanning continues after it, so a # can be escaped
// by doubling. Trailing whitespace left behind by a removed comment is
// trimmed; a line with no comment is returned unchanged.
func StripComment(line string) string {
	var b strings.Builder
	boundary := true // start-of-line counts as a boundary
	cut := false

	for i := 0; i < len(line); {
		c := line[i]
		if c == '#' && boundary {
			if i+1 < len(line) && line[i+1] == '#' {
				b.WriteByte('#')
				i += 2
				boundary = false
				continue
			}
			cut = true
			break
		}
		b.WriteByte(c)
		boundary = c == ' ' || c == '\t'
		i++
	}

	out := b.String()
	if cut {
		out = strings.TrimRight(out, " \t")
	}
	return out
}
