package compiler

import (
	"strings"
	"unicode/utf8"

	"github.com/inventhouse/statemachine/pkg/domain"
)

// MaxFields is the fixed arity of a rule string:
// state/name, test, test-arg, dst, action, action-arg, tag.
const MaxFields = 7

// SplitFields tokenizes one delimited rule string. The string's first
// non-whitespace character is the delimiter; the remainder is split on it.
// Fields are whitespace-trimmed, and an empty field is Absent, not the
// empty string. A closing delimiter is allowed and does not count as an
// extra field.
func SplitFields(line string) ([]domain.Field, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, &domain.SyntaxError{Line: line, Reason: "empty rule string"}
	}
	delim, size := utf8.DecodeRuneInString(trimmed)
	rest := trimmed[size:]
	if rest == "" {
		return nil, &domain.SyntaxError{Line: line, Reason: "no fields after delimiter"}
	}

	parts := strings.Split(rest, string(delim))
	if strings.HasSuffix(rest, string(delim)) {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > MaxFields {
		return nil, &domain.SyntaxError{Line: line, Reason: "too many fields"}
	}

	fields := make([]domain.Field, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			fields[i] = domain.Absent
			continue
		}
		fields[i] = domain.Literal(p)
	}
	return fields, nil
}

// pad right-pads a field list with absent markers up to MaxFields.
func pad(fields []domain.Field) []domain.Field {
	for len(fields) < MaxFields {
		fields = append(fields, domain.Absent)
	}
	return fields
}
