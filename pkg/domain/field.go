package domain

// FieldKind discriminates the variants of a rule-language field.
type FieldKind int

const (
	// FieldAbsent marks a field that was empty or omitted; each rule
	// position has its own default for an absent field.
	FieldAbsent FieldKind = iota

	// FieldLiteral is a plain string token.
	FieldLiteral

	// FieldAliasRef is a token known to reference a named rule. The
	// tokenizer produces only literals; the resolver marks references
	// when it recognizes them.
	FieldAliasRef
)

// Field is one token of a delimited rule string.
type Field struct {
	Kind  FieldKind
	Value string
}

// Literal returns a literal field. An empty string is still a literal;
// absent fields come only from empty delimiter slots.
func Literal(s string) Field {
	return Field{Kind: FieldLiteral, Value: s}
}

// AliasRef returns a field referencing the named rule.
func AliasRef(name string) Field {
	return Field{Kind: FieldAliasRef, Value: name}
}

// Absent is the absent-field marker.
var Absent = Field{Kind: FieldAbsent}

// IsAbsent reports whether the field is the absent marker.
func (f Field) IsAbsent() bool {
	return f.Kind == FieldAbsent
}

func (f Field) String() string {
	switch f.Kind {
	case FieldAbsent:
		return "<absent>"
	case FieldAliasRef:
		return "@" + f.Value
	default:
		return f.Value
	}
}
