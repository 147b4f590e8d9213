package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventhouse/statemachine/pkg/domain"
)

func literals(fields []domain.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.String()
	}
	return out
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "slash delimiter",
			line: "/start/m/@bholt/bholt/p",
			want: []string{"start", "m", "@bholt", "bholt", "p"},
		},
		{
			name: "colon delimiter",
			line: ":start:t::start:d",
			want: []string{"start", "t", "<absent>", "start", "d"},
		},
		{
			name: "closing delimiter is not a field",
			line: "/start/t/",
			want: []string{"start", "t"},
		},
		{
			name: "fields are whitespace trimmed",
			line: "| start | t |  | start |",
			want: []string{"start", "t", "<absent>", "start"},
		},
		{
			name: "delimiter chosen per line",
			line: ",a,b/c,d",
			want: []string{"a", "b/c", "d"},
		},
		{
			name: "multibyte delimiter",
			line: "•a•b•c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "leading whitespace before delimiter",
			line: "   /start/t",
			want: []string{"start", "t"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := SplitFields(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, literals(fields))
		})
	}
}

func TestSplitFields_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"delimiter only", "/"},
		{"too many fields", "/1/2/3/4/5/6/7/8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SplitFields(tt.line)
			require.Error(t, err)
			var syn *domain.SyntaxError
			assert.True(t, errors.As(err, &syn))
		})
	}
}

func TestSplitFields_MaxArity(t *testing.T) {
	fields, err := SplitFields("/1/2/3/4/5/6/7")
	require.NoError(t, err)
	assert.Len(t, fields, MaxFields)
}

func TestPad(t *testing.T) {
	fields, err := SplitFields("/start/t")
	require.NoError(t, err)
	padded := pad(fields)
	require.Len(t, padded, MaxFields)
	for _, f := range padded[2:] {
		assert.True(t, f.IsAbsent())
	}
}
