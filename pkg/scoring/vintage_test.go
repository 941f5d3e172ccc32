package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandVintage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "four digit year passes through", input: "2021", want: "2021"},
		{name: "low two digit year is this century", input: "21", want: "2021"},
		{name: "cutoff year is this century", input: "30", want: "2030"},
		{name: "high two digit year is last century", input: "78", want: "1978"},
		{name: "just above the cutoff", input: "31", want: "1931"},
		{name: "zero", input: "00", want: "2000"},
		{name: "empty", input: "", want: ""},
		{name: "not a year", input: "abc", want: ""},
		{name: "single digit", input: "5", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandVintage(tt.input))
		})
	}
}

func TestCompareVintage(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want vintageOutcome
	}{
		{name: "equal years match", a: "2019", b: "2019", want: vintageMatch},
		{name: "two digit form matches its expansion", a: "19", b: "2019", want: vintageMatch},
		{name: "different years mismatch", a: "2019", b: "2007", want: vintageMismatch},
		{name: "missing on one side is neutral", a: "2019", b: "", want: vintageNeutral},
		{name: "missing on both sides is neutral", a: "", b: "", want: vintageNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareVintage(tt.a, tt.b))
		})
	}
}
