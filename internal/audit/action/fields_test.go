package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFields(t *testing.T) {
	tests := []struct {
		name   string
		input  []string
		expect []string
	}{
		{name: "nil", input: nil, expect: nil},
		{name: "empty", input: []string{}, expect: nil},
		{name: "trims and keeps order", input: []string{" status ", "reviewReason"}, expect: []string{"status", "reviewReason"}},
		{name: "drops repeats", input: []string{"DOB", "firstName", "DOB"}, expect: []string{"DOB", "firstName"}},
		{name: "drops blanks", input: []string{"", "  ", "verified"}, expect: []string{"verified"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, normalizeFields(tt.input))
		})
	}
}
