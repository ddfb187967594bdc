package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{a: "", b: "", expected: 0},
		{a: "admin", b: "admin", expected: 0},
		{a: "", b: "abc", expected: 3},
		{a: "abc", b: "", expected: 3},
		{a: "email", b: "emal", expected: 1},
		{a: "admin", b: "admni", expected: 2},
		{a: "kitten", b: "sitting", expected: 3},
		{a: "admin", b: "xyz", expected: 5},
		{a: "Admin", b: "admin", expected: 1},
		{a: "café", b: "cafe", expected: 1},
		{a: "日本語", b: "日本", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"->"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
			assert.Equal(t, tt.expected, Distance(tt.b, tt.a), "distance is symmetric")
		})
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("admin", "admin"))
	assert.True(t, Matches("admin", "admni"))
	assert.True(t, Matches("admin", "adm"))
	assert.False(t, Matches("admin", "ad"))
	assert.False(t, Matches("admin", "xyz"))
}
