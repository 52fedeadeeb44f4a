package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIDNumber(t *testing.T) {
	cases := map[string]string{
		"63-123456A78":      "63123456A78",
		"63 123456 A 78":    "63123456A78",
		"63123456a78":       "63123456A78",
		"  63.123456/a78  ": "63123456A78",
		"":                  "",
		"   ":               "",
		"---":               "",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeIDNumber(raw), "input %q", raw)
	}
}
