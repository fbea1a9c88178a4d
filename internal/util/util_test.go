package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSISequence(t *testing.T) {
	testValues := []struct {
		input  string
		expect string
	}{
		{"plain text", "plain text"},
		{"\x1b[31mred\x1b[0m", "red"},
		{"\x1b[1;32mbold green\x1b[0m tail", "bold green tail"},
		{"", ""},
	}
	for _, v := range testValues {
		assert.Equal(t, v.expect, StripANSISequence(v.input))
	}
}
