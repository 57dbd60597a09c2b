package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMGA(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0 MGA"},
		{"5", "5 MGA"},
		{"500", "500 MGA"},
		{"3600", "3 600 MGA"},
		{"12500", "12 500 MGA"},
		{"123456", "123 456 MGA"},
		{"1234567", "1 234 567 MGA"},
		{"1000000000", "1 000 000 000 MGA"},
		{"-12500", "-12 500 MGA"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatMGA(MustMoney(tc.in)), "input %s", tc.in)
	}
}

func TestFormatMGARoundsToWholeAriary(t *testing.T) {
	// Full precision is kept internally; display rounds half away from zero.
	assert.Equal(t, "12 500 MGA", FormatMGA(MustMoney("12499.5")))
	assert.Equal(t, "12 499 MGA", FormatMGA(MustMoney("12499.4")))
	assert.Equal(t, "3 600 MGA", FormatMGA(MustMoney("3600.004")))
}
