package mapper

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare mobile number", "01012345678", "010-1234-5678"},
		{"already formatted", "010-1234-5678", "010-1234-5678"},
		{"spaces and dots", "010 1234.5678", "010-1234-5678"},
		{"international prefix is not 010", "+82 10-1234-5678", "+82 10-1234-5678"},
		{"landline left alone", "02-123-4567", "02-123-4567"},
		{"too short", "0101234567", "0101234567"},
		{"too long", "010123456789", "010123456789"},
		{"empty", "", ""},
		{"no digits", "연락처 없음", "연락처 없음"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhone(tt.input))
		})
	}
}

func TestFormatPhone_Properties(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{3}-\d{4}-\d{4}$`)
	for _, in := range []string{"01000000000", "01099998888", "(010) 5555-1234"} {
		out := FormatPhone(in)
		assert.Regexp(t, pattern, out)
		assert.Equal(t, digitsOf(in), digitsOf(out))
		assert.Equal(t, out, FormatPhone(out), "normalizing twice is a no-op")
	}
	for _, in := range []string{"011-234-5678", "hello", "+1 (415) 555-0100"} {
		assert.Equal(t, in, FormatPhone(in))
		assert.Equal(t, in, FormatPhone(FormatPhone(in)))
	}
}

func TestSplitOptions(t *testing.T) {
	assert.Equal(t, []string{"Backend", "Frontend"}, SplitOptions("Backend, Frontend ,  "))
	assert.Equal(t, []string{"백엔드"}, SplitOptions("백엔드"))
	assert.Empty(t, SplitOptions(" , ,"))
}
