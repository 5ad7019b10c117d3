package mapper

import "strings"

// FormatPhone renders an 11-digit mobile number starting with 010 as
// 010-XXXX-XXXX. Any other input is returned unchanged.
func FormatPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && strings.HasPrefix(digits, "010") {
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	}
	return phone
}
