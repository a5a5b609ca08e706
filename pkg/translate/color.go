package translate

import (
	"strconv"
	"strings"
)

// Slack's named attachment colors.
var namedColors = map[string]int{
	"good":    0x2eb886,
	"warning": 0xdaa038,
	"danger":  0xa30200,
}

const maxColor = 0xffffff

// ParseColor converts a Slack color into a Discord integer color.
// It accepts "#rrggbb", "0x"/"0X" hex, octal with a leading zero, decimal and
// the names good, warning and danger. ok is false for anything else or for
// values outside 0..0xffffff.
func ParseColor(s string) (color int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if c, found := namedColors[strings.ToLower(s)]; found {
		return c, true
	}

	digits, base := s, 10
	switch {
	case strings.HasPrefix(s, "#"):
		digits, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits, base = s[2:], 16
	case len(s) > 1 && s[0] == '0':
		digits, base = s[1:], 8
	}
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, false
	}

	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil || v < 0 || v > maxColor {
		return 0, false
	}
	return int(v), true
}
