package normalize

import (
	"math"
	"strings"
	"unicode"

	"github.com/agentstation/brandmap/pkg/brands"
)

// ParseInt parses the leading base-10 integer of v's string form: leading
// whitespace is skipped, an optional sign is accepted, and the longest run
// of digits is taken. Trailing text is ignored, so "1850abc" yields 1850.
// It reports false when no digit is found or the value overflows int64.
func ParseInt(v any) (int64, bool) {
	if v == nil {
		return 0, false
	}
	s := strings.TrimLeftFunc(brands.StringForm(v), unicode.IsSpace)

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var n uint64
	digits := 0
	for ; digits < len(s); digits++ {
		c := s[digits]
		if c < '0' || c > '9' {
			break
		}
		d := uint64(c - '0')
		if n > (math.MaxInt64-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	if digits == 0 {
		return 0, false
	}

	if negative {
		return -int64(n), true
	}
	return int64(n), true
}
