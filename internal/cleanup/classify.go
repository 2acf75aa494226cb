package cleanup

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Kind is the classification of a single roster line.
type Kind int

const (
	// KindName is a record carrying a real team name. It is kept.
	KindName Kind = iota
	// KindCode is a placeholder record named after its own hex code. It is skipped.
	KindCode
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindCode:
		return "code"
	default:
		return "unknown"
	}
}

const (
	codeWidth = 4
	// trailing runes of the name field exempt from the digit check
	nameTailWidth = 2
)

// Classify decides whether a raw line (terminator included) is a placeholder
// code or a named team, and runs the matching sanity assertion.
func Classify(line string) (Kind, error) {
	prefix := codePrefix(line)
	if _, ok := parseHex(prefix); ok {
		if prefix != strings.ToUpper(prefix) {
			return KindCode, fmt.Errorf("%w: %s", ErrLowercaseCode, prefix)
		}
		return KindCode, nil
	}

	name := nameField(line)
	if hasDigit(dropTail(name, nameTailWidth)) {
		return KindName, fmt.Errorf("%w: %s", ErrDigitInName, name)
	}
	return KindName, nil
}

// codePrefix returns the first codeWidth runes of line.
func codePrefix(line string) string {
	n := 0
	for i := range line {
		if n == codeWidth {
			return line[:i]
		}
		n++
	}
	return line
}

// parseHex reads s as a base-16 integer. Surrounding whitespace, a sign,
// a 0x prefix and single underscores between digits are accepted, and any
// Unicode decimal digit counts as its ASCII equivalent.
func parseHex(s string) (int64, bool) {
	s = strings.Map(asciiDigit, strings.TrimSpace(s))
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	} else if strings.HasPrefix(s, "_") {
		return 0, false
	}
	n, err := strconv.ParseInt(sign+"0x"+s, 0, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func asciiDigit(r rune) rune {
	if r <= unicode.MaxASCII || !unicode.IsDigit(r) {
		return r
	}
	// decimal digits come in runs that start at zero
	zero := r
	for unicode.IsDigit(zero - 1) {
		zero--
	}
	return '0' + (r-zero)%10
}

func nameField(line string) string {
	name, _, _ := strings.Cut(line, ",")
	return name
}

func dropTail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return ""
	}
	return string(runes[:len(runes)-n])
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
