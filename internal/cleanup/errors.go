package cleanup

import (
	"errors"
	"fmt"
)

var (
	// ErrLowercaseCode marks a placeholder code prefix that is not uppercase hex.
	ErrLowercaseCode = errors.New("Lowercase letter found in hex code")
	// ErrDigitInName marks a team name carrying a digit outside its last two runes.
	ErrDigitInName = errors.New("Number found in team name")
)

// LineError ties an assertion failure to its 1-based input line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
