package game

import (
	"strconv"
	"strings"
)

// ParseResult is the tagged result of parsing one input line.
// OK is false when the line is not a valid guess; Value is then zero.
type ParseResult struct {
	Value uint64
	OK    bool
}

// ParseGuess parses a line as an unsigned 32-bit decimal integer after
// trimming surrounding whitespace. A single leading '+' is accepted.
// Empty input, signs other than '+', non-digits and values above
// math.MaxUint32 all yield a failed result.
func ParseGuess(line string) ParseResult {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "+")

	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return ParseResult{}
	}
	return ParseResult{Value: v, OK: true}
}
