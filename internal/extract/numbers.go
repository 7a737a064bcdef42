package extract

import (
	"strconv"
	"strings"
)

var numberWords = map[string]int{
	"a": 1, "an": 1,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// parseCount converts a captured head-count token to an integer. Empty or
// unrecognized tokens count as a single opening.
func parseCount(token string) int {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return 1
	}
	if n, err := strconv.Atoi(token); err == nil && n > 0 {
		return n
	}
	if n, ok := numberWords[token]; ok {
		return n
	}
	return 1
}
