package engine

import (
	"regexp"
	"strconv"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// ParseRuleIndex extracts the first run of digits from a UI element
// identifier (for example "deleteRuleButton-3") and returns it as a rule
// position. ok is false when the identifier carries no digits at all;
// callers must abort the delete in that case instead of guessing a position.
func ParseRuleIndex(id string) (index int, ok bool) {
	m := digitRun.FindString(id)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
