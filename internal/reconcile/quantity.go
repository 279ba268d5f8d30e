package reconcile

import (
	"strconv"
	"strings"
)

// ParseQuantity reads a free-text amount as an integer quantity. Amounts
// are stored as text and are not guaranteed numeric ("a pinch"), so
// anything unparsable, empty, or negative contributes zero — it never
// fails the enclosing operation.
func ParseQuantity(text string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
