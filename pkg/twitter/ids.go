package twitter

import "strings"

// Tweet ids are snowflakes: decimal strings without leading zeros, where a
// numerically larger id was minted later. Plain string comparison breaks
// across digit-count boundaries ("999" > "1000") and integer parsing risks
// overflow on future ids, so ordering compares length first, then bytes.

// CompareIDs orders two tweet ids numerically. It returns -1 if a was
// minted before b, +1 if after, and 0 if they are equal.
func CompareIDs(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// MaxID returns the more recent of two tweet ids.
func MaxID(a, b string) string {
	if CompareIDs(a, b) >= 0 {
		return a
	}
	return b
}
