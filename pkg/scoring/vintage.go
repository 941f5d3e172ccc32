package scoring

import "strconv"

// Two-digit vintages at or below the cutoff are read as 20xx, above it as
// 19xx ("21" is 2021, "78" is 1978).
const twoDigitCutoff = 30

// ExpandVintage resolves a vintage token to a 4-digit year string. 4-digit
// values pass through, 2-digit values get a century. Anything else returns
// the empty string.
func ExpandVintage(v string) string {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return ""
	}
	switch len(v) {
	case 4:
		return v
	case 2:
		if n <= twoDigitCutoff {
			return "20" + v
		}
		return "19" + v
	}
	return ""
}

type vintageOutcome int

const (
	vintageNeutral vintageOutcome = iota
	vintageMatch
	vintageMismatch
)

// compareVintage applies the vintage rule: either side missing is neutral,
// equal expanded years match, anything else is a mismatch.
func compareVintage(query, candidate string) vintageOutcome {
	if query == "" || candidate == "" {
		return vintageNeutral
	}
	if ExpandVintage(query) == ExpandVintage(candidate) {
		return vintageMatch
	}
	return vintageMismatch
}
