package similarity

import (
	"sort"
	"strings"
)

// Perfect is the score of two texts holding the same multiset of tokens.
const Perfect = 100.0

// TokenRatio returns a similarity score in [0, 100] for two texts.
// Blank input on either side scores 0. Identical token multisets score 100,
// regardless of token order.
func TokenRatio(a, b string) float64 {
	if IsBlank(a) || IsBlank(b) {
		return 0
	}

	union, restA, restB := partition(strings.Fields(a), strings.Fields(b))

	unionText := joinSorted(union)
	restAText := joinSorted(restA)
	restBText := joinSorted(restB)

	if IsBlank(restAText) && IsBlank(restBText) {
		return Perfect
	}

	combinedA := unionText + " " + restAText
	combinedB := unionText + " " + restBText

	return max(
		PrefixRatio(unionText, combinedA),
		PrefixRatio(unionText, combinedB),
		PrefixRatio(combinedA, combinedB),
	)
}

// PrefixRatio scores two strings by the length of their common leading run:
// 200 * match / (len(x) + len(y)). Lengths are counted in runes.
// Two empty strings score 0.
func PrefixRatio(x, y string) float64 {
	rx, ry := []rune(x), []rune(y)
	total := len(rx) + len(ry)
	if total == 0 {
		return 0
	}

	n := min(len(rx), len(ry))
	match := 0
	for match < n && rx[match] == ry[match] {
		match++
	}

	return 200.0 * float64(match) / float64(total)
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// partition walks a left to right and lets every token consume the first unconsumed
// equal token of b. Consumed tokens form the union; the leftovers of each side keep
// their original order.
func partition(a, b []string) (union, restA, restB []string) {
	// Pending positions in b for each token, in order of appearance.
	positions := make(map[string][]int, len(b))
	for i, tok := range b {
		positions[tok] = append(positions[tok], i)
	}

	consumed := make([]bool, len(b))
	for _, tok := range a {
		queue := positions[tok]
		if len(queue) == 0 {
			restA = append(restA, tok)
			continue
		}
		consumed[queue[0]] = true
		positions[tok] = queue[1:]
		union = append(union, tok)
	}

	for i, tok := range b {
		if !consumed[i] {
			restB = append(restB, tok)
		}
	}

	return union, restA, restB
}

func joinSorted(tokens []string) string {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}
