// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import "strings"

// NameSimilarity returns a case-insensitive, whitespace-trimmed string
// similarity ratio in [0, 1]: twice the number of matching characters over
// the total length of both strings (Ratcliff/Obershelp). Identical strings
// score 1.0; an empty string after trimming scores 0.0 against anything.
func NameSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0.0
	}

	ra := []rune(a)
	rb := []rune(b)
	matches := matchingRunes(ra, rb)
	return 2.0 * float64(matches) / float64(len(ra)+len(rb))
}

// matchingRunes counts matched characters by finding the longest common
// substring, then recursing on the pieces to its left and right.
func matchingRunes(a, b []rune) int {
	ai, bi, n := longestCommonBlock(a, b)
	if n == 0 {
		return 0
	}
	total := n
	total += matchingRunes(a[:ai], b[:bi])
	total += matchingRunes(a[ai+n:], b[bi+n:])
	return total
}

// longestCommonBlock returns the start positions and length of the longest
// common substring of a and b. Ties resolve to the earliest position in a,
// then the earliest in b.
func longestCommonBlock(a, b []rune) (ai, bi, n int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	// lengths[j] is the length of the common suffix ending at a[i], b[j]
	// for the current row i.
	lengths := make([]int, len(b))
	for i := range a {
		prev := 0
		for j := range b {
			cur := lengths[j]
			if a[i] == b[j] {
				lengths[j] = prev + 1
				if lengths[j] > n {
					n = lengths[j]
					ai = i - n + 1
					bi = j - n + 1
				}
			} else {
				lengths[j] = 0
			}
			prev = cur
		}
	}
	return ai, bi, n
}
