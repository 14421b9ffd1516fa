// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import "strings"

// Plausibility returns 1.0 when any keyword appears as a case-insensitive
// substring of the candidate's chemical class, and neutral otherwise.
// An empty keyword list always returns 0.5: no species context is no
// evidence either way, not evidence against.
func Plausibility(chemicalClass string, keywords []string, neutral float64) float64 {
	if len(keywords) == 0 {
		return 0.5
	}
	class := strings.ToLower(chemicalClass)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(class, kw) {
			return 1.0
		}
	}
	return neutral
}
