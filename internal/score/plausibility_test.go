package score

import "testing"

func TestPlausibility(t *testing.T) {
	tests := []struct {
		name     string
		class    string
		keywords []string
		neutral  float64
		want     float64
	}{
		{"keyword matches substring", "Sesquiterpene lactone", []string{"terpene"}, 0.5, 1.0},
		{"case insensitive", "PHENOLIC ester", []string{"phenolic"}, 0.5, 1.0},
		{"no match falls back to neutral", "Alkaloid", []string{"terpene"}, 0.5, 0.5},
		{"strict neutral policy", "Alkaloid", []string{"terpene"}, 0.25, 0.25},
		{"empty keyword list is always 0.5", "Alkaloid", nil, 0.25, 0.5},
		{"empty class no match", "", []string{"terpene"}, 0.5, 0.5},
		{"blank keywords are skipped", "Alkaloid", []string{"  ", ""}, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Plausibility(tt.class, tt.keywords, tt.neutral); got != tt.want {
				t.Errorf("Plausibility(%q, %v, %g) = %f, want %f", tt.class, tt.keywords, tt.neutral, got, tt.want)
			}
		})
	}
}
