// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import "github.com/pdiddy/bloomz/pkg/types"

// ExampleLibrary returns a small natural-products reference library for
// demos and tests: common GC-MS volatiles with monoisotopic masses.
func ExampleLibrary() []types.LibraryEntry {
	return []types.LibraryEntry{
		{Name: "alpha-Pinene", ExactMass: 136.1252, Class: "Monoterpene"},
		{Name: "Limonene", ExactMass: 136.1252, Class: "Monoterpene"},
		{Name: "Linalool", ExactMass: 154.1358, Class: "Monoterpene alcohol"},
		{Name: "beta-Caryophyllene", ExactMass: 204.1878, Class: "Sesquiterpene"},
		{Name: "Humulene", ExactMass: 204.1878, Class: "Sesquiterpene"},
		{Name: "Costunolide", ExactMass: 232.1463, Class: "Sesquiterpene lactone"},
		{Name: "Eugenol", ExactMass: 164.0837, Class: "Phenolic"},
		{Name: "Methyl salicylate", ExactMass: 152.0473, Class: "Phenolic ester"},
		{Name: "Caffeine", ExactMass: 194.0804, Class: "Purine alkaloid"},
		{Name: "Vanillin", ExactMass: 152.0473, Class: "Phenolic aldehyde"},
	}
}
