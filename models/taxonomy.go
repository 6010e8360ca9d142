// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "slices"

// Taxonomy is the fixed location hierarchy and company list shown in the
// check-in form. It is built once at startup and never mutated.
type Taxonomy struct {
	Companies []string                       `json:"companies"`
	Areas     map[string]map[string][]string `json:"areas"`
}

// DefaultTaxonomy returns the built-in site taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Companies: []string{"PDO", "BP Oman", "OQ", "CCED", "Schlumberger"},
		Areas: map[string]map[string][]string{
			"North": {
				"Cluster N1": {"Plant N1-A", "Plant N1-B"},
				"Cluster N2": {"Plant N2-A"},
			},
			"Central": {
				"Cluster C1": {"Plant C1-A", "Plant C1-B"},
				"Cluster C2": {"Plant C2-A"},
			},
			"South": {
				"Cluster S1": {"Plant S1-A", "Plant S1-B", "Plant S1-C"},
				"Cluster S2": {"Plant S2-A"},
			},
		},
	}
}

// HasCompany reports whether company is in the company list
func (t Taxonomy) HasCompany(company string) bool {
	return slices.Contains(t.Companies, company)
}

// HasArea reports whether area is a top-level site area
func (t Taxonomy) HasArea(area string) bool {
	_, ok := t.Areas[area]
	return ok
}

// HasLocation reports whether plant belongs to cluster and cluster to area.
func (t Taxonomy) HasLocation(area, cluster, plant string) bool {
	clusters, ok := t.Areas[area]
	if !ok {
		return false
	}
	plants, ok := clusters[cluster]
	if !ok {
		return false
	}
	return slices.Contains(plants, plant)
}
