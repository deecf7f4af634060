package models

import (
	"sort"
	"time"
)

// Availability is the final verdict for a checked domain
type Availability string

const (
	StatusAvailable  Availability = "available"
	StatusRegistered Availability = "registered"
	StatusUnknown    Availability = "unknown"
)

// DomainCheckResult holds the outcome of one domain check. It is built once
// per check and never mutated afterwards.
type DomainCheckResult struct {
	Domain         string       `json:"domain"`
	Availability   Availability `json:"availability"`
	ExpirationDate *time.Time   `json:"expiration_date,omitempty"`
	Registrar      string       `json:"registrar,omitempty"`
	HasDNS         bool         `json:"has_dns"`
	HasWebsite     bool         `json:"has_website"`
	Message        string       `json:"message"`
	CheckedAt      time.Time    `json:"checked_at"`
}

// Summary holds the per-verdict counts for a batch
type Summary struct {
	Total      int `json:"total"`
	Available  int `json:"available"`
	Registered int `json:"registered"`
	Errors     int `json:"errors"`
}

// Summarize counts verdicts across a batch of results
func Summarize(results []DomainCheckResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Availability {
		case StatusAvailable:
			s.Available++
		case StatusRegistered:
			s.Registered++
		default:
			s.Errors++
		}
	}
	return s
}

// displayRank orders verdicts for rendering: available first, errors last
func displayRank(a Availability) int {
	switch a {
	case StatusAvailable:
		return 0
	case StatusRegistered:
		return 1
	default:
		return 2
	}
}

// SortForDisplay reorders results so available domains come first, then
// registered, then errors; ties break alphabetically by domain.
func SortForDisplay(results []DomainCheckResult) {
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := displayRank(results[i].Availability), displayRank(results[j].Availability)
		if ri != rj {
			return ri < rj
		}
		return results[i].Domain < results[j].Domain
	})
}
