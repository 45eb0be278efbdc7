// Package report renders collection and warehouse results as tables. It
// only reads canonical records and query results.
package report

import (
	"interview-harvest/lib/question"
	"interview-harvest/lib/warehouse"
	"sort"
)

// MultipleCompanies is used by collectors when a question is not tied to
// a single company.
const MultipleCompanies = "Multiple Companies"

type Verdict int

const (
	VerdictPoor Verdict = iota
	VerdictModerate
	VerdictGood
)

func (v Verdict) String() string {
	switch v {
	case VerdictGood:
		return "good: 50%+ company-specific, recommended to load"
	case VerdictModerate:
		return "moderate: 30-50% company-specific, load at your discretion"
	default:
		return "poor: under 30% company-specific, recommended to skip"
	}
}

type Summary struct {
	Total int
	// records attributed to a single company
	Specific     int
	ByCompany    []warehouse.GroupCount
	ByDifficulty []warehouse.GroupCount
	BySource     []warehouse.GroupCount
}

// SpecificShare is the fraction of records tied to one company.
func (s Summary) SpecificShare() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Specific) / float64(s.Total)
}

func (s Summary) Verdict() Verdict {
	share := s.SpecificShare()
	switch {
	case share >= 0.5:
		return VerdictGood
	case share >= 0.3:
		return VerdictModerate
	}
	return VerdictPoor
}

// Summarize groups records the same way the warehouse query surface does,
// count descending then key ascending.
func Summarize(records []question.Record) Summary {
	companies := map[string]int64{}
	difficulties := map[string]int64{}
	sources := map[string]int64{}

	s := Summary{Total: len(records)}
	for _, r := range records {
		companies[r.CompanyName]++
		difficulties[r.Difficulty]++
		sources[r.Source]++
		if r.CompanyName != MultipleCompanies {
			s.Specific++
		}
	}
	s.ByCompany = groupCounts(companies)
	s.ByDifficulty = groupCounts(difficulties)
	s.BySource = groupCounts(sources)
	return s
}

func groupCounts(counts map[string]int64) []warehouse.GroupCount {
	out := make([]warehouse.GroupCount, 0, len(counts))
	for key, count := range counts {
		out = append(out, warehouse.GroupCount{Key: key, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
