package report

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

type Suggestion struct {
	Company    string
	Similarity float64
}

// Suggest ranks known company names by Jaro-Winkler similarity to term,
// returning at most n names scoring at least threshold.
func Suggest(term string, companies []string, threshold float64, n int) []Suggestion {
	target := strings.ToLower(strings.TrimSpace(term))
	if target == "" {
		return nil
	}

	var out []Suggestion
	for _, company := range companies {
		similarity := matchr.JaroWinkler(target, strings.ToLower(company), false)
		if similarity < threshold {
			continue
		}
		out = append(out, Suggestion{Company: company, Similarity: similarity})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Company < out[j].Company
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
