package csvsink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// DefaultPatterns are the file name patterns every collector writes.
var DefaultPatterns = []string{
	"tryexponent_*.csv",
	"gfg_companywise_*.csv",
	"geeksforgeeks_*.csv",
	"interviewbit_*.csv",
	"github_*.csv",
	"reddit_*.csv",
	"MASTER_*.csv",
}

var ErrNoCandidates = errors.New("no csv files found")

type Candidate struct {
	Path    string
	ModTime time.Time
}

// FindCandidates lists the files in dir matching any of patterns, newest first.
func FindCandidates(dir string, patterns []string) ([]Candidate, error) {
	seen := map[string]struct{}{}
	var out []Candidate
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}

			info, err := os.Stat(m)
			if err != nil {
				return nil, err
			}
			if info.IsDir() {
				continue
			}
			out = append(out, Candidate{Path: m, ModTime: info.ModTime()})
		}
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		return b.ModTime.Compare(a.ModTime)
	})
	return out, nil
}

// SelectFunc picks the file to load out of the candidates (newest first).
// Interactive callers prompt here, the core never does.
type SelectFunc func(ctx context.Context, candidates []Candidate) (Candidate, error)

// SelectNewest picks the most recently modified candidate.
func SelectNewest(_ context.Context, candidates []Candidate) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, ErrNoCandidates
	}
	return candidates[0], nil
}

// Resolve finds the candidates in dir and lets sel choose one.
func Resolve(ctx context.Context, dir string, patterns []string, sel SelectFunc) (string, error) {
	candidates, err := FindCandidates(dir, patterns)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}
	if sel == nil {
		sel = SelectNewest
	}
	chosen, err := sel(ctx, candidates)
	if err != nil {
		return "", err
	}
	return chosen.Path, nil
}
