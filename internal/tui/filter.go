package tui

import (
	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// filterTitles returns the indices of titles matching query, best match
// first. A cheap normalized-fold prefilter trims the candidate set before
// the ranked match so typing stays snappy on large directories.
func filterTitles(query string, titles []string) []int {
	if query == "" {
		out := make([]int, len(titles))
		for i := range titles {
			out[i] = i
		}
		return out
	}

	candidates := make([]string, 0, len(titles))
	index := make([]int, 0, len(titles))
	for i, t := range titles {
		if lfuzzy.MatchNormalizedFold(query, t) {
			candidates = append(candidates, t)
			index = append(index, i)
		}
	}

	matches := fuzzy.Find(query, candidates)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, index[m.Index])
	}
	return out
}
