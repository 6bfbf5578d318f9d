package catalog

import (
	"github.com/sahilm/fuzzy"

	"traychat/model"
)

// Search fuzzy-filters catalog options by their display labels, best matches
// first. An empty query returns the catalog unchanged.
func Search(options []model.Option, query string) []model.Option {
	if query == "" {
		return options
	}

	targets := make([]string, len(options))
	for i, o := range options {
		targets[i] = o.Label()
	}

	matches := fuzzy.Find(query, targets)
	filtered := make([]model.Option, len(matches))
	for i, match := range matches {
		filtered[i] = options[match.Index]
	}

	return filtered
}
