package catalog

import (
	"strings"
)

// MatchStrategy is one tier of the label matching cascade. Match receives
// the normalized catalog name and one normalized candidate label.
type MatchStrategy struct {
	Name  string
	Match func(normName, normCandidate string) bool
}

// DefaultStrategies returns the matching tiers in priority order. The
// ordering trades recall for precision: a weaker tier is only consulted
// after every candidate failed the stronger one.
func DefaultStrategies() []MatchStrategy {
	return []MatchStrategy{
		{
			Name: "exact",
			Match: func(name, cand string) bool {
				return name != "" && name == cand
			},
		},
		{
			Name: "prefix",
			Match: func(name, cand string) bool {
				if name == "" || cand == "" {
					return false
				}
				return strings.HasPrefix(name, cand) || strings.HasPrefix(cand, name)
			},
		},
		{
			Name: "substring",
			Match: func(name, cand string) bool {
				if name == "" || cand == "" {
					return false
				}
				return strings.Contains(name, cand) || strings.Contains(cand, name)
			},
		},
	}
}

// Matcher reconciles free-text product labels against catalog names using
// a tiered strategy list.
type Matcher struct {
	strategies []MatchStrategy
}

// NewMatcher creates a matcher with the given tiers; nil means the default
// cascade.
func NewMatcher(strategies ...MatchStrategy) *Matcher {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Matcher{strategies: strategies}
}

// MatchLabel returns the candidate label that best represents the catalog
// product, walking the tiers in priority order and the candidates in the
// given order within each tier. When nothing matches it returns the catalog
// name itself, so downstream series and statistics fall back to "no data"
// instead of failing.
func (m *Matcher) MatchLabel(catalogName string, candidates []string) string {
	normName := Normalize(catalogName)

	normCands := make([]string, len(candidates))
	for i, c := range candidates {
		normCands[i] = Normalize(c)
	}

	for _, strategy := range m.strategies {
		for i, cand := range normCands {
			if strategy.Match(normName, cand) {
				return candidates[i]
			}
		}
	}
	return catalogName
}
