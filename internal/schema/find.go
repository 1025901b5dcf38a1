package schema

import (
	"sort"
	"strings"
)

// Match is one ranked search result.
type Match struct {
	Name        string   `json:"name"`
	Tool        string   `json:"tool"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Required    []string `json:"required"`
	Optional    []string `json:"optional"`

	score int
}

// Find searches the descriptor table. The query is matched against method
// names (both spellings) and descriptions; category, when non-empty, filters
// results first. limit ≤ 0 means no limit. Results are ranked: exact name,
// name prefix, name substring, description substring.
func Find(query, category string, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	cat := strings.ToLower(strings.TrimSpace(category))

	var out []Match
	for _, d := range All() {
		if cat != "" && strings.ToLower(d.Category) != cat {
			continue
		}
		s := score(d, q)
		if s == 0 {
			continue
		}
		out = append(out, Match{
			Name:        d.Name,
			Tool:        d.ToolName(),
			Description: d.Description,
			Category:    d.Category,
			Required:    d.Required,
			Optional:    d.Optional,
			score:       s,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].Name < out[j].Name
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func score(d *Descriptor, q string) int {
	if q == "" {
		// Empty query lists everything (subject to category filter).
		return 1
	}
	name := strings.ToLower(d.Name)
	tool := d.ToolName()
	switch {
	case name == q || tool == q:
		return 100
	case strings.HasPrefix(name, q) || strings.HasPrefix(tool, q):
		return 75
	case strings.Contains(name, q) || strings.Contains(tool, q):
		return 50
	case strings.Contains(strings.ToLower(d.Description), q):
		return 25
	}
	// Multi-word queries match if every word appears somewhere.
	words := strings.Fields(q)
	if len(words) > 1 {
		hay := name + " " + tool + " " + strings.ToLower(d.Description)
		for _, w := range words {
			if !strings.Contains(hay, w) {
				return 0
			}
		}
		return 10
	}
	return 0
}
