package tasks

import (
	"strconv"
	"strings"
)

// ParseDependencies reads a comma-separated id list. Tokens that are not
// positive integers are dropped, as are repeats.
func ParseDependencies(text string) []int {
	ids := []int{}
	if strings.TrimSpace(text) == "" {
		return ids
	}
	for _, tok := range strings.Split(text, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			continue
		}
		ids = append(ids, n)
	}
	return normalizeDependencies(ids)
}

func normalizeDependencies(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
