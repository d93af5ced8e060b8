package cache

import "strings"

// NormalizeKey collapses whitespace so equivalent addresses share an entry.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = NormalizeKey(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
