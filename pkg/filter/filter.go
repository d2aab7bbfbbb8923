// Package filter implements client-side substring filtering over
// already-fetched collections.
package filter

import "strings"

// Match returns the elements of items for which at least one of the
// strings produced by fields contains query as a case-insensitive
// substring. An empty query returns items unchanged. Original order is
// preserved; the function is pure.
func Match[T any](items []T, query string, fields func(T) []string) []T {
	if query == "" {
		return items
	}

	q := strings.ToLower(query)
	var out []T
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
