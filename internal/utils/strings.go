package utils

import "unicode"

// CamelToSnake converts an exported field name like "MovieID" to "movie_id".
// Consecutive capitals are treated as one word.
func CamelToSnake(s string) string {
	out := make([]rune, 0, len(s)+4)
	prevUpper := false
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && !prevUpper {
				out = append(out, '_')
			}
			prevUpper = true
			out = append(out, unicode.ToLower(r))
			continue
		}
		prevUpper = false
		out = append(out, r)
	}
	return string(out)
}
