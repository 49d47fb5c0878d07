package utils

import "strconv"

// ParseID parses a route identifier. The zero return with ok=false means the
// identifier was syntactically invalid, which every handler maps to a 400.
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
