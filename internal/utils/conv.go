package utils

import (
	"strconv"
)

// ParseID converts a path parameter to a positive numeric id.
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
