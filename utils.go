package servit

import (
	"strings"
	"unicode/utf8"
)

// IsValidIndexFile validates that name can be appended to a directory-style
// request path. It checks that the name:
//   - is not empty, "." or ".."
//   - is a single path element (no "/" or "\")
//   - is valid UTF-8
//   - does not contain null bytes, control characters (< 0x20) or DEL (0x7f)
//
// Returns true if the name is valid, false otherwise.
func IsValidIndexFile(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	if strings.ContainsAny(name, `/\`) {
		return false
	}

	if !utf8.ValidString(name) {
		return false
	}

	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}

	return true
}
