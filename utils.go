package assetvault

import (
	"strings"
	"unicode/utf8"
)

// IsValidPath validates that a relative asset path is safe to hand to
// storage. It checks that the path:
//   - is not empty, ".", or "/"
//   - is relative (does not start with "/")
//   - does not end with "/"
//   - does not contain ".." (path traversal)
//   - does not contain "//" (empty segments)
//   - does not contain backslashes
//   - is valid UTF-8
//   - does not contain "." segments (./, /./, or ending with /.)
//   - does not contain null bytes, control characters (< 0x20), or DEL (0x7f)
//
// Returns true if the path is valid, false otherwise.
func IsValidPath(p string) bool {
	if p == "" || p == "/" || p == "." {
		return false
	}

	if p[0] == '/' {
		return false
	}

	if strings.HasSuffix(p, "/") {
		return false
	}

	if strings.Contains(p, "..") {
		return false
	}

	if strings.Contains(p, "//") {
		return false
	}

	if strings.ContainsRune(p, '\\') {
		return false
	}

	if !utf8.ValidString(p) {
		return false
	}

	if strings.HasPrefix(p, "./") || strings.Contains(p, "/./") || strings.HasSuffix(p, "/.") {
		return false
	}

	for _, r := range p {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}

	return true
}
