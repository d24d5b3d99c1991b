package utils

import (
	"path"
	"strings"
)

// Separator is the path separator used in object keys.
const Separator = "/"

// DirKey returns p with a trailing separator, which is how directory marker
// objects and directory prefixes are keyed. It is idempotent.
func DirKey(p string) string {
	if strings.HasSuffix(p, Separator) {
		return p
	}
	return p + Separator
}

// IsDirKey reports whether key names a directory marker.
func IsDirKey(key string) bool {
	return strings.HasSuffix(key, Separator)
}

// BaseName returns the last segment of key, ignoring a trailing separator.
// It returns an empty string for the root.
func BaseName(key string) string {
	trimmed := strings.TrimRight(key, Separator)
	if trimmed == "" {
		return ""
	}
	return path.Base(trimmed)
}

// JoinKey places name under the directory prefix.
func JoinKey(prefix, name string) string {
	return DirKey(prefix) + strings.TrimLeft(name, Separator)
}
