package tdms

import (
	"fmt"
	"strings"
)

// RootPath is the path of the file object.
const RootPath = "/"

// GroupPath returns the object path of a group: /'name'.
func GroupPath(group string) string {
	return "/" + quote(group)
}

// ChannelPath returns the object path of a channel: /'group'/'name'.
func ChannelPath(group, channel string) string {
	return GroupPath(group) + "/" + quote(channel)
}

// quote wraps a name in single quotes, doubling any embedded quote.
func quote(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// SplitPath splits an object path into its group and channel names.
//
// Examples:
//   - "/" -> "", ""
//   - "/'p'" -> "p", ""
//   - "/'p'/'in'" -> "p", "in"
//   - "/'it''s'" -> "it's", ""
//
// Returns ErrInvalidPath for anything else.
func SplitPath(path string) (group, channel string, err error) {
	if path == RootPath {
		return "", "", nil
	}

	var parts []string
	rest := path
	for rest != "" {
		if !strings.HasPrefix(rest, "/'") {
			return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
		name, n, ok := unquote(rest[1:])
		if !ok {
			return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
		parts = append(parts, name)
		rest = rest[1+n:]
	}

	switch len(parts) {
	case 1:
		return parts[0], "", nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
}

// unquote reads a quoted name at the start of s and returns it along with
// the number of bytes consumed.
func unquote(s string) (string, int, bool) {
	var sb strings.Builder
	for i := 1; i < len(s); i++ {
		if s[i] != '\'' {
			sb.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			sb.WriteByte('\'')
			i++
			continue
		}
		return sb.String(), i + 1, true
	}
	return "", 0, false
}
