package engine

import "strings"

// StripProtocol returns everything after the first "//" in the input, or the
// input unchanged when there is none. The split happens at the first "//"
// anywhere, not only after a scheme colon, so a double slash inside a path
// component also truncates. Known heuristic limitation; the tests pin the
// behavior as documented.
func StripProtocol(s string) string {
	if i := strings.Index(s, "//"); i != -1 {
		return s[i+2:]
	}
	return s
}

// StripPath returns everything before the first "/" in the input, or the
// input unchanged when there is none.
func StripPath(s string) string {
	if i := strings.IndexByte(s, '/'); i != -1 {
		return s[:i]
	}
	return s
}

// GetDomain reduces a URL-like string to a bare host for the subdomain
// heuristic. It is not a parser: no validation, no errors, total over any
// string input. Uniqueness and cycle checks never use it.
func GetDomain(s string) string {
	return StripPath(StripProtocol(s))
}
