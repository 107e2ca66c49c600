package httpmetrics

import (
	"regexp"
	"strings"
)

var (
	uuidRegex    = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	numericRegex = regexp.MustCompile(`^[0-9]+$`)
)

// NormalizePath collapses identifier segments so the path label stays
// low-cardinality.
func NormalizePath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}

	parts := strings.Split(path, "/")
	for i, part := range parts {
		if uuidRegex.MatchString(part) || numericRegex.MatchString(part) {
			parts[i] = "{param}"
		}
	}

	return strings.Join(parts, "/")
}
