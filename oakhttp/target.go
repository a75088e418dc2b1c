package oakhttp

import (
	"net/url"
	"strings"
)

// Target is the parsed path and query portion of a request line.
// TargetPath is the route prefix matched by a Directory handler and is
// empty for every other handler kind; RelativePath is the remainder.
// Concatenating the two always reproduces the decoded request path.
type Target struct {
	TargetPath   string
	RelativePath string
	Queries      map[string]string
}

// ParseTarget splits a request target into its decoded path and query
// parameters. Duplicate query keys resolve last-write-wins; pairs
// without "=" are skipped.
func ParseTarget(raw string) (Target, error) {
	rawPath, rawQuery, _ := strings.Cut(raw, "?")
	path, err := url.PathUnescape(rawPath)
	if err != nil {
		return Target{}, ErrMalformedStartLine
	}
	queries := make(map[string]string)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawName, rawValue, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return Target{}, ErrMalformedStartLine
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return Target{}, ErrMalformedStartLine
		}
		queries[name] = value
	}
	return Target{RelativePath: path, Queries: queries}, nil
}

// Path returns the full decoded request path.
func (t Target) Path() string {
	return t.TargetPath + t.RelativePath
}
