package oakhttp

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is an HTTP protocol version as it appears in the request
// line, "HTTP/<major>.<minor>".
type Version struct {
	Major uint
	Minor uint
}

// ParseVersion parses a version token. Anything other than the exact
// "HTTP/<digits>.<digits>" shape fails with ErrMalformedStartLine.
func ParseVersion(tok string) (Version, error) {
	rest, ok := strings.CutPrefix(tok, "HTTP/")
	if !ok {
		return Version{}, ErrMalformedStartLine
	}
	major, minor, ok := strings.Cut(rest, ".")
	if !ok {
		return Version{}, ErrMalformedStartLine
	}
	maj, err := strconv.ParseUint(major, 10, 16)
	if err != nil {
		return Version{}, ErrMalformedStartLine
	}
	min, err := strconv.ParseUint(minor, 10, 16)
	if err != nil {
		return Version{}, ErrMalformedStartLine
	}
	return Version{Major: uint(maj), Minor: uint(min)}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("HTTP/%d.%d", v.Major, v.Minor)
}
