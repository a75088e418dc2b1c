package http1

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Wire-level failures. The caller maps these onto its public taxonomy.
var (
	ErrMalformedStartLine = errors.New("http1: malformed start line")
	ErrMalformedHeader    = errors.New("http1: malformed header")
	ErrHeaderTooLarge     = errors.New("http1: header too large")
	ErrBodyTooLarge       = errors.New("http1: body too large")
)

// Field is one header line, name and value untouched beyond whitespace
// trimming of the value. Order of appearance is preserved.
type Field struct {
	Name  string
	Value string
}

// ParsedRequest is the raw shape of one request as read off the wire.
type ParsedRequest struct {
	Method     string
	RequestURI string
	Proto      string
	Headers    []Field
	Body       []byte
}

// Reader decodes HTTP/1.1 requests from a buffered stream. Bodies are
// length-delimited only; any Transfer-Encoding header is refused.
type Reader struct {
	BR             *bufio.Reader
	MaxHeaderBytes int
	MaxBodyBytes   int64
}

// ReadRequest reads exactly one request. Any error leaves the stream in
// an undefined position, so the connection must be dropped.
func (r *Reader) ReadRequest() (*ParsedRequest, error) {
	line, err := r.readLine()
	if err != nil {
		return nil, err
	}
	parts := strings.Split(line, " ")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || !strings.HasPrefix(parts[2], "HTTP/") {
		return nil, ErrMalformedStartLine
	}
	pr := &ParsedRequest{Method: parts[0], RequestURI: parts[1], Proto: parts[2]}
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || name == "" || strings.ContainsAny(name, " \t") {
			return nil, ErrMalformedHeader
		}
		pr.Headers = append(pr.Headers, Field{Name: name, Value: strings.TrimSpace(value)})
	}
	if hasField(pr.Headers, "Transfer-Encoding") {
		// No transfer codings are supported; refusing the message
		// outright avoids CL/TE request smuggling ambiguity.
		return nil, ErrMalformedHeader
	}
	n, err := contentLength(pr.Headers)
	if err != nil {
		return nil, err
	}
	if r.MaxBodyBytes > 0 && n > r.MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}
	if n > 0 {
		body := make([]byte, n)
		if _, err := io.ReadFull(r.BR, body); err != nil {
			return nil, fmt.Errorf("http1: short body: %w", err)
		}
		pr.Body = body
	}
	return pr, nil
}

// readLine reads up to LF, dropping CR bytes, enforcing the header
// size limit per line.
func (r *Reader) readLine() (string, error) {
	var sb strings.Builder
	for {
		b, err := r.BR.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '\n' {
			break
		}
		if b != '\r' {
			sb.WriteByte(b)
		}
		if r.MaxHeaderBytes > 0 && sb.Len() > r.MaxHeaderBytes {
			return "", ErrHeaderTooLarge
		}
	}
	return sb.String(), nil
}

// contentLength returns the declared body length. Repeated
// Content-Length fields must agree; disagreement is malformed.
func contentLength(fields []Field) (int64, error) {
	var vals []string
	for _, f := range fields {
		if strings.EqualFold(f.Name, "Content-Length") {
			vals = append(vals, strings.TrimSpace(f.Value))
		}
	}
	if len(vals) == 0 {
		return 0, nil
	}
	n, err := strconv.ParseInt(vals[0], 10, 64)
	if err != nil || n < 0 {
		return 0, ErrMalformedHeader
	}
	for _, v := range vals[1:] {
		if v != vals[0] {
			return 0, ErrMalformedHeader
		}
	}
	return n, nil
}

func hasField(fields []Field, name string) bool {
	for _, f := range fields {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}
