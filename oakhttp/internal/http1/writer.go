package http1

import (
	"bufio"
	"fmt"
	"strings"
)

// WriteResponse serializes a complete response: status line, the given
// fields in order, a blank line, then the body. The caller supplies
// every header, framing included; nothing is inferred here.
func WriteResponse(bw *bufio.Writer, proto string, code int, reason string, fields []Field, body []byte) error {
	if _, err := fmt.Fprintf(bw, "%s %03d %s\r\n", proto, code, reason); err != nil {
		return err
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", f.Name, sanitizeValue(f.Value)); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\r\n"); err != nil {
		return err
	}
	if len(body) > 0 {
		if _, err := bw.Write(body); err != nil {
			return err
		}
	}
	return nil
}

// sanitizeValue strips CR, LF and control bytes (HTAB excepted) so a
// header value can never break message framing.
func sanitizeValue(v string) string {
	if !strings.ContainsFunc(v, func(r rune) bool {
		return r == '\r' || r == '\n' || r == 0x7f || (r < 0x20 && r != '\t')
	}) {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' || c == '\n' || c == 0x7f {
			continue
		}
		if c < 0x20 && c != '\t' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
