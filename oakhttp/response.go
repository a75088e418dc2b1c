package oakhttp

import (
	"bytes"
	"strings"
	"time"
)

// forbiddenHeaders are fields the encoder computes itself; handlers may
// not override them.
var forbiddenHeaders = []string{"Content-Length", "Connection", "Transfer-Encoding"}

// Response accumulates a handler's output. Nothing reaches the wire
// until dispatch completes, so a handler that fails mid-write can never
// leak a partial success to the client. A Response is consumed exactly
// once; every mutator fails with ErrResponseConsumed afterwards.
type Response struct {
	Version Version

	status   Status
	headers  *Headers
	cookies  []*Cookie
	body     bytes.Buffer
	consumed bool
}

func newResponse(version Version) *Response {
	h := NewHeaders()
	h.Set("Date", time.Now().UTC().Format(httpTimeFormat))
	return &Response{
		Version: version,
		status:  StatusOK,
		headers: h,
	}
}

// Status returns the status code currently set.
func (w *Response) Status() Status { return w.status }

// SetStatus changes the response status.
func (w *Response) SetStatus(s Status) error {
	if w.consumed {
		return ErrResponseConsumed
	}
	w.status = s
	return nil
}

// SetHeader sets a header field. Framing headers the engine owns are
// rejected, as are names or values that would break the wire format.
func (w *Response) SetHeader(name, value string) error {
	if w.consumed {
		return ErrResponseConsumed
	}
	for _, f := range forbiddenHeaders {
		if strings.EqualFold(name, f) {
			return ErrForbiddenHeader
		}
	}
	if name == "" || strings.ContainsAny(name, " \t\r\n:") || strings.ContainsAny(value, "\r\n") {
		return ErrInvalidHeader
	}
	w.headers.Set(name, value)
	return nil
}

// SetCookie adds a Set-Cookie header for c, replacing any cookie of the
// same name already in the jar. A SameSite=None cookie must be Secure.
func (w *Response) SetCookie(c *Cookie) error {
	if w.consumed {
		return ErrResponseConsumed
	}
	if c.SameSite() == SameSiteNone && !c.Secure {
		return ErrInsecureSameSiteNone
	}
	for i, old := range w.cookies {
		if old.Name == c.Name {
			w.cookies[i] = c
			return nil
		}
	}
	w.cookies = append(w.cookies, c)
	return nil
}

// Send appends p to the response body.
func (w *Response) Send(p []byte) error {
	if w.consumed {
		return ErrResponseConsumed
	}
	w.body.Write(p)
	return nil
}

// SendString appends s to the response body.
func (w *Response) SendString(s string) error { return w.Send([]byte(s)) }

// End finalizes the response. Calling it is optional: the dispatcher
// finalizes on handler return. After End every mutator fails.
func (w *Response) End() error {
	if w.consumed {
		return ErrResponseConsumed
	}
	w.consumed = true
	return nil
}

// EndWith appends s and finalizes in one step.
func (w *Response) EndWith(s string) error {
	if err := w.SendString(s); err != nil {
		return err
	}
	return w.End()
}
