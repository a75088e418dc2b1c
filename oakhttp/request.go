package oakhttp

import (
	"errors"
	"fmt"

	"oakhttp.dev/go/server/oakhttp/internal/http1"
)

// Request is a fully decoded HTTP request. Handlers receive it for
// inspection only; the engine owns it for the lifetime of one dispatch.
type Request struct {
	Version Version
	Method  Method
	Target  Target
	Headers *Headers
	Cookies Cookies
	Body    []byte

	remoteAddr string
}

// RemoteAddr returns the peer address, when known.
func (r *Request) RemoteAddr() string { return r.remoteAddr }

// decodeRequest turns one wire-level request into a Request, mapping
// framing failures onto the package error taxonomy. Any error returned
// here is fatal to the connection.
func decodeRequest(rd *http1.Reader) (*Request, error) {
	pr, err := rd.ReadRequest()
	if err != nil {
		return nil, classifyWireError(err)
	}
	version, err := ParseVersion(pr.Proto)
	if err != nil {
		return nil, err
	}
	if version.Major != 1 {
		return nil, ErrUnsupportedVersion
	}
	target, err := ParseTarget(pr.RequestURI)
	if err != nil {
		return nil, err
	}
	headers := NewHeaders()
	for _, f := range pr.Headers {
		// Duplicate names: the later value overrides.
		headers.Set(f.Name, f.Value)
	}
	cookies := make(Cookies)
	if v, ok := headers.Get("Cookie"); ok {
		cookies = parseCookies(v)
	}
	return &Request{
		Version: version,
		Method:  Method(pr.Method),
		Target:  target,
		Headers: headers,
		Cookies: cookies,
		Body:    pr.Body,
	}, nil
}

func classifyWireError(err error) error {
	switch {
	case errors.Is(err, http1.ErrMalformedStartLine):
		return ErrMalformedStartLine
	case errors.Is(err, http1.ErrMalformedHeader):
		return ErrMalformedHeader
	case errors.Is(err, http1.ErrHeaderTooLarge):
		return ErrHeaderTooLarge
	case errors.Is(err, http1.ErrBodyTooLarge):
		return ErrBodyTooLarge
	}
	return fmt.Errorf("oakhttp: read request: %w", err)
}
