package oakhttp

import "errors"

// Connection errors: fatal to the connection, no response is sent.
var (
	ErrMalformedStartLine = errors.New("oakhttp: malformed start line")
	ErrMalformedHeader    = errors.New("oakhttp: malformed header")
	ErrUnsupportedVersion = errors.New("oakhttp: unsupported protocol version")
	ErrHeaderTooLarge     = errors.New("oakhttp: header too large")
	ErrBodyTooLarge       = errors.New("oakhttp: body too large")
	ErrMissingHost        = errors.New("oakhttp: missing Host header")
	ErrMalformedKeepAlive = errors.New("oakhttp: malformed Keep-Alive header")
)

// Encoding errors: programmer mistakes surfaced to the handler rather
// than swallowed.
var (
	ErrResponseConsumed     = errors.New("oakhttp: response already consumed")
	ErrForbiddenHeader      = errors.New("oakhttp: header is managed by the engine")
	ErrInvalidHeader        = errors.New("oakhttp: invalid header")
	ErrInsecureSameSiteNone = errors.New("oakhttp: SameSite=None requires Secure")
)
