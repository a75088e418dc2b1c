package oakhttp

import "strconv"

// Status is an HTTP status code. Like Method, the set is open: a
// handler may set any code and the encoder serializes it verbatim,
// with an empty reason phrase for codes outside the table below
// (RFC 9112 permits an empty reason phrase).
type Status int

const (
	StatusOK               Status = 200
	StatusCreated          Status = 201
	StatusAccepted         Status = 202
	StatusNonAuthoritative Status = 203
	StatusNoContent        Status = 204

	StatusBadRequest      Status = 400
	StatusUnauthorized    Status = 401
	StatusPaymentRequired Status = 402
	StatusNotFound        Status = 404
	StatusUpgradeRequired Status = 426
	StatusTooManyRequests Status = 429

	StatusInternalServerError     Status = 500
	StatusNotImplemented          Status = 501
	StatusHTTPVersionNotSupported Status = 505
)

// Reason returns the reason phrase for s, or "" for unknown codes.
func (s Status) Reason() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusCreated:
		return "Created"
	case StatusAccepted:
		return "Accepted"
	case StatusNonAuthoritative:
		return "Non-Authoritative Information"
	case StatusNoContent:
		return "No Content"
	case StatusBadRequest:
		return "Bad Request"
	case StatusUnauthorized:
		return "Unauthorized"
	case StatusPaymentRequired:
		return "Payment Required"
	case StatusNotFound:
		return "Not Found"
	case StatusUpgradeRequired:
		return "Upgrade Required"
	case StatusTooManyRequests:
		return "Too Many Requests"
	case StatusInternalServerError:
		return "Internal Server Error"
	case StatusNotImplemented:
		return "Not Implemented"
	case StatusHTTPVersionNotSupported:
		return "HTTP Version Not Supported"
	}
	return ""
}

func (s Status) String() string {
	if r := s.Reason(); r != "" {
		return strconv.Itoa(int(s)) + " " + r
	}
	return strconv.Itoa(int(s))
}
