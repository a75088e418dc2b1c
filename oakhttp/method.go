package oakhttp

// Method is an HTTP request method. The set is open: a token outside
// the named constants is carried through untouched, so routing never
// has to reject a method it does not know about.
type Method string

const (
	MethodGet    Method = "GET"
	MethodHead   Method = "HEAD"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Known reports whether m is one of the named constants.
func (m Method) Known() bool {
	switch m {
	case MethodGet, MethodHead, MethodPost, MethodPut, MethodDelete:
		return true
	}
	return false
}

func (m Method) String() string { return string(m) }
