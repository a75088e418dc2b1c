package oakhttp

import (
	"strconv"
	"strings"
	"time"
)

// httpTimeFormat is the IMF-fixdate layout used for the Date header and
// cookie Expires attributes.
const httpTimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// SameSite restricts when a cookie is sent on cross-site requests.
type SameSite int

const (
	SameSiteDefault SameSite = iota
	SameSiteStrict
	SameSiteLax
	SameSiteNone
)

func (s SameSite) String() string {
	switch s {
	case SameSiteStrict:
		return "Strict"
	case SameSiteLax:
		return "Lax"
	case SameSiteNone:
		return "None"
	}
	return ""
}

// Cookies holds the cookies a client sent with a request, keyed by
// name. Only Name and Value are populated on inbound cookies.
type Cookies map[string]Cookie

// Cookie is a single cookie. The attribute fields shape the Set-Cookie
// header a response carries.
type Cookie struct {
	Name  string
	Value string

	Domain   string
	Path     string
	Expires  time.Time
	MaxAge   int // seconds; 0 leaves the attribute out
	Secure   bool
	HttpOnly bool

	sameSite SameSite
}

// NewCookie returns a cookie with only name and value set.
func NewCookie(name, value string) *Cookie {
	return &Cookie{Name: name, Value: value}
}

// SetSameSite sets the SameSite attribute. SameSiteNone is only valid
// on a Secure cookie; browsers reject the combination outright, so it
// is refused here rather than surfacing at serialization time.
func (c *Cookie) SetSameSite(s SameSite) error {
	if s == SameSiteNone && !c.Secure {
		return ErrInsecureSameSiteNone
	}
	c.sameSite = s
	return nil
}

// SameSite returns the SameSite attribute.
func (c *Cookie) SameSite() SameSite { return c.sameSite }

// String serializes the cookie as a Set-Cookie header value. Attribute
// order is fixed: Domain, Path, Expires, Max-Age, Secure, HttpOnly,
// SameSite.
func (c *Cookie) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)
	if c.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}
	if c.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}
	if !c.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(c.Expires.UTC().Format(httpTimeFormat))
	}
	if c.MaxAge != 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(c.MaxAge))
	}
	if c.Secure {
		b.WriteString("; Secure")
	}
	if c.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	if c.sameSite != SameSiteDefault {
		b.WriteString("; SameSite=")
		b.WriteString(c.sameSite.String())
	}
	return b.String()
}

// parseCookies decodes a Cookie request header: segments split on ";",
// each split on the first "=". Segments without "=" are skipped.
func parseCookies(header string) Cookies {
	cookies := make(Cookies)
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		cookies[name] = Cookie{Name: name, Value: value}
	}
	return cookies
}
