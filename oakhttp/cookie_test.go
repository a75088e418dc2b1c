package oakhttp

import (
	"testing"
	"time"
)

func TestCookieStringAttributeOrder(t *testing.T) {
	c := NewCookie("sid", "abc123")
	c.Domain = "example.com"
	c.Path = "/app"
	c.Expires = time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	c.MaxAge = 3600
	c.Secure = true
	c.HttpOnly = true
	if err := c.SetSameSite(SameSiteStrict); err != nil {
		t.Fatalf("SetSameSite: %v", err)
	}
	want := "sid=abc123; Domain=example.com; Path=/app; " +
		"Expires=Fri, 02 Jan 2026 03:04:05 GMT; Max-Age=3600; " +
		"Secure; HttpOnly; SameSite=Strict"
	if got := c.String(); got != want {
		t.Fatalf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestCookieStringMinimal(t *testing.T) {
	if got := NewCookie("k", "v").String(); got != "k=v" {
		t.Fatalf("String() = %q", got)
	}
}

func TestSameSiteNoneRequiresSecure(t *testing.T) {
	c := NewCookie("k", "v")
	if err := c.SetSameSite(SameSiteNone); err != ErrInsecureSameSiteNone {
		t.Fatalf("err = %v, want ErrInsecureSameSiteNone", err)
	}
	if c.SameSite() != SameSiteDefault {
		t.Fatal("rejected SetSameSite must not stick")
	}
	c.Secure = true
	if err := c.SetSameSite(SameSiteNone); err != nil {
		t.Fatalf("secure cookie: %v", err)
	}
	if got := c.String(); got != "k=v; Secure; SameSite=None" {
		t.Fatalf("String() = %q", got)
	}
}

func TestParseCookies(t *testing.T) {
	cookies := parseCookies("k1=v1; k2=v2; malformed; k3=a=b")
	if len(cookies) != 3 {
		t.Fatalf("len = %d, want 3", len(cookies))
	}
	if cookies["k1"].Value != "v1" || cookies["k2"].Value != "v2" {
		t.Fatalf("cookies = %v", cookies)
	}
	// Split happens on the first "=" only.
	if cookies["k3"].Value != "a=b" {
		t.Fatalf("k3 = %q", cookies["k3"].Value)
	}
}
