package oakhttp

import "testing"

func named(tag string, sink *string) HandlerFunc {
	return func(*Request, *Response) error {
		*sink = tag
		return nil
	}
}

func TestSpecificBeatsAny(t *testing.T) {
	rt := newRouter()
	var got string
	rt.register("/foo", kindSpecific, MethodGet, named("specific", &got))
	rt.register("/foo", kindAny, "", named("any", &got))
	fn, prefix, ok := rt.resolve(MethodGet, "/foo")
	if !ok || prefix != "" {
		t.Fatalf("resolve: ok=%v prefix=%q", ok, prefix)
	}
	fn(nil, nil)
	if got != "specific" {
		t.Fatalf("GET /foo ran %q, want specific", got)
	}
}

func TestAnyCatchesOtherMethods(t *testing.T) {
	rt := newRouter()
	var got string
	rt.register("/foo", kindSpecific, MethodGet, named("specific", &got))
	rt.register("/foo", kindAny, "", named("any", &got))
	fn, _, ok := rt.resolve(MethodPost, "/foo")
	if !ok {
		t.Fatal("POST /foo should resolve")
	}
	fn(nil, nil)
	if got != "any" {
		t.Fatalf("POST /foo ran %q, want any", got)
	}
}

func TestDirectoryLongestPrefixWins(t *testing.T) {
	rt := newRouter()
	var got string
	rt.register("/a", kindDirectory, "", named("short", &got))
	rt.register("/a/b", kindDirectory, "", named("long", &got))
	fn, prefix, ok := rt.resolve(MethodGet, "/a/b/c")
	if !ok {
		t.Fatal("no match for /a/b/c")
	}
	if prefix != "/a/b" {
		t.Fatalf("prefix = %q, want /a/b", prefix)
	}
	fn(nil, nil)
	if got != "long" {
		t.Fatalf("ran %q, want long", got)
	}
	if _, prefix, ok := rt.resolve(MethodGet, "/a/x"); !ok || prefix != "/a" {
		t.Fatalf("/a/x: ok=%v prefix=%q, want /a", ok, prefix)
	}
}

func TestDirectorySegmentBoundary(t *testing.T) {
	rt := newRouter()
	var got string
	rt.register("/a", kindDirectory, "", named("dir", &got))
	if _, _, ok := rt.resolve(MethodGet, "/ab"); ok {
		t.Fatal("/ab must not match directory /a")
	}
	// A directory pattern is a proper prefix, never the path itself.
	if _, _, ok := rt.resolve(MethodGet, "/a"); ok {
		t.Fatal("/a must not match directory /a exactly")
	}
}

func TestExactEntryBeatsDirectory(t *testing.T) {
	rt := newRouter()
	var got string
	rt.register("/a", kindDirectory, "", named("dir", &got))
	rt.register("/a/b", kindAny, "", named("exact", &got))
	fn, prefix, ok := rt.resolve(MethodGet, "/a/b")
	if !ok || prefix != "" {
		t.Fatalf("resolve: ok=%v prefix=%q", ok, prefix)
	}
	fn(nil, nil)
	if got != "exact" {
		t.Fatalf("ran %q, want exact", got)
	}
}

func TestResolveNoMatch(t *testing.T) {
	rt := newRouter()
	var got string
	rt.register("/foo", kindSpecific, MethodGet, named("specific", &got))
	if _, _, ok := rt.resolve(MethodPost, "/foo"); ok {
		t.Fatal("method mismatch with no fallback should not resolve")
	}
	if _, _, ok := rt.resolve(MethodGet, "/bar"); ok {
		t.Fatal("unregistered path should not resolve")
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	check := func(name string, fn func(rt *router)) {
		t.Run(name, func(t *testing.T) {
			rt := newRouter()
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			fn(rt)
		})
	}
	nop := func(*Request, *Response) error { return nil }
	check("specific", func(rt *router) {
		rt.register("/x", kindSpecific, MethodGet, nop)
		rt.register("/x", kindSpecific, MethodGet, nop)
	})
	check("any", func(rt *router) {
		rt.register("/x", kindAny, "", nop)
		rt.register("/x", kindAny, "", nop)
	})
	check("directory", func(rt *router) {
		rt.register("/x", kindDirectory, "", nop)
		rt.register("/x", kindDirectory, "", nop)
	})
}

func TestDifferentMethodsShareAPattern(t *testing.T) {
	rt := newRouter()
	nop := func(*Request, *Response) error { return nil }
	rt.register("/x", kindSpecific, MethodGet, nop)
	rt.register("/x", kindSpecific, MethodPost, nop) // must not panic
	if _, _, ok := rt.resolve(MethodPost, "/x"); !ok {
		t.Fatal("POST /x should resolve")
	}
}

func TestNormalizePattern(t *testing.T) {
	cases := map[string]string{
		"":       "/",
		"/":      "/",
		"foo":    "/foo",
		"/foo/":  "/foo",
		"/foo//": "/foo",
	}
	for in, want := range cases {
		if got := normalizePattern(in); got != want {
			t.Errorf("normalizePattern(%q) = %q, want %q", in, got, want)
		}
	}
}
