package oakhttp

import (
	"fmt"
	"strings"
)

// HandlerFunc is the callback contract. The request is read-only, the
// response write-only; a non-nil error makes the dispatcher discard
// whatever the handler wrote and reply 500.
type HandlerFunc func(*Request, *Response) error

type handlerKind int

const (
	kindAny handlerKind = iota
	kindSpecific
	kindDirectory
)

type routeEntry struct {
	kind   handlerKind
	method Method
	fn     HandlerFunc
}

// router resolves (method, path) pairs to handlers. All registration
// happens on one goroutine before serving starts; afterwards the table
// is read-only and shared by every connection without locking.
type router struct {
	exact map[string][]routeEntry
	dirs  map[string]HandlerFunc
}

func newRouter() *router {
	return &router{
		exact: make(map[string][]routeEntry),
		dirs:  make(map[string]HandlerFunc),
	}
}

// register adds an entry. A second entry with the same pattern and
// handler kind (and, for specific entries, the same method) is a
// configuration bug and panics immediately.
func (rt *router) register(pattern string, kind handlerKind, method Method, fn HandlerFunc) {
	if fn == nil {
		panic("oakhttp: nil handler registered for " + pattern)
	}
	pattern = normalizePattern(pattern)
	if kind == kindDirectory {
		if _, ok := rt.dirs[pattern]; ok {
			panic(fmt.Sprintf("oakhttp: duplicate directory handler for %q", pattern))
		}
		rt.dirs[pattern] = fn
		return
	}
	for _, e := range rt.exact[pattern] {
		if e.kind != kind {
			continue
		}
		if kind == kindAny || e.method == method {
			panic(fmt.Sprintf("oakhttp: duplicate %s handler for %q", describeKind(kind, method), pattern))
		}
	}
	rt.exact[pattern] = append(rt.exact[pattern], routeEntry{kind: kind, method: method, fn: fn})
}

func describeKind(kind handlerKind, method Method) string {
	if kind == kindAny {
		return "any-method"
	}
	return string(method)
}

func normalizePattern(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

// resolve picks the winning handler for a request. Precedence: a
// specific entry matching both path and method, then an any-method
// entry matching the path, then the longest directory prefix on a
// segment boundary ("/foo" owns "/foo/bar" but not "/foobar" and not
// "/foo" itself). The returned prefix is non-empty only for directory
// wins.
func (rt *router) resolve(method Method, path string) (HandlerFunc, string, bool) {
	entries := rt.exact[path]
	for _, e := range entries {
		if e.kind == kindSpecific && e.method == method {
			return e.fn, "", true
		}
	}
	for _, e := range entries {
		if e.kind == kindAny {
			return e.fn, "", true
		}
	}
	for prefix := path; ; {
		i := strings.LastIndexByte(prefix, '/')
		if i < 0 {
			break
		}
		prefix = prefix[:i]
		key := prefix
		if key == "" {
			key = "/"
		}
		if key != path {
			if fn, ok := rt.dirs[key]; ok {
				return fn, key, true
			}
		}
		if key == "/" {
			break
		}
	}
	return nil, "", false
}
