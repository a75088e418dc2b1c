package oakhttp

import "strings"

// Headers holds HTTP header fields. Lookup is case-insensitive; names
// are stored in canonical form (Content-Type, not content-type).
// Insertion order is preserved so serialized output is deterministic.
// Setting an existing name replaces its value but keeps its position.
type Headers struct {
	order []string
	value map[string]string
}

func NewHeaders() *Headers {
	return &Headers{value: make(map[string]string)}
}

// Set stores value under name, replacing any previous value.
func (h *Headers) Set(name, value string) {
	k := canonicalKey(name)
	if _, ok := h.value[k]; !ok {
		h.order = append(h.order, k)
	}
	h.value[k] = value
}

// Get returns the value stored under name.
func (h *Headers) Get(name string) (string, bool) {
	v, ok := h.value[canonicalKey(name)]
	return v, ok
}

// Has reports whether name is present.
func (h *Headers) Has(name string) bool {
	_, ok := h.value[canonicalKey(name)]
	return ok
}

// Del removes name, if present.
func (h *Headers) Del(name string) {
	k := canonicalKey(name)
	if _, ok := h.value[k]; !ok {
		return
	}
	delete(h.value, k)
	for i, o := range h.order {
		if o == k {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of fields.
func (h *Headers) Len() int { return len(h.order) }

// Each calls fn for every field in insertion order.
func (h *Headers) Each(fn func(name, value string)) {
	for _, k := range h.order {
		fn(k, h.value[k])
	}
}

// canonicalKey uppercases the first letter of each dash-separated word.
func canonicalKey(s string) string {
	b := []byte(strings.ToLower(s))
	upper := true
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			if upper {
				b[i] = byte(c - 'a' + 'A')
			}
			upper = false
			continue
		}
		upper = c == '-'
	}
	return string(b)
}
