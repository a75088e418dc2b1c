package oakhttp

import "testing"

func TestHeaderCanonicalization(t *testing.T) {
	h := NewHeaders()
	h.Set("content-type", "text/plain")
	if got, ok := h.Get("Content-Type"); !ok || got != "text/plain" {
		t.Fatalf("Get canonical = %q, %v", got, ok)
	}
	if !h.Has("CONTENT-TYPE") {
		t.Fatal("Has should be case-insensitive")
	}
	h.Del("Content-type")
	if h.Has("Content-Type") {
		t.Fatal("Del should be case-insensitive")
	}
}

func TestHeaderOrderPreserved(t *testing.T) {
	h := NewHeaders()
	h.Set("B-Header", "1")
	h.Set("A-Header", "2")
	h.Set("C-Header", "3")
	// Overriding keeps the original position.
	h.Set("b-header", "9")
	var order []string
	h.Each(func(name, value string) { order = append(order, name+"="+value) })
	want := []string{"B-Header=9", "A-Header=2", "C-Header=3"}
	if len(order) != len(want) {
		t.Fatalf("got %d fields, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("field %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestHeaderDelKeepsRest(t *testing.T) {
	h := NewHeaders()
	h.Set("A", "1")
	h.Set("B", "2")
	h.Set("C", "3")
	h.Del("B")
	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
	var names []string
	h.Each(func(name, _ string) { names = append(names, name) })
	if names[0] != "A" || names[1] != "C" {
		t.Fatalf("order after Del = %v", names)
	}
}
