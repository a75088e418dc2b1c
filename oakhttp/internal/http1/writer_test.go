package http1

import (
	"bufio"
	"bytes"
	"testing"
)

func TestWriteResponse(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	fields := []Field{
		{Name: "Date", Value: "Thu, 01 Jan 2026 00:00:00 GMT"},
		{Name: "Content-Length", Value: "2"},
		{Name: "Connection", Value: "close"},
	}
	if err := WriteResponse(bw, "HTTP/1.1", 200, "OK", fields, []byte("hi")); err != nil {
		t.Fatalf("write: %v", err)
	}
	bw.Flush()
	want := "HTTP/1.1 200 OK\r\n" +
		"Date: Thu, 01 Jan 2026 00:00:00 GMT\r\n" +
		"Content-Length: 2\r\n" +
		"Connection: close\r\n" +
		"\r\n" +
		"hi"
	if got := buf.String(); got != want {
		t.Fatalf("wire =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteResponseUnknownCodeEmptyReason(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	if err := WriteResponse(bw, "HTTP/1.1", 299, "", nil, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	bw.Flush()
	if got := buf.String(); got != "HTTP/1.1 299 \r\n\r\n" {
		t.Fatalf("wire = %q", got)
	}
}

func TestWriteResponseSanitizesValues(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	fields := []Field{{Name: "X-A", Value: "a\r\nInjected: b"}}
	if err := WriteResponse(bw, "HTTP/1.1", 200, "OK", fields, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	bw.Flush()
	if got := buf.String(); got != "HTTP/1.1 200 OK\r\nX-A: aInjected: b\r\n\r\n" {
		t.Fatalf("wire = %q", got)
	}
}
