package oakhttp

import "testing"

func TestParseTarget(t *testing.T) {
	tgt, err := ParseTarget("/search?q=hello&page=2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tgt.RelativePath != "/search" || tgt.TargetPath != "" {
		t.Fatalf("paths = %q %q", tgt.TargetPath, tgt.RelativePath)
	}
	if tgt.Queries["q"] != "hello" || tgt.Queries["page"] != "2" {
		t.Fatalf("queries = %v", tgt.Queries)
	}
	if tgt.Path() != "/search" {
		t.Fatalf("Path() = %q", tgt.Path())
	}
}

func TestParseTargetPercentDecoding(t *testing.T) {
	tgt, err := ParseTarget("/a%20b?msg=hello%20world&dir=%2Ftmp")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tgt.RelativePath != "/a b" {
		t.Fatalf("path = %q", tgt.RelativePath)
	}
	if tgt.Queries["msg"] != "hello world" || tgt.Queries["dir"] != "/tmp" {
		t.Fatalf("queries = %v", tgt.Queries)
	}
}

func TestParseTargetDuplicateKeysLastWins(t *testing.T) {
	tgt, err := ParseTarget("/p?a=1&a=2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tgt.Queries["a"] != "2" {
		t.Fatalf("a = %q, want 2", tgt.Queries["a"])
	}
}

func TestParseTargetSkipsPairsWithoutEquals(t *testing.T) {
	tgt, err := ParseTarget("/p?flag&a=1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := tgt.Queries["flag"]; ok {
		t.Fatal("bare key should be skipped")
	}
	if tgt.Queries["a"] != "1" {
		t.Fatalf("a = %q", tgt.Queries["a"])
	}
}

func TestParseTargetBadEscape(t *testing.T) {
	if _, err := ParseTarget("/bad%zz"); err != ErrMalformedStartLine {
		t.Fatalf("err = %v, want ErrMalformedStartLine", err)
	}
	if _, err := ParseTarget("/p?a=%zz"); err != ErrMalformedStartLine {
		t.Fatalf("query err = %v, want ErrMalformedStartLine", err)
	}
}
