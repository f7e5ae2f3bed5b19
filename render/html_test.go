package render

import (
	"strings"
	"testing"
)

func TestIsCompleteDocument(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    bool
	}{
		{"doctype", "<!DOCTYPE html><html><body>x</body></html>", true},
		{"doctype lowercase", "<!doctype html>", true},
		{"html tag", "<html lang=\"vi\"><body>x</body></html>", true},
		{"leading whitespace", "  \n\t<!DOCTYPE html>", true},
		{"fragment", "<p>Hello</p>", false},
		{"div fragment", "<div><html-ish></div>", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCompleteDocument(tc.content); got != tc.want {
				t.Errorf("IsCompleteDocument(%q) = %v, want %v", tc.content, got, tc.want)
			}
		})
	}
}

func TestWrapHTMLPassesThroughCompleteDocuments(t *testing.T) {
	doc := "<!DOCTYPE html>\n<html><head></head><body><p>giữ nguyên</p></body></html>"
	if got := WrapHTML(doc, "Hợp đồng 12"); got != doc {
		t.Fatalf("complete document was modified:\n%s", got)
	}
}

func TestWrapHTMLWrapsFragments(t *testing.T) {
	got := WrapHTML("<p>Hello</p>", "Hợp đồng 12/HĐ-VPKĐ")

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="vi">`,
		"<title>Hợp đồng 12/HĐ-VPKĐ</title>",
		"Times New Roman",
		"size: A4",
		"border-collapse: collapse",
		"<p>Hello</p>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("shell missing %q", want)
		}
	}
}

func TestWrapHTMLHoistsStyleBlocks(t *testing.T) {
	fragment := `<style>.clause { margin-left: 2em; }</style><p class="clause">Điều 1</p>`
	got := WrapHTML(fragment, "x")

	if !strings.Contains(got, ".clause { margin-left: 2em; }") {
		t.Fatalf("fragment styles dropped:\n%s", got)
	}
	// Hoisted styles must land before the body content.
	styleAt := strings.Index(got, ".clause { margin-left: 2em; }")
	bodyAt := strings.Index(got, "<body>")
	if styleAt > bodyAt {
		t.Fatalf("styles not hoisted into head (style at %d, body at %d)", styleAt, bodyAt)
	}
}
