package tags

import (
	"bytes"
	"testing"

	markdoll "github.com/0x57e11a/markdoll"
)

func renderHTML(t *testing.T, reg *markdoll.Registry, src string) string {
	t.Helper()
	ast, diags := markdoll.Parse(reg, src, "doc", "html", true)
	for _, d := range diags {
		if d.Severity == markdoll.SeverityError {
			t.Fatalf("unexpected error diagnostic: %s", d.Rendered())
		}
	}
	var buf bytes.Buffer
	renderDiags := markdoll.RenderTo(reg, ast, "html", &buf)
	for _, d := range renderDiags {
		if d.Severity == markdoll.SeverityError {
			t.Fatalf("unexpected render error: %s", d.Rendered())
		}
	}
	return buf.String()
}

func TestEmphasisTagsWrapElement(t *testing.T) {
	cases := map[string]string{
		"em":     "<em>",
		"strong": "<strong>",
		"b":      "<b>",
		"i":      "<i>",
	}
	for tag, openTag := range cases {
		reg := markdoll.NewRegistry()
		registerEmphasis(reg)
		got := renderHTML(t, reg, "["+tag+":word]")
		if !bytes.Contains([]byte(got), []byte(openTag)) || !bytes.Contains([]byte(got), []byte("word")) {
			t.Errorf("[%s:word] rendered %q, want it to contain %q and the word", tag, got, openTag)
		}
	}
}
