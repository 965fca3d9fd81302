package tags

import (
	"strings"
	"testing"

	markdoll "github.com/0x57e11a/markdoll"
)

func TestCodeBlockWrapsInPre(t *testing.T) {
	reg := markdoll.NewRegistry()
	registerCode(reg)
	src := "[code(go)::\n\tpackage main\n"
	got := renderHTML(t, reg, src)
	// chroma wraps the highlighted "package" keyword in its own styled
	// span, so the two words are checked separately.
	if !strings.Contains(got, "<pre") || !strings.Contains(got, "package") || !strings.Contains(got, "main") {
		t.Errorf("render = %q, want a <pre> block containing the source", got)
	}
}

func TestCodeInlineWrapsInCodeElement(t *testing.T) {
	reg := markdoll.NewRegistry()
	registerCode(reg)
	got := renderHTML(t, reg, "[code(go):fmt.Println]")
	if !strings.Contains(got, "<code") || !strings.Contains(got, "fmt.Println") {
		t.Errorf("render = %q, want an inline <code> element containing the source", got)
	}
	if strings.Contains(got, "<pre") {
		t.Errorf("render = %q, inline code should not use <pre>", got)
	}
}

func TestCodeLangPropRendersSource(t *testing.T) {
	reg := markdoll.NewRegistry()
	registerCode(reg)
	// lang prop is consulted after the argument, so either form must at
	// least render the literal source through unharmed.
	got := renderHTML(t, reg, "[code()(lang=python):print(1)]")
	if !strings.Contains(got, "print") {
		t.Errorf("render = %q, want the source text preserved", got)
	}
}
