package tags

import (
	"strings"
	"testing"

	markdoll "github.com/0x57e11a/markdoll"
)

func TestLinkRendersHrefAndTitle(t *testing.T) {
	reg := markdoll.NewRegistry()
	registerLink(reg)
	got := renderHTML(t, reg, `[link(https://example.com)(title=Example):visit]`)

	for _, want := range []string{`href="https://example.com"`, `title="Example"`, "visit", "</a>"} {
		if !strings.Contains(got, want) {
			t.Errorf("render = %q, missing %q", got, want)
		}
	}
}

func TestLinkWithoutTitleOmitsAttribute(t *testing.T) {
	reg := markdoll.NewRegistry()
	registerLink(reg)
	got := renderHTML(t, reg, `[link(https://example.com):visit]`)
	if strings.Contains(got, "title=") {
		t.Errorf("render = %q, should not contain a title attribute", got)
	}
}
