package markdoll

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseAndRenderToEndToEnd(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&TagDef{
		Name: "em", Arg: ArgNone, Content: TagContentEmbedded,
		Emit: map[string]TagEmitter{
			"html": func(ctx *EmitContext, inv *Invocation, payload any) {
				sub, ok := payload.(*Node)
				if !ok {
					return
				}
				ctx.WriteString("<em>")
				Emit(ctx, sub)
				ctx.WriteString("</em>")
			},
		},
	})

	src := "&title\nsome [em:emphasized] text\n"
	ast, diags := Parse(reg, src, "doc", "html", false)
	for _, d := range diags {
		if d.Severity == SeverityError {
			t.Fatalf("unexpected error diagnostic: %s", d.Rendered())
		}
	}

	var buf bytes.Buffer
	renderDiags := RenderTo(reg, ast, "html", &buf)
	for _, d := range renderDiags {
		if d.Severity == SeverityError {
			t.Fatalf("unexpected render error: %s", d.Rendered())
		}
	}

	got := buf.String()
	want := "<section><h1>title</h1></section><p>some <em>emphasized</em> text</p>"
	if got != want {
		t.Errorf("render = %q, want %q", got, want)
	}
}

func TestParseUnknownTagProducesNoOutputAndADiagnostic(t *testing.T) {
	reg := NewRegistry()
	src := "[bogus]\n"
	ast, diags := Parse(reg, src, "doc", "html", false)

	found := false
	for _, d := range diags {
		if d.Code == CodeTagUnknown {
			found = true
		}
	}
	if !found {
		t.Fatalf("diagnostics = %+v, want CodeTagUnknown", diags)
	}

	var buf bytes.Buffer
	RenderTo(reg, ast, "html", &buf)
	if buf.Len() != 0 {
		t.Errorf("render = %q, want empty (unknown tag became an Error node)", buf.String())
	}
}

// ignoreSpans is a go-cmp option that treats two ASTs as equal regardless
// of their byte-offset bookkeeping, for idempotence checks: re-parsing the
// same text under a different source name must reproduce the same tree
// shape, not the same spans.
var ignoreSpans = cmpopts.IgnoreFields(Node{}, "Span", "NameSpan", "ArgSpan", "HeadingSpan")

func TestParseEmbeddedIsIdempotentIgnoringSpans(t *testing.T) {
	bag1 := &Bag{}
	bag2 := &Bag{}
	src := "plain paragraph with [br] a tag"

	first := ParseEmbedded(bag1, "source-a", src)
	second := ParseEmbedded(bag2, "source-b", src)

	opts := cmp.Options{ignoreSpans, cmpopts.IgnoreFields(TagBody{}, "Span"), cmpopts.IgnoreFields(Flag{}, "Span"), cmpopts.IgnoreFields(Prop{}, "Span")}
	if diff := cmp.Diff(first, second, opts); diff != "" {
		t.Errorf("re-parsing the same text produced a different tree shape (-first +second):\n%s", diff)
	}
}
