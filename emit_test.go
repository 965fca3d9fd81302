package markdoll

import (
	"bytes"
	"testing"
)

func newHTMLCtx() (*EmitContext, *bytes.Buffer, *Bag) {
	buf := &bytes.Buffer{}
	bag := &Bag{}
	reg := NewEngineRegistry()
	return &EmitContext{Target: "html", Sink: buf, Registry: reg, Bag: bag}, buf, bag
}

func TestEmitParagraphAndText(t *testing.T) {
	ctx, buf, _ := newHTMLCtx()
	doc := &Node{Kind: KindDocument}
	para := &Node{Kind: KindParagraph}
	para.AppendChild(&Node{Kind: KindText, Text: "a < b", Span: Span{Source: "doc"}})
	doc.AppendChild(para)
	Emit(ctx, doc)
	want := "<p>a &lt; b</p>"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestEmitSectionHeadingLevelClamped(t *testing.T) {
	ctx, buf, _ := newHTMLCtx()
	doc := &Node{Kind: KindDocument}
	sec := &Node{Kind: KindSection, Heading: "deep", Depth: 20}
	doc.AppendChild(sec)
	Emit(ctx, doc)
	if !bytes.Contains(buf.Bytes(), []byte("<h6>deep</h6>")) {
		t.Errorf("output = %q, want clamped to h6", buf.String())
	}
}

func TestEmitListOrderedVsUnordered(t *testing.T) {
	ctx, buf, _ := newHTMLCtx()
	list := &Node{Kind: KindList, ListKind: ListOrdered}
	item := &Node{Kind: KindListItem}
	item.AppendChild(&Node{Kind: KindText, Text: "x", Span: Span{Source: "doc"}})
	list.AppendChild(item)
	Emit(ctx, list)
	got := buf.String()
	if got != "<ol><li>x</li></ol>" {
		t.Errorf("output = %q", got)
	}
}

func TestEmitErrorNodeSkippedSilently(t *testing.T) {
	ctx, buf, bag := newHTMLCtx()
	doc := &Node{Kind: KindDocument}
	doc.AppendChild(&Node{Kind: KindError, Span: Span{Source: "doc"}})
	Emit(ctx, doc)
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
	if len(bag.Diagnostics()) != 0 {
		t.Errorf("diagnostics = %+v, want none (already raised earlier)", bag.Diagnostics())
	}
}

func TestEmitTagInvocationUsesRegisteredEmitter(t *testing.T) {
	ctx, buf, _ := newHTMLCtx()
	ctx.Registry.Register(&TagDef{
		Name: "shout", Content: TagContentNone,
		Emit: map[string]TagEmitter{
			"html": func(ctx *EmitContext, inv *Invocation, payload any) {
				ctx.WriteString("<b>!</b>")
			},
		},
	})
	n := &Node{Kind: KindTagInvocation, Name: "shout", Span: Span{Source: "doc"}}
	Emit(ctx, n)
	if buf.String() != "<b>!</b>" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestEmitTagInvocationMissingTargetWarns(t *testing.T) {
	ctx, buf, bag := newHTMLCtx()
	ctx.Registry.Register(&TagDef{
		Name: "pdfonly", Content: TagContentNone,
		Emit: map[string]TagEmitter{"pdf": func(ctx *EmitContext, inv *Invocation, payload any) {}},
	})
	n := &Node{Kind: KindTagInvocation, Name: "pdfonly", Span: Span{Source: "doc"}}
	Emit(ctx, n)
	if buf.Len() != 0 {
		t.Errorf("output = %q, want empty", buf.String())
	}
	if len(bag.Diagnostics()) != 1 || bag.Diagnostics()[0].Code != CodeEmitNoTarget {
		t.Errorf("diagnostics = %+v, want one CodeEmitNoTarget warning", bag.Diagnostics())
	}
}

func TestHTMLEscapeAllFiveChars(t *testing.T) {
	ctx, buf, _ := newHTMLCtx()
	HTMLEscape(ctx, `&<>"'`)
	want := "&amp;&lt;&gt;&quot;&#39;"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
