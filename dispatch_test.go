package markdoll

import "testing"

func tagNode(name string, arg *string, flags []Flag, props []Prop, body TagBody) *Node {
	return &Node{
		Kind: KindTagInvocation, Name: name, Span: Span{Source: "doc"},
		NameSpan: Span{Source: "doc"}, ArgSpan: Span{Source: "doc"},
		Arg: arg, Flags: flags, Props: props, Body: body,
	}
}

func TestDispatchUnknownTagBecomesError(t *testing.T) {
	bag := &Bag{}
	reg := NewEngineRegistry()
	n := tagNode("nope", nil, nil, nil, TagBody{})
	Dispatch(bag, reg, n, "")
	if n.Kind != KindError {
		t.Errorf("Kind = %v, want KindError", n.Kind)
	}
	if len(bag.Diagnostics()) != 1 || bag.Diagnostics()[0].Code != CodeTagUnknown {
		t.Errorf("diagnostics = %+v", bag.Diagnostics())
	}
}

func TestDispatchArgNoneRejectsArgument(t *testing.T) {
	bag := &Bag{}
	reg := NewEngineRegistry()
	reg.Register(&TagDef{Name: "br", Arg: ArgNone, Content: TagContentNone})
	arg := "oops"
	n := tagNode("br", &arg, nil, nil, TagBody{Kind: ContentNone})
	Dispatch(bag, reg, n, "")
	if n.Kind != KindError {
		t.Errorf("Kind = %v, want KindError", n.Kind)
	}
	if len(bag.Diagnostics()) != 1 || bag.Diagnostics()[0].Code != CodeTagArg {
		t.Errorf("diagnostics = %+v", bag.Diagnostics())
	}
}

func TestDispatchRequiredArgMissingIsError(t *testing.T) {
	bag := &Bag{}
	reg := NewEngineRegistry()
	reg.Register(&TagDef{Name: "link", Arg: ArgRequiredString, Content: TagContentNone})
	n := tagNode("link", nil, nil, nil, TagBody{Kind: ContentNone})
	Dispatch(bag, reg, n, "")
	if n.Kind != KindError {
		t.Errorf("Kind = %v, want KindError", n.Kind)
	}
}

func TestDispatchUnknownFlagWarnsButSucceeds(t *testing.T) {
	bag := &Bag{}
	reg := NewEngineRegistry()
	reg.Register(&TagDef{Name: "code", Arg: ArgNone, Content: TagContentNone})
	n := tagNode("code", nil, []Flag{{Name: "weird", Span: Span{Source: "doc"}}}, nil, TagBody{Kind: ContentNone})
	Dispatch(bag, reg, n, "")
	if n.Kind == KindError {
		t.Errorf("unknown flag should only warn, not fail the tag")
	}
	if len(bag.Diagnostics()) != 1 || bag.Diagnostics()[0].Severity != SeverityWarning || bag.Diagnostics()[0].Code != CodeTagFlag {
		t.Errorf("diagnostics = %+v", bag.Diagnostics())
	}
}

func TestDispatchPropIntValidation(t *testing.T) {
	bag := &Bag{}
	reg := NewEngineRegistry()
	reg.Register(&TagDef{
		Name: "heading", Arg: ArgNone, Content: TagContentNone,
		Props: map[string]PropDef{"level": {Kind: PropInt}},
	})
	n := tagNode("heading", nil, nil, []Prop{{Name: "level", Value: "not-a-number", Span: Span{Source: "doc"}}}, TagBody{Kind: ContentNone})
	Dispatch(bag, reg, n, "")
	if n.Kind != KindError {
		t.Errorf("Kind = %v, want KindError for non-integer prop", n.Kind)
	}
}

func TestDispatchPropEnumValidation(t *testing.T) {
	bag := &Bag{}
	reg := NewEngineRegistry()
	reg.Register(&TagDef{
		Name: "align", Arg: ArgNone, Content: TagContentNone,
		Props: map[string]PropDef{"side": {Kind: PropEnum, Enum: []string{"left", "right"}}},
	})
	n := tagNode("align", nil, nil, []Prop{{Name: "side", Value: "up", Span: Span{Source: "doc"}}}, TagBody{Kind: ContentNone})
	Dispatch(bag, reg, n, "")
	if n.Kind != KindError {
		t.Error("expected KindError for a value outside the enum")
	}
}

func TestDispatchBodyKindMismatch(t *testing.T) {
	bag := &Bag{}
	reg := NewEngineRegistry()
	reg.Register(&TagDef{Name: "quote", Arg: ArgNone, Content: TagContentRawBlock})
	n := tagNode("quote", nil, nil, nil, TagBody{Kind: ContentInline, Text: "x", Span: Span{Source: "doc"}})
	Dispatch(bag, reg, n, "")
	if n.Kind != KindError {
		t.Error("expected KindError when body kind doesn't match the tag's declared content kind")
	}
}

func TestDispatchEmbeddedContentReparsesBody(t *testing.T) {
	bag := &Bag{}
	reg := NewEngineRegistry()
	reg.Register(&TagDef{Name: "em", Arg: ArgNone, Content: TagContentEmbedded})
	n := tagNode("em", nil, nil, nil, TagBody{Kind: ContentInline, Text: "hello", Span: Span{Source: "doc"}})
	Dispatch(bag, reg, n, "")
	if n.Kind == KindError {
		t.Fatalf("dispatch failed unexpectedly: %+v", bag.Diagnostics())
	}
	sub, ok := n.Payload.(*Node)
	if !ok {
		t.Fatalf("Payload = %T, want *Node", n.Payload)
	}
	if sub.Kind != KindDocument {
		t.Errorf("sub.Kind = %v, want KindDocument", sub.Kind)
	}
}

func TestDispatchParseFailurePropagatesAsError(t *testing.T) {
	bag := &Bag{}
	reg := NewEngineRegistry()
	reg.Register(&TagDef{
		Name: "strict", Arg: ArgNone, Content: TagContentNone,
		Parse: func(inv *Invocation, handle DispatchHandle) (any, bool) {
			handle.Diagnostic(SeverityError, CodeTagBody, inv.Span, "always fails")
			return nil, true
		},
	})
	n := tagNode("strict", nil, nil, nil, TagBody{Kind: ContentNone})
	Dispatch(bag, reg, n, "")
	if n.Kind != KindError {
		t.Error("expected KindError when Parse reports failure")
	}
}

func TestDispatchHandleExposesTarget(t *testing.T) {
	bag := &Bag{}
	reg := NewEngineRegistry()
	var seen string
	reg.Register(&TagDef{
		Name: "probe", Arg: ArgNone, Content: TagContentNone,
		Parse: func(inv *Invocation, handle DispatchHandle) (any, bool) {
			seen = handle.Target()
			return nil, false
		},
	})
	n := tagNode("probe", nil, nil, nil, TagBody{Kind: ContentNone})
	Dispatch(bag, reg, n, "html")
	if seen != "html" {
		t.Errorf("handle.Target() = %q, want %q", seen, "html")
	}
}

func TestDispatchRecursesIntoChildren(t *testing.T) {
	bag := &Bag{}
	reg := NewEngineRegistry()
	inner := tagNode("nope", nil, nil, nil, TagBody{})
	doc := &Node{Kind: KindDocument, Children: []*Node{inner}}
	Dispatch(bag, reg, doc, "")
	if inner.Kind != KindError {
		t.Error("expected dispatch to recurse into children and flag the unknown inner tag")
	}
}
