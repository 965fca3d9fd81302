package markdoll

import "fmt"

// Invocation is the dispatch-time view of a TagInvocation node: the raw
// syntax the scanner extracted, handed to a tag's parser for validation
// and interpretation. Grounded on spec §6's "tag content envelope".
type Invocation struct {
	Name  string
	Arg   *string
	Flags []Flag
	Props []Prop
	Body  TagBody
	Span  Span
}

// DispatchHandle is what a tag's TagParser receives alongside the
// Invocation: the means to record diagnostics, request a nested embedded
// parse, and query the active output target, per spec §4.6.
type DispatchHandle interface {
	// Diagnostic records a diagnostic attributed to the invocation.
	Diagnostic(sev Severity, code string, sp Span, format string, args ...any)
	// ParseEmbedded re-parses text as an embedded markdoll fragment,
	// using sourceName (typically derived from the invocation's own
	// source position) for the spans of the resulting sub-AST.
	ParseEmbedded(text, sourceName string) *Node
	// Target returns the output target the eventual Emit call will use,
	// or "" if emission has not been requested yet (e.g. during a
	// parse-only run).
	Target() string
}

type dispatchHandle struct {
	bag    *Bag
	target string
}

func (h *dispatchHandle) Diagnostic(sev Severity, code string, sp Span, format string, args ...any) {
	h.bag.Addf(sev, code, sp, format, args...)
}

func (h *dispatchHandle) ParseEmbedded(text, sourceName string) *Node {
	return ParseEmbedded(h.bag, sourceName, text)
}

func (h *dispatchHandle) Target() string {
	return h.target
}

// Dispatch walks ast, resolving every TagInvocation node against reg:
// validating its argument/flags/props, handling its body per the
// definition's content kind, and attaching the parser's payload. Unknown
// tags and validation failures turn the node into an *Error* node (its
// span is preserved) and a diagnostic is recorded; dispatch itself never
// aborts, mirroring the parser's failure semantics (spec §4.6, §7).
func Dispatch(bag *Bag, reg *Registry, ast *Node, target string) {
	handle := &dispatchHandle{bag: bag, target: target}
	dispatchNode(bag, reg, handle, ast)
}

func dispatchNode(bag *Bag, reg *Registry, handle *dispatchHandle, n *Node) {
	if n == nil {
		return
	}
	if n.Kind == KindTagInvocation {
		dispatchInvocation(bag, reg, handle, n)
	}
	for _, c := range n.Children {
		dispatchNode(bag, reg, handle, c)
	}
	if n.Kind == KindTagInvocation {
		if payload, ok := n.Payload.(*Node); ok {
			dispatchNode(bag, reg, handle, payload)
		}
	}
}

func dispatchInvocation(bag *Bag, reg *Registry, handle *dispatchHandle, n *Node) {
	def := reg.Lookup(n.Name)
	if def == nil {
		bag.Addf(SeverityError, CodeTagUnknown, n.NameSpan, "unknown tag '%s'", n.Name)
		n.Kind = KindError
		return
	}

	if !validateArg(bag, def, n) || !validateFlags(bag, def, n) || !validateProps(bag, def, n) || !validateBody(bag, def, n) {
		n.Kind = KindError
		return
	}

	inv := &Invocation{Name: n.Name, Arg: n.Arg, Flags: n.Flags, Props: n.Props, Body: n.Body, Span: n.Span}

	if def.Content == TagContentEmbedded {
		sourceName := fmt.Sprintf("%s:%s#%d", n.Span.Source, n.Name, n.Span.Start.Offset)
		sub := ParseEmbedded(bag, sourceName, n.Body.Text)
		n.Payload = sub
	}

	if def.Parse != nil {
		payload, failed := def.Parse(inv, handle)
		if failed {
			n.Kind = KindError
			n.Payload = nil
			return
		}
		if n.Payload == nil {
			n.Payload = payload
		}
	}
}

func validateArg(bag *Bag, def *TagDef, n *Node) bool {
	switch def.Arg {
	case ArgNone:
		if n.Arg != nil {
			bag.Addf(SeverityError, CodeTagArg, n.ArgSpan, "tag '%s' does not accept an argument", n.Name)
			return false
		}
	case ArgRequiredString:
		if n.Arg == nil {
			bag.Addf(SeverityError, CodeTagArg, n.Span, "tag '%s' requires an argument", n.Name)
			return false
		}
	case ArgOptionalString:
		// always fine
	}
	return true
}

func validateFlags(bag *Bag, def *TagDef, n *Node) bool {
	ok := true
	for _, f := range n.Flags {
		if def.Flags == nil || !def.Flags[f.Name] {
			bag.Addf(SeverityWarning, CodeTagFlag, f.Span, "unknown flag '%s' on tag '%s'", f.Name, n.Name)
		}
	}
	return ok
}

func validateProps(bag *Bag, def *TagDef, n *Node) bool {
	ok := true
	for _, p := range n.Props {
		pd, known := def.Props[p.Name]
		if !known {
			bag.Addf(SeverityWarning, CodeTagProp, p.Span, "unknown prop '%s' on tag '%s'", p.Name, n.Name)
			continue
		}
		switch pd.Kind {
		case PropInt:
			if !isDecimalInt(p.Value) {
				bag.Addf(SeverityError, CodeTagProp, p.Span, "prop '%s' expects an integer, got %q", p.Name, p.Value)
				ok = false
			}
		case PropEnum:
			if !containsString(pd.Enum, p.Value) {
				bag.Addf(SeverityError, CodeTagProp, p.Span, "prop '%s' expects one of %v, got %q", p.Name, pd.Enum, p.Value)
				ok = false
			}
		}
	}
	return ok
}

func validateBody(bag *Bag, def *TagDef, n *Node) bool {
	switch def.Content {
	case TagContentNone:
		if n.Body.Kind != ContentNone {
			bag.Addf(SeverityError, CodeTagBody, n.Body.Span, "tag '%s' does not accept a body", n.Name)
			return false
		}
	case TagContentRawInline:
		if n.Body.Kind != ContentInline {
			bag.Addf(SeverityError, CodeTagBody, n.Span, "tag '%s' requires an inline body", n.Name)
			return false
		}
	case TagContentRawBlock:
		if n.Body.Kind != ContentBlock {
			bag.Addf(SeverityError, CodeTagBody, n.Span, "tag '%s' requires a block body", n.Name)
			return false
		}
	case TagContentEmbedded, TagContentCustom:
		if n.Body.Kind == ContentNone {
			bag.Addf(SeverityError, CodeTagBody, n.Span, "tag '%s' requires a body", n.Name)
			return false
		}
	}
	return true
}

func isDecimalInt(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '-' || s[0] == '+' {
		start = 1
	}
	if start == len(s) {
		return false
	}
	for i := start; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
