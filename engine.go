// Package markdoll implements a structured, indentation-sensitive markup
// language: a line-oriented parser producing a typed AST, a tag registry
// and dispatch runtime for extending the language with custom
// invocations, and a target-pluggable emitter pipeline. See spec.md for
// the language's shape; this package is the reference engine.
package markdoll

import "io"

// NewRegistry returns an empty tag Registry. Callers populate it with
// Register calls (directly, or via a helper like tags.RegisterStandard)
// before parsing any document that uses custom tags.
func NewRegistry() *Registry {
	return NewEngineRegistry()
}

// Parse runs the three-stage pipeline spec.md §4.8 calls the engine
// façade's first two entry points: lexing/parsing into an AST, then
// dispatching every tag invocation it found against reg. It is pure in
// the sense described there — it retains no reference to the returned AST
// or to reg once it returns.
//
// embedded selects parse_embedded (frontmatter is never recognized, used
// internally when a tag's content kind requests a nested parse) versus
// parse_document (frontmatter recognized at the top). target is the
// output target the caller intends to eventually RenderTo, threaded
// through to Dispatch so a tag's Parse callback can query it via
// DispatchHandle.Target (spec §4.6c) — a caller that hasn't decided on a
// target yet (or is only parsing, never rendering) passes "".
func Parse(reg *Registry, source, sourceName, target string, embedded bool) (*Node, []Diagnostic) {
	bag := &Bag{}
	var ast *Node
	if embedded {
		ast = ParseEmbedded(bag, sourceName, source)
	} else {
		ast = ParseDocument(bag, sourceName, source)
	}
	Dispatch(bag, reg, ast, target)
	return ast, bag.Diagnostics()
}

// RenderTo is the façade's third entry point, `emit(ast, target, sink)`:
// it walks ast and writes target-specific output to sink, returning any
// diagnostics raised during emission (e.g. a tag missing a renderer for
// target).
func RenderTo(reg *Registry, ast *Node, target string, sink io.Writer) []Diagnostic {
	bag := &Bag{}
	ctx := &EmitContext{Target: target, Sink: sink, Registry: reg, Bag: bag}
	Emit(ctx, ast)
	return bag.Diagnostics()
}
