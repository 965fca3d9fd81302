package tags

import markdoll "github.com/0x57e11a/markdoll"

// registerEmphasis wires em/strong/b/i: content kind embedded (the body
// is itself markdoll, re-parsed by the dispatch runtime before this
// package ever sees it), no argument, flags or props. Grounded on the
// teacher's inline-emphasis handling in node.go's preRenderTheTag default
// case, generalized from a fixed tag-name switch to four thin
// definitions sharing one emitter parameterized by element name.
func registerEmphasis(reg *markdoll.Registry) {
	for tagName, elem := range map[string]string{
		"em": "em", "strong": "strong", "b": "b", "i": "i",
	} {
		elem := elem
		reg.Register(&markdoll.TagDef{
			Name:    tagName,
			Arg:     markdoll.ArgNone,
			Content: markdoll.TagContentEmbedded,
			Emit: map[string]markdoll.TagEmitter{
				"html": func(ctx *markdoll.EmitContext, inv *markdoll.Invocation, payload any) {
					emitInlineElement(ctx, elem, payload)
				},
			},
		})
	}
}

// emitInlineElement renders payload (the embedded sub-AST attached by
// dispatch) wrapped in a matching HTML element. Tags with no custom
// Parse step get the raw *markdoll.Node sub-AST as their payload.
func emitInlineElement(ctx *markdoll.EmitContext, elem string, payload any) {
	sub, ok := payload.(*markdoll.Node)
	if !ok {
		return
	}
	ctx.WriteString("<" + elem + ">")
	markdoll.Emit(ctx, sub)
	ctx.WriteString("</" + elem + ">")
}
