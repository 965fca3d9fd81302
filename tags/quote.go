package tags

import markdoll "github.com/0x57e11a/markdoll"

// registerQuote wires `quote`: optional-string argument (attribution),
// embedded content. Grounded on the teacher's x-note/x-warning aside-block
// rendering in node.go (RestLine used as the aside's lead-in text),
// adapted to wrap a full embedded sub-document instead of one line.
func registerQuote(reg *markdoll.Registry) {
	reg.Register(&markdoll.TagDef{
		Name:    "quote",
		Arg:     markdoll.ArgOptionalString,
		Content: markdoll.TagContentEmbedded,
		Emit: map[string]markdoll.TagEmitter{
			"html": func(ctx *markdoll.EmitContext, inv *markdoll.Invocation, payload any) {
				sub, ok := payload.(*markdoll.Node)
				if !ok {
					return
				}
				ctx.WriteString("<blockquote>")
				markdoll.Emit(ctx, sub)
				if inv.Arg != nil && *inv.Arg != "" {
					ctx.WriteString("<footer>")
					markdoll.HTMLEscape(ctx, *inv.Arg)
					ctx.WriteString("</footer>")
				}
				ctx.WriteString("</blockquote>")
			},
		},
	})
}
