package tags

import markdoll "github.com/0x57e11a/markdoll"

// registerLink wires `link`: required-string argument (the href), an
// optional `title` prop, embedded content (the link text). Grounded on
// the teacher's x-img/Href attribute handling pattern in node.go
// (addAttributes writing an href onto the open tag) adapted to markdoll's
// argument-delimited grammar instead of a Href()-style node field.
func registerLink(reg *markdoll.Registry) {
	reg.Register(&markdoll.TagDef{
		Name:    "link",
		Arg:     markdoll.ArgRequiredString,
		Props:   map[string]markdoll.PropDef{"title": {Kind: markdoll.PropString}},
		Content: markdoll.TagContentEmbedded,
		Emit: map[string]markdoll.TagEmitter{
			"html": func(ctx *markdoll.EmitContext, inv *markdoll.Invocation, payload any) {
				sub, ok := payload.(*markdoll.Node)
				if !ok {
					return
				}
				href := ""
				if inv.Arg != nil {
					href = *inv.Arg
				}
				ctx.WriteString(`<a href="`)
				markdoll.HTMLEscape(ctx, href)
				ctx.WriteString(`"`)
				for _, p := range inv.Props {
					if p.Name == "title" {
						ctx.WriteString(` title="`)
						markdoll.HTMLEscape(ctx, p.Value)
						ctx.WriteString(`"`)
					}
				}
				ctx.WriteString(">")
				markdoll.Emit(ctx, sub)
				ctx.WriteString("</a>")
			},
		},
	})
}
