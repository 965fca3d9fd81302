package tags

import (
	"context"

	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2dagrelayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"
	"oss.terrastruct.com/d2/lib/textmeasure"

	markdoll "github.com/0x57e11a/markdoll"
)

type diagramPayload struct {
	svg []byte
}

// registerDiagram wires `diagram`: raw-block content holding D2 source,
// rendered to an inline SVG figure. Grounded directly on the teacher's D2
// branch in node.go's processD2 path (textmeasure.NewRuler +
// d2dagrelayout.Layout + d2lib.Compile + d2svg.Render with the neutral
// default theme); the compile/render step runs once at dispatch time
// (inside Parse) rather than at emit time, so a malformed diagram becomes
// a parse-time diagnostic instead of silently failing during render.
func registerDiagram(reg *markdoll.Registry) {
	reg.Register(&markdoll.TagDef{
		Name: "diagram",
		// Optional rather than None: the `type` prop below needs a
		// parenthesized group, and a tag's first such group is always its
		// argument position (see the identical table.go note), so an
		// empty leading group (`[diagram()(type=d2)::...]`) must be
		// tolerated rather than rejected.
		Arg: markdoll.ArgOptionalString,
		// type is validated against the engine's PropEnum machinery
		// (registry.go/dispatch.go's validateProps); only "d2" is a valid
		// value because only oss.terrastruct.com/d2 is vendored, but the
		// prop still exists so a later renderer can be added without
		// touching the invocation grammar.
		Props:   map[string]markdoll.PropDef{"type": {Kind: markdoll.PropEnum, Enum: []string{"d2"}}},
		Content: markdoll.TagContentRawBlock,
		Parse: func(inv *markdoll.Invocation, handle markdoll.DispatchHandle) (any, bool) {
			// Compiling and laying out a diagram is the expensive part of
			// this tag; skip it when the caller already knows the active
			// target has no renderer for it, rather than doing the work
			// just to have emit.go discard it with markdoll::emit::no-target.
			if t := handle.Target(); t != "" && t != "html" {
				handle.Diagnostic(markdoll.SeverityAdvice, markdoll.CodeTagBody, inv.Span, "diagram: target %q has no renderer, skipping compile", t)
				return diagramPayload{}, false
			}
			ruler, err := textmeasure.NewRuler()
			if err != nil {
				handle.Diagnostic(markdoll.SeverityError, markdoll.CodeTagBody, inv.Span, "diagram: %v", err)
				return nil, true
			}
			layout := func(ctx context.Context, g *d2graph.Graph) error {
				return d2dagrelayout.Layout(ctx, g, nil)
			}
			diagram, _, err := d2lib.Compile(context.Background(), inv.Body.Text, &d2lib.CompileOptions{
				Layout: layout,
				Ruler:  ruler,
			})
			if err != nil {
				handle.Diagnostic(markdoll.SeverityError, markdoll.CodeTagBody, inv.Span, "diagram: compile failed: %v", err)
				return nil, true
			}
			svg, err := d2svg.Render(diagram, &d2svg.RenderOpts{
				Pad:     d2svg.DEFAULT_PADDING,
				ThemeID: d2themescatalog.NeutralDefault.ID,
			})
			if err != nil {
				handle.Diagnostic(markdoll.SeverityError, markdoll.CodeTagBody, inv.Span, "diagram: render failed: %v", err)
				return nil, true
			}
			return diagramPayload{svg: svg}, false
		},
		Emit: map[string]markdoll.TagEmitter{
			"html": func(ctx *markdoll.EmitContext, inv *markdoll.Invocation, payload any) {
				dp, ok := payload.(diagramPayload)
				if !ok {
					return
				}
				ctx.WriteString("<figure class=\"markdoll-diagram\">")
				ctx.Write(dp.svg)
				ctx.WriteString("</figure>")
			},
		},
	})
}
