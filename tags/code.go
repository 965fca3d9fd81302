package tags

import (
	"github.com/alecthomas/chroma/v2"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	markdoll "github.com/0x57e11a/markdoll"
)

// codePayload carries the language hint resolved at dispatch time, so the
// HTML emitter doesn't need to re-inspect flags/props.
type codePayload struct {
	lang string
}

// registerCode wires the `code` tag: language hint as an optional
// argument or a `lang` prop, `inline` flag, accepting either a raw-inline
// or raw-block body (hence content kind custom rather than a fixed
// raw-inline/raw-block pick — spec §4.9 calls out both forms). The HTML
// emitter highlights via alecthomas/chroma/v2, grounded directly on the
// teacher's RenderExampleNode (node.go): resolve a lexer by name or by
// content sniffing, coalesce it, tokenize, and format through the html
// formatter with the surrounding <pre> suppressed so markdoll controls
// the wrapping markup itself.
func registerCode(reg *markdoll.Registry) {
	reg.Register(&markdoll.TagDef{
		Name:    "code",
		Arg:     markdoll.ArgOptionalString,
		Flags:   map[string]bool{"inline": true},
		Props:   map[string]markdoll.PropDef{"lang": {Kind: markdoll.PropString}},
		Content: markdoll.TagContentCustom,
		Parse: func(inv *markdoll.Invocation, handle markdoll.DispatchHandle) (any, bool) {
			lang := ""
			if inv.Arg != nil {
				lang = *inv.Arg
			}
			for _, p := range inv.Props {
				if p.Name == "lang" {
					lang = p.Value
				}
			}
			return codePayload{lang: lang}, false
		},
		Emit: map[string]markdoll.TagEmitter{
			"html": emitCodeHTML,
		},
	})
}

func emitCodeHTML(ctx *markdoll.EmitContext, inv *markdoll.Invocation, payload any) {
	cp, _ := payload.(codePayload)
	content := inv.Body.Text

	l := lexers.Get(markdoll.TrimLeft(markdoll.TrimRight(cp.lang, " \t"), " \t"))
	if l == nil {
		l = lexers.Analyse(content)
	}
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}

	f := hlhtml.New(hlhtml.Standalone(false), hlhtml.PreventSurroundingPre(true))

	it, err := l.Tokenise(nil, content)
	if err != nil {
		ctx.WriteString("<pre><code>")
		markdoll.HTMLEscape(ctx, content)
		ctx.WriteString("</code></pre>")
		return
	}

	wrap := "pre"
	if inv.Body.Kind == markdoll.ContentInline {
		wrap = "code"
	}
	ctx.WriteString("<" + wrap + " class=\"markdoll-code\">")
	var rb markdoll.ByteRenderer
	if err := f.Format(&rb, style, it); err != nil {
		markdoll.HTMLEscape(ctx, content)
	} else {
		ctx.Write(rb.Bytes())
	}
	ctx.WriteString("</" + wrap + ">")
}
