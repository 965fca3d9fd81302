package tags

import markdoll "github.com/0x57e11a/markdoll"

// registerComment wires `comment`: raw-block content, no argument/flags/
// props, and an HTML emitter that is a deliberate no-op — the block is
// present in the source and the AST but contributes nothing to rendered
// output. Grounded on the general "tags may render nothing" allowance in
// spec §4.7 (an absent emitter warns; a present-but-empty one does not).
func registerComment(reg *markdoll.Registry) {
	reg.Register(&markdoll.TagDef{
		Name:    "comment",
		Arg:     markdoll.ArgNone,
		Content: markdoll.TagContentRawBlock,
		Emit: map[string]markdoll.TagEmitter{
			"html": func(ctx *markdoll.EmitContext, inv *markdoll.Invocation, payload any) {},
		},
	})
}
