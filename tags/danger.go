//go:build danger

package tags

import (
	"bytes"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	markdoll "github.com/0x57e11a/markdoll"
)

// RegisterDangerIfAvailable registers the danger-zone tags; present in this
// build because the `danger` tag was set at compile time. See
// danger_stub.go for the counterpart compiled when it isn't.
func RegisterDangerIfAvailable(reg *markdoll.Registry, log *zap.SugaredLogger) {
	log.Warn("registering danger-zone tags: exec is now reachable from document source")
	RegisterDanger(reg)
}

// RegisterDanger registers the danger-zone tag set: tags that shell out to
// external processes. Only built when the `danger` build tag is set, and
// only wired in by the CLI when --danger is passed explicitly (see
// cmd/markdoll/main.go). Grounded directly on the teacher's PlantUML
// branch in node.go (os/exec.Command with piped stdin/stdout), generalized
// from one hardcoded "java -jar plantuml.jar -pipe" invocation to an
// arbitrary whitelisted-free command named by the tag's argument — this
// is explicitly the same trust boundary the teacher already crosses, not
// a new one, which is why it stays opt-in behind both a build tag and a
// runtime flag.
func RegisterDanger(reg *markdoll.Registry) {
	reg.Register(&markdoll.TagDef{
		Name:    "exec",
		Arg:     markdoll.ArgRequiredString,
		Content: markdoll.TagContentRawBlock,
		Emit: map[string]markdoll.TagEmitter{
			"html": func(ctx *markdoll.EmitContext, inv *markdoll.Invocation, payload any) {
				if inv.Arg == nil {
					return
				}
				fields := strings.Fields(*inv.Arg)
				if len(fields) == 0 {
					return
				}
				cmd := exec.Command(fields[0], fields[1:]...)
				cmd.Stdin = strings.NewReader(inv.Body.Text)
				var out, errBuf bytes.Buffer
				cmd.Stdout = &out
				cmd.Stderr = &errBuf
				if err := cmd.Run(); err != nil {
					ctx.Bag.Addf(markdoll.SeverityError, markdoll.CodeEmitTarget, inv.Span, "exec %q failed: %v: %s", *inv.Arg, err, errBuf.String())
					return
				}
				ctx.WriteString("<pre class=\"markdoll-exec-output\">")
				markdoll.HTMLEscape(ctx, out.String())
				ctx.WriteString("</pre>")
			},
		},
	})
}
