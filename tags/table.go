package tags

import (
	"strings"

	markdoll "github.com/0x57e11a/markdoll"
)

type tableRow struct {
	cells []string
}

type tablePayload struct {
	rows []tableRow
}

// registerTable wires `table`: a `head` flag marking the first row as a
// header row, content kind custom — the tag owns its own tiny grammar
// instead of delegating to the document parser, one `|`-delimited row per
// line of the raw-block body. Grounded on the teacher's list-item line
// splitting in parseMdListItem (rite_parser.go), whose "split the rest of
// the line on a delimiter, trim each piece" shape is reused here for
// cells instead of list bullets.
func registerTable(reg *markdoll.Registry) {
	reg.Register(&markdoll.TagDef{
		Name: "table",
		// Optional rather than None: a tag's first parenthesized group is
		// always its argument position, so a tag that only wants flags
		// (like head) still needs to tolerate an empty one ahead of them.
		Arg:   markdoll.ArgOptionalString,
		Flags: map[string]bool{"head": true},
		Content: markdoll.TagContentCustom,
		Parse: func(inv *markdoll.Invocation, handle markdoll.DispatchHandle) (any, bool) {
			var rows []tableRow
			for _, line := range strings.Split(inv.Body.Text, "\n") {
				if strings.TrimSpace(line) == "" {
					continue
				}
				raw := markdoll.SplitNonEmpty(line, "|")
				cells := make([]string, 0, len(raw))
				for _, c := range raw {
					cells = append(cells, markdoll.TrimLeft(markdoll.TrimRight(c, " \t"), " \t"))
				}
				rows = append(rows, tableRow{cells: cells})
			}
			if len(rows) == 0 {
				handle.Diagnostic(markdoll.SeverityWarning, markdoll.CodeTagBody, inv.Span, "table has no rows")
			}
			return tablePayload{rows: rows}, false
		},
		Emit: map[string]markdoll.TagEmitter{
			"html": emitTableHTML,
		},
	})
}

func emitTableHTML(ctx *markdoll.EmitContext, inv *markdoll.Invocation, payload any) {
	tp, ok := payload.(tablePayload)
	if !ok {
		return
	}
	head := false
	for _, f := range inv.Flags {
		if f.Name == "head" {
			head = true
		}
	}
	ctx.WriteString("<table>")
	for i, row := range tp.rows {
		cellTag := "td"
		if head && i == 0 {
			cellTag = "th"
		}
		ctx.WriteString("<tr>")
		for _, cell := range row.cells {
			ctx.WriteString("<" + cellTag + ">")
			markdoll.HTMLEscape(ctx, cell)
			ctx.WriteString("</" + cellTag + ">")
		}
		ctx.WriteString("</tr>")
	}
	ctx.WriteString("</table>")
}
