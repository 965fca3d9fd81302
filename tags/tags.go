// Package tags implements markdoll's standard tag library: the concrete
// set of inline and block tags a typical document needs (emphasis, code,
// links, tables, quotes, comments, diagrams) built against the markdoll
// engine's registry/dispatch/emit contract. None of this is part of the
// engine itself — RegisterStandard is a convenience callers opt into.
package tags

import markdoll "github.com/0x57e11a/markdoll"

// RegisterStandard registers every tag this package defines onto reg. It
// panics if reg has already started servicing a parse (same rule as any
// other Register call), so call it once, before parsing.
func RegisterStandard(reg *markdoll.Registry) {
	registerEmphasis(reg)
	registerCode(reg)
	registerLink(reg)
	registerTable(reg)
	registerQuote(reg)
	registerComment(reg)
	registerDiagram(reg)
}
