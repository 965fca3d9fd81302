package markdoll

import "strings"

// docParser holds the state threaded through one parse of a single
// source: the line table, the diagnostic bag and whether frontmatter
// recognition is active. It never lives longer than one parse call,
// mirroring the teacher's Parser which is built fresh per document.
type docParser struct {
	bag      *Bag
	source   string
	src      string
	lines    []line
	embedded bool
}

// ParseDocument parses source in document mode: a leading "---" fence as
// the very first non-blank line is recognized as frontmatter.
func ParseDocument(bag *Bag, source, src string) *Node {
	return parse(bag, source, src, false)
}

// ParseEmbedded parses source in embedded mode, used by the dispatch
// runtime to re-parse a tag's body: frontmatter is never recognized, a
// leading "---" is ordinary paragraph text.
func ParseEmbedded(bag *Bag, source, src string) *Node {
	return parse(bag, source, src, true)
}

func parse(bag *Bag, source, src string, embedded bool) *Node {
	if cr := indexOfCR(src); cr != -1 {
		sp := spanAt(source, src, cr, cr+1)
		bag.Addf(SeverityError, CodeCR, sp, "CR byte in source; markdoll requires LF-only input")
		return &Node{Kind: KindDocument, Span: spanAt(source, src, 0, 0)}
	}

	lines := splitLines(src)
	p := &docParser{bag: bag, source: source, src: src, lines: lines, embedded: embedded}

	doc := &Node{Kind: KindDocument, Span: spanAt(source, src, 0, len(src))}

	pos := 0
	if !embedded {
		if fm, next, ok := p.tryFrontmatter(pos); ok {
			doc.Frontmatter = &fm
			pos = next
		}
	}

	children, _ := p.parseBlocks(pos, -1, 0)
	doc.Children = children
	return doc
}

// tryFrontmatter recognizes the document-mode frontmatter fence: "---"
// alone on the first non-blank line, collecting lines until the next
// "---" fence as an opaque string.
func (p *docParser) tryFrontmatter(pos int) (text string, next int, ok bool) {
	idx := pos
	for idx < len(p.lines) && p.lines[idx].blank {
		idx++
	}
	if idx >= len(p.lines) || p.lines[idx].indent != 0 || p.lines[idx].content != "---" {
		return "", pos, false
	}
	start := idx + 1
	var b strings.Builder
	for i := start; i < len(p.lines); i++ {
		l := p.lines[i]
		if l.indent == 0 && l.content == "---" {
			return b.String(), i + 1, true
		}
		if i > start {
			b.WriteByte('\n')
		}
		b.WriteString(l.content)
	}
	sp := spanAt(p.source, p.src, p.lines[start].startOffset, len(p.src))
	p.bag.Addf(SeverityError, CodeUnterminated, sp, "unterminated frontmatter fence")
	return b.String(), len(p.lines), true
}

// lineKind classifies a non-blank line per spec §4.3's table.
type lineKind int

const (
	lineOther lineKind = iota
	lineSection
	lineUnorderedItem
	lineOrderedItem
	lineBlockTag
)

func classifyLine(l line) lineKind {
	c := l.content
	if len(c) == 0 {
		return lineOther
	}
	switch c[0] {
	case '&':
		return lineSection
	case '-':
		if len(c) > 1 && c[1] == '\t' {
			return lineUnorderedItem
		}
	case '=':
		if len(c) > 1 && c[1] == '\t' {
			return lineOrderedItem
		}
	case '[':
		return lineBlockTag
	}
	return lineOther
}

// parseBlocks parses a sequence of sibling block constructs more indented
// than parentIndent, returning the children and the index of the first
// line not consumed (blank at or below parentIndent, or EOF).
//
// The sibling indentation level is taken from whichever line is
// encountered first; a later line indented deeper than that level without
// an owning construct (a plain paragraph or blank run followed directly
// by a jump in depth) is still attached here rather than dropped, with a
// diagnostic, matching spec §4.3's "nearest enclosing ancestor" rule for
// misnested constructs.
func (p *docParser) parseBlocks(pos, parentIndent, secDepth int) ([]*Node, int) {
	var out []*Node
	lvl := -1
	for pos < len(p.lines) {
		l := p.lines[pos]
		if l.blank {
			pos++
			continue
		}
		if l.indent <= parentIndent {
			break
		}
		if lvl == -1 {
			lvl = l.indent
		} else if l.indent != lvl {
			sp := spanAt(p.source, p.src, l.contentOffset, l.contentOffset+len(l.content))
			p.bag.Addf(SeverityWarning, CodeUnexpected, sp, "indentation does not match sibling constructs; attaching here")
			lvl = l.indent
		}

		var node *Node
		var next int
		switch classifyLine(l) {
		case lineSection:
			node, next = p.parseSection(pos, lvl, secDepth)
		case lineUnorderedItem:
			node, next = p.parseList(pos, lvl, secDepth, ListUnordered)
		case lineOrderedItem:
			node, next = p.parseList(pos, lvl, secDepth, ListOrdered)
		case lineBlockTag:
			node, next = p.parseStandaloneTag(pos, lvl)
		default:
			node, next = p.parseParagraph(pos, lvl)
		}
		out = append(out, node)
		pos = next
	}
	return out, pos
}

func (p *docParser) parseSection(pos, lvl, secDepth int) (*Node, int) {
	l := p.lines[pos]
	headLine := line{no: l.no, indent: l.indent, content: l.content[1:], startOffset: l.startOffset, contentOffset: l.contentOffset + 1}
	heading, _ := decodeEscapes(p.bag, p.source, p.src, headLine)
	headingSpan := spanAt(p.source, p.src, l.contentOffset+1, l.contentOffset+len(l.content))
	if strings.TrimSpace(heading) == "" {
		p.bag.Addf(SeverityWarning, CodeUnexpected, headingSpan, "empty section heading")
	}
	node := &Node{
		Kind: KindSection, Span: spanAt(p.source, p.src, l.contentOffset, l.contentOffset+len(l.content)),
		Heading: heading, HeadingSpan: headingSpan, Depth: secDepth + 1,
	}
	children, next := p.parseBlocks(pos+1, lvl, secDepth+1)
	for _, c := range children {
		node.AppendChild(c)
	}
	return node, next
}

func (p *docParser) parseList(pos, lvl, secDepth int, kind ListKind) (*Node, int) {
	node := &Node{Kind: KindList, ListKind: kind}
	want := lineUnorderedItem
	if kind == ListOrdered {
		want = lineOrderedItem
	}
	cur := pos
	for cur < len(p.lines) {
		l := p.lines[cur]
		if l.blank || l.indent != lvl || classifyLine(l) != want {
			break
		}
		item, next := p.parseListItem(cur, lvl, secDepth)
		node.AppendChild(item)
		cur = next
	}
	return node, cur
}

func (p *docParser) parseListItem(pos, lvl, secDepth int) (*Node, int) {
	l := p.lines[pos]
	item := &Node{Kind: KindListItem}

	text := l.content[2:]
	textLine := line{no: l.no, indent: l.indent, content: text, contentOffset: l.contentOffset + 2, startOffset: l.startOffset}
	inlineNodes := scanInline(p.bag, p.source, p.src, []line{textLine})
	para := &Node{Kind: KindParagraph, Span: spanAt(p.source, p.src, textLine.contentOffset, textLine.contentOffset+len(text))}
	for _, n := range inlineNodes {
		para.AppendChild(n)
	}
	if len(inlineNodes) == 0 {
		para.Span = spanAt(p.source, p.src, textLine.contentOffset, textLine.contentOffset)
	}
	item.AppendChild(para)

	children, next := p.parseBlocks(pos+1, lvl, secDepth)
	for _, c := range children {
		item.AppendChild(c)
	}
	return item, next
}

// parseParagraph collects a contiguous run of plain-text lines at exactly
// lvl indentation (stopping at a blank line or a line the classifier
// claims for another construct) and scans it for inline content.
func (p *docParser) parseParagraph(pos, lvl int) (*Node, int) {
	start := pos
	end := pos
	for end < len(p.lines) {
		l := p.lines[end]
		if l.blank || l.indent != lvl || classifyLine(l) != lineOther {
			break
		}
		end++
	}
	paraLines := p.lines[start:end]
	node := &Node{Kind: KindParagraph}
	for _, n := range scanInline(p.bag, p.source, p.src, paraLines) {
		node.AppendChild(n)
	}
	if len(node.Children) == 0 && len(paraLines) > 0 {
		l := paraLines[0]
		node.Span = spanAt(p.source, p.src, l.contentOffset, l.contentOffset)
	}
	return node, end
}

func (p *docParser) parseStandaloneTag(pos, lvl int) (*Node, int) {
	l := p.lines[pos]
	full, segs := joinParaLines([]line{l})
	sc := &inlineScanner{bag: p.bag, source: p.source, src: p.src, full: full, segs: segs}
	node, next, ok := sc.scanStandaloneTag(0, lvl, p.lines, pos)
	if !ok {
		// Not actually a valid tag name: fall back to paragraph text.
		return p.parseParagraph(pos, lvl)
	}
	return node, next
}
