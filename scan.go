package markdoll

import "strings"

// paraSeg records where one source line's (already indent-stripped,
// trailing-whitespace-trimmed) content lands inside the single joined
// string the inline scanner walks. base is the line content's offset in
// the original source; start is its offset inside the joined string.
type paraSeg struct {
	content string
	base    int
	start   int
}

// joinParaLines concatenates a run of same-paragraph lines with '\n'
// between them, the way the teacher's ByteRenderer accumulates a
// paragraph's lines in ReadParagraph before handing it to PreprocesLine.
// Joining up front lets the inline scanner treat escape decoding, newline
// folding and tag recognition as one left-to-right pass instead of
// threading continuation state across separate per-line calls.
func joinParaLines(lines []line) (string, []paraSeg) {
	var b strings.Builder
	segs := make([]paraSeg, 0, len(lines))
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		segs = append(segs, paraSeg{content: l.content, base: l.contentOffset, start: b.Len()})
		b.WriteString(l.content)
	}
	return b.String(), segs
}

// mapOffset converts a position in the joined string back to a byte
// offset in the original source.
func mapOffset(segs []paraSeg, pos int) int {
	for i := len(segs) - 1; i >= 0; i-- {
		if segs[i].start <= pos {
			off := pos - segs[i].start
			if off > len(segs[i].content) {
				off = len(segs[i].content)
			}
			return segs[i].base + off
		}
	}
	if len(segs) == 0 {
		return pos
	}
	return segs[0].base
}

// inlineScanner walks one paragraph's joined text, producing the inline
// node sequence (Text / LineBreak / TagInvocation) per spec §4.1/§4.2.
type inlineScanner struct {
	bag    *Bag
	source string
	src    string
	full   string
	segs   []paraSeg
}

func (s *inlineScanner) span(a, b int) Span {
	return spanAt(s.source, s.src, mapOffset(s.segs, a), mapOffset(s.segs, b))
}

// scanInline runs the inline scanner over a joined paragraph (or inline
// tag body) text and returns its child nodes.
func scanInline(bag *Bag, source, src string, lines []line) []*Node {
	full, segs := joinParaLines(lines)
	sc := &inlineScanner{bag: bag, source: source, src: src, full: full, segs: segs}
	return sc.run()
}

func (s *inlineScanner) run() []*Node {
	var nodes []*Node
	var run strings.Builder
	runStart := 0

	flush := func(end int) {
		if run.Len() == 0 {
			return
		}
		nodes = append(nodes, &Node{Kind: KindText, Span: s.span(runStart, end), Text: run.String()})
		run.Reset()
	}

	full := s.full
	i := 0
	for i < len(full) {
		c := full[i]
		switch {
		case c == '\\':
			atEOL := i+1 >= len(full) || full[i+1] == '\n'
			if atEOL {
				flush(i)
				end := i + 1
				if i+1 < len(full) && full[i+1] == '\n' {
					end = i + 2
				}
				nodes = append(nodes, &Node{Kind: KindLineBreak, Span: s.span(i, end)})
				i = end
				runStart = i
				continue
			}
			next := full[i+1]
			switch next {
			case '\\':
				run.WriteByte('\\')
			case ']':
				run.WriteByte(']')
			case '[':
				run.WriteByte('[')
			default:
				s.bag.Addf(SeverityWarning, CodeBadEscape, s.span(i, i+2), "unrecognized escape '\\%c'", next)
				run.WriteByte(next)
			}
			i += 2

		case c == '\n':
			run.WriteByte(' ')
			i++

		case c == '[':
			flush(i)
			node, next, ok := s.scanTag(i)
			if ok {
				nodes = append(nodes, node)
				i = next
				runStart = i
			} else {
				run.WriteByte('[')
				i++
				runStart = i - 1
			}

		default:
			run.WriteByte(c)
			i++
		}
	}
	flush(len(full))
	return nodes
}

// tagHead is the shared name/arg/flags/props prefix of a tag invocation,
// parsed identically whether the invocation appears inline or as a
// standalone block line.
type tagHead struct {
	name     string
	nameSpan Span
	arg      *string
	argSpan  Span
	flags    []Flag
	props    []Prop
}

// parseTagHead parses a tag's name and parenthesized groups starting at
// full[start] == '['. It returns the position just past the last group
// (where content-kind punctuation — ':', '::' or ']' — is expected next)
// or ok=false if full[start+1:] isn't a valid tag name.
func (s *inlineScanner) parseTagHead(start int) (h tagHead, next int, ok bool) {
	full := s.full
	i := start + 1
	nameStart := i
	for i < len(full) && isIdentByte(full[i]) {
		i++
	}
	if i == nameStart {
		return h, 0, false
	}
	h.name = full[nameStart:i]
	h.nameSpan = s.span(nameStart, i)

	if i < len(full) && full[i] == '(' {
		closeIdx, raw, groupOK := scanParenGroup(full, i)
		if !groupOK {
			s.bag.Addf(SeverityError, CodeUnterminated, s.span(start, i), "unterminated argument group for tag '%s'", h.name)
			return h, 0, false
		}
		h.argSpan = s.span(i+1, closeIdx)
		h.arg = &raw
		i = closeIdx + 1
	}

	for i < len(full) && full[i] == '(' {
		closeIdx, raw, groupOK := scanParenGroup(full, i)
		if !groupOK {
			s.bag.Addf(SeverityError, CodeUnterminated, s.span(start, i), "unterminated flag/prop group for tag '%s'", h.name)
			return h, 0, false
		}
		groupSpan := s.span(i+1, closeIdx)
		if eq := strings.IndexByte(raw, '='); eq >= 0 {
			h.props = append(h.props, Prop{Name: raw[:eq], Value: raw[eq+1:], Span: groupSpan})
		} else {
			h.flags = append(h.flags, Flag{Name: raw, Span: groupSpan})
		}
		i = closeIdx + 1
	}
	return h, i, true
}

// scanInlineBody balanced-bracket-scans an inline tag body starting right
// after the ':', returning the body's end index (the matching ']', or
// len(full) if unterminated) and whether it actually terminated.
func scanInlineBody(full string, bodyStart int) (bodyEnd int, terminated bool) {
	j := bodyStart
	depth := 0
	for j < len(full) {
		if full[j] == '\\' && j+1 < len(full) {
			j += 2
			continue
		}
		if full[j] == '[' {
			depth++
			j++
			continue
		}
		if full[j] == ']' {
			if depth == 0 {
				return j, true
			}
			depth--
		}
		j++
	}
	return j, false
}

// scanTag parses one inline tag invocation ([name(arg)(flag)...:body] or
// [name(arg)...]) beginning at full[start] == '['. It never recognizes a
// block ("::") body: block content is only legal for a standalone
// block-level invocation, parsed by scanStandaloneTag instead.
func (s *inlineScanner) scanTag(start int) (*Node, int, bool) {
	full := s.full
	h, i, ok := s.parseTagHead(start)
	if !ok {
		if i == 0 && h.name == "" {
			return nil, 0, false
		}
		return errorNode(s.span(start, len(full))), len(full), true
	}

	var body TagBody
	var end int
	switch {
	case i < len(full) && full[i] == ':' && i+1 < len(full) && full[i+1] == ':':
		s.bag.Addf(SeverityError, CodeUnexpected, s.span(i, i+2), "block body '::' is not valid inside inline text")
		return errorNode(s.span(start, i+2)), i + 2, true

	case i < len(full) && full[i] == ':':
		bodyStart := i + 1
		bodyEnd, terminated := scanInlineBody(full, bodyStart)
		body = TagBody{Kind: ContentInline, Text: full[bodyStart:bodyEnd], Span: s.span(bodyStart, bodyEnd)}
		if !terminated {
			s.bag.Addf(SeverityError, CodeUnterminated, s.span(start, bodyEnd), "unterminated inline body for tag '%s'", h.name)
			end = bodyEnd
		} else {
			end = bodyEnd + 1
		}

	case i < len(full) && full[i] == ']':
		body = TagBody{Kind: ContentNone}
		end = i + 1

	default:
		s.bag.Addf(SeverityError, CodeUnexpected, s.span(start, i), "expected ':' or ']' after tag '%s'", h.name)
		return errorNode(s.span(start, i)), i, true
	}

	node := &Node{
		Kind:     KindTagInvocation,
		Span:     s.span(start, end),
		Name:     h.name,
		NameSpan: h.nameSpan,
		Arg:      h.arg,
		ArgSpan:  h.argSpan,
		Flags:    h.flags,
		Props:    h.props,
		Body:     body,
	}
	return node, end, true
}

// scanStandaloneTag parses a block-level tag invocation occupying its own
// line (classified by a leading '[' per spec §4.3). Unlike scanTag, it
// recognizes a trailing "::" as introducing a block body, whose lines are
// pulled from allLines starting at lineIdx+1. It returns the node and the
// index of the first line not consumed.
func (s *inlineScanner) scanStandaloneTag(start, tagIndent int, allLines []line, lineIdx int) (*Node, int, bool) {
	full := s.full
	h, i, ok := s.parseTagHead(start)
	if !ok {
		return nil, lineIdx, false
	}

	var body TagBody
	switch {
	case i+1 < len(full) && full[i] == ':' && full[i+1] == ':' && i+2 == len(full):
		text, sp, nextIdx := scanBlockBody(s.source, s.src, allLines, tagIndent, lineIdx+1)
		body = TagBody{Kind: ContentBlock, Text: text, Span: sp}
		node := &Node{
			Kind: KindTagInvocation, Span: joinSpan(s.span(start, i+2), sp),
			Name: h.name, NameSpan: h.nameSpan, Arg: h.arg, ArgSpan: h.argSpan,
			Flags: h.flags, Props: h.props, Body: body,
		}
		return node, nextIdx, true

	case i < len(full) && full[i] == ':':
		bodyStart := i + 1
		bodyEnd, terminated := scanInlineBody(full, bodyStart)
		body = TagBody{Kind: ContentInline, Text: full[bodyStart:bodyEnd], Span: s.span(bodyStart, bodyEnd)}
		if !terminated {
			s.bag.Addf(SeverityError, CodeUnterminated, s.span(start, bodyEnd), "unterminated inline body for tag '%s'", h.name)
		}
		end := bodyEnd
		if terminated {
			end = bodyEnd + 1
		}
		node := &Node{
			Kind: KindTagInvocation, Span: s.span(start, end),
			Name: h.name, NameSpan: h.nameSpan, Arg: h.arg, ArgSpan: h.argSpan,
			Flags: h.flags, Props: h.props, Body: body,
		}
		return node, lineIdx + 1, true

	case i < len(full) && full[i] == ']':
		node := &Node{
			Kind: KindTagInvocation, Span: s.span(start, i+1),
			Name: h.name, NameSpan: h.nameSpan, Arg: h.arg, ArgSpan: h.argSpan,
			Flags: h.flags, Props: h.props, Body: TagBody{Kind: ContentNone},
		}
		return node, lineIdx + 1, true

	default:
		s.bag.Addf(SeverityError, CodeUnexpected, s.span(start, i), "expected ':', '::' or ']' after tag '%s'", h.name)
		return errorNode(s.span(start, i)), lineIdx + 1, true
	}
}

// scanParenGroup scans a parenthesized group starting at full[open] ==
// '(' and returns the index of its matching ')' plus the decoded raw
// text between them. Parentheses do not nest; a literal ')' inside the
// group must be escaped as \).
func scanParenGroup(full string, open int) (closeIdx int, raw string, ok bool) {
	i := open + 1
	for i < len(full) {
		if full[i] == '\\' && i+1 < len(full) && full[i+1] == ')' {
			i += 2
			continue
		}
		if full[i] == ')' {
			break
		}
		i++
	}
	if i >= len(full) {
		return 0, "", false
	}
	seg := full[open+1 : i]
	decoded := strings.ReplaceAll(strings.ReplaceAll(seg, `\)`, ")"), `\\`, `\`)
	return i, decoded, true
}

// scanBlockBody collects a block-tag body per spec §4.2: every following
// line more indented than the tag, stopping at the first non-blank line
// with indent <= the tag's indent, with exactly tagIndent+1 leading TABs
// stripped from each non-blank line.
func scanBlockBody(source, src string, lines []line, tagIndent int, startIdx int) (text string, sp Span, nextIdx int) {
	var b strings.Builder
	idx := startIdx
	first := true
	startOffset := -1
	endOffset := -1

	for idx < len(lines) {
		l := lines[idx]
		if !l.blank && l.indent <= tagIndent {
			break
		}
		if !first {
			b.WriteByte('\n')
		}
		first = false
		if startOffset == -1 {
			startOffset = l.contentOffset
			if l.blank {
				startOffset = l.startOffset
			}
		}
		if l.blank {
			endOffset = l.startOffset
		} else {
			extra := l.indent - (tagIndent + 1)
			if extra > 0 {
				b.WriteString(strings.Repeat("\t", extra))
			}
			b.WriteString(l.content)
			endOffset = l.contentOffset + len(l.content)
		}
		idx++
	}

	if startOffset == -1 {
		startOffset = 0
		endOffset = 0
	}
	return b.String(), spanAt(source, src, startOffset, endOffset), idx
}
