package markdoll

import (
	"strings"

	"github.com/0x57e11a/markdoll/sliceedit"
)

// line is one logical source line after indentation measurement: the
// teacher's Text struct (LineNumber/Indentation/Content) adapted from
// space-counted indentation to TAB-counted indentation, and from a
// bufio.Scanner pull model to a slice the parser indexes into directly
// (markdoll parses whole in-memory sources, never streams, per spec §5).
type line struct {
	no      int // 1-based line number
	indent  int // count of leading TAB characters
	content string
	// startOffset/contentOffset are byte offsets into the original source:
	// startOffset is the offset of the line's first byte (before any
	// leading TABs), contentOffset is the offset of content[0].
	startOffset   int
	contentOffset int
	blank         bool
}

// splitLines breaks src into lines, measuring TAB indentation per spec
// §4.1. It does not itself reject CR bytes; callers check that first so
// the fatal diagnostic can carry a precise offset before any further
// processing happens.
func splitLines(src string) []line {
	var lines []line
	offset := 0
	no := 0
	for offset <= len(src) {
		nl := strings.IndexByte(src[offset:], '\n')
		var raw string
		lineStart := offset
		if nl == -1 {
			raw = src[offset:]
			offset = len(src) + 1
		} else {
			raw = src[offset : offset+nl]
			offset = offset + nl + 1
		}
		no++

		indent := 0
		for indent < len(raw) && raw[indent] == '\t' {
			indent++
		}
		content := raw[indent:]
		trimmed := strings.TrimRight(content, " \t")
		blank := len(strings.TrimSpace(content)) == 0

		lines = append(lines, line{
			no:            no,
			indent:        indent,
			content:       trimmed,
			startOffset:   lineStart,
			contentOffset: lineStart + indent,
			blank:         blank,
		})

		if nl == -1 {
			break
		}
	}
	return lines
}

// indexOfCR returns the byte offset of the first CR in src, or -1.
func indexOfCR(src string) int {
	return strings.IndexByte(src, '\r')
}

// posAt converts a byte offset within src into a Position, scanning from
// the start. markdoll sources are small enough (documents, not codebases)
// that a linear scan per call is not worth the bookkeeping a running
// cursor would add; the parser only calls this at node-boundary points.
func posAt(src string, offset int) Position {
	line, col := 1, 1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Offset: offset, Line: line, Column: col}
}

func spanAt(source, src string, start, end int) Span {
	return Span{Source: source, Start: posAt(src, start), End: posAt(src, end)}
}

// isIdentByte reports whether b may appear in a tag name: letters,
// digits, '-', '_' and '.' (dotted names per spec §4.5 "unique dotted
// identifier").
func isIdentByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.':
		return true
	}
	return false
}

// decodeEscapes applies the escape table from spec §4.1 to a single line
// of text (escape decoding never crosses a block-tag body, and newline
// folding is handled one level up by the inline scanner). It returns the
// decoded text and whether the line ends in a trigger for an explicit
// LineBreak (a single unescaped trailing backslash); a warning is added
// to bag for each unrecognized escape.
//
// The decode pass is expressed as a queue of position-based replacements
// applied through sliceedit/rsc.io's edit.Buffer rather than building the
// result by hand with a strings.Builder: most lines contain no escapes at
// all, and buffering the (rare) edits lets the zero-edit case return the
// original content string as is.
func decodeEscapes(bag *Bag, source, src string, s line) (text string, breakAtEnd bool) {
	content := s.content
	buf := sliceedit.NewBuffer([]byte(content))
	hasEdit := false

	i := 0
	for i < len(content) {
		if content[i] != '\\' {
			i++
			continue
		}
		if i == len(content)-1 {
			// Trailing unescaped backslash: LineBreak trigger. Drop it
			// from the text.
			buf.ReplaceAt(i, i+1, "")
			hasEdit = true
			breakAtEnd = true
			i++
			continue
		}
		next := content[i+1]
		switch next {
		case '\\':
			buf.ReplaceAt(i, i+2, "\\")
			hasEdit = true
		case ']':
			buf.ReplaceAt(i, i+2, "]")
			hasEdit = true
		case '[':
			buf.ReplaceAt(i, i+2, "[")
			hasEdit = true
		default:
			sp := spanAt(source, src, s.contentOffset+i, s.contentOffset+i+2)
			bag.Addf(SeverityWarning, CodeBadEscape, sp, "unrecognized escape '\\%c'", next)
			buf.ReplaceAt(i, i+2, string(next))
			hasEdit = true
		}
		i += 2
	}

	if !hasEdit {
		return content, breakAtEnd
	}
	return string(buf.Bytes()), breakAtEnd
}
