package markdoll

import (
	"bytes"
	"fmt"
)

// ByteRenderer accumulates bytes into a single growing buffer. It is the
// same accumulate-then-flush idiom the teacher threads through its whole
// rendering path (node.go, parser.go all build output by repeated
// Render/Renderln calls on one of these before taking the final Bytes()).
// Render and Renderln accept a mix of []byte, string and anything
// fmt.Stringer/fmt.Sprintf can turn into bytes, so callers can interleave
// literal tag fragments with node-derived byte slices without manual
// conversions at each call site.
type ByteRenderer struct {
	buf bytes.Buffer
}

func (r *ByteRenderer) write(v any) {
	switch x := v.(type) {
	case []byte:
		r.buf.Write(x)
	case string:
		r.buf.WriteString(x)
	case byte:
		r.buf.WriteByte(x)
	case rune:
		r.buf.WriteRune(x)
	case int:
		fmt.Fprintf(&r.buf, "%d", x)
	case nil:
		// nothing to write
	default:
		fmt.Fprintf(&r.buf, "%v", x)
	}
}

// Render writes each argument to the buffer, back to back, with no
// separators.
func (r *ByteRenderer) Render(args ...any) {
	for _, a := range args {
		r.write(a)
	}
}

// Renderln is Render followed by a trailing newline.
func (r *ByteRenderer) Renderln(args ...any) {
	r.Render(args...)
	r.buf.WriteByte('\n')
}

// Write implements io.Writer, so a ByteRenderer can be handed directly to
// anything that formats into a writer (e.g. chroma's HTML formatter).
func (r *ByteRenderer) Write(p []byte) (int, error) {
	return r.buf.Write(p)
}

// Bytes returns the accumulated buffer. The returned slice aliases the
// renderer's internal storage; callers that intend to keep using the
// renderer afterward should use CloneBytes instead.
func (r *ByteRenderer) Bytes() []byte {
	return r.buf.Bytes()
}

// CloneBytes returns a copy of the accumulated buffer, safe to retain
// after further Render calls.
func (r *ByteRenderer) CloneBytes() []byte {
	return bytes.Clone(r.buf.Bytes())
}

func (r *ByteRenderer) String() string {
	return r.buf.String()
}
