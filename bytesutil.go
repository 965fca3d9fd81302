package markdoll

import "strings"

// TrimLeft strips any of cutset's bytes from the front of s. Thin wrapper
// kept for parity with the teacher's bytesutil-style helpers (rite_utils.go
// exposes the same small set of string-trimming primitives used all over
// its parser); markdoll's tags package reaches for these, rather than
// strings.TrimSpace, when a tag's own grammar only ever produces ASCII
// space/tab padding around a value (table.go's cell text, code.go's
// language hint) and wants to say so explicitly.
func TrimLeft(s, cutset string) string {
	return strings.TrimLeft(s, cutset)
}

// TrimRight strips any of cutset's bytes from the back of s.
func TrimRight(s, cutset string) string {
	return strings.TrimRight(s, cutset)
}

// SplitNonEmpty splits s on sep, dropping empty fields left over from
// leading/trailing/doubled separators.
func SplitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
