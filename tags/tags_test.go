package tags

import (
	"testing"

	markdoll "github.com/0x57e11a/markdoll"
)

func TestRegisterStandardRegistersEveryTag(t *testing.T) {
	reg := markdoll.NewRegistry()
	RegisterStandard(reg)

	want := []string{"em", "strong", "b", "i", "code", "link", "table", "quote", "comment", "diagram"}
	for _, name := range want {
		if reg.Lookup(name) == nil {
			t.Errorf("tag %q was not registered by RegisterStandard", name)
		}
	}
}
