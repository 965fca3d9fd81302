//go:build !danger

package tags

import (
	"go.uber.org/zap"

	markdoll "github.com/0x57e11a/markdoll"
)

// RegisterDangerIfAvailable is a no-op in builds without the `danger` build
// tag: the exec-backed tag set in danger.go simply isn't compiled in, so
// --danger on a plain build only produces a warning, never a silent
// capability a reader of main.go wouldn't expect.
func RegisterDangerIfAvailable(reg *markdoll.Registry, log *zap.SugaredLogger) {
	log.Warn("--danger requested but this binary was not built with the danger build tag; ignoring")
}
