package markdoll

import "fmt"

// ArgKind classifies how a tag definition expects its argument, the first
// parenthesized group after the tag name.
type ArgKind int

const (
	ArgNone ArgKind = iota
	ArgOptionalString
	ArgRequiredString
)

// PropKind classifies how a prop's value string should be interpreted.
type PropKind int

const (
	PropString PropKind = iota
	PropInt
	PropEnum
)

// PropDef declares one recognized key=value property.
type PropDef struct {
	Kind PropKind
	// Enum lists the accepted values when Kind is PropEnum.
	Enum []string
}

// TagContentKind is a tag definition's declared content-kind contract per
// spec §4.5 — distinct from ast.go's ContentKind, which instead describes
// the shape the *scanner* actually found (none/inline/block). A
// definition declaring TagContentEmbedded, for instance, still arrives as
// a scanner-level ContentInline or ContentBlock body; Dispatch is what
// bridges the two by re-parsing that raw text.
type TagContentKind int

const (
	TagContentNone TagContentKind = iota
	TagContentRawInline
	TagContentRawBlock
	TagContentEmbedded
	TagContentCustom
)

// TagParser is the callable a tag definition supplies to turn a raw
// invocation into a parsed payload, per spec §4.5. It may record
// diagnostics and/or request an embedded parse through handle.
type TagParser func(inv *Invocation, handle DispatchHandle) (payload any, err bool)

// TagEmitter renders a dispatched invocation's payload for one output
// target.
type TagEmitter func(ctx *EmitContext, inv *Invocation, payload any)

// TagDef is a tag's complete static declaration: name, accepted argument/
// flags/props shape, content kind, and its parser/emitter callables. See
// spec §4.5.
type TagDef struct {
	Name    string
	Arg     ArgKind
	Flags   map[string]bool
	Props   map[string]PropDef
	Content TagContentKind
	Parse   TagParser
	// Emit maps an output target identifier (e.g. "html") to the emitter
	// for that target. A tag with no entry for the active target yields
	// markdoll::emit::no-target and the node is skipped.
	Emit map[string]TagEmitter
}

// Registry holds the set of tag definitions available to a parse/dispatch
// run. A Registry is mutated by Register before any parsing begins;
// registering after parsing has started is a usage error (panics, per
// spec §4.5 — this is a programmer mistake, not a recoverable input
// condition).
type Registry struct {
	defs   map[string]*TagDef
	closed bool
}

// NewEngineRegistry returns an empty Registry ready for Register calls.
func NewEngineRegistry() *Registry {
	return &Registry{defs: make(map[string]*TagDef)}
}

// Register adds def to the registry. Names are case-sensitive and must be
// unique; registering a duplicate name, or registering after the registry
// has started being used to parse (Lookup/Iterate called to service a
// parse), panics.
func (r *Registry) Register(def *TagDef) {
	if r.closed {
		panic(fmt.Sprintf("markdoll: Register(%q) called after parsing began", def.Name))
	}
	if _, exists := r.defs[def.Name]; exists {
		panic(fmt.Sprintf("markdoll: duplicate tag registration %q", def.Name))
	}
	r.defs[def.Name] = def
}

// Lookup returns the definition for name, or nil if unregistered. The
// first Lookup call closes the registry to further Register calls.
func (r *Registry) Lookup(name string) *TagDef {
	r.closed = true
	return r.defs[name]
}

// Iterate calls fn for every registered definition, in no particular
// order. Closes the registry like Lookup.
func (r *Registry) Iterate(fn func(*TagDef)) {
	r.closed = true
	for _, def := range r.defs {
		fn(def)
	}
}
