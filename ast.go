package markdoll

// Kind is the type of an AST Node. markdoll follows a tagged-variant
// design for the AST rather than one Go type per node kind: a single Node
// struct carries a Kind plus whichever of its fields that Kind uses. This
// mirrors the teacher's own Node, which carries Type NodeType plus a
// flat set of fields used selectively depending on Type.
type Kind int

const (
	KindDocument Kind = iota
	KindSection
	KindParagraph
	KindList
	KindListItem
	KindText
	KindLineBreak
	KindTagInvocation
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindSection:
		return "Section"
	case KindParagraph:
		return "Paragraph"
	case KindList:
		return "List"
	case KindListItem:
		return "ListItem"
	case KindText:
		return "Text"
	case KindLineBreak:
		return "LineBreak"
	case KindTagInvocation:
		return "TagInvocation"
	case KindError:
		return "Error"
	}
	return "Kind(?)"
}

// ListKind distinguishes ordered from unordered List nodes.
type ListKind int

const (
	ListUnordered ListKind = iota
	ListOrdered
)

// ContentKind classifies a tag invocation's body, per the three shapes
// described by spec §3: no body, raw inline text, or dedented block text.
type ContentKind int

const (
	ContentNone ContentKind = iota
	ContentInline
	ContentBlock
)

// Flag is a single bare-identifier flag token on a tag invocation.
type Flag struct {
	Name string
	Span Span
}

// Prop is a single key=value property token on a tag invocation.
type Prop struct {
	Name  string
	Value string
	Span  Span
}

// TagBody is the raw, undispatched content of a tag invocation as the
// scanner produced it: None has no text, Inline holds the balanced-bracket
// body, Block holds the dedented block lines joined by their original
// newlines.
type TagBody struct {
	Kind ContentKind
	Text string
	Span Span
}

// Node is a single AST node. Which fields are meaningful depends on Kind;
// see the per-Kind comments below.
type Node struct {
	Kind Kind
	Span Span

	// KindDocument
	Frontmatter *string

	// KindSection
	Heading     string
	HeadingSpan Span
	Depth       int

	// KindList
	ListKind ListKind

	// KindText
	Text string

	// KindTagInvocation
	Name     string
	NameSpan Span
	Arg      *string
	ArgSpan  Span
	Flags    []Flag
	Props    []Prop
	Body     TagBody
	// Payload holds the opaque result of the tag definition's parser,
	// once dispatch has run. Set iff parsing succeeded; never replaced
	// afterward (spec §3 invariant).
	Payload any

	// KindDocument / KindSection / KindParagraph / KindList / KindListItem:
	// the node's ordered children (block or inline, depending on Kind).
	Children []*Node
}

// AppendChild appends child to n.Children and widens n.Span to cover it.
// Mirrors the teacher's AppendChild/span-widening pattern in node.go,
// adapted from a linked sibling list to a plain slice since markdoll's
// AST is append-only during parse (no RemoveChild/ReparentChildren are
// needed once includes are out of scope).
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
	if n.Span.Source == "" {
		n.Span = child.Span
	} else {
		n.Span = joinSpan(n.Span, child.Span)
	}
}

// errorNode builds an Error placeholder node for sp, used whenever a
// subtree fails to parse or dispatch so that emission may continue.
func errorNode(sp Span) *Node {
	return &Node{Kind: KindError, Span: sp}
}
