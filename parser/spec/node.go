package spec

import (
	"sort"
	"strings"

	"github.com/refhtml/refhtml/parser/webidl"
	"github.com/sirupsen/logrus"
)

// NodeType discriminates the kinds of tree entities the parser builds.
type NodeType uint

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	// ScopeMarkerNode never appears in a document tree; it is the marker
	// entry the tree constructor pushes onto the list of active formatting
	// elements.
	ScopeMarkerNode
)

// Element namespaces.
const (
	Htmlns   webidl.DOMString = "http://www.w3.org/1999/xhtml"
	Mathmlns webidl.DOMString = "http://www.w3.org/1998/Math/MathML"
	Svgns    webidl.DOMString = "http://www.w3.org/2000/svg"
	Xlinkns  webidl.DOMString = "http://www.w3.org/1999/xlink"
	Xmlns    webidl.DOMString = "http://www.w3.org/XML/1998/namespace"
	Xmlnsns  webidl.DOMString = "http://www.w3.org/2000/xmlns/"
)

// Node is a single entity in the constructed tree. A parent exclusively
// owns its ChildNodes; ParentNode is a non-owning back reference, so the
// tree is acyclic apart from it.
type Node struct {
	NodeType      NodeType
	NodeName      webidl.DOMString // element local name or doctype name
	Namespace     webidl.DOMString // element namespace
	Attributes    AttrList
	Data          webidl.DOMString // text or comment payload
	PublicID      webidl.DOMString
	SystemID      webidl.DOMString
	ParentNode    *Node
	ChildNodes    NodeList
	OwnerDocument *Node
	Document      *Document // set when NodeType is DocumentNode
}

// Document carries document-wide state recorded during parsing.
type Document struct {
	// CompatMode is one of "no-quirks", "limited-quirks", or "quirks".
	// It is recorded from doctype inspection and never acted on here.
	CompatMode webidl.DOMString
}

// NodeList is an ordered sequence of child or stack entries.
type NodeList []*Node

// Attr is one attribute on an element.
type Attr struct {
	Name      webidl.DOMString
	Value     webidl.DOMString
	Namespace webidl.DOMString
}

// AttrList keeps attributes in insertion order with unique names; the
// first occurrence of a name wins.
type AttrList []*Attr

// Set appends the attribute unless the name is already present.
func (l *AttrList) Set(name, value webidl.DOMString) {
	if _, ok := l.Get(name); ok {
		return
	}
	*l = append(*l, &Attr{Name: name, Value: value})
}

// Get returns the value for name and whether it is present.
func (l AttrList) Get(name webidl.DOMString) (webidl.DOMString, bool) {
	for _, a := range l {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Sorted returns the attributes ordered by name, the order the dump
// formats require.
func (l AttrList) Sorted() []*Attr {
	out := make([]*Attr, len(l))
	copy(out, l)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// NewDocumentNode creates an empty document. Documents start out in
// no-quirks mode until doctype inspection says otherwise.
func NewDocumentNode() *Node {
	n := &Node{
		NodeType: DocumentNode,
		NodeName: "#document",
		Document: &Document{CompatMode: "no-quirks"},
	}
	n.OwnerDocument = n
	return n
}

// NewDOMElement creates an element owned by document in the given
// namespace. The html namespace is the default.
func NewDOMElement(document *Node, name webidl.DOMString, ns ...webidl.DOMString) *Node {
	namespace := Htmlns
	if len(ns) > 0 {
		namespace = ns[0]
	}
	return &Node{
		NodeType:      ElementNode,
		NodeName:      name,
		Namespace:     namespace,
		OwnerDocument: document,
	}
}

// NewTextNode creates a text node with its initial data.
func NewTextNode(document *Node, data string) *Node {
	return &Node{
		NodeType:      TextNode,
		NodeName:      "#text",
		Data:          webidl.DOMString(data),
		OwnerDocument: document,
	}
}

// NewCommentNode creates a comment node.
func NewCommentNode(document *Node, data string) *Node {
	return &Node{
		NodeType:      CommentNode,
		NodeName:      "#comment",
		Data:          webidl.DOMString(data),
		OwnerDocument: document,
	}
}

// NewDocTypeNode creates a documenttype node.
func NewDocTypeNode(name, publicID, systemID webidl.DOMString) *Node {
	return &Node{
		NodeType: DocumentTypeNode,
		NodeName: name,
		PublicID: publicID,
		SystemID: systemID,
	}
}

// NewScopeMarker creates the marker entry for the active formatting list.
func NewScopeMarker() *Node {
	return &Node{NodeType: ScopeMarkerNode}
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.ChildNodes) == 0 {
		return nil
	}
	return n.ChildNodes[len(n.ChildNodes)-1]
}

// HasChildNodes reports whether any children exist.
func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

// AppendChild detaches on from any previous parent and appends it.
// https://dom.spec.whatwg.org/#concept-node-append
func (n *Node) AppendChild(on *Node) *Node {
	before := n.traceSnapshot()
	if on.ParentNode != nil {
		on.ParentNode.RemoveChild(on)
	}
	on.ParentNode = n
	n.ChildNodes = append(n.ChildNodes, on)
	n.traceDiff(before, "AppendChild")
	return on
}

// InsertBefore inserts on immediately before child. A nil child appends.
func (n *Node) InsertBefore(on, child *Node) *Node {
	if child == nil {
		return n.AppendChild(on)
	}
	before := n.traceSnapshot()
	if on.ParentNode != nil {
		on.ParentNode.RemoveChild(on)
	}
	for i := range n.ChildNodes {
		if n.ChildNodes[i] == child {
			n.ChildNodes = append(n.ChildNodes[:i], append(NodeList{on}, n.ChildNodes[i:]...)...)
			on.ParentNode = n
			n.traceDiff(before, "InsertBefore")
			return on
		}
	}
	return n.AppendChild(on)
}

// RemoveChild detaches child from n. Detaching a node that is not a child
// is a no-op.
func (n *Node) RemoveChild(child *Node) *Node {
	before := n.traceSnapshot()
	for i := range n.ChildNodes {
		if n.ChildNodes[i] == child {
			n.ChildNodes = append(n.ChildNodes[:i], n.ChildNodes[i+1:]...)
			child.ParentNode = nil
			n.traceDiff(before, "RemoveChild")
			return child
		}
	}
	return nil
}

// traceSnapshot serializes the whole tree so a later traceDiff can show what
// a mutation changed. It returns "" unless trace logging is on.
func (n *Node) traceSnapshot() string {
	if !logrus.IsLevelEnabled(logrus.TraceLevel) {
		return ""
	}
	return n.getRoot().String()
}

func (n *Node) traceDiff(before, method string) {
	if !logrus.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	PrintDiff(before, n.getRoot().String(), method)
}

// IndexOf returns the child index of child in n, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i := range n.ChildNodes {
		if n.ChildNodes[i] == child {
			return i
		}
	}
	return -1
}

// CloneNode copies the node; with deep it copies the whole subtree.
// https://dom.spec.whatwg.org/#concept-node-clone
func (n *Node) CloneNode(deep bool) *Node {
	copied := &Node{
		NodeType:      n.NodeType,
		NodeName:      n.NodeName,
		Namespace:     n.Namespace,
		Data:          n.Data,
		PublicID:      n.PublicID,
		SystemID:      n.SystemID,
		OwnerDocument: n.OwnerDocument,
	}
	for _, a := range n.Attributes {
		copied.Attributes = append(copied.Attributes, &Attr{Name: a.Name, Value: a.Value, Namespace: a.Namespace})
	}
	if n.NodeType == DocumentNode {
		copied.Document = &Document{CompatMode: n.Document.CompatMode}
		copied.OwnerDocument = copied
	}
	if deep {
		for _, child := range n.ChildNodes {
			c := child.CloneNode(true)
			c.ParentNode = copied
			copied.ChildNodes = append(copied.ChildNodes, c)
		}
	}
	return copied
}

func (n *Node) getRoot() *Node {
	var prev *Node
	for i := n; i != nil; i = i.ParentNode {
		prev = i
	}
	return prev
}

func serializeNodeType(node *Node, ident int) string {
	switch node.NodeType {
	case ElementNode:
		e := "<"
		switch node.Namespace {
		case Svgns:
			e += "svg "
		case Mathmlns:
			e += "math "
		}
		e += string(node.NodeName) + ">"
		if len(node.Attributes) != 0 {
			spaces := "| "
			for i := 1; i < ident; i++ {
				spaces += "  "
			}
			for _, attr := range node.Attributes.Sorted() {
				var ns string
				switch attr.Namespace {
				case Xmlnsns:
					ns = "xmlns "
				case Xmlns:
					ns = "xml "
				case Xlinkns:
					ns = "xlink "
				}
				e += "\n" + spaces + ns + string(attr.Name) + "=\"" + string(attr.Value) + "\""
			}
		}
		return e
	case TextNode:
		return "\"" + string(node.Data) + "\""
	case CommentNode:
		return "<!-- " + string(node.Data) + " -->"
	case DocumentTypeNode:
		d := "<!DOCTYPE " + string(node.NodeName)
		if len(node.PublicID) != 0 || len(node.SystemID) != 0 {
			d += " \"" + string(node.PublicID) + "\""
			d += " \"" + string(node.SystemID) + "\""
		}
		return d + ">"
	case DocumentNode:
		return "#document"
	default:
		return ""
	}
}

func (node *Node) serialize(ident int) string {
	ser := serializeNodeType(node, ident+1) + "\n"
	if node.NodeType != DocumentNode {
		spaces := "| "
		for i := 1; i < ident; i++ {
			spaces += "  "
		}
		ser = spaces + ser
	}
	for _, child := range node.ChildNodes {
		ser += child.serialize(ident + 1)
	}
	return ser
}

// String renders the subtree in the html5lib tree-construction test format:
// one node per line, depth shown with "| " and two-space indents,
// attributes sorted by name on their own lines.
func (node *Node) String() string {
	return strings.TrimRight(node.serialize(0), "\n")
}
