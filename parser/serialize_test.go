package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/refhtml/refhtml/parser/spec"
)

// voidElements never get an end tag when serialized.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// rawTextElements hold their text verbatim, with no escaping.
var rawTextElements = map[string]bool{
	"script": true, "style": true,
}

func escapeHTMLText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttrValue(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

// serializeHTML renders a tree back to HTML, following the fragment
// serialization algorithm far enough for round-trip checks: void elements
// get no end tag, raw-text contents are emitted verbatim, everything else
// is escaped.
func serializeHTML(n *spec.Node) string {
	var b strings.Builder
	serializeHTMLNode(&b, n, false)
	return b.String()
}

func serializeHTMLNode(b *strings.Builder, n *spec.Node, raw bool) {
	switch n.NodeType {
	case spec.DocumentNode:
		for _, c := range n.ChildNodes {
			serializeHTMLNode(b, c, false)
		}
	case spec.DocumentTypeNode:
		b.WriteString("<!DOCTYPE ")
		b.WriteString(string(n.NodeName))
		b.WriteString(">")
	case spec.CommentNode:
		b.WriteString("<!--")
		b.WriteString(string(n.Data))
		b.WriteString("-->")
	case spec.TextNode:
		if raw {
			b.WriteString(string(n.Data))
		} else {
			b.WriteString(escapeHTMLText(string(n.Data)))
		}
	case spec.ElementNode:
		name := string(n.NodeName)
		b.WriteString("<")
		b.WriteString(name)
		for _, a := range n.Attributes {
			b.WriteString(" ")
			b.WriteString(string(a.Name))
			b.WriteString(`="`)
			b.WriteString(escapeAttrValue(string(a.Value)))
			b.WriteString(`"`)
		}
		b.WriteString(">")
		if n.Namespace == spec.Htmlns && voidElements[name] {
			return
		}
		childRaw := n.Namespace == spec.Htmlns && rawTextElements[name]
		for _, c := range n.ChildNodes {
			serializeHTMLNode(b, c, childRaw)
		}
		b.WriteString("</")
		b.WriteString(name)
		b.WriteString(">")
	}
}

// Serializing a parsed tree and reparsing the result has to reproduce the
// same structure, for documents with normalized void elements and no
// formatting-element misnesting.
func TestSerializeReparseStability(t *testing.T) {
	tests := []string{
		"<!DOCTYPE html><p>Hello<br>world</p>",
		`<div class="a" id="b"><span>x &amp; y</span></div>`,
		"<table><tbody><tr><td>1</td><td>2</td></tr></tbody></table>",
		"<ul><li>one</li><li>two</li></ul>",
		"<p>a</p><!--note--><p>b</p>",
		`<script>var x = "<b>";</script><p>after</p>`,
		`<a href="?x=1&amp;y=2">link</a>`,
	}
	for _, in := range tests {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			first, _ := Parse(in)
			require.NotNil(t, first)
			html := serializeHTML(first)
			second, _ := Parse(html)
			require.NotNil(t, second)
			require.Equal(t, DumpTree(first), DumpTree(second), "reserialized input: %s", html)
		})
	}
}
