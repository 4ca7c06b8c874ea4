package parser

import "github.com/refhtml/refhtml/parser/spec"

// ParseFragment parses html in the context of the given element and
// returns the parsed children in tree order.
// https://html.spec.whatwg.org/multipage/parsing.html#html-fragment-parsing-algorithm
func ParseFragment(context *spec.Node, html string) ([]*spec.Node, []ParseError) {
	errs := &errorList{}
	p := NewHTMLTokenizer(html, errs)
	c := NewHTMLTreeConstructor(errs)
	c.context = context

	if context != nil {
		if context.Namespace == "" || context.Namespace == spec.Htmlns {
			switch context.NodeName {
			case "title", "textarea":
				p.currentState = rcDataState
			case "style", "xmp", "iframe", "noembed", "noframes":
				p.currentState = rawTextState
			case "script":
				p.currentState = scriptDataState
			case "noscript":
				if c.scriptingEnabled {
					p.currentState = rawTextState
				}
			case "plaintext":
				p.currentState = plaintextState
			}
		}
		// end tags matching the context element are "appropriate" from
		// the start
		p.lastEmittedStartTagName = string(context.NodeName)
	}

	root := spec.NewDOMElement(c.HTMLDocument, "html")
	c.HTMLDocument.AppendChild(root)
	spec.Push(root, &c.stackOfOpenElements)
	if context != nil && context.NodeName == "template" {
		c.templateInsertionModes = append(c.templateInsertionModes, inTemplate)
	}
	c.curMode = c.resetInsertionMode()

	for anc := context; anc != nil; anc = anc.ParentNode {
		if anc.NodeName == "form" {
			c.formElementPointer = anc
			break
		}
	}

	c.ConstructTree(p)

	children := make([]*spec.Node, len(root.ChildNodes))
	copy(children, root.ChildNodes)
	return children, errs.errs
}
