package parser

import (
	"io"

	"github.com/pkg/errors"

	"github.com/refhtml/refhtml/parser/spec"
)

// Progress carries tree-construction state back into the tokenizer between
// pulls: the adjusted current node, which gates CDATA sections to foreign
// content, and any tokenizer state switch the tree stage requested.
type Progress struct {
	AdjustedCurrentNode *spec.Node
	TokenizerState      *tokenizerState
}

// Tokenize runs the tokenization stage alone and returns every emitted
// token, the end-of-file token included, plus the parse errors in source
// order.
func Tokenize(html string) ([]Token, []ParseError) {
	errs := &errorList{}
	p := NewHTMLTokenizer(html, errs)
	var tokens []Token
	for p.Next() {
		tokens = append(tokens, *p.Token(nil))
	}
	return tokens, errs.errs
}

// Parse builds a document from html and returns it together with the parse
// errors both stages recorded. The returned node is always a document; a
// parse never fails outright.
func Parse(html string) (*spec.Node, []ParseError) {
	errs := &errorList{}
	p := NewHTMLTokenizer(html, errs)
	c := NewHTMLTreeConstructor(errs)
	doc := c.ConstructTree(p)
	return doc, errs.errs
}

// ParseReader reads r to the end and parses the content as a document.
func ParseReader(r io.Reader) (*spec.Node, []ParseError, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading document")
	}
	doc, parseErrs := Parse(string(b))
	return doc, parseErrs, nil
}
