package parser

import "fmt"

// Position locates a parse error in the decoded input, measured in code
// points after newline normalization. Line and Col are 1-based.
type Position struct {
	Line   int
	Col    int
	Offset int
}

// ParseError is a recoverable deviation from well-formed HTML. Every
// ParseError has a spec-defined recovery action, so the pipeline never
// stops on one; callers that care inspect the accumulated slice.
// https://html.spec.whatwg.org/multipage/parsing.html#parse-errors
type ParseError struct {
	Code string
	Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("(%d:%d) %s", e.Line, e.Col, e.Code)
}

// Error codes from the parse-errors table of the spec. Only codes the
// tokenizer or tree constructor actually reports are listed.
const (
	errAbruptClosingOfEmptyComment        = "abrupt-closing-of-empty-comment"
	errAbruptDoctypePublicIdentifier      = "abrupt-doctype-public-identifier"
	errAbruptDoctypeSystemIdentifier      = "abrupt-doctype-system-identifier"
	errAbsenceOfDigits                    = "absence-of-digits-in-numeric-character-reference"
	errCDATAInHTMLContent                 = "cdata-in-html-content"
	errCharacterReferenceOutsideUnicode   = "character-reference-outside-unicode-range"
	errControlCharacterReference          = "control-character-reference"
	errDuplicateAttribute                 = "duplicate-attribute"
	errEndTagWithAttributes               = "end-tag-with-attributes"
	errEndTagWithTrailingSolidus          = "end-tag-with-trailing-solidus"
	errEOFBeforeTagName                   = "eof-before-tag-name"
	errEOFInCDATA                         = "eof-in-cdata"
	errEOFInComment                       = "eof-in-comment"
	errEOFInDoctype                       = "eof-in-doctype"
	errEOFInScriptHTMLComment             = "eof-in-script-html-comment-like-text"
	errEOFInTag                           = "eof-in-tag"
	errIncorrectlyClosedComment           = "incorrectly-closed-comment"
	errIncorrectlyOpenedComment           = "incorrectly-opened-comment"
	errInvalidCharacterSequenceAfterName  = "invalid-character-sequence-after-doctype-name"
	errInvalidFirstCharacterOfTagName     = "invalid-first-character-of-tag-name"
	errMissingAttributeValue              = "missing-attribute-value"
	errMissingDoctypeName                 = "missing-doctype-name"
	errMissingDoctypePublicIdentifier     = "missing-doctype-public-identifier"
	errMissingDoctypeSystemIdentifier     = "missing-doctype-system-identifier"
	errMissingEndTagName                  = "missing-end-tag-name"
	errMissingQuoteBeforePublicIdentifier = "missing-quote-before-doctype-public-identifier"
	errMissingQuoteBeforeSystemIdentifier = "missing-quote-before-doctype-system-identifier"
	errMissingSemicolonAfterCharRef       = "missing-semicolon-after-character-reference"
	errMissingWhitespaceAfterKeyword      = "missing-whitespace-after-doctype-public-keyword"
	errMissingWhitespaceAfterSystem       = "missing-whitespace-after-doctype-system-keyword"
	errMissingWhitespaceBeforeDoctypeName = "missing-whitespace-before-doctype-name"
	errMissingWhitespaceBetweenAttributes = "missing-whitespace-between-attributes"
	errMissingWhitespaceBetweenIdentifiers = "missing-whitespace-between-doctype-public-and-system-identifiers"
	errNestedComment                      = "nested-comment"
	errNonVoidElementWithTrailingSolidus  = "non-void-html-element-start-tag-with-trailing-solidus"
	errNoncharacterCharacterReference     = "noncharacter-character-reference"
	errNullCharacterReference             = "null-character-reference"
	errSurrogateCharacterReference        = "surrogate-character-reference"
	errUnexpectedCharacterAfterSystemIdentifier = "unexpected-character-after-doctype-system-identifier"
	errUnexpectedCharacterInAttributeName = "unexpected-character-in-attribute-name"
	errUnexpectedCharacterInUnquotedValue = "unexpected-character-in-unquoted-attribute-value"
	errUnexpectedEqualsSignBeforeAttributeName = "unexpected-equals-sign-before-attribute-name"
	errUnexpectedNullCharacter            = "unexpected-null-character"
	errUnexpectedQuestionMarkInsteadOfTagName = "unexpected-question-mark-instead-of-tag-name"
	errUnexpectedSolidusInTag             = "unexpected-solidus-in-tag"
	errUnknownNamedCharacterReference     = "unknown-named-character-reference"

	// Tree construction has one catch-all code in the spec's prose; the
	// unnamed "unexpected token in mode" cases all report this.
	errUnexpectedToken = "unexpected-token"
)

// errorList accumulates ParseErrors in source order. The tokenizer and the
// tree constructor append to the same list through the shared parse context
// so callers see one interleaved sequence.
type errorList struct {
	errs []ParseError
}

func (l *errorList) add(code string, pos Position) {
	l.errs = append(l.errs, ParseError{Code: code, Position: pos})
}
