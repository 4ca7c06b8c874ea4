package parser

import (
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/refhtml/refhtml/parser/spec"
)

// HTMLTokenizer converts decoded text into a stream of tokens, one spec
// state at a time. Input is fully materialized; the cursor only ever moves
// forward. Malformed input never stops the machine; every deviation is
// recorded on the shared error list and tokenization continues with the
// spec's recovery action until the end-of-file token is emitted.
type HTMLTokenizer struct {
	input                     []rune
	pos                       int
	curPos                    Position
	nextLine, nextCol         int
	done                      bool
	returnState, currentState tokenizerState
	adjustedCurrentNode       *spec.Node
	emittedTokens             []Token
	tokenBuilder              *TokenBuilder
	lastEmittedStartTagName   string
	errs                      *errorList
}

// NewHTMLTokenizer creates a tokenizer over html. Newlines are normalized
// (CRLF and bare CR become LF) before any state runs, per the input stream
// preprocessing rules.
func NewHTMLTokenizer(html string, errs *errorList) *HTMLTokenizer {
	if errs == nil {
		errs = &errorList{}
	}
	return &HTMLTokenizer{
		input:        normalizeNewlines(html),
		nextLine:     1,
		nextCol:      1,
		currentState: dataState,
		tokenBuilder: newTokenBuilder(),
		errs:         errs,
	}
}

func normalizeNewlines(html string) []rune {
	in := []rune(html)
	out := in[:0]
	for i := 0; i < len(in); i++ {
		if in[i] == '\r' {
			if i+1 < len(in) && in[i+1] == '\n' {
				i++
			}
			out = append(out, '\n')
			continue
		}
		out = append(out, in[i])
	}
	return out
}

func (p *HTMLTokenizer) parseError(code string) {
	p.errs.add(code, p.curPos)
}

// consume advances the cursor and returns the next code point. The second
// return is true at end of input.
func (p *HTMLTokenizer) consume() (rune, bool) {
	if p.pos >= len(p.input) {
		p.curPos = Position{Line: p.nextLine, Col: p.nextCol, Offset: p.pos}
		return 0, true
	}
	r := p.input[p.pos]
	p.curPos = Position{Line: p.nextLine, Col: p.nextCol, Offset: p.pos}
	p.pos++
	if r == '\n' {
		p.nextLine++
		p.nextCol = 1
	} else {
		p.nextCol++
	}
	return r, false
}

// discard consumes n code points without dispatching states on them, for
// the lookahead sequences ("--", "DOCTYPE", "[CDATA[", "PUBLIC", "SYSTEM").
func (p *HTMLTokenizer) discard(n int) {
	for i := 0; i < n && p.pos < len(p.input); i++ {
		p.consume()
	}
}

// lookAhead reports whether the input at the cursor begins with s.
func (p *HTMLTokenizer) lookAhead(s string, caseInsensitive bool) bool {
	rs := []rune(s)
	if p.pos+len(rs) > len(p.input) {
		return false
	}
	for i, r := range rs {
		in := p.input[p.pos+i]
		if caseInsensitive {
			in = unicode.ToLower(in)
			r = unicode.ToLower(r)
		}
		if in != r {
			return false
		}
	}
	return true
}

func (p *HTMLTokenizer) peek() (rune, bool) {
	if p.pos >= len(p.input) {
		return 0, true
	}
	return p.input[p.pos], false
}

func (p *HTMLTokenizer) emit(tokens ...Token) {
	for _, t := range tokens {
		t.Position = p.curPos
		if t.TokenType == startTagToken {
			p.lastEmittedStartTagName = t.TagName
		}
		p.emittedTokens = append(p.emittedTokens, t)
	}
}

// emitCurrentTag finalizes and emits the tag being built. End tags with
// attributes or a trailing solidus keep neither; both are parse errors.
func (p *HTMLTokenizer) emitCurrentTag() {
	p.tokenBuilder.CommitAttribute()
	t := p.tokenBuilder.TagToken()
	if t.TokenType == endTagToken {
		if len(t.Attributes) > 0 {
			p.parseError(errEndTagWithAttributes)
			t.Attributes = nil
		}
		if t.SelfClosing {
			p.parseError(errEndTagWithTrailingSolidus)
			t.SelfClosing = false
		}
	}
	p.emit(t)
}

// isAppropriateEndTag reports whether the end tag name being built matches
// the last start tag this tokenizer emitted, which is what closes RCDATA,
// RAWTEXT, and script data content.
func (p *HTMLTokenizer) isAppropriateEndTag() bool {
	return p.lastEmittedStartTagName != "" &&
		strings.EqualFold(p.tokenBuilder.name.String(), p.lastEmittedStartTagName)
}

func wasConsumedByAttribute(state tokenizerState) bool {
	switch state {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		return true
	}
	return false
}

// flushCodePointsAsCharacterReference drains the temp buffer either into
// the attribute value being built or out as character tokens, depending on
// where the reference started.
func (p *HTMLTokenizer) flushCodePointsAsCharacterReference() {
	if wasConsumedByAttribute(p.returnState) {
		for _, r := range p.tokenBuilder.TempBuffer() {
			p.tokenBuilder.WriteAttributeValue(r)
		}
	} else {
		for _, r := range p.tokenBuilder.TempBuffer() {
			p.emit(p.tokenBuilder.CharacterToken(r))
		}
	}
	p.tokenBuilder.ResetTempBuffer()
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIAlpha(r rune) bool { return isASCIIUpper(r) || isASCIILower(r) }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
func isASCIIAlnum(r rune) bool { return isASCIIAlpha(r) || isASCIIDigit(r) }
func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
func isHTMLWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', ' ':
		return true
	}
	return false
}
func toASCIILower(r rune) rune {
	if isASCIIUpper(r) {
		return r + 0x20
	}
	return r
}

type parserStateHandler func(r rune, eof bool) (bool, tokenizerState)

func (p *HTMLTokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case dataState:
		return p.dataStateParser
	case rcDataState:
		return p.rcDataStateParser
	case rawTextState:
		return p.rawTextStateParser
	case scriptDataState:
		return p.scriptDataStateParser
	case plaintextState:
		return p.plaintextStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case endTagOpenState:
		return p.endTagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case rcDataLessThanSignState:
		return p.rcDataLessThanSignStateParser
	case rcDataEndTagOpenState:
		return p.rcDataEndTagOpenStateParser
	case rcDataEndTagNameState:
		return p.rcDataEndTagNameStateParser
	case rawTextLessThanSignState:
		return p.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return p.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return p.rawTextEndTagNameStateParser
	case scriptDataLessThanSignState:
		return p.scriptDataLessThanSignStateParser
	case scriptDataEndTagOpenState:
		return p.scriptDataEndTagOpenStateParser
	case scriptDataEndTagNameState:
		return p.scriptDataEndTagNameStateParser
	case scriptDataEscapeStartState:
		return p.scriptDataEscapeStartStateParser
	case scriptDataEscapeStartDashState:
		return p.scriptDataEscapeStartDashStateParser
	case scriptDataEscapedState:
		return p.scriptDataEscapedStateParser
	case scriptDataEscapedDashState:
		return p.scriptDataEscapedDashStateParser
	case scriptDataEscapedDashDashState:
		return p.scriptDataEscapedDashDashStateParser
	case scriptDataEscapedLessThanSignState:
		return p.scriptDataEscapedLessThanSignStateParser
	case scriptDataEscapedEndTagOpenState:
		return p.scriptDataEscapedEndTagOpenStateParser
	case scriptDataEscapedEndTagNameState:
		return p.scriptDataEscapedEndTagNameStateParser
	case scriptDataDoubleEscapeStartState:
		return p.scriptDataDoubleEscapeStartStateParser
	case scriptDataDoubleEscapedState:
		return p.scriptDataDoubleEscapedStateParser
	case scriptDataDoubleEscapedDashState:
		return p.scriptDataDoubleEscapedDashStateParser
	case scriptDataDoubleEscapedDashDashState:
		return p.scriptDataDoubleEscapedDashDashStateParser
	case scriptDataDoubleEscapedLessThanSignState:
		return p.scriptDataDoubleEscapedLessThanSignStateParser
	case scriptDataDoubleEscapeEndState:
		return p.scriptDataDoubleEscapeEndStateParser
	case beforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case attributeNameState:
		return p.attributeNameStateParser
	case afterAttributeNameState:
		return p.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case bogusCommentState:
		return p.bogusCommentStateParser
	case markupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case commentStartState:
		return p.commentStartStateParser
	case commentStartDashState:
		return p.commentStartDashStateParser
	case commentState:
		return p.commentStateParser
	case commentLessThanSignState:
		return p.commentLessThanSignStateParser
	case commentLessThanSignBangState:
		return p.commentLessThanSignBangStateParser
	case commentLessThanSignBangDashState:
		return p.commentLessThanSignBangDashStateParser
	case commentLessThanSignBangDashDashState:
		return p.commentLessThanSignBangDashDashStateParser
	case commentEndDashState:
		return p.commentEndDashStateParser
	case commentEndState:
		return p.commentEndStateParser
	case commentEndBangState:
		return p.commentEndBangStateParser
	case doctypeState:
		return p.doctypeStateParser
	case beforeDoctypeNameState:
		return p.beforeDoctypeNameStateParser
	case doctypeNameState:
		return p.doctypeNameStateParser
	case afterDoctypeNameState:
		return p.afterDoctypeNameStateParser
	case afterDoctypePublicKeywordState:
		return p.afterDoctypePublicKeywordStateParser
	case beforeDoctypePublicIdentifierState:
		return p.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return p.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return p.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return p.afterDoctypePublicIdentifierStateParser
	case betweenDoctypePublicAndSystemIdentifiersState:
		return p.betweenDoctypePublicAndSystemIdentifiersStateParser
	case afterDoctypeSystemKeywordState:
		return p.afterDoctypeSystemKeywordStateParser
	case beforeDoctypeSystemIdentifierState:
		return p.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return p.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return p.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return p.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return p.bogusDoctypeStateParser
	case cdataSectionState:
		return p.cdataSectionStateParser
	case cdataSectionBracketState:
		return p.cdataSectionBracketStateParser
	case cdataSectionEndState:
		return p.cdataSectionEndStateParser
	case characterReferenceState:
		return p.characterReferenceStateParser
	case namedCharacterReferenceState:
		return p.namedCharacterReferenceStateParser
	case ambiguousAmpersandState:
		return p.ambiguousAmpersandStateParser
	case numericCharacterReferenceState:
		return p.numericCharacterReferenceStateParser
	case hexadecimalCharacterReferenceStartState:
		return p.hexadecimalCharacterReferenceStartStateParser
	case decimalCharacterReferenceStartState:
		return p.decimalCharacterReferenceStartStateParser
	case hexadecimalCharacterReferenceState:
		return p.hexadecimalCharacterReferenceStateParser
	case decimalCharacterReferenceState:
		return p.decimalCharacterReferenceStateParser
	case numericCharacterReferenceEndState:
		return p.numericCharacterReferenceEndStateParser
	}
	return p.dataStateParser
}

// https://html.spec.whatwg.org/multipage/parsing.html#data-state
func (p *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '&':
		p.returnState = dataState
		return false, characterReferenceState
	case '<':
		return false, tagOpenState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, dataState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, dataState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#rcdata-state
func (p *HTMLTokenizer) rcDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, rcDataState
	}
	switch r {
	case '&':
		p.returnState = rcDataState
		return false, characterReferenceState
	case '<':
		return false, rcDataLessThanSignState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.emit(p.tokenBuilder.CharacterToken('�'))
		return false, rcDataState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, rcDataState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#rawtext-state
func (p *HTMLTokenizer) rawTextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, rawTextState
	}
	switch r {
	case '<':
		return false, rawTextLessThanSignState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.emit(p.tokenBuilder.CharacterToken('�'))
		return false, rawTextState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, rawTextState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-state
func (p *HTMLTokenizer) scriptDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, scriptDataState
	}
	switch r {
	case '<':
		return false, scriptDataLessThanSignState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.emit(p.tokenBuilder.CharacterToken('�'))
		return false, scriptDataState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, scriptDataState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#plaintext-state
func (p *HTMLTokenizer) plaintextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, plaintextState
	}
	switch r {
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.emit(p.tokenBuilder.CharacterToken('�'))
		return false, plaintextState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, plaintextState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#tag-open-state
func (p *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFBeforeTagName)
		p.emit(p.tokenBuilder.CharacterToken('<'), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIIAlpha(r):
		p.tokenBuilder.NewToken()
		p.tokenBuilder.SetTagType(startTag)
		return true, tagNameState
	case r == '?':
		p.parseError(errUnexpectedQuestionMarkInsteadOfTagName)
		p.tokenBuilder.NewToken()
		return true, bogusCommentState
	default:
		p.parseError(errInvalidFirstCharacterOfTagName)
		p.emit(p.tokenBuilder.CharacterToken('<'))
		return true, dataState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#end-tag-open-state
func (p *HTMLTokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFBeforeTagName)
		p.emit(p.tokenBuilder.CharacterToken('<'), p.tokenBuilder.CharacterToken('/'), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIAlpha(r):
		p.tokenBuilder.NewToken()
		p.tokenBuilder.SetTagType(endTag)
		return true, tagNameState
	case r == '>':
		p.parseError(errMissingEndTagName)
		return false, dataState
	default:
		p.parseError(errInvalidFirstCharacterOfTagName)
		p.tokenBuilder.NewToken()
		return true, bogusCommentState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#tag-name-state
func (p *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInTag)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		p.emitCurrentTag()
		return false, dataState
	case isASCIIUpper(r):
		p.tokenBuilder.WriteName(toASCIILower(r))
		return false, tagNameState
	case r == '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.WriteName('�')
		return false, tagNameState
	default:
		p.tokenBuilder.WriteName(r)
		return false, tagNameState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#rcdata-less-than-sign-state
func (p *HTMLTokenizer) rcDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		return false, rcDataEndTagOpenState
	}
	p.emit(p.tokenBuilder.CharacterToken('<'))
	return true, rcDataState
}

// https://html.spec.whatwg.org/multipage/parsing.html#rcdata-end-tag-open-state
func (p *HTMLTokenizer) rcDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		p.tokenBuilder.NewToken()
		p.tokenBuilder.SetTagType(endTag)
		return true, rcDataEndTagNameState
	}
	p.emit(p.tokenBuilder.CharacterToken('<'), p.tokenBuilder.CharacterToken('/'))
	return true, rcDataState
}

// endTagNameInSpecialContent handles the shared shape of the RCDATA,
// RAWTEXT, script data, and script data escaped end tag name states: the
// end tag only counts when it matches the tag that switched the tokenizer
// into the special content mode, otherwise everything consumed so far is
// replayed as text.
func (p *HTMLTokenizer) endTagNameInSpecialContent(r rune, eof bool, contentState tokenizerState) (bool, tokenizerState) {
	if !eof {
		switch {
		case isHTMLWhitespace(r):
			if p.isAppropriateEndTag() {
				return false, beforeAttributeNameState
			}
		case r == '/':
			if p.isAppropriateEndTag() {
				return false, selfClosingStartTagState
			}
		case r == '>':
			if p.isAppropriateEndTag() {
				p.emitCurrentTag()
				return false, dataState
			}
		case isASCIIUpper(r):
			p.tokenBuilder.WriteName(toASCIILower(r))
			p.tokenBuilder.WriteTempBuffer(r)
			return false, p.currentState
		case isASCIILower(r):
			p.tokenBuilder.WriteName(r)
			p.tokenBuilder.WriteTempBuffer(r)
			return false, p.currentState
		}
	}
	p.emit(p.tokenBuilder.CharacterToken('<'), p.tokenBuilder.CharacterToken('/'))
	for _, tr := range p.tokenBuilder.TempBuffer() {
		p.emit(p.tokenBuilder.CharacterToken(tr))
	}
	p.tokenBuilder.ResetTempBuffer()
	return true, contentState
}

// https://html.spec.whatwg.org/multipage/parsing.html#rcdata-end-tag-name-state
func (p *HTMLTokenizer) rcDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagNameInSpecialContent(r, eof, rcDataState)
}

// https://html.spec.whatwg.org/multipage/parsing.html#rawtext-less-than-sign-state
func (p *HTMLTokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		return false, rawTextEndTagOpenState
	}
	p.emit(p.tokenBuilder.CharacterToken('<'))
	return true, rawTextState
}

// https://html.spec.whatwg.org/multipage/parsing.html#rawtext-end-tag-open-state
func (p *HTMLTokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		p.tokenBuilder.NewToken()
		p.tokenBuilder.SetTagType(endTag)
		return true, rawTextEndTagNameState
	}
	p.emit(p.tokenBuilder.CharacterToken('<'), p.tokenBuilder.CharacterToken('/'))
	return true, rawTextState
}

// https://html.spec.whatwg.org/multipage/parsing.html#rawtext-end-tag-name-state
func (p *HTMLTokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagNameInSpecialContent(r, eof, rawTextState)
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-less-than-sign-state
func (p *HTMLTokenizer) scriptDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '/':
			p.tokenBuilder.ResetTempBuffer()
			return false, scriptDataEndTagOpenState
		case '!':
			p.emit(p.tokenBuilder.CharacterToken('<'), p.tokenBuilder.CharacterToken('!'))
			return false, scriptDataEscapeStartState
		}
	}
	p.emit(p.tokenBuilder.CharacterToken('<'))
	return true, scriptDataState
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-end-tag-open-state
func (p *HTMLTokenizer) scriptDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		p.tokenBuilder.NewToken()
		p.tokenBuilder.SetTagType(endTag)
		return true, scriptDataEndTagNameState
	}
	p.emit(p.tokenBuilder.CharacterToken('<'), p.tokenBuilder.CharacterToken('/'))
	return true, scriptDataState
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-end-tag-name-state
func (p *HTMLTokenizer) scriptDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagNameInSpecialContent(r, eof, scriptDataState)
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-escape-start-state
func (p *HTMLTokenizer) scriptDataEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		p.emit(p.tokenBuilder.CharacterToken('-'))
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-escape-start-dash-state
func (p *HTMLTokenizer) scriptDataEscapeStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		p.emit(p.tokenBuilder.CharacterToken('-'))
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-escaped-state
func (p *HTMLTokenizer) scriptDataEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInScriptHTMLComment)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		p.emit(p.tokenBuilder.CharacterToken('-'))
		return false, scriptDataEscapedDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.emit(p.tokenBuilder.CharacterToken('�'))
		return false, scriptDataEscapedState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, scriptDataEscapedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-escaped-dash-state
func (p *HTMLTokenizer) scriptDataEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInScriptHTMLComment)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		p.emit(p.tokenBuilder.CharacterToken('-'))
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.emit(p.tokenBuilder.CharacterToken('�'))
		return false, scriptDataEscapedState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, scriptDataEscapedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-escaped-dash-dash-state
func (p *HTMLTokenizer) scriptDataEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInScriptHTMLComment)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		p.emit(p.tokenBuilder.CharacterToken('-'))
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '>':
		p.emit(p.tokenBuilder.CharacterToken('>'))
		return false, scriptDataState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.emit(p.tokenBuilder.CharacterToken('�'))
		return false, scriptDataEscapedState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, scriptDataEscapedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-escaped-less-than-sign-state
func (p *HTMLTokenizer) scriptDataEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		if r == '/' {
			p.tokenBuilder.ResetTempBuffer()
			return false, scriptDataEscapedEndTagOpenState
		}
		if isASCIIAlpha(r) {
			p.tokenBuilder.ResetTempBuffer()
			p.emit(p.tokenBuilder.CharacterToken('<'))
			return true, scriptDataDoubleEscapeStartState
		}
	}
	p.emit(p.tokenBuilder.CharacterToken('<'))
	return true, scriptDataEscapedState
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-escaped-end-tag-open-state
func (p *HTMLTokenizer) scriptDataEscapedEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		p.tokenBuilder.NewToken()
		p.tokenBuilder.SetTagType(endTag)
		return true, scriptDataEscapedEndTagNameState
	}
	p.emit(p.tokenBuilder.CharacterToken('<'), p.tokenBuilder.CharacterToken('/'))
	return true, scriptDataEscapedState
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-escaped-end-tag-name-state
func (p *HTMLTokenizer) scriptDataEscapedEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagNameInSpecialContent(r, eof, scriptDataEscapedState)
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-double-escape-start-state
func (p *HTMLTokenizer) scriptDataDoubleEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isHTMLWhitespace(r), r == '/', r == '>':
			p.emit(p.tokenBuilder.CharacterToken(r))
			if p.tokenBuilder.TempBuffer() == "script" {
				return false, scriptDataDoubleEscapedState
			}
			return false, scriptDataEscapedState
		case isASCIIUpper(r):
			p.tokenBuilder.WriteTempBuffer(toASCIILower(r))
			p.emit(p.tokenBuilder.CharacterToken(r))
			return false, scriptDataDoubleEscapeStartState
		case isASCIILower(r):
			p.tokenBuilder.WriteTempBuffer(r)
			p.emit(p.tokenBuilder.CharacterToken(r))
			return false, scriptDataDoubleEscapeStartState
		}
	}
	return true, scriptDataEscapedState
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-double-escaped-state
func (p *HTMLTokenizer) scriptDataDoubleEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInScriptHTMLComment)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		p.emit(p.tokenBuilder.CharacterToken('-'))
		return false, scriptDataDoubleEscapedDashState
	case '<':
		p.emit(p.tokenBuilder.CharacterToken('<'))
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.emit(p.tokenBuilder.CharacterToken('�'))
		return false, scriptDataDoubleEscapedState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, scriptDataDoubleEscapedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-double-escaped-dash-state
func (p *HTMLTokenizer) scriptDataDoubleEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInScriptHTMLComment)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		p.emit(p.tokenBuilder.CharacterToken('-'))
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emit(p.tokenBuilder.CharacterToken('<'))
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.emit(p.tokenBuilder.CharacterToken('�'))
		return false, scriptDataDoubleEscapedState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, scriptDataDoubleEscapedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-double-escaped-dash-dash-state
func (p *HTMLTokenizer) scriptDataDoubleEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInScriptHTMLComment)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		p.emit(p.tokenBuilder.CharacterToken('-'))
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emit(p.tokenBuilder.CharacterToken('<'))
		return false, scriptDataDoubleEscapedLessThanSignState
	case '>':
		p.emit(p.tokenBuilder.CharacterToken('>'))
		return false, scriptDataState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.emit(p.tokenBuilder.CharacterToken('�'))
		return false, scriptDataDoubleEscapedState
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, scriptDataDoubleEscapedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-double-escaped-less-than-sign-state
func (p *HTMLTokenizer) scriptDataDoubleEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		p.emit(p.tokenBuilder.CharacterToken('/'))
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

// https://html.spec.whatwg.org/multipage/parsing.html#script-data-double-escape-end-state
func (p *HTMLTokenizer) scriptDataDoubleEscapeEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isHTMLWhitespace(r), r == '/', r == '>':
			p.emit(p.tokenBuilder.CharacterToken(r))
			if p.tokenBuilder.TempBuffer() == "script" {
				return false, scriptDataEscapedState
			}
			return false, scriptDataDoubleEscapedState
		case isASCIIUpper(r):
			p.tokenBuilder.WriteTempBuffer(toASCIILower(r))
			p.emit(p.tokenBuilder.CharacterToken(r))
			return false, scriptDataDoubleEscapeEndState
		case isASCIILower(r):
			p.tokenBuilder.WriteTempBuffer(r)
			p.emit(p.tokenBuilder.CharacterToken(r))
			return false, scriptDataDoubleEscapeEndState
		}
	}
	return true, scriptDataDoubleEscapedState
}

// https://html.spec.whatwg.org/multipage/parsing.html#before-attribute-name-state
func (p *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, afterAttributeNameState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/', r == '>':
		return true, afterAttributeNameState
	case r == '=':
		p.parseError(errUnexpectedEqualsSignBeforeAttributeName)
		p.tokenBuilder.CommitAttribute()
		p.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		p.tokenBuilder.CommitAttribute()
		return true, attributeNameState
	}
}

// leaveAttributeName runs the duplicate check the spec requires whenever
// the tokenizer leaves the attribute name state.
func (p *HTMLTokenizer) leaveAttributeName() {
	if p.tokenBuilder.RemoveDuplicateAttributeName() {
		p.parseError(errDuplicateAttribute)
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#attribute-name-state
func (p *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.leaveAttributeName()
		return true, afterAttributeNameState
	}
	switch {
	case isHTMLWhitespace(r), r == '/', r == '>':
		p.leaveAttributeName()
		return true, afterAttributeNameState
	case r == '=':
		p.leaveAttributeName()
		return false, beforeAttributeValueState
	case isASCIIUpper(r):
		p.tokenBuilder.WriteAttributeName(toASCIILower(r))
		return false, attributeNameState
	case r == '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeName('�')
		return false, attributeNameState
	case r == '"', r == '\'', r == '<':
		p.parseError(errUnexpectedCharacterInAttributeName)
		p.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		p.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#after-attribute-name-state
func (p *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInTag)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, afterAttributeNameState
	case r == '/':
		p.tokenBuilder.CommitAttribute()
		return false, selfClosingStartTagState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '>':
		p.emitCurrentTag()
		return false, dataState
	default:
		p.tokenBuilder.CommitAttribute()
		return true, attributeNameState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#before-attribute-value-state
func (p *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, attributeValueUnquotedState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, beforeAttributeValueState
	case r == '"':
		return false, attributeValueDoubleQuotedState
	case r == '\'':
		return false, attributeValueSingleQuotedState
	case r == '>':
		p.parseError(errMissingAttributeValue)
		p.emitCurrentTag()
		return false, dataState
	default:
		return true, attributeValueUnquotedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#attribute-value-(double-quoted)-state
func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInTag)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '"':
		return false, afterAttributeValueQuotedState
	case '&':
		p.returnState = attributeValueDoubleQuotedState
		return false, characterReferenceState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueDoubleQuotedState
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueDoubleQuotedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#attribute-value-(single-quoted)-state
func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInTag)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '\'':
		return false, afterAttributeValueQuotedState
	case '&':
		p.returnState = attributeValueSingleQuotedState
		return false, characterReferenceState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueSingleQuotedState
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueSingleQuotedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#attribute-value-(unquoted)-state
func (p *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInTag)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		p.tokenBuilder.CommitAttribute()
		return false, beforeAttributeNameState
	case r == '&':
		p.returnState = attributeValueUnquotedState
		return false, characterReferenceState
	case r == '>':
		p.emitCurrentTag()
		return false, dataState
	case r == '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueUnquotedState
	case r == '"', r == '\'', r == '<', r == '=', r == '`':
		p.parseError(errUnexpectedCharacterInUnquotedValue)
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#after-attribute-value-(quoted)-state
func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInTag)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		p.tokenBuilder.CommitAttribute()
		return false, beforeAttributeNameState
	case r == '/':
		p.tokenBuilder.CommitAttribute()
		return false, selfClosingStartTagState
	case r == '>':
		p.emitCurrentTag()
		return false, dataState
	default:
		p.parseError(errMissingWhitespaceBetweenAttributes)
		p.tokenBuilder.CommitAttribute()
		return true, beforeAttributeNameState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#self-closing-start-tag-state
func (p *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInTag)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	if r == '>' {
		p.tokenBuilder.EnableSelfClosing()
		p.emitCurrentTag()
		return false, dataState
	}
	p.parseError(errUnexpectedSolidusInTag)
	return true, beforeAttributeNameState
}

// https://html.spec.whatwg.org/multipage/parsing.html#bogus-comment-state
func (p *HTMLTokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.CommentToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.WriteData('�')
		return false, bogusCommentState
	default:
		p.tokenBuilder.WriteData(r)
		return false, bogusCommentState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#markup-declaration-open-state
func (p *HTMLTokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		if r == '-' {
			if next, atEnd := p.peek(); !atEnd && next == '-' {
				p.discard(1)
				p.tokenBuilder.NewToken()
				return false, commentStartState
			}
		}
		if (r == 'd' || r == 'D') && p.lookAhead("OCTYPE", true) {
			p.discard(6)
			return false, doctypeState
		}
		if r == '[' && p.lookAhead("CDATA[", false) {
			p.discard(6)
			if p.adjustedCurrentNode != nil && p.adjustedCurrentNode.Namespace != spec.Htmlns {
				return false, cdataSectionState
			}
			p.parseError(errCDATAInHTMLContent)
			p.tokenBuilder.NewToken()
			p.tokenBuilder.WriteDataString("[CDATA[")
			return false, bogusCommentState
		}
	}
	p.parseError(errIncorrectlyOpenedComment)
	p.tokenBuilder.NewToken()
	return true, bogusCommentState
}

// https://html.spec.whatwg.org/multipage/parsing.html#comment-start-state
func (p *HTMLTokenizer) commentStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '-':
			return false, commentStartDashState
		case '>':
			p.parseError(errAbruptClosingOfEmptyComment)
			p.emit(p.tokenBuilder.CommentToken())
			return false, dataState
		}
	}
	return true, commentState
}

// https://html.spec.whatwg.org/multipage/parsing.html#comment-start-dash-state
func (p *HTMLTokenizer) commentStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInComment)
		p.emit(p.tokenBuilder.CommentToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		p.parseError(errAbruptClosingOfEmptyComment)
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	default:
		p.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#comment-state
func (p *HTMLTokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInComment)
		p.emit(p.tokenBuilder.CommentToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '<':
		p.tokenBuilder.WriteData(r)
		return false, commentLessThanSignState
	case '-':
		return false, commentEndDashState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.WriteData('�')
		return false, commentState
	default:
		p.tokenBuilder.WriteData(r)
		return false, commentState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#comment-less-than-sign-state
func (p *HTMLTokenizer) commentLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '!':
			p.tokenBuilder.WriteData(r)
			return false, commentLessThanSignBangState
		case '<':
			p.tokenBuilder.WriteData(r)
			return false, commentLessThanSignState
		}
	}
	return true, commentState
}

// https://html.spec.whatwg.org/multipage/parsing.html#comment-less-than-sign-bang-state
func (p *HTMLTokenizer) commentLessThanSignBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashState
	}
	return true, commentState
}

// https://html.spec.whatwg.org/multipage/parsing.html#comment-less-than-sign-bang-dash-state
func (p *HTMLTokenizer) commentLessThanSignBangDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashDashState
	}
	return true, commentEndDashState
}

// https://html.spec.whatwg.org/multipage/parsing.html#comment-less-than-sign-bang-dash-dash-state
func (p *HTMLTokenizer) commentLessThanSignBangDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r != '>' {
		p.parseError(errNestedComment)
	}
	return true, commentEndState
}

// https://html.spec.whatwg.org/multipage/parsing.html#comment-end-dash-state
func (p *HTMLTokenizer) commentEndDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInComment)
		p.emit(p.tokenBuilder.CommentToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	if r == '-' {
		return false, commentEndState
	}
	p.tokenBuilder.WriteData('-')
	return true, commentState
}

// https://html.spec.whatwg.org/multipage/parsing.html#comment-end-state
func (p *HTMLTokenizer) commentEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInComment)
		p.emit(p.tokenBuilder.CommentToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	case '!':
		return false, commentEndBangState
	case '-':
		p.tokenBuilder.WriteData('-')
		return false, commentEndState
	default:
		p.tokenBuilder.WriteData('-')
		p.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#comment-end-bang-state
func (p *HTMLTokenizer) commentEndBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInComment)
		p.emit(p.tokenBuilder.CommentToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		p.tokenBuilder.WriteDataString("--!")
		return false, commentEndDashState
	case '>':
		p.parseError(errIncorrectlyClosedComment)
		p.emit(p.tokenBuilder.CommentToken())
		return false, dataState
	default:
		p.tokenBuilder.WriteDataString("--!")
		return true, commentState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#doctype-state
func (p *HTMLTokenizer) doctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.NewToken()
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, beforeDoctypeNameState
	case r == '>':
		return true, beforeDoctypeNameState
	default:
		p.parseError(errMissingWhitespaceBeforeDoctypeName)
		return true, beforeDoctypeNameState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#before-doctype-name-state
func (p *HTMLTokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.NewToken()
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, beforeDoctypeNameState
	case isASCIIUpper(r):
		p.tokenBuilder.NewToken()
		p.tokenBuilder.WriteName(toASCIILower(r))
		return false, doctypeNameState
	case r == '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.NewToken()
		p.tokenBuilder.WriteName('�')
		return false, doctypeNameState
	case r == '>':
		p.parseError(errMissingDoctypeName)
		p.tokenBuilder.NewToken()
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		p.tokenBuilder.NewToken()
		p.tokenBuilder.WriteName(r)
		return false, doctypeNameState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#doctype-name-state
func (p *HTMLTokenizer) doctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	case isASCIIUpper(r):
		p.tokenBuilder.WriteName(toASCIILower(r))
		return false, doctypeNameState
	case r == '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.WriteName('�')
		return false, doctypeNameState
	default:
		p.tokenBuilder.WriteName(r)
		return false, doctypeNameState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#after-doctype-name-state
func (p *HTMLTokenizer) afterDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	}
	if (r == 'p' || r == 'P') && p.lookAhead("UBLIC", true) {
		p.discard(5)
		return false, afterDoctypePublicKeywordState
	}
	if (r == 's' || r == 'S') && p.lookAhead("YSTEM", true) {
		p.discard(5)
		return false, afterDoctypeSystemKeywordState
	}
	p.parseError(errInvalidCharacterSequenceAfterName)
	p.tokenBuilder.EnableForceQuirks()
	return true, bogusDoctypeState
}

// https://html.spec.whatwg.org/multipage/parsing.html#after-doctype-public-keyword-state
func (p *HTMLTokenizer) afterDoctypePublicKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		p.parseError(errMissingWhitespaceAfterKeyword)
		p.tokenBuilder.MarkPublicIdentifierPresent()
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		p.parseError(errMissingWhitespaceAfterKeyword)
		p.tokenBuilder.MarkPublicIdentifierPresent()
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		p.parseError(errMissingDoctypePublicIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		p.parseError(errMissingQuoteBeforePublicIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#before-doctype-public-identifier-state
func (p *HTMLTokenizer) beforeDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		p.tokenBuilder.MarkPublicIdentifierPresent()
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		p.tokenBuilder.MarkPublicIdentifierPresent()
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		p.parseError(errMissingDoctypePublicIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		p.parseError(errMissingQuoteBeforePublicIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#doctype-public-identifier-(double-quoted)-state
func (p *HTMLTokenizer) doctypePublicIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '"':
		return false, afterDoctypePublicIdentifierState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.WritePublicIdentifier('�')
		return false, doctypePublicIdentifierDoubleQuotedState
	case '>':
		p.parseError(errAbruptDoctypePublicIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		p.tokenBuilder.WritePublicIdentifier(r)
		return false, doctypePublicIdentifierDoubleQuotedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#doctype-public-identifier-(single-quoted)-state
func (p *HTMLTokenizer) doctypePublicIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '\'':
		return false, afterDoctypePublicIdentifierState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.WritePublicIdentifier('�')
		return false, doctypePublicIdentifierSingleQuotedState
	case '>':
		p.parseError(errAbruptDoctypePublicIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		p.tokenBuilder.WritePublicIdentifier(r)
		return false, doctypePublicIdentifierSingleQuotedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#after-doctype-public-identifier-state
func (p *HTMLTokenizer) afterDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	case r == '"':
		p.parseError(errMissingWhitespaceBetweenIdentifiers)
		p.tokenBuilder.MarkSystemIdentifierPresent()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		p.parseError(errMissingWhitespaceBetweenIdentifiers)
		p.tokenBuilder.MarkSystemIdentifierPresent()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		p.parseError(errMissingQuoteBeforeSystemIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#between-doctype-public-and-system-identifiers-state
func (p *HTMLTokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	case r == '"':
		p.tokenBuilder.MarkSystemIdentifierPresent()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		p.tokenBuilder.MarkSystemIdentifierPresent()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		p.parseError(errMissingQuoteBeforeSystemIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#after-doctype-system-keyword-state
func (p *HTMLTokenizer) afterDoctypeSystemKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		p.parseError(errMissingWhitespaceAfterSystem)
		p.tokenBuilder.MarkSystemIdentifierPresent()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		p.parseError(errMissingWhitespaceAfterSystem)
		p.tokenBuilder.MarkSystemIdentifierPresent()
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		p.parseError(errMissingDoctypeSystemIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		p.parseError(errMissingQuoteBeforeSystemIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#before-doctype-system-identifier-state
func (p *HTMLTokenizer) beforeDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		p.tokenBuilder.MarkSystemIdentifierPresent()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		p.tokenBuilder.MarkSystemIdentifierPresent()
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		p.parseError(errMissingDoctypeSystemIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		p.parseError(errMissingQuoteBeforeSystemIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#doctype-system-identifier-(double-quoted)-state
func (p *HTMLTokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '"':
		return false, afterDoctypeSystemIdentifierState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.WriteSystemIdentifier('�')
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '>':
		p.parseError(errAbruptDoctypeSystemIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		p.tokenBuilder.WriteSystemIdentifier(r)
		return false, doctypeSystemIdentifierDoubleQuotedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#doctype-system-identifier-(single-quoted)-state
func (p *HTMLTokenizer) doctypeSystemIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '\'':
		return false, afterDoctypeSystemIdentifierState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		p.tokenBuilder.WriteSystemIdentifier('�')
		return false, doctypeSystemIdentifierSingleQuotedState
	case '>':
		p.parseError(errAbruptDoctypeSystemIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		p.tokenBuilder.WriteSystemIdentifier(r)
		return false, doctypeSystemIdentifierSingleQuotedState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#after-doctype-system-identifier-state
func (p *HTMLTokenizer) afterDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInDoctype)
		p.tokenBuilder.EnableForceQuirks()
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isHTMLWhitespace(r):
		return false, afterDoctypeSystemIdentifierState
	case r == '>':
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		p.parseError(errUnexpectedCharacterAfterSystemIdentifier)
		return true, bogusDoctypeState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#bogus-doctype-state
func (p *HTMLTokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emit(p.tokenBuilder.DocTypeToken(), p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		p.emit(p.tokenBuilder.DocTypeToken())
		return false, dataState
	case '\u0000':
		p.parseError(errUnexpectedNullCharacter)
		return false, bogusDoctypeState
	default:
		return false, bogusDoctypeState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#cdata-section-state
func (p *HTMLTokenizer) cdataSectionStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(errEOFInCDATA)
		p.emit(p.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	if r == ']' {
		return false, cdataSectionBracketState
	}
	p.emit(p.tokenBuilder.CharacterToken(r))
	return false, cdataSectionState
}

// https://html.spec.whatwg.org/multipage/parsing.html#cdata-section-bracket-state
func (p *HTMLTokenizer) cdataSectionBracketStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == ']' {
		return false, cdataSectionEndState
	}
	p.emit(p.tokenBuilder.CharacterToken(']'))
	return true, cdataSectionState
}

// https://html.spec.whatwg.org/multipage/parsing.html#cdata-section-end-state
func (p *HTMLTokenizer) cdataSectionEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case ']':
			p.emit(p.tokenBuilder.CharacterToken(']'))
			return false, cdataSectionEndState
		case '>':
			return false, dataState
		}
	}
	p.emit(p.tokenBuilder.CharacterToken(']'), p.tokenBuilder.CharacterToken(']'))
	return true, cdataSectionState
}

// https://html.spec.whatwg.org/multipage/parsing.html#character-reference-state
func (p *HTMLTokenizer) characterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer('&')
	if eof {
		p.flushCodePointsAsCharacterReference()
		return true, p.returnState
	}
	switch {
	case isASCIIAlnum(r):
		return true, namedCharacterReferenceState
	case r == '#':
		p.tokenBuilder.WriteTempBuffer(r)
		return false, numericCharacterReferenceState
	default:
		p.flushCodePointsAsCharacterReference()
		return true, p.returnState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#named-character-reference-state
//
// Max-munch over the reference table: r is the first name character and has
// been consumed; the rest are read straight off the cursor.
func (p *HTMLTokenizer) namedCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.flushCodePointsAsCharacterReference()
		return true, p.returnState
	}

	avail := make([]rune, 0, longestCharRefName)
	avail = append(avail, r)
	for i := 0; i < longestCharRefName-1 && p.pos+i < len(p.input); i++ {
		avail = append(avail, p.input[p.pos+i])
	}
	best := 0
	for i := 1; i <= len(avail); i++ {
		if _, ok := charRefTable[string(avail[:i])]; ok {
			best = i
		}
	}

	if best == 0 {
		// nothing matched; the ampersand flushes as text and the name
		// characters are handled by the ambiguous ampersand state
		p.flushCodePointsAsCharacterReference()
		return true, ambiguousAmpersandState
	}

	name := string(avail[:best])
	p.discard(best - 1)
	endsInSemicolon := name[len(name)-1] == ';'

	if wasConsumedByAttribute(p.returnState) && !endsInSemicolon {
		if next, atEnd := p.peek(); !atEnd && (next == '=' || isASCIIAlnum(next)) {
			// historical attribute behavior: keep the text as written
			for _, nr := range name {
				p.tokenBuilder.WriteTempBuffer(nr)
			}
			p.flushCodePointsAsCharacterReference()
			return false, p.returnState
		}
	}

	if !endsInSemicolon {
		p.parseError(errMissingSemicolonAfterCharRef)
	}
	p.tokenBuilder.ResetTempBuffer()
	for _, cr := range charRefTable[name] {
		p.tokenBuilder.WriteTempBuffer(cr)
	}
	p.flushCodePointsAsCharacterReference()
	return false, p.returnState
}

// https://html.spec.whatwg.org/multipage/parsing.html#ambiguous-ampersand-state
func (p *HTMLTokenizer) ambiguousAmpersandStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, p.returnState
	}
	switch {
	case isASCIIAlnum(r):
		if wasConsumedByAttribute(p.returnState) {
			p.tokenBuilder.WriteAttributeValue(r)
		} else {
			p.emit(p.tokenBuilder.CharacterToken(r))
		}
		return false, ambiguousAmpersandState
	case r == ';':
		p.parseError(errUnknownNamedCharacterReference)
		return true, p.returnState
	default:
		return true, p.returnState
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#numeric-character-reference-state
func (p *HTMLTokenizer) numericCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	p.tokenBuilder.SetCharRef(0)
	if !eof && (r == 'x' || r == 'X') {
		p.tokenBuilder.WriteTempBuffer(r)
		return false, hexadecimalCharacterReferenceStartState
	}
	return true, decimalCharacterReferenceStartState
}

// https://html.spec.whatwg.org/multipage/parsing.html#hexadecimal-character-reference-start-state
func (p *HTMLTokenizer) hexadecimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIHexDigit(r) {
		return true, hexadecimalCharacterReferenceState
	}
	p.parseError(errAbsenceOfDigits)
	p.flushCodePointsAsCharacterReference()
	return true, p.returnState
}

// https://html.spec.whatwg.org/multipage/parsing.html#decimal-character-reference-start-state
func (p *HTMLTokenizer) decimalCharacterReferenceStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIDigit(r) {
		return true, decimalCharacterReferenceState
	}
	p.parseError(errAbsenceOfDigits)
	p.flushCodePointsAsCharacterReference()
	return true, p.returnState
}

// https://html.spec.whatwg.org/multipage/parsing.html#hexadecimal-character-reference-state
func (p *HTMLTokenizer) hexadecimalCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isASCIIDigit(r):
			p.tokenBuilder.MultByCharRef(16)
			p.tokenBuilder.AddToCharRef(int(r - '0'))
			return false, hexadecimalCharacterReferenceState
		case r >= 'A' && r <= 'F':
			p.tokenBuilder.MultByCharRef(16)
			p.tokenBuilder.AddToCharRef(int(r - 'A' + 10))
			return false, hexadecimalCharacterReferenceState
		case r >= 'a' && r <= 'f':
			p.tokenBuilder.MultByCharRef(16)
			p.tokenBuilder.AddToCharRef(int(r - 'a' + 10))
			return false, hexadecimalCharacterReferenceState
		case r == ';':
			return false, numericCharacterReferenceEndState
		}
	}
	p.parseError(errMissingSemicolonAfterCharRef)
	return true, numericCharacterReferenceEndState
}

// https://html.spec.whatwg.org/multipage/parsing.html#decimal-character-reference-state
func (p *HTMLTokenizer) decimalCharacterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isASCIIDigit(r):
			p.tokenBuilder.MultByCharRef(10)
			p.tokenBuilder.AddToCharRef(int(r - '0'))
			return false, decimalCharacterReferenceState
		case r == ';':
			return false, numericCharacterReferenceEndState
		}
	}
	p.parseError(errMissingSemicolonAfterCharRef)
	return true, numericCharacterReferenceEndState
}

// https://html.spec.whatwg.org/multipage/parsing.html#numeric-character-reference-end-state
//
// Consumes nothing itself; whatever rune reached it is reprocessed in the
// return state.
func (p *HTMLTokenizer) numericCharacterReferenceEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	code := p.tokenBuilder.CharRef()
	switch {
	case code == 0:
		p.parseError(errNullCharacterReference)
		code = 0xFFFD
	case code > 0x10FFFF:
		p.parseError(errCharacterReferenceOutsideUnicode)
		code = 0xFFFD
	case code >= 0xD800 && code <= 0xDFFF:
		p.parseError(errSurrogateCharacterReference)
		code = 0xFFFD
	case isNoncharacter(code):
		p.parseError(errNoncharacterCharacterReference)
	case code == 0x0D || (isControlCodePoint(code) && !isASCIIWhitespaceCodePoint(code)):
		p.parseError(errControlCharacterReference)
		if repl, ok := numericCharRefReplacements[code]; ok {
			code = int(repl)
		}
	}
	p.tokenBuilder.ResetTempBuffer()
	p.tokenBuilder.WriteTempBuffer(rune(code))
	p.flushCodePointsAsCharacterReference()
	return true, p.returnState
}

type tokenizerState uint

const (
	dataState tokenizerState = iota
	rcDataState
	rawTextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcDataLessThanSignState
	rcDataEndTagOpenState
	rcDataEndTagNameState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
	characterReferenceState
	namedCharacterReferenceState
	ambiguousAmpersandState
	numericCharacterReferenceState
	hexadecimalCharacterReferenceStartState
	decimalCharacterReferenceStartState
	hexadecimalCharacterReferenceState
	decimalCharacterReferenceState
	numericCharacterReferenceEndState
)

func (p *HTMLTokenizer) takeLastEmittedToken() *Token {
	if len(p.emittedTokens) > 0 {
		ret := p.emittedTokens[0]
		p.emittedTokens = p.emittedTokens[1:]
		if ret.TokenType == endOfFileToken {
			p.done = true
		}
		return &ret
	}
	return nil
}

// Next reports whether more tokens remain. It stays true until the
// end-of-file token has been taken.
func (p *HTMLTokenizer) Next() bool {
	return !p.done
}

// Token returns the next token, running the state machine until at least
// one is produced. The tree constructor passes a Progress to switch the
// tokenizer state (for RAWTEXT/RCDATA/script elements) and to supply the
// adjusted current node for CDATA handling.
func (p *HTMLTokenizer) Token(progress *Progress) *Token {
	if progress != nil {
		p.adjustedCurrentNode = progress.AdjustedCurrentNode
		if progress.TokenizerState != nil {
			p.currentState = *progress.TokenizerState
		}
	}

	// some states emit several tokens at once and some emit none; loop
	// until at least one shows up.
	for {
		if token := p.takeLastEmittedToken(); token != nil {
			return token
		}
		r, eof := p.consume()
		p.processRune(r, eof)
	}
}

func (p *HTMLTokenizer) processRune(r rune, eof bool) {
	reconsume := true
	for reconsume {
		state := p.currentState
		reconsume, p.currentState = p.stateToParser(state)(r, eof)
		if logrus.IsLevelEnabled(logrus.TraceLevel) {
			logrus.WithFields(logrus.Fields{
				"rune": string(r),
				"from": state,
				"to":   p.currentState,
			}).Trace("[TOKEN]")
		}
	}
}

var tokenizerStateNames = [...]string{
	"data", "rcdata", "rawtext", "script-data", "plaintext",
	"tag-open", "end-tag-open", "tag-name",
	"rcdata-less-than-sign", "rcdata-end-tag-open", "rcdata-end-tag-name",
	"rawtext-less-than-sign", "rawtext-end-tag-open", "rawtext-end-tag-name",
	"script-data-less-than-sign", "script-data-end-tag-open", "script-data-end-tag-name",
	"script-data-escape-start", "script-data-escape-start-dash",
	"script-data-escaped", "script-data-escaped-dash", "script-data-escaped-dash-dash",
	"script-data-escaped-less-than-sign", "script-data-escaped-end-tag-open", "script-data-escaped-end-tag-name",
	"script-data-double-escape-start", "script-data-double-escaped",
	"script-data-double-escaped-dash", "script-data-double-escaped-dash-dash",
	"script-data-double-escaped-less-than-sign", "script-data-double-escape-end",
	"before-attribute-name", "attribute-name", "after-attribute-name",
	"before-attribute-value", "attribute-value-double-quoted",
	"attribute-value-single-quoted", "attribute-value-unquoted",
	"after-attribute-value-quoted", "self-closing-start-tag",
	"bogus-comment", "markup-declaration-open",
	"comment-start", "comment-start-dash", "comment",
	"comment-less-than-sign", "comment-less-than-sign-bang",
	"comment-less-than-sign-bang-dash", "comment-less-than-sign-bang-dash-dash",
	"comment-end-dash", "comment-end", "comment-end-bang",
	"doctype", "before-doctype-name", "doctype-name", "after-doctype-name",
	"after-doctype-public-keyword", "before-doctype-public-identifier",
	"doctype-public-identifier-double-quoted", "doctype-public-identifier-single-quoted",
	"after-doctype-public-identifier", "between-doctype-public-and-system-identifiers",
	"after-doctype-system-keyword", "before-doctype-system-identifier",
	"doctype-system-identifier-double-quoted", "doctype-system-identifier-single-quoted",
	"after-doctype-system-identifier", "bogus-doctype",
	"cdata-section", "cdata-section-bracket", "cdata-section-end",
	"character-reference", "named-character-reference", "ambiguous-ampersand",
	"numeric-character-reference",
	"hexadecimal-character-reference-start", "decimal-character-reference-start",
	"hexadecimal-character-reference", "decimal-character-reference",
	"numeric-character-reference-end",
}

func (s tokenizerState) String() string {
	if int(s) < len(tokenizerStateNames) {
		return tokenizerStateNames[s]
	}
	return "unknown"
}
