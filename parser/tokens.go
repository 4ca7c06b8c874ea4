package parser

import "strings"

type tokenType uint

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	endOfFileToken
	commentToken
	docTypeToken
)

// missing marks a doctype name/public/system identifier that was never
// present in the input, as opposed to one that was present but empty.
const missing string = "MISSING"

type tagType uint

const (
	startTag tagType = iota
	endTag
)

// Attribute is one name/value pair on a start tag. Order of appearance in
// the input is preserved by the Attributes slice on Token.
type Attribute struct {
	Name  string
	Value string
}

// Token is a concrete token that is ready to be emitted. Emitted tokens are
// never written to again; where the tree constructor needs an adjusted form
// (foreign tag names, the image/img rewrite) it works on a copy.
type Token struct {
	TokenType        tokenType
	Attributes       []Attribute
	TagName          string
	PublicIdentifier string
	SystemIdentifier string
	ForceQuirks      bool
	SelfClosing      bool
	Data             string
	Position         Position // where in the input the token was emitted
}

// AttrValue returns the value of the named attribute and whether it was
// present on the token.
func (t *Token) AttrValue(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// TokenBuilder builds various tokens up during the tokenization phase.
type TokenBuilder struct {
	attributes             []Attribute
	seenAttrs              map[string]bool
	attributeKey           strings.Builder
	attributeValue         strings.Builder
	name                   strings.Builder
	data                   strings.Builder
	tempBuffer             strings.Builder
	publicID               strings.Builder
	systemID               strings.Builder
	nameSet                bool
	pidSet                 bool
	sidSet                 bool
	selfClosing            bool
	forceQuirks            bool
	removeNextAttr         bool
	curTagType             tagType
	characterReferenceCode int
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{
		seenAttrs: make(map[string]bool),
	}
}

// NewToken clears all the builders and attributes so the next tag, comment,
// or doctype starts from a clean slate. The temp buffer is managed by the
// character reference and script data states and is not cleared here.
func (t *TokenBuilder) NewToken() {
	t.attributes = nil
	t.seenAttrs = make(map[string]bool)
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.publicID.Reset()
	t.systemID.Reset()
	t.data.Reset()
	t.name.Reset()
	t.nameSet = false
	t.pidSet = false
	t.sidSet = false
	t.selfClosing = false
	t.forceQuirks = false
	t.removeNextAttr = false
}

// EnableSelfClosing changes the self-closing flag to "set".
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// EnableForceQuirks changes the force-quirks flag to "set".
func (t *TokenBuilder) EnableForceQuirks() {
	t.forceQuirks = true
}

// SetTagType records whether the tag being built opens or closes.
func (t *TokenBuilder) SetTagType(tt tagType) {
	t.curTagType = tt
}

func (t *TokenBuilder) TagType() tagType {
	return t.curTagType
}

// MarkPublicIdentifierPresent records that a public identifier was opened,
// so an empty one is distinguishable from a missing one.
func (t *TokenBuilder) MarkPublicIdentifierPresent() {
	t.pidSet = true
}

// MarkSystemIdentifierPresent records that a system identifier was opened.
func (t *TokenBuilder) MarkSystemIdentifierPresent() {
	t.sidSet = true
}

// WritePublicIdentifier appends a rune to the public identifier buffer.
func (t *TokenBuilder) WritePublicIdentifier(r rune) {
	t.pidSet = true
	t.publicID.WriteRune(r)
}

// WriteSystemIdentifier appends a rune to the system identifier buffer.
func (t *TokenBuilder) WriteSystemIdentifier(r rune) {
	t.sidSet = true
	t.systemID.WriteRune(r)
}

// WriteAttributeName appends a character to the current attribute's name.
func (t *TokenBuilder) WriteAttributeName(r rune) {
	t.attributeKey.WriteRune(r)
}

// WriteData appends a character to the current data section.
func (t *TokenBuilder) WriteData(r rune) {
	t.data.WriteRune(r)
}

// WriteDataString appends a whole string to the current data section.
func (t *TokenBuilder) WriteDataString(s string) {
	t.data.WriteString(s)
}

// WriteAttributeValue appends a character to the current attribute's value.
func (t *TokenBuilder) WriteAttributeValue(r rune) {
	t.attributeValue.WriteRune(r)
}

// WriteName appends a character to the current tag/doctype name.
func (t *TokenBuilder) WriteName(r rune) {
	t.nameSet = true
	t.name.WriteRune(r)
}

// MarkNamePresent records that a doctype name was started, even if it ends
// up empty, so the emitted token can distinguish "" from missing.
func (t *TokenBuilder) MarkNamePresent() {
	t.nameSet = true
}

// RemoveDuplicateAttributeName checks if the current attribute name is
// already committed. When it is, the in-progress attribute is marked to be
// dropped on commit; the first occurrence wins.
func (t *TokenBuilder) RemoveDuplicateAttributeName() bool {
	if t.seenAttrs[t.attributeKey.String()] {
		t.removeNextAttr = true
		return true
	}
	return false
}

// CommitAttribute ends the creation of a name/value pair by appending it to
// the ordered attribute list and clearing the name and value buffers.
// Attributes flagged as duplicates are discarded here.
func (t *TokenBuilder) CommitAttribute() {
	if !t.removeNextAttr {
		k := t.attributeKey.String()
		if k != "" {
			t.attributes = append(t.attributes, Attribute{Name: k, Value: t.attributeValue.String()})
			t.seenAttrs[k] = true
		}
	}
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.removeNextAttr = false
}

// WriteTempBuffer appends a character to the temporary buffer.
func (t *TokenBuilder) WriteTempBuffer(r rune) {
	t.tempBuffer.WriteRune(r)
}

// ResetTempBuffer clears the temporary buffer to be used by another state.
func (t *TokenBuilder) ResetTempBuffer() {
	t.tempBuffer.Reset()
}

// TempBuffer returns the current temporary buffer contents.
func (t *TokenBuilder) TempBuffer() string {
	return t.tempBuffer.String()
}

// SetCharRef sets the character reference code being accumulated.
func (t *TokenBuilder) SetCharRef(i int) {
	t.characterReferenceCode = i
}

// CharRef returns the accumulated character reference code.
func (t *TokenBuilder) CharRef() int {
	return t.characterReferenceCode
}

// AddToCharRef adds a number to the current character reference code,
// clamping so pathological digit runs cannot overflow.
func (t *TokenBuilder) AddToCharRef(i int) {
	if t.characterReferenceCode <= 0x10FFFF {
		t.characterReferenceCode += i
	}
}

// MultByCharRef multiplies the current character reference code.
func (t *TokenBuilder) MultByCharRef(i int) {
	if t.characterReferenceCode <= 0x10FFFF {
		t.characterReferenceCode *= i
	}
}

// TagToken creates a start or end tag token, whichever kind the builder was
// opened with, from the builder contents.
func (t *TokenBuilder) TagToken() Token {
	if t.curTagType == endTag {
		return t.EndTagToken()
	}
	return t.StartTagToken()
}

// StartTagToken creates a start tag token from the builder contents.
func (t *TokenBuilder) StartTagToken() Token {
	return Token{
		TokenType:   startTagToken,
		TagName:     t.name.String(),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// EndTagToken creates an end tag token from the builder contents.
func (t *TokenBuilder) EndTagToken() Token {
	return Token{
		TokenType:   endTagToken,
		TagName:     t.name.String(),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// CharacterToken creates a character token for a single code point.
func (t *TokenBuilder) CharacterToken(r rune) Token {
	return Token{
		TokenType: characterToken,
		Data:      string(r),
	}
}

// EndOfFileToken creates an end of file token.
func (t *TokenBuilder) EndOfFileToken() Token {
	return Token{
		TokenType: endOfFileToken,
	}
}

// CommentToken creates a comment token from the builder contents.
func (t *TokenBuilder) CommentToken() Token {
	return Token{
		TokenType: commentToken,
		Data:      t.data.String(),
	}
}

// DocTypeToken creates a doctype token from the builder contents. Name,
// public identifier, and system identifier that never appeared in the input
// carry the missing sentinel.
func (t *TokenBuilder) DocTypeToken() Token {
	name := missing
	if t.nameSet {
		name = t.name.String()
	}
	pid := missing
	if t.pidSet {
		pid = t.publicID.String()
	}
	sid := missing
	if t.sidSet {
		sid = t.systemID.String()
	}
	return Token{
		TokenType:        docTypeToken,
		TagName:          name,
		ForceQuirks:      t.forceQuirks,
		PublicIdentifier: pid,
		SystemIdentifier: sid,
	}
}
