package parser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/refhtml/refhtml/parser/spec"
	"github.com/refhtml/refhtml/parser/webidl"
)

type parseError string

const noError parseError = ""
const generalParseError parseError = errUnexpectedToken

type frameset uint

const (
	framesetNotOK frameset = iota
	framesetOK
)

// HTMLTreeConstructor holds the state of the tree construction phase: the
// document being built, the stack of open elements, the list of active
// formatting elements, and the element pointers the insertion modes share.
type HTMLTreeConstructor struct {
	HTMLDocument             *spec.Node
	quirksMode               quirksMode
	fosterParenting          bool
	scriptingEnabled         bool
	frameset                 frameset
	skipNextNewline          bool
	ackSelfClosing           bool
	curMode                  insertionMode
	originalInsertionMode    insertionMode
	stackOfOpenElements      spec.NodeList
	activeFormattingElements spec.NodeList
	templateInsertionModes   []insertionMode
	headElementPointer       *spec.Node
	formElementPointer       *spec.Node
	context                  *spec.Node // fragment parsing context element, nil otherwise
	pendingTableCharacters   []*Token
	nextTokenizerState       *tokenizerState
	errs                     *errorList
	mappings                 map[insertionMode]treeConstructionModeHandler
}

// NewHTMLTreeConstructor creates an HTMLTreeConstructor around a fresh
// document.
func NewHTMLTreeConstructor(errs *errorList) *HTMLTreeConstructor {
	if errs == nil {
		errs = &errorList{}
	}
	tr := HTMLTreeConstructor{
		HTMLDocument: spec.NewDocumentNode(),
		curMode:      initial,
		frameset:     framesetOK,
		errs:         errs,
	}
	tr.createMappings()
	return &tr
}

func (c *HTMLTreeConstructor) createMappings() {
	c.mappings = map[insertionMode]treeConstructionModeHandler{
		initial:            c.initialModeHandler,
		beforeHTML:         c.beforeHTMLModeHandler,
		beforeHead:         c.beforeHeadModeHandler,
		inHead:             c.inHeadModeHandler,
		inHeadNoScript:     c.inHeadNoScriptModeHandler,
		afterHead:          c.afterHeadModeHandler,
		inBody:             c.inBodyModeHandler,
		text:               c.textModeHandler,
		inTable:            c.inTableModeHandler,
		inTableText:        c.inTableTextModeHandler,
		inCaption:          c.inCaptionModeHandler,
		inColumnGroup:      c.inColumnGroupModeHandler,
		inTableBody:        c.inTableBodyModeHandler,
		inRow:              c.inRowModeHandler,
		inCell:             c.inCellModeHandler,
		inSelect:           c.inSelectModeHandler,
		inSelectInTable:    c.inSelectInTableModeHandler,
		inTemplate:         c.inTemplateModeHandler,
		afterBody:          c.afterBodyModeHandler,
		inFrameset:         c.inFramesetModeHandler,
		afterFrameset:      c.afterFramesetModeHandler,
		afterAfterBody:     c.afterAfterBodyModeHandler,
		afterAfterFrameset: c.afterAfterFramesetModeHandler,
	}
}

// ConstructTree drains the tokenizer and builds the document, feeding the
// adjusted current node and any requested tokenizer state switch back
// through a Progress on every pull.
func (c *HTMLTreeConstructor) ConstructTree(p *HTMLTokenizer) *spec.Node {
	for p.Next() {
		t := p.Token(c.progress())
		c.processToken(t)
	}
	return c.HTMLDocument
}

func (c *HTMLTreeConstructor) progress() *Progress {
	pr := &Progress{
		AdjustedCurrentNode: c.adjustedCurrentNode(),
		TokenizerState:      c.nextTokenizerState,
	}
	c.nextTokenizerState = nil
	return pr
}

func (c *HTMLTreeConstructor) processToken(t *Token) {
	if c.skipNextNewline {
		c.skipNextNewline = false
		if t.TokenType == characterToken && t.Data == "\n" {
			return
		}
	}
	c.ackSelfClosing = false

	var err parseError
	reprocess := true
	for reprocess {
		mode := c.curMode
		if c.useForeignContentRules(t) {
			reprocess, c.curMode, err = c.foreignContentHandler(t)
		} else {
			reprocess, c.curMode, err = c.mappings[mode](t)
		}
		if err != noError {
			c.errs.add(string(err), t.Position)
		}
		if logrus.IsLevelEnabled(logrus.DebugLevel) && mode != c.curMode {
			logrus.WithFields(logrus.Fields{
				"from": mode,
				"to":   c.curMode,
			}).Debug("[TREE]: insertion mode")
		}
	}

	if t.TokenType == startTagToken && t.SelfClosing && !c.ackSelfClosing {
		c.errs.add(errNonVoidElementWithTrailingSolidus, t.Position)
	}
}

func (c *HTMLTreeConstructor) getCurrentNode() *spec.Node {
	return spec.Top(&c.stackOfOpenElements)
}

// https://html.spec.whatwg.org/multipage/parsing.html#adjusted-current-node
func (c *HTMLTreeConstructor) adjustedCurrentNode() *spec.Node {
	if c.context != nil && len(c.stackOfOpenElements) == 1 {
		return c.context
	}
	return c.getCurrentNode()
}

func (c *HTMLTreeConstructor) switchTokenizerTo(s tokenizerState) {
	next := s
	c.nextTokenizerState = &next
}

// insertionLocation points between two nodes in the tree; a nil before
// means "at the end of parent".
type insertionLocation struct {
	parent *spec.Node
	before *spec.Node
}

func (l insertionLocation) insert(n *spec.Node) *spec.Node {
	return l.parent.InsertBefore(n, l.before)
}

// nodeImmediatelyBefore returns the node just before the insertion point,
// which is what character insertion merges text into.
func (l insertionLocation) nodeImmediatelyBefore() *spec.Node {
	if l.before == nil {
		return l.parent.LastChild()
	}
	if i := l.parent.IndexOf(l.before); i > 0 {
		return l.parent.ChildNodes[i-1]
	}
	return nil
}

func isTableFosterTarget(n *spec.Node) bool {
	if n.Namespace != spec.Htmlns {
		return false
	}
	switch n.NodeName {
	case "table", "tbody", "tfoot", "thead", "tr":
		return true
	}
	return false
}

// https://html.spec.whatwg.org/multipage/parsing.html#appropriate-place-for-inserting-a-node
func (c *HTMLTreeConstructor) getAppropriatePlaceForInsertion(overrideTarget *spec.Node) insertionLocation {
	target := overrideTarget
	if target == nil {
		target = c.getCurrentNode()
	}
	if c.fosterParenting && isTableFosterTarget(target) {
		lastTemplate, lastTable := -1, -1
		for i, n := range c.stackOfOpenElements {
			if n.NodeName == "template" && n.Namespace == spec.Htmlns {
				lastTemplate = i
			}
			if n.NodeName == "table" && n.Namespace == spec.Htmlns {
				lastTable = i
			}
		}
		switch {
		case lastTemplate != -1 && (lastTable == -1 || lastTemplate > lastTable):
			return insertionLocation{parent: c.stackOfOpenElements[lastTemplate]}
		case lastTable == -1:
			return insertionLocation{parent: c.stackOfOpenElements[0]}
		case c.stackOfOpenElements[lastTable].ParentNode != nil:
			table := c.stackOfOpenElements[lastTable]
			return insertionLocation{parent: table.ParentNode, before: table}
		default:
			return insertionLocation{parent: c.stackOfOpenElements[lastTable-1]}
		}
	}
	return insertionLocation{parent: target}
}

// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-comment
func (c *HTMLTreeConstructor) insertComment(t *Token) {
	loc := c.getAppropriatePlaceForInsertion(nil)
	loc.insert(spec.NewCommentNode(loc.parent.OwnerDocument, t.Data))
}

func (c *HTMLTreeConstructor) insertCommentAt(t *Token, parent *spec.Node) {
	parent.AppendChild(spec.NewCommentNode(parent.OwnerDocument, t.Data))
}

// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-character
func (c *HTMLTreeConstructor) insertCharacter(t *Token) {
	loc := c.getAppropriatePlaceForInsertion(nil)
	if loc.parent.NodeType == spec.DocumentNode {
		return
	}
	if prev := loc.nodeImmediatelyBefore(); prev != nil && prev.NodeType == spec.TextNode {
		prev.Data += webidl.DOMString(t.Data)
		return
	}
	loc.insert(spec.NewTextNode(loc.parent.OwnerDocument, t.Data))
}

// https://html.spec.whatwg.org/multipage/parsing.html#create-an-element-for-the-token
func (c *HTMLTreeConstructor) createElementForToken(t *Token, ns webidl.DOMString, intendedParent *spec.Node) *spec.Node {
	elem := spec.NewDOMElement(intendedParent.OwnerDocument, webidl.DOMString(t.TagName), ns)
	for _, attr := range t.Attributes {
		elem.Attributes.Set(webidl.DOMString(attr.Name), webidl.DOMString(attr.Value))
	}
	return elem
}

func (c *HTMLTreeConstructor) insertHTMLElementForToken(t *Token) *spec.Node {
	return c.insertForeignElementForToken(t, spec.Htmlns)
}

// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-foreign-element
func (c *HTMLTreeConstructor) insertForeignElementForToken(t *Token, ns webidl.DOMString) *spec.Node {
	loc := c.getAppropriatePlaceForInsertion(nil)
	elem := c.createElementForToken(t, ns, loc.parent)
	if ns != spec.Htmlns {
		adjustForeignAttributes(elem)
	}
	loc.insert(elem)
	spec.Push(elem, &c.stackOfOpenElements)
	return elem
}

// synthetic builds the token the spec conjures when an element has to be
// inserted without having been written, like the implied head or body.
func synthetic(name string) *Token {
	return &Token{TokenType: startTagToken, TagName: name}
}

// https://html.spec.whatwg.org/multipage/parsing.html#generic-rcdata-element-parsing-algorithm
//
// The original insertion mode is taken from curMode, not from the handler
// that happened to run, so tokens redispatched via useRulesFor still come
// back to the right mode.
func (c *HTMLTreeConstructor) genericRCDATAParsing(t *Token) insertionMode {
	c.insertHTMLElementForToken(t)
	c.switchTokenizerTo(rcDataState)
	c.originalInsertionMode = c.curMode
	return text
}

func (c *HTMLTreeConstructor) genericRawTextParsing(t *Token) insertionMode {
	c.insertHTMLElementForToken(t)
	c.switchTokenizerTo(rawTextState)
	c.originalInsertionMode = c.curMode
	return text
}

type scopeEntry struct {
	name webidl.DOMString
	ns   webidl.DOMString
}

var defaultScopeList = []scopeEntry{
	{"applet", spec.Htmlns}, {"caption", spec.Htmlns}, {"html", spec.Htmlns},
	{"table", spec.Htmlns}, {"td", spec.Htmlns}, {"th", spec.Htmlns},
	{"marquee", spec.Htmlns}, {"object", spec.Htmlns}, {"template", spec.Htmlns},
	{"mi", spec.Mathmlns}, {"mo", spec.Mathmlns}, {"mn", spec.Mathmlns},
	{"ms", spec.Mathmlns}, {"mtext", spec.Mathmlns}, {"annotation-xml", spec.Mathmlns},
	{"foreignObject", spec.Svgns}, {"desc", spec.Svgns}, {"title", spec.Svgns},
}

var listItemScopeList = append([]scopeEntry{
	{"ol", spec.Htmlns}, {"ul", spec.Htmlns},
}, defaultScopeList...)

var buttonScopeList = append([]scopeEntry{
	{"button", spec.Htmlns},
}, defaultScopeList...)

var tableScopeList = []scopeEntry{
	{"html", spec.Htmlns}, {"table", spec.Htmlns}, {"template", spec.Htmlns},
}

func entryInList(n *spec.Node, list []scopeEntry) bool {
	for _, e := range list {
		if n.NodeName == e.name && n.Namespace == e.ns {
			return true
		}
	}
	return false
}

// https://html.spec.whatwg.org/multipage/parsing.html#has-an-element-in-the-specific-scope
func (c *HTMLTreeConstructor) nodeInSpecificScope(target *spec.Node, list []scopeEntry) bool {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		entry := c.stackOfOpenElements[i]
		if entry == target {
			return true
		}
		if entryInList(entry, list) {
			return false
		}
	}
	return false
}

func (c *HTMLTreeConstructor) elementInSpecificScope(name webidl.DOMString, list []scopeEntry) bool {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		entry := c.stackOfOpenElements[i]
		if entry.NodeName == name && entry.Namespace == spec.Htmlns {
			return true
		}
		if entryInList(entry, list) {
			return false
		}
	}
	return false
}

func (c *HTMLTreeConstructor) nodeInScope(target *spec.Node) bool {
	return c.nodeInSpecificScope(target, defaultScopeList)
}

func (c *HTMLTreeConstructor) elementInScope(name webidl.DOMString) bool {
	return c.elementInSpecificScope(name, defaultScopeList)
}

func (c *HTMLTreeConstructor) elementInListItemScope(name webidl.DOMString) bool {
	return c.elementInSpecificScope(name, listItemScopeList)
}

func (c *HTMLTreeConstructor) elementInButtonScope(name webidl.DOMString) bool {
	return c.elementInSpecificScope(name, buttonScopeList)
}

func (c *HTMLTreeConstructor) elementInTableScope(name webidl.DOMString) bool {
	return c.elementInSpecificScope(name, tableScopeList)
}

// Select scope inverts the list logic: everything except optgroup and
// option terminates the search.
func (c *HTMLTreeConstructor) elementInSelectScope(name webidl.DOMString) bool {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		entry := c.stackOfOpenElements[i]
		if entry.NodeName == name && entry.Namespace == spec.Htmlns {
			return true
		}
		if entry.Namespace != spec.Htmlns || (entry.NodeName != "optgroup" && entry.NodeName != "option") {
			return false
		}
	}
	return false
}

func (c *HTMLTreeConstructor) containsOpenElement(name webidl.DOMString) bool {
	return spec.ContainsName(name, &c.stackOfOpenElements) != -1
}

// popUntilName pops the stack until an HTML element with one of the names
// has been popped.
func (c *HTMLTreeConstructor) popUntilName(names ...webidl.DOMString) {
	for len(c.stackOfOpenElements) > 0 {
		popped := spec.Pop(&c.stackOfOpenElements)
		if popped.Namespace != spec.Htmlns {
			continue
		}
		for _, name := range names {
			if popped.NodeName == name {
				return
			}
		}
	}
}

func (c *HTMLTreeConstructor) popUntilNode(target *spec.Node) {
	for len(c.stackOfOpenElements) > 0 {
		if spec.Pop(&c.stackOfOpenElements) == target {
			return
		}
	}
}

var impliedEndTagNames = []webidl.DOMString{
	"dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc",
}

var thoroughImpliedEndTagNames = append([]webidl.DOMString{
	"caption", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr",
}, impliedEndTagNames...)

// https://html.spec.whatwg.org/multipage/parsing.html#generate-implied-end-tags
func (c *HTMLTreeConstructor) generateImpliedEndTags(excluded ...webidl.DOMString) {
	c.generateImpliedEndTagsFromList(impliedEndTagNames, excluded)
}

func (c *HTMLTreeConstructor) generateImpliedEndTagsThoroughly() {
	c.generateImpliedEndTagsFromList(thoroughImpliedEndTagNames, nil)
}

func (c *HTMLTreeConstructor) generateImpliedEndTagsFromList(names, excluded []webidl.DOMString) {
outer:
	for {
		cur := c.getCurrentNode()
		if cur == nil || cur.Namespace != spec.Htmlns {
			return
		}
		for _, e := range excluded {
			if cur.NodeName == e {
				return
			}
		}
		for _, name := range names {
			if cur.NodeName == name {
				spec.Pop(&c.stackOfOpenElements)
				continue outer
			}
		}
		return
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#close-a-p-element
func (c *HTMLTreeConstructor) closePElement() parseError {
	err := noError
	c.generateImpliedEndTags("p")
	if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "p" {
		err = generalParseError
	}
	c.popUntilName("p")
	return err
}

func isSpecial(n *spec.Node) bool {
	switch n.Namespace {
	case spec.Mathmlns:
		switch n.NodeName {
		case "mi", "mo", "mn", "ms", "mtext", "annotation-xml":
			return true
		}
		return false
	case spec.Svgns:
		switch n.NodeName {
		case "foreignObject", "desc", "title":
			return true
		}
		return false
	}
	switch n.NodeName {
	case "address", "applet", "area", "article", "aside", "base", "basefont",
		"bgsound", "blockquote", "body", "br", "button", "caption", "center",
		"col", "colgroup", "dd", "details", "dir", "div", "dl", "dt", "embed",
		"fieldset", "figcaption", "figure", "footer", "form", "frame",
		"frameset", "h1", "h2", "h3", "h4", "h5", "h6", "head", "header",
		"hgroup", "hr", "html", "iframe", "img", "input", "keygen", "li",
		"link", "listing", "main", "marquee", "menu", "meta", "nav", "noembed",
		"noframes", "noscript", "object", "ol", "p", "param", "plaintext",
		"pre", "script", "section", "select", "source", "style", "summary",
		"table", "tbody", "td", "template", "textarea", "tfoot", "th",
		"thead", "tr", "track", "ul", "wbr", "xmp":
		return true
	}
	return false
}

func sameFormattingElement(a, b *spec.Node) bool {
	if a.NodeName != b.NodeName || a.Namespace != b.Namespace {
		return false
	}
	if len(a.Attributes) != len(b.Attributes) {
		return false
	}
	for _, attr := range a.Attributes {
		v, ok := b.Attributes.Get(attr.Name)
		if !ok || v != attr.Value {
			return false
		}
	}
	return true
}

// pushActiveFormattingElements appends elem to the list, applying the
// Noah's Ark clause: at most three equal entries between markers.
// https://html.spec.whatwg.org/multipage/parsing.html#push-onto-the-list-of-active-formatting-elements
func (c *HTMLTreeConstructor) pushActiveFormattingElements(elem *spec.Node) {
	matches, earliest := 0, -1
	for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
		entry := c.activeFormattingElements[i]
		if entry.NodeType == spec.ScopeMarkerNode {
			break
		}
		if sameFormattingElement(entry, elem) {
			matches++
			earliest = i
		}
	}
	if matches >= 3 {
		spec.Remove(earliest, &c.activeFormattingElements)
	}
	spec.Push(elem, &c.activeFormattingElements)
}

func (c *HTMLTreeConstructor) pushMarker() {
	spec.Push(spec.NewScopeMarker(), &c.activeFormattingElements)
}

// https://html.spec.whatwg.org/multipage/parsing.html#clear-the-list-of-active-formatting-elements-up-to-the-last-marker
func (c *HTMLTreeConstructor) clearActiveFormattingElementsToLastMarker() {
	for len(c.activeFormattingElements) > 0 {
		if spec.Pop(&c.activeFormattingElements).NodeType == spec.ScopeMarkerNode {
			return
		}
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#reconstruct-the-active-formatting-elements
func (c *HTMLTreeConstructor) reconstructActiveFormattingElements() {
	if len(c.activeFormattingElements) == 0 {
		return
	}
	last := len(c.activeFormattingElements) - 1
	entry := c.activeFormattingElements[last]
	if entry.NodeType == spec.ScopeMarkerNode || spec.Contains(entry, &c.stackOfOpenElements) != -1 {
		return
	}

	// rewind to the entry after the last marker/open element
	i := last
	for ; i >= 0; i-- {
		entry = c.activeFormattingElements[i]
		if entry.NodeType == spec.ScopeMarkerNode || spec.Contains(entry, &c.stackOfOpenElements) != -1 {
			break
		}
	}

	// advance and re-open everything from there on
	for i++; i < len(c.activeFormattingElements); i++ {
		clone := c.activeFormattingElements[i].CloneNode(false)
		loc := c.getAppropriatePlaceForInsertion(nil)
		loc.insert(clone)
		spec.Push(clone, &c.stackOfOpenElements)
		c.activeFormattingElements[i] = clone
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#adoption-agency-algorithm
//
// The second return asks the caller to fall back to the "any other end
// tag" steps.
func (c *HTMLTreeConstructor) adoptionAgencyAlgorithm(t *Token) (bool, parseError) {
	err := noError
	subject := webidl.DOMString(t.TagName)

	// 2
	cur := c.getCurrentNode()
	if cur != nil && cur.NodeName == subject && cur.Namespace == spec.Htmlns &&
		spec.Contains(cur, &c.activeFormattingElements) == -1 {
		spec.Pop(&c.stackOfOpenElements)
		return false, noError
	}

	// 3-5 outer loop
	for x := 0; x < 8; x++ {
		// 6
		fi := -1
		var formattingElement *spec.Node
		for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
			entry := c.activeFormattingElements[i]
			if entry.NodeType == spec.ScopeMarkerNode {
				break
			}
			if entry.NodeName == subject {
				formattingElement, fi = entry, i
				break
			}
		}
		if formattingElement == nil {
			return true, err
		}

		// 7
		si := spec.Contains(formattingElement, &c.stackOfOpenElements)
		if si == -1 {
			spec.Remove(fi, &c.activeFormattingElements)
			return false, generalParseError
		}

		// 8
		if !c.nodeInScope(formattingElement) {
			return false, generalParseError
		}

		// 9
		if formattingElement != c.getCurrentNode() {
			err = generalParseError
		}

		// 10
		var furthestBlock *spec.Node
		bi := -1
		for i := si + 1; i < len(c.stackOfOpenElements); i++ {
			if isSpecial(c.stackOfOpenElements[i]) {
				furthestBlock, bi = c.stackOfOpenElements[i], i
				break
			}
		}

		// 11
		if furthestBlock == nil {
			for c.getCurrentNode() != formattingElement {
				spec.Pop(&c.stackOfOpenElements)
			}
			spec.Pop(&c.stackOfOpenElements)
			spec.Remove(fi, &c.activeFormattingElements)
			return false, err
		}

		// 12
		commonAncestor := c.stackOfOpenElements[si-1]
		// 13
		bookmark := fi

		// 14 inner loop
		node, lastNode := furthestBlock, furthestBlock
		ni := bi
		for ic := 1; ; ic++ {
			ni--
			node = c.stackOfOpenElements[ni]
			// 14.4
			if node == formattingElement {
				break
			}
			// 14.5
			if ai := spec.Contains(node, &c.activeFormattingElements); ic > 3 && ai != -1 {
				spec.Remove(ai, &c.activeFormattingElements)
				if ai < bookmark {
					bookmark--
				}
			}
			// 14.6
			ai := spec.Contains(node, &c.activeFormattingElements)
			if ai == -1 {
				spec.Remove(ni, &c.stackOfOpenElements)
				continue
			}
			// 14.7
			clone := node.CloneNode(false)
			c.activeFormattingElements[ai] = clone
			c.stackOfOpenElements[ni] = clone
			node = clone
			// 14.8
			if lastNode == furthestBlock {
				bookmark = ai + 1
			}
			// 14.9
			node.AppendChild(lastNode)
			// 14.10
			lastNode = node
		}

		// 15
		saved := c.fosterParenting
		if isTableFosterTarget(commonAncestor) {
			c.fosterParenting = true
		}
		c.getAppropriatePlaceForInsertion(commonAncestor).insert(lastNode)
		c.fosterParenting = saved

		// 16
		clone := formattingElement.CloneNode(false)
		// 17
		for len(furthestBlock.ChildNodes) > 0 {
			clone.AppendChild(furthestBlock.ChildNodes[0])
		}
		// 18
		furthestBlock.AppendChild(clone)

		// 19
		if i := spec.Contains(formattingElement, &c.activeFormattingElements); i != -1 {
			spec.Remove(i, &c.activeFormattingElements)
			if i < bookmark {
				bookmark--
			}
			c.activeFormattingElements = append(c.activeFormattingElements[:bookmark],
				append(spec.NodeList{clone}, c.activeFormattingElements[bookmark:]...)...)
		}

		// 20
		if i := spec.Contains(formattingElement, &c.stackOfOpenElements); i != -1 {
			spec.Remove(i, &c.stackOfOpenElements)
		}
		if i := spec.Contains(furthestBlock, &c.stackOfOpenElements); i != -1 {
			c.stackOfOpenElements = append(c.stackOfOpenElements[:i+1],
				append(spec.NodeList{clone}, c.stackOfOpenElements[i+1:]...)...)
		}
	}

	return false, err
}

// https://html.spec.whatwg.org/multipage/parsing.html#reset-the-insertion-mode-appropriately
func (c *HTMLTreeConstructor) resetInsertionMode() insertionMode {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements[i]
		last := i == 0
		if last && c.context != nil {
			node = c.context
		}
		switch node.NodeName {
		case "select":
			if !last {
				for j := i - 1; j > 0; j-- {
					ancestor := c.stackOfOpenElements[j]
					if ancestor.NodeName == "template" {
						break
					}
					if ancestor.NodeName == "table" {
						return inSelectInTable
					}
				}
			}
			return inSelect
		case "td", "th":
			if !last {
				return inCell
			}
		case "tr":
			return inRow
		case "tbody", "thead", "tfoot":
			return inTableBody
		case "caption":
			return inCaption
		case "colgroup":
			return inColumnGroup
		case "table":
			return inTable
		case "template":
			return c.templateInsertionModes[len(c.templateInsertionModes)-1]
		case "head":
			if !last {
				return inHead
			}
		case "body":
			return inBody
		case "frameset":
			return inFrameset
		case "html":
			if c.headElementPointer == nil {
				return beforeHead
			}
			return afterHead
		}
		if last {
			return inBody
		}
	}
	return inBody
}

func (c *HTMLTreeConstructor) clearStackBackToTableContext() {
	for {
		switch c.getCurrentNode().NodeName {
		case "table", "template", "html":
			return
		}
		spec.Pop(&c.stackOfOpenElements)
	}
}

func (c *HTMLTreeConstructor) clearStackBackToTableBodyContext() {
	for {
		switch c.getCurrentNode().NodeName {
		case "tbody", "tfoot", "thead", "template", "html":
			return
		}
		spec.Pop(&c.stackOfOpenElements)
	}
}

func (c *HTMLTreeConstructor) clearStackBackToTableRowContext() {
	for {
		switch c.getCurrentNode().NodeName {
		case "tr", "template", "html":
			return
		}
		spec.Pop(&c.stackOfOpenElements)
	}
}

func isWhitespaceData(data string) bool {
	switch data {
	case "\t", "\n", "\f", "\r", " ":
		return true
	}
	return false
}

func (c *HTMLTreeConstructor) useRulesFor(t *Token, returnState, expectedState insertionMode) (bool, insertionMode, parseError) {
	reprocess, nextstate, err := c.mappings[expectedState](t)

	// if the mode handler didn't move anywhere, stay in the caller's mode
	if nextstate == expectedState {
		return reprocess, returnState, err
	}
	return reprocess, nextstate, err
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func (c *HTMLTreeConstructor) initialModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceData(t.Data) {
			return false, initial, noError
		}
	case commentToken:
		c.insertCommentAt(t, c.HTMLDocument)
		return false, initial, noError
	case docTypeToken:
		err := noError
		if t.TagName != "html" ||
			t.PublicIdentifier != missing ||
			(t.SystemIdentifier != missing && t.SystemIdentifier != "about:legacy-compat") {
			err = generalParseError
		}

		name := t.TagName
		if name == missing {
			name = ""
		}
		publicID, systemID := t.PublicIdentifier, t.SystemIdentifier
		if publicID == missing {
			publicID = ""
		}
		if systemID == missing {
			systemID = ""
		}
		doctype := spec.NewDocTypeNode(webidl.DOMString(name), webidl.DOMString(publicID), webidl.DOMString(systemID))
		c.HTMLDocument.AppendChild(doctype)

		c.quirksMode = classifyDoctype(t)
		c.HTMLDocument.Document.CompatMode = webidl.DOMString(c.quirksMode.String())
		return false, beforeHTML, err
	}
	c.quirksMode = quirks
	c.HTMLDocument.Document.CompatMode = webidl.DOMString(c.quirksMode.String())
	return true, beforeHTML, generalParseError
}

func (c *HTMLTreeConstructor) defaultBeforeHTMLModeHandler(t *Token) (bool, insertionMode, parseError) {
	elem := spec.NewDOMElement(c.HTMLDocument, "html")
	c.HTMLDocument.AppendChild(elem)
	spec.Push(elem, &c.stackOfOpenElements)
	return true, beforeHead, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-html-insertion-mode
func (c *HTMLTreeConstructor) beforeHTMLModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case docTypeToken:
		return false, beforeHTML, generalParseError
	case commentToken:
		c.insertCommentAt(t, c.HTMLDocument)
		return false, beforeHTML, noError
	case characterToken:
		if isWhitespaceData(t.Data) {
			return false, beforeHTML, noError
		}
	case startTagToken:
		if t.TagName == "html" {
			elem := c.createElementForToken(t, spec.Htmlns, c.HTMLDocument)
			c.HTMLDocument.AppendChild(elem)
			spec.Push(elem, &c.stackOfOpenElements)
			return false, beforeHead, noError
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
			return c.defaultBeforeHTMLModeHandler(t)
		default:
			return false, beforeHTML, generalParseError
		}
	}
	return c.defaultBeforeHTMLModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultBeforeHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	c.headElementPointer = c.insertHTMLElementForToken(synthetic("head"))
	return true, inHead, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-head-insertion-mode
func (c *HTMLTreeConstructor) beforeHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceData(t.Data) {
			return false, beforeHead, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, beforeHead, noError
	case docTypeToken:
		return false, beforeHead, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, beforeHead, inBody)
		case "head":
			c.headElementPointer = c.insertHTMLElementForToken(t)
			return false, inHead, noError
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
			return c.defaultBeforeHeadModeHandler(t)
		}
		return false, beforeHead, generalParseError
	}
	return c.defaultBeforeHeadModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultInHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	spec.Pop(&c.stackOfOpenElements)
	return true, afterHead, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inhead
func (c *HTMLTreeConstructor) inHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceData(t.Data) {
			c.insertCharacter(t)
			return false, inHead, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, inHead, noError
	case docTypeToken:
		return false, inHead, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inHead, inBody)
		case "base", "basefont", "bgsound", "link", "meta":
			c.insertHTMLElementForToken(t)
			spec.Pop(&c.stackOfOpenElements)
			c.ackSelfClosing = true
			return false, inHead, noError
		case "title":
			return false, c.genericRCDATAParsing(t), noError
		case "noscript":
			if c.scriptingEnabled {
				return false, c.genericRawTextParsing(t), noError
			}
			c.insertHTMLElementForToken(t)
			return false, inHeadNoScript, noError
		case "noframes", "style":
			return false, c.genericRawTextParsing(t), noError
		case "script":
			c.insertHTMLElementForToken(t)
			c.switchTokenizerTo(scriptDataState)
			c.originalInsertionMode = c.curMode
			return false, text, noError
		case "template":
			c.insertHTMLElementForToken(t)
			c.pushMarker()
			c.frameset = framesetNotOK
			c.templateInsertionModes = append(c.templateInsertionModes, inTemplate)
			return false, inTemplate, noError
		case "head":
			return false, inHead, generalParseError
		}
	case endTagToken:
		switch t.TagName {
		case "head":
			spec.Pop(&c.stackOfOpenElements)
			return false, afterHead, noError
		case "body", "html", "br":
			return c.defaultInHeadModeHandler(t)
		case "template":
			if !c.containsOpenElement("template") {
				return false, inHead, generalParseError
			}
			err := noError
			c.generateImpliedEndTagsThoroughly()
			if c.getCurrentNode().NodeName != "template" {
				err = generalParseError
			}
			c.popUntilName("template")
			c.clearActiveFormattingElementsToLastMarker()
			c.templateInsertionModes = c.templateInsertionModes[:len(c.templateInsertionModes)-1]
			return false, c.resetInsertionMode(), err
		default:
			return false, inHead, generalParseError
		}
	}
	return c.defaultInHeadModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultInHeadNoScriptModeHandler(t *Token) (bool, insertionMode, parseError) {
	spec.Pop(&c.stackOfOpenElements)
	return true, inHead, generalParseError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inheadnoscript
func (c *HTMLTreeConstructor) inHeadNoScriptModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceData(t.Data) {
			return c.useRulesFor(t, inHeadNoScript, inHead)
		}
	case commentToken:
		return c.useRulesFor(t, inHeadNoScript, inHead)
	case docTypeToken:
		return false, inHeadNoScript, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inHeadNoScript, inBody)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return c.useRulesFor(t, inHeadNoScript, inHead)
		case "head", "noscript":
			return false, inHeadNoScript, generalParseError
		}
	case endTagToken:
		switch t.TagName {
		case "noscript":
			spec.Pop(&c.stackOfOpenElements)
			return false, inHead, noError
		case "br":
			return c.defaultInHeadNoScriptModeHandler(t)
		default:
			return false, inHeadNoScript, generalParseError
		}
	}
	return c.defaultInHeadNoScriptModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultAfterHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	c.insertHTMLElementForToken(synthetic("body"))
	return true, inBody, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-head-insertion-mode
func (c *HTMLTreeConstructor) afterHeadModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceData(t.Data) {
			c.insertCharacter(t)
			return false, afterHead, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, afterHead, noError
	case docTypeToken:
		return false, afterHead, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, afterHead, inBody)
		case "body":
			c.insertHTMLElementForToken(t)
			c.frameset = framesetNotOK
			return false, inBody, noError
		case "frameset":
			c.insertHTMLElementForToken(t)
			return false, inFrameset, noError
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title":
			spec.Push(c.headElementPointer, &c.stackOfOpenElements)
			reprocess, nextMode, _ := c.useRulesFor(t, afterHead, inHead)
			spec.RemoveNode(c.headElementPointer, &c.stackOfOpenElements)
			return reprocess, nextMode, generalParseError
		case "head":
			return false, afterHead, generalParseError
		}
	case endTagToken:
		switch t.TagName {
		case "template":
			return c.useRulesFor(t, afterHead, inHead)
		case "body", "html", "br":
			return c.defaultAfterHeadModeHandler(t)
		default:
			return false, afterHead, generalParseError
		}
	}
	return c.defaultAfterHeadModeHandler(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
func (c *HTMLTreeConstructor) inBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	err := noError
	switch t.TokenType {
	case characterToken:
		if t.Data == "\u0000" {
			return false, inBody, generalParseError
		}
		c.reconstructActiveFormattingElements()
		c.insertCharacter(t)
		if !isWhitespaceData(t.Data) {
			c.frameset = framesetNotOK
		}
		return false, inBody, noError
	case commentToken:
		c.insertComment(t)
		return false, inBody, noError
	case docTypeToken:
		return false, inBody, generalParseError
	case startTagToken:
		return c.inBodyStartTagHandler(t)
	case endTagToken:
		return c.inBodyEndTagHandler(t)
	case endOfFileToken:
		if len(c.templateInsertionModes) > 0 {
			return c.useRulesFor(t, inBody, inTemplate)
		}
		for _, n := range c.stackOfOpenElements {
			switch n.NodeName {
			case "dd", "dt", "li", "optgroup", "option", "p", "rb", "rp",
				"rt", "rtc", "tbody", "td", "tfoot", "th", "thead", "tr",
				"body", "html":
			default:
				err = generalParseError
			}
		}
		return false, inBody, err
	}
	return false, inBody, err
}

func (c *HTMLTreeConstructor) inBodyStartTagHandler(t *Token) (bool, insertionMode, parseError) {
	err := noError
	switch t.TagName {
	case "html":
		err = generalParseError
		if c.containsOpenElement("template") {
			return false, inBody, err
		}
		top := c.stackOfOpenElements[0]
		for _, attr := range t.Attributes {
			top.Attributes.Set(webidl.DOMString(attr.Name), webidl.DOMString(attr.Value))
		}
		return false, inBody, err
	case "base", "basefont", "bgsound", "link", "meta", "noframes",
		"script", "style", "template", "title":
		return c.useRulesFor(t, inBody, inHead)
	case "body":
		err = generalParseError
		if len(c.stackOfOpenElements) < 2 ||
			c.stackOfOpenElements[1].NodeName != "body" ||
			c.containsOpenElement("template") {
			return false, inBody, err
		}
		c.frameset = framesetNotOK
		body := c.stackOfOpenElements[1]
		for _, attr := range t.Attributes {
			body.Attributes.Set(webidl.DOMString(attr.Name), webidl.DOMString(attr.Value))
		}
		return false, inBody, err
	case "frameset":
		err = generalParseError
		if len(c.stackOfOpenElements) < 2 ||
			c.stackOfOpenElements[1].NodeName != "body" ||
			c.frameset == framesetNotOK {
			return false, inBody, err
		}
		body := c.stackOfOpenElements[1]
		if body.ParentNode != nil {
			body.ParentNode.RemoveChild(body)
		}
		for len(c.stackOfOpenElements) > 1 {
			spec.Pop(&c.stackOfOpenElements)
		}
		c.insertHTMLElementForToken(t)
		return false, inFrameset, err
	case "address", "article", "aside", "blockquote", "center", "details",
		"dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure",
		"footer", "header", "hgroup", "main", "menu", "nav", "ol", "p",
		"section", "summary", "ul":
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, noError
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		switch c.getCurrentNode().NodeName {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			err = generalParseError
			spec.Pop(&c.stackOfOpenElements)
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err
	case "pre", "listing":
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		c.skipNextNewline = true
		c.frameset = framesetNotOK
		return false, inBody, noError
	case "form":
		if c.formElementPointer != nil && !c.containsOpenElement("template") {
			return false, inBody, generalParseError
		}
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		elem := c.insertHTMLElementForToken(t)
		if !c.containsOpenElement("template") {
			c.formElementPointer = elem
		}
		return false, inBody, noError
	case "li":
		c.frameset = framesetNotOK
		for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
			node := c.stackOfOpenElements[i]
			if node.NodeName == "li" && node.Namespace == spec.Htmlns {
				c.generateImpliedEndTags("li")
				if c.getCurrentNode().NodeName != "li" {
					err = generalParseError
				}
				c.popUntilName("li")
				break
			}
			if isSpecial(node) && node.NodeName != "address" && node.NodeName != "div" && node.NodeName != "p" {
				break
			}
		}
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err
	case "dd", "dt":
		c.frameset = framesetNotOK
		for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
			node := c.stackOfOpenElements[i]
			if (node.NodeName == "dd" || node.NodeName == "dt") && node.Namespace == spec.Htmlns {
				name := node.NodeName
				c.generateImpliedEndTags(name)
				if c.getCurrentNode().NodeName != name {
					err = generalParseError
				}
				c.popUntilName(name)
				break
			}
			if isSpecial(node) && node.NodeName != "address" && node.NodeName != "div" && node.NodeName != "p" {
				break
			}
		}
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err
	case "plaintext":
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		c.switchTokenizerTo(plaintextState)
		return false, inBody, noError
	case "button":
		if c.elementInScope("button") {
			err = generalParseError
			c.generateImpliedEndTags()
			c.popUntilName("button")
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		return false, inBody, err
	case "a":
		for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
			entry := c.activeFormattingElements[i]
			if entry.NodeType == spec.ScopeMarkerNode {
				break
			}
			if entry.NodeName == "a" {
				err = generalParseError
				c.adoptionAgencyAlgorithm(t)
				spec.RemoveNode(entry, &c.activeFormattingElements)
				spec.RemoveNode(entry, &c.stackOfOpenElements)
				break
			}
		}
		c.reconstructActiveFormattingElements()
		elem := c.insertHTMLElementForToken(t)
		c.pushActiveFormattingElements(elem)
		return false, inBody, err
	case "b", "big", "code", "em", "font", "i", "s", "small", "strike",
		"strong", "tt", "u":
		c.reconstructActiveFormattingElements()
		elem := c.insertHTMLElementForToken(t)
		c.pushActiveFormattingElements(elem)
		return false, inBody, noError
	case "nobr":
		c.reconstructActiveFormattingElements()
		if c.elementInScope("nobr") {
			err = generalParseError
			c.adoptionAgencyAlgorithm(t)
			c.reconstructActiveFormattingElements()
		}
		elem := c.insertHTMLElementForToken(t)
		c.pushActiveFormattingElements(elem)
		return false, inBody, err
	case "applet", "marquee", "object":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.pushMarker()
		c.frameset = framesetNotOK
		return false, inBody, noError
	case "table":
		if c.quirksMode != quirks && c.elementInButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		return false, inTable, noError
	case "area", "br", "embed", "img", "keygen", "wbr":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		spec.Pop(&c.stackOfOpenElements)
		c.ackSelfClosing = true
		c.frameset = framesetNotOK
		return false, inBody, noError
	case "input":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		spec.Pop(&c.stackOfOpenElements)
		c.ackSelfClosing = true
		if typ, ok := t.AttrValue("type"); !ok || !strings.EqualFold(typ, "hidden") {
			c.frameset = framesetNotOK
		}
		return false, inBody, noError
	case "param", "source", "track":
		c.insertHTMLElementForToken(t)
		spec.Pop(&c.stackOfOpenElements)
		c.ackSelfClosing = true
		return false, inBody, noError
	case "hr":
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		spec.Pop(&c.stackOfOpenElements)
		c.ackSelfClosing = true
		c.frameset = framesetNotOK
		return false, inBody, noError
	case "image":
		// act as if the token had been "img" all along, without touching
		// the emitted token
		img := *t
		img.TagName = "img"
		_, mode, _ := c.inBodyStartTagHandler(&img)
		return false, mode, generalParseError
	case "textarea":
		c.insertHTMLElementForToken(t)
		c.skipNextNewline = true
		c.switchTokenizerTo(rcDataState)
		c.originalInsertionMode = c.curMode
		c.frameset = framesetNotOK
		return false, text, noError
	case "xmp":
		if c.elementInButtonScope("p") {
			c.closePElement()
		}
		c.reconstructActiveFormattingElements()
		c.frameset = framesetNotOK
		return false, c.genericRawTextParsing(t), noError
	case "iframe":
		c.frameset = framesetNotOK
		return false, c.genericRawTextParsing(t), noError
	case "noembed":
		return false, c.genericRawTextParsing(t), noError
	case "noscript":
		if c.scriptingEnabled {
			return false, c.genericRawTextParsing(t), noError
		}
	case "select":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		switch c.curMode {
		case inTable, inCaption, inTableBody, inRow, inCell:
			return false, inSelectInTable, noError
		}
		return false, inSelect, noError
	case "optgroup", "option":
		if c.getCurrentNode().NodeName == "option" {
			spec.Pop(&c.stackOfOpenElements)
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		return false, inBody, noError
	case "rb", "rtc":
		if c.elementInScope("ruby") {
			c.generateImpliedEndTags()
			if c.getCurrentNode().NodeName != "ruby" {
				err = generalParseError
			}
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err
	case "rp", "rt":
		if c.elementInScope("ruby") {
			c.generateImpliedEndTags("rtc")
			switch c.getCurrentNode().NodeName {
			case "rtc", "ruby":
			default:
				err = generalParseError
			}
		}
		c.insertHTMLElementForToken(t)
		return false, inBody, err
	case "math":
		c.reconstructActiveFormattingElements()
		adj := *t
		adj.Attributes = append([]Attribute(nil), t.Attributes...)
		adjustMathMLAttributes(&adj)
		c.insertForeignElementForToken(&adj, spec.Mathmlns)
		if t.SelfClosing {
			spec.Pop(&c.stackOfOpenElements)
			c.ackSelfClosing = true
		}
		return false, inBody, noError
	case "svg":
		c.reconstructActiveFormattingElements()
		adj := *t
		adj.Attributes = append([]Attribute(nil), t.Attributes...)
		adjustSVGAttributes(&adj)
		c.insertForeignElementForToken(&adj, spec.Svgns)
		if t.SelfClosing {
			spec.Pop(&c.stackOfOpenElements)
			c.ackSelfClosing = true
		}
		return false, inBody, noError
	case "caption", "col", "colgroup", "frame", "head", "tbody", "td",
		"tfoot", "th", "thead", "tr":
		return false, inBody, generalParseError
	}
	c.reconstructActiveFormattingElements()
	c.insertHTMLElementForToken(t)
	return false, inBody, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
// "any other end tag" steps
func (c *HTMLTreeConstructor) defaultInBodyEndTagHandler(t *Token) (bool, insertionMode, parseError) {
	name := webidl.DOMString(t.TagName)
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements[i]
		if node.NodeName == name && node.Namespace == spec.Htmlns {
			err := noError
			c.generateImpliedEndTags(name)
			if c.getCurrentNode() != node {
				err = generalParseError
			}
			c.popUntilNode(node)
			return false, inBody, err
		}
		if isSpecial(node) {
			return false, inBody, generalParseError
		}
	}
	return false, inBody, noError
}

func (c *HTMLTreeConstructor) inBodyEndTagHandler(t *Token) (bool, insertionMode, parseError) {
	err := noError
	switch t.TagName {
	case "template":
		return c.useRulesFor(t, inBody, inHead)
	case "body":
		if !c.elementInScope("body") {
			return false, inBody, generalParseError
		}
		for _, n := range c.stackOfOpenElements {
			switch n.NodeName {
			case "dd", "dt", "li", "optgroup", "option", "p", "rb", "rp",
				"rt", "rtc", "tbody", "td", "tfoot", "th", "thead", "tr",
				"body", "html":
			default:
				err = generalParseError
			}
		}
		return false, afterBody, err
	case "html":
		if !c.elementInScope("body") {
			return false, inBody, generalParseError
		}
		for _, n := range c.stackOfOpenElements {
			switch n.NodeName {
			case "dd", "dt", "li", "optgroup", "option", "p", "rb", "rp",
				"rt", "rtc", "tbody", "td", "tfoot", "th", "thead", "tr",
				"body", "html":
			default:
				err = generalParseError
			}
		}
		return true, afterBody, err
	case "address", "article", "aside", "blockquote", "button", "center",
		"details", "dialog", "dir", "div", "dl", "fieldset", "figcaption",
		"figure", "footer", "header", "hgroup", "listing", "main", "menu",
		"nav", "ol", "pre", "section", "summary", "ul":
		name := webidl.DOMString(t.TagName)
		if !c.elementInScope(name) {
			return false, inBody, generalParseError
		}
		c.generateImpliedEndTags()
		if c.getCurrentNode().NodeName != name {
			err = generalParseError
		}
		c.popUntilName(name)
		return false, inBody, err
	case "form":
		if !c.containsOpenElement("template") {
			node := c.formElementPointer
			c.formElementPointer = nil
			if node == nil || !c.nodeInScope(node) {
				return false, inBody, generalParseError
			}
			c.generateImpliedEndTags()
			if c.getCurrentNode() != node {
				err = generalParseError
			}
			spec.RemoveNode(node, &c.stackOfOpenElements)
			return false, inBody, err
		}
		if !c.elementInScope("form") {
			return false, inBody, generalParseError
		}
		c.generateImpliedEndTags()
		if c.getCurrentNode().NodeName != "form" {
			err = generalParseError
		}
		c.popUntilName("form")
		return false, inBody, err
	case "p":
		if !c.elementInButtonScope("p") {
			err = generalParseError
			c.insertHTMLElementForToken(synthetic("p"))
		}
		if closeErr := c.closePElement(); closeErr != noError {
			err = closeErr
		}
		return false, inBody, err
	case "li":
		if !c.elementInListItemScope("li") {
			return false, inBody, generalParseError
		}
		c.generateImpliedEndTags("li")
		if c.getCurrentNode().NodeName != "li" {
			err = generalParseError
		}
		c.popUntilName("li")
		return false, inBody, err
	case "dd", "dt":
		name := webidl.DOMString(t.TagName)
		if !c.elementInScope(name) {
			return false, inBody, generalParseError
		}
		c.generateImpliedEndTags(name)
		if c.getCurrentNode().NodeName != name {
			err = generalParseError
		}
		c.popUntilName(name)
		return false, inBody, err
	case "h1", "h2", "h3", "h4", "h5", "h6":
		inScope := false
		for _, h := range []webidl.DOMString{"h1", "h2", "h3", "h4", "h5", "h6"} {
			if c.elementInScope(h) {
				inScope = true
				break
			}
		}
		if !inScope {
			return false, inBody, generalParseError
		}
		c.generateImpliedEndTags()
		if c.getCurrentNode().NodeName != webidl.DOMString(t.TagName) {
			err = generalParseError
		}
		c.popUntilName("h1", "h2", "h3", "h4", "h5", "h6")
		return false, inBody, err
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
		"strike", "strong", "tt", "u":
		var shouldDefault bool
		shouldDefault, err = c.adoptionAgencyAlgorithm(t)
		if shouldDefault {
			a, b, defErr := c.defaultInBodyEndTagHandler(t)
			if err == noError {
				err = defErr
			}
			return a, b, err
		}
		return false, inBody, err
	case "applet", "marquee", "object":
		name := webidl.DOMString(t.TagName)
		if !c.elementInScope(name) {
			return false, inBody, generalParseError
		}
		c.generateImpliedEndTags()
		if c.getCurrentNode().NodeName != name {
			err = generalParseError
		}
		c.popUntilName(name)
		c.clearActiveFormattingElementsToLastMarker()
		return false, inBody, err
	case "br":
		// treated as a br start tag with no attributes
		br := *t
		br.TokenType = startTagToken
		br.Attributes = nil
		_, mode, _ := c.inBodyStartTagHandler(&br)
		return false, mode, generalParseError
	}
	return c.defaultInBodyEndTagHandler(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
func (c *HTMLTreeConstructor) textModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		c.insertCharacter(t)
		return false, text, noError
	case endOfFileToken:
		spec.Pop(&c.stackOfOpenElements)
		return true, c.originalInsertionMode, generalParseError
	case endTagToken:
		spec.Pop(&c.stackOfOpenElements)
		return false, c.originalInsertionMode, noError
	}
	return false, text, noError
}

func (c *HTMLTreeConstructor) defaultInTableModeHandler(t *Token) (bool, insertionMode, parseError) {
	c.fosterParenting = true
	reprocess, nextMode, _ := c.useRulesFor(t, inTable, inBody)
	c.fosterParenting = false
	return reprocess, nextMode, generalParseError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intable
func (c *HTMLTreeConstructor) inTableModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		switch c.getCurrentNode().NodeName {
		case "table", "tbody", "tfoot", "thead", "tr":
			c.pendingTableCharacters = nil
			c.originalInsertionMode = c.curMode
			return true, inTableText, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, inTable, noError
	case docTypeToken:
		return false, inTable, generalParseError
	case startTagToken:
		switch t.TagName {
		case "caption":
			c.clearStackBackToTableContext()
			c.pushMarker()
			c.insertHTMLElementForToken(t)
			return false, inCaption, noError
		case "colgroup":
			c.clearStackBackToTableContext()
			c.insertHTMLElementForToken(t)
			return false, inColumnGroup, noError
		case "col":
			c.clearStackBackToTableContext()
			c.insertHTMLElementForToken(synthetic("colgroup"))
			return true, inColumnGroup, noError
		case "tbody", "tfoot", "thead":
			c.clearStackBackToTableContext()
			c.insertHTMLElementForToken(t)
			return false, inTableBody, noError
		case "td", "th", "tr":
			c.clearStackBackToTableContext()
			c.insertHTMLElementForToken(synthetic("tbody"))
			return true, inTableBody, noError
		case "table":
			if !c.elementInTableScope("table") {
				return false, inTable, generalParseError
			}
			c.popUntilName("table")
			return true, c.resetInsertionMode(), generalParseError
		case "style", "script", "template":
			return c.useRulesFor(t, inTable, inHead)
		case "input":
			typ, ok := t.AttrValue("type")
			if !ok || !strings.EqualFold(typ, "hidden") {
				return c.defaultInTableModeHandler(t)
			}
			c.insertHTMLElementForToken(t)
			spec.Pop(&c.stackOfOpenElements)
			c.ackSelfClosing = true
			return false, inTable, generalParseError
		case "form":
			if c.containsOpenElement("template") || c.formElementPointer != nil {
				return false, inTable, generalParseError
			}
			c.formElementPointer = c.insertHTMLElementForToken(t)
			spec.Pop(&c.stackOfOpenElements)
			return false, inTable, generalParseError
		}
	case endTagToken:
		switch t.TagName {
		case "table":
			if !c.elementInTableScope("table") {
				return false, inTable, generalParseError
			}
			c.popUntilName("table")
			return false, c.resetInsertionMode(), noError
		case "body", "caption", "col", "colgroup", "html", "tbody", "td",
			"tfoot", "th", "thead", "tr":
			return false, inTable, generalParseError
		case "template":
			return c.useRulesFor(t, inTable, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inTable, inBody)
	}
	return c.defaultInTableModeHandler(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intabletext
func (c *HTMLTreeConstructor) inTableTextModeHandler(t *Token) (bool, insertionMode, parseError) {
	if t.TokenType == characterToken {
		if t.Data == "\u0000" {
			return false, inTableText, generalParseError
		}
		c.pendingTableCharacters = append(c.pendingTableCharacters, t)
		return false, inTableText, noError
	}

	err := noError
	allWhitespace := true
	for _, ct := range c.pendingTableCharacters {
		if !isWhitespaceData(ct.Data) {
			allWhitespace = false
			break
		}
	}
	if allWhitespace {
		for _, ct := range c.pendingTableCharacters {
			c.insertCharacter(ct)
		}
	} else {
		err = generalParseError
		c.fosterParenting = true
		for _, ct := range c.pendingTableCharacters {
			c.mappings[inBody](ct)
		}
		c.fosterParenting = false
	}
	c.pendingTableCharacters = nil
	return true, c.originalInsertionMode, err
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incaption
func (c *HTMLTreeConstructor) inCaptionModeHandler(t *Token) (bool, insertionMode, parseError) {
	closeCaption := func(reprocess bool) (bool, insertionMode, parseError) {
		if !c.elementInTableScope("caption") {
			return false, inCaption, generalParseError
		}
		err := noError
		c.generateImpliedEndTags()
		if c.getCurrentNode().NodeName != "caption" {
			err = generalParseError
		}
		c.popUntilName("caption")
		c.clearActiveFormattingElementsToLastMarker()
		return reprocess, inTable, err
	}

	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th",
			"thead", "tr":
			return closeCaption(true)
		}
	case endTagToken:
		switch t.TagName {
		case "caption":
			return closeCaption(false)
		case "table":
			return closeCaption(true)
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot",
			"th", "thead", "tr":
			return false, inCaption, generalParseError
		}
	}
	return c.useRulesFor(t, inCaption, inBody)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incolgroup
func (c *HTMLTreeConstructor) inColumnGroupModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceData(t.Data) {
			c.insertCharacter(t)
			return false, inColumnGroup, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, inColumnGroup, noError
	case docTypeToken:
		return false, inColumnGroup, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inColumnGroup, inBody)
		case "col":
			c.insertHTMLElementForToken(t)
			spec.Pop(&c.stackOfOpenElements)
			c.ackSelfClosing = true
			return false, inColumnGroup, noError
		case "template":
			return c.useRulesFor(t, inColumnGroup, inHead)
		}
	case endTagToken:
		switch t.TagName {
		case "colgroup":
			if c.getCurrentNode().NodeName != "colgroup" {
				return false, inColumnGroup, generalParseError
			}
			spec.Pop(&c.stackOfOpenElements)
			return false, inTable, noError
		case "col":
			return false, inColumnGroup, generalParseError
		case "template":
			return c.useRulesFor(t, inColumnGroup, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inColumnGroup, inBody)
	}
	if c.getCurrentNode().NodeName != "colgroup" {
		return false, inColumnGroup, generalParseError
	}
	spec.Pop(&c.stackOfOpenElements)
	return true, inTable, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intbody
func (c *HTMLTreeConstructor) inTableBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "tr":
			c.clearStackBackToTableBodyContext()
			c.insertHTMLElementForToken(t)
			return false, inRow, noError
		case "th", "td":
			c.clearStackBackToTableBodyContext()
			c.insertHTMLElementForToken(synthetic("tr"))
			return true, inRow, generalParseError
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !c.elementInTableScope("tbody") && !c.elementInTableScope("thead") && !c.elementInTableScope("tfoot") {
				return false, inTableBody, generalParseError
			}
			c.clearStackBackToTableBodyContext()
			spec.Pop(&c.stackOfOpenElements)
			return true, inTable, noError
		}
	case endTagToken:
		switch t.TagName {
		case "tbody", "tfoot", "thead":
			if !c.elementInTableScope(webidl.DOMString(t.TagName)) {
				return false, inTableBody, generalParseError
			}
			c.clearStackBackToTableBodyContext()
			spec.Pop(&c.stackOfOpenElements)
			return false, inTable, noError
		case "table":
			if !c.elementInTableScope("tbody") && !c.elementInTableScope("thead") && !c.elementInTableScope("tfoot") {
				return false, inTableBody, generalParseError
			}
			c.clearStackBackToTableBodyContext()
			spec.Pop(&c.stackOfOpenElements)
			return true, inTable, noError
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			return false, inTableBody, generalParseError
		}
	}
	return c.useRulesFor(t, inTableBody, inTable)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intr
func (c *HTMLTreeConstructor) inRowModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "th", "td":
			c.clearStackBackToTableRowContext()
			c.insertHTMLElementForToken(t)
			c.pushMarker()
			return false, inCell, noError
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !c.elementInTableScope("tr") {
				return false, inRow, generalParseError
			}
			c.clearStackBackToTableRowContext()
			spec.Pop(&c.stackOfOpenElements)
			return true, inTableBody, noError
		}
	case endTagToken:
		switch t.TagName {
		case "tr":
			if !c.elementInTableScope("tr") {
				return false, inRow, generalParseError
			}
			c.clearStackBackToTableRowContext()
			spec.Pop(&c.stackOfOpenElements)
			return false, inTableBody, noError
		case "table":
			if !c.elementInTableScope("tr") {
				return false, inRow, generalParseError
			}
			c.clearStackBackToTableRowContext()
			spec.Pop(&c.stackOfOpenElements)
			return true, inTableBody, noError
		case "tbody", "tfoot", "thead":
			if !c.elementInTableScope(webidl.DOMString(t.TagName)) {
				return false, inRow, generalParseError
			}
			if !c.elementInTableScope("tr") {
				return false, inRow, noError
			}
			c.clearStackBackToTableRowContext()
			spec.Pop(&c.stackOfOpenElements)
			return true, inTableBody, noError
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			return false, inRow, generalParseError
		}
	}
	return c.useRulesFor(t, inRow, inTable)
}

func (c *HTMLTreeConstructor) closeCell() parseError {
	err := noError
	c.generateImpliedEndTags()
	switch c.getCurrentNode().NodeName {
	case "td", "th":
	default:
		err = generalParseError
	}
	c.popUntilName("td", "th")
	c.clearActiveFormattingElementsToLastMarker()
	return err
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intd
func (c *HTMLTreeConstructor) inCellModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th",
			"thead", "tr":
			if !c.elementInTableScope("td") && !c.elementInTableScope("th") {
				return false, inCell, generalParseError
			}
			err := c.closeCell()
			return true, inRow, err
		}
	case endTagToken:
		switch t.TagName {
		case "td", "th":
			name := webidl.DOMString(t.TagName)
			if !c.elementInTableScope(name) {
				return false, inCell, generalParseError
			}
			err := noError
			c.generateImpliedEndTags()
			if c.getCurrentNode().NodeName != name {
				err = generalParseError
			}
			c.popUntilName(name)
			c.clearActiveFormattingElementsToLastMarker()
			return false, inRow, err
		case "body", "caption", "col", "colgroup", "html":
			return false, inCell, generalParseError
		case "table", "tbody", "tfoot", "thead", "tr":
			if !c.elementInTableScope(webidl.DOMString(t.TagName)) {
				return false, inCell, generalParseError
			}
			err := c.closeCell()
			return true, inRow, err
		}
	}
	return c.useRulesFor(t, inCell, inBody)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselect
func (c *HTMLTreeConstructor) inSelectModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\u0000" {
			return false, inSelect, generalParseError
		}
		c.insertCharacter(t)
		return false, inSelect, noError
	case commentToken:
		c.insertComment(t)
		return false, inSelect, noError
	case docTypeToken:
		return false, inSelect, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inSelect, inBody)
		case "option":
			if c.getCurrentNode().NodeName == "option" {
				spec.Pop(&c.stackOfOpenElements)
			}
			c.insertHTMLElementForToken(t)
			return false, inSelect, noError
		case "optgroup":
			if c.getCurrentNode().NodeName == "option" {
				spec.Pop(&c.stackOfOpenElements)
			}
			if c.getCurrentNode().NodeName == "optgroup" {
				spec.Pop(&c.stackOfOpenElements)
			}
			c.insertHTMLElementForToken(t)
			return false, inSelect, noError
		case "hr":
			if c.getCurrentNode().NodeName == "option" {
				spec.Pop(&c.stackOfOpenElements)
			}
			if c.getCurrentNode().NodeName == "optgroup" {
				spec.Pop(&c.stackOfOpenElements)
			}
			c.insertHTMLElementForToken(t)
			spec.Pop(&c.stackOfOpenElements)
			c.ackSelfClosing = true
			return false, inSelect, generalParseError
		case "select":
			if !c.elementInSelectScope("select") {
				return false, inSelect, generalParseError
			}
			c.popUntilName("select")
			return false, c.resetInsertionMode(), generalParseError
		case "input", "keygen", "textarea":
			if !c.elementInSelectScope("select") {
				return false, inSelect, generalParseError
			}
			c.popUntilName("select")
			return true, c.resetInsertionMode(), generalParseError
		case "script", "template":
			return c.useRulesFor(t, inSelect, inHead)
		}
	case endTagToken:
		switch t.TagName {
		case "optgroup":
			if c.getCurrentNode().NodeName == "option" && len(c.stackOfOpenElements) > 1 &&
				c.stackOfOpenElements[len(c.stackOfOpenElements)-2].NodeName == "optgroup" {
				spec.Pop(&c.stackOfOpenElements)
			}
			if c.getCurrentNode().NodeName != "optgroup" {
				return false, inSelect, generalParseError
			}
			spec.Pop(&c.stackOfOpenElements)
			return false, inSelect, noError
		case "option":
			if c.getCurrentNode().NodeName != "option" {
				return false, inSelect, generalParseError
			}
			spec.Pop(&c.stackOfOpenElements)
			return false, inSelect, noError
		case "select":
			if !c.elementInSelectScope("select") {
				return false, inSelect, generalParseError
			}
			c.popUntilName("select")
			return false, c.resetInsertionMode(), noError
		case "template":
			return c.useRulesFor(t, inSelect, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inSelect, inBody)
	}
	return false, inSelect, generalParseError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselectintable
func (c *HTMLTreeConstructor) inSelectInTableModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			c.popUntilName("select")
			return true, c.resetInsertionMode(), generalParseError
		}
	case endTagToken:
		switch t.TagName {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			if !c.elementInTableScope(webidl.DOMString(t.TagName)) {
				return false, inSelectInTable, generalParseError
			}
			c.popUntilName("select")
			return true, c.resetInsertionMode(), generalParseError
		}
	}
	return c.useRulesFor(t, inSelectInTable, inSelect)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intemplate
func (c *HTMLTreeConstructor) inTemplateModeHandler(t *Token) (bool, insertionMode, parseError) {
	redispatch := func(mode insertionMode) (bool, insertionMode, parseError) {
		c.templateInsertionModes = c.templateInsertionModes[:len(c.templateInsertionModes)-1]
		c.templateInsertionModes = append(c.templateInsertionModes, mode)
		return true, mode, noError
	}

	switch t.TokenType {
	case characterToken, commentToken, docTypeToken:
		return c.useRulesFor(t, inTemplate, inBody)
	case startTagToken:
		switch t.TagName {
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title":
			return c.useRulesFor(t, inTemplate, inHead)
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			return redispatch(inTable)
		case "col":
			return redispatch(inColumnGroup)
		case "tr":
			return redispatch(inTableBody)
		case "td", "th":
			return redispatch(inRow)
		}
		return redispatch(inBody)
	case endTagToken:
		if t.TagName == "template" {
			return c.useRulesFor(t, inTemplate, inHead)
		}
		return false, inTemplate, generalParseError
	case endOfFileToken:
		if !c.containsOpenElement("template") {
			return false, inTemplate, noError
		}
		c.popUntilName("template")
		c.clearActiveFormattingElementsToLastMarker()
		c.templateInsertionModes = c.templateInsertionModes[:len(c.templateInsertionModes)-1]
		return true, c.resetInsertionMode(), generalParseError
	}
	return false, inTemplate, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterbody
func (c *HTMLTreeConstructor) afterBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceData(t.Data) {
			return c.useRulesFor(t, afterBody, inBody)
		}
	case commentToken:
		c.insertCommentAt(t, c.stackOfOpenElements[0])
		return false, afterBody, noError
	case docTypeToken:
		return false, afterBody, generalParseError
	case startTagToken:
		if t.TagName == "html" {
			return c.useRulesFor(t, afterBody, inBody)
		}
	case endTagToken:
		if t.TagName == "html" {
			if c.context != nil {
				return false, afterBody, generalParseError
			}
			return false, afterAfterBody, noError
		}
	case endOfFileToken:
		return false, afterBody, noError
	}
	return true, inBody, generalParseError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inframeset
func (c *HTMLTreeConstructor) inFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceData(t.Data) {
			c.insertCharacter(t)
			return false, inFrameset, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, inFrameset, noError
	case docTypeToken:
		return false, inFrameset, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inFrameset, inBody)
		case "frameset":
			c.insertHTMLElementForToken(t)
			return false, inFrameset, noError
		case "frame":
			c.insertHTMLElementForToken(t)
			spec.Pop(&c.stackOfOpenElements)
			c.ackSelfClosing = true
			return false, inFrameset, noError
		case "noframes":
			return c.useRulesFor(t, inFrameset, inHead)
		}
	case endTagToken:
		if t.TagName == "frameset" {
			if c.getCurrentNode().NodeName == "html" {
				return false, inFrameset, generalParseError
			}
			spec.Pop(&c.stackOfOpenElements)
			if c.context == nil && c.getCurrentNode().NodeName != "frameset" {
				return false, afterFrameset, noError
			}
			return false, inFrameset, noError
		}
	case endOfFileToken:
		if c.getCurrentNode().NodeName != "html" {
			return false, inFrameset, generalParseError
		}
		return false, inFrameset, noError
	}
	return false, inFrameset, generalParseError
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterframeset
func (c *HTMLTreeConstructor) afterFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceData(t.Data) {
			c.insertCharacter(t)
			return false, afterFrameset, noError
		}
	case commentToken:
		c.insertComment(t)
		return false, afterFrameset, noError
	case docTypeToken:
		return false, afterFrameset, generalParseError
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, afterFrameset, inBody)
		case "noframes":
			return c.useRulesFor(t, afterFrameset, inHead)
		}
	case endTagToken:
		if t.TagName == "html" {
			return false, afterAfterFrameset, noError
		}
	case endOfFileToken:
		return false, afterFrameset, noError
	}
	return false, afterFrameset, generalParseError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-body-insertion-mode
func (c *HTMLTreeConstructor) afterAfterBodyModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case commentToken:
		c.insertCommentAt(t, c.HTMLDocument)
		return false, afterAfterBody, noError
	case docTypeToken:
		return c.useRulesFor(t, afterAfterBody, inBody)
	case characterToken:
		if isWhitespaceData(t.Data) {
			return c.useRulesFor(t, afterAfterBody, inBody)
		}
	case startTagToken:
		if t.TagName == "html" {
			return c.useRulesFor(t, afterAfterBody, inBody)
		}
	case endOfFileToken:
		return false, afterAfterBody, noError
	}
	return true, inBody, generalParseError
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-frameset-insertion-mode
func (c *HTMLTreeConstructor) afterAfterFramesetModeHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case commentToken:
		c.insertCommentAt(t, c.HTMLDocument)
		return false, afterAfterFrameset, noError
	case docTypeToken:
		return c.useRulesFor(t, afterAfterFrameset, inBody)
	case characterToken:
		if isWhitespaceData(t.Data) {
			return c.useRulesFor(t, afterAfterFrameset, inBody)
		}
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, afterAfterFrameset, inBody)
		case "noframes":
			return c.useRulesFor(t, afterAfterFrameset, inHead)
		}
	case endOfFileToken:
		return false, afterAfterFrameset, noError
	}
	return false, afterAfterFrameset, generalParseError
}

type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoScript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inSelectInTable
	inTemplate
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

var insertionModeNames = [...]string{
	"initial", "before html", "before head", "in head", "in head noscript",
	"after head", "in body", "text", "in table", "in table text",
	"in caption", "in column group", "in table body", "in row", "in cell",
	"in select", "in select in table", "in template", "after body",
	"in frameset", "after frameset", "after after body",
	"after after frameset",
}

func (m insertionMode) String() string {
	if int(m) < len(insertionModeNames) {
		return insertionModeNames[m]
	}
	return "unknown"
}

type treeConstructionModeHandler func(t *Token) (bool, insertionMode, parseError)
