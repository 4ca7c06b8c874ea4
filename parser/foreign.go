package parser

import (
	"strings"

	"github.com/refhtml/refhtml/parser/spec"
)

// https://html.spec.whatwg.org/multipage/parsing.html#mathml-text-integration-point
func isMathMLTextIntegrationPoint(n *spec.Node) bool {
	if n.Namespace != spec.Mathmlns {
		return false
	}
	switch n.NodeName {
	case "mi", "mo", "mn", "ms", "mtext":
		return true
	}
	return false
}

// https://html.spec.whatwg.org/multipage/parsing.html#html-integration-point
func isHTMLIntegrationPoint(n *spec.Node) bool {
	if n.Namespace == spec.Mathmlns && n.NodeName == "annotation-xml" {
		enc, ok := n.Attributes.Get("encoding")
		if !ok {
			return false
		}
		lowered := strings.ToLower(string(enc))
		return lowered == "text/html" || lowered == "application/xhtml+xml"
	}
	if n.Namespace == spec.Svgns {
		switch n.NodeName {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

// https://html.spec.whatwg.org/multipage/parsing.html#tree-construction-dispatcher
func (c *HTMLTreeConstructor) useForeignContentRules(t *Token) bool {
	if len(c.stackOfOpenElements) == 0 {
		return false
	}
	acn := c.adjustedCurrentNode()
	if acn == nil || acn.Namespace == "" || acn.Namespace == spec.Htmlns {
		return false
	}
	if t.TokenType == endOfFileToken {
		return false
	}
	if isMathMLTextIntegrationPoint(acn) {
		if t.TokenType == startTagToken && t.TagName != "mglyph" && t.TagName != "malignmark" {
			return false
		}
		if t.TokenType == characterToken {
			return false
		}
	}
	if acn.Namespace == spec.Mathmlns && acn.NodeName == "annotation-xml" &&
		t.TokenType == startTagToken && t.TagName == "svg" {
		return false
	}
	if isHTMLIntegrationPoint(acn) &&
		(t.TokenType == startTagToken || t.TokenType == characterToken) {
		return false
	}
	return true
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inforeign
func isForeignBreakout(t *Token) bool {
	switch t.TagName {
	case "b", "big", "blockquote", "body", "br", "center", "code", "dd",
		"div", "dl", "dt", "em", "embed", "h1", "h2", "h3", "h4", "h5",
		"h6", "head", "hr", "i", "img", "li", "listing", "menu", "meta",
		"nobr", "ol", "p", "pre", "ruby", "s", "small", "span", "strong",
		"strike", "sub", "sup", "table", "tt", "u", "ul", "var":
		return true
	case "font":
		for _, attr := range t.Attributes {
			switch attr.Name {
			case "color", "face", "size":
				return true
			}
		}
	}
	return false
}

func (c *HTMLTreeConstructor) popToForeignContentBoundary() {
	for {
		cur := c.getCurrentNode()
		if cur == nil || cur.Namespace == spec.Htmlns ||
			isMathMLTextIntegrationPoint(cur) || isHTMLIntegrationPoint(cur) {
			return
		}
		spec.Pop(&c.stackOfOpenElements)
	}
}

func (c *HTMLTreeConstructor) foreignContentHandler(t *Token) (bool, insertionMode, parseError) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\u0000" {
			rep := *t
			rep.Data = "�"
			c.insertCharacter(&rep)
			return false, c.curMode, parseError(errUnexpectedNullCharacter)
		}
		c.insertCharacter(t)
		if !isWhitespaceData(t.Data) {
			c.frameset = framesetNotOK
		}
		return false, c.curMode, noError
	case commentToken:
		c.insertComment(t)
		return false, c.curMode, noError
	case docTypeToken:
		return false, c.curMode, generalParseError
	case startTagToken:
		err := noError
		if isForeignBreakout(t) {
			err = generalParseError
			if c.context == nil {
				c.popToForeignContentBoundary()
				return true, c.curMode, err
			}
		}
		acn := c.adjustedCurrentNode()
		ns := acn.Namespace
		adj := *t
		adj.Attributes = append([]Attribute(nil), t.Attributes...)
		switch ns {
		case spec.Mathmlns:
			adjustMathMLAttributes(&adj)
		case spec.Svgns:
			adjustSVGTagName(&adj)
			adjustSVGAttributes(&adj)
		}
		c.insertForeignElementForToken(&adj, ns)
		if t.SelfClosing {
			spec.Pop(&c.stackOfOpenElements)
			c.ackSelfClosing = true
		}
		return false, c.curMode, err
	case endTagToken:
		if t.TagName == "br" || t.TagName == "p" {
			c.popToForeignContentBoundary()
			return true, c.curMode, generalParseError
		}
		err := noError
		cur := c.getCurrentNode()
		if strings.ToLower(string(cur.NodeName)) != t.TagName {
			err = generalParseError
		}
		for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
			node := c.stackOfOpenElements[i]
			if i == 0 {
				// fragment case
				return false, c.curMode, err
			}
			if strings.ToLower(string(node.NodeName)) == t.TagName {
				c.popUntilNode(node)
				return false, c.curMode, err
			}
			if c.stackOfOpenElements[i-1].Namespace == spec.Htmlns {
				reprocess, nextMode, modeErr := c.mappings[c.curMode](t)
				if err == noError {
					err = modeErr
				}
				return reprocess, nextMode, err
			}
		}
		return false, c.curMode, err
	}
	return false, c.curMode, noError
}

// https://html.spec.whatwg.org/multipage/parsing.html#adjust-mathml-attributes
func adjustMathMLAttributes(t *Token) {
	for i := range t.Attributes {
		if t.Attributes[i].Name == "definitionurl" {
			t.Attributes[i].Name = "definitionURL"
		}
	}
}

var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

func adjustSVGTagName(t *Token) {
	if adjusted, ok := svgTagNameAdjustments[t.TagName]; ok {
		t.TagName = adjusted
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#adjust-svg-attributes
var svgAttrAdjustments = map[string]string{
	"attributename":             "attributeName",
	"attributetype":             "attributeType",
	"basefrequency":             "baseFrequency",
	"baseprofile":               "baseProfile",
	"calcmode":                  "calcMode",
	"clippathunits":             "clipPathUnits",
	"diffuseconstant":           "diffuseConstant",
	"edgemode":                  "edgeMode",
	"filterunits":               "filterUnits",
	"glyphref":                  "glyphRef",
	"gradienttransform":         "gradientTransform",
	"gradientunits":             "gradientUnits",
	"kernelmatrix":              "kernelMatrix",
	"kernelunitlength":          "kernelUnitLength",
	"keypoints":                 "keyPoints",
	"keysplines":                "keySplines",
	"keytimes":                  "keyTimes",
	"lengthadjust":              "lengthAdjust",
	"limitingconeangle":         "limitingConeAngle",
	"markerheight":              "markerHeight",
	"markerunits":               "markerUnits",
	"markerwidth":               "markerWidth",
	"maskcontentunits":          "maskContentUnits",
	"maskunits":                 "maskUnits",
	"numoctaves":                "numOctaves",
	"pathlength":                "pathLength",
	"patterncontentunits":       "patternContentUnits",
	"patterntransform":          "patternTransform",
	"patternunits":              "patternUnits",
	"pointsatx":                 "pointsAtX",
	"pointsaty":                 "pointsAtY",
	"pointsatz":                 "pointsAtZ",
	"preservealpha":             "preserveAlpha",
	"preserveaspectratio":       "preserveAspectRatio",
	"primitiveunits":            "primitiveUnits",
	"refx":                      "refX",
	"refy":                      "refY",
	"repeatcount":               "repeatCount",
	"repeatdur":                 "repeatDur",
	"requiredextensions":        "requiredExtensions",
	"requiredfeatures":          "requiredFeatures",
	"specularconstant":          "specularConstant",
	"specularexponent":          "specularExponent",
	"spreadmethod":              "spreadMethod",
	"startoffset":               "startOffset",
	"stddeviation":              "stdDeviation",
	"stitchtiles":               "stitchTiles",
	"surfacescale":              "surfaceScale",
	"systemlanguage":            "systemLanguage",
	"tablevalues":               "tableValues",
	"targetx":                   "targetX",
	"targety":                   "targetY",
	"textlength":                "textLength",
	"viewbox":                   "viewBox",
	"viewtarget":                "viewTarget",
	"xchannelselector":          "xChannelSelector",
	"ychannelselector":          "yChannelSelector",
	"zoomandpan":                "zoomAndPan",
}

func adjustSVGAttributes(t *Token) {
	for i := range t.Attributes {
		if adjusted, ok := svgAttrAdjustments[t.Attributes[i].Name]; ok {
			t.Attributes[i].Name = adjusted
		}
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#adjust-foreign-attributes
//
// Runs on the built element rather than the token so the namespace ends up
// on the attribute node.
func adjustForeignAttributes(elem *spec.Node) {
	for _, attr := range elem.Attributes {
		switch attr.Name {
		case "xlink:actuate", "xlink:arcrole", "xlink:href", "xlink:role",
			"xlink:show", "xlink:title", "xlink:type":
			attr.Namespace = spec.Xlinkns
			attr.Name = attr.Name[len("xlink:"):]
		case "xml:lang", "xml:space":
			attr.Namespace = spec.Xmlns
			attr.Name = attr.Name[len("xml:"):]
		case "xmlns":
			attr.Namespace = spec.Xmlnsns
		case "xmlns:xlink":
			attr.Namespace = spec.Xmlnsns
			attr.Name = "xlink"
		}
	}
}
