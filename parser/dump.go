package parser

import (
	"fmt"
	"strings"

	"github.com/refhtml/refhtml/parser/spec"
)

// EscapeText renders control characters visibly: the common ones as short
// escapes, the rest of C0 and C1 plus DEL as \u{xx}.
func EscapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f) {
				fmt.Fprintf(&b, `\u{%02x}`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func dumpOptional(value string) string {
	if value == missing {
		return "None"
	}
	return fmt.Sprintf("Some(\"%s\")", EscapeText(value))
}

// DumpTokens renders one token per line.
func DumpTokens(tokens []Token) string {
	var b strings.Builder
	for i := range tokens {
		t := &tokens[i]
		switch t.TokenType {
		case startTagToken:
			attrs := make([]string, len(t.Attributes))
			for j, a := range t.Attributes {
				attrs[j] = fmt.Sprintf("{name: \"%s\", value: \"%s\"}", EscapeText(a.Name), EscapeText(a.Value))
			}
			fmt.Fprintf(&b, "StartTag(name=\"%s\", attrs=[%s], self_closing=%t)\n",
				EscapeText(t.TagName), strings.Join(attrs, ", "), t.SelfClosing)
		case endTagToken:
			fmt.Fprintf(&b, "EndTag(name=\"%s\")\n", EscapeText(t.TagName))
		case characterToken:
			fmt.Fprintf(&b, "Character('%s')\n", EscapeText(t.Data))
		case commentToken:
			fmt.Fprintf(&b, "Comment(\"%s\")\n", EscapeText(t.Data))
		case docTypeToken:
			fmt.Fprintf(&b, "DOCTYPE(name=%s, public_id=%s, system_id=%s, force_quirks=%t)\n",
				dumpOptional(t.TagName), dumpOptional(t.PublicIdentifier),
				dumpOptional(t.SystemIdentifier), t.ForceQuirks)
		case endOfFileToken:
			b.WriteString("EOF\n")
		}
	}
	return b.String()
}

// DumpTree renders the document in the html5lib tree format.
func DumpTree(doc *spec.Node) string {
	return doc.String()
}
