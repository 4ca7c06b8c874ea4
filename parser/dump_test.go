package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeText(t *testing.T) {
	tests := []struct{ in, out string }{
		{"plain", "plain"},
		{`back\slash`, `back\\slash`},
		{`say "hi"`, `say \"hi\"`},
		{"a\nb\tc\rd", `a\nb\tc\rd`},
		{"\x01", `\u{01}`},
		{"\x0b", `\u{0b}`},
		{"\x1f", `\u{1f}`},
		{"\x7f", `\u{7f}`},
		{"\u009f", `\u{9f}`},
		{" ok", " ok"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, EscapeText(tt.in))
	}
}

func TestDumpTokens(t *testing.T) {
	tokens, _ := Tokenize("<a x=1>y</a>")
	got := DumpTokens(tokens)
	want := "StartTag(name=\"a\", attrs=[{name: \"x\", value: \"1\"}], self_closing=false)\n" +
		"Character('y')\n" +
		"EndTag(name=\"a\")\n" +
		"EOF\n"
	assert.Equal(t, want, got)
}

func TestDumpDoctypeToken(t *testing.T) {
	tokens, _ := Tokenize("<!DOCTYPE html>")
	require.NotEmpty(t, tokens)
	got := DumpTokens(tokens[:1])
	assert.Equal(t, "DOCTYPE(name=Some(\"html\"), public_id=None, system_id=None, force_quirks=false)\n", got)
}

func TestDumpSelfClosing(t *testing.T) {
	tokens, _ := Tokenize("<br/>")
	got := DumpTokens(tokens[:1])
	assert.Equal(t, "StartTag(name=\"br\", attrs=[], self_closing=true)\n", got)
}

func TestDumpTreeMatchesNodeString(t *testing.T) {
	doc, _ := Parse("<p>x")
	assert.Equal(t, doc.String(), DumpTree(doc))
}
