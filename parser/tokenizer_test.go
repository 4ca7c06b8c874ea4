package parser

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenizerAttributeAccuracyTestcase struct {
	inHTML string            // snippet of HTML to tokenize (should only be one element)
	attrs  map[string]string // expected attributes on the first emitted token
}

var tokenizerAttributeAccuracyTests = []tokenizerAttributeAccuracyTestcase{
	{"<head></head>", map[string]string{}},
	{"<script src='123' onload='test'></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<a href='https://example.com' onclick='alert(1)'>Click this</a>", map[string]string{
		"href":    "https://example.com",
		"onclick": "alert(1)",
	}},
	{"<script src='123' src='456'></script>", map[string]string{
		"src": "123",
	}},
	{"<script src=123 onload=test></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script src='123' onload='test' ></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script =src='123'onload='test' ></script>", map[string]string{
		"=src":   "123",
		"onload": "test",
	}},
	{"<script src></script>", map[string]string{
		"src": "",
	}},
	{"<script src test></script>", map[string]string{
		"src":  "",
		"test": "",
	}},
	{"<script 'asd></script>", map[string]string{
		"'asd": "",
	}},
	{"<script <asd></script>", map[string]string{
		"<asd": "",
	}},
	{"<script ABC=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<script abc='\u0000123'></script>", map[string]string{
		"abc": "�123",
	}},
	{"<script abc=></script>", map[string]string{
		"abc": "",
	}},
	{"<script\tabc=123></script>", map[string]string{
		"abc": "123",
	}},
}

// TestTokenizerAttributeAccuracy makes sure the first emitted start tag
// carries exactly the expected attribute names and values.
func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range tokenizerAttributeAccuracyTests {
		tt := tt
		t.Run(tt.inHTML, func(t *testing.T) {
			t.Parallel()
			tokens, _ := Tokenize(tt.inHTML)
			require.NotEmpty(t, tokens)
			tag := tokens[0]
			require.Equal(t, startTagToken, tag.TokenType)
			assert.Len(t, tag.Attributes, len(tt.attrs))
			for k, v := range tt.attrs {
				got, ok := tag.AttrValue(k)
				require.Truef(t, ok, "expected to find attribute %q", k)
				assert.Equal(t, v, got)
			}
		})
	}
}

func TestTokenizerDuplicateAttributeError(t *testing.T) {
	_, errs := Tokenize("<script src='123' src='456'></script>")
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	assert.Contains(t, codes, errDuplicateAttribute)
}

func TestDoctypeTokens(t *testing.T) {
	tests := []struct {
		in          string
		name        string
		publicID    string
		systemID    string
		forceQuirks bool
	}{
		{"<!DOCTYPE html>", "html", missing, missing, false},
		{"<!doctype HTML>", "html", missing, missing, false},
		{"<!DOCTYPE>", missing, missing, missing, true},
		{"<!DOCTYPE html PUBLIC \"-//W3C//DTD HTML 4.01//EN\">", "html", "-//W3C//DTD HTML 4.01//EN", missing, false},
		{"<!DOCTYPE html SYSTEM \"about:legacy-compat\">", "html", missing, "about:legacy-compat", false},
		{"<!DOCTYPE html PUBLIC \"a\" \"b\">", "html", "a", "b", false},
		{"<!DOCTYPE", missing, missing, missing, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			tokens, _ := Tokenize(tt.in)
			require.NotEmpty(t, tokens)
			doctype := tokens[0]
			require.Equal(t, docTypeToken, doctype.TokenType)
			assert.Equal(t, tt.name, doctype.TagName)
			assert.Equal(t, tt.publicID, doctype.PublicIdentifier)
			assert.Equal(t, tt.systemID, doctype.SystemIdentifier)
			assert.Equal(t, tt.forceQuirks, doctype.ForceQuirks)
		})
	}
}

func characterData(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.TokenType == characterToken {
			b.WriteString(tok.Data)
		}
	}
	return b.String()
}

func TestCharacterReferences(t *testing.T) {
	tests := []struct{ in, out string }{
		{"&amp;", "&"},
		{"&amp", "&"},
		{"&AMP", "&"},
		{"&notin;", "∉"},
		{"&not;in;", "¬in;"},
		{"&notit;", "¬it;"},
		{"&#65;", "A"},
		{"&#x41;", "A"},
		{"&#X41;", "A"},
		{"&#x80;", "€"},
		{"&#0;", "�"},
		{"&unknown;", "&unknown;"},
		{"a&b", "a&b"},
		{"&", "&"},
		{"&#", "&#"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			tokens, _ := Tokenize(tt.in)
			assert.Equal(t, tt.out, characterData(tokens))
		})
	}
}

// Legacy named references are not expanded in attribute values when the
// next character is alphanumeric or an equals sign.
func TestCharacterReferencesInAttributes(t *testing.T) {
	tests := []struct{ in, attr, out string }{
		{`<a href="?a=1&copy=2">`, "href", "?a=1&copy=2"},
		{`<a href="x&amp;y">`, "href", "x&y"},
		{`<a href="x&copy;y">`, "href", "x©y"},
		{`<a href="x&copy!">`, "href", "x©!"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			tokens, _ := Tokenize(tt.in)
			require.NotEmpty(t, tokens)
			got, ok := tokens[0].AttrValue(tt.attr)
			require.True(t, ok)
			assert.Equal(t, tt.out, got)
		})
	}
}

func TestTokenizerNewlineNormalization(t *testing.T) {
	tokens, _ := Tokenize("a\r\nb\rc")
	assert.Equal(t, "a\nb\nc", characterData(tokens))
}

func TestTokenizerEmitsEOF(t *testing.T) {
	tokens, _ := Tokenize("")
	require.Len(t, tokens, 1)
	assert.Equal(t, endOfFileToken, tokens[0].TokenType)
}

func TestSelfClosingFlag(t *testing.T) {
	tokens, _ := Tokenize("<br/>")
	require.NotEmpty(t, tokens)
	assert.Equal(t, startTagToken, tokens[0].TokenType)
	assert.True(t, tokens[0].SelfClosing)
}

func TestCommentTokens(t *testing.T) {
	tests := []struct{ in, data string }{
		{"<!--x-->", "x"},
		{"<!---->", ""},
		{"<!-- a - b -->", " a - b "},
		{"<!--x--!>", "x"},
		{"<?php ?>", "?php ?"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			tokens, _ := Tokenize(tt.in)
			require.NotEmpty(t, tokens)
			require.Equal(t, commentToken, tokens[0].TokenType)
			assert.Equal(t, tt.data, tokens[0].Data)
		})
	}
}

func TestParseErrorPositions(t *testing.T) {
	_, errs := Tokenize("<div\u0000>")
	require.NotEmpty(t, errs)
	var found *ParseError
	for i := range errs {
		if errs[i].Code == errUnexpectedNullCharacter {
			found = &errs[i]
			break
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 1, found.Line)
	assert.Greater(t, found.Col, 1)
}

// TestParseRandomInputNoPanic throws structured noise at the full pipeline
// and only requires that a document comes back.
func TestParseRandomInputNoPanic(t *testing.T) {
	alphabet := []rune("<>/=!&;#\"' \t\nabcdivtable-\u0000é")
	rnd := rand.New(rand.NewSource(0x5eed))
	for i := 0; i < 1000; i++ {
		var b strings.Builder
		for j, n := 0, rnd.Intn(80); j < n; j++ {
			b.WriteRune(alphabet[rnd.Intn(len(alphabet))])
		}
		in := b.String()
		doc, _ := Parse(in)
		require.NotNilf(t, doc, "input %q", in)
	}
}
