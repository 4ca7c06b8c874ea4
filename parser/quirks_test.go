package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func doctype(name, publicID, systemID string, forceQuirks bool) *Token {
	return &Token{
		TokenType:        docTypeToken,
		TagName:          name,
		PublicIdentifier: publicID,
		SystemIdentifier: systemID,
		ForceQuirks:      forceQuirks,
	}
}

func TestClassifyDoctype(t *testing.T) {
	tests := []struct {
		name string
		in   *Token
		want quirksMode
	}{
		{"standard", doctype("html", missing, missing, false), noQuirks},
		{"force quirks flag", doctype("html", missing, missing, true), quirks},
		{"wrong name", doctype("HTML4", missing, missing, false), quirks},
		{"missing name", doctype(missing, missing, missing, false), quirks},
		{"public id html", doctype("html", "HTML", missing, false), quirks},
		{"legacy 3.2 prefix", doctype("html", "-//W3C//DTD HTML 3.2 Final//EN", missing, false), quirks},
		{"prefix match is case-insensitive", doctype("html", "-//w3c//dtd html 3.2 final//en", missing, false), quirks},
		{"4.01 transitional without system id", doctype("html", "-//W3C//DTD HTML 4.01 Transitional//EN", missing, false), quirks},
		{"4.01 transitional with system id", doctype("html", "-//W3C//DTD HTML 4.01 Transitional//EN", "http://www.w3.org/TR/html4/loose.dtd", false), limitedQuirks},
		{"xhtml transitional", doctype("html", "-//W3C//DTD XHTML 1.0 Transitional//EN", missing, false), limitedQuirks},
		{"ibm system id", doctype("html", missing, "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd", false), quirks},
		{"legacy compat", doctype("html", missing, "about:legacy-compat", false), noQuirks},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyDoctype(tt.in))
		})
	}
}

func TestQuirksModeString(t *testing.T) {
	assert.Equal(t, "no-quirks", noQuirks.String())
	assert.Equal(t, "quirks", quirks.String())
	assert.Equal(t, "limited-quirks", limitedQuirks.String())
}
