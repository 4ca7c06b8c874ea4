package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharRefTableShape(t *testing.T) {
	assert.Greater(t, longestCharRefName, 0)
	for name, expansion := range charRefTable {
		assert.NotEmptyf(t, expansion, "empty expansion for %q", name)
		assert.LessOrEqualf(t, len(name), longestCharRefName, "name %q longer than recorded max", name)
		trimmed := strings.TrimSuffix(name, ";")
		for _, r := range trimmed {
			assert.Truef(t, isASCIIAlnum(r), "name %q is not alphanumeric", name)
		}
	}
}

// Every legacy (semicolonless) entry must also exist with the semicolon;
// max-munch matching depends on that.
func TestLegacyCharRefsHaveSemicolonForms(t *testing.T) {
	for name := range charRefTable {
		if strings.HasSuffix(name, ";") {
			continue
		}
		_, ok := charRefTable[name+";"]
		assert.Truef(t, ok, "legacy ref %q has no %q", name, name+";")
	}
}

func TestNumericCharRefReplacements(t *testing.T) {
	assert.Equal(t, '€', numericCharRefReplacements[0x80])
	assert.Equal(t, 'Ÿ', numericCharRefReplacements[0x9f])
	_, ok := numericCharRefReplacements[0x81]
	assert.False(t, ok)
}

func TestIsNoncharacter(t *testing.T) {
	assert.True(t, isNoncharacter(0xFDD0))
	assert.True(t, isNoncharacter(0xFDEF))
	assert.True(t, isNoncharacter(0xFFFE))
	assert.True(t, isNoncharacter(0x10FFFF))
	assert.False(t, isNoncharacter(0xFDCF))
	assert.False(t, isNoncharacter('a'))
}
