package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/refhtml/refhtml/parser/spec"
	"github.com/refhtml/refhtml/parser/webidl"
)

type treeTest struct {
	in       string
	fragment *spec.Node // context element, nil for document parses
	expected string
}

// parseTreeTests reads an html5lib-format .dat file: #data, #errors,
// optional #document-fragment with the context element name on the next
// line, then the #document dump.
func parseTreeTests(t *testing.T, path string) []treeTest {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var tests []treeTest
	for i, chunk := range strings.Split(string(data), "#data\n") {
		if i == 0 {
			continue
		}
		lines := strings.Split(chunk, "\n")
		test := treeTest{}
		for _, line := range lines {
			if line == "#errors" || line == "#document" || line == "#document-fragment" {
				break
			}
			test.in += line + "\n"
		}
		test.in = strings.TrimSuffix(test.in, "\n")
		for j, line := range lines {
			switch line {
			case "#document-fragment":
				test.fragment = spec.NewDOMElement(nil, webidl.DOMString(lines[j+1]))
			case "#document":
				expected := []string{"#document"}
				for _, l := range lines[j+1:] {
					if l == "" {
						continue
					}
					expected = append(expected, l)
				}
				test.expected = strings.Join(expected, "\n")
			}
		}
		tests = append(tests, test)
	}
	return tests
}

func TestTreeConstruction(t *testing.T) {
	paths, err := filepath.Glob("testdata/tree/*.dat")
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, path := range paths {
		for _, test := range parseTreeTests(t, path) {
			test := test
			t.Run(test.in, func(t *testing.T) {
				t.Parallel()
				var got string
				if test.fragment != nil {
					nodes, _ := ParseFragment(test.fragment, test.in)
					doc := spec.NewDocumentNode()
					for _, n := range nodes {
						doc.AppendChild(n)
					}
					got = doc.String()
				} else {
					doc, _ := Parse(test.in)
					got = DumpTree(doc)
				}
				require.Equal(t, test.expected, got)
			})
		}
	}
}

func TestQuirksModeRecordedOnDocument(t *testing.T) {
	tests := []struct {
		in   string
		mode string
	}{
		{"<!DOCTYPE html><p>x", "no-quirks"},
		{"<p>x", "quirks"},
		{"<!DOCTYPE html PUBLIC \"-//W3C//DTD HTML 3.2 Final//EN\">", "quirks"},
		{"<!DOCTYPE html PUBLIC \"-//W3C//DTD XHTML 1.0 Frameset//EN\">", "limited-quirks"},
		{"<!DOCTYPE html SYSTEM \"about:legacy-compat\">", "no-quirks"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			doc, _ := Parse(tt.in)
			require.NotNil(t, doc.Document)
			require.Equal(t, webidl.DOMString(tt.mode), doc.Document.CompatMode)
		})
	}
}

// The newline right after pre and textarea start tags is dropped.
func TestLeadingNewlineSkipped(t *testing.T) {
	doc, _ := Parse("<pre>\nkeep\n</pre>")
	s := DumpTree(doc)
	require.Contains(t, s, "\"keep\n\"")
	require.NotContains(t, s, "\"\nkeep")
}

func TestForeignAttributeNamespaces(t *testing.T) {
	doc, _ := Parse(`<svg xlink:href="#a" xml:lang="en"></svg>`)
	s := DumpTree(doc)
	require.Contains(t, s, `xlink href="#a"`)
	require.Contains(t, s, `xml lang="en"`)
}

func TestTemplateContentsStayOutOfDocument(t *testing.T) {
	doc, _ := Parse("<template><td>x</td></template>ok")
	s := DumpTree(doc)
	require.Contains(t, s, "<template>")
	require.Contains(t, s, "\"ok\"")
}

// Twelve nested identical b start tags keep only three entries on the
// active formatting list, and the misnested a end tag resolves in two
// adoption passes: one relocating the p, one popping the clone.
func TestAdoptionAgencyDeepFormattingNesting(t *testing.T) {
	doc, _ := Parse(strings.Repeat("<b>", 12) + "<a><p>one</a>two</p>")

	var want strings.Builder
	want.WriteString("| <html>\n|   <head>\n|   <body>\n")
	indent := 4
	for i := 0; i < 12; i++ {
		want.WriteString("| " + strings.Repeat(" ", indent) + "<b>\n")
		indent += 2
	}
	want.WriteString("| " + strings.Repeat(" ", indent) + "<a>\n")
	want.WriteString("| " + strings.Repeat(" ", indent) + "<p>\n")
	want.WriteString("| " + strings.Repeat(" ", indent+2) + "<a>\n")
	want.WriteString("| " + strings.Repeat(" ", indent+4) + "\"one\"\n")
	want.WriteString("| " + strings.Repeat(" ", indent+2) + "\"two\"")

	require.Equal(t, want.String(), DumpTree(doc))
}

// A b end tag over ten nested divs peels one div per adoption pass and
// gives up after eight, leaving the last two divs inside the final clone.
// A higher pass bound would unwrap all ten.
func TestAdoptionAgencyIterationBound(t *testing.T) {
	doc, _ := Parse("<b>" + strings.Repeat("<div>", 10) + "one</b>two")
	require.NotNil(t, doc)

	pad := func(n int) string { return "| " + strings.Repeat(" ", n) }
	var want strings.Builder
	want.WriteString("| <html>\n|   <head>\n|   <body>\n")
	ind := 4
	want.WriteString(pad(ind) + "<b>\n" + pad(ind) + "<div>\n")
	for k := 2; k <= 8; k++ {
		ind += 2
		want.WriteString(pad(ind) + "<b>\n" + pad(ind) + "<div>\n")
	}
	ind += 2
	want.WriteString(pad(ind) + "<b>\n")
	ind += 2
	want.WriteString(pad(ind) + "<div>\n")
	ind += 2
	want.WriteString(pad(ind) + "<div>\n")
	ind += 2
	want.WriteString(pad(ind) + "\"onetwo\"")

	require.Equal(t, want.String(), DumpTree(doc))
}
