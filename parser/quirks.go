package parser

import "strings"

// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
//
// Public identifier prefixes that force quirks mode regardless of the
// system identifier.
var quirksPublicIDPrefixes = []string{
	"+//silmaril//dtd html pro v0r11 19970101//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0 level 1//",
	"-//ietf//dtd html 2.0 level 2//",
	"-//ietf//dtd html 2.0 strict level 1//",
	"-//ietf//dtd html 2.0 strict level 2//",
	"-//ietf//dtd html 2.0 strict//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2 final//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict level 0//",
	"-//ietf//dtd html strict level 1//",
	"-//ietf//dtd html strict level 2//",
	"-//ietf//dtd html strict level 3//",
	"-//ietf//dtd html strict//",
	"-//ietf//dtd html//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//",
	"-//sq//dtd html 2.0 hotmetal + extensions//",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//sun microsystems corp.//dtd hotjava strict html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd html experimental 19960712//",
	"-//w3c//dtd html experimental 970421//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

var quirksPublicIDs = []string{
	"-//w3o//dtd w3 html strict 3.0//en//",
	"-/w3c/dtd html 4.0 transitional/en",
	"html",
}

// Public identifier prefixes that only force quirks when no system
// identifier was given; with one present they yield limited-quirks.
var quirksWhenNoSystemIDPrefixes = []string{
	"-//w3c//dtd html 4.01 frameset//",
	"-//w3c//dtd html 4.01 transitional//",
}

var limitedQuirksPublicIDPrefixes = []string{
	"-//w3c//dtd xhtml 1.0 frameset//",
	"-//w3c//dtd xhtml 1.0 transitional//",
}

const quirksSystemID = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"

type quirksMode int

const (
	noQuirks quirksMode = iota
	quirks
	limitedQuirks
)

func (q quirksMode) String() string {
	switch q {
	case quirks:
		return "quirks"
	case limitedQuirks:
		return "limited-quirks"
	}
	return "no-quirks"
}

// classifyDoctype maps an emitted doctype token to the document mode the
// legacy public/system identifier rules require. The identifier
// comparisons are ASCII case-insensitive; prefix lists above are stored
// lowercased.
func classifyDoctype(t *Token) quirksMode {
	if t.ForceQuirks {
		return quirks
	}
	if t.TagName != "html" {
		return quirks
	}
	publicID := strings.ToLower(t.PublicIdentifier)
	systemID := strings.ToLower(t.SystemIdentifier)
	hasSystem := t.SystemIdentifier != missing

	if hasSystem && systemID == quirksSystemID {
		return quirks
	}
	if t.PublicIdentifier != missing {
		for _, id := range quirksPublicIDs {
			if publicID == id {
				return quirks
			}
		}
		for _, prefix := range quirksPublicIDPrefixes {
			if strings.HasPrefix(publicID, prefix) {
				return quirks
			}
		}
		for _, prefix := range quirksWhenNoSystemIDPrefixes {
			if strings.HasPrefix(publicID, prefix) {
				if hasSystem {
					return limitedQuirks
				}
				return quirks
			}
		}
		for _, prefix := range limitedQuirksPublicIDPrefixes {
			if strings.HasPrefix(publicID, prefix) {
				return limitedQuirks
			}
		}
	}
	return noQuirks
}
