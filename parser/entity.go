package parser

// Named character reference table. Keys include the trailing semicolon when
// the reference requires one; the semicolon-less keys are the complete
// legacy set, which the tokenizer may match in the middle of text. Values
// are one or two code points.
// https://html.spec.whatwg.org/multipage/named-characters.html
var charRefTable = map[string][]rune{
	// Legacy references, valid with and without the trailing semicolon.
	"AElig": {0xC6}, "AElig;": {0xC6},
	"AMP": {'&'}, "AMP;": {'&'},
	"Aacute": {0xC1}, "Aacute;": {0xC1},
	"Acirc": {0xC2}, "Acirc;": {0xC2},
	"Agrave": {0xC0}, "Agrave;": {0xC0},
	"Aring": {0xC5}, "Aring;": {0xC5},
	"Atilde": {0xC3}, "Atilde;": {0xC3},
	"Auml": {0xC4}, "Auml;": {0xC4},
	"COPY": {0xA9}, "COPY;": {0xA9},
	"Ccedil": {0xC7}, "Ccedil;": {0xC7},
	"ETH": {0xD0}, "ETH;": {0xD0},
	"Eacute": {0xC9}, "Eacute;": {0xC9},
	"Ecirc": {0xCA}, "Ecirc;": {0xCA},
	"Egrave": {0xC8}, "Egrave;": {0xC8},
	"Euml": {0xCB}, "Euml;": {0xCB},
	"GT": {'>'}, "GT;": {'>'},
	"Iacute": {0xCD}, "Iacute;": {0xCD},
	"Icirc": {0xCE}, "Icirc;": {0xCE},
	"Igrave": {0xCC}, "Igrave;": {0xCC},
	"Iuml": {0xCF}, "Iuml;": {0xCF},
	"LT": {'<'}, "LT;": {'<'},
	"Ntilde": {0xD1}, "Ntilde;": {0xD1},
	"Oacute": {0xD3}, "Oacute;": {0xD3},
	"Ocirc": {0xD4}, "Ocirc;": {0xD4},
	"Ograve": {0xD2}, "Ograve;": {0xD2},
	"Oslash": {0xD8}, "Oslash;": {0xD8},
	"Otilde": {0xD5}, "Otilde;": {0xD5},
	"Ouml": {0xD6}, "Ouml;": {0xD6},
	"QUOT": {'"'}, "QUOT;": {'"'},
	"REG": {0xAE}, "REG;": {0xAE},
	"THORN": {0xDE}, "THORN;": {0xDE},
	"Uacute": {0xDA}, "Uacute;": {0xDA},
	"Ucirc": {0xDB}, "Ucirc;": {0xDB},
	"Ugrave": {0xD9}, "Ugrave;": {0xD9},
	"Uuml": {0xDC}, "Uuml;": {0xDC},
	"Yacute": {0xDD}, "Yacute;": {0xDD},
	"aacute": {0xE1}, "aacute;": {0xE1},
	"acirc": {0xE2}, "acirc;": {0xE2},
	"acute": {0xB4}, "acute;": {0xB4},
	"aelig": {0xE6}, "aelig;": {0xE6},
	"agrave": {0xE0}, "agrave;": {0xE0},
	"amp": {'&'}, "amp;": {'&'},
	"aring": {0xE5}, "aring;": {0xE5},
	"atilde": {0xE3}, "atilde;": {0xE3},
	"auml": {0xE4}, "auml;": {0xE4},
	"brvbar": {0xA6}, "brvbar;": {0xA6},
	"ccedil": {0xE7}, "ccedil;": {0xE7},
	"cedil": {0xB8}, "cedil;": {0xB8},
	"cent": {0xA2}, "cent;": {0xA2},
	"copy": {0xA9}, "copy;": {0xA9},
	"curren": {0xA4}, "curren;": {0xA4},
	"deg": {0xB0}, "deg;": {0xB0},
	"divide": {0xF7}, "divide;": {0xF7},
	"eacute": {0xE9}, "eacute;": {0xE9},
	"ecirc": {0xEA}, "ecirc;": {0xEA},
	"egrave": {0xE8}, "egrave;": {0xE8},
	"eth": {0xF0}, "eth;": {0xF0},
	"euml": {0xEB}, "euml;": {0xEB},
	"frac12": {0xBD}, "frac12;": {0xBD},
	"frac14": {0xBC}, "frac14;": {0xBC},
	"frac34": {0xBE}, "frac34;": {0xBE},
	"gt": {'>'}, "gt;": {'>'},
	"iacute": {0xED}, "iacute;": {0xED},
	"icirc": {0xEE}, "icirc;": {0xEE},
	"iexcl": {0xA1}, "iexcl;": {0xA1},
	"igrave": {0xEC}, "igrave;": {0xEC},
	"iquest": {0xBF}, "iquest;": {0xBF},
	"iuml": {0xEF}, "iuml;": {0xEF},
	"laquo": {0xAB}, "laquo;": {0xAB},
	"lt": {'<'}, "lt;": {'<'},
	"macr": {0xAF}, "macr;": {0xAF},
	"micro": {0xB5}, "micro;": {0xB5},
	"middot": {0xB7}, "middot;": {0xB7},
	"nbsp": {0xA0}, "nbsp;": {0xA0},
	"not": {0xAC}, "not;": {0xAC},
	"ntilde": {0xF1}, "ntilde;": {0xF1},
	"oacute": {0xF3}, "oacute;": {0xF3},
	"ocirc": {0xF4}, "ocirc;": {0xF4},
	"ograve": {0xF2}, "ograve;": {0xF2},
	"ordf": {0xAA}, "ordf;": {0xAA},
	"ordm": {0xBA}, "ordm;": {0xBA},
	"oslash": {0xF8}, "oslash;": {0xF8},
	"otilde": {0xF5}, "otilde;": {0xF5},
	"ouml": {0xF6}, "ouml;": {0xF6},
	"para": {0xB6}, "para;": {0xB6},
	"plusmn": {0xB1}, "plusmn;": {0xB1},
	"pound": {0xA3}, "pound;": {0xA3},
	"quot": {'"'}, "quot;": {'"'},
	"raquo": {0xBB}, "raquo;": {0xBB},
	"reg": {0xAE}, "reg;": {0xAE},
	"sect": {0xA7}, "sect;": {0xA7},
	"shy": {0xAD}, "shy;": {0xAD},
	"sup1": {0xB9}, "sup1;": {0xB9},
	"sup2": {0xB2}, "sup2;": {0xB2},
	"sup3": {0xB3}, "sup3;": {0xB3},
	"szlig": {0xDF}, "szlig;": {0xDF},
	"thorn": {0xFE}, "thorn;": {0xFE},
	"times": {0xD7}, "times;": {0xD7},
	"uacute": {0xFA}, "uacute;": {0xFA},
	"ucirc": {0xFB}, "ucirc;": {0xFB},
	"ugrave": {0xF9}, "ugrave;": {0xF9},
	"uml": {0xA8}, "uml;": {0xA8},
	"uuml": {0xFC}, "uuml;": {0xFC},
	"yacute": {0xFD}, "yacute;": {0xFD},
	"yen": {0xA5}, "yen;": {0xA5},
	"yuml": {0xFF}, "yuml;": {0xFF},

	// Latin extended and typography.
	"OElig;": {0x152}, "oelig;": {0x153},
	"Scaron;": {0x160}, "scaron;": {0x161},
	"Yuml;": {0x178}, "fnof;": {0x192},
	"circ;": {0x2C6}, "tilde;": {0x2DC},
	"ensp;": {0x2002}, "emsp;": {0x2003}, "thinsp;": {0x2009},
	"zwnj;": {0x200C}, "zwj;": {0x200D}, "lrm;": {0x200E}, "rlm;": {0x200F},
	"ndash;": {0x2013}, "mdash;": {0x2014},
	"lsquo;": {0x2018}, "rsquo;": {0x2019}, "sbquo;": {0x201A},
	"ldquo;": {0x201C}, "rdquo;": {0x201D}, "bdquo;": {0x201E},
	"dagger;": {0x2020}, "Dagger;": {0x2021},
	"bull;": {0x2022}, "hellip;": {0x2026},
	"permil;": {0x2030}, "prime;": {0x2032}, "Prime;": {0x2033},
	"lsaquo;": {0x2039}, "rsaquo;": {0x203A},
	"oline;": {0x203E}, "frasl;": {0x2044},
	"euro;": {0x20AC}, "trade;": {0x2122}, "alefsym;": {0x2135},

	// Greek.
	"Alpha;": {0x391}, "Beta;": {0x392}, "Gamma;": {0x393}, "Delta;": {0x394},
	"Epsilon;": {0x395}, "Zeta;": {0x396}, "Eta;": {0x397}, "Theta;": {0x398},
	"Iota;": {0x399}, "Kappa;": {0x39A}, "Lambda;": {0x39B}, "Mu;": {0x39C},
	"Nu;": {0x39D}, "Xi;": {0x39E}, "Omicron;": {0x39F}, "Pi;": {0x3A0},
	"Rho;": {0x3A1}, "Sigma;": {0x3A3}, "Tau;": {0x3A4}, "Upsilon;": {0x3A5},
	"Phi;": {0x3A6}, "Chi;": {0x3A7}, "Psi;": {0x3A8}, "Omega;": {0x3A9},
	"alpha;": {0x3B1}, "beta;": {0x3B2}, "gamma;": {0x3B3}, "delta;": {0x3B4},
	"epsilon;": {0x3B5}, "zeta;": {0x3B6}, "eta;": {0x3B7}, "theta;": {0x3B8},
	"iota;": {0x3B9}, "kappa;": {0x3BA}, "lambda;": {0x3BB}, "mu;": {0x3BC},
	"nu;": {0x3BD}, "xi;": {0x3BE}, "omicron;": {0x3BF}, "pi;": {0x3C0},
	"rho;": {0x3C1}, "sigmaf;": {0x3C2}, "sigma;": {0x3C3}, "tau;": {0x3C4},
	"upsilon;": {0x3C5}, "phi;": {0x3C6}, "chi;": {0x3C7}, "psi;": {0x3C8},
	"omega;": {0x3C9}, "thetasym;": {0x3D1}, "upsih;": {0x3D2}, "piv;": {0x3D6},

	// Arrows, math, and misc symbols.
	"larr;": {0x2190}, "uarr;": {0x2191}, "rarr;": {0x2192}, "darr;": {0x2193},
	"harr;": {0x2194}, "crarr;": {0x21B5},
	"lArr;": {0x21D0}, "uArr;": {0x21D1}, "rArr;": {0x21D2}, "dArr;": {0x21D3},
	"hArr;": {0x21D4},
	"forall;": {0x2200}, "part;": {0x2202}, "exist;": {0x2203},
	"empty;": {0x2205}, "nabla;": {0x2207}, "isin;": {0x2208},
	"notin;": {0x2209}, "ni;": {0x220B}, "prod;": {0x220F}, "sum;": {0x2211},
	"minus;": {0x2212}, "lowast;": {0x2217}, "radic;": {0x221A},
	"prop;": {0x221D}, "infin;": {0x221E}, "ang;": {0x2220},
	"and;": {0x2227}, "or;": {0x2228}, "cap;": {0x2229}, "cup;": {0x222A},
	"int;": {0x222B}, "there4;": {0x2234}, "sim;": {0x223C},
	"cong;": {0x2245}, "asymp;": {0x2248}, "ne;": {0x2260},
	"equiv;": {0x2261}, "le;": {0x2264}, "ge;": {0x2265},
	"sub;": {0x2282}, "sup;": {0x2283}, "nsub;": {0x2284},
	"sube;": {0x2286}, "supe;": {0x2287},
	"oplus;": {0x2295}, "otimes;": {0x2297}, "perp;": {0x22A5},
	"sdot;": {0x22C5},
	"lceil;": {0x2308}, "rceil;": {0x2309},
	"lfloor;": {0x230A}, "rfloor;": {0x230B},
	"lang;": {0x27E8}, "rang;": {0x27E9},
	"loz;": {0x25CA}, "spades;": {0x2660}, "clubs;": {0x2663},
	"hearts;": {0x2665}, "diams;": {0x2666},
	"apos;": {'\''},

	// Two-code-point references.
	"fjlig;":         {'f', 'j'},
	"ThickSpace;":    {0x205F, 0x200A},
	"nvlt;":          {'<', 0x20D2},
	"nvgt;":          {'>', 0x20D2},
	"NotEqualTilde;": {0x2242, 0x338},
	"bnequiv;":       {0x2261, 0x20E5},
}

// longestCharRefName is the length of the longest key in charRefTable,
// bounding the max-munch scan in the named character reference state.
var longestCharRefName = func() int {
	max := 0
	for k := range charRefTable {
		if len(k) > max {
			max = len(k)
		}
	}
	return max
}()

// numericCharRefReplacements remaps the C1 control range of numeric
// character references the way Windows-1252 legacy content expects.
// https://html.spec.whatwg.org/multipage/parsing.html#numeric-character-reference-end-state
var numericCharRefReplacements = map[int]rune{
	0x80: 0x20AC, // EURO SIGN
	0x82: 0x201A, // SINGLE LOW-9 QUOTATION MARK
	0x83: 0x0192, // LATIN SMALL LETTER F WITH HOOK
	0x84: 0x201E, // DOUBLE LOW-9 QUOTATION MARK
	0x85: 0x2026, // HORIZONTAL ELLIPSIS
	0x86: 0x2020, // DAGGER
	0x87: 0x2021, // DOUBLE DAGGER
	0x88: 0x02C6, // MODIFIER LETTER CIRCUMFLEX ACCENT
	0x89: 0x2030, // PER MILLE SIGN
	0x8A: 0x0160, // LATIN CAPITAL LETTER S WITH CARON
	0x8B: 0x2039, // SINGLE LEFT-POINTING ANGLE QUOTATION MARK
	0x8C: 0x0152, // LATIN CAPITAL LIGATURE OE
	0x8E: 0x017D, // LATIN CAPITAL LETTER Z WITH CARON
	0x91: 0x2018, // LEFT SINGLE QUOTATION MARK
	0x92: 0x2019, // RIGHT SINGLE QUOTATION MARK
	0x93: 0x201C, // LEFT DOUBLE QUOTATION MARK
	0x94: 0x201D, // RIGHT DOUBLE QUOTATION MARK
	0x95: 0x2022, // BULLET
	0x96: 0x2013, // EN DASH
	0x97: 0x2014, // EM DASH
	0x98: 0x02DC, // SMALL TILDE
	0x99: 0x2122, // TRADE MARK SIGN
	0x9A: 0x0161, // LATIN SMALL LETTER S WITH CARON
	0x9B: 0x203A, // SINGLE RIGHT-POINTING ANGLE QUOTATION MARK
	0x9C: 0x0153, // LATIN SMALL LIGATURE OE
	0x9E: 0x017E, // LATIN SMALL LETTER Z WITH CARON
	0x9F: 0x0178, // LATIN CAPITAL LETTER Y WITH DIAERESIS
}

func isNoncharacter(cp int) bool {
	if cp >= 0xFDD0 && cp <= 0xFDEF {
		return true
	}
	switch cp & 0xFFFF {
	case 0xFFFE, 0xFFFF:
		return cp <= 0x10FFFF
	}
	return false
}

func isControlCodePoint(cp int) bool {
	return (cp <= 0x1F || (cp >= 0x7F && cp <= 0x9F))
}

func isASCIIWhitespaceCodePoint(cp int) bool {
	switch cp {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	}
	return false
}
