package token

// keywords maps reserved words to their kind. Type names (i32, f64, bool,
// str) are classified separately, after the keyword check, per spec §4.1.
var keywords = map[string]Kind{
	"fn": KwFn, "let": KwLet, "mut": KwMut, "if": KwIf, "else": KwElse,
	"while": KwWhile, "for": KwFor, "loop": KwLoop, "break": KwBreak,
	"continue": KwContinue, "return": KwReturn, "true": KwTrue, "false": KwFalse,
	"print": KwPrint,
}

var typeNames = map[string]Kind{
	"i32": TypeI32, "f64": TypeF64, "bool": TypeBool, "str": TypeStr,
}

// LookupIdent classifies a scanned identifier as a keyword, a type name, or
// a plain identifier, in that order, matching spec §4.1.
func LookupIdent(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	if k, ok := typeNames[text]; ok {
		return k
	}
	return Ident
}
