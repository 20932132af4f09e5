package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"extern": KwExtern,
	"import": KwImport,
	"struct": KwStruct,
	"enum":   KwEnum,
	"if":     KwIf,
	"match":  KwMatch,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
