package lexical

// stopWords is the closed set of words removed during tokenization.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"of": {}, "with": {}, "by": {}, "is": {}, "it": {}, "and": {}, "or": {},
}

// IsStopWord reports whether the normalized token is a stop word.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
