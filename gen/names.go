package gen

import "strings"

// localPrefix starts every local identifier the wrapper introduces.
// Parameters of annotated functions must not use it.
const localPrefix = "__memo_"

// Names are the identifiers derived from an annotated function's name.
type Names struct {
	Original string
	Internal string // renamed original implementation
	Cache    string // cache store variable
	Reset    string // reset entry point
	Key      string // alias for a multi-parameter key
	Result   string // alias for a multi-value result
}

// Synthesize derives the artifact names for original. It is pure: the same
// name always gives the same Names. Collisions with other identifiers in
// the package are not checked.
func Synthesize(original string) Names {
	upper := strings.ToUpper(original)
	return Names{
		Original: original,
		Internal: "__" + original + "_internal",
		Cache:    "__CACHE_" + upper,
		Reset:    original + "_reset_memoize",
		Key:      "__KEY_" + upper,
		Result:   "__RESULT_" + upper,
	}
}
