// Package gen is the source generator behind cmd/memogen. It turns a function
// carrying a memoize directive into a cache-backed function, without touching
// any of its call sites.
//
// Input files carry the generator build tag so that the normal build ignores
// them, and annotate functions in their doc comment:
//
//	//go:build memogen
//
//	package beams
//
//	//go:generate go run github.com/IvanBrykalov/memogen/cmd/memogen
//
//	// countTimelines counts the timelines a beam entering at p splits into.
//	//memogen:memoize key_function = "beamKey -> Point"
//	func countTimelines(g *Grid, p Point) uint64 { ... }
//
// The generated sibling file (beams_memo.go) is the same source with the
// build tag removed and every annotated function replaced by four
// declarations:
//
//	var __CACHE_COUNTTIMELINES = map[Point]uint64{}       // cache store
//	func __countTimelines_internal(g *Grid, p Point) uint64 // original body
//	func countTimelines(g *Grid, p Point) uint64            // public wrapper
//	func countTimelines_reset_memoize()                     // clears the cache
//
// Recursive calls inside the original body still name countTimelines, so they
// go through the wrapper and hit the cache.
//
// Keys of several parameters and results of several values are anonymous
// structs, declared once at package level as __KEY_<NAME> and
// __RESULT_<NAME> aliases.
//
// # Configuration
//
// The directive takes zero or more comma-separated options:
//
//	key_function = "<func> -> <KeyType>"
//	clone_function = "<func>"
//
// Without key_function the key is the tuple of all parameters (receiver
// excluded). With it, the named function is called with the same arguments
// and its result is the key; argument tuples mapping to one key share one
// result. clone_function names a func(R) R applied to stored results on insert
// and on every hit. A repeated option overrides the earlier one.
//
// # Errors
//
// Malformed configuration (ErrConfigSyntax), unknown options
// (ErrUnknownOption) and unusable names or signatures (ErrSignature) are
// reported at generation time, each as an *Error carrying the source position.
// A file with any failure produces no output.
//
// # Caveats
//
// The cache is a package-level map: it is shared by every caller in the
// process and is not synchronized. Drive memoized functions from one goroutine
// at a time, and call the reset function between logically independent
// inputs; otherwise results computed for the first input are returned for the
// second. Generated names are not checked for collisions with other
// identifiers in the package.
package gen
