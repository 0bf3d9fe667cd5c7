package gen

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"
)

// Option keywords accepted in a memoize directive.
const (
	OptKeyFunction   = "key_function"
	OptCloneFunction = "clone_function"
)

// KeySeparator splits a key_function value into function name and key type.
const KeySeparator = " -> "

// KeyFunction names a key-derivation function and its declared result type.
// The function is called with the memoized function's arguments (receiver
// excluded) and its result is the cache key.
type KeyFunction struct {
	Name string
	Type string
}

// Options is the parsed configuration of one memoize directive.
// The zero value means "tuple key, copy by assignment".
type Options struct {
	// KeyFunction is nil when the key is the tuple of all parameters.
	KeyFunction *KeyFunction
	// CloneFunction, if set, names a func(R) R applied to results on insert
	// and on every hit.
	CloneFunction string
}

// ParseOptions parses directive configuration text:
//
//	key_function = "posKey -> Point", clone_function = "cloneCounts"
//
// Empty text yields zero Options. When an option is repeated the last
// occurrence wins.
func ParseOptions(text string) (Options, error) {
	var opts Options

	toks, err := tokenize(text)
	if err != nil {
		return opts, err
	}

	for i := 0; i < len(toks); {
		kw := toks[i]
		if kw.tok != token.IDENT && !kw.tok.IsKeyword() {
			return opts, newError(ErrConfigSyntax, "expected option name at offset %d, found %s", kw.off, kw)
		}
		if kw.lit != OptKeyFunction && kw.lit != OptCloneFunction {
			return opts, newError(ErrUnknownOption, "%q (expected %s or %s)", kw.lit, OptKeyFunction, OptCloneFunction)
		}
		if i+1 >= len(toks) || toks[i+1].tok != token.ASSIGN {
			return opts, newError(ErrConfigSyntax, "expected '=' after %s", kw.lit)
		}
		if i+2 >= len(toks) || toks[i+2].tok != token.STRING {
			return opts, newError(ErrConfigSyntax, "expected string value for %s", kw.lit)
		}
		value, err := strconv.Unquote(toks[i+2].lit)
		if err != nil {
			return opts, newError(ErrConfigSyntax, "bad string value for %s: %v", kw.lit, err)
		}

		switch kw.lit {
		case OptKeyFunction:
			kf, err := parseKeyFunction(value)
			if err != nil {
				return opts, err
			}
			opts.KeyFunction = kf
		case OptCloneFunction:
			if !isQualifiedIdent(value) {
				return opts, newError(ErrSignature, "clone function %q is not a valid identifier", value)
			}
			opts.CloneFunction = value
		}

		i += 3
		if i == len(toks) {
			break
		}
		if toks[i].tok != token.COMMA {
			return opts, newError(ErrConfigSyntax, "expected ',' between options, found %s", toks[i])
		}
		i++ // a trailing comma is fine
	}
	return opts, nil
}

// String renders opts back in directive syntax.
func (o Options) String() string {
	var parts []string
	if o.KeyFunction != nil {
		parts = append(parts, fmt.Sprintf("%s = %q", OptKeyFunction, o.KeyFunction.Name+KeySeparator+o.KeyFunction.Type))
	}
	if o.CloneFunction != "" {
		parts = append(parts, fmt.Sprintf("%s = %q", OptCloneFunction, o.CloneFunction))
	}
	return strings.Join(parts, ", ")
}

func parseKeyFunction(value string) (*KeyFunction, error) {
	name, typ, ok := strings.Cut(value, KeySeparator)
	if !ok {
		return nil, newError(ErrConfigSyntax, "can't split %q by %q", value, KeySeparator)
	}
	if !isQualifiedIdent(name) {
		return nil, newError(ErrSignature, "key function %q is not a valid identifier", name)
	}
	if !isQualifiedIdent(typ) {
		return nil, newError(ErrSignature, "key type %q is not a valid identifier", typ)
	}
	return &KeyFunction{Name: name, Type: typ}, nil
}

// isQualifiedIdent accepts "name" and "pkg.Name".
func isQualifiedIdent(s string) bool {
	pkg, name, qualified := strings.Cut(s, ".")
	if !qualified {
		return token.IsIdentifier(s)
	}
	return token.IsIdentifier(pkg) && token.IsIdentifier(name)
}

type configToken struct {
	off int
	tok token.Token
	lit string
}

func (t configToken) String() string {
	if t.lit != "" {
		return fmt.Sprintf("%s %q", t.tok, t.lit)
	}
	return t.tok.String()
}

// tokenize runs the Go scanner over text. Automatic semicolons are dropped;
// anything the scanner rejects is a syntax error.
func tokenize(text string) ([]configToken, error) {
	src := []byte(text)
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var errs scanner.ErrorList
	var s scanner.Scanner
	s.Init(file, src, func(pos token.Position, msg string) { errs.Add(pos, msg) }, 0)

	var toks []configToken
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		toks = append(toks, configToken{off: file.Offset(pos), tok: tok, lit: lit})
	}
	if len(errs) > 0 {
		return nil, newError(ErrConfigSyntax, "%v", errs[0].Msg)
	}
	return toks, nil
}
