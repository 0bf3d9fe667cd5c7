package gen

import (
	"fmt"
	"strings"
)

// Decl is an annotated function as handed to the emitter.
type Decl struct {
	Signature Signature
	Options   Options
	// Doc is the doc comment kept on the public wrapper, directive lines
	// already removed. Empty means no doc comment.
	Doc string
	// Text is the declaration source from the "func" keyword to the closing
	// brace of the body. NameOffset is the byte offset of the function name
	// inside Text.
	Text       string
	NameOffset int
}

// Artifacts are the four generated pieces for one annotated function.
type Artifacts struct {
	Names    Names
	KeyType  string
	Cache    string // key/result aliases, if any, and the cache store declaration
	Internal string // original implementation under Names.Internal
	Wrapper  string // public wrapper under the original name
	Reset    string // reset entry point
}

// String joins the artifacts in declaration order.
func (a Artifacts) String() string {
	return strings.Join([]string{a.Cache, a.Internal, a.Wrapper, a.Reset}, "\n\n")
}

// Emit builds the artifacts for d. It either returns all four or an error;
// it never returns a partial set.
func Emit(d Decl) (Artifacts, error) {
	sig, opts := d.Signature, d.Options
	names := Synthesize(sig.Name)

	if d.NameOffset < 0 || d.NameOffset+len(sig.Name) > len(d.Text) ||
		d.Text[d.NameOffset:d.NameOffset+len(sig.Name)] != sig.Name {
		return Artifacts{}, newError(ErrSignature, "declaration text does not contain %s at offset %d", sig.Name, d.NameOffset)
	}

	keyType, err := cacheKeyType(sig, opts)
	if err != nil {
		return Artifacts{}, err
	}
	if opts.CloneFunction != "" && len(sig.Results) != 1 {
		return Artifacts{}, newError(ErrSignature, "%s needs exactly one result, %s has %d", OptCloneFunction, sig.Name, len(sig.Results))
	}
	retType := sig.ReturnType()

	a := Artifacts{Names: names, KeyType: keyType}

	// Struct types are named at package level: inside the wrapper a
	// parameter such as "fs fs.FS" shadows the package its type refers to.
	var decls []string
	mapKey, mapVal := keyType, retType
	if opts.KeyFunction == nil && len(sig.Params) > 1 {
		decls = append(decls, fmt.Sprintf("type %s = %s", names.Key, keyType))
		mapKey = names.Key
	}
	if len(sig.Results) > 1 {
		decls = append(decls, fmt.Sprintf("type %s = %s", names.Result, retType))
		mapVal = names.Result
	}
	decls = append(decls, fmt.Sprintf("var %s = map[%s]%s{}", names.Cache, mapKey, mapVal))
	a.Cache = strings.Join(decls, "\n\n")

	a.Internal = d.Text[:d.NameOffset] + names.Internal + d.Text[d.NameOffset+len(sig.Name):]

	a.Wrapper = emitWrapper(d, names, mapKey, mapVal)

	a.Reset = fmt.Sprintf("// %s discards every result cached for %s.\nfunc %s() {\n\tclear(%s)\n}",
		names.Reset, sig.Name, names.Reset, names.Cache)

	return a, nil
}

func cacheKeyType(sig Signature, opts Options) (string, error) {
	if opts.KeyFunction != nil {
		return opts.KeyFunction.Type, nil
	}
	return sig.TupleKeyType()
}

// emitWrapper writes the public wrapper: compute the key, return the stored
// result on hit, otherwise call the internal implementation and store its
// result.
func emitWrapper(d Decl, names Names, keyType, retType string) string {
	sig, opts := d.Signature, d.Options
	paramNames := sig.ParamNames()

	var b strings.Builder
	if d.Doc != "" {
		b.WriteString(d.Doc)
		if !strings.HasSuffix(d.Doc, "\n") {
			b.WriteByte('\n')
		}
	}

	// Signature: receiver, name, parameters, results.
	b.WriteString("func ")
	callee := names.Internal
	if r := sig.Receiver; r != nil {
		recvName := r.Name
		if recvName == "" || recvName == "_" {
			recvName = localPrefix + "recv"
		}
		fmt.Fprintf(&b, "(%s %s) ", recvName, r.Type)
		callee = recvName + "." + names.Internal
	}
	b.WriteString(sig.Name)
	b.WriteByte('(')
	for i, p := range sig.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(paramNames[i] + " " + p.Type)
	}
	b.WriteByte(')')
	if sig.ResultsText != "" {
		b.WriteString(" " + sig.ResultsText)
	}
	b.WriteString(" {\n")

	args := strings.Join(paramNames, ", ")
	if sig.Variadic {
		args += "..."
	}
	call := callee + "(" + args + ")"

	key := localPrefix + "key"
	val := localPrefix + "v"
	ok := localPrefix + "ok"

	// Key.
	switch {
	case opts.KeyFunction != nil:
		fmt.Fprintf(&b, "\t%s := %s(%s)\n", key, opts.KeyFunction.Name, args)
	case len(sig.Params) == 0:
		fmt.Fprintf(&b, "\t%s := %s{}\n", key, UnitType)
	case len(sig.Params) == 1:
		fmt.Fprintf(&b, "\t%s := %s\n", key, paramNames[0])
	default:
		fmt.Fprintf(&b, "\t%s := %s{%s}\n", key, keyType, strings.Join(paramNames, ", "))
	}

	cloned := func(v string) string {
		if opts.CloneFunction == "" {
			return v
		}
		return opts.CloneFunction + "(" + v + ")"
	}

	switch len(sig.Results) {
	case 0:
		fmt.Fprintf(&b, "\tif _, %s := %s[%s]; %s {\n\t\treturn\n\t}\n", ok, names.Cache, key, ok)
		fmt.Fprintf(&b, "\t%s\n", call)
		fmt.Fprintf(&b, "\t%s[%s] = %s{}\n", names.Cache, key, UnitType)
	case 1:
		fmt.Fprintf(&b, "\tif %s, %s := %s[%s]; %s {\n\t\treturn %s\n\t}\n", val, ok, names.Cache, key, ok, cloned(val))
		fmt.Fprintf(&b, "\t%s := %s\n", val, call)
		fmt.Fprintf(&b, "\t%s[%s] = %s\n", names.Cache, key, cloned(val))
		fmt.Fprintf(&b, "\treturn %s\n", val)
	default:
		hits := make([]string, len(sig.Results))
		locals := make([]string, len(sig.Results))
		for i := range sig.Results {
			hits[i] = fmt.Sprintf("%s.r%d", val, i)
			locals[i] = fmt.Sprintf("%sr%d", localPrefix, i)
		}
		results := strings.Join(locals, ", ")
		fmt.Fprintf(&b, "\tif %s, %s := %s[%s]; %s {\n\t\treturn %s\n\t}\n", val, ok, names.Cache, key, ok, strings.Join(hits, ", "))
		fmt.Fprintf(&b, "\t%s := %s\n", results, call)
		fmt.Fprintf(&b, "\t%s[%s] = %s{%s}\n", names.Cache, key, retType, results)
		fmt.Fprintf(&b, "\treturn %s\n", results)
	}
	b.WriteString("}")
	return b.String()
}
