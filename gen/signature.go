package gen

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

// UnitType is the result type recorded for functions without results.
const UnitType = "struct{}"

// Param is one parameter or result: its declared name (empty when unnamed)
// and the source text of its type.
type Param struct {
	Name string
	Type string

	expr ast.Expr
}

// Receiver is the method receiver. It never takes part in the cache key.
type Receiver struct {
	Name string // empty when unnamed
	Type string
}

// Signature is what the emitter needs to know about an annotated function.
type Signature struct {
	Name     string
	Receiver *Receiver
	Params   []Param
	// Variadic reports that the last parameter is "...T"; its Type holds the
	// full "...T" text.
	Variadic bool
	Results  []Param
	// ResultsText is the result list exactly as written ("int", "(n int, err
	// error)"), empty when the function returns nothing.
	ResultsText string
}

// AnalyzeSignature extracts the signature of fd. src must be the bytes fset
// positions refer to. Receivers are kept aside; parameters are flattened
// in declaration order ("a, b int" yields two params).
func AnalyzeSignature(fset *token.FileSet, src []byte, fd *ast.FuncDecl) (Signature, error) {
	sig := Signature{Name: fd.Name.Name}

	if fd.Body == nil {
		return sig, newError(ErrSignature, "function has no body")
	}
	if fd.Type.TypeParams != nil && len(fd.Type.TypeParams.List) > 0 {
		return sig, newError(ErrSignature, "generic functions cannot be memoized")
	}

	if fd.Recv != nil && len(fd.Recv.List) > 0 {
		field := fd.Recv.List[0]
		if isGenericReceiver(field.Type) {
			return sig, newError(ErrSignature, "methods of generic types cannot be memoized")
		}
		recv := &Receiver{Type: nodeText(fset, src, field.Type)}
		if len(field.Names) > 0 {
			recv.Name = field.Names[0].Name
		}
		sig.Receiver = recv
	}

	for _, field := range fd.Type.Params.List {
		typ := nodeText(fset, src, field.Type)
		if _, ok := field.Type.(*ast.Ellipsis); ok {
			sig.Variadic = true
		}
		if len(field.Names) == 0 {
			sig.Params = append(sig.Params, Param{Type: typ, expr: field.Type})
			continue
		}
		for _, n := range field.Names {
			sig.Params = append(sig.Params, Param{Name: n.Name, Type: typ, expr: field.Type})
		}
	}

	if res := fd.Type.Results; res != nil && len(res.List) > 0 {
		sig.ResultsText = nodeText(fset, src, res)
		for _, field := range res.List {
			typ := nodeText(fset, src, field.Type)
			if len(field.Names) == 0 {
				sig.Results = append(sig.Results, Param{Type: typ, expr: field.Type})
				continue
			}
			for _, n := range field.Names {
				sig.Results = append(sig.Results, Param{Name: n.Name, Type: typ, expr: field.Type})
			}
		}
	}
	return sig, nil
}

// ParamNames returns the parameter names used by the generated wrapper.
// Unnamed and blank parameters get synthesized names, since the wrapper has
// to forward them.
func (s Signature) ParamNames() []string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
		if p.Name == "" || p.Name == "_" {
			names[i] = fmt.Sprintf("%sp%d", localPrefix, i)
		}
	}
	return names
}

// ParamTypes returns the parameter type texts in declaration order.
func (s Signature) ParamTypes() []string {
	types := make([]string, len(s.Params))
	for i, p := range s.Params {
		types[i] = p.Type
	}
	return types
}

// ReturnType is the stored result type: UnitType without results, the
// result type for one result, and an anonymous struct with fields r0..rN
// for several.
func (s Signature) ReturnType() string {
	switch len(s.Results) {
	case 0:
		return UnitType
	case 1:
		return s.Results[0].Type
	}
	fields := make([]string, len(s.Results))
	for i, r := range s.Results {
		fields[i] = fmt.Sprintf("r%d %s", i, r.Type)
	}
	return "struct{ " + strings.Join(fields, "; ") + " }"
}

// TupleKeyType is the default cache key type: struct{} without parameters,
// the parameter type for one, and an anonymous struct with one field per
// parameter otherwise. It fails for parameters whose type can never be
// compared.
func (s Signature) TupleKeyType() (string, error) {
	for i, p := range s.Params {
		if s.Variadic && i == len(s.Params)-1 {
			return "", newError(ErrSignature, "variadic parameter %s needs a key_function", s.ParamNames()[i])
		}
		if !comparableExpr(p.expr) {
			return "", newError(ErrSignature, "parameter %s of type %s is not comparable; configure a key_function", s.ParamNames()[i], p.Type)
		}
	}
	switch len(s.Params) {
	case 0:
		return UnitType, nil
	case 1:
		return s.Params[0].Type, nil
	}
	names := s.ParamNames()
	fields := make([]string, len(s.Params))
	for i, p := range s.Params {
		fields[i] = names[i] + " " + p.Type
	}
	return "struct{ " + strings.Join(fields, "; ") + " }", nil
}

// comparableExpr rejects types that are syntactically known not to be
// comparable. Named types cannot be checked without type information; a
// wrong guess there surfaces as a compile error in the generated file.
func comparableExpr(e ast.Expr) bool {
	switch t := e.(type) {
	case nil:
		return true
	case *ast.ParenExpr:
		return comparableExpr(t.X)
	case *ast.ArrayType:
		if t.Len == nil {
			return false // slice
		}
		return comparableExpr(t.Elt)
	case *ast.MapType, *ast.FuncType, *ast.Ellipsis:
		return false
	case *ast.StructType:
		for _, f := range t.Fields.List {
			if !comparableExpr(f.Type) {
				return false
			}
		}
	}
	return true
}

func isGenericReceiver(e ast.Expr) bool {
	switch t := e.(type) {
	case *ast.StarExpr:
		return isGenericReceiver(t.X)
	case *ast.ParenExpr:
		return isGenericReceiver(t.X)
	case *ast.IndexExpr, *ast.IndexListExpr:
		return true
	}
	return false
}

// nodeText returns the exact source text of n.
func nodeText(fset *token.FileSet, src []byte, n ast.Node) string {
	return string(src[offset(fset, n.Pos()):offset(fset, n.End())])
}

func offset(fset *token.FileSet, p token.Pos) int {
	return fset.PositionFor(p, false).Offset
}
