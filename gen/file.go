package gen

import (
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/format"
	"go/parser"
	"go/token"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/IvanBrykalov/memogen/internal/util"
)

const (
	// Directive marks a function for memoization. Configuration text, if
	// any, follows after a space:
	//
	//	//memogen:memoize key_function = "beamKey -> Point"
	Directive = "//memogen:memoize"

	// DefaultTag is the build tag guarding generator input files.
	DefaultTag = "memogen"
)

// Generator rewrites Go source files, expanding every function annotated
// with Directive into its cache, internal implementation, public wrapper and
// reset function. Zero value is ready to use:
//   - empty Tag  => DefaultTag
//   - nil Logger => zap.NewNop()
type Generator struct {
	// Tag is the build tag whose constraint lines are stripped from the
	// output, so that the input file is excluded from normal builds and the
	// generated file is not.
	Tag string

	Logger *zap.Logger
}

// Result is one generated file.
type Result struct {
	Source []byte
	// Functions lists the expanded functions in source order.
	Functions []string
	// Fingerprint is the xxhash of Source; equal inputs give equal
	// fingerprints.
	Fingerprint uint64
}

type edit struct {
	start, end int
	text       string
}

// Generate expands the annotated functions of src. filename is used for
// positions and the generated header only. Either every annotated function
// is expanded or an error is returned and no source is produced; all
// per-function failures of the file are reported together.
func (g *Generator) Generate(filename string, src []byte) (*Result, error) {
	log := g.logger().With(zap.String("file", filename))
	tag := g.tag()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	var edits []edit
	for _, c := range buildConstraints(f, tag) {
		edits = append(edits, lineEdit(fset, src, c))
	}

	var (
		errs      error
		functions []string
		expanded  []edit
		attached  = map[*ast.Comment]bool{}
	)
	for _, d := range f.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		directives := directiveComments(fd.Doc)
		if len(directives) == 0 {
			continue
		}
		for _, c := range directives {
			attached[c] = true
		}
		pos := fset.Position(fd.Pos())
		name := fd.Name.Name

		if len(directives) > 1 {
			errs = multierr.Append(errs, at(newError(ErrConfigSyntax, "%d memoize directives, want one", len(directives)), pos, name))
			continue
		}

		e, keyType, err := expand(fset, src, fd, directives[0])
		if err != nil {
			errs = multierr.Append(errs, at(err, pos, name))
			continue
		}
		log.Debug("memoize", zap.String("func", name), zap.String("key", keyType), zap.Int("line", pos.Line))
		edits = append(edits, e)
		expanded = append(expanded, e)
		functions = append(functions, name)
	}

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			// A directive anywhere else would silently do nothing.
			if isDirective(c.Text) && !attached[c] {
				errs = multierr.Append(errs, at(newError(ErrSignature, "directive is not attached to a function declaration"), fset.Position(c.Pos()), ""))
			}
			// The output must not trigger another generator run. Lines inside
			// an expanded declaration are rewritten by its edit already.
			if isGenerateLine(c.Text) && !covered(expanded, offset(fset, c.Pos())) {
				edits = append(edits, lineEdit(fset, src, c))
			}
		}
	}

	if errs != nil {
		log.Debug("generation failed", zap.Error(errs))
		return nil, errs
	}
	if len(functions) == 0 {
		return nil, &Error{Err: ErrNoDirectives, Msg: filename}
	}

	out, err := applyEdits(src, edits)
	if err != nil {
		return nil, at(err, token.Position{Filename: filename}, "")
	}
	header := fmt.Sprintf("// Code generated by memogen from %s; DO NOT EDIT.\n\n", filepath.Base(filename))
	formatted, err := format.Source(append([]byte(header), out...))
	if err != nil {
		return nil, fmt.Errorf("format generated source for %s: %w", filename, err)
	}

	res := &Result{
		Source:      formatted,
		Functions:   functions,
		Fingerprint: util.Hash(formatted),
	}
	log.Info("generated", zap.Strings("funcs", functions), zap.Uint64("fingerprint", res.Fingerprint))
	return res, nil
}

// expand turns one annotated declaration into an edit replacing it (doc
// comment included) with the generated artifacts.
func expand(fset *token.FileSet, src []byte, fd *ast.FuncDecl, directive *ast.Comment) (edit, string, error) {
	opts, err := ParseOptions(directiveConfig(directive.Text))
	if err != nil {
		return edit{}, "", at(err, fset.Position(directive.Pos()), "")
	}
	sig, err := AnalyzeSignature(fset, src, fd)
	if err != nil {
		return edit{}, "", err
	}

	start := offset(fset, fd.Type.Func)
	d := Decl{
		Signature:  sig,
		Options:    opts,
		Doc:        docWithout(fd.Doc, directive),
		Text:       string(src[start:offset(fset, fd.End())]),
		NameOffset: offset(fset, fd.Name.Pos()) - start,
	}
	a, err := Emit(d)
	if err != nil {
		return edit{}, "", err
	}
	return edit{
		start: offset(fset, fd.Doc.Pos()),
		end:   offset(fset, fd.End()),
		text:  a.String(),
	}, a.KeyType, nil
}

// lineEdit removes comment c together with its line break.
func lineEdit(fset *token.FileSet, src []byte, c *ast.Comment) edit {
	end := offset(fset, c.End())
	if end < len(src) && src[end] == '\n' {
		end++
	}
	return edit{start: offset(fset, c.Pos()), end: end}
}

// covered reports whether off lies inside one of edits.
func covered(edits []edit, off int) bool {
	for _, e := range edits {
		if off >= e.start && off < e.end {
			return true
		}
	}
	return false
}

// applyEdits applies non-overlapping edits back to front.
func applyEdits(src []byte, edits []edit) ([]byte, error) {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	out := append([]byte(nil), src...)
	prev := len(src)
	for _, e := range edits {
		if e.start > e.end || e.end > prev {
			return nil, newError(ErrSignature, "overlapping rewrites at offset %d", e.start)
		}
		tail := append([]byte(e.text), out[e.end:]...)
		out = append(out[:e.start], tail...)
		prev = e.start
	}
	return out, nil
}

func (g *Generator) tag() string {
	if g.Tag == "" {
		return DefaultTag
	}
	return g.Tag
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// buildConstraints returns the //go:build and // +build lines above the
// package clause that mention tag.
func buildConstraints(f *ast.File, tag string) []*ast.Comment {
	var out []*ast.Comment
	for _, cg := range f.Comments {
		if cg.Pos() >= f.Package {
			break
		}
		for _, c := range cg.List {
			if !constraint.IsGoBuild(c.Text) && !constraint.IsPlusBuild(c.Text) {
				continue
			}
			expr, err := constraint.Parse(c.Text)
			if err != nil {
				continue
			}
			if mentionsTag(expr, tag) {
				out = append(out, c)
			}
		}
	}
	return out
}

func mentionsTag(e constraint.Expr, tag string) bool {
	switch x := e.(type) {
	case *constraint.TagExpr:
		return x.Tag == tag
	case *constraint.NotExpr:
		return mentionsTag(x.X, tag)
	case *constraint.AndExpr:
		return mentionsTag(x.X, tag) || mentionsTag(x.Y, tag)
	case *constraint.OrExpr:
		return mentionsTag(x.X, tag) || mentionsTag(x.Y, tag)
	}
	return false
}

func isDirective(text string) bool {
	rest, ok := strings.CutPrefix(text, Directive)
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

// isGenerateLine matches go:generate lines that run this generator.
func isGenerateLine(text string) bool {
	return strings.HasPrefix(text, "//go:generate ") && strings.Contains(text, "memogen")
}

func directiveConfig(text string) string {
	return strings.TrimSpace(strings.TrimPrefix(text, Directive))
}

func directiveComments(doc *ast.CommentGroup) []*ast.Comment {
	var out []*ast.Comment
	for _, c := range doc.List {
		if isDirective(c.Text) {
			out = append(out, c)
		}
	}
	return out
}

// docWithout renders doc without the directive line. Trailing empty "//"
// lines left behind are dropped too.
func docWithout(doc *ast.CommentGroup, directive *ast.Comment) string {
	var lines []string
	for _, c := range doc.List {
		if c != directive && !isGenerateLine(c.Text) {
			lines = append(lines, c.Text)
		}
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "//" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
