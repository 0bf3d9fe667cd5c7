// Command memogen expands memoize directives in Go source files.
//
// Typical use is a go:generate line in the annotated file:
//
//	//go:generate go run github.com/IvanBrykalov/memogen/cmd/memogen
//
// which processes $GOFILE and writes <name>_memo.go next to it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/memogen/gen"
)

func main() {
	var (
		tag     = flag.String("tag", gen.DefaultTag, "build tag guarding input files; stripped from output")
		suffix  = flag.String("suffix", "_memo.go", "suffix replacing .go in output file names")
		verbose = flag.Bool("v", false, "verbose (debug) logging")
		check   = flag.Bool("check", false, "exit non-zero if any output file is missing or stale; write nothing")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: memogen [flags] [file.go ...]\n\nWith no files, $GOFILE is used.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "memogen:", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	files := flag.Args()
	if len(files) == 0 {
		if gofile := os.Getenv("GOFILE"); gofile != "" {
			files = []string{gofile}
		}
	}
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	r := runner{
		gen:    &gen.Generator{Tag: *tag, Logger: logger},
		suffix: *suffix,
		check:  *check,
		log:    logger,
	}
	if err := r.run(files); err != nil {
		_ = logger.Sync()
		os.Exit(1) // failures were logged per file
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// errStale is reported in -check mode for outputs that would change.
var errStale = errors.New("generated file is stale")

type runner struct {
	gen    *gen.Generator
	suffix string
	check  bool
	log    *zap.Logger
}

// run processes files concurrently. Each file is independent: a failing
// file writes nothing, the others are still written.
func (r runner) run(files []string) error {
	var g errgroup.Group
	for _, file := range files {
		g.Go(func() error {
			err := r.file(file)
			if err != nil {
				r.log.Error("file failed", zap.String("file", file), zap.Error(err))
			}
			return err
		})
	}
	return g.Wait()
}

func (r runner) file(in string) error {
	src, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	res, err := r.gen.Generate(in, src)
	if err != nil {
		return err
	}

	out := outputPath(in, r.suffix)
	if r.check {
		cur, err := os.ReadFile(out)
		if err != nil || string(cur) != string(res.Source) {
			return fmt.Errorf("%s: %w", out, errStale)
		}
		return nil
	}
	if err := os.WriteFile(out, res.Source, 0o644); err != nil {
		return err
	}
	r.log.Info("wrote", zap.String("out", out), zap.Int("funcs", len(res.Functions)))
	return nil
}

// outputPath maps dir/name.go to dir/name<suffix>.
func outputPath(in, suffix string) string {
	dir, base := filepath.Split(in)
	return filepath.Join(dir, strings.TrimSuffix(base, ".go")+suffix)
}
