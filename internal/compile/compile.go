// Package compile drives the lex, parse, simplify and emit pipeline.
package compile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/newtype-lang/newtype/internal/ast"
	"github.com/newtype-lang/newtype/internal/codegen"
	"github.com/newtype-lang/newtype/internal/config"
	"github.com/newtype-lang/newtype/internal/parser"
	"github.com/newtype-lang/newtype/internal/position"
	"github.com/newtype-lang/newtype/internal/simplify"
)

// SourceExt is the extension of newtype source files.
const SourceExt = ".nt"

// OutputExt is the extension of generated TypeScript declarations.
const OutputExt = ".d.ts"

// Options controls a compilation run.
type Options struct {
	// Target is the TypeScript version to emit for.
	Target string
	// EmitSexpr renders the simplified tree as an s-expression dump
	// instead of TypeScript.
	EmitSexpr bool
}

// CompileSource compiles source text to TypeScript.
func CompileSource(filename, source string, opts Options) (string, error) {
	file := position.NewSourceFile(filename, source)

	program, err := parser.New(file).ParseProgram()
	if err != nil {
		return "", err
	}

	simplified := simplify.Simplify(program)
	if opts.EmitSexpr {
		return simplified.Value.Sexpr() + "\n", nil
	}

	gen, err := codegen.New(opts.Target)
	if err != nil {
		return "", err
	}
	return gen.Generate(simplified)
}

// CompileExpr compiles a single expression, for interactive use.
func CompileExpr(source string, opts Options) (string, *ast.Node, error) {
	file := position.NewSourceFile("<repl>", source)

	expr, err := parser.New(file).ParseExpr()
	if err != nil {
		return "", nil, err
	}

	simplified := simplify.Simplify(expr)

	gen, err := codegen.New(opts.Target)
	if err != nil {
		return "", nil, err
	}
	out, err := gen.Generate(simplified)
	return out, simplified, err
}

// CompileFile compiles one .nt file and writes its .d.ts next to the
// configured output directory. It returns the output path.
func CompileFile(path string, cfg *config.Config, opts Options) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	out, err := CompileSource(path, string(data), opts)
	if err != nil {
		return "", err
	}

	outPath := OutputPath(path, cfg)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	return outPath, nil
}

// CompileDir compiles every .nt file under cfg.Src. It keeps going past
// per-file failures and returns them joined.
func CompileDir(cfg *config.Config, opts Options) ([]string, error) {
	sources, err := FindSources(cfg.Src)
	if err != nil {
		return nil, err
	}

	var outputs []string
	var failures []string
	for _, src := range sources {
		outPath, err := CompileFile(src, cfg, opts)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		outputs = append(outputs, outPath)
	}

	if len(failures) > 0 {
		return outputs, fmt.Errorf("%d file(s) failed:\n%s", len(failures), strings.Join(failures, "\n"))
	}
	return outputs, nil
}

// FindSources lists the .nt files under root, sorted by path.
func FindSources(root string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == SourceExt {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return sources, nil
}

// OutputPath maps a source path to its output path under cfg.Out,
// preserving the directory layout relative to cfg.Src.
func OutputPath(src string, cfg *config.Config) string {
	rel, err := filepath.Rel(cfg.Src, src)
	if err != nil {
		rel = filepath.Base(src)
	}
	rel = strings.TrimSuffix(rel, SourceExt) + OutputExt
	return filepath.Join(cfg.Out, rel)
}
