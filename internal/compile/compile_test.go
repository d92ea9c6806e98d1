package compile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/newtype-lang/newtype/internal/config"
)

// TestCompileSource tests the full lex, parse, simplify, emit pipeline.
func TestCompileSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "if lowers to a conditional type",
			source: "type IsString(T) = if T <: string then true else false",
			want:   "type IsString<T> = T extends string\n  ? true\n  : false;\n",
		},
		{
			name:   "match lowers to a conditional chain",
			source: "type Name(T) = match T do 1 => \"one\", _ => \"other\" end",
			want:   "type Name<T> = T extends 1\n  ? \"one\"\n  : \"other\";\n",
		},
		{
			name:   "cond lowers to a conditional chain",
			source: "type Kind(T) = cond do T <: string => \"s\", T <: number => \"n\", else => \"other\" end",
			want:   "type Kind<T> = T extends string\n  ? \"s\"\n  : T extends number\n  ? \"n\"\n  : \"other\";\n",
		},
		{
			name:   "escaped string survives to the output",
			source: `type A = "say \"hi\""`,
			want:   "type A = \"say \\\"hi\\\"\";\n",
		},
		{
			name:   "let bindings are inlined",
			source: "type Pair(T) = let w = T | never in [w, w]",
			want:   "type Pair<T> = [T | never, T | never];\n",
		},
		{
			name:   "exported alias",
			source: "export type Id(T) = T",
			want:   "export type Id<T> = T;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompileSource("test.nt", tt.source, Options{})
			if err != nil {
				t.Fatalf("CompileSource failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("output mismatch:\ngot:  %q\nwant: %q", got, tt.want)
			}
		})
	}
}

// TestCompileSourceSexpr tests the s-expression emit mode.
func TestCompileSourceSexpr(t *testing.T) {
	source := "type A(T) = if T <: string then 1 else 2"
	got, err := CompileSource("test.nt", source, Options{EmitSexpr: true})
	if err != nil {
		t.Fatalf("CompileSource failed: %v", err)
	}

	want := "(program (type A (param T) (extends T string 1 2)))\n"
	if got != want {
		t.Errorf("sexpr mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

// TestCompileSourceErrors tests parse and target error propagation.
func TestCompileSourceErrors(t *testing.T) {
	if _, err := CompileSource("test.nt", "type = ", Options{}); err == nil {
		t.Error("syntax error not reported")
	}

	source := "type R(T) = { [K in T as K]: T }"
	if _, err := CompileSource("test.nt", source, Options{Target: "4.0.0"}); err == nil {
		t.Error("target violation not reported")
	}
	if _, err := CompileSource("test.nt", source, Options{Target: "4.1.0"}); err != nil {
		t.Errorf("supported construct rejected: %v", err)
	}
}

// TestCompileExpr tests the single-expression entry point used by the
// REPL.
func TestCompileExpr(t *testing.T) {
	out, simplified, err := CompileExpr("if T <: string then 1 else 2", Options{})
	if err != nil {
		t.Fatalf("CompileExpr failed: %v", err)
	}
	if want := "T extends string\n  ? 1\n  : 2"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if simplified == nil || simplified.Sexpr() != "(extends T string 1 2)" {
		t.Errorf("simplified tree missing or wrong: %v", simplified)
	}
}

// TestCompileFile tests on-disk compilation including output placement.
func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Src: dir, Out: filepath.Join(dir, "dist"), Target: "5.0.0"}

	src := filepath.Join(dir, "id.nt")
	if err := os.WriteFile(src, []byte("type Id(T) = T"), 0o644); err != nil {
		t.Fatal(err)
	}

	outPath, err := CompileFile(src, cfg, Options{Target: cfg.Target})
	if err != nil {
		t.Fatalf("CompileFile failed: %v", err)
	}
	if want := filepath.Join(cfg.Out, "id.d.ts"); outPath != want {
		t.Errorf("output path = %q, want %q", outPath, want)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "type Id<T> = T;\n" {
		t.Errorf("output content = %q", string(data))
	}
}

// TestCompileDir tests batch compilation, including that one failing file
// does not stop the rest.
func TestCompileDir(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Src: dir, Out: filepath.Join(dir, "dist"), Target: "5.0.0"}

	files := map[string]string{
		"a.nt":        "type A = 1",
		"sub/b.nt":    "type B = 2",
		"broken.nt":   "type = broken",
		"ignored.txt": "not a source file",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	outputs, err := CompileDir(cfg, Options{Target: cfg.Target})
	if err == nil {
		t.Error("broken file did not surface an error")
	} else if !strings.Contains(err.Error(), "broken.nt") {
		t.Errorf("error does not name the broken file: %v", err)
	}

	want := []string{
		filepath.Join(cfg.Out, "a.d.ts"),
		filepath.Join(cfg.Out, "sub", "b.d.ts"),
	}
	if diff := cmp.Diff(want, outputs); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

// TestFindSources tests source discovery ordering and filtering.
func TestFindSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"z.nt", "a.nt", "skip.ts"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := FindSources(dir)
	if err != nil {
		t.Fatalf("FindSources failed: %v", err)
	}
	want := []string{filepath.Join(dir, "a.nt"), filepath.Join(dir, "z.nt")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

// TestOutputPath tests source-to-output path mapping.
func TestOutputPath(t *testing.T) {
	cfg := &config.Config{Src: "types", Out: "dist"}

	tests := []struct {
		src  string
		want string
	}{
		{filepath.Join("types", "a.nt"), filepath.Join("dist", "a.d.ts")},
		{filepath.Join("types", "sub", "b.nt"), filepath.Join("dist", "sub", "b.d.ts")},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.src, cfg); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
