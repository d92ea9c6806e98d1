package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/newtype-lang/newtype/internal/ast"
	"github.com/newtype-lang/newtype/internal/position"
)

func parseProgram(t *testing.T, source string) *ast.Node {
	t.Helper()
	node, err := New(position.NewSourceFile("test.nt", source)).ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram(%q) failed: %v", source, err)
	}
	return node
}

func parseExpr(t *testing.T, source string) *ast.Node {
	t.Helper()
	node, err := New(position.NewSourceFile("test.nt", source)).ParseExpr()
	if err != nil {
		t.Fatalf("ParseExpr(%q) failed: %v", source, err)
	}
	return node
}

// TestParseExpressions tests expression forms against their s-expression
// dumps.
func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"identifier", "Foo", "Foo"},
		{"number", "42", "42"},
		{"string", `"hi"`, `"hi"`},
		{"boolean", "true", "true"},
		{"never keyword", "never", "never"},
		{"primitive keyword", "string", "string"},
		{"union", "A | B | C", "(| (| A B) C)"},
		{"intersection binds tighter than union", "A | B & C", "(| A (& B C))"},
		{"addition", "1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"array suffix", "A[]", "(array A)"},
		{"nested array suffix", "A[][]", "(array (array A))"},
		{"indexed access", "A[K]", "([] A K)"},
		{"dot access", "a.b", "(. a b)"},
		{"chained dot access", "a.b.c", "(. (. a b) c)"},
		{"namespace access", "NS::T", "(:: NS T)"},
		{"tuple", "[A, B]", "(tuple A B)"},
		{"empty tuple", "[]", "(tuple)"},
		{"object literal", "{ a: A, b: B }", "(object (a A) (b B))"},
		{"empty object", "{}", "(object)"},
		{"application", "Pick(T, K)", "(apply Pick T K)"},
		{"keyof builtin", "keyof T", "(keyof T)"},
		{"typeof builtin", "typeof T.a", "(typeof (. T a))"},
		{"parenthesized", "(A | B) & C", "(& (| A B) C)"},
		{"mapped type", "{ [K in T]: V }", "(mapped K T V)"},
		{"mapped type with remapping", "{ [K in T as U]: V }", "(mapped K T (as U) V)"},
		{"readonly mapped type", "{ readonly [K in T]?: V }", "(mapped K T +readonly +? V)"},
		{"remove modifiers", "{ -readonly [K in T]-?: V }", "(mapped K T -readonly -? V)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseExpr(t, tt.input).Sexpr()
			if got != tt.want {
				t.Errorf("parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseSurfaceConstructs tests if, match, cond and let expressions.
func TestParseSurfaceConstructs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "if then else",
			input: "if T <: string then A else B",
			want:  "(if (<: T string) A B)",
		},
		{
			name:  "if without else",
			input: "if T <: string then A",
			want:  "(if (<: T string) A)",
		},
		{
			name:  "negated extends",
			input: "if T !<: string then A else B",
			want:  "(if (!<: T string) A B)",
		},
		{
			name:  "not condition",
			input: "if not T <: string then A else B",
			want:  "(if (not (<: T string)) A B)",
		},
		{
			name:  "and binds tighter than or",
			input: "if A <: B and C <: D or E <: F then X else Y",
			want:  "(if (or (and (<: A B) (<: C D)) (<: E F)) X Y)",
		},
		{
			name:  "parenthesized condition",
			input: "if A <: B and (C <: D or E <: F) then X else Y",
			want:  "(if (and (<: A B) (or (<: C D) (<: E F))) X Y)",
		},
		{
			name:  "parenthesized relation operand",
			input: "if (A | B) <: C then X else Y",
			want:  "(if (<: (| A B) C) X Y)",
		},
		{
			name:  "equality condition parses",
			input: "if A == B then X else Y",
			want:  "(if (== A B) X Y)",
		},
		{
			name:  "match with wildcard",
			input: "match T do A => X, _ => Y end",
			want:  "(match T (arm A X) (arm _ Y))",
		},
		{
			name:  "match single arm",
			input: "match T do A => X end",
			want:  "(match T (arm A X))",
		},
		{
			name:  "cond with else",
			input: "cond do T <: A => X, T <: B => Y, else => Z end",
			want:  "(cond (arm (<: T A) X) (arm (<: T B) Y) (else Z))",
		},
		{
			name:  "cond without else",
			input: "cond do T <: A => X end",
			want:  "(cond (arm (<: T A) X))",
		},
		{
			name:  "cond arm with compound condition",
			input: "cond do T <: A and not T <: B => X, else => Y end",
			want:  "(cond (arm (and (<: T A) (not (<: T B))) X) (else Y))",
		},
		{
			name:  "let single binding",
			input: "let x = A in [x, x]",
			want:  "(let ((x A)) (tuple x x))",
		},
		{
			name:  "let multiple bindings",
			input: "let x = A, y = B in [x, y]",
			want:  "(let ((x A) (y B)) (tuple x y))",
		},
		{
			name:  "nested if in branch",
			input: "if T <: A then if T <: B then X else Y else Z",
			want:  "(if (<: T A) (if (<: T B) X Y) Z)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseExpr(t, tt.input).Sexpr()
			if got != tt.want {
				t.Errorf("parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseStringEscapes tests that string literals hold their resolved
// content, not the raw source escapes.
func TestParseStringEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no escapes", `"hello"`, "hello"},
		{"escaped double quote", `"say \"hi\""`, `say "hi"`},
		{"escaped single quote", `'it\'s'`, "it's"},
		{"escaped backslash", `"a\\b"`, `a\b`},
		{"newline and tab", `"a\nb\tc"`, "a\nb\tc"},
		{"unknown escape passes through", `"a\qb"`, "aqb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := parseExpr(t, tt.input)
			str, ok := node.Value.(*ast.String)
			if !ok {
				t.Fatalf("parsed %T, want *ast.String", node.Value)
			}
			if str.Value != tt.want {
				t.Errorf("parse(%s) = %q, want %q", tt.input, str.Value, tt.want)
			}
		})
	}
}

// TestParseTypeAlias tests top-level declarations.
func TestParseTypeAlias(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple alias",
			input: "type Id = T",
			want:  "(program (type Id T))",
		},
		{
			name:  "exported alias",
			input: "export type Id = T",
			want:  "(program (type Id export T))",
		},
		{
			name:  "parameters",
			input: "type Pair(A, B) = [A, B]",
			want:  "(program (type Pair (param A) (param B) (tuple A B)))",
		},
		{
			name:  "constrained parameter with default",
			input: "type Opt(T <: string = never) = T",
			want:  "(program (type Opt (param T (constraint string) (default never)) T))",
		},
		{
			name:  "rest parameter",
			input: "type Spread(...T) = T",
			want:  "(program (type Spread (param T rest) T))",
		},
		{
			name:  "multiple statements",
			input: "type A = 1\ntype B = 2",
			want:  "(program (type A 1) (type B 2))",
		},
		{
			name:  "bare expression statement",
			input: "A | B",
			want:  "(program (| A B))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseProgram(t, tt.input).Sexpr()
			if got != tt.want {
				t.Errorf("parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseSpans tests that parsed nodes carry spans over their source
// text.
func TestParseSpans(t *testing.T) {
	node := parseExpr(t, "A | B")

	if node.IsGenerated() {
		t.Fatal("parsed node carries no span")
	}
	if node.Span.Start.Column != 1 || node.Span.End.Column != 6 {
		t.Errorf("span covers %d-%d, want 1-6", node.Span.Start.Column, node.Span.End.Column)
	}

	infix := node.Value.(*ast.InfixOp)
	if infix.Lhs.IsGenerated() || infix.Rhs.IsGenerated() {
		t.Error("operand nodes carry no spans")
	}
	if infix.Rhs.Span.Start.Column != 5 {
		t.Errorf("rhs starts at column %d, want 5", infix.Rhs.Span.Start.Column)
	}
}

// TestParseErrors tests syntax error reporting with positions.
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed paren", "(A | B"},
		{"missing then", "if T <: U A else B"},
		{"missing condition operator", "if T then A else B"},
		{"missing end", "match T do A => B"},
		{"duplicate let binding", "let x = 1, x = 2 in x"},
		{"duplicate cond else", "cond do else => A, else => B end"},
		{"cond arm without arrow", "cond do T <: A X end"},
		{"missing in", "let x = 1 x"},
		{"trailing input", "A B"},
		{"alias without body", "type Foo ="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(position.NewSourceFile("test.nt", tt.input))
			var err error
			if tt.name == "alias without body" {
				_, err = p.ParseProgram()
			} else {
				_, err = p.ParseExpr()
			}
			if err == nil {
				t.Fatalf("parse(%q) unexpectedly succeeded", tt.input)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error is %T, want *ParseError", err)
			}
			if perr.Span.Start.Line == 0 {
				t.Error("error carries no position")
			}
		})
	}
}

// TestParseErrorShowsSourceLine tests that a rendered parse error quotes
// the offending line with a caret under the failure column.
func TestParseErrorShowsSourceLine(t *testing.T) {
	source := "type A = 1\ntype B ="
	_, err := New(position.NewSourceFile("test.nt", source)).ParseProgram()
	if err == nil {
		t.Fatal("parse unexpectedly succeeded")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T, want *ParseError", err)
	}
	if perr.Line != "type B =" {
		t.Errorf("Line = %q, want the offending source line", perr.Line)
	}

	rendered := perr.Error()
	if !strings.Contains(rendered, "\n  type B =\n") {
		t.Errorf("rendered error does not quote the source line:\n%s", rendered)
	}
	caret := strings.Repeat(" ", perr.Span.Start.Column-1) + "^"
	if !strings.HasSuffix(rendered, caret) {
		t.Errorf("rendered error does not end with a caret at column %d:\n%s",
			perr.Span.Start.Column, rendered)
	}
}
