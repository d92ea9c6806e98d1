package ast

import "testing"

// TestSexprForms tests the debug dump of representative trees.
func TestSexprForms(t *testing.T) {
	ident := func(name string) *Node { return Generate(&Ident{Name: name}) }

	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "extends expression",
			node: Generate(&ExtendsExpr{Lhs: ident("T"), Rhs: ident("U"), Then: ident("A"), Else: ident("B")}),
			want: "(extends T U A B)",
		},
		{
			name: "if without else",
			node: Generate(&IfExpr{
				Condition: Generate(&ExtendsInfixOp{Lhs: ident("T"), Op: OpExtends, Rhs: ident("U")}),
				Then:      ident("A"),
			}),
			want: "(if (<: T U) A)",
		},
		{
			name: "match",
			node: Generate(&MatchExpr{
				Value: ident("T"),
				Arms: []MatchArm{
					{Pattern: ident("A"), Body: ident("B")},
					{Pattern: ident("_"), Body: ident("C")},
				},
			}),
			want: "(match T (arm A B) (arm _ C))",
		},
		{
			name: "cond with else",
			node: Generate(&CondExpr{
				Arms: []CondArm{{
					Condition: Generate(&ExtendsInfixOp{Lhs: ident("T"), Op: OpExtends, Rhs: ident("U")}),
					Body:      ident("A"),
				}},
				Else: ident("B"),
			}),
			want: "(cond (arm (<: T U) A) (else B))",
		},
		{
			name: "cond without else",
			node: Generate(&CondExpr{
				Arms: []CondArm{{
					Condition: Generate(&ExtendsInfixOp{Lhs: ident("T"), Op: OpExtends, Rhs: ident("U")}),
					Body:      ident("A"),
				}},
			}),
			want: "(cond (arm (<: T U) A))",
		},
		{
			name: "object and access",
			node: Generate(&Access{
				Lhs:   Generate(&ObjectLiteral{Properties: []Property{{Key: "k", Value: ident("V")}}}),
				Rhs:   ident("k"),
				IsDot: true,
			}),
			want: "(. (object (k V)) k)",
		},
		{
			name: "string literal is quoted",
			node: Generate(&String{Value: "hi"}),
			want: `"hi"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Sexpr(); got != tt.want {
				t.Errorf("Sexpr() = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestSexprLetDeterminism tests that binding order in the dump is sorted,
// not map iteration order.
func TestSexprLetDeterminism(t *testing.T) {
	node := Generate(&LetExpr{
		Bindings: Bindings{
			"z": Generate(&Number{Raw: "1"}),
			"a": Generate(&Number{Raw: "2"}),
			"m": Generate(&Number{Raw: "3"}),
		},
		Body: Generate(&Ident{Name: "z"}),
	})

	want := "(let ((a 2) (m 3) (z 1)) z)"
	for i := 0; i < 16; i++ {
		if got := node.Sexpr(); got != want {
			t.Fatalf("Sexpr() = %s, want %s", got, want)
		}
	}
}
