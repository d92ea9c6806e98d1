// Package simplify desugars the newtype surface language into canonical
// form. After simplification a tree contains no if, match, cond or let
// nodes; every conditional has been lowered to nested ExtendsExpr nodes
// and every let binding has been inlined into its body.
//
// The passes assume grammar-level restrictions already hold (an if
// condition is an extends-expression, a match has at most one wildcard
// arm). A violation is a parser/pass mismatch, not user error, and
// terminates the process with a dump of the offending subtree.
package simplify

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/newtype-lang/newtype/internal/ast"
)

// Simplify rewrites the tree rooted at node into canonical form. The
// walk is post-order, so inner conditionals, matches and lets are fully
// normalized before an enclosing construct is rewritten.
func Simplify(node *ast.Node) *ast.Node {
	out, _ := ast.Postwalk(node, struct{}{}, func(n *ast.Node, ctx struct{}) (*ast.Node, struct{}) {
		switch v := n.Value.(type) {
		case *ast.IfExpr:
			elseBranch := v.Else
			if elseBranch == nil {
				// A missing else is the bottom type, not an omitted branch.
				elseBranch = ast.Generate(&ast.Never{})
			}
			return normalizeConditional(v.Condition, v.Then, elseBranch), ctx
		case *ast.MatchExpr:
			return compileMatch(n, v), ctx
		case *ast.CondExpr:
			return compileCond(v), ctx
		case *ast.LetExpr:
			return eliminateLet(v), ctx
		default:
			return n, ctx
		}
	})
	return out
}

// normalizeConditional lowers an extends-condition with a then/else
// branch pair into nested canonical conditionals. The recursion is over
// the condition shape only; branches are cloned at every use site so no
// subtree ends up with two parents.
func normalizeConditional(condition, thenBranch, elseBranch *ast.Node) *ast.Node {
	switch c := condition.Value.(type) {
	case *ast.ExtendsPrefixOp:
		switch c.Op {
		case ast.OpNot:
			// not C: swap the branches.
			return normalizeConditional(c.Value, elseBranch, thenBranch)
		default:
			fatal(fmt.Sprintf("unsupported prefix operator %q in extends condition", c.Op), condition)
		}
	case *ast.ExtendsInfixOp:
		switch c.Op {
		case ast.OpExtends:
			return ast.Generate(&ast.ExtendsExpr{
				Lhs:  c.Lhs.Clone(),
				Rhs:  c.Rhs.Clone(),
				Then: thenBranch.Clone(),
				Else: elseBranch.Clone(),
			})
		case ast.OpNotExtends:
			return ast.Generate(&ast.ExtendsExpr{
				Lhs:  c.Lhs.Clone(),
				Rhs:  c.Rhs.Clone(),
				Then: elseBranch.Clone(),
				Else: thenBranch.Clone(),
			})
		case ast.OpAnd:
			// The else branch is reached if either conjunct fails.
			inner := normalizeConditional(c.Rhs, thenBranch, elseBranch)
			return normalizeConditional(c.Lhs, inner, elseBranch)
		case ast.OpOr:
			// Either disjunct reaching then suffices.
			inner := normalizeConditional(c.Rhs, thenBranch, elseBranch)
			return normalizeConditional(c.Lhs, thenBranch, inner)
		default:
			fatal(fmt.Sprintf("unsupported extends operator %q", c.Op), condition)
		}
	default:
		fatal("expected an extends condition", condition)
	}
	panic("unreachable")
}

// compileMatch folds the ordered arms of a match expression into a chain
// of canonical conditionals. The chain tests arms left to right and the
// first match wins; the optional wildcard arm becomes the final default.
func compileMatch(node *ast.Node, match *ast.MatchExpr) *ast.Node {
	wildcard := -1
	var defaultBody *ast.Node

	for i, arm := range match.Arms {
		ident, ok := arm.Pattern.Value.(*ast.Ident)
		if !ok || ident.Name != "_" {
			continue
		}
		if wildcard >= 0 {
			fatal("multiple wildcard arms in match expression", node)
		}
		wildcard = i
		defaultBody = arm.Body
	}

	if defaultBody == nil {
		defaultBody = ast.Generate(&ast.Never{})
	}

	// Fold right to left so earlier arms take precedence.
	acc := defaultBody
	for i := len(match.Arms) - 1; i >= 0; i-- {
		if i == wildcard {
			continue
		}
		arm := match.Arms[i]
		acc = ast.Generate(&ast.ExtendsExpr{
			Lhs:  match.Value.Clone(),
			Rhs:  arm.Pattern,
			Then: arm.Body,
			Else: acc,
		})
	}
	return acc
}

// compileCond folds the ordered arms of a cond expression into a chain
// of canonical conditionals. Arms are tested first to last and the first
// passing condition wins; a missing else arm is the bottom type.
func compileCond(cond *ast.CondExpr) *ast.Node {
	acc := cond.Else
	if acc == nil {
		acc = ast.Generate(&ast.Never{})
	}
	for i := len(cond.Arms) - 1; i >= 0; i-- {
		arm := cond.Arms[i]
		acc = normalizeConditional(arm.Condition, arm.Body, acc)
	}
	return acc
}

// eliminateLet replaces a let expression with its body, every reference
// to a bound identifier substituted by a deep copy of its value. Bound
// values are simplified independently first: bindings never see each
// other. Free identifiers pass through untouched.
func eliminateLet(let *ast.LetExpr) *ast.Node {
	bindings := make(ast.Bindings, len(let.Bindings))
	for name, value := range let.Bindings {
		bindings[name] = Simplify(value)
	}

	out, _ := ast.Prewalk(let.Body, bindings, func(n *ast.Node, ctx ast.Bindings) (*ast.Node, ast.Bindings) {
		if ident, ok := n.Value.(*ast.Ident); ok {
			if bound, present := ctx[ident.Name]; present {
				return bound.Clone(), ctx
			}
		}
		return n, ctx
	})
	return out
}

// fatal aborts on a grammar-contract violation. These indicate a
// parser/pass mismatch, so the message carries the subtree in both its
// s-expression and raw forms for diagnosis.
func fatal(msg string, node *ast.Node) {
	panic(fmt.Sprintf("simplify: %s\noffending subtree: %s\n%s", msg, node.Sexpr(), spew.Sdump(node.Value)))
}
