// Generic traversal engine. One recursive algorithm, parameterized by a
// pre-order and a post-order hook, expresses every traversal discipline
// the passes need: Prewalk, Postwalk and the context-free Transform.
//
// The context flows top-down into each child independently; a child's
// outgoing context is dropped, so sibling subtrees never observe each
// other's context. The single exception is a sequence of statements,
// which threads context from one statement to the next so a later
// statement can see what an earlier one contributed.
//
// Children are visited in declaration order. Adding a composite variant
// to the union requires adding a case here; unknown variants are treated
// as leaves (identity), so the engine is total and never fails.
package ast

// Hook is a traversal callback. It may rewrite the node, the context, or
// both. Hooks must derive a new context rather than mutating a
// reference-typed one in place.
type Hook[C any] func(*Node, C) (*Node, C)

// Traverse walks the tree rooted at node, invoking pre before descending
// into children and post after they have been processed.
func Traverse[C any](node *Node, ctx C, pre, post Hook[C]) (*Node, C) {
	node, ctx = pre(node, ctx)

	// Children receive the context as of the pre hook; their outgoing
	// context is dropped except where a case threads it explicitly.
	walk := func(child *Node) *Node {
		out, _ := Traverse(child, ctx, pre, post)
		return out
	}
	walkEach := func(children Nodes) Nodes {
		out := make(Nodes, len(children))
		for i, child := range children {
			out[i] = walk(child)
		}
		return out
	}
	walkOpt := func(child *Node) *Node {
		if child == nil {
			return nil
		}
		return walk(child)
	}

	switch v := node.Value.(type) {
	case *Tuple:
		node = node.Replace(&Tuple{Items: walkEach(v.Items)})

	case *Array:
		node = node.Replace(&Array{Element: walk(v.Element)})

	case *ObjectLiteral:
		props := make([]Property, len(v.Properties))
		for i, prop := range v.Properties {
			props[i] = Property{Key: prop.Key, Value: walk(prop.Value)}
		}
		node = node.Replace(&ObjectLiteral{Properties: props})

	case *Access:
		node = node.Replace(&Access{Lhs: walk(v.Lhs), Rhs: walk(v.Rhs), IsDot: v.IsDot})

	case *InfixOp:
		node = node.Replace(&InfixOp{Lhs: walk(v.Lhs), Op: v.Op, Rhs: walk(v.Rhs)})

	case *ExtendsInfixOp:
		node = node.Replace(&ExtendsInfixOp{Lhs: walk(v.Lhs), Op: v.Op, Rhs: walk(v.Rhs)})

	case *ExtendsPrefixOp:
		node = node.Replace(&ExtendsPrefixOp{Op: v.Op, Value: walk(v.Value)})

	case *ExtendsExpr:
		node = node.Replace(&ExtendsExpr{
			Lhs:  walk(v.Lhs),
			Rhs:  walk(v.Rhs),
			Then: walk(v.Then),
			Else: walk(v.Else),
		})

	case *IfExpr:
		node = node.Replace(&IfExpr{
			Condition: walk(v.Condition),
			Then:      walk(v.Then),
			Else:      walkOpt(v.Else),
		})

	case *MatchExpr:
		value := walk(v.Value)
		arms := make([]MatchArm, len(v.Arms))
		for i, arm := range v.Arms {
			arms[i] = MatchArm{Pattern: walk(arm.Pattern), Body: walk(arm.Body)}
		}
		node = node.Replace(&MatchExpr{Value: value, Arms: arms})

	case *CondExpr:
		arms := make([]CondArm, len(v.Arms))
		for i, arm := range v.Arms {
			arms[i] = CondArm{Condition: walk(arm.Condition), Body: walk(arm.Body)}
		}
		node = node.Replace(&CondExpr{Arms: arms, Else: walkOpt(v.Else)})

	case *LetExpr:
		// Bindings are substitution data, not structural children; the
		// let-elimination pass simplifies them itself.
		node = node.Replace(&LetExpr{Bindings: v.Bindings, Body: walk(v.Body)})

	case *TypeParameter:
		node = node.Replace(&TypeParameter{
			Name:       v.Name,
			Constraint: walkOpt(v.Constraint),
			Default:    walkOpt(v.Default),
			Rest:       v.Rest,
		})

	case *TypeAlias:
		node = node.Replace(&TypeAlias{
			Export: v.Export,
			Name:   v.Name,
			Params: walkEach(v.Params),
			Body:   walk(v.Body),
		})

	case *MappedType:
		node = node.Replace(&MappedType{
			Index:       v.Index,
			Iterable:    walk(v.Iterable),
			RemappedAs:  walkOpt(v.RemappedAs),
			ReadonlyMod: v.ReadonlyMod,
			OptionalMod: v.OptionalMod,
			Body:        walk(v.Body),
		})

	case *NamespaceAccess:
		node = node.Replace(&NamespaceAccess{Lhs: walk(v.Lhs), Rhs: walk(v.Rhs)})

	case *Builtin:
		node = node.Replace(&Builtin{Name: v.Name, Argument: walk(v.Argument)})

	case *Application:
		node = node.Replace(&Application{Name: v.Name, Args: walkEach(v.Args)})

	case *Statement:
		// Statements may propagate context to their siblings.
		inner, innerCtx := Traverse(v.Inner, ctx, pre, post)
		ctx = innerCtx
		node = node.Replace(&Statement{Inner: inner})

	case *Program:
		stmts := make(Nodes, len(v.Statements))
		for i, stmt := range v.Statements {
			stmts[i], ctx = Traverse(stmt, ctx, pre, post)
		}
		node = node.Replace(&Program{Statements: stmts})

	default:
		// Leaf variants have no children.
	}

	return post(node, ctx)
}

// Prewalk traverses with only a pre-order hook.
func Prewalk[C any](node *Node, ctx C, pre Hook[C]) (*Node, C) {
	return Traverse(node, ctx, pre, identity[C])
}

// Postwalk traverses with only a post-order hook.
func Postwalk[C any](node *Node, ctx C, post Hook[C]) (*Node, C) {
	return Traverse(node, ctx, identity[C], post)
}

func identity[C any](n *Node, ctx C) (*Node, C) { return n, ctx }

// Transform is the context-free discipline: children are rewritten first,
// the node is reconstructed, then f is applied to the result.
func (n *Node) Transform(f func(*Node) *Node) *Node {
	out, _ := Postwalk(n, struct{}{}, func(node *Node, ctx struct{}) (*Node, struct{}) {
		return f(node), ctx
	})
	return out
}
