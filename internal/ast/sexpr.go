// S-expression debug dump. A read-only projection of the tree used by
// golden tests and fatal diagnostics; it is not a parseable format.
package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Sexpr returns the s-expression form of the tree rooted at n.
func (n *Node) Sexpr() string {
	if n == nil {
		return "nil"
	}
	return n.Value.Sexpr()
}

func list(parts ...string) string {
	return "(" + strings.Join(parts, " ") + ")"
}

func (v *Ident) Sexpr() string          { return v.Name }
func (v *Number) Sexpr() string         { return v.Raw }
func (v *String) Sexpr() string         { return fmt.Sprintf("%q", v.Value) }
func (v *TemplateString) Sexpr() string { return v.Raw }
func (v *Boolean) Sexpr() string        { return fmt.Sprintf("%t", v.Value) }
func (v *Null) Sexpr() string           { return "null" }
func (v *Undefined) Sexpr() string      { return "undefined" }
func (v *Never) Sexpr() string          { return "never" }
func (v *Any) Sexpr() string            { return "any" }
func (v *Unknown) Sexpr() string        { return "unknown" }
func (v *Primitive) Sexpr() string      { return v.Kind.String() }
func (v *NoOp) Sexpr() string           { return "no-op" }

func (v *Tuple) Sexpr() string {
	parts := []string{"tuple"}
	for _, item := range v.Items {
		parts = append(parts, item.Sexpr())
	}
	return list(parts...)
}

func (v *Array) Sexpr() string {
	return list("array", v.Element.Sexpr())
}

func (v *ObjectLiteral) Sexpr() string {
	parts := []string{"object"}
	for _, prop := range v.Properties {
		parts = append(parts, list(prop.Key, prop.Value.Sexpr()))
	}
	return list(parts...)
}

func (v *Access) Sexpr() string {
	op := "[]"
	if v.IsDot {
		op = "."
	}
	return list(op, v.Lhs.Sexpr(), v.Rhs.Sexpr())
}

func (v *InfixOp) Sexpr() string {
	return list(v.Op.String(), v.Lhs.Sexpr(), v.Rhs.Sexpr())
}

func (v *ExtendsInfixOp) Sexpr() string {
	return list(v.Op.String(), v.Lhs.Sexpr(), v.Rhs.Sexpr())
}

func (v *ExtendsPrefixOp) Sexpr() string {
	return list(v.Op.String(), v.Value.Sexpr())
}

func (v *ExtendsExpr) Sexpr() string {
	return list("extends", v.Lhs.Sexpr(), v.Rhs.Sexpr(), v.Then.Sexpr(), v.Else.Sexpr())
}

func (v *IfExpr) Sexpr() string {
	if v.Else == nil {
		return list("if", v.Condition.Sexpr(), v.Then.Sexpr())
	}
	return list("if", v.Condition.Sexpr(), v.Then.Sexpr(), v.Else.Sexpr())
}

func (v *MatchExpr) Sexpr() string {
	parts := []string{"match", v.Value.Sexpr()}
	for _, arm := range v.Arms {
		parts = append(parts, list("arm", arm.Pattern.Sexpr(), arm.Body.Sexpr()))
	}
	return list(parts...)
}

func (v *CondExpr) Sexpr() string {
	parts := []string{"cond"}
	for _, arm := range v.Arms {
		parts = append(parts, list("arm", arm.Condition.Sexpr(), arm.Body.Sexpr()))
	}
	if v.Else != nil {
		parts = append(parts, list("else", v.Else.Sexpr()))
	}
	return list(parts...)
}

func (v *LetExpr) Sexpr() string {
	// Bindings are a map; sort keys so the dump is deterministic.
	names := make([]string, 0, len(v.Bindings))
	for name := range v.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	bindings := make([]string, 0, len(names))
	for _, name := range names {
		bindings = append(bindings, list(name, v.Bindings[name].Sexpr()))
	}
	return list("let", list(bindings...), v.Body.Sexpr())
}

func (v *TypeParameter) Sexpr() string {
	parts := []string{"param", v.Name}
	if v.Constraint != nil {
		parts = append(parts, list("constraint", v.Constraint.Sexpr()))
	}
	if v.Default != nil {
		parts = append(parts, list("default", v.Default.Sexpr()))
	}
	if v.Rest {
		parts = append(parts, "rest")
	}
	return list(parts...)
}

func (v *TypeAlias) Sexpr() string {
	parts := []string{"type", v.Name}
	if v.Export {
		parts = append(parts, "export")
	}
	for _, param := range v.Params {
		parts = append(parts, param.Sexpr())
	}
	parts = append(parts, v.Body.Sexpr())
	return list(parts...)
}

func (v *MappedType) Sexpr() string {
	parts := []string{"mapped", v.Index, v.Iterable.Sexpr()}
	if v.RemappedAs != nil {
		parts = append(parts, list("as", v.RemappedAs.Sexpr()))
	}
	if v.ReadonlyMod != ModNone {
		parts = append(parts, v.ReadonlyMod.String()+"readonly")
	}
	if v.OptionalMod != ModNone {
		parts = append(parts, v.OptionalMod.String()+"?")
	}
	parts = append(parts, v.Body.Sexpr())
	return list(parts...)
}

func (v *NamespaceAccess) Sexpr() string {
	return list("::", v.Lhs.Sexpr(), v.Rhs.Sexpr())
}

func (v *Builtin) Sexpr() string {
	return list(v.Name, v.Argument.Sexpr())
}

func (v *Application) Sexpr() string {
	parts := []string{"apply", v.Name}
	for _, arg := range v.Args {
		parts = append(parts, arg.Sexpr())
	}
	return list(parts...)
}

func (v *Statement) Sexpr() string {
	return v.Inner.Sexpr()
}

func (v *Program) Sexpr() string {
	parts := []string{"program"}
	for _, stmt := range v.Statements {
		parts = append(parts, stmt.Sexpr())
	}
	return list(parts...)
}
