// Package codegen renders simplified trees as TypeScript source text.
//
// The emitter expects its input to already be in canonical form: the
// surface constructs (if, match, cond, let and the extends-condition
// operators) must have been lowered by the simplify package. Meeting a
// surface construct here is a pipeline bug and panics.
package codegen

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/davecgh/go-spew/spew"

	"github.com/newtype-lang/newtype/internal/ast"
)

// DefaultTarget is the TypeScript version assumed when no target is
// configured.
const DefaultTarget = "5.0.0"

// UnsupportedError reports a construct that the configured TypeScript
// target cannot express.
type UnsupportedError struct {
	Feature string
	Needs   string
	Target  *semver.Version
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s requires TypeScript %s, target is %s", e.Feature, e.Needs, e.Target)
}

// Generator emits TypeScript for a given language target.
type Generator struct {
	target *semver.Version
}

// New creates a generator for the given TypeScript target version.
func New(target string) (*Generator, error) {
	if target == "" {
		target = DefaultTarget
	}
	v, err := semver.NewVersion(target)
	if err != nil {
		return nil, fmt.Errorf("invalid TypeScript target %q: %w", target, err)
	}
	return &Generator{target: v}, nil
}

// Generate renders a node (usually a whole program) as TypeScript.
func (g *Generator) Generate(node *ast.Node) (string, error) {
	var b strings.Builder
	if err := g.emit(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (g *Generator) emit(b *strings.Builder, node *ast.Node) error {
	switch v := node.Value.(type) {
	case *ast.Program:
		for i, stmt := range v.Statements {
			if i > 0 {
				b.WriteString("\n")
			}
			if err := g.emit(b, stmt); err != nil {
				return err
			}
		}
		return nil

	case *ast.Statement:
		if _, ok := v.Inner.Value.(*ast.NoOp); ok {
			return nil
		}
		if err := g.emit(b, v.Inner); err != nil {
			return err
		}
		if _, ok := v.Inner.Value.(*ast.TypeAlias); !ok {
			b.WriteString(";")
		}
		b.WriteString("\n")
		return nil

	case *ast.TypeAlias:
		return g.emitTypeAlias(b, v)

	case *ast.Ident:
		b.WriteString(v.Name)
		return nil

	case *ast.Number:
		b.WriteString(v.Raw)
		return nil

	case *ast.String:
		fmt.Fprintf(b, "%q", v.Value)
		return nil

	case *ast.TemplateString:
		if err := g.require("template literal types", "4.1.0"); err != nil {
			return err
		}
		b.WriteString(v.Raw)
		return nil

	case *ast.Boolean:
		fmt.Fprintf(b, "%t", v.Value)
		return nil

	case *ast.Null:
		b.WriteString("null")
		return nil
	case *ast.Undefined:
		b.WriteString("undefined")
		return nil
	case *ast.Never:
		b.WriteString("never")
		return nil
	case *ast.Any:
		b.WriteString("any")
		return nil
	case *ast.Unknown:
		b.WriteString("unknown")
		return nil

	case *ast.Primitive:
		if v.Kind == ast.PrimitiveBigInt {
			if err := g.require("the bigint primitive", "3.2.0"); err != nil {
				return err
			}
		}
		b.WriteString(v.Kind.String())
		return nil

	case *ast.NoOp:
		return nil

	case *ast.Tuple:
		b.WriteString("[")
		for i, item := range v.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := g.emit(b, item); err != nil {
				return err
			}
		}
		b.WriteString("]")
		return nil

	case *ast.Array:
		if err := g.emitOperand(b, v.Element); err != nil {
			return err
		}
		b.WriteString("[]")
		return nil

	case *ast.ObjectLiteral:
		if len(v.Properties) == 0 {
			b.WriteString("{}")
			return nil
		}
		b.WriteString("{ ")
		for i, prop := range v.Properties {
			if i > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(b, "%s: ", prop.Key)
			if err := g.emit(b, prop.Value); err != nil {
				return err
			}
		}
		b.WriteString(" }")
		return nil

	case *ast.Access:
		if err := g.emitOperand(b, v.Lhs); err != nil {
			return err
		}
		b.WriteString("[")
		if v.IsDot {
			// a.b lowers to the indexed access a["b"].
			ident, ok := v.Rhs.Value.(*ast.Ident)
			if !ok {
				g.fatal("dot access with a non-identifier member", node)
			}
			fmt.Fprintf(b, "%q", ident.Name)
		} else if err := g.emit(b, v.Rhs); err != nil {
			return err
		}
		b.WriteString("]")
		return nil

	case *ast.InfixOp:
		return g.emitInfixOp(b, node, v)

	case *ast.ExtendsExpr:
		return g.emitExtendsExpr(b, v)

	case *ast.MappedType:
		return g.emitMappedType(b, v)

	case *ast.NamespaceAccess:
		if err := g.emit(b, v.Lhs); err != nil {
			return err
		}
		b.WriteString(".")
		return g.emit(b, v.Rhs)

	case *ast.Builtin:
		b.WriteString(v.Name)
		b.WriteString(" ")
		return g.emit(b, v.Argument)

	case *ast.Application:
		b.WriteString(v.Name)
		b.WriteString("<")
		for i, arg := range v.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := g.emit(b, arg); err != nil {
				return err
			}
		}
		b.WriteString(">")
		return nil

	case *ast.TypeParameter:
		return g.emitTypeParameter(b, v)

	case *ast.IfExpr, *ast.MatchExpr, *ast.CondExpr, *ast.LetExpr, *ast.ExtendsInfixOp, *ast.ExtendsPrefixOp:
		g.fatal("surface construct reached the emitter", node)
		return nil

	default:
		g.fatal("unhandled node kind", node)
		return nil
	}
}

func (g *Generator) emitTypeAlias(b *strings.Builder, alias *ast.TypeAlias) error {
	if alias.Export {
		b.WriteString("export ")
	}
	fmt.Fprintf(b, "type %s", alias.Name)

	if len(alias.Params) > 0 {
		b.WriteString("<")
		for i, param := range alias.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := g.emit(b, param); err != nil {
				return err
			}
		}
		b.WriteString(">")
	}

	b.WriteString(" = ")
	if err := g.emit(b, alias.Body); err != nil {
		return err
	}
	b.WriteString(";")
	return nil
}

func (g *Generator) emitTypeParameter(b *strings.Builder, param *ast.TypeParameter) error {
	b.WriteString(param.Name)
	if param.Constraint != nil {
		b.WriteString(" extends ")
		if err := g.emit(b, param.Constraint); err != nil {
			return err
		}
	}
	if param.Default != nil {
		b.WriteString(" = ")
		if err := g.emit(b, param.Default); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) emitInfixOp(b *strings.Builder, node *ast.Node, op *ast.InfixOp) error {
	switch op.Op {
	case ast.OpUnion, ast.OpIntersection:
	default:
		// TypeScript has no arithmetic over types.
		return &UnsupportedError{
			Feature: fmt.Sprintf("the %s type operator", op.Op),
			Needs:   "no released version",
			Target:  g.target,
		}
	}

	if err := g.emitOperand(b, op.Lhs); err != nil {
		return err
	}
	fmt.Fprintf(b, " %s ", op.Op)
	return g.emitOperand(b, op.Rhs)
}

func (g *Generator) emitExtendsExpr(b *strings.Builder, extends *ast.ExtendsExpr) error {
	if err := g.emitOperand(b, extends.Lhs); err != nil {
		return err
	}
	b.WriteString(" extends ")
	if err := g.emitOperand(b, extends.Rhs); err != nil {
		return err
	}
	b.WriteString("\n  ? ")
	if err := g.emit(b, extends.Then); err != nil {
		return err
	}
	b.WriteString("\n  : ")
	return g.emit(b, extends.Else)
}

func (g *Generator) emitMappedType(b *strings.Builder, mapped *ast.MappedType) error {
	b.WriteString("{ ")
	switch mapped.ReadonlyMod {
	case ast.ModAdd:
		b.WriteString("readonly ")
	case ast.ModRemove:
		b.WriteString("-readonly ")
	}

	fmt.Fprintf(b, "[%s in ", mapped.Index)
	if err := g.emit(b, mapped.Iterable); err != nil {
		return err
	}
	if mapped.RemappedAs != nil {
		if err := g.require("key remapping in mapped types", "4.1.0"); err != nil {
			return err
		}
		b.WriteString(" as ")
		if err := g.emit(b, mapped.RemappedAs); err != nil {
			return err
		}
	}
	b.WriteString("]")

	switch mapped.OptionalMod {
	case ast.ModAdd:
		b.WriteString("?")
	case ast.ModRemove:
		b.WriteString("-?")
	}

	b.WriteString(": ")
	if err := g.emit(b, mapped.Body); err != nil {
		return err
	}
	b.WriteString(" }")
	return nil
}

// emitOperand emits a node, parenthesizing the forms that would bind
// differently when nested as an operand.
func (g *Generator) emitOperand(b *strings.Builder, node *ast.Node) error {
	switch node.Value.(type) {
	case *ast.ExtendsExpr, *ast.InfixOp:
		b.WriteString("(")
		if err := g.emit(b, node); err != nil {
			return err
		}
		b.WriteString(")")
		return nil
	default:
		return g.emit(b, node)
	}
}

// require fails when the configured target predates the version that
// introduced a feature.
func (g *Generator) require(feature, needs string) error {
	min := semver.MustParse(needs)
	if g.target.LessThan(min) {
		return &UnsupportedError{Feature: feature, Needs: needs, Target: g.target}
	}
	return nil
}

func (g *Generator) fatal(msg string, node *ast.Node) {
	panic(fmt.Sprintf("codegen: %s\n%s\n%s", msg, node.Value.Sexpr(), spew.Sdump(node)))
}
