// Package ast defines the Abstract Syntax Tree (AST) nodes for the newtype
// language and the generic traversal infrastructure the simplification
// passes are built on.
//
// A Node pairs a Value (the tagged variant) with an optional source span.
// Nodes built by the parser carry a span; nodes synthesized by a pass do
// not. All construction goes through New, Generate, Map or Replace so that
// span provenance is never silently invented or lost.
package ast

import (
	"github.com/newtype-lang/newtype/internal/position"
)

// Node is a tree element: an optional source span plus the wrapped value.
// A nil span marks a generated node (produced by a pass, not by parsing).
type Node struct {
	Span  *position.Span
	Value Value
}

// New creates a parser-built node carrying the given span.
func New(span position.Span, value Value) *Node {
	s := span
	return &Node{Span: &s, Value: value}
}

// Generate creates a spanless node. Its provenance is the pass that built
// it, not the source text.
func Generate(value Value) *Node {
	return &Node{Value: value}
}

// IsGenerated reports whether the node was synthesized by a pass.
func (n *Node) IsGenerated() bool { return n.Span == nil }

// Map applies f to the wrapped value and returns a new node with the same
// span.
func (n *Node) Map(f func(Value) Value) *Node {
	return &Node{Span: n.Span, Value: f(n.Value)}
}

// Replace installs a new value, keeping the span.
func (n *Node) Replace(value Value) *Node {
	return &Node{Span: n.Span, Value: value}
}

// Value is the closed union of AST variants. Only types in this package
// implement it; adding a variant requires adding cases to the traversal
// engine, Clone and Equal.
type Value interface {
	value()
	// Sexpr returns the s-expression debug form of the value.
	Sexpr() string
}

// Nodes is an ordered list of child nodes.
type Nodes = []*Node

// Bindings maps a bound identifier to its value. Lookup-only: insertion
// order never affects output.
type Bindings map[string]*Node

// ===== Leaf variants =====

// Ident is an identifier reference.
type Ident struct {
	Name string
}

// Number is a numeric literal, kept as raw source text.
type Number struct {
	Raw string
}

// String is a string literal.
type String struct {
	Value string
}

// TemplateString is a template string literal, kept raw including
// backticks.
type TemplateString struct {
	Raw string
}

// Boolean is the literal true or false.
type Boolean struct {
	Value bool
}

// Null is the null literal type.
type Null struct{}

// Undefined is the undefined literal type.
type Undefined struct{}

// Never is the bottom type.
type Never struct{}

// Any is the top type any.
type Any struct{}

// Unknown is the top type unknown.
type Unknown struct{}

// PrimitiveKind enumerates the built-in primitive type keywords.
type PrimitiveKind int

const (
	PrimitiveNumber PrimitiveKind = iota
	PrimitiveString
	PrimitiveBoolean
	PrimitiveObject
	PrimitiveSymbol
	PrimitiveBigInt
)

func (pk PrimitiveKind) String() string {
	switch pk {
	case PrimitiveNumber:
		return "number"
	case PrimitiveString:
		return "string"
	case PrimitiveBoolean:
		return "boolean"
	case PrimitiveObject:
		return "object"
	case PrimitiveSymbol:
		return "symbol"
	case PrimitiveBigInt:
		return "bigint"
	default:
		return "unknown"
	}
}

// Primitive is a primitive type keyword (number, string, ...).
type Primitive struct {
	Kind PrimitiveKind
}

// NoOp is a placeholder that compiles to nothing.
type NoOp struct{}

// ===== Composite variants =====

// Tuple is an ordered tuple type: [a, b, c].
type Tuple struct {
	Items Nodes
}

// Array is an array type: Element[].
type Array struct {
	Element *Node
}

// Property is a single key/value pair of an object literal.
type Property struct {
	Key   string
	Value *Node
}

// ObjectLiteral is an object type literal with ordered properties.
type ObjectLiteral struct {
	Properties []Property
}

// Access is member access: lhs.rhs when IsDot, lhs[rhs] otherwise.
type Access struct {
	Lhs   *Node
	Rhs   *Node
	IsDot bool
}

// InfixOperator enumerates the generic infix operators.
type InfixOperator int

const (
	OpUnion        InfixOperator = iota // |
	OpIntersection                      // &
	OpAdd                               // +
	OpSub                               // -
	OpMul                               // *
	OpDiv                               // /
)

func (op InfixOperator) String() string {
	switch op {
	case OpUnion:
		return "|"
	case OpIntersection:
		return "&"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "unknown"
	}
}

// InfixOp is a generic infix operation (union, intersection, arithmetic).
type InfixOp struct {
	Lhs *Node
	Op  InfixOperator
	Rhs *Node
}

// ExtendsOperator enumerates the operators of the extends-condition
// sub-grammar.
type ExtendsOperator int

const (
	OpExtends         ExtendsOperator = iota // <:
	OpNotExtends                             // !<:
	OpEquals                                 // ==
	OpNotEquals                              // !=
	OpStrictEquals                           // ===
	OpStrictNotEquals                        // !==
	OpAnd                                    // and
	OpOr                                     // or
)

func (op ExtendsOperator) String() string {
	switch op {
	case OpExtends:
		return "<:"
	case OpNotExtends:
		return "!<:"
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	case OpStrictEquals:
		return "==="
	case OpStrictNotEquals:
		return "!=="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "unknown"
	}
}

// ExtendsInfixOp is a binary operation in the extends-condition grammar.
type ExtendsInfixOp struct {
	Lhs *Node
	Op  ExtendsOperator
	Rhs *Node
}

// PrefixOperator enumerates the prefix operators of the extends-condition
// grammar.
type PrefixOperator int

const (
	OpNot PrefixOperator = iota // not
)

func (op PrefixOperator) String() string {
	switch op {
	case OpNot:
		return "not"
	default:
		return "unknown"
	}
}

// ExtendsPrefixOp is a prefix operation in the extends-condition grammar.
type ExtendsPrefixOp struct {
	Op    PrefixOperator
	Value *Node
}

// ExtendsExpr is the canonical conditional: does Lhs extend Rhs? This is
// the sole terminal conditional form every surface construct lowers to,
// and it always has exactly four children.
type ExtendsExpr struct {
	Lhs  *Node
	Rhs  *Node
	Then *Node
	Else *Node
}

// IfExpr is the surface conditional. Else may be nil; a missing else is
// semantically the bottom type, not an omitted branch.
type IfExpr struct {
	Condition *Node
	Then      *Node
	Else      *Node
}

// MatchArm is a single pattern/body pair of a match expression.
type MatchArm struct {
	Pattern *Node
	Body    *Node
}

// MatchExpr is the surface match expression. At most one arm may carry
// the wildcard pattern `_`; that is checked at simplification time.
type MatchExpr struct {
	Value *Node
	Arms  []MatchArm
}

// CondArm is a single condition/body pair of a cond expression.
type CondArm struct {
	Condition *Node
	Body      *Node
}

// CondExpr is the surface multi-arm conditional: ordered arms tested
// first to last, first passing condition wins. Else may be nil; a
// missing else is semantically the bottom type.
type CondExpr struct {
	Arms []CondArm
	Else *Node
}

// LetExpr binds identifiers to values over a body. Bindings do not see
// each other; simplification inlines them into the body.
type LetExpr struct {
	Bindings Bindings
	Body     *Node
}

// TypeParameter is a single type parameter of a type alias.
type TypeParameter struct {
	Name       string
	Constraint *Node // nil if unconstrained
	Default    *Node // nil if no default
	Rest       bool
}

// TypeAlias is a top-level type alias declaration.
type TypeAlias struct {
	Export bool
	Name   string
	Params Nodes // each value is a *TypeParameter
	Body   *Node
}

// MappingModifier is a readonly/optional modifier on a mapped type.
type MappingModifier int

const (
	ModNone MappingModifier = iota
	ModAdd
	ModRemove
)

func (m MappingModifier) String() string {
	switch m {
	case ModAdd:
		return "+"
	case ModRemove:
		return "-"
	default:
		return ""
	}
}

// MappedType is a mapped type: { [Index in Iterable as RemappedAs]: Body }.
type MappedType struct {
	Index       string
	Iterable    *Node
	RemappedAs  *Node // nil when not remapped
	ReadonlyMod MappingModifier
	OptionalMod MappingModifier
	Body        *Node
}

// NamespaceAccess is namespace member access: Lhs::Rhs.
type NamespaceAccess struct {
	Lhs *Node
	Rhs *Node
}

// Builtin is a builtin macro invocation (keyof, typeof, ...). The argument
// is opaque to simplification; a separate evaluator consumes it.
type Builtin struct {
	Name     string
	Argument *Node
}

// Application applies a named generic type to arguments: Name(args...).
type Application struct {
	Name string
	Args Nodes
}

// Statement wraps a single top-level item. Statements are the one place
// traversal context threads across siblings in sequence.
type Statement struct {
	Inner *Node
}

// Program is the root: an ordered list of statements.
type Program struct {
	Statements Nodes
}

func (*Ident) value()           {}
func (*Number) value()          {}
func (*String) value()          {}
func (*TemplateString) value()  {}
func (*Boolean) value()         {}
func (*Null) value()            {}
func (*Undefined) value()       {}
func (*Never) value()           {}
func (*Any) value()             {}
func (*Unknown) value()         {}
func (*Primitive) value()       {}
func (*NoOp) value()            {}
func (*Tuple) value()           {}
func (*Array) value()           {}
func (*ObjectLiteral) value()   {}
func (*Access) value()          {}
func (*InfixOp) value()         {}
func (*ExtendsInfixOp) value()  {}
func (*ExtendsPrefixOp) value() {}
func (*ExtendsExpr) value()     {}
func (*IfExpr) value()          {}
func (*MatchExpr) value()       {}
func (*CondExpr) value()        {}
func (*LetExpr) value()         {}
func (*TypeParameter) value()   {}
func (*TypeAlias) value()       {}
func (*MappedType) value()      {}
func (*NamespaceAccess) value() {}
func (*Builtin) value()         {}
func (*Application) value()     {}
func (*Statement) value()       {}
func (*Program) value()         {}
