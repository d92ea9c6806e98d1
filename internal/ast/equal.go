package ast

// Equal reports structural (deep) equality of two trees. Spans are not
// compared: two nodes are equal when their values are, regardless of
// where they came from.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equalValues(a.Value, b.Value)
}

func equalNodes(a, b Nodes) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalValues(a, b Value) bool {
	switch a := a.(type) {
	case *Ident:
		b, ok := b.(*Ident)
		return ok && a.Name == b.Name
	case *Number:
		b, ok := b.(*Number)
		return ok && a.Raw == b.Raw
	case *String:
		b, ok := b.(*String)
		return ok && a.Value == b.Value
	case *TemplateString:
		b, ok := b.(*TemplateString)
		return ok && a.Raw == b.Raw
	case *Boolean:
		b, ok := b.(*Boolean)
		return ok && a.Value == b.Value
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Undefined:
		_, ok := b.(*Undefined)
		return ok
	case *Never:
		_, ok := b.(*Never)
		return ok
	case *Any:
		_, ok := b.(*Any)
		return ok
	case *Unknown:
		_, ok := b.(*Unknown)
		return ok
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.Kind == b.Kind
	case *NoOp:
		_, ok := b.(*NoOp)
		return ok
	case *Tuple:
		b, ok := b.(*Tuple)
		return ok && equalNodes(a.Items, b.Items)
	case *Array:
		b, ok := b.(*Array)
		return ok && Equal(a.Element, b.Element)
	case *ObjectLiteral:
		b, ok := b.(*ObjectLiteral)
		if !ok || len(a.Properties) != len(b.Properties) {
			return false
		}
		for i := range a.Properties {
			if a.Properties[i].Key != b.Properties[i].Key ||
				!Equal(a.Properties[i].Value, b.Properties[i].Value) {
				return false
			}
		}
		return true
	case *Access:
		b, ok := b.(*Access)
		return ok && a.IsDot == b.IsDot && Equal(a.Lhs, b.Lhs) && Equal(a.Rhs, b.Rhs)
	case *InfixOp:
		b, ok := b.(*InfixOp)
		return ok && a.Op == b.Op && Equal(a.Lhs, b.Lhs) && Equal(a.Rhs, b.Rhs)
	case *ExtendsInfixOp:
		b, ok := b.(*ExtendsInfixOp)
		return ok && a.Op == b.Op && Equal(a.Lhs, b.Lhs) && Equal(a.Rhs, b.Rhs)
	case *ExtendsPrefixOp:
		b, ok := b.(*ExtendsPrefixOp)
		return ok && a.Op == b.Op && Equal(a.Value, b.Value)
	case *ExtendsExpr:
		b, ok := b.(*ExtendsExpr)
		return ok && Equal(a.Lhs, b.Lhs) && Equal(a.Rhs, b.Rhs) &&
			Equal(a.Then, b.Then) && Equal(a.Else, b.Else)
	case *IfExpr:
		b, ok := b.(*IfExpr)
		return ok && Equal(a.Condition, b.Condition) && Equal(a.Then, b.Then) &&
			Equal(a.Else, b.Else)
	case *MatchExpr:
		b, ok := b.(*MatchExpr)
		if !ok || !Equal(a.Value, b.Value) || len(a.Arms) != len(b.Arms) {
			return false
		}
		for i := range a.Arms {
			if !Equal(a.Arms[i].Pattern, b.Arms[i].Pattern) ||
				!Equal(a.Arms[i].Body, b.Arms[i].Body) {
				return false
			}
		}
		return true
	case *CondExpr:
		b, ok := b.(*CondExpr)
		if !ok || len(a.Arms) != len(b.Arms) || !Equal(a.Else, b.Else) {
			return false
		}
		for i := range a.Arms {
			if !Equal(a.Arms[i].Condition, b.Arms[i].Condition) ||
				!Equal(a.Arms[i].Body, b.Arms[i].Body) {
				return false
			}
		}
		return true
	case *LetExpr:
		b, ok := b.(*LetExpr)
		if !ok || len(a.Bindings) != len(b.Bindings) || !Equal(a.Body, b.Body) {
			return false
		}
		for name, value := range a.Bindings {
			other, present := b.Bindings[name]
			if !present || !Equal(value, other) {
				return false
			}
		}
		return true
	case *TypeParameter:
		b, ok := b.(*TypeParameter)
		return ok && a.Name == b.Name && a.Rest == b.Rest &&
			Equal(a.Constraint, b.Constraint) && Equal(a.Default, b.Default)
	case *TypeAlias:
		b, ok := b.(*TypeAlias)
		return ok && a.Export == b.Export && a.Name == b.Name &&
			equalNodes(a.Params, b.Params) && Equal(a.Body, b.Body)
	case *MappedType:
		b, ok := b.(*MappedType)
		return ok && a.Index == b.Index && a.ReadonlyMod == b.ReadonlyMod &&
			a.OptionalMod == b.OptionalMod && Equal(a.Iterable, b.Iterable) &&
			Equal(a.RemappedAs, b.RemappedAs) && Equal(a.Body, b.Body)
	case *NamespaceAccess:
		b, ok := b.(*NamespaceAccess)
		return ok && Equal(a.Lhs, b.Lhs) && Equal(a.Rhs, b.Rhs)
	case *Builtin:
		b, ok := b.(*Builtin)
		return ok && a.Name == b.Name && Equal(a.Argument, b.Argument)
	case *Application:
		b, ok := b.(*Application)
		return ok && a.Name == b.Name && equalNodes(a.Args, b.Args)
	case *Statement:
		b, ok := b.(*Statement)
		return ok && Equal(a.Inner, b.Inner)
	case *Program:
		b, ok := b.(*Program)
		return ok && equalNodes(a.Statements, b.Statements)
	default:
		return false
	}
}
