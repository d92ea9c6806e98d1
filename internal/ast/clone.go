package ast

// Clone returns a deep copy of the node. Substitution sites each receive
// an independent copy so no subtree is ever shared between two parents.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Value: cloneValue(n.Value)}
	if n.Span != nil {
		s := *n.Span
		out.Span = &s
	}
	return out
}

// Clone returns a copy of the bindings with every bound value deeply
// cloned.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for name, value := range b {
		out[name] = value.Clone()
	}
	return out
}

func cloneNodes(nodes Nodes) Nodes {
	out := make(Nodes, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

func cloneValue(v Value) Value {
	switch v := v.(type) {
	case *Ident:
		c := *v
		return &c
	case *Number:
		c := *v
		return &c
	case *String:
		c := *v
		return &c
	case *TemplateString:
		c := *v
		return &c
	case *Boolean:
		c := *v
		return &c
	case *Null:
		return &Null{}
	case *Undefined:
		return &Undefined{}
	case *Never:
		return &Never{}
	case *Any:
		return &Any{}
	case *Unknown:
		return &Unknown{}
	case *Primitive:
		c := *v
		return &c
	case *NoOp:
		return &NoOp{}
	case *Tuple:
		return &Tuple{Items: cloneNodes(v.Items)}
	case *Array:
		return &Array{Element: v.Element.Clone()}
	case *ObjectLiteral:
		props := make([]Property, len(v.Properties))
		for i, prop := range v.Properties {
			props[i] = Property{Key: prop.Key, Value: prop.Value.Clone()}
		}
		return &ObjectLiteral{Properties: props}
	case *Access:
		return &Access{Lhs: v.Lhs.Clone(), Rhs: v.Rhs.Clone(), IsDot: v.IsDot}
	case *InfixOp:
		return &InfixOp{Lhs: v.Lhs.Clone(), Op: v.Op, Rhs: v.Rhs.Clone()}
	case *ExtendsInfixOp:
		return &ExtendsInfixOp{Lhs: v.Lhs.Clone(), Op: v.Op, Rhs: v.Rhs.Clone()}
	case *ExtendsPrefixOp:
		return &ExtendsPrefixOp{Op: v.Op, Value: v.Value.Clone()}
	case *ExtendsExpr:
		return &ExtendsExpr{
			Lhs:  v.Lhs.Clone(),
			Rhs:  v.Rhs.Clone(),
			Then: v.Then.Clone(),
			Else: v.Else.Clone(),
		}
	case *IfExpr:
		return &IfExpr{
			Condition: v.Condition.Clone(),
			Then:      v.Then.Clone(),
			Else:      v.Else.Clone(),
		}
	case *MatchExpr:
		arms := make([]MatchArm, len(v.Arms))
		for i, arm := range v.Arms {
			arms[i] = MatchArm{Pattern: arm.Pattern.Clone(), Body: arm.Body.Clone()}
		}
		return &MatchExpr{Value: v.Value.Clone(), Arms: arms}
	case *CondExpr:
		arms := make([]CondArm, len(v.Arms))
		for i, arm := range v.Arms {
			arms[i] = CondArm{Condition: arm.Condition.Clone(), Body: arm.Body.Clone()}
		}
		return &CondExpr{Arms: arms, Else: v.Else.Clone()}
	case *LetExpr:
		return &LetExpr{Bindings: v.Bindings.Clone(), Body: v.Body.Clone()}
	case *TypeParameter:
		return &TypeParameter{
			Name:       v.Name,
			Constraint: v.Constraint.Clone(),
			Default:    v.Default.Clone(),
			Rest:       v.Rest,
		}
	case *TypeAlias:
		return &TypeAlias{
			Export: v.Export,
			Name:   v.Name,
			Params: cloneNodes(v.Params),
			Body:   v.Body.Clone(),
		}
	case *MappedType:
		return &MappedType{
			Index:       v.Index,
			Iterable:    v.Iterable.Clone(),
			RemappedAs:  v.RemappedAs.Clone(),
			ReadonlyMod: v.ReadonlyMod,
			OptionalMod: v.OptionalMod,
			Body:        v.Body.Clone(),
		}
	case *NamespaceAccess:
		return &NamespaceAccess{Lhs: v.Lhs.Clone(), Rhs: v.Rhs.Clone()}
	case *Builtin:
		return &Builtin{Name: v.Name, Argument: v.Argument.Clone()}
	case *Application:
		return &Application{Name: v.Name, Args: cloneNodes(v.Args)}
	case *Statement:
		return &Statement{Inner: v.Inner.Clone()}
	case *Program:
		return &Program{Statements: cloneNodes(v.Statements)}
	default:
		return v
	}
}
