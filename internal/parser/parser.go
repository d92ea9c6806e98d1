// Package parser implements the recursive-descent parser for newtype
// source text. It produces ast.Node trees in which every node carries
// the span of the source text it was built from.
package parser

import (
	"fmt"
	"strings"

	"github.com/newtype-lang/newtype/internal/ast"
	"github.com/newtype-lang/newtype/internal/lexer"
	"github.com/newtype-lang/newtype/internal/position"
)

// ParseError is a syntax error with the span where it occurred. Line
// holds the offending source line so the rendered error can point at
// the failure.
type ParseError struct {
	Message string
	Span    position.Span
	Line    string
}

func (e *ParseError) Error() string {
	header := fmt.Sprintf("parse error at %s: %s", e.Span.String(), e.Message)
	if e.Line == "" {
		return header
	}
	caret := strings.Repeat(" ", e.Span.Start.Column-1) + "^"
	return fmt.Sprintf("%s\n  %s\n  %s", header, e.Line, caret)
}

// Parser parses a single source file.
type Parser struct {
	file   *position.SourceFile
	tokens []lexer.Token
	pos    int
}

// New creates a parser over the given source file.
func New(file *position.SourceFile) *Parser {
	return &Parser{
		file:   file,
		tokens: lexer.New(file).Tokenize(),
	}
}

// ParseProgram parses the whole file as an ordered list of statements.
func (p *Parser) ParseProgram() (*ast.Node, error) {
	start := p.peek()

	var statements ast.Nodes
	for !p.at(lexer.TokenEOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	span := p.spanFrom(start)
	return ast.New(span, &ast.Program{Statements: statements}), nil
}

// ParseExpr parses a single expression and requires it to consume the
// whole input. Used by the REPL.
func (p *Parser) ParseExpr() (*ast.Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.TokenEOF) {
		return nil, p.errorAt(p.peek(), "unexpected trailing input")
	}
	return expr, nil
}

func (p *Parser) parseStatement() (*ast.Node, error) {
	start := p.peek()

	var inner *ast.Node
	var err error
	if p.at(lexer.TokenTypeKeyword) || (p.at(lexer.TokenExport) && p.peekAhead(1).Type == lexer.TokenTypeKeyword) {
		inner, err = p.parseTypeAlias()
	} else {
		inner, err = p.parseExpr()
	}
	if err != nil {
		return nil, err
	}

	return ast.New(p.spanFrom(start), &ast.Statement{Inner: inner}), nil
}

// parseTypeAlias parses: ["export"] "type" Name ["(" params ")"] "=" body
func (p *Parser) parseTypeAlias() (*ast.Node, error) {
	start := p.peek()

	export := false
	if p.at(lexer.TokenExport) {
		p.next()
		export = true
	}
	if _, err := p.expect(lexer.TokenTypeKeyword, "expected 'type'"); err != nil {
		return nil, err
	}

	name, err := p.expect(lexer.TokenIdent, "expected type alias name")
	if err != nil {
		return nil, err
	}

	var params ast.Nodes
	if p.at(lexer.TokenLParen) {
		params, err = p.parseTypeParams()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.TokenAssign, "expected '=' in type alias"); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return ast.New(p.spanFrom(start), &ast.TypeAlias{
		Export: export,
		Name:   name.Lexeme,
		Params: params,
		Body:   body,
	}), nil
}

// parseTypeParams parses: "(" param ("," param)* ")" where each param is
// ["..."] Name ["<:" constraint] ["=" default]
func (p *Parser) parseTypeParams() (ast.Nodes, error) {
	if _, err := p.expect(lexer.TokenLParen, "expected '('"); err != nil {
		return nil, err
	}

	var params ast.Nodes
	for {
		start := p.peek()

		rest := false
		if p.at(lexer.TokenEllipsis) {
			p.next()
			rest = true
		}

		name, err := p.expect(lexer.TokenIdent, "expected type parameter name")
		if err != nil {
			return nil, err
		}

		var constraint, deflt *ast.Node
		if p.at(lexer.TokenExtends) {
			p.next()
			if constraint, err = p.parseExpr(); err != nil {
				return nil, err
			}
		}
		if p.at(lexer.TokenAssign) {
			p.next()
			if deflt, err = p.parseExpr(); err != nil {
				return nil, err
			}
		}

		params = append(params, ast.New(p.spanFrom(start), &ast.TypeParameter{
			Name:       name.Lexeme,
			Constraint: constraint,
			Default:    deflt,
			Rest:       rest,
		}))

		if !p.at(lexer.TokenComma) {
			break
		}
		p.next()
	}

	if _, err := p.expect(lexer.TokenRParen, "expected ')'"); err != nil {
		return nil, err
	}
	return params, nil
}

// ===== Type expressions =====

// parseExpr parses a type expression. Precedence, loosest first:
// union, intersection, additive, multiplicative, postfix, primary.
func (p *Parser) parseExpr() (*ast.Node, error) {
	return p.parseUnion()
}

func (p *Parser) parseUnion() (*ast.Node, error) {
	return p.parseInfixLevel(p.parseIntersection, map[lexer.TokenType]ast.InfixOperator{
		lexer.TokenPipe: ast.OpUnion,
	})
}

func (p *Parser) parseIntersection() (*ast.Node, error) {
	return p.parseInfixLevel(p.parseAdditive, map[lexer.TokenType]ast.InfixOperator{
		lexer.TokenAmpersand: ast.OpIntersection,
	})
}

func (p *Parser) parseAdditive() (*ast.Node, error) {
	return p.parseInfixLevel(p.parseMultiplicative, map[lexer.TokenType]ast.InfixOperator{
		lexer.TokenPlus:  ast.OpAdd,
		lexer.TokenMinus: ast.OpSub,
	})
}

func (p *Parser) parseMultiplicative() (*ast.Node, error) {
	return p.parseInfixLevel(p.parsePostfix, map[lexer.TokenType]ast.InfixOperator{
		lexer.TokenStar:  ast.OpMul,
		lexer.TokenSlash: ast.OpDiv,
	})
}

func (p *Parser) parseInfixLevel(next func() (*ast.Node, error), ops map[lexer.TokenType]ast.InfixOperator) (*ast.Node, error) {
	start := p.peek()

	lhs, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.peek().Type]
		if !ok {
			return lhs, nil
		}
		p.next()

		rhs, err := next()
		if err != nil {
			return nil, err
		}
		lhs = ast.New(p.spanFrom(start), &ast.InfixOp{Lhs: lhs, Op: op, Rhs: rhs})
	}
}

// parsePostfix parses a primary followed by any number of postfix
// operators: T[] (array), T[K] (indexed access), T.k (dot access) and
// T::K (namespace access).
func (p *Parser) parsePostfix() (*ast.Node, error) {
	start := p.peek()

	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().Type {
		case lexer.TokenLBracket:
			p.next()
			if p.at(lexer.TokenRBracket) {
				p.next()
				expr = ast.New(p.spanFrom(start), &ast.Array{Element: expr})
				continue
			}
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenRBracket, "expected ']'"); err != nil {
				return nil, err
			}
			expr = ast.New(p.spanFrom(start), &ast.Access{Lhs: expr, Rhs: index, IsDot: false})

		case lexer.TokenDot:
			p.next()
			member, err := p.expect(lexer.TokenIdent, "expected member name after '.'")
			if err != nil {
				return nil, err
			}
			rhs := ast.New(member.Span, &ast.Ident{Name: member.Lexeme})
			expr = ast.New(p.spanFrom(start), &ast.Access{Lhs: expr, Rhs: rhs, IsDot: true})

		case lexer.TokenDoubleColon:
			p.next()
			member, err := p.expect(lexer.TokenIdent, "expected name after '::'")
			if err != nil {
				return nil, err
			}
			rhs := ast.New(member.Span, &ast.Ident{Name: member.Lexeme})
			expr = ast.New(p.spanFrom(start), &ast.NamespaceAccess{Lhs: expr, Rhs: rhs})

		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (*ast.Node, error) {
	tok := p.peek()

	switch tok.Type {
	case lexer.TokenNumber:
		p.next()
		return ast.New(tok.Span, &ast.Number{Raw: tok.Lexeme}), nil

	case lexer.TokenString:
		p.next()
		return ast.New(tok.Span, &ast.String{Value: unquote(tok.Lexeme)}), nil

	case lexer.TokenTemplateString:
		p.next()
		return ast.New(tok.Span, &ast.TemplateString{Raw: tok.Lexeme}), nil

	case lexer.TokenIdent:
		return p.parseIdentLed()

	case lexer.TokenIf:
		return p.parseIfExpr()

	case lexer.TokenMatch:
		return p.parseMatchExpr()

	case lexer.TokenCond:
		return p.parseCondExpr()

	case lexer.TokenLet:
		return p.parseLetExpr()

	case lexer.TokenLParen:
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen, "expected ')'"); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.TokenLBracket:
		return p.parseTuple()

	case lexer.TokenLBrace:
		return p.parseObjectOrMapped()

	default:
		return nil, p.errorAt(tok, fmt.Sprintf("unexpected token %q", tok.Lexeme))
	}
}

// builtinNames are identifiers that invoke a builtin macro on the
// expression that follows. Their evaluation is out of scope here; the
// tree keeps them opaque.
var builtinNames = map[string]bool{
	"keyof":  true,
	"typeof": true,
}

// parseIdentLed parses constructs introduced by an identifier: literal
// keywords, builtin macros, generic application and plain references.
func (p *Parser) parseIdentLed() (*ast.Node, error) {
	tok := p.next()

	if value, ok := literalValue(tok.Lexeme); ok {
		return ast.New(tok.Span, value), nil
	}

	if builtinNames[tok.Lexeme] {
		argument, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return ast.New(p.spanFrom(tok), &ast.Builtin{Name: tok.Lexeme, Argument: argument}), nil
	}

	if p.at(lexer.TokenLParen) {
		p.next()
		var args ast.Nodes
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.at(lexer.TokenComma) {
				break
			}
			p.next()
		}
		if _, err := p.expect(lexer.TokenRParen, "expected ')'"); err != nil {
			return nil, err
		}
		return ast.New(p.spanFrom(tok), &ast.Application{Name: tok.Lexeme, Args: args}), nil
	}

	return ast.New(tok.Span, &ast.Ident{Name: tok.Lexeme}), nil
}

// literalValue maps literal keywords to their variants. They are plain
// identifiers to the lexer.
func literalValue(name string) (ast.Value, bool) {
	switch name {
	case "true":
		return &ast.Boolean{Value: true}, true
	case "false":
		return &ast.Boolean{Value: false}, true
	case "null":
		return &ast.Null{}, true
	case "undefined":
		return &ast.Undefined{}, true
	case "never":
		return &ast.Never{}, true
	case "any":
		return &ast.Any{}, true
	case "unknown":
		return &ast.Unknown{}, true
	case "number":
		return &ast.Primitive{Kind: ast.PrimitiveNumber}, true
	case "string":
		return &ast.Primitive{Kind: ast.PrimitiveString}, true
	case "boolean":
		return &ast.Primitive{Kind: ast.PrimitiveBoolean}, true
	case "object":
		return &ast.Primitive{Kind: ast.PrimitiveObject}, true
	case "symbol":
		return &ast.Primitive{Kind: ast.PrimitiveSymbol}, true
	case "bigint":
		return &ast.Primitive{Kind: ast.PrimitiveBigInt}, true
	default:
		return nil, false
	}
}

func (p *Parser) parseTuple() (*ast.Node, error) {
	start := p.next() // consume '['

	var items ast.Nodes
	if !p.at(lexer.TokenRBracket) {
		for {
			item, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if !p.at(lexer.TokenComma) {
				break
			}
			p.next()
		}
	}

	if _, err := p.expect(lexer.TokenRBracket, "expected ']'"); err != nil {
		return nil, err
	}
	return ast.New(p.spanFrom(start), &ast.Tuple{Items: items}), nil
}

// parseObjectOrMapped parses either an object literal or a mapped type.
// A '[' right after the opening brace (possibly preceded by readonly
// modifiers) means a mapped type.
func (p *Parser) parseObjectOrMapped() (*ast.Node, error) {
	start := p.next() // consume '{'

	readonlyMod := ast.ModNone
	save := p.pos
	switch p.peek().Type {
	case lexer.TokenReadonly:
		p.next()
		readonlyMod = ast.ModAdd
	case lexer.TokenPlus, lexer.TokenMinus:
		mod := ast.ModAdd
		if p.peek().Type == lexer.TokenMinus {
			mod = ast.ModRemove
		}
		p.next()
		if p.at(lexer.TokenReadonly) {
			p.next()
			readonlyMod = mod
		} else {
			p.pos = save
		}
	}

	if p.at(lexer.TokenLBracket) {
		return p.parseMappedType(start, readonlyMod)
	}
	if readonlyMod != ast.ModNone {
		return nil, p.errorAt(p.peek(), "expected '[' after readonly modifier")
	}

	var properties []ast.Property
	if !p.at(lexer.TokenRBrace) {
		for {
			key, err := p.expect(lexer.TokenIdent, "expected property name")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenColon, "expected ':' after property name"); err != nil {
				return nil, err
			}
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			properties = append(properties, ast.Property{Key: key.Lexeme, Value: value})
			if !p.at(lexer.TokenComma) {
				break
			}
			p.next()
		}
	}

	if _, err := p.expect(lexer.TokenRBrace, "expected '}'"); err != nil {
		return nil, err
	}
	return ast.New(p.spanFrom(start), &ast.ObjectLiteral{Properties: properties}), nil
}

// parseMappedType parses: "[" Index "in" Iterable ["as" Remapped] "]"
// ["?"] ":" Body "}"  (the opening brace and readonly modifier are
// already consumed).
func (p *Parser) parseMappedType(start lexer.Token, readonlyMod ast.MappingModifier) (*ast.Node, error) {
	if _, err := p.expect(lexer.TokenLBracket, "expected '['"); err != nil {
		return nil, err
	}

	index, err := p.expect(lexer.TokenIdent, "expected mapped type index")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenIn, "expected 'in'"); err != nil {
		return nil, err
	}

	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	var remapped *ast.Node
	if p.at(lexer.TokenAs) {
		p.next()
		if remapped, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.TokenRBracket, "expected ']'"); err != nil {
		return nil, err
	}

	optionalMod := ast.ModNone
	switch p.peek().Type {
	case lexer.TokenQuestion:
		p.next()
		optionalMod = ast.ModAdd
	case lexer.TokenPlus, lexer.TokenMinus:
		mod := ast.ModAdd
		if p.peek().Type == lexer.TokenMinus {
			mod = ast.ModRemove
		}
		p.next()
		if _, err := p.expect(lexer.TokenQuestion, "expected '?' after optional modifier"); err != nil {
			return nil, err
		}
		optionalMod = mod
	}

	if _, err := p.expect(lexer.TokenColon, "expected ':' in mapped type"); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRBrace, "expected '}'"); err != nil {
		return nil, err
	}

	return ast.New(p.spanFrom(start), &ast.MappedType{
		Index:       index.Lexeme,
		Iterable:    iterable,
		RemappedAs:  remapped,
		ReadonlyMod: readonlyMod,
		OptionalMod: optionalMod,
		Body:        body,
	}), nil
}

// ===== Surface constructs =====

func (p *Parser) parseIfExpr() (*ast.Node, error) {
	start := p.next() // consume 'if'

	condition, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenThen, "expected 'then'"); err != nil {
		return nil, err
	}

	thenBranch, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	var elseBranch *ast.Node
	if p.at(lexer.TokenElse) {
		p.next()
		if elseBranch, err = p.parseExpr(); err != nil {
			return nil, err
		}
	}

	return ast.New(p.spanFrom(start), &ast.IfExpr{
		Condition: condition,
		Then:      thenBranch,
		Else:      elseBranch,
	}), nil
}

func (p *Parser) parseMatchExpr() (*ast.Node, error) {
	start := p.next() // consume 'match'

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenDo, "expected 'do'"); err != nil {
		return nil, err
	}

	var arms []ast.MatchArm
	for !p.at(lexer.TokenEnd) {
		pattern, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenFatArrow, "expected '=>' in match arm"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		arms = append(arms, ast.MatchArm{Pattern: pattern, Body: body})

		if p.at(lexer.TokenComma) {
			p.next()
			continue
		}
		break
	}

	if _, err := p.expect(lexer.TokenEnd, "expected 'end'"); err != nil {
		return nil, err
	}
	return ast.New(p.spanFrom(start), &ast.MatchExpr{Value: value, Arms: arms}), nil
}

func (p *Parser) parseCondExpr() (*ast.Node, error) {
	start := p.next() // consume 'cond'

	if _, err := p.expect(lexer.TokenDo, "expected 'do'"); err != nil {
		return nil, err
	}

	var arms []ast.CondArm
	var elseArm *ast.Node
	for !p.at(lexer.TokenEnd) {
		if p.at(lexer.TokenElse) {
			elseTok := p.next()
			if elseArm != nil {
				return nil, p.errorAt(elseTok, "duplicate else arm in cond expression")
			}
			if _, err := p.expect(lexer.TokenFatArrow, "expected '=>' in cond arm"); err != nil {
				return nil, err
			}
			body, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elseArm = body
		} else {
			condition, err := p.parseCondition()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenFatArrow, "expected '=>' in cond arm"); err != nil {
				return nil, err
			}
			body, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			arms = append(arms, ast.CondArm{Condition: condition, Body: body})
		}

		if p.at(lexer.TokenComma) {
			p.next()
			continue
		}
		break
	}

	if _, err := p.expect(lexer.TokenEnd, "expected 'end'"); err != nil {
		return nil, err
	}
	return ast.New(p.spanFrom(start), &ast.CondExpr{Arms: arms, Else: elseArm}), nil
}

func (p *Parser) parseLetExpr() (*ast.Node, error) {
	start := p.next() // consume 'let'

	bindings := make(ast.Bindings)
	for {
		name, err := p.expect(lexer.TokenIdent, "expected binding name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenAssign, "expected '=' in let binding"); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, exists := bindings[name.Lexeme]; exists {
			return nil, p.errorAt(name, fmt.Sprintf("duplicate let binding %q", name.Lexeme))
		}
		bindings[name.Lexeme] = value

		if !p.at(lexer.TokenComma) {
			break
		}
		p.next()
	}

	if _, err := p.expect(lexer.TokenIn, "expected 'in' after let bindings"); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.New(p.spanFrom(start), &ast.LetExpr{Bindings: bindings, Body: body}), nil
}

// ===== Extends conditions =====

// parseCondition parses the extends-condition sub-grammar. Precedence,
// loosest first: or, and, not, relation.
func (p *Parser) parseCondition() (*ast.Node, error) {
	start := p.peek()

	lhs, err := p.parseAndCondition()
	if err != nil {
		return nil, err
	}

	for p.at(lexer.TokenOr) {
		p.next()
		rhs, err := p.parseAndCondition()
		if err != nil {
			return nil, err
		}
		lhs = ast.New(p.spanFrom(start), &ast.ExtendsInfixOp{Lhs: lhs, Op: ast.OpOr, Rhs: rhs})
	}
	return lhs, nil
}

func (p *Parser) parseAndCondition() (*ast.Node, error) {
	start := p.peek()

	lhs, err := p.parseNotCondition()
	if err != nil {
		return nil, err
	}

	for p.at(lexer.TokenAnd) {
		p.next()
		rhs, err := p.parseNotCondition()
		if err != nil {
			return nil, err
		}
		lhs = ast.New(p.spanFrom(start), &ast.ExtendsInfixOp{Lhs: lhs, Op: ast.OpAnd, Rhs: rhs})
	}
	return lhs, nil
}

func (p *Parser) parseNotCondition() (*ast.Node, error) {
	if p.at(lexer.TokenNot) {
		start := p.next()
		value, err := p.parseNotCondition()
		if err != nil {
			return nil, err
		}
		return ast.New(p.spanFrom(start), &ast.ExtendsPrefixOp{Op: ast.OpNot, Value: value}), nil
	}

	// A parenthesized group may be a nested condition or just a
	// parenthesized type expression as a relation operand; try the
	// condition reading first and rewind if it does not hold.
	if p.at(lexer.TokenLParen) {
		save := p.pos
		p.next()
		if cond, err := p.parseCondition(); err == nil && p.at(lexer.TokenRParen) {
			switch cond.Value.(type) {
			case *ast.ExtendsInfixOp, *ast.ExtendsPrefixOp:
				p.next()
				return cond, nil
			}
		}
		p.pos = save
	}

	return p.parseRelation()
}

var relationOps = map[lexer.TokenType]ast.ExtendsOperator{
	lexer.TokenExtends:         ast.OpExtends,
	lexer.TokenNotExtends:      ast.OpNotExtends,
	lexer.TokenEquals:          ast.OpEquals,
	lexer.TokenNotEquals:       ast.OpNotEquals,
	lexer.TokenStrictEquals:    ast.OpStrictEquals,
	lexer.TokenStrictNotEquals: ast.OpStrictNotEquals,
}

func (p *Parser) parseRelation() (*ast.Node, error) {
	start := p.peek()

	lhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	op, ok := relationOps[p.peek().Type]
	if !ok {
		return nil, p.errorAt(p.peek(), "expected an extends operator ('<:' or '!<:')")
	}
	p.next()

	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return ast.New(p.spanFrom(start), &ast.ExtendsInfixOp{Lhs: lhs, Op: op, Rhs: rhs}), nil
}

// ===== Token plumbing =====

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAhead(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) next() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(typ lexer.TokenType) bool {
	return p.peek().Type == typ
}

func (p *Parser) expect(typ lexer.TokenType, msg string) (lexer.Token, error) {
	if !p.at(typ) {
		return lexer.Token{}, p.errorAt(p.peek(), msg)
	}
	return p.next(), nil
}

func (p *Parser) errorAt(tok lexer.Token, msg string) error {
	return &ParseError{
		Message: msg,
		Span:    tok.Span,
		Line:    p.file.GetLine(tok.Span.Start.Line),
	}
}

// spanFrom builds the span from a start token's position to the end of
// the most recently consumed token.
func (p *Parser) spanFrom(start lexer.Token) position.Span {
	end := start.Span.End
	if p.pos > 0 {
		end = p.tokens[p.pos-1].Span.End
	}
	return position.Span{Start: start.Span.Start, End: end}
}

// unquote strips the surrounding quotes from a string lexeme and resolves
// its escape sequences, so ast.String holds the literal content. Both
// quote forms share one escape table; an unknown escape yields the
// escaped byte itself.
func unquote(lexeme string) string {
	if len(lexeme) < 2 {
		return lexeme
	}
	body := lexeme[1 : len(lexeme)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		default:
			// Covers \" \' \\ and any other escaped byte.
			b.WriteByte(body[i])
		}
	}
	return b.String()
}
