package sema

import (
	"minirust/internal/ast"
	"minirust/internal/diag"
)

// analyzeExpr type-checks an expression node and returns its Type, marking
// identifiers read in rvalue position as used, per spec §4.3.
func (a *Analyzer) analyzeExpr(n *ast.Node) Type {
	if n == nil {
		return Unknown
	}
	switch n.Kind {
	case ast.IntegerLiteral, ast.FloatLiteral, ast.StringLiteral, ast.BooleanLiteral:
		return fromLiteralKind(n.Kind.String())
	case ast.Identifier:
		return a.analyzeIdentifierRead(n)
	case ast.Assignment:
		return a.analyzeAssignment(n)
	case ast.BinaryOperation:
		return a.analyzeBinary(n)
	case ast.UnaryOperation:
		return a.analyzeUnary(n)
	default:
		return Unknown
	}
}

func (a *Analyzer) analyzeIdentifierRead(n *ast.Node) Type {
	sym, ok := a.current.lookup(n.Value)
	if !ok {
		a.errorf(diag.SemanticError, n.Line, n.Column, "Undefined variable: '%s'", n.Value)
		return Unknown
	}
	sym.IsUsed = true
	return sym.Type
}

func (a *Analyzer) analyzeAssignment(n *ast.Node) Type {
	target := n.Child(0)
	value := n.Child(1)
	valueType := a.analyzeExpr(value)

	if target == nil || target.Kind != ast.Identifier {
		return valueType
	}

	sym, ok := a.current.lookup(target.Value)
	if !ok {
		a.errorf(diag.SemanticError, target.Line, target.Column, "Undefined variable: '%s'", target.Value)
		return valueType
	}
	if !sym.IsMutable {
		a.errorf(diag.OwnershipError, n.Line, n.Column,
			"Cannot assign to immutable variable '%s'", sym.Name)
	}
	if valueType != Unknown && sym.Type != Unknown && valueType != sym.Type {
		a.errorf(diag.TypeError, value.Line, value.Column,
			"Type mismatch: expected '%s', found '%s'", sym.Type, valueType)
	}
	a.trace("Assignment transfers ownership to '%s'", sym.Name)
	return sym.Type
}

var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}
var comparisonOps = map[string]bool{"<": true, "<=": true, ">": true, ">=": true, "==": true, "!=": true}
var logicalOps = map[string]bool{"&&": true, "||": true}

func (a *Analyzer) analyzeBinary(n *ast.Node) Type {
	left := n.Child(0)
	right := n.Child(1)
	leftType := a.analyzeExpr(left)
	rightType := a.analyzeExpr(right)
	op := n.Value

	switch {
	case logicalOps[op]:
		if leftType != Bool && leftType != Unknown {
			a.errorf(diag.TypeError, left.Line, left.Column, "Type mismatch: expected 'bool', found '%s'", leftType)
		}
		if rightType != Bool && rightType != Unknown {
			a.errorf(diag.TypeError, right.Line, right.Column, "Type mismatch: expected 'bool', found '%s'", rightType)
		}
		return Bool
	case comparisonOps[op]:
		if leftType != Unknown && rightType != Unknown && leftType != rightType {
			a.errorf(diag.TypeError, right.Line, right.Column,
				"Type mismatch: expected '%s', found '%s'", leftType, rightType)
		}
		return Bool
	case arithmeticOps[op]:
		if leftType != Unknown && rightType != Unknown && leftType != rightType {
			a.errorf(diag.TypeError, right.Line, right.Column,
				"Type mismatch: expected '%s', found '%s'", leftType, rightType)
		}
		return leftType
	default:
		return Unknown
	}
}

func (a *Analyzer) analyzeUnary(n *ast.Node) Type {
	operand := n.Child(0)

	switch n.Value {
	case "-":
		operandType := a.analyzeExpr(operand)
		if !operandType.Numeric() && operandType != Unknown {
			a.errorf(diag.TypeError, operand.Line, operand.Column,
				"Type mismatch: expected 'i32' or 'f64', found '%s'", operandType)
		}
		return operandType
	case "!":
		operandType := a.analyzeExpr(operand)
		if operandType != Bool && operandType != Unknown {
			a.errorf(diag.TypeError, operand.Line, operand.Column,
				"Type mismatch: expected 'bool', found '%s'", operandType)
		}
		return Bool
	case "&", "&mut":
		return a.analyzeBorrow(n, operand)
	default:
		return a.analyzeExpr(operand)
	}
}
