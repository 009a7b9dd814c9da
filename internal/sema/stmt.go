package sema

import (
	"minirust/internal/ast"
	"minirust/internal/diag"
)

// analyzeStmt dispatches a statement node, per spec §4.3. Expression
// statements (including bare Assignment) fall through to analyzeExpr.
func (a *Analyzer) analyzeStmt(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.FunctionDeclaration:
		a.analyzeFunctionDecl(n)
	case ast.VariableDeclaration:
		a.analyzeVariableDecl(n)
	case ast.IfStatement:
		a.analyzeIf(n)
	case ast.WhileStatement:
		a.analyzeWhile(n)
	case ast.ReturnStatement:
		a.analyzeReturn(n)
	case ast.PrintStatement:
		a.analyzeExpr(n.Child(0))
	case ast.Block:
		a.analyzeBlock(n)
	default:
		a.analyzeExpr(n)
	}
}

func (a *Analyzer) analyzeBlock(n *ast.Node) {
	a.enterScope()
	for _, stmt := range n.Children {
		a.analyzeStmt(stmt)
	}
	a.exitScope()
}

func (a *Analyzer) analyzeFunctionDecl(n *ast.Node) {
	nameNode := n.Child(0)
	paramsNode := n.Child(1)
	name := nameNode.Value

	sym := &Symbol{Name: name, Type: Function, IsFunction: true, IsUsed: true, Line: nameNode.Line, Column: nameNode.Column}
	a.declare(sym, "Function")

	a.enterScope() // parameter + body scope

	for _, param := range paramsNode.Children {
		pname := param.Child(0)
		ptype := param.Child(1)
		a.declare(&Symbol{
			Name: pname.Value, Type: fromTypeName(ptype.Value), IsMutable: false,
			Line: pname.Line, Column: pname.Column,
		}, "Parameter")
	}

	returnType := Void
	bodyIdx := 2
	if bodyIdx < len(n.Children) && n.Children[bodyIdx].Kind == ast.ReturnType {
		returnType = fromTypeName(n.Children[bodyIdx].Value)
		bodyIdx++
	}

	prevReturn, prevVoid, prevIn := a.fnReturnType, a.fnIsVoid, a.inFunction
	a.fnReturnType, a.fnIsVoid, a.inFunction = returnType, returnType == Void, true

	if bodyIdx < len(n.Children) {
		body := n.Children[bodyIdx]
		a.analyzeBlock(body)
		if !a.fnIsVoid && !stmtAlwaysReturns(body) {
			a.errorf(diag.TypeError, n.Line, n.Column,
				"Function '%s' must return a value of type '%s' on every path", name, returnType)
		}
	}

	a.fnReturnType, a.fnIsVoid, a.inFunction = prevReturn, prevVoid, prevIn
	a.exitScope()
}

func (a *Analyzer) analyzeVariableDecl(n *ast.Node) {
	nameNode := n.Child(0)
	mutNode := n.Child(1)
	name := nameNode.Value
	isMut := mutNode.Value == "true"

	var declaredType *Type
	var initNode *ast.Node
	for _, c := range n.Children[2:] {
		if c.Kind == ast.VariableType {
			t := fromTypeName(c.Value)
			declaredType = &t
		} else {
			initNode = c
		}
	}

	var finalType Type
	switch {
	case declaredType != nil && initNode != nil:
		initType := a.analyzeExpr(initNode)
		if initType != *declaredType && initType != Unknown {
			a.errorf(diag.TypeError, initNode.Line, initNode.Column,
				"Type mismatch: expected '%s', found '%s'", *declaredType, initType)
		}
		finalType = *declaredType
	case initNode != nil:
		finalType = a.analyzeExpr(initNode)
	case declaredType != nil:
		finalType = *declaredType
	default:
		a.errorf(diag.TypeError, nameNode.Line, nameNode.Column,
			"Cannot infer type for variable '%s'", name)
		finalType = Unknown
	}

	sym := &Symbol{Name: name, Type: finalType, IsMutable: isMut, Line: nameNode.Line, Column: nameNode.Column}
	a.declare(sym, "Variable")
	a.trace("Variable '%s' takes ownership of its value", name)
}

func (a *Analyzer) analyzeIf(n *ast.Node) {
	cond := n.Child(0)
	condType := a.analyzeExpr(cond)
	if condType != Bool && condType != Unknown {
		a.errorf(diag.TypeError, cond.Line, cond.Column,
			"If condition must be of type bool, found '%s'", condType)
	}
	a.analyzeBlock(n.Child(1))
	if elseBlock := n.Child(2); elseBlock != nil {
		a.analyzeBlock(elseBlock)
	}
}

func (a *Analyzer) analyzeWhile(n *ast.Node) {
	cond := n.Child(0)
	condType := a.analyzeExpr(cond)
	if condType != Bool && condType != Unknown {
		a.errorf(diag.TypeError, cond.Line, cond.Column,
			"While condition must be of type bool, found '%s'", condType)
	}
	a.analyzeBlock(n.Child(1))
}

func (a *Analyzer) analyzeReturn(n *ast.Node) {
	expr := n.Child(0)
	if expr == nil {
		if a.inFunction && !a.fnIsVoid {
			a.errorf(diag.TypeError, n.Line, n.Column,
				"Type mismatch: expected '%s', found 'void'", a.fnReturnType)
		}
		return
	}
	exprType := a.analyzeExpr(expr)
	if a.inFunction && exprType != Unknown {
		if a.fnIsVoid {
			a.errorf(diag.TypeError, expr.Line, expr.Column,
				"Type mismatch: expected 'void', found '%s'", exprType)
		} else if exprType != a.fnReturnType {
			a.errorf(diag.TypeError, expr.Line, expr.Column,
				"Type mismatch: expected '%s', found '%s'", a.fnReturnType, exprType)
		}
	}
}

// stmtAlwaysReturns conservatively reports whether every execution path
// through n ends in a return statement. While/for loops are never assumed
// to execute, matching the usual conservative analysis.
func stmtAlwaysReturns(n *ast.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case ast.ReturnStatement:
		return true
	case ast.Block:
		for _, c := range n.Children {
			if stmtAlwaysReturns(c) {
				return true
			}
		}
		return false
	case ast.IfStatement:
		if len(n.Children) == 3 {
			return stmtAlwaysReturns(n.Children[1]) && stmtAlwaysReturns(n.Children[2])
		}
		return false
	default:
		return false
	}
}
