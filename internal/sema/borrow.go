package sema

import (
	"minirust/internal/ast"
	"minirust/internal/diag"
)

// analyzeBorrow handles unary '&' and '&mut', per spec §4.3. The
// immutable-target check on '&mut' runs unconditionally ("not only the
// ownership pass"); the monotonic borrow-count bookkeeping only runs when
// the analyzer's borrow checker is enabled.
func (a *Analyzer) analyzeBorrow(n, operand *ast.Node) Type {
	operandType := a.analyzeExpr(operand)
	if operand.Kind != ast.Identifier {
		return operandType
	}

	sym, ok := a.current.lookup(operand.Value)
	if !ok {
		return operandType
	}

	isMut := n.Value == "&mut"

	if isMut && !sym.IsMutable {
		a.errorf(diag.OwnershipError, n.Line, n.Column,
			"Cannot create mutable borrow of immutable variable '%s'", sym.Name)
	}

	if !a.checkOwnership {
		return operandType
	}

	if isMut {
		switch {
		case sym.MutableBorrowCount > 0:
			a.errorf(diag.OwnershipError, n.Line, n.Column,
				"Cannot create mutable borrow: '%s' is already mutably borrowed", sym.Name)
		case sym.BorrowCount > 0:
			a.errorf(diag.OwnershipError, n.Line, n.Column,
				"Cannot create mutable borrow: '%s' is already borrowed", sym.Name)
		default:
			sym.MutableBorrowCount++
			a.trace("Mutable borrow of '%s'", sym.Name)
		}
		return operandType
	}

	if sym.MutableBorrowCount > 0 {
		a.errorf(diag.OwnershipError, n.Line, n.Column,
			"Cannot create immutable borrow: '%s' is already mutably borrowed", sym.Name)
		return operandType
	}
	sym.BorrowCount++
	a.trace("Immutable borrow of '%s'", sym.Name)
	return operandType
}
