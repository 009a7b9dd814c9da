package sema

import (
	"fmt"

	"minirust/internal/ast"
	"minirust/internal/diag"
)

// Result is the semantic analyzer's output contract, per spec §4.3.
type Result struct {
	SymbolTable   map[string]*Symbol
	Errors        []diag.Diagnostic
	Warnings      []diag.Diagnostic
	OwnershipInfo []string
	Success       bool
}

// Analyzer runs one post-order traversal performing type inference/
// checking and, when CheckOwnership is set, the borrow-count analysis.
type Analyzer struct {
	global         *Scope
	current        *Scope
	checkOwnership bool

	order     []*Symbol
	ownership []string
	errors    []diag.Diagnostic
	warnings  []diag.Diagnostic

	inFunction   bool
	fnReturnType Type
	fnIsVoid     bool
}

// Analyze type-checks and (optionally) borrow-checks a Program node,
// producing the flattened symbol table, diagnostics, and ownership trace
// spec §4.3 specifies.
func Analyze(program *ast.Node, checkOwnership bool) Result {
	a := &Analyzer{checkOwnership: checkOwnership}
	a.global = newScope(nil)
	a.current = a.global

	a.declarePrint()

	if program != nil {
		for _, stmt := range program.Children {
			a.analyzeStmt(stmt)
		}
	}

	for _, sym := range a.order {
		if !sym.IsFunction && sym.Name != "print" && !sym.IsUsed {
			a.warn(diag.UnusedVariable, sym.Line, sym.Column,
				fmt.Sprintf("Variable '%s' is declared but never used", sym.Name))
		}
	}

	table := a.buildSymbolTable()

	return Result{
		SymbolTable:   table,
		Errors:        a.errors,
		Warnings:      a.warnings,
		OwnershipInfo: a.ownership,
		Success:       len(a.errors) == 0,
	}
}

func (a *Analyzer) declarePrint() {
	sym := &Symbol{Name: "print", Type: Function, IsFunction: true, IsUsed: true}
	a.global.declareLocal(sym)
}

// buildSymbolTable unions every symbol defined anywhere in the program,
// with global-scope entries taking precedence on name collision, per
// spec §4.3.
func (a *Analyzer) buildSymbolTable() map[string]*Symbol {
	table := make(map[string]*Symbol, len(a.order))
	for _, sym := range a.order {
		table[sym.Name] = sym
	}
	for name, sym := range a.global.symbols {
		table[name] = sym
	}
	return table
}

func (a *Analyzer) errorf(kind diag.Kind, line, col int, format string, args ...any) {
	a.errors = append(a.errors, diag.New(kind, line, col, fmt.Sprintf(format, args...)))
}

func (a *Analyzer) warn(kind diag.Kind, line, col int, message string) {
	a.warnings = append(a.warnings, diag.New(kind, line, col, message))
}

func (a *Analyzer) trace(format string, args ...any) {
	if a.checkOwnership {
		a.ownership = append(a.ownership, fmt.Sprintf(format, args...))
	}
}

// declare records sym in the current scope, reporting a SemanticError at
// the duplicate's position if name is already defined there directly.
func (a *Analyzer) declare(sym *Symbol, what string) {
	if _, ok := a.current.declareLocal(sym); !ok {
		a.errorf(diag.SemanticError, sym.Line, sym.Column,
			"%s '%s' is already defined in this scope", what, sym.Name)
		return
	}
	a.order = append(a.order, sym)
}

func (a *Analyzer) enterScope() {
	a.current = newScope(a.current)
}

// exitScope pops the current scope. Per spec §3, its symbols stop being
// reachable through lookup but remain recorded in a.order for the final
// flattened report.
func (a *Analyzer) exitScope() {
	if a.current.parent != nil {
		a.current = a.current.parent
	}
}
