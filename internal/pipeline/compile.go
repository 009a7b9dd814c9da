// Package pipeline wires the lexer, parser, analyzer, and IR generator
// into the programmatic API spec §6 names: tokenize, parse, analyze,
// generateIr, and the aggregate compile. Each call constructs fresh
// per-stage state — nothing here is shared across calls, per spec §5.
package pipeline

import (
	"minirust/internal/ast"
	"minirust/internal/diag"
	"minirust/internal/ir"
	"minirust/internal/lexer"
	"minirust/internal/parser"
	"minirust/internal/sema"
	"minirust/internal/token"
)

// Options configures the optional analysis/codegen passes spec §6 exposes
// on the aggregate compile call.
type Options struct {
	CheckOwnership bool
	Optimize       bool
}

// TokenizeResult is tokenize's output contract.
type TokenizeResult struct {
	Tokens []token.Token
	Errors []diag.Diagnostic
}

// Tokenize scans source into a token sequence, always EOF-terminated.
func Tokenize(src string) TokenizeResult {
	bag := diag.NewBag()
	tokens := lexer.Tokenize(src, diag.BagReporter{Bag: bag})
	return TokenizeResult{Tokens: tokens, Errors: bag.Items()}
}

// ParseResult is parse's output contract.
type ParseResult struct {
	AST    *ast.Node
	Errors []diag.Diagnostic
}

// Parse builds a Program node from a token sequence.
func Parse(tokens []token.Token) ParseResult {
	bag := diag.NewBag()
	tree := parser.Parse(tokens, diag.BagReporter{Bag: bag})
	return ParseResult{AST: tree, Errors: bag.Items()}
}

// AnalyzeResult is analyze's output contract.
type AnalyzeResult struct {
	SymbolTable   map[string]*sema.Symbol
	Errors        []diag.Diagnostic
	Warnings      []diag.Diagnostic
	OwnershipInfo []string
	Success       bool
}

// Analyze type-checks tree and, when checkOwnership is set, also runs the
// borrow-count pass.
func Analyze(tree *ast.Node, checkOwnership bool) AnalyzeResult {
	r := sema.Analyze(tree, checkOwnership)
	return AnalyzeResult{
		SymbolTable:   r.SymbolTable,
		Errors:        r.Errors,
		Warnings:      r.Warnings,
		OwnershipInfo: r.OwnershipInfo,
		Success:       r.Success,
	}
}

// GenerateResult is generateIr's output contract.
type GenerateResult struct {
	IR      string
	Success bool
	Errors  []diag.Diagnostic
}

// GenerateIR lowers tree to textual IR using the types recorded in table
// by an earlier Analyze call, optionally running dead-code elimination.
func GenerateIR(tree *ast.Node, table map[string]*sema.Symbol, optimize bool) GenerateResult {
	mod, errs := ir.Generate(tree, table)
	if optimize {
		ir.Optimize(mod)
	}
	return GenerateResult{IR: ir.Print(mod), Success: len(errs) == 0, Errors: errs}
}

// CompileResult is the aggregate output of Compile: every stage's
// products and diagnostics, in stage order.
type CompileResult struct {
	Tokens        []token.Token          `msgpack:"tokens"`
	AST           *ast.Node              `msgpack:"ast"`
	SymbolTable   map[string]*sema.Symbol `msgpack:"symbolTable"`
	OwnershipInfo []string               `msgpack:"ownershipInfo"`
	IR            string                 `msgpack:"ir"`
	Errors        []diag.Diagnostic      `msgpack:"errors"`
	Warnings      []diag.Diagnostic      `msgpack:"warnings"`
	Success       bool                   `msgpack:"success"`
}

// Compile runs the full pipeline over source text, halting at the first
// stage whose diagnostics include a fatal entry but still returning every
// product computed so far, per spec §7.
func Compile(src string, opts Options) CompileResult {
	var result CompileResult

	tr := Tokenize(src)
	result.Tokens = tr.Tokens
	result.Errors = append(result.Errors, tr.Errors...)
	if hasFatal(tr.Errors) {
		return result
	}

	pr := Parse(tr.Tokens)
	result.AST = pr.AST
	result.Errors = append(result.Errors, pr.Errors...)
	if hasFatal(pr.Errors) {
		return result
	}

	ar := Analyze(pr.AST, opts.CheckOwnership)
	result.SymbolTable = ar.SymbolTable
	result.OwnershipInfo = ar.OwnershipInfo
	result.Errors = append(result.Errors, ar.Errors...)
	result.Warnings = append(result.Warnings, ar.Warnings...)
	if hasFatal(ar.Errors) {
		return result
	}

	gr := GenerateIR(pr.AST, ar.SymbolTable, opts.Optimize)
	result.IR = gr.IR
	result.Errors = append(result.Errors, gr.Errors...)

	result.Success = !hasFatal(result.Errors)
	return result
}

func hasFatal(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.IsFatal() {
			return true
		}
	}
	return false
}
