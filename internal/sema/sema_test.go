package sema_test

import (
	"testing"

	"minirust/internal/diag"
	"minirust/internal/lexer"
	"minirust/internal/parser"
	"minirust/internal/sema"
)

func analyzeSource(t *testing.T, src string, checkOwnership bool) sema.Result {
	t.Helper()
	tokens := lexer.Tokenize(src, diag.NopReporter{})
	tree := parser.Parse(tokens, diag.NopReporter{})
	return sema.Analyze(tree, checkOwnership)
}

// Scenario 1: a well-typed program with its value read back produces no
// diagnostics at all.
func TestAnalyzeCleanProgramHasNoDiagnostics(t *testing.T) {
	r := analyzeSource(t, `fn main() { let x: i32 = 2 + 3 * 4; print(x); }`, false)
	if len(r.Errors) != 0 {
		t.Errorf("unexpected errors: %v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", r.Warnings)
	}
	if !r.Success {
		t.Error("expected Success = true")
	}
}

// Scenario 2: assigning to an immutable binding is exactly one
// OwnershipError.
func TestAnalyzeAssignToImmutableIsOwnershipError(t *testing.T) {
	r := analyzeSource(t, `fn main() { let x: i32 = 1; x = 2; }`, false)
	if len(r.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", r.Errors)
	}
	if r.Errors[0].Kind != diag.OwnershipError {
		t.Errorf("error kind = %s, want OwnershipError", r.Errors[0].Kind)
	}
}

// Scenario 3: borrowing a variable both immutably and mutably, with the
// borrow checker enabled, is exactly one OwnershipError.
func TestAnalyzeConflictingBorrowsIsOwnershipError(t *testing.T) {
	r := analyzeSource(t, `fn main() { let mut x: i32 = 0; let y = &x; let z = &mut x; }`, true)
	var ownershipErrs int
	for _, e := range r.Errors {
		if e.Kind == diag.OwnershipError {
			ownershipErrs++
		}
	}
	if ownershipErrs != 1 {
		t.Errorf("ownership errors = %d, want 1 (%v)", ownershipErrs, r.Errors)
	}
}

// Scenario 3 variant: without the borrow checker enabled, the same program
// must not raise the conflicting-borrow error (counters are never
// consulted), though creating a mutable borrow of an immutable place is
// still always rejected.
func TestAnalyzeBorrowConflictRequiresCheckOwnership(t *testing.T) {
	r := analyzeSource(t, `fn main() { let mut x: i32 = 0; let y = &x; let z = &mut x; }`, false)
	if len(r.Errors) != 0 {
		t.Errorf("unexpected errors with borrow checking disabled: %v", r.Errors)
	}
}

// Scenario 4: a non-bool if-condition is exactly one TypeError.
func TestAnalyzeNonBoolIfConditionIsTypeError(t *testing.T) {
	r := analyzeSource(t, `fn main() { let mut x: i32 = 0; if x { } }`, false)
	if len(r.Errors) != 1 || r.Errors[0].Kind != diag.TypeError {
		t.Fatalf("expected exactly one TypeError, got %v", r.Errors)
	}
}

// Scenario 5: a literal type mismatch on a declared type is exactly one
// TypeError naming both types.
func TestAnalyzeDeclaredTypeMismatchIsTypeError(t *testing.T) {
	r := analyzeSource(t, `fn main() { let x: i32 = 1.0; }`, false)
	if len(r.Errors) != 1 || r.Errors[0].Kind != diag.TypeError {
		t.Fatalf("expected exactly one TypeError, got %v", r.Errors)
	}
}

// Scenario 6: a declared-but-unused variable is exactly one UnusedVariable
// warning, no errors.
func TestAnalyzeUnusedVariableIsWarningOnly(t *testing.T) {
	r := analyzeSource(t, `fn main() { let x: i32 = 1; }`, false)
	if len(r.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}
	if len(r.Warnings) != 1 || r.Warnings[0].Kind != diag.UnusedVariable {
		t.Fatalf("expected exactly one UnusedVariable warning, got %v", r.Warnings)
	}
}

func TestAnalyzeCannotInferType(t *testing.T) {
	r := analyzeSource(t, `fn main() { let x; }`, false)
	var found bool
	for _, e := range r.Errors {
		if e.Kind == diag.TypeError {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a TypeError for an uninferrable declaration, got %v", r.Errors)
	}
}

func TestAnalyzeFunctionMustReturnOnEveryPath(t *testing.T) {
	r := analyzeSource(t, `fn f() -> i32 { if true { return 1; } }`, false)
	if len(r.Errors) != 1 || r.Errors[0].Kind != diag.TypeError {
		t.Fatalf("expected exactly one TypeError for a missing return, got %v", r.Errors)
	}
}

func TestAnalyzeFunctionReturnsOnEveryPathWithElse(t *testing.T) {
	r := analyzeSource(t, `fn f() -> i32 { if true { return 1; } else { return 2; } }`, false)
	if len(r.Errors) != 0 {
		t.Errorf("unexpected errors: %v", r.Errors)
	}
}

func TestAnalyzeUndefinedVariableIsSemanticError(t *testing.T) {
	r := analyzeSource(t, `fn main() { print(missing); }`, false)
	if len(r.Errors) != 1 || r.Errors[0].Kind != diag.SemanticError {
		t.Fatalf("expected exactly one SemanticError, got %v", r.Errors)
	}
}
