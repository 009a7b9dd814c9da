package ir_test

import (
	"strings"
	"testing"

	"minirust/internal/diag"
	"minirust/internal/ir"
	"minirust/internal/lexer"
	"minirust/internal/parser"
	"minirust/internal/sema"
)

func compileToIR(t *testing.T, src string, optimize bool) string {
	t.Helper()
	tokens := lexer.Tokenize(src, diag.NopReporter{})
	tree := parser.Parse(tokens, diag.NopReporter{})
	result := sema.Analyze(tree, false)
	if !result.Success {
		t.Fatalf("unexpected semantic errors: %v", result.Errors)
	}
	mod, errs := ir.Generate(tree, result.SymbolTable)
	if len(errs) != 0 {
		t.Fatalf("unexpected IR errors: %v", errs)
	}
	if optimize {
		ir.Optimize(mod)
	}
	return ir.Print(mod)
}

func TestPrintModulePreambleAndExterns(t *testing.T) {
	out := compileToIR(t, `fn main() { print(1); }`, false)
	if !strings.HasPrefix(out, "; MiniRust Compiler - Generated LLVM IR\n") {
		t.Fatalf("missing preamble, got:\n%s", out)
	}
	for _, want := range []string{
		"declare void @print(i32)\n",
		"declare void @print(double)\n",
		"declare void @print(i8*)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing extern declaration %q", want)
		}
	}
}

func TestGenerateFunctionSignatureAndEntryBlock(t *testing.T) {
	out := compileToIR(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }`, false)
	if !strings.Contains(out, "define i32 @add(i32 %a, i32 %b) {") {
		t.Fatalf("unexpected function signature, got:\n%s", out)
	}
	if !strings.Contains(out, "entry:") {
		t.Errorf("expected an entry block, got:\n%s", out)
	}
}

func TestGenerateVariableDeclarationAllocaStore(t *testing.T) {
	out := compileToIR(t, `fn main() { let x: i32 = 1; print(x); }`, false)
	if !strings.Contains(out, "alloca i32") {
		t.Errorf("expected an alloca i32 instruction, got:\n%s", out)
	}
	if !strings.Contains(out, "; x") {
		t.Errorf("expected the alloca to be commented with the variable name, got:\n%s", out)
	}
	if !strings.Contains(out, "store i32 1,") {
		t.Errorf("expected the initializer to be stored, got:\n%s", out)
	}
}

func TestGenerateIfProducesNamedBlocks(t *testing.T) {
	out := compileToIR(t, `fn main() { let mut x: i32 = 0; if x == 0 { x = 1; } else { x = 2; } print(x); }`, false)
	for _, label := range []string{"if.then:", "if.else:", "if.end:"} {
		if !strings.Contains(out, label) {
			t.Errorf("missing block label %q, got:\n%s", label, out)
		}
	}
}

func TestGenerateWhileProducesNamedBlocks(t *testing.T) {
	out := compileToIR(t, `fn main() { let mut x: i32 = 0; while x < 10 { x = x + 1; } print(x); }`, false)
	for _, label := range []string{"while.header:", "while.body:", "while.end:"} {
		if !strings.Contains(out, label) {
			t.Errorf("missing block label %q, got:\n%s", label, out)
		}
	}
}

func TestGenerateRepeatedIfGetsUniqueBlockLabels(t *testing.T) {
	out := compileToIR(t, `fn main() {
		let mut x: i32 = 0;
		if x == 0 { x = 1; } else { x = 2; }
		if x == 1 { x = 3; } else { x = 4; }
		print(x);
	}`, false)
	if !strings.Contains(out, "if.then.1:") {
		t.Errorf("expected a disambiguated second if.then label, got:\n%s", out)
	}
}

func TestGenerateStringLiteralsAreInterned(t *testing.T) {
	out := compileToIR(t, `fn main() { print("hi"); print("hi"); print("bye"); }`, false)
	if strings.Count(out, "@.str.0 = private") != 1 {
		t.Errorf("expected exactly one definition of @.str.0, got:\n%s", out)
	}
	if !strings.Contains(out, `[3 x i8] c"hi\00"`) {
		t.Errorf("unexpected string constant encoding, got:\n%s", out)
	}
	if strings.Count(out, "@.str.0") != 3 {
		t.Errorf("expected the interned constant to be referenced by both identical prints, got:\n%s", out)
	}
}

func TestOptimizeRemovesDeadAlloca(t *testing.T) {
	withoutOpt := compileToIR(t, `fn main() { let x: i32 = 1; let y: i32 = 2; print(x); }`, false)
	withOpt := compileToIR(t, `fn main() { let x: i32 = 1; let y: i32 = 2; print(x); }`, true)

	if !strings.Contains(withoutOpt, "; y") {
		t.Fatalf("expected the unoptimized output to still allocate 'y'")
	}
	if strings.Contains(withOpt, "; y") {
		t.Errorf("expected dead-code elimination to drop the unused 'y' alloca, got:\n%s", withOpt)
	}
}

func TestGenerateVoidFunctionGetsImplicitRetVoid(t *testing.T) {
	out := compileToIR(t, `fn main() { let x: i32 = 1; print(x); }`, false)
	if !strings.Contains(out, "ret void") {
		t.Errorf("expected an implicit 'ret void', got:\n%s", out)
	}
}

func TestGenerateParameterReadUsesBareRegisterNoAllocaNoLoad(t *testing.T) {
	out := compileToIR(t, `fn f(x: i32) -> i32 { return x; }`, false)
	if strings.Contains(out, "alloca") {
		t.Errorf("expected no alloca for a parameter, got:\n%s", out)
	}
	if strings.Contains(out, "load") {
		t.Errorf("expected no load for a parameter read, got:\n%s", out)
	}
	if !strings.Contains(out, "ret i32 %x") {
		t.Errorf("expected the parameter to be returned by its bare register name, got:\n%s", out)
	}
}

func TestGenerateLogicalAndOrCompileToFlatAndOr(t *testing.T) {
	out := compileToIR(t, `fn f(a: bool, b: bool) -> bool { return a && b; }`, false)
	if !strings.Contains(out, "and i1 %a, %b") {
		t.Errorf("expected a flat 'and i1' instruction, got:\n%s", out)
	}
	if strings.Contains(out, "phi") || strings.Contains(out, "br ") {
		t.Errorf("expected no branching for &&, got:\n%s", out)
	}

	out = compileToIR(t, `fn g(a: bool, b: bool) -> bool { return a || b; }`, false)
	if !strings.Contains(out, "or i1 %a, %b") {
		t.Errorf("expected a flat 'or i1' instruction, got:\n%s", out)
	}
}

func TestOptimizeAnnotatesConstantFoldOnlyWhenEnabled(t *testing.T) {
	withoutOpt := compileToIR(t, `fn main() { let x: i32 = 1 + 2; print(x); }`, false)
	withOpt := compileToIR(t, `fn main() { let x: i32 = 1 + 2; print(x); }`, true)

	if strings.Contains(withoutOpt, "folds to") {
		t.Errorf("expected no fold annotation without optimize, got:\n%s", withoutOpt)
	}
	if !strings.Contains(withOpt, "folds to 3") {
		t.Errorf("expected a fold annotation with optimize enabled, got:\n%s", withOpt)
	}
}
