package ir

import (
	"fmt"

	"minirust/internal/ast"
	"minirust/internal/diag"
	"minirust/internal/sema"
)

// llvmType maps a checked type to its IR type tag, per spec §4.4.
func llvmType(t sema.Type) string {
	switch t {
	case sema.I32:
		return "i32"
	case sema.F64:
		return "double"
	case sema.Bool:
		return "i1"
	case sema.Str:
		return "i8*"
	default:
		return "void"
	}
}

func zeroValue(tag string) string {
	switch tag {
	case "double":
		return "0.0"
	case "i8*":
		return "null"
	default:
		return "0"
	}
}

// variable tracks a declared name's storage and source type while
// lowering one function body. A local's slot is an alloca'd pointer
// (isParameter false); a parameter's slot is its bare register name,
// per spec §4.4's isAlloca|isParameter environment split.
type variable struct {
	slot        string
	typ         sema.Type
	isParameter bool
}

// Generator lowers a checked Program into a Module, one function at a
// time, per spec §4.4.
type Generator struct {
	module *Module
	table  map[string]*sema.Symbol
	errors []diag.Diagnostic

	fn  *Function
	env map[string]variable
}

// Generate lowers program using the symbol table produced by sema.Analyze.
// It assumes program already passed semantic analysis without errors.
func Generate(program *ast.Node, table map[string]*sema.Symbol) (*Module, []diag.Diagnostic) {
	g := &Generator{module: newModule(), table: table}
	if program != nil {
		for _, stmt := range program.Children {
			if stmt.Kind == ast.FunctionDeclaration {
				g.lowerFunction(stmt)
			}
		}
	}
	return g.module, g.errors
}

func (g *Generator) errorf(line, col int, format string, args ...any) {
	g.errors = append(g.errors, diag.New(diag.IRGenerationError, line, col, fmt.Sprintf(format, args...)))
}

func (g *Generator) lowerFunction(n *ast.Node) {
	nameNode := n.Child(0)
	paramsNode := n.Child(1)

	var params []Param
	var paramTypes []sema.Type
	for _, p := range paramsNode.Children {
		pname := p.Child(0)
		ptype := p.Child(1)
		t := typeFromName(ptype.Value)
		params = append(params, Param{Name: pname.Value, Type: llvmType(t)})
		paramTypes = append(paramTypes, t)
	}

	returnType := sema.Void
	bodyIdx := 2
	if bodyIdx < len(n.Children) && n.Children[bodyIdx].Kind == ast.ReturnType {
		returnType = typeFromName(n.Children[bodyIdx].Value)
		bodyIdx++
	}

	fn := newFunction(nameNode.Value, llvmType(returnType), params)
	g.fn = fn
	g.env = make(map[string]variable)
	g.module.Functions = append(g.module.Functions, fn)

	for i, p := range paramsNode.Children {
		pname := p.Child(0).Value
		g.env[pname] = variable{slot: "%" + pname, typ: paramTypes[i], isParameter: true}
	}

	if bodyIdx < len(n.Children) {
		g.lowerBlock(n.Children[bodyIdx])
	}

	if !fn.current.Terminated {
		if fn.ReturnType == "void" {
			fn.current.append(&Instruction{Text: "ret void", IsTerminator: true})
		} else {
			fn.current.append(&Instruction{
				Text:         fmt.Sprintf("ret %s %s", fn.ReturnType, zeroValue(fn.ReturnType)),
				IsTerminator: true,
			})
		}
	}
}

func typeFromName(name string) sema.Type {
	switch name {
	case "i32":
		return sema.I32
	case "f64":
		return sema.F64
	case "bool":
		return sema.Bool
	case "str":
		return sema.Str
	default:
		return sema.Void
	}
}

func (g *Generator) lowerBlock(n *ast.Node) {
	for _, stmt := range n.Children {
		if g.fn.current.Terminated {
			return
		}
		g.lowerStmt(stmt)
	}
}

func (g *Generator) lowerStmt(n *ast.Node) {
	switch n.Kind {
	case ast.VariableDeclaration:
		g.lowerVarDecl(n)
	case ast.IfStatement:
		g.lowerIf(n)
	case ast.WhileStatement:
		g.lowerWhile(n)
	case ast.ReturnStatement:
		g.lowerReturn(n)
	case ast.PrintStatement:
		g.lowerPrint(n)
	case ast.Block:
		g.lowerBlock(n)
	default:
		g.lowerExpr(n)
	}
}

func (g *Generator) lowerVarDecl(n *ast.Node) {
	nameNode := n.Child(0)
	name := nameNode.Value

	var initNode *ast.Node
	for _, c := range n.Children[2:] {
		if c.Kind != ast.VariableType {
			initNode = c
		}
	}

	sym := g.table[name]
	typ := sema.Unknown
	if sym != nil {
		typ = sym.Type
	}
	tag := llvmType(typ)

	slot := g.fn.freshTemp()
	g.fn.current.append(&Instruction{Result: slot, Text: "alloca " + tag, Comment: name})
	g.env[name] = variable{slot: slot, typ: typ}

	if initNode != nil {
		val, _ := g.lowerExpr(initNode)
		g.fn.current.append(&Instruction{
			Text:       fmt.Sprintf("store %s %s, %s* %s", tag, val, tag, slot),
			Operands:   []string{val},
			WritesSlot: slot,
		})
	}
}

func (g *Generator) lowerIf(n *ast.Node) {
	cond, _ := g.lowerExpr(n.Child(0))
	thenBlock := n.Child(1)
	elseNode := n.Child(2)

	thenBB := g.fn.newBlock("if.then")
	endBB := g.fn.newBlock("if.end")
	var elseBB *BasicBlock
	if elseNode != nil {
		elseBB = g.fn.newBlock("if.else")
	}

	elseTarget := endBB.Name
	if elseBB != nil {
		elseTarget = elseBB.Name
	}
	g.fn.current.append(&Instruction{
		Text:         fmt.Sprintf("br i1 %s, label %%%s, label %%%s", cond, thenBB.Name, elseTarget),
		Operands:     []string{cond},
		IsTerminator: true,
	})

	g.fn.Blocks = append(g.fn.Blocks, thenBB)
	g.fn.current = thenBB
	g.lowerBlock(thenBlock)
	if !g.fn.current.Terminated {
		g.fn.current.append(&Instruction{Text: "br label %" + endBB.Name, IsTerminator: true})
	}

	if elseBB != nil {
		g.fn.Blocks = append(g.fn.Blocks, elseBB)
		g.fn.current = elseBB
		g.lowerBlock(elseNode)
		if !g.fn.current.Terminated {
			g.fn.current.append(&Instruction{Text: "br label %" + endBB.Name, IsTerminator: true})
		}
	}

	g.fn.Blocks = append(g.fn.Blocks, endBB)
	g.fn.current = endBB
}

func (g *Generator) lowerWhile(n *ast.Node) {
	headerBB := g.fn.newBlock("while.header")
	bodyBB := g.fn.newBlock("while.body")
	endBB := g.fn.newBlock("while.end")

	g.fn.current.append(&Instruction{Text: "br label %" + headerBB.Name, IsTerminator: true})

	g.fn.Blocks = append(g.fn.Blocks, headerBB)
	g.fn.current = headerBB
	cond, _ := g.lowerExpr(n.Child(0))
	g.fn.current.append(&Instruction{
		Text:         fmt.Sprintf("br i1 %s, label %%%s, label %%%s", cond, bodyBB.Name, endBB.Name),
		Operands:     []string{cond},
		IsTerminator: true,
	})

	g.fn.Blocks = append(g.fn.Blocks, bodyBB)
	g.fn.current = bodyBB
	g.lowerBlock(n.Child(1))
	if !g.fn.current.Terminated {
		g.fn.current.append(&Instruction{Text: "br label %" + headerBB.Name, IsTerminator: true})
	}

	g.fn.Blocks = append(g.fn.Blocks, endBB)
	g.fn.current = endBB
}

func (g *Generator) lowerReturn(n *ast.Node) {
	expr := n.Child(0)
	if expr == nil {
		g.fn.current.append(&Instruction{Text: "ret void", IsTerminator: true})
		return
	}
	val, tag := g.lowerExpr(expr)
	g.fn.current.append(&Instruction{
		Text:         fmt.Sprintf("ret %s %s", tag, val),
		Operands:     []string{val},
		IsTerminator: true,
	})
}

func (g *Generator) lowerPrint(n *ast.Node) {
	val, tag := g.lowerExpr(n.Child(0))
	g.fn.current.append(&Instruction{
		Text:     fmt.Sprintf("call void @print(%s %s)", tag, val),
		Operands: []string{val},
		Comment:  "print",
	})
}

// lowerExpr lowers an expression to a value token (register, temp, or
// immediate) and its IR type tag.
func (g *Generator) lowerExpr(n *ast.Node) (string, string) {
	switch n.Kind {
	case ast.IntegerLiteral:
		return n.Value, "i32"
	case ast.FloatLiteral:
		return n.Value, "double"
	case ast.BooleanLiteral:
		if n.Value == "true" {
			return "1", "i1"
		}
		return "0", "i1"
	case ast.StringLiteral:
		id := g.module.intern(n.Value)
		return fmt.Sprintf("@.str.%d", id), "i8*"
	case ast.Identifier:
		return g.lowerIdentifier(n)
	case ast.Assignment:
		return g.lowerAssignment(n)
	case ast.BinaryOperation:
		return g.lowerBinary(n)
	case ast.UnaryOperation:
		return g.lowerUnary(n)
	default:
		g.errorf(n.Line, n.Column, "cannot lower expression of kind %s", n.Kind)
		return "0", "i32"
	}
}

func (g *Generator) lowerIdentifier(n *ast.Node) (string, string) {
	v, ok := g.env[n.Value]
	if !ok {
		g.errorf(n.Line, n.Column, "undefined variable '%s' in IR generation", n.Value)
		return "0", "i32"
	}
	tag := llvmType(v.typ)
	if v.isParameter {
		return v.slot, tag
	}
	temp := g.fn.freshTemp()
	g.fn.current.append(&Instruction{
		Result:   temp,
		Text:     fmt.Sprintf("load %s, %s* %s", tag, tag, v.slot),
		Operands: []string{v.slot},
	})
	return temp, tag
}

func (g *Generator) lowerAssignment(n *ast.Node) (string, string) {
	target := n.Child(0)
	value := n.Child(1)
	val, tag := g.lowerExpr(value)

	v, ok := g.env[target.Value]
	if !ok {
		g.errorf(target.Line, target.Column, "undefined variable '%s' in IR generation", target.Value)
		return val, tag
	}
	g.fn.current.append(&Instruction{
		Text:       fmt.Sprintf("store %s %s, %s* %s", tag, val, tag, v.slot),
		Operands:   []string{val},
		WritesSlot: v.slot,
	})
	return val, tag
}

var intBinOp = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "sdiv", "%": "srem",
	"<": "icmp slt", "<=": "icmp sle", ">": "icmp sgt", ">=": "icmp sge",
	"==": "icmp eq", "!=": "icmp ne",
}

var floatBinOp = map[string]string{
	"+": "fadd", "-": "fsub", "*": "fmul", "/": "fdiv",
	"<": "fcmp olt", "<=": "fcmp ole", ">": "fcmp ogt", ">=": "fcmp oge",
	"==": "fcmp oeq", "!=": "fcmp one",
}

func (g *Generator) lowerBinary(n *ast.Node) (string, string) {
	left := n.Child(0)
	right := n.Child(1)
	op := n.Value

	if op == "&&" || op == "||" {
		return g.lowerShortCircuit(n)
	}

	lval, ltag := g.lowerExpr(left)
	rval, _ := g.lowerExpr(right)

	var opcode string
	if ltag == "double" {
		opcode = floatBinOp[op]
	} else {
		opcode = intBinOp[op]
	}
	if opcode == "" {
		opcode = "add"
	}

	temp := g.fn.freshTemp()
	g.fn.current.append(&Instruction{
		Result:   temp,
		Text:     fmt.Sprintf("%s %s %s, %s", opcode, ltag, lval, rval),
		Operands: []string{lval, rval},
	})
	if comparisonOp(op) {
		return temp, "i1"
	}
	return temp, ltag
}

func comparisonOp(op string) bool {
	switch op {
	case "<", "<=", ">", ">=", "==", "!=":
		return true
	default:
		return false
	}
}

// lowerShortCircuit lowers && and || to flat and/or on i1, per spec §4.4 —
// both operands are always evaluated; there is no branching.
func (g *Generator) lowerShortCircuit(n *ast.Node) (string, string) {
	left := n.Child(0)
	right := n.Child(1)
	op := n.Value

	lval, _ := g.lowerExpr(left)
	rval, _ := g.lowerExpr(right)

	opcode := "and"
	if op == "||" {
		opcode = "or"
	}

	temp := g.fn.freshTemp()
	g.fn.current.append(&Instruction{
		Result:   temp,
		Text:     fmt.Sprintf("%s i1 %s, %s", opcode, lval, rval),
		Operands: []string{lval, rval},
	})
	return temp, "i1"
}

func (g *Generator) lowerUnary(n *ast.Node) (string, string) {
	operand := n.Child(0)

	switch n.Value {
	case "-":
		val, tag := g.lowerExpr(operand)
		temp := g.fn.freshTemp()
		if tag == "double" {
			g.fn.current.append(&Instruction{Result: temp, Text: fmt.Sprintf("fsub double 0.0, %s", val), Operands: []string{val}})
		} else {
			g.fn.current.append(&Instruction{Result: temp, Text: fmt.Sprintf("sub i32 0, %s", val), Operands: []string{val}})
		}
		return temp, tag
	case "!":
		val, _ := g.lowerExpr(operand)
		temp := g.fn.freshTemp()
		g.fn.current.append(&Instruction{Result: temp, Text: fmt.Sprintf("xor i1 %s, 1", val), Operands: []string{val}})
		return temp, "i1"
	case "&", "&mut":
		// Borrows carry no separate IR representation: the underlying value
		// is used directly, per spec §4.4.
		return g.lowerExpr(operand)
	default:
		return g.lowerExpr(operand)
	}
}
