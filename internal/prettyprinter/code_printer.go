package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/typesystem"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"==": 3,
	"!=": 3,
	"<":  4,
	">":  4,
	"<=": 4,
	">=": 4,
	"+":  7,
	"-":  7,
	"*":  8,
	"/":  8,
	"%":  8,
}

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

// CodePrinter renders nodes as readable pseudo-source. It is not a
// round-trippable syntax; programs are exchanged as JSON trees.
type CodePrinter struct {
	buf     bytes.Buffer
	indent  int
	compact bool // everything on one line
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// NewCompactPrinter returns a printer that never breaks lines.
func NewCompactPrinter() *CodePrinter {
	return &CodePrinter{compact: true}
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

// Print renders a single node with a fresh printer.
func Print(node ast.Node) string {
	p := NewCodePrinter()
	node.Accept(p)
	return p.String()
}

// Compact renders a node on one line, shortening it to maxLen runes
// when maxLen > 0.
func Compact(node ast.Node, maxLen int) string {
	if node == nil {
		return ""
	}
	p := NewCompactPrinter()
	node.Accept(p)
	s := p.String()
	if maxLen > 0 {
		if r := []rune(s); len(r) > maxLen {
			return string(r[:maxLen]) + "..."
		}
	}
	return s
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) newline() {
	if p.compact {
		p.write(" ")
		return
	}
	p.write("\n")
	p.write(strings.Repeat("    ", p.indent))
}

func (p *CodePrinter) VisitProgram(prog *ast.Program) {
	for i, def := range prog.Defs {
		if i > 0 {
			p.write("\n")
		}
		def.Accept(p)
		p.write("\n")
	}
	if len(prog.Defs) > 0 && len(prog.Expressions) > 0 {
		p.write("\n")
	}
	for _, expr := range prog.Expressions {
		expr.Accept(p)
		p.write("\n")
	}
}

func (p *CodePrinter) VisitFunctionDef(fd *ast.FunctionDef) {
	p.write("fun ")
	p.write(fd.Name)
	if len(fd.TypeParams) > 0 {
		names := make([]string, len(fd.TypeParams))
		for i, tp := range fd.TypeParams {
			names[i] = tp.Name
		}
		p.write("<" + strings.Join(names, ", ") + ">")
	}
	p.write("(")
	for i, param := range fd.Params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name)
		if param.Type != nil {
			p.write(": " + param.Type.String())
		}
	}
	p.write(")")
	if fd.ReturnType != nil {
		p.write(": " + fd.ReturnType.String())
	}
	p.write(" = ")
	if fd.Body != nil {
		fd.Body.Accept(p)
	}
}

func (p *CodePrinter) VisitAssignment(a *ast.Assignment) {
	p.write(a.Name)
	p.write(" <- ")
	a.Value.Accept(p)
}

func (p *CodePrinter) VisitBinaryOp(b *ast.BinaryOp) {
	prec := getPrecedence(b.Operator)
	p.printOperand(b.Left, prec, false)
	p.write(" " + b.Operator + " ")
	p.printOperand(b.Right, prec, true)
}

// printOperand parenthesizes nested operators that bind looser, and
// right operands of equal precedence (all operators are left-associative).
func (p *CodePrinter) printOperand(e ast.Expression, parentPrec int, right bool) {
	inner, ok := e.(*ast.BinaryOp)
	if !ok {
		e.Accept(p)
		return
	}
	prec := getPrecedence(inner.Operator)
	if prec < parentPrec || (right && prec == parentPrec) {
		p.write("(")
		e.Accept(p)
		p.write(")")
		return
	}
	e.Accept(p)
}

func (p *CodePrinter) VisitNumberLiteral(n *ast.NumberLiteral) {
	p.write(FormatNumber(n.Value))
}

func (p *CodePrinter) VisitStringLiteral(s *ast.StringLiteral) {
	p.write(strconv.Quote(s.Value))
}

func (p *CodePrinter) VisitBooleanLiteral(b *ast.BooleanLiteral) {
	p.write(strconv.FormatBool(b.Value))
}

func (p *CodePrinter) VisitVarRef(r *ast.VarRef) {
	p.write(r.Name)
}

func (p *CodePrinter) VisitCall(c *ast.Call) {
	p.write(c.Name)
	p.write("(")
	for i, arg := range c.Args {
		if i > 0 {
			p.write(", ")
		}
		arg.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitIf(i *ast.If) {
	p.write("if ")
	i.Cond.Accept(p)
	p.write(" then ")
	i.Then.Accept(p)
	p.write(" else ")
	i.Else.Accept(p)
}

func (p *CodePrinter) VisitWhile(w *ast.While) {
	p.write("while ")
	w.Cond.Accept(p)
	p.write(" do ")
	w.Body.Accept(p)
}

func (p *CodePrinter) VisitSeq(s *ast.Seq) {
	if len(s.Bodies) == 0 {
		p.write("{ }")
		return
	}
	if p.compact {
		p.write("{ ")
		for i, body := range s.Bodies {
			if i > 0 {
				p.write("; ")
			}
			body.Accept(p)
		}
		p.write(" }")
		return
	}
	p.write("{")
	p.indent++
	for _, body := range s.Bodies {
		p.newline()
		body.Accept(p)
	}
	p.indent--
	p.newline()
	p.write("}")
}

func (p *CodePrinter) VisitListLiteral(l *ast.ListLiteral) {
	p.write("[")
	for i, elem := range l.Elements {
		if i > 0 {
			p.write(", ")
		}
		elem.Accept(p)
	}
	p.write("]")
}

func (p *CodePrinter) VisitDictLiteral(d *ast.DictLiteral) {
	if len(d.Entries) == 0 {
		p.write("{:}")
		return
	}
	p.write("{")
	for i, entry := range d.Entries {
		if i > 0 {
			p.write(", ")
		}
		entry.Key.Accept(p)
		p.write(": ")
		entry.Value.Accept(p)
	}
	p.write("}")
}

// FormatNumber renders a number in its shortest form: 2 not 2.0,
// 0.5, Infinity, NaN.
func FormatNumber(v float64) string {
	switch {
	case v != v:
		return "NaN"
	case v > 1.7976931348623157e308:
		return "Infinity"
	case v < -1.7976931348623157e308:
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatType renders a possibly-nil type for messages.
func FormatType(t typesystem.Type) string {
	if t == nil {
		return "untyped"
	}
	return t.String()
}
