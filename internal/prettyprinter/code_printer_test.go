package prettyprinter

import (
	"math"
	"testing"

	"github.com/funvibe/minilang/internal/ast"
	"github.com/funvibe/minilang/internal/typesystem"
)

func TestCompactExpressions(t *testing.T) {
	tests := []struct {
		name     string
		node     ast.Node
		expected string
	}{
		{"number", ast.Num(2), "2"},
		{"fraction", ast.Num(0.5), "0.5"},
		{"quoted string", ast.Str(`say "hi"`), `"say \"hi\""`},
		{"assignment", ast.Assign("x", ast.Num(1)), "x <- 1"},
		{"call", ast.CallFn("map", ast.Ref("xs"), ast.Ref("double")), "map(xs, double)"},
		{"if", ast.IfElse(ast.Bool(true), ast.Num(1), ast.Str("x")), `if true then 1 else "x"`},
		{"while", ast.Loop(ast.Bin("<", ast.Ref("i"), ast.Num(3)), ast.Assign("i", ast.Num(0))), "while i < 3 do i <- 0"},
		{"seq", ast.Seqn(ast.Num(1), ast.Num(2)), "{ 1; 2 }"},
		{"empty seq", ast.Seqn(), "{ }"},
		{"list", ast.List(ast.Num(1), ast.Str("a")), `[1, "a"]`},
		{"dict", ast.Dict(ast.Entry(ast.Str("k"), ast.Num(1))), `{"k": 1}`},
		{"empty dict", ast.Dict(), "{:}"},
		{"looser left operand", ast.Bin("*", ast.Bin("+", ast.Num(1), ast.Num(2)), ast.Num(3)), "(1 + 2) * 3"},
		{"tighter operand", ast.Bin("+", ast.Num(1), ast.Bin("*", ast.Num(2), ast.Num(3))), "1 + 2 * 3"},
		{"left associative", ast.Bin("-", ast.Bin("-", ast.Num(1), ast.Num(2)), ast.Num(3)), "1 - 2 - 3"},
		{"right nested equal precedence", ast.Bin("-", ast.Num(1), ast.Bin("-", ast.Num(2), ast.Num(3))), "1 - (2 - 3)"},
		{
			"generic function",
			ast.Def("id", []ast.Param{ast.P("x", typesystem.TVar{Name: "T"})}, typesystem.TVar{Name: "T"}, ast.Ref("x"), "T"),
			"fun id<T>(x: T): T = x",
		},
		{
			"untyped function",
			&ast.FunctionDef{Name: "f", Params: []ast.Param{{Name: "a"}}, Body: ast.Ref("a")},
			"fun f(a) = a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compact(tt.node, 0); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestCompactTruncates(t *testing.T) {
	node := ast.CallFn("join", ast.List(ast.Str("aaaaaaaaaa"), ast.Str("bbbbbbbbbb")), ast.Str(","))
	got := Compact(node, 12)
	if got != "join([\"aaaaa..." {
		t.Errorf("got %q", got)
	}
	if Compact(nil, 10) != "" {
		t.Errorf("nil node should render empty")
	}
}

func TestPrintProgramBreaksSequences(t *testing.T) {
	program := &ast.Program{
		Defs: []*ast.FunctionDef{
			ast.Def("double", []ast.Param{ast.P("x", typesystem.Number)}, typesystem.Number,
				ast.Bin("*", ast.Ref("x"), ast.Num(2))),
		},
		Expressions: []ast.Expression{
			ast.Seqn(ast.Assign("x", ast.Num(1)), ast.CallFn("double", ast.Ref("x"))),
		},
	}
	expected := "fun double(x: Number): Number = x * 2\n\n{\n    x <- 1\n    double(x)\n}\n"
	if got := Print(program); got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{2, "2"},
		{-0.25, "-0.25"},
		{1e21, "1000000000000000000000"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.expected {
			t.Errorf("FormatNumber(%v) = %s, want %s", tt.in, got, tt.expected)
		}
	}
}

func TestFormatType(t *testing.T) {
	if got := FormatType(nil); got != "untyped" {
		t.Errorf("got %s", got)
	}
	if got := FormatType(typesystem.TList{Elem: typesystem.Number}); got != "List<Number>" {
		t.Errorf("got %s", got)
	}
}
