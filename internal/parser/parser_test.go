package parser_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/minilang/internal/analyzer"
	"github.com/funvibe/minilang/internal/config"
	"github.com/funvibe/minilang/internal/diagnostics"
	"github.com/funvibe/minilang/internal/evaluator"
	"github.com/funvibe/minilang/internal/parser"
	"github.com/funvibe/minilang/internal/pipeline"
	"github.com/funvibe/minilang/internal/prettyprinter"
)

const printAddProgram = `{
  "functions": [
    ["print_add", ["x", "y"],
      ["call", "print",
        ["call", "add",
          ["call", "mul", ["ref", "x"], ["ref", "y"]],
          3]]]
  ],
  "body": ["call", "print_add", 5, 3]
}`

const typedYAMLProgram = `
functions:
  - name: id
    typeParams: [T]
    params: [{name: x, type: T}]
    returns: T
    body: [ref, x]
  - name: twice
    params:
      - {name: f, type: [Fun, [Number], Number]}
      - {name: x, type: Number}
    returns: Number
    body: [call, f, [call, f, [ref, x]]]
expressions:
  - [<-, xs, [list, 1, 2.5, -3]]
  - [dict, [a, true], [b, false]]
  - [call, twice, [ref, id], 1]
`

func TestParseProgram(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "untyped_json",
			input:    printAddProgram,
			expected: "fun print_add(x, y) = print(add(mul(x, y), 3))\n\nprint_add(5, 3)\n",
		},
		{
			name:  "typed_yaml",
			input: typedYAMLProgram,
			expected: "fun id<T>(x: T): T = x\n\n" +
				"fun twice(f: (Number) -> Number, x: Number): Number = f(f(x))\n\n" +
				"xs <- [1, 2.5, -3]\n{\"a\": true, \"b\": false}\ntwice(id, 1)\n",
		},
		{
			name:     "scalar_literals",
			input:    `{"expressions": [1, "s", true, ["%", 7, 2]]}`,
			expected: "1\n\"s\"\ntrue\n7 % 2\n",
		},
		{
			name:     "control_forms",
			input:    `{"body": ["seq", ["<-", "i", 0], ["while", ["<", ["ref", "i"], 3], ["<-", "i", ["+", ["ref", "i"], 1]]], ["if", ["==", ["ref", "i"], 3], "done", "no"]]}`,
			expected: "{\n    i <- 0\n    while i < 3 do i <- i + 1\n    if i == 3 then \"done\" else \"no\"\n}\n",
		},
		{
			name:     "tab_indented_json",
			input:    "{\n\t\"body\": [\"+\", 1, 2]\n}",
			expected: "1 + 2\n",
		},
		{
			name:     "yaml_anchor",
			input:    "body: [seq, &x [ref, a], *x]\n",
			expected: "{\n    a\n    a\n}\n",
		},
		{
			name:     "no_body",
			input:    `{"functions": []}`,
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			program, err := parser.ParseProgram([]byte(tc.input), tc.name)
			if err != nil {
				t.Fatalf("parsing failed: %v", err)
			}
			if program.File != tc.name {
				t.Errorf("file = %q, want %q", program.File, tc.name)
			}
			if got := prettyprinter.Print(program); got != tc.expected {
				t.Errorf("mismatch:\n--- expected\n%s\n--- actual\n%s", tc.expected, got)
			}
		})
	}
}

func TestParseTypedSignature(t *testing.T) {
	program, err := parser.ParseProgram([]byte(typedYAMLProgram), "")
	if err != nil {
		t.Fatal(err)
	}
	id := program.Defs[0]
	if !id.IsTyped() || len(id.TypeParams) != 1 || id.TypeParams[0].Name != "T" {
		t.Errorf("id = %+v", id)
	}
	if got := id.Signature().String(); got != "(T) -> T" {
		t.Errorf("id signature = %s", got)
	}
	if got := program.Defs[1].Signature().String(); got != "((Number) -> Number, Number) -> Number" {
		t.Errorf("twice signature = %s", got)
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		message string
	}{
		{"empty document", "", "empty document"},
		{"root not object", `[1, 2]`, "program must be an object"},
		{"unknown field", `{"bodyy": 1}`, `unknown program field "bodyy"`},
		{"body and expressions", `{"body": 1, "expressions": []}`, "both"},
		{"unknown operator", `{"body": ["pow", 1, 2]}`, `unknown operator "pow"`},
		{"operand count", `{"body": ["+", 1]}`, `"+" expects 2 operands, got 1`},
		{"if operand count", `{"body": ["if", true, 1]}`, `"if" expects 3 operands, got 2`},
		{"empty array", `{"body": []}`, "empty expression array"},
		{"object expression", `{"body": {"a": 1}}`, "got an object"},
		{"null literal", `{"body": null}`, "unsupported literal"},
		{"operator not a string", `{"body": [1, 2]}`, "must start with an operator name"},
		{"ref needs a name", `{"body": ["ref", 3]}`, "expected a name"},
		{"call without name", `{"body": ["call"]}`, "needs a function name"},
		{"bad dict entry", `{"body": ["dict", [1]]}`, "[key, value] pair"},
		{"short function", `{"functions": [["f", ["x"]]], "body": 1}`, "function must be [name, [params], body]"},
		{
			"unknown type",
			`{"functions": [{"name": "f", "params": [{"name": "x", "type": "Int"}], "returns": "Number", "body": 1}]}`,
			`unknown type "Int"`,
		},
		{
			"type parameter not declared",
			`{"functions": [{"name": "f", "params": [{"name": "x", "type": "T"}], "returns": "T", "body": ["ref", "x"]}]}`,
			`unknown type "T"`,
		},
		{
			"type arity",
			`{"functions": [{"name": "f", "params": [], "returns": ["Dict", "String"], "body": 1}]}`,
			"Dict takes 2 type arguments, got 1",
		},
		{
			"missing body",
			`{"functions": [{"name": "f", "params": []}]}`,
			`function f needs a "body"`,
		},
		{"malformed json", `{"body": [1,`, "yaml"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.ParseProgram([]byte(tc.input), "bad.json")
			if err == nil {
				t.Fatalf("expected error, got none")
			}
			de, ok := err.(*diagnostics.DiagnosticError)
			if !ok {
				t.Fatalf("expected *DiagnosticError, got %T", err)
			}
			if de.Code != diagnostics.ErrInvalidProgram || de.Phase != diagnostics.PhaseParse {
				t.Errorf("got %s/%s, want %s/parse", de.Code, de.Phase, diagnostics.ErrInvalidProgram)
			}
			if !strings.Contains(de.Message, tc.message) {
				t.Errorf("message %q does not contain %q", de.Message, tc.message)
			}
			if de.File != "bad.json" {
				t.Errorf("file = %q", de.File)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := parser.ParseProgram([]byte("{\"body\":\n  [\"pow\", 1]}"), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if de := err.(*diagnostics.DiagnosticError); !strings.HasPrefix(de.Message, "2:4: ") {
		t.Errorf("message %q does not start with the position 2:4", de.Message)
	}
}

func TestParseEntry(t *testing.T) {
	p := parser.New("")
	def, expr, err := p.ParseEntry([]byte(`{"name": "inc", "params": [{"name": "x", "type": "Number"}], "returns": "Number", "body": ["+", ["ref", "x"], 1]}`))
	if err != nil {
		t.Fatal(err)
	}
	if def == nil || expr != nil || def.Name != "inc" {
		t.Fatalf("def = %v, expr = %v", def, expr)
	}

	def, expr, err = p.ParseEntry([]byte(`["call", "inc", 41]`))
	if err != nil {
		t.Fatal(err)
	}
	if def != nil || prettyprinter.Compact(expr, 0) != "inc(41)" {
		t.Errorf("def = %v, expr = %v", def, expr)
	}
}

func TestParseEntryUntypedFunction(t *testing.T) {
	tests := []struct {
		src     string
		wantDef string
	}{
		{`["inc", ["n"], ["+", ["ref", "n"], 1]]`, "inc"},
		{`["main", [], ["seq", ["<-", "a", 3], ["call", "refA"]]]`, "main"},
		{"- inc\n- [n]\n- [\"+\", [ref, n], 1]\n", "inc"},
		// opcode heads stay expressions
		{`["seq", ["list", 1], 2]`, ""},
		{`["+", ["ref", "x"], 1]`, ""},
		{`["call", "f", ["list"]]`, ""},
	}
	for _, tt := range tests {
		def, expr, err := parser.New("").ParseEntry([]byte(tt.src))
		if err != nil {
			t.Errorf("%s: %v", tt.src, err)
			continue
		}
		if tt.wantDef == "" {
			if def != nil || expr == nil {
				t.Errorf("%s: got def %v, want an expression", tt.src, def)
			}
			continue
		}
		if def == nil || def.Name != tt.wantDef || def.IsTyped() {
			t.Errorf("%s: def = %v, want untyped %s", tt.src, def, tt.wantDef)
		}
	}
}

func runSource(t *testing.T, source string, cfg *config.Config) (*pipeline.PipelineContext, string) {
	t.Helper()
	var out bytes.Buffer
	ctx := pipeline.NewPipelineContext([]byte(source), "prog.json", cfg)
	ctx.Out = &out
	p := pipeline.New(
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		&evaluator.EvaluatorProcessor{},
	)
	return p.Run(ctx), out.String()
}

func TestPipelineUntypedProgramNeedsSkipCheck(t *testing.T) {
	ctx, out := runSource(t, printAddProgram, nil)
	if !ctx.Failed() || ctx.Errors[0].Code != diagnostics.ErrInvalidProgram {
		t.Fatalf("errors = %v, want untyped function rejected by the checker", ctx.Errors)
	}
	if out != "" {
		t.Errorf("output = %q, want none", out)
	}

	cfg := config.Default()
	cfg.SkipCheck = true
	ctx, out = runSource(t, printAddProgram, cfg)
	if ctx.Failed() {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if out != "18\n" {
		t.Errorf("output = %q, want %q", out, "18\n")
	}
}

func TestPipelineTypedProgram(t *testing.T) {
	source := `{
		"functions": [
			{"name": "double", "params": [{"name": "x", "type": "Number"}], "returns": "Number",
			 "body": ["*", ["ref", "x"], 2]}
		],
		"expressions": [
			["<-", "numbers", ["list", 1, 2, 3, 4]],
			["call", "map", ["ref", "numbers"], ["ref", "double"]]
		]
	}`
	ctx, _ := runSource(t, source, nil)
	if ctx.Failed() {
		t.Fatalf("unexpected errors: %v", ctx.Errors)
	}
	if ctx.ResultType.String() != "List<Number>" {
		t.Errorf("type = %s", ctx.ResultType)
	}
	if got := evaluator.Repr(ctx.Result.(evaluator.Object)); got != "[2, 4, 6, 8]" {
		t.Errorf("result = %s", got)
	}
}

func TestPipelineParseErrorStopsEverything(t *testing.T) {
	ctx, _ := runSource(t, `{"body": ["call", "print", ["pow", 1]]}`, nil)
	if len(ctx.Errors) != 1 || ctx.Errors[0].Phase != diagnostics.PhaseParse {
		t.Fatalf("errors = %v", ctx.Errors)
	}
	if ctx.Program != nil || ctx.Result != nil {
		t.Errorf("later stages ran after a parse error")
	}
}
