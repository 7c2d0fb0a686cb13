package minilang

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/funvibe/minilang/internal/config"
	"github.com/funvibe/minilang/internal/diagnostics"
)

func codeOf(t *testing.T, err error) diagnostics.ErrorCode {
	t.Helper()
	var de *diagnostics.DiagnosticError
	if !errors.As(err, &de) {
		t.Fatalf("error %v is not a diagnostic", err)
	}
	return de.Code
}

func TestBindAndCallFromScript(t *testing.T) {
	e := New()
	if err := e.Bind("square", func(x int) int { return x * x }); err != nil {
		t.Fatal(err)
	}
	if err := e.Bind("greet", func(name string, times int) string {
		return strings.Repeat("hi "+name+" ", times)
	}); err != nil {
		t.Fatal(err)
	}

	res, err := e.Eval(`["call", "map", ["list", 1, 2, 3], ["ref", "square"]]`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !reflect.DeepEqual(res, []interface{}{1.0, 4.0, 9.0}) {
		t.Errorf("map square = %#v", res)
	}

	res, err = e.Eval(`["call", "greet", "bob", 2]`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res != "hi bob hi bob " {
		t.Errorf("greet = %q", res)
	}
}

func TestBoundSignatureIsChecked(t *testing.T) {
	e := New()
	if err := e.Bind("square", func(x float64) float64 { return x * x }); err != nil {
		t.Fatal(err)
	}
	_, err := e.Eval(`["call", "square", "four"]`)
	if err == nil {
		t.Fatal("expected a type error")
	}
	if code := codeOf(t, err); code != diagnostics.ErrTypeMismatch {
		t.Errorf("code = %s, want %s", code, diagnostics.ErrTypeMismatch)
	}

	typ, err := e.Type(`["call", "square", 3]`)
	if err != nil {
		t.Fatal(err)
	}
	if typ.String() != "Number" {
		t.Errorf("type = %s", typ)
	}
}

func TestBindInfersSignatures(t *testing.T) {
	tests := []struct {
		name string
		fn   interface{}
		want string
	}{
		{"numbers", func(a int, b float32) uint8 { return 0 }, "(Number, Number) -> Number"},
		{"list", func(xs []string) bool { return false }, "(List<String>) -> Boolean"},
		{"dict", func(m map[string]int) []int { return nil }, "(Dict<String, Number>) -> List<Number>"},
		{"void", func(s string) {}, "(String) -> Void"},
		{"error_result", func(s string) (int, error) { return 0, nil }, "(String) -> Number"},
		{"variadic", func(xs ...int) int { return 0 }, "(...Number) -> Number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			if err := e.Bind(tt.name, tt.fn); err != nil {
				t.Fatal(err)
			}
			if got := e.Bindings()[tt.name].Type.String(); got != tt.want {
				t.Errorf("signature = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBindRejectsUnsupportedFunctions(t *testing.T) {
	tests := []struct {
		name string
		fn   interface{}
	}{
		{"not_a_function", 42},
		{"channel_param", func(c chan int) int { return 0 }},
		{"two_results", func() (int, string) { return 0, "" }},
		{"struct_result", func() struct{} { return struct{}{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := New().Bind(tt.name, tt.fn); err == nil {
				t.Error("expected Bind to fail")
			}
		})
	}
}

func TestVariadicBinding(t *testing.T) {
	e := New()
	e.SetSkipCheck(true)
	if err := e.Bind("count", func(xs ...string) int { return len(xs) }); err != nil {
		t.Fatal(err)
	}
	res, err := e.Eval(`["call", "count", "a", "b", "c"]`)
	if err != nil {
		t.Fatal(err)
	}
	if res != 3.0 {
		t.Errorf("count = %v", res)
	}
}

func TestBoundErrorBecomesRuntimeError(t *testing.T) {
	e := New()
	if err := e.Bind("fail", func(msg string) (string, error) {
		return "", errors.New(msg)
	}); err != nil {
		t.Fatal(err)
	}
	_, err := e.Eval(`["call", "fail", "boom"]`)
	if err == nil {
		t.Fatal("expected an error")
	}
	if code := codeOf(t, err); code != diagnostics.ErrRuntime {
		t.Errorf("code = %s", code)
	}
	if !strings.Contains(err.Error(), "fail: boom") {
		t.Errorf("error = %v", err)
	}
}

func TestSetAndGet(t *testing.T) {
	e := New()
	if err := e.Set("prices", map[string]float64{"apple": 1.5, "pear": 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Eval(`["<-", "total", ["+", ["call", "get", ["ref", "prices"], "apple"], ["call", "get", ["ref", "prices"], "pear"]]]`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	total, err := e.Get("total")
	if err != nil {
		t.Fatal(err)
	}
	if total != 3.5 {
		t.Errorf("total = %v", total)
	}

	prices, err := e.Get("prices")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(prices, map[string]interface{}{"apple": 1.5, "pear": 2.0}) {
		t.Errorf("prices = %#v", prices)
	}

	if _, err := e.Get("missing"); err == nil {
		t.Error("expected an error for an undefined variable")
	}
}

func TestSetTypeIsVisibleToChecker(t *testing.T) {
	e := New()
	if err := e.Set("names", []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	typ, err := e.Type(`["ref", "names"]`)
	if err != nil {
		t.Fatal(err)
	}
	if typ.String() != "List<String>" {
		t.Errorf("type = %s", typ)
	}
	if _, err := e.Eval(`["+", ["ref", "names"], 1]`); err == nil {
		t.Error("expected a type error when adding a list to a number")
	}
}

func TestDefineAndCall(t *testing.T) {
	e := New()
	def := Def("double", []Param{P("x", Number)}, Number, Bin("*", Ref("x"), Num(2)))
	if err := e.Define(def); err != nil {
		t.Fatal(err)
	}
	res, err := e.Call("double", 21)
	if err != nil {
		t.Fatal(err)
	}
	if res != 42.0 {
		t.Errorf("double(21) = %v", res)
	}

	res, err = e.Call("len", []int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if res != 3.0 {
		t.Errorf("len = %v", res)
	}

	if _, err := e.Call("nope"); err == nil {
		t.Error("expected an error for an unknown function")
	}
}

func TestFailedDefineKeepsPrevious(t *testing.T) {
	e := New()
	if _, err := e.Eval(`{"name": "f", "params": [], "returns": "Number", "body": 1}`); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Eval(`{"name": "f", "params": [], "returns": "Number", "body": "one"}`); err == nil {
		t.Fatal("expected a return type mismatch")
	}
	res, err := e.Eval(`["call", "f"]`)
	if err != nil {
		t.Fatal(err)
	}
	if res != 1.0 {
		t.Errorf("f() = %v", res)
	}
}

func TestUntypedFunctionsNeedSkipCheck(t *testing.T) {
	def := `["inc", ["x"], ["+", ["ref", "x"], 1]]`

	e := New()
	_, err := e.Eval(def)
	if err == nil {
		t.Fatal("expected untyped function to be rejected")
	}
	if code := codeOf(t, err); code != diagnostics.ErrInvalidProgram {
		t.Errorf("code = %s", code)
	}

	e.SetSkipCheck(true)
	if _, err := e.Eval(def); err != nil {
		t.Fatal(err)
	}
	res, err := e.Call("inc", 4)
	if err != nil {
		t.Fatal(err)
	}
	if res != 5.0 {
		t.Errorf("inc(4) = %v", res)
	}
}

func TestEvalProgramKeepsSession(t *testing.T) {
	var out bytes.Buffer
	e := New()
	e.SetOutput(&out)
	src := `{
  "functions": [
    {"name": "add3", "params": [{"name": "x", "type": "Number"}], "returns": "Number",
     "body": ["+", ["ref", "x"], 3]}
  ],
  "expressions": [
    ["<-", "n", ["call", "add3", 1]],
    ["call", "print", ["ref", "n"]]
  ]
}`
	res, err := e.EvalProgram(src, "session.json")
	if err != nil {
		t.Fatal(err)
	}
	if res != 4.0 || out.String() != "4\n" {
		t.Errorf("result = %v, output = %q", res, out.String())
	}

	res, err = e.Eval(`["call", "add3", ["ref", "n"]]`)
	if err != nil {
		t.Fatal(err)
	}
	if res != 7.0 {
		t.Errorf("add3(n) = %v", res)
	}
}

func TestEvalProgramErrorNamesFile(t *testing.T) {
	e := New()
	_, err := e.EvalProgram(`{"body": ["call", "missing"]}`, "broken.json")
	var de *diagnostics.DiagnosticError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v", err)
	}
	if de.File != "broken.json" || de.Code != diagnostics.ErrUndefinedFunction {
		t.Errorf("diagnostic = %+v", de)
	}
}

func TestScopingAndInput(t *testing.T) {
	e := New()
	e.SetSkipCheck(true)
	if err := e.SetScoping("lexical"); err == nil {
		t.Error("expected unknown scoping to be rejected")
	}
	if err := e.SetScoping(config.ScopingDynamic); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Eval(`["refA", [], ["ref", "a"]]`); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Eval(`["main", [], ["seq", ["<-", "a", 3], ["call", "refA"]]]`); err != nil {
		t.Fatal(err)
	}
	res, err := e.Call("main")
	if err != nil {
		t.Fatal(err)
	}
	if res != 3.0 {
		t.Errorf("dynamic main() = %v", res)
	}

	e.SetInput(strings.NewReader("shout\n"))
	res, err = e.Eval(`["call", "toUpperCase", ["call", "input"]]`)
	if err != nil {
		t.Fatal(err)
	}
	if res != "SHOUT" {
		t.Errorf("input = %v", res)
	}
}

func TestMarshallerRoundTrip(t *testing.T) {
	m := NewMarshaller()
	obj, err := m.ToValue(map[string]interface{}{
		"tags":  []string{"x", "y"},
		"count": 2,
		"ok":    true,
		"none":  nil,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := obj.Inspect(); got != `{"count": 2, "none": nil, "ok": true, "tags": ["x", "y"]}` {
		t.Errorf("Inspect = %s", got)
	}

	back, err := m.FromValue(obj, reflect.TypeOf(map[string]interface{}{}))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]interface{}{
		"tags":  []interface{}{"x", "y"},
		"count": 2.0,
		"ok":    true,
		"none":  nil,
	}
	if !reflect.DeepEqual(back, want) {
		t.Errorf("FromValue = %#v", back)
	}

	if _, err := m.ToValue(make(chan int)); err == nil {
		t.Error("expected channels to be rejected")
	}
	if _, err := m.FromValue(obj, reflect.TypeOf(0)); err == nil {
		t.Error("expected a dictionary not to convert to int")
	}
}

func TestFailedCheckLeavesNoAssignments(t *testing.T) {
	e := New()
	_, err := e.Eval(`["seq", ["<-", "x", 1], ["call", "nope"]]`)
	if code := codeOf(t, err); code != diagnostics.ErrUndefinedFunction {
		t.Fatalf("code = %s, want %s", code, diagnostics.ErrUndefinedFunction)
	}
	if _, err := e.Type(`["ref", "x"]`); err == nil {
		t.Error("x should be unknown to the checker")
	}
	_, err = e.Eval(`["+", ["ref", "x"], 1]`)
	var de *diagnostics.DiagnosticError
	if !errors.As(err, &de) || de.Code != diagnostics.ErrUndefinedVariable || de.Phase != diagnostics.PhaseCheck {
		t.Errorf("err = %v, want a check error %s", err, diagnostics.ErrUndefinedVariable)
	}
}

func TestFailedRunKeepsOnlyAssignmentsThatRan(t *testing.T) {
	e := New()
	if err := e.Bind("fail", func() (float64, error) { return 0, errors.New("boom") }); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Eval(`["<-", "b", "old"]`); err != nil {
		t.Fatal(err)
	}
	_, err := e.Eval(`["seq", ["<-", "a", 1], ["call", "fail"], ["<-", "b", 2], ["<-", "c", true]]`)
	if code := codeOf(t, err); code != diagnostics.ErrRuntime {
		t.Fatalf("code = %s, want %s", code, diagnostics.ErrRuntime)
	}

	tests := []struct {
		ref  string
		want string
	}{
		{"a", "Number"},
		{"b", "String"},
		{"c", ""},
	}
	for _, tt := range tests {
		got, err := e.Type(`["ref", "` + tt.ref + `"]`)
		if tt.want == "" {
			if err == nil {
				t.Errorf("%s: type %s, want it undefined", tt.ref, got)
			}
			continue
		}
		if err != nil || got.String() != tt.want {
			t.Errorf("%s: type %v (err %v), want %s", tt.ref, got, err, tt.want)
		}
	}
	res, err := e.Eval(`["call", "toUpperCase", ["ref", "b"]]`)
	if err != nil || res != "OLD" {
		t.Errorf("b = %v, %v", res, err)
	}
}

func TestFailedProgramCheckIsRolledBack(t *testing.T) {
	e := New()
	src := `{
  "functions": [
    {"name": "one", "params": [], "returns": "Number", "body": 1}
  ],
  "expressions": [
    ["<-", "n", ["call", "one"]],
    ["+", ["ref", "n"], "a"]
  ]
}`
	if _, err := e.EvalProgram(src, "bad.json"); err == nil {
		t.Fatal("expected a check error")
	}
	for _, expr := range []string{`["call", "one"]`, `["ref", "n"]`} {
		if _, err := e.Type(expr); err == nil {
			t.Errorf("%s should not check after the failed program", expr)
		}
	}
}
