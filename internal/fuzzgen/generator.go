// Package fuzzgen builds random program documents for fuzz targets.
// Generated programs are well typed by construction, so a checker
// rejection of one is a bug.
package fuzzgen

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// RandomSource abstracts the source of randomness.
type RandomSource interface {
	Intn(n int) int
}

// ByteSource uses a byte slice as a source of randomness. Once the data
// runs out every choice is 0, which always picks a leaf.
type ByteSource struct {
	data []byte
	pos  int
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 || s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

// Kind is the type of a generated expression.
type Kind int

const (
	Number Kind = iota
	String
	Boolean
	NumberList
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "Number"
	case String:
		return "String"
	case Boolean:
		return "Boolean"
	default:
		return "List<Number>"
	}
}

// MaxDepth bounds expression nesting.
const MaxDepth = 4

// Generator emits JSON program documents.
type Generator struct {
	src   RandomSource
	depth int
	vars  map[Kind][]string
}

func New(seed int64) *Generator {
	return &Generator{src: rand.New(rand.NewSource(seed)), vars: map[Kind][]string{}}
}

func NewFromData(data []byte) *Generator {
	return &Generator{src: &ByteSource{data: data}, vars: map[Kind][]string{}}
}

// Program returns a document with a few helper functions and a body whose
// last expression has a random kind, along with that kind.
func (g *Generator) Program() (string, Kind) {
	var exprs []string
	n := 1 + g.src.Intn(3)
	for i := 0; i < n; i++ {
		kind := Kind(g.src.Intn(4))
		name := fmt.Sprintf("v%d", i)
		exprs = append(exprs, list(str("<-"), str(name), g.Expr(kind)))
		g.vars[kind] = append(g.vars[kind], name)
	}
	kind := Kind(g.src.Intn(4))
	exprs = append(exprs, g.Expr(kind))

	doc := `{"functions": [` + strings.Join(helpers, ", ") + `], "expressions": [` + strings.Join(exprs, ", ") + `]}`
	return doc, kind
}

// helpers are always defined so generated calls have something to target.
var helpers = []string{
	`{"name": "plus", "params": [{"name": "a", "type": "Number"}, {"name": "b", "type": "Number"}], "returns": "Number", "body": ["+", ["ref", "a"], ["ref", "b"]]}`,
	`{"name": "twice", "params": [{"name": "n", "type": "Number"}], "returns": "Number", "body": ["*", ["ref", "n"], 2]}`,
	`{"name": "positive", "params": [{"name": "n", "type": "Number"}], "returns": "Boolean", "body": [">", ["ref", "n"], 0]}`,
	`{"name": "shout", "params": [{"name": "s", "type": "String"}], "returns": "String", "body": ["call", "toUpperCase", ["ref", "s"]]}`,
}

// Expr returns an expression of the given kind.
func (g *Generator) Expr(kind Kind) string {
	g.depth++
	defer func() { g.depth-- }()
	if g.depth >= MaxDepth || g.src.Intn(3) == 0 {
		return g.leaf(kind)
	}
	switch kind {
	case Number:
		return g.numberExpr()
	case String:
		return g.stringExpr()
	case Boolean:
		return g.booleanExpr()
	default:
		return g.numberListExpr()
	}
}

func (g *Generator) leaf(kind Kind) string {
	if vars := g.vars[kind]; len(vars) > 0 && g.src.Intn(2) == 0 {
		return list(str("ref"), str(vars[g.src.Intn(len(vars))]))
	}
	switch kind {
	case Number:
		return strconv.Itoa(g.src.Intn(20) - 5)
	case String:
		return str(words[g.src.Intn(len(words))])
	case Boolean:
		return strconv.FormatBool(g.src.Intn(2) == 1)
	default:
		return list(str("list"), strconv.Itoa(g.src.Intn(9)), strconv.Itoa(g.src.Intn(9)))
	}
}

var words = []string{"", "a", "ab", "x,y", "hello"}

func (g *Generator) numberExpr() string {
	switch g.src.Intn(6) {
	case 0, 1:
		ops := []string{"+", "-", "*", "/", "%"}
		return list(str(ops[g.src.Intn(len(ops))]), g.Expr(Number), g.Expr(Number))
	case 2:
		return list(str("call"), str("len"), g.Expr(String))
	case 3:
		return list(str("call"), str("reduce"), g.Expr(NumberList), list(str("ref"), str("plus")), g.Expr(Number))
	case 4:
		return list(str("if"), g.Expr(Boolean), g.Expr(Number), g.Expr(Number))
	default:
		return list(str("call"), str("twice"), g.Expr(Number))
	}
}

func (g *Generator) stringExpr() string {
	switch g.src.Intn(4) {
	case 0:
		return list(str("+"), g.Expr(String), g.Expr(String))
	case 1:
		return list(str("call"), str("shout"), g.Expr(String))
	case 2:
		return list(str("call"), str("join"), list(str("call"), str("split"), g.Expr(String), str(",")), str("-"))
	default:
		return list(str("if"), g.Expr(Boolean), g.Expr(String), g.Expr(String))
	}
}

func (g *Generator) booleanExpr() string {
	switch g.src.Intn(5) {
	case 0:
		ops := []string{"<", "<=", ">", ">="}
		return list(str(ops[g.src.Intn(len(ops))]), g.Expr(Number), g.Expr(Number))
	case 1:
		return list(str("=="), g.Expr(String), g.Expr(String))
	case 2:
		return list(str("call"), str("not"), g.Expr(Boolean))
	case 3:
		return list(str("call"), str("and"), g.Expr(Boolean), g.Expr(Boolean))
	default:
		return list(str("call"), str("positive"), g.Expr(Number))
	}
}

func (g *Generator) numberListExpr() string {
	switch g.src.Intn(3) {
	case 0:
		return list(str("call"), str("map"), g.Expr(NumberList), list(str("ref"), str("twice")))
	case 1:
		return list(str("call"), str("filter"), g.Expr(NumberList), list(str("ref"), str("positive")))
	default:
		return list(str("list"), g.Expr(Number), g.Expr(Number), g.Expr(Number))
	}
}

func list(items ...string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

func str(s string) string {
	return strconv.Quote(s)
}
