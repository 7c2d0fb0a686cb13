package ast

// Assignment binds the value of Value to Name in the current scope.
// x <- expr
type Assignment struct {
	Name  string
	Value Expression
}

func (a *Assignment) Accept(v Visitor) { v.VisitAssignment(a) }
func (a *Assignment) expressionNode()  {}

// BinaryOp represents lhs <operator> rhs.
type BinaryOp struct {
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryOp) Accept(v Visitor) { v.VisitBinaryOp(b) }
func (b *BinaryOp) expressionNode()  {}

// NumberLiteral holds an integer or decimal number.
type NumberLiteral struct {
	Value float64
}

func (n *NumberLiteral) Accept(v Visitor) { v.VisitNumberLiteral(n) }
func (n *NumberLiteral) expressionNode()  {}

type StringLiteral struct {
	Value string
}

func (s *StringLiteral) Accept(v Visitor) { v.VisitStringLiteral(s) }
func (s *StringLiteral) expressionNode()  {}

type BooleanLiteral struct {
	Value bool
}

func (b *BooleanLiteral) Accept(v Visitor) { v.VisitBooleanLiteral(b) }
func (b *BooleanLiteral) expressionNode()  {}

// VarRef reads a variable, or names a function when no variable matches.
type VarRef struct {
	Name string
}

func (r *VarRef) Accept(v Visitor) { v.VisitVarRef(r) }
func (r *VarRef) expressionNode()  {}

// Call invokes the function called Name with positional arguments.
type Call struct {
	Name string
	Args []Expression
}

func (c *Call) Accept(v Visitor) { v.VisitCall(c) }
func (c *Call) expressionNode()  {}

// If evaluates exactly one of Then and Else.
type If struct {
	Cond Expression
	Then Expression
	Else Expression
}

func (i *If) Accept(v Visitor) { v.VisitIf(i) }
func (i *If) expressionNode()  {}

// While repeats Body while Cond holds.
type While struct {
	Cond Expression
	Body Expression
}

func (w *While) Accept(v Visitor) { v.VisitWhile(w) }
func (w *While) expressionNode()  {}

// Seq evaluates Bodies in order and yields the last value.
type Seq struct {
	Bodies []Expression
}

func (s *Seq) Accept(v Visitor) { v.VisitSeq(s) }
func (s *Seq) expressionNode()  {}

type ListLiteral struct {
	Elements []Expression
}

func (l *ListLiteral) Accept(v Visitor) { v.VisitListLiteral(l) }
func (l *ListLiteral) expressionNode()  {}

// DictEntry is one key/value pair of a DictLiteral.
type DictEntry struct {
	Key   Expression
	Value Expression
}

// DictLiteral keeps entries in source order.
type DictLiteral struct {
	Entries []DictEntry
}

func (d *DictLiteral) Accept(v Visitor) { v.VisitDictLiteral(d) }
func (d *DictLiteral) expressionNode()  {}
