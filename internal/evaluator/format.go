package evaluator

import (
	"strconv"
	"strings"

	"github.com/funvibe/minilang/internal/prettyprinter"
)

func formatNumber(v float64) string {
	return prettyprinter.FormatNumber(v)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

// repr renders an object nested in a collection: strings are quoted.
func repr(obj Object) string {
	if s, ok := obj.(*String); ok {
		return strconv.Quote(s.Value)
	}
	return obj.Inspect()
}

func formatList(l *List) string {
	var out strings.Builder
	out.WriteString("[")
	for i, el := range l.Elements {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(repr(el))
	}
	out.WriteString("]")
	return out.String()
}

func formatDict(d *Dict) string {
	var out strings.Builder
	out.WriteString("{")
	for i, pair := range d.Pairs() {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(repr(pair.Key))
		out.WriteString(": ")
		out.WriteString(repr(pair.Value))
	}
	out.WriteString("}")
	return out.String()
}

// Repr renders any object the way it appears inside a collection.
// Top-level results are shown with Repr so strings stay distinguishable.
func Repr(obj Object) string {
	if obj == nil {
		return "nil"
	}
	return repr(obj)
}
