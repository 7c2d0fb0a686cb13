package evaluator

import (
	"github.com/funvibe/minilang/internal/typesystem"
)

// HashKey identifies a dictionary key. Only primitives can be keys.
type HashKey struct {
	Type  ObjectType
	Value string
}

// Hashable is implemented by objects usable as dictionary keys.
type Hashable interface {
	HashKey() HashKey
}

func (n *Number) HashKey() HashKey  { return HashKey{Type: n.Type(), Value: n.Inspect()} }
func (s *String) HashKey() HashKey  { return HashKey{Type: s.Type(), Value: s.Value} }
func (b *Boolean) HashKey() HashKey { return HashKey{Type: b.Type(), Value: b.Inspect()} }

type DictPair struct {
	Key   Object
	Value Object
}

// Dict is an insertion-ordered dictionary. Setting an existing key
// replaces its value in place.
type Dict struct {
	pairs []DictPair
	index map[HashKey]int
}

func NewDict() *Dict {
	return &Dict{index: make(map[HashKey]int)}
}

func (d *Dict) Type() ObjectType { return DICT_OBJ }
func (d *Dict) Inspect() string  { return formatDict(d) }

func (d *Dict) RuntimeType() typesystem.Type {
	if len(d.pairs) == 0 {
		return typesystem.TDict{Key: typesystem.TVar{Name: "K"}, Value: typesystem.TVar{Name: "V"}}
	}
	first := d.pairs[0]
	return typesystem.TDict{Key: first.Key.RuntimeType(), Value: first.Value.RuntimeType()}
}

func (d *Dict) Len() int { return len(d.pairs) }

// Pairs returns the entries in insertion order. The slice must not be modified.
func (d *Dict) Pairs() []DictPair { return d.pairs }

// Set stores value under key. It reports false when key is not hashable.
func (d *Dict) Set(key, value Object) bool {
	h, ok := key.(Hashable)
	if !ok {
		return false
	}
	hk := h.HashKey()
	if i, exists := d.index[hk]; exists {
		d.pairs[i].Value = value
		return true
	}
	d.index[hk] = len(d.pairs)
	d.pairs = append(d.pairs, DictPair{Key: key, Value: value})
	return true
}

func (d *Dict) Get(key Object) (Object, bool) {
	h, ok := key.(Hashable)
	if !ok {
		return nil, false
	}
	i, ok := d.index[h.HashKey()]
	if !ok {
		return nil, false
	}
	return d.pairs[i].Value, true
}

func (d *Dict) Has(key Object) bool {
	_, ok := d.Get(key)
	return ok
}

// Copy returns a dictionary with the same entries.
func (d *Dict) Copy() *Dict {
	out := &Dict{
		pairs: make([]DictPair, len(d.pairs)),
		index: make(map[HashKey]int, len(d.index)),
	}
	copy(out.pairs, d.pairs)
	for k, v := range d.index {
		out.index[k] = v
	}
	return out
}
