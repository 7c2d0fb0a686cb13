package typesystem

import (
	"testing"
)

func TestTypeStrings(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"primitive", Number, "Number"},
		{"list", TList{Elem: String}, "List<String>"},
		{"dict", TDict{Key: String, Value: Number}, "Dict<String, Number>"},
		{"var", TVar{Name: "T"}, "T"},
		{
			name: "function",
			typ:  TFunc{Params: []Type{TList{Elem: TVar{Name: "T"}}, TFunc{Params: []Type{TVar{Name: "T"}}, ReturnType: TVar{Name: "U"}}}, ReturnType: TList{Elem: TVar{Name: "U"}}},
			want: "(List<T>, (T) -> U) -> List<U>",
		},
		{"variadic", TFunc{Params: []Type{Number}, ReturnType: Number, IsVariadic: true}, "(...Number) -> Number"},
		{"nullary", TFunc{ReturnType: String}, "() -> String"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	fn := func(ret Type, params ...Type) TFunc { return TFunc{Params: params, ReturnType: ret} }

	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same primitive", Number, Number, true},
		{"different primitive", Number, String, false},
		{"vars by name", TVar{Name: "T"}, TVar{Name: "T"}, true},
		{"vars different names", TVar{Name: "T"}, TVar{Name: "U"}, false},
		{"var vs primitive", TVar{Name: "T"}, Number, false},
		{"lists", TList{Elem: Number}, TList{Elem: Number}, true},
		{"lists differ", TList{Elem: Number}, TList{Elem: String}, false},
		{"dicts", TDict{Key: String, Value: Number}, TDict{Key: String, Value: Number}, true},
		{"dict value differs", TDict{Key: String, Value: Number}, TDict{Key: String, Value: String}, false},
		{"list vs dict", TList{Elem: Number}, TDict{Key: Number, Value: Number}, false},
		{"functions", fn(Number, Number), fn(Number, Number), true},
		{"function arity", fn(Number, Number), fn(Number, Number, Number), false},
		{"function return", fn(Number, Number), fn(String, Number), false},
		{"variadic flag", TFunc{Params: []Type{Number}, ReturnType: Number, IsVariadic: true}, fn(Number, Number), false},
		{"nil", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestApplyRebuildsTypes(t *testing.T) {
	s := Subst{"T": Number, "U": TList{Elem: TVar{Name: "T"}}}
	orig := TFunc{Params: []Type{TVar{Name: "T"}}, ReturnType: TVar{Name: "U"}}

	got := orig.Apply(s)
	want := TFunc{Params: []Type{Number}, ReturnType: TList{Elem: Number}}
	if !Equal(got, want) {
		t.Errorf("Apply = %s, want %s", got, want)
	}
	// The original is untouched.
	if !Equal(orig.Params[0], TVar{Name: "T"}) {
		t.Errorf("Apply mutated its input: %s", orig)
	}
}

func TestApplyLeavesUnboundVariables(t *testing.T) {
	got := TDict{Key: TVar{Name: "K"}, Value: TVar{Name: "V"}}.Apply(Subst{"K": String})
	want := TDict{Key: String, Value: TVar{Name: "V"}}
	if !Equal(got, want) {
		t.Errorf("Apply = %s, want %s", got, want)
	}
}

func TestApplyStopsOnCycles(t *testing.T) {
	// T -> List<U>, U -> T would expand forever without the visited set.
	s := Subst{"T": TList{Elem: TVar{Name: "U"}}, "U": TVar{Name: "T"}}
	got := TVar{Name: "T"}.Apply(s)
	want := TList{Elem: TVar{Name: "T"}}
	if !Equal(got, want) {
		t.Errorf("Apply = %s, want %s", got, want)
	}

	self := TVar{Name: "A"}.Apply(Subst{"A": TVar{Name: "A"}})
	if !Equal(self, TVar{Name: "A"}) {
		t.Errorf("self binding = %s, want A", self)
	}
}

func TestFreeTypeVariables(t *testing.T) {
	typ := TFunc{
		Params:     []Type{TDict{Key: TVar{Name: "K"}, Value: TVar{Name: "V"}}, TVar{Name: "K"}},
		ReturnType: TVar{Name: "V"},
	}
	vars := typ.FreeTypeVariables()
	if len(vars) != 2 || vars[0].Name != "K" || vars[1].Name != "V" {
		t.Errorf("FreeTypeVariables = %v, want [K V]", vars)
	}
	if len(Number.FreeTypeVariables()) != 0 {
		t.Errorf("primitive has free variables")
	}
}
