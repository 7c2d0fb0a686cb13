package typesystem

import (
	"strings"
	"sync"
	"testing"
)

func TestMatchBindsVariable(t *testing.T) {
	s := make(Subst)
	if !Match(TVar{Name: "T"}, Number, s) {
		t.Fatal("Match(T, Number) failed")
	}
	if got := (TVar{Name: "T"}).Apply(s); !Equal(got, Number) {
		t.Errorf("T after match = %s, want Number", got)
	}
}

func TestMatchFirstBindingWins(t *testing.T) {
	s := make(Subst)
	if !Match(TVar{Name: "T"}, Number, s) {
		t.Fatal("first match failed")
	}
	if Match(TVar{Name: "T"}, String, s) {
		t.Error("T bound to Number must not match String")
	}
	if !Match(TVar{Name: "T"}, Number, s) {
		t.Error("T bound to Number must match Number again")
	}
}

func TestMatchSwapsConcreteVariable(t *testing.T) {
	s := make(Subst)
	if !Match(TList{Elem: Number}, TVar{Name: "X"}, s) {
		t.Fatal("Match(List<Number>, X) failed")
	}
	if got := s["X"]; !Equal(got, TList{Elem: Number}) {
		t.Errorf("X = %v, want List<Number>", got)
	}
}

func TestMatchSelfIsNoop(t *testing.T) {
	s := make(Subst)
	if !Match(TVar{Name: "T"}, TVar{Name: "T"}, s) {
		t.Fatal("Match(T, T) failed")
	}
	if len(s) != 0 {
		t.Errorf("Match(T, T) bound %v", s)
	}
}

func TestMatchStructural(t *testing.T) {
	tv := func(n string) TVar { return TVar{Name: n} }

	tests := []struct {
		name     string
		pattern  Type
		concrete Type
		want     bool
	}{
		{"primitive equal", Number, Number, true},
		{"primitive differ", Number, Boolean, false},
		{"list", TList{Elem: tv("T")}, TList{Elem: String}, true},
		{"list vs primitive", TList{Elem: tv("T")}, String, false},
		{"dict", TDict{Key: tv("K"), Value: tv("V")}, TDict{Key: String, Value: Number}, true},
		{"dict vs list", TDict{Key: tv("K"), Value: tv("V")}, TList{Elem: Number}, false},
		{
			name:     "function",
			pattern:  TFunc{Params: []Type{tv("T")}, ReturnType: tv("U")},
			concrete: TFunc{Params: []Type{Number}, ReturnType: Boolean},
			want:     true,
		},
		{
			name:     "function arity",
			pattern:  TFunc{Params: []Type{tv("T")}, ReturnType: tv("U")},
			concrete: TFunc{Params: []Type{Number, Number}, ReturnType: Number},
			want:     false,
		},
		{
			name:     "repeated variable conflicts",
			pattern:  TFunc{Params: []Type{tv("T"), tv("T")}, ReturnType: tv("T")},
			concrete: TFunc{Params: []Type{Number, String}, ReturnType: Number},
			want:     false,
		},
		{
			name:     "repeated variable agrees",
			pattern:  TDict{Key: tv("T"), Value: tv("T")},
			concrete: TDict{Key: String, Value: String},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.pattern, tt.concrete, make(Subst)); got != tt.want {
				t.Errorf("Match(%s, %s) = %v, want %v", tt.pattern, tt.concrete, got, tt.want)
			}
		})
	}
}

func TestMatchFuncMapSignature(t *testing.T) {
	// map :: (List<T>, (T) -> U) -> List<U>
	mapType := TFunc{
		Params: []Type{
			TList{Elem: TVar{Name: "T"}},
			TFunc{Params: []Type{TVar{Name: "T"}}, ReturnType: TVar{Name: "U"}},
		},
		ReturnType: TList{Elem: TVar{Name: "U"}},
	}
	double := TFunc{Params: []Type{Number}, ReturnType: Number}

	s := make(Subst)
	if !MatchFunc(mapType, []Type{TList{Elem: Number}, double}, s) {
		t.Fatal("MatchFunc failed for map(List<Number>, double)")
	}
	if got := mapType.ReturnType.Apply(s); !Equal(got, TList{Elem: Number}) {
		t.Errorf("return type = %s, want List<Number>", got)
	}

	if MatchFunc(mapType, []Type{TList{Elem: String}, double}, make(Subst)) {
		t.Error("map(List<String>, double) should not match")
	}
	if MatchFunc(mapType, []Type{TList{Elem: Number}}, make(Subst)) {
		t.Error("arity mismatch should not match")
	}
}

func TestMatchFuncVariadic(t *testing.T) {
	add := TFunc{Params: []Type{Number}, ReturnType: Number, IsVariadic: true}

	for _, n := range []int{0, 1, 4} {
		args := make([]Type, n)
		for i := range args {
			args[i] = Number
		}
		if !MatchFunc(add, args, make(Subst)) {
			t.Errorf("add with %d numbers should match", n)
		}
	}
	if MatchFunc(add, []Type{Number, String}, make(Subst)) {
		t.Error("add(Number, String) should not match")
	}
}

func TestUnifyReportsMismatch(t *testing.T) {
	if _, err := Unify(TList{Elem: Number}, TList{Elem: String}); err == nil {
		t.Fatal("expected error")
	} else if !strings.Contains(err.Error(), "List<Number>") {
		t.Errorf("error %q does not mention the pattern", err)
	}

	s, err := Unify(TVar{Name: "K"}, String)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(s["K"], String) {
		t.Errorf("K = %v, want String", s["K"])
	}
}

func TestInstantiateGivesDisjointVariables(t *testing.T) {
	supply := NewTypeVarSupply()
	params := []TVar{{Name: "T"}, {Name: "U"}}
	generic := TFunc{
		Params:     []Type{TList{Elem: TVar{Name: "T"}}, TFunc{Params: []Type{TVar{Name: "T"}}, ReturnType: TVar{Name: "U"}}},
		ReturnType: TList{Elem: TVar{Name: "U"}},
	}

	first := Instantiate(generic, params, supply)
	second := Instantiate(generic, params, supply)

	if first.String() != "(List<T0>, (T0) -> U1) -> List<U1>" {
		t.Errorf("first = %s", first)
	}
	if second.String() != "(List<T2>, (T2) -> U3) -> List<U3>" {
		t.Errorf("second = %s", second)
	}

	seen := map[string]bool{}
	for _, v := range first.FreeTypeVariables() {
		seen[v.Name] = true
	}
	for _, v := range second.FreeTypeVariables() {
		if seen[v.Name] {
			t.Errorf("variable %s shared between instantiations", v.Name)
		}
	}
	for _, v := range append(first.FreeTypeVariables(), second.FreeTypeVariables()...) {
		if v.Name == "T" || v.Name == "U" {
			t.Errorf("generic parameter %s leaked into instantiation", v.Name)
		}
	}
}

func TestInstantiateWithoutParamsIsIdentity(t *testing.T) {
	fn := TFunc{Params: []Type{String}, ReturnType: String}
	if got := Instantiate(fn, nil, nil); !Equal(got, fn) {
		t.Errorf("Instantiate = %s, want %s", got, fn)
	}
}

func TestSupplyReset(t *testing.T) {
	supply := NewTypeVarSupply()
	supply.Fresh("K")
	supply.Fresh("K")
	supply.Reset()
	if got := supply.Fresh("K"); got.Name != "K0" {
		t.Errorf("after Reset got %s, want K0", got.Name)
	}
	if got := supply.Fresh(""); got.Name != "T1" {
		t.Errorf("empty prefix got %s, want T1", got.Name)
	}
}

func TestSupplyConcurrentNamesAreUnique(t *testing.T) {
	supply := NewTypeVarSupply()
	const workers, perWorker = 8, 200

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				name := supply.Fresh("T").Name
				mu.Lock()
				seen[name] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("got %d unique names, want %d", len(seen), workers*perWorker)
	}
}
