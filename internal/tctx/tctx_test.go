package tctx

import "testing"

func TestShadowingAndParentWalk(t *testing.T) {
	root := NewRoot()
	root.Define("x", &Binding{Source: SourceLet})
	child := root.Child()
	if _, ok := child.Lookup("x"); !ok {
		t.Fatal("child should see parent bindings")
	}
	child.Define("x", &Binding{Source: SourceParameter})
	b, _ := child.Lookup("x")
	if b.Source != SourceParameter {
		t.Errorf("child definition should shadow parent, got source %v", b.Source)
	}
	rootBinding, _ := root.Lookup("x")
	if rootBinding.Source != SourceLet {
		t.Error("shadowing in child must not mutate parent binding")
	}
}

func TestDuplicateDefineReturnsFalse(t *testing.T) {
	c := NewRoot()
	if !c.Define("f", &Binding{Source: SourceFunction}) {
		t.Fatal("first definition should succeed")
	}
	if c.Define("f", &Binding{Source: SourceFunction}) {
		t.Error("duplicate definition in the same scope should report failure (caller emits E1002)")
	}
}

func TestGlobalBuiltins(t *testing.T) {
	g := NewGlobal()
	for _, name := range []string{"len", "map", "filter", "println", "panic", "int_to_float", "abs", "Some", "Ok"} {
		if _, ok := g.Lookup(name); !ok {
			t.Errorf("expected built-in %q to be registered", name)
		}
	}
	for _, name := range []string{"Option", "Result", "Ordering"} {
		if _, ok := g.LookupType(name); !ok {
			t.Errorf("expected built-in type %q to be registered", name)
		}
	}
}
