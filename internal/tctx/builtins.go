package tctx

import "github.com/axonlang/clank/internal/types"

// tvar builds a scheme-template type variable: identified by Name for
// instantiate's name-based substitution, not by ID (ID is meaningless
// until a scheme is instantiated with fresh ids — see internal/check).
func tvar(name string) *types.TypeVar { return &types.TypeVar{Name: name} }

func scheme(vars []string, t types.Type) *types.TypeScheme {
	return &types.TypeScheme{Vars: vars, Type: t}
}

func external(s *types.TypeScheme) *Binding {
	return &Binding{Scheme: s, Mutable: false, Source: SourceExternal}
}

// NewGlobal returns a root context pre-populated with the built-ins of
// spec §6: Option/Result/Ordering, array/string/IO/control/conversion/
// math functions.
func NewGlobal() *Context {
	c := NewRoot()
	registerBuiltinTypes(c)
	registerArrayFns(c)
	registerStringFns(c)
	registerIOFns(c)
	registerControlFns(c)
	registerConversionFns(c)
	registerMathFns(c)
	return c
}

func registerBuiltinTypes(c *Context) {
	t, e := tvar("T"), tvar("E")

	c.DefineType("Option", &TypeDef{
		Kind: DefSum, TypeParams: []string{"T"},
		SumVariants: map[string]SumVariantDef{
			"Some": {Fields: []types.Type{t}},
			"None": {Fields: nil},
		},
		VariantOrder: []string{"Some", "None"},
	})
	optionOf := func(inner types.Type) types.Type { return &types.TypeApp{Con: "Option", Args: []types.Type{inner}} }
	c.Define("Some", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{t}, Return: optionOf(t)})))
	c.Define("None", external(scheme([]string{"T"}, optionOf(t))))

	c.DefineType("Result", &TypeDef{
		Kind: DefSum, TypeParams: []string{"T", "E"},
		SumVariants: map[string]SumVariantDef{
			"Ok":  {Fields: []types.Type{t}},
			"Err": {Fields: []types.Type{e}},
		},
		VariantOrder: []string{"Ok", "Err"},
	})
	resultOf := func(ok, errT types.Type) types.Type { return &types.TypeApp{Con: "Result", Args: []types.Type{ok, errT}} }
	c.Define("Ok", external(scheme([]string{"T", "E"}, &types.TypeFn{Params: []types.Type{t}, Return: resultOf(t, e)})))
	c.Define("Err", external(scheme([]string{"T", "E"}, &types.TypeFn{Params: []types.Type{e}, Return: resultOf(t, e)})))

	c.DefineType("Ordering", &TypeDef{
		Kind: DefSum,
		SumVariants: map[string]SumVariantDef{
			"Less": {}, "Equal": {}, "Greater": {},
		},
		VariantOrder: []string{"Less", "Equal", "Greater"},
	})
	ordering := &types.TypeCon{Name: "Ordering"}
	c.Define("Less", external(scheme(nil, ordering)))
	c.Define("Equal", external(scheme(nil, ordering)))
	c.Define("Greater", external(scheme(nil, ordering)))
}

func registerArrayFns(c *Context) {
	t, u := tvar("T"), tvar("U")
	arr := func(el types.Type) types.Type { return &types.TypeArray{Element: el} }
	optionOf := func(inner types.Type) types.Type { return &types.TypeApp{Con: "Option", Args: []types.Type{inner}} }

	c.Define("len", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{arr(t)}, Return: types.Nat})))
	c.Define("is_empty", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{arr(t)}, Return: types.Bool})))
	c.Define("push", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{arr(t), t}, Return: arr(t)})))
	c.Define("map", external(scheme([]string{"T", "U"}, &types.TypeFn{
		Params: []types.Type{arr(t), &types.TypeFn{Params: []types.Type{t}, Return: u}}, Return: arr(u),
	})))
	c.Define("filter", external(scheme([]string{"T"}, &types.TypeFn{
		Params: []types.Type{arr(t), &types.TypeFn{Params: []types.Type{t}, Return: types.Bool}}, Return: arr(t),
	})))
	c.Define("fold", external(scheme([]string{"T", "U"}, &types.TypeFn{
		Params: []types.Type{arr(t), u, &types.TypeFn{Params: []types.Type{u, t}, Return: u}}, Return: u,
	})))
	c.Define("reduce", external(scheme([]string{"T"}, &types.TypeFn{
		Params: []types.Type{arr(t), &types.TypeFn{Params: []types.Type{t, t}, Return: t}}, Return: optionOf(t),
	})))
	c.Define("get", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{arr(t), types.Nat}, Return: optionOf(t)})))
	c.Define("find", external(scheme([]string{"T"}, &types.TypeFn{
		Params: []types.Type{arr(t), &types.TypeFn{Params: []types.Type{t}, Return: types.Bool}}, Return: optionOf(t),
	})))
	c.Define("any", external(scheme([]string{"T"}, &types.TypeFn{
		Params: []types.Type{arr(t), &types.TypeFn{Params: []types.Type{t}, Return: types.Bool}}, Return: types.Bool,
	})))
	c.Define("all", external(scheme([]string{"T"}, &types.TypeFn{
		Params: []types.Type{arr(t), &types.TypeFn{Params: []types.Type{t}, Return: types.Bool}}, Return: types.Bool,
	})))
	c.Define("contains", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{arr(t), t}, Return: types.Bool})))
	c.Define("concat", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{arr(t), arr(t)}, Return: arr(t)})))
	c.Define("reverse", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{arr(t)}, Return: arr(t)})))
	c.Define("take", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{arr(t), types.Nat}, Return: arr(t)})))
	c.Define("drop", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{arr(t), types.Nat}, Return: arr(t)})))
	c.Define("zip", external(scheme([]string{"T", "U"}, &types.TypeFn{
		Params: []types.Type{arr(t), arr(u)}, Return: arr(&types.TypeTuple{Elements: []types.Type{t, u}}),
	})))
}

func registerStringFns(c *Context) {
	c.Define("str_len", external(scheme(nil, &types.TypeFn{Params: []types.Type{types.Str}, Return: types.Nat})))
	c.Define("trim", external(scheme(nil, &types.TypeFn{Params: []types.Type{types.Str}, Return: types.Str})))
	c.Define("split", external(scheme(nil, &types.TypeFn{Params: []types.Type{types.Str, types.Str}, Return: &types.TypeArray{Element: types.Str}})))
	c.Define("join", external(scheme(nil, &types.TypeFn{Params: []types.Type{&types.TypeArray{Element: types.Str}, types.Str}, Return: types.Str})))
	t := tvar("T")
	c.Define("to_string", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{t}, Return: types.Str})))
}

func registerIOFns(c *Context) {
	t := tvar("T")
	c.Define("print", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{t}, Return: types.Unit, Effects: []string{"IO"}})))
	c.Define("println", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{t}, Return: types.Unit, Effects: []string{"IO"}})))
}

func registerControlFns(c *Context) {
	c.Define("panic", external(scheme(nil, &types.TypeFn{Params: []types.Type{types.Str}, Return: &types.TypeNever{}})))
	c.Define("unreachable", external(scheme(nil, &types.TypeFn{Params: nil, Return: &types.TypeNever{}})))
}

func registerConversionFns(c *Context) {
	c.Define("int_to_float", external(scheme(nil, &types.TypeFn{Params: []types.Type{types.Int}, Return: types.Float})))
	c.Define("float_to_int", external(scheme(nil, &types.TypeFn{Params: []types.Type{types.Float}, Return: types.Int})))
}

func registerMathFns(c *Context) {
	t := tvar("T")
	c.Define("abs", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{t}, Return: t})))
	c.Define("min", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{t, t}, Return: t})))
	c.Define("max", external(scheme([]string{"T"}, &types.TypeFn{Params: []types.Type{t, t}, Return: t})))
}
