package diag

import "testing"

func TestMarshalDeterministicSortsKeys(t *testing.T) {
	v := map[string]any{"zebra": 1, "alpha": 2, "mike": map[string]any{"y": 1, "x": 2}}
	out, err := MarshalDeterministic(v)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"alpha":2,"mike":{"x":2,"y":1},"zebra":1}`
	if string(out) != want {
		t.Errorf("got %s, want %s", out, want)
	}
}

func TestMarshalDeterministicStableAcrossCalls(t *testing.T) {
	v := map[string]any{"b": 1, "a": 2, "c": 3}
	first, _ := MarshalDeterministic(v)
	second, _ := MarshalDeterministic(v)
	if string(first) != string(second) {
		t.Errorf("expected deterministic output, got %s then %s", first, second)
	}
}

func TestNewEnvelopeCarriesSchemaVersion(t *testing.T) {
	d := &Diagnostic{Code: E1001}
	env := NewEnvelope("diagnostic", d)
	if env.Schema != SchemaV1 {
		t.Errorf("expected schema %q, got %q", SchemaV1, env.Schema)
	}
	out, err := MarshalDeterministic(env)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 {
		t.Error("expected non-empty envelope JSON")
	}
}
