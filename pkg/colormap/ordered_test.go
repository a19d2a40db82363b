package colormap

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOrderedMapPreservesKeyOrder(t *testing.T) {
	input := `{"zeta":1,"alpha":{"y":[1,"two",{"k":true}],"b":null},"mid":"x"}`

	m := NewOrderedMap()
	if err := json.Unmarshal([]byte(input), m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	nested, _ := m.Get("alpha")
	if diff := cmp.Diff([]string{"y", "b"}, nested.(*OrderedMap).Keys()); diff != "" {
		t.Errorf("nested Keys() mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != input {
		t.Errorf("Marshal() = %s, want %s", out, input)
	}
}

func TestOrderedMapRejectsNonObject(t *testing.T) {
	for _, input := range []string{`[1,2]`, `"x"`, `{"a":}`} {
		m := NewOrderedMap()
		if err := json.Unmarshal([]byte(input), m); err == nil {
			t.Errorf("Unmarshal(%s) succeeded", input)
		}
	}
}

func TestOrderedMapSetDelete(t *testing.T) {
	var m OrderedMap
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)
	m.Delete("missing")

	if diff := cmp.Diff([]string{"a", "b"}, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if v, _ := m.Get("a"); v != 3 {
		t.Errorf("Get(a) = %v, want 3", v)
	}

	m.Delete("a")
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	if diff := cmp.Diff(map[string]any{"b": 2}, m.ToMap()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}
}
