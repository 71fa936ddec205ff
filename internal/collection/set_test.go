package collection

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSetAddAndHas(t *testing.T) {
	set := NewSet()

	if set.Has("a") {
		t.Error("Expected empty set to not contain 'a'")
	}

	set.Add("a")
	set.Add("b")
	set.Add("a") // duplicate

	if !set.Has("a") || !set.Has("b") {
		t.Error("Expected set to contain 'a' and 'b'")
	}
	if set.Len() != 2 {
		t.Errorf("Expected length 2, got %d", set.Len())
	}
}

func TestSetNewSetDeduplicates(t *testing.T) {
	set := NewSet("x", "y", "x")

	if set.Len() != 2 {
		t.Errorf("Expected length 2, got %d", set.Len())
	}
}

func TestSetPop(t *testing.T) {
	set := NewSet("only")

	value, ok := set.Pop()
	if !ok {
		t.Fatal("Expected Pop on non-empty set to succeed")
	}
	if value != "only" {
		t.Errorf("Expected popped value 'only', got %q", value)
	}
	if set.Len() != 0 {
		t.Errorf("Expected set to be empty after Pop, got length %d", set.Len())
	}
}

func TestSetPopEmpty(t *testing.T) {
	set := NewSet()

	value, ok := set.Pop()
	if ok {
		t.Error("Expected Pop on empty set to report not ok")
	}
	if value != "" {
		t.Errorf("Expected zero value from empty Pop, got %q", value)
	}
}

func TestSetPopDrainsAllElements(t *testing.T) {
	set := NewSet("a", "b", "c")

	drained := NewSet()
	for {
		value, ok := set.Pop()
		if !ok {
			break
		}
		drained.Add(value)
	}

	if !reflect.DeepEqual(drained.Values(), []string{"a", "b", "c"}) {
		t.Errorf("Expected to drain all elements, got %v", drained.Values())
	}
}

func TestSetValuesSorted(t *testing.T) {
	set := NewSet("c", "a", "b")

	values := set.Values()
	if !reflect.DeepEqual(values, []string{"a", "b", "c"}) {
		t.Errorf("Expected sorted values [a b c], got %v", values)
	}
}

func TestSetClone(t *testing.T) {
	original := NewSet("a", "b")
	clone := original.Clone()

	clone.Add("c")
	if original.Has("c") {
		t.Error("Expected mutation of clone to not affect original")
	}
	if !clone.Has("a") || !clone.Has("b") {
		t.Error("Expected clone to contain original elements")
	}
}

func TestSetMarshalJSON(t *testing.T) {
	set := NewSet("b", "a")

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `["a","b"]` {
		t.Errorf(`Expected ["a","b"], got %s`, string(data))
	}
}

func TestSetMarshalJSONEmpty(t *testing.T) {
	set := NewSet()

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `[]` {
		t.Errorf("Expected [], got %s", string(data))
	}
}

func TestSetUnmarshalJSON(t *testing.T) {
	var set Set
	if err := json.Unmarshal([]byte(`["a","b","a"]`), &set); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if set.Len() != 2 {
		t.Errorf("Expected length 2 after unmarshal with duplicate, got %d", set.Len())
	}
	if !set.Has("a") || !set.Has("b") {
		t.Error("Expected set to contain 'a' and 'b'")
	}
}

func TestSetUnmarshalJSONNull(t *testing.T) {
	var set Set
	if err := json.Unmarshal([]byte(`null`), &set); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if set.Len() != 0 {
		t.Errorf("Expected empty set from null, got length %d", set.Len())
	}
}
