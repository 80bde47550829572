package normalize

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func parseDoc(t *testing.T, s string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		t.Fatalf("error parsing test document: %v", err)
	}
	return doc
}

func TestNodeWalksMapsAndArrays(t *testing.T) {
	doc := parseDoc(t, `{"a": [{"b": {"c": 42}}]}`)
	v, err := Node(doc, "a", "0", "b", "c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, err := IntValue(v)
	if err != nil || n != 42 {
		t.Errorf("got %v (err %v), want 42", v, err)
	}
}

func TestNodeNamesTheMissingStep(t *testing.T) {
	doc := parseDoc(t, `{"a": {"b": 1}}`)
	_, err := Node(doc, "a", "missing", "c")
	if err == nil {
		t.Fatal("expected an error for a missing step")
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error %q does not name the failing step", err)
	}
}

func TestIndexedCollectionOrdersByIndex(t *testing.T) {
	doc := parseDoc(t, `{"count": 3, "0": "x", "1": "y", "2": "z", "extra": true}`)
	got, err := IndexedCollection(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{"x", "y", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIndexedCollectionMissingEntry(t *testing.T) {
	doc := parseDoc(t, `{"count": 2, "0": "x"}`)
	if _, err := IndexedCollection(doc); err == nil {
		t.Fatal("expected an error for a missing entry")
	}
}

func TestMergeFragmentsDropsKeeperFlag(t *testing.T) {
	frags := []any{
		map[string]any{"player_id": "8857"},
		map[string]any{"status": false},
		map[string]any{"status": "DTD"},
		[]any{},
	}
	merged := MergeFragments(frags)
	if got := merged["status"]; got != "DTD" {
		t.Errorf("status = %v, want DTD", got)
	}
}

func TestMergeFragmentsKeeperFlagOnly(t *testing.T) {
	frags := []any{
		map[string]any{"player_id": "8967"},
		map[string]any{"status": false},
	}
	merged := MergeFragments(frags)
	if _, ok := merged["status"]; ok {
		t.Errorf("boolean status should not survive the merge, got %v", merged["status"])
	}
}

func TestIntValueForms(t *testing.T) {
	for _, tc := range []struct {
		in   any
		want int
	}{
		{json.Number("12"), 12},
		{"24", 24},
		{float64(7), 7},
	} {
		got, err := IntValue(tc.in)
		if err != nil {
			t.Errorf("IntValue(%v): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("IntValue(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
	if _, err := IntValue("abc"); err == nil {
		t.Error("expected an error for a non-numeric string")
	}
	if _, err := IntValue(nil); err == nil {
		t.Error("expected an error for nil")
	}
}

func TestNumberOrString(t *testing.T) {
	if got := numberOrString(json.Number(".257")); got != 0.257 {
		t.Errorf("got %v, want 0.257", got)
	}
	if got := numberOrString("35"); got != float64(35) {
		t.Errorf("got %v, want 35", got)
	}
	if got := numberOrString("-"); got != "-" {
		t.Errorf("got %v, want the string unchanged", got)
	}
}
