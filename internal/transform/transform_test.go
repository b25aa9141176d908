package transform

import (
	"reflect"
	"testing"
)

func TestOmitting(t *testing.T) {
	original := map[string]int{"1": 1, "2": 2, "3": 3}

	t.Run("known key yields a new map without it", func(t *testing.T) {
		got := Omitting(original, "2")
		if Same(got, original) {
			t.Fatal("expected a new map")
		}
		want := map[string]int{"1": 1, "3": 3}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		if len(original) != 3 {
			t.Fatalf("input was modified: %v", original)
		}
	})

	t.Run("unknown key returns the input unchanged", func(t *testing.T) {
		got := Omitting(original, "9")
		if !Same(got, original) {
			t.Fatal("expected the same map back")
		}
	})
}

func TestReplacing(t *testing.T) {
	original := map[string]string{"a": "x"}
	got := Replacing(original, "b", "y")
	if Same(got, original) {
		t.Fatal("expected a new map")
	}
	if !reflect.DeepEqual(got, map[string]string{"a": "x", "b": "y"}) {
		t.Fatalf("unexpected result %v", got)
	}
	if _, ok := original["b"]; ok {
		t.Fatal("input was modified")
	}

	replaced := Replacing(got, "a", "z")
	if replaced["a"] != "z" || got["a"] != "x" {
		t.Fatalf("replace did not copy: got=%v replaced=%v", got, replaced)
	}
}

func TestReplacingNilMap(t *testing.T) {
	var m map[string]int
	got := Replacing(m, "k", 1)
	if got["k"] != 1 {
		t.Fatalf("got %v", got)
	}
}

func TestFromSlice(t *testing.T) {
	type item struct {
		id   string
		name string
	}
	items := []item{{"4", "four"}, {"5", "five"}, {"4", "again"}}
	got := FromSlice(items, func(i item) (string, string) { return i.id, i.name })
	want := map[string]string{"4": "again", "5": "five"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSetDifference(t *testing.T) {
	got := SetDifference([]string{"path", "method", "bogus", "extra", "bogus"}, []string{"path", "method"})
	want := []string{"bogus", "extra"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := SetDifference([]int{1, 2}, []int{1, 2, 3}); len(got) != 0 {
		t.Fatalf("expected empty difference, got %v", got)
	}
}

func TestSame(t *testing.T) {
	a := map[string]int{"1": 1}
	b := map[string]int{"1": 1}
	if !Same(a, a) {
		t.Fatal("a map is the same as itself")
	}
	if Same(a, b) {
		t.Fatal("equal maps with separate storage are not the same")
	}
	var n1, n2 map[string]int
	if !Same(n1, n2) {
		t.Fatal("nil maps are the same")
	}
	if Same(n1, a) {
		t.Fatal("nil and non-nil maps are not the same")
	}
}
