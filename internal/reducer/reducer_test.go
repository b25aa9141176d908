package reducer

import (
	"errors"
	"strings"
	"testing"

	"github.com/nibzard/choretracker-go/internal/action"
)

type counters struct {
	A   int
	B   int
	Sum int
}

var (
	fieldA = NewField("a",
		func(s counters) int { return s.A },
		func(s counters, v int) counters { s.A = v; return s })
	fieldB = NewField("b",
		func(s counters) int { return s.B },
		func(s counters, v int) counters { s.B = v; return s })
	fieldSum = NewField("sum",
		func(s counters) int { return s.Sum },
		func(s counters, v int) counters { s.Sum = v; return s })
)

func increment(n int, a action.Action) int {
	if a.Type == action.UpdateTimeReference {
		return n + 1
	}
	return n
}

func tick() action.Action {
	return action.SetTimeReference(1)
}

func TestCombineZeroSpecsReturnsInitial(t *testing.T) {
	initial := counters{A: 7}
	p, err := Combine(initial)
	if err != nil {
		t.Fatalf("Combine() error = %v", err)
	}
	got := p.Reduce(nil, tick())
	if got != initial {
		t.Fatalf("Reduce(nil) = %+v, want %+v", got, initial)
	}
	state := counters{A: 1, B: 2}
	if got := p.Reduce(&state, tick()); got != state {
		t.Fatalf("Reduce(state) = %+v, want unchanged %+v", got, state)
	}
}

func TestKeyedBehavesLikeCombinedReducers(t *testing.T) {
	p := MustCombine(counters{},
		Keyed(fieldA, increment),
		Keyed(fieldB, func(n int, a action.Action) int { return increment(increment(n, a), a) }),
	)

	s := p.Reduce(nil, tick())
	s = p.Reduce(&s, tick())
	if s.A != 2 || s.B != 4 {
		t.Fatalf("state = %+v, want A=2 B=4", s)
	}

	unrelated := action.Hide(1)
	if got := p.Reduce(&s, unrelated); got != s {
		t.Fatalf("unrelated action changed state: %+v -> %+v", s, got)
	}
}

func TestSpecsRunInOrderAndSeePriorOutput(t *testing.T) {
	sum := Map(fieldA, func(a int, _ action.Action) int { return a * 10 }, fieldSum)
	p := MustCombine(counters{}, Keyed(fieldA, increment), sum)

	s := p.Reduce(nil, tick())
	if s.A != 1 || s.Sum != 10 {
		t.Fatalf("state = %+v, want A=1 Sum=10", s)
	}

	reversed := MustCombine(counters{}, sum, Keyed(fieldA, increment))
	s = reversed.Reduce(nil, tick())
	if s.A != 1 || s.Sum != 0 {
		t.Fatalf("reversed state = %+v, want A=1 Sum=0", s)
	}
}

func TestWholeStateInputToField(t *testing.T) {
	total := Map[counters, counters, int](nil, func(s counters, _ action.Action) int { return s.A + s.B }, fieldSum)
	p := MustCombine(counters{A: 2, B: 3}, total)

	got := p.Reduce(nil, tick())
	if got.Sum != 5 {
		t.Fatalf("Sum = %d, want 5", got.Sum)
	}
}

func TestWholeStateTransform(t *testing.T) {
	swap := Whole(func(s counters, _ action.Action) counters {
		s.A, s.B = s.B, s.A
		return s
	})
	p := MustCombine(counters{A: 1, B: 2}, swap)

	got := p.Reduce(nil, tick())
	if got.A != 2 || got.B != 1 {
		t.Fatalf("state = %+v, want swapped", got)
	}
}

func TestNestedPipeline(t *testing.T) {
	inner := MustCombine(counters{}, Keyed(fieldA, increment))
	outer := MustCombine(counters{}, Whole(inner.Reducer()), Keyed(fieldB, increment))

	got := outer.Reduce(nil, tick())
	if got.A != 1 || got.B != 1 {
		t.Fatalf("state = %+v, want A=1 B=1", got)
	}
}

func TestCombineRejectsInvalidSpecs(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec[counters]
		wantErr error
	}{
		{
			name:    "from without to",
			spec:    Map[counters, int, int](fieldA, increment, nil),
			wantErr: ErrFromWithoutTo,
		},
		{
			name:    "nil via",
			spec:    Map[counters, int, int](fieldA, nil, fieldB),
			wantErr: ErrNilVia,
		},
		{
			name:    "nil whole via",
			spec:    Whole[counters](nil),
			wantErr: ErrNilVia,
		},
		{
			name:    "whole input of wrong type",
			spec:    Map[counters, int, int](nil, increment, fieldB),
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "whole output of wrong type",
			spec:    Map[counters, counters, int](nil, func(counters, action.Action) int { return 0 }, nil),
			wantErr: ErrTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Combine(counters{}, Keyed(fieldA, increment), tt.spec)
			if err == nil {
				t.Fatalf("Combine() expected error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Combine() error = %v, want %v", err, tt.wantErr)
			}
			var specErr *SpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("Combine() error type = %T, want *SpecError", err)
			}
			if specErr.Index != 1 {
				t.Fatalf("SpecError.Index = %d, want 1", specErr.Index)
			}
		})
	}
}

func TestFromWithoutToMessageIsDescriptive(t *testing.T) {
	_, err := Combine(counters{}, Map[counters, int, int](fieldA, increment, nil))
	if err == nil {
		t.Fatalf("Combine() expected error")
	}
	msg := err.Error()
	for _, want := range []string{"index 0", `"from"`, `"to"`, "a -> <state>"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}

func TestMustCombinePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustCombine() did not panic")
		}
	}()
	MustCombine(counters{}, Whole[counters](nil))
}

func TestSpecAccessors(t *testing.T) {
	spec := Map(fieldA, func(a int, _ action.Action) int { return a }, fieldSum)
	if spec.From() != "a" || spec.To() != "sum" {
		t.Fatalf("From/To = %q/%q", spec.From(), spec.To())
	}
	if spec.String() != "a -> sum" {
		t.Fatalf("String() = %q", spec.String())
	}
	if fieldA.Name() != "a" {
		t.Fatalf("Name() = %q", fieldA.Name())
	}
}
