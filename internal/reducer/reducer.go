package reducer

import (
	"errors"
	"fmt"

	"github.com/nibzard/choretracker-go/internal/action"
)

var (
	// ErrNilVia is returned for a Spec without a transition function.
	ErrNilVia = errors.New(`property "via" is not a function`)
	// ErrFromWithoutTo is returned for a Spec that names an input field
	// but no output field.
	ErrFromWithoutTo = errors.New(`property "from" is set but "to" is not`)
	// ErrTypeMismatch is returned when a Spec reading or writing the whole
	// state has a transition whose input or output type is not the state
	// type.
	ErrTypeMismatch = errors.New("transition type does not match the state type")
)

// Reducer computes the next state from the current state and an action. It
// must be pure.
type Reducer[S any] func(state S, a action.Action) S

// Field addresses one top-level member of a state value of type S.
// Set must return a new state value and leave its input untouched.
type Field[S, V any] struct {
	name string
	get  func(S) V
	set  func(S, V) S
}

// NewField returns a Field named name with the given accessors.
func NewField[S, V any](name string, get func(S) V, set func(S, V) S) *Field[S, V] {
	return &Field[S, V]{name: name, get: get, set: set}
}

// Name returns the field name.
func (f *Field[S, V]) Name() string {
	return f.name
}

// Get reads the field from s.
func (f *Field[S, V]) Get(s S) V {
	return f.get(s)
}

// Set returns a copy of s with the field replaced by v.
func (f *Field[S, V]) Set(s S, v V) S {
	return f.set(s, v)
}

// Spec is one step of a Pipeline. Build Specs with Map, Keyed, or Whole.
type Spec[S any] struct {
	from string
	to   string
	step func(S, action.Action) S
	err  error
}

// From returns the input field name, or "" when the step reads the whole
// state.
func (s Spec[S]) From() string { return s.from }

// To returns the output field name, or "" when the step replaces the whole
// state.
func (s Spec[S]) To() string { return s.to }

// String describes the mapping for diagnostics.
func (s Spec[S]) String() string {
	from, to := s.from, s.to
	if from == "" {
		from = "<state>"
	}
	if to == "" {
		to = "<state>"
	}
	return from + " -> " + to
}

// Map builds a Spec that feeds from (or the whole state when from is nil)
// through via and stores the result in to (or as the whole state when to is
// nil). Invalid combinations are reported by Combine.
func Map[S, In, Out any](from *Field[S, In], via func(In, action.Action) Out, to *Field[S, Out]) Spec[S] {
	spec := Spec[S]{}
	if from != nil {
		spec.from = from.name
	}
	if to != nil {
		spec.to = to.name
	}

	if via == nil {
		spec.err = ErrNilVia
		return spec
	}
	if from != nil && to == nil {
		spec.err = ErrFromWithoutTo
		return spec
	}

	var read func(S) In
	if from != nil {
		read = from.get
	} else {
		var zero S
		if _, ok := any(zero).(In); !ok {
			spec.err = fmt.Errorf("%w: input of whole-state step", ErrTypeMismatch)
			return spec
		}
		read = func(s S) In { return any(s).(In) }
	}

	var write func(S, Out) S
	if to != nil {
		write = to.set
	} else {
		var zero Out
		if _, ok := any(zero).(S); !ok {
			spec.err = fmt.Errorf("%w: output of whole-state step", ErrTypeMismatch)
			return spec
		}
		write = func(_ S, out Out) S { return any(out).(S) }
	}

	spec.step = func(s S, a action.Action) S {
		return write(s, via(read(s), a))
	}
	return spec
}

// Keyed builds a Spec that reads and writes the same field.
func Keyed[S, V any](key *Field[S, V], via func(V, action.Action) V) Spec[S] {
	if key == nil {
		return Spec[S]{err: errors.New("key is nil")}
	}
	return Map(key, via, key)
}

// Whole builds a Spec that transforms the entire state.
func Whole[S any](via Reducer[S]) Spec[S] {
	if via == nil {
		return Spec[S]{err: ErrNilVia}
	}
	return Map[S, S, S](nil, via, nil)
}

// SpecError reports an invalid Spec passed to Combine.
type SpecError struct {
	Index int
	Spec  string
	Err   error
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("invalid map spec at index %d (%s): %s", e.Index, e.Spec, e.Err)
}

// Unwrap returns the underlying error.
func (e *SpecError) Unwrap() error {
	return e.Err
}

// Pipeline is a reducer assembled from ordered Specs.
type Pipeline[S any] struct {
	specs   []Spec[S]
	initial S
}

// Combine validates specs and returns a Pipeline applying them in order.
func Combine[S any](initial S, specs ...Spec[S]) (*Pipeline[S], error) {
	for i, spec := range specs {
		if spec.err != nil {
			return nil, &SpecError{Index: i, Spec: spec.String(), Err: spec.err}
		}
		if spec.step == nil {
			return nil, &SpecError{Index: i, Spec: spec.String(), Err: ErrNilVia}
		}
	}
	copied := make([]Spec[S], len(specs))
	copy(copied, specs)
	return &Pipeline[S]{specs: copied, initial: initial}, nil
}

// MustCombine is like Combine but panics on an invalid Spec. It is intended
// for package-level wiring with static Specs.
func MustCombine[S any](initial S, specs ...Spec[S]) *Pipeline[S] {
	p, err := Combine(initial, specs...)
	if err != nil {
		panic(err)
	}
	return p
}

// Initial returns the initial state.
func (p *Pipeline[S]) Initial() S {
	return p.initial
}

// Len returns the number of steps.
func (p *Pipeline[S]) Len() int {
	return len(p.specs)
}

// Reduce applies every step to state in order. A nil state means the
// initial state.
func (p *Pipeline[S]) Reduce(state *S, a action.Action) S {
	s := p.initial
	if state != nil {
		s = *state
	}
	for _, spec := range p.specs {
		s = spec.step(s, a)
	}
	return s
}

// Reducer returns the pipeline as a plain Reducer, suitable for nesting in
// another pipeline with Whole.
func (p *Pipeline[S]) Reducer() Reducer[S] {
	return func(s S, a action.Action) S {
		return p.Reduce(&s, a)
	}
}
