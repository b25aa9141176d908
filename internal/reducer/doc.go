// Package reducer composes state-transition functions.
//
// A Pipeline is built from an ordered list of Specs. Each Spec reads an input
// (either the whole state or one field of it), runs a transition function on
// it, and writes the output (either as the whole next state or into one
// field). Specs run strictly in order; each sees the state produced by the
// previous one.
//
// The familiar keyed combination
//
//	reducer.Combine(initial,
//		reducer.Keyed(foo, fooReducer),
//		reducer.Keyed(bar, barReducer),
//	)
//
// is the special case where every Spec reads and writes the same field.
// Derived fields read one field and write another:
//
//	reducer.Map(tasksByID, orderByDue, tasksOrderedByDue)
//
// and whole-state transforms read and write the entire state:
//
//	reducer.Whole(normalize)
//
// Specs are validated when the Pipeline is built, never while reducing. A Spec
// that names an input field but no output field is rejected: its result would
// have nowhere to go except to replace the whole state with a field value.
package reducer
