// Package query filters tasks with expr-lang boolean expressions such as
// `overdue || (due_soon && name contains "Clean")`.
package query

import (
	"errors"
	"fmt"
	"strings"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/nibzard/choretracker-go/internal/due"
	"github.com/nibzard/choretracker-go/internal/task"
)

// ErrEmptyExpression is returned by Compile for a blank expression.
var ErrEmptyExpression = errors.New("expression must not be empty")

const secondsPerDay = 24 * 60 * 60

// Env is the variable set an expression sees for one task.
type Env struct {
	ID          string `expr:"id"`
	Group       string `expr:"group"`
	Name        string `expr:"name"`
	Description string `expr:"description"`
	Due         int64  `expr:"due"`
	Created     int64  `expr:"created"`
	Modified    int64  `expr:"modified"`
	// Category is the presentation class: overdue, duesoon or duelater.
	Category string `expr:"category"`
	Overdue  bool   `expr:"overdue"`
	DueSoon  bool   `expr:"due_soon"`
	DueLater bool   `expr:"due_later"`
	// DaysLeft is the number of whole days until due, negative when overdue.
	DaysLeft int64 `expr:"days_left"`
	Now      int64 `expr:"now"`
}

// NewEnv builds the environment for t at the given time reference.
func NewEnv(t task.Task, reference int64) Env {
	c := due.Categorize(t.Due, reference)
	return Env{
		ID:          t.ID,
		Group:       t.TaskGroup,
		Name:        t.Name,
		Description: t.Description,
		Due:         t.Due,
		Created:     t.Created,
		Modified:    t.Modified,
		Category:    due.Class(c),
		Overdue:     c == due.Overdue,
		DueSoon:     c == due.DueSoon,
		DueLater:    c == due.DueLater,
		DaysLeft:    floorDiv(t.Due-reference, secondsPerDay),
		Now:         reference,
	}
}

// Filter is a compiled task predicate.
type Filter struct {
	expression string
	program    *exprvm.Program
}

// Compile type-checks expression against Env. It must yield a bool.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, ErrEmptyExpression
	}
	program, err := exprlang.Compile(expression, exprlang.Env(Env{}), exprlang.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	return &Filter{expression: expression, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expression
}

// Match reports whether t satisfies the filter.
func (f *Filter) Match(t task.Task, reference int64) (bool, error) {
	out, err := exprlang.Run(f.program, NewEnv(t, reference))
	if err != nil {
		return false, fmt.Errorf("evaluate %q for task %s: %w", f.expression, t.ID, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Apply returns the tasks that match, preserving order.
func (f *Filter) Apply(tasks []task.Task, reference int64) ([]task.Task, error) {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		ok, err := f.Match(t, reference)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
