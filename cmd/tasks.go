package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nibzard/choretracker-go/internal/config"
	"github.com/nibzard/choretracker-go/internal/due"
	"github.com/nibzard/choretracker-go/internal/query"
	"github.com/nibzard/choretracker-go/internal/state"
	"github.com/nibzard/choretracker-go/internal/task"
	"github.com/nibzard/choretracker-go/internal/ui"
	"github.com/nibzard/choretracker-go/internal/utils"
)

// lsCommand lists tasks grouped by due class.
func lsCommand(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("choretracker ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	where := fs.String("where", "", "Filter expression, e.g. 'overdue || due_soon'")
	asJSON := fs.Bool("json", false, "Print tasks as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	var filter *query.Filter
	if *where != "" {
		f, err := query.Compile(*where)
		if err != nil {
			return err
		}
		filter = f
	}

	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		return err
	}
	if err := a.store.Run(ctx, a.cmds.FetchAllTasks()); err != nil {
		return err
	}

	s := a.store.State()
	tasks := state.OrderedTasks(s)
	if filter != nil {
		tasks, err = filter.Apply(tasks, s.TimeReference)
		if err != nil {
			return err
		}
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}
	printTasksByCategory(stdout, tasks, s.TimeReference)
	return nil
}

// printTasksByCategory prints tasks under one heading per due class. Input
// order is kept within a class.
func printTasksByCategory(w io.Writer, tasks []task.Task, reference int64) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	groups := make(map[due.Category][]task.Task)
	for _, t := range tasks {
		c := due.Categorize(t.Due, reference)
		groups[c] = append(groups[c], t)
	}
	for _, c := range due.Categories() {
		matching := groups[c]
		if len(matching) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d)\n", categoryLabel(c), len(matching))
		for _, t := range matching {
			fmt.Fprintf(w, "  [%s] %s  %s (%s)\n", t.ID, t.Name, task.FormatDue(t.Due), ui.Relative(t.Due, reference))
		}
	}
}

func categoryLabel(c due.Category) string {
	switch c {
	case due.Overdue:
		return "overdue"
	case due.DueSoon:
		return "due soon"
	default:
		return "due later"
	}
}

// showCommand prints one task.
func showCommand(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	id, err := singleID("show", args)
	if err != nil {
		return err
	}
	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		return err
	}
	if err := a.store.Run(ctx, a.cmds.RequireTask(id)); err != nil {
		a.printNavigation(stdout)
		return err
	}

	s := a.store.State()
	t, _ := state.Task(s, id)
	fmt.Fprintf(stdout, "%s\n", t.Name)
	fmt.Fprintf(stdout, "  id:       %s\n", t.ID)
	if t.TaskGroup != "" {
		fmt.Fprintf(stdout, "  group:    %s\n", t.TaskGroup)
	}
	fmt.Fprintf(stdout, "  due:      %s (%s, %s)\n", task.FormatDue(t.Due), due.ClassOf(t.Due, s.TimeReference), ui.Relative(t.Due, s.TimeReference))
	fmt.Fprintf(stdout, "  created:  %s\n", task.FormatDue(t.Created))
	fmt.Fprintf(stdout, "  modified: %s\n", task.FormatDue(t.Modified))
	if paragraphs := t.Paragraphs(); len(paragraphs) > 0 {
		fmt.Fprintln(stdout)
		for _, p := range paragraphs {
			fmt.Fprintf(stdout, "  %s\n", p)
		}
	}
	return nil
}

// fieldFlags binds the editable task fields to a flag set.
type fieldFlags struct {
	name        *string
	description *string
	due         *string
	group       *string
}

func bindFieldFlags(fs *flag.FlagSet) *fieldFlags {
	return &fieldFlags{
		name:        fs.String("name", "", "Task name"),
		description: fs.String("description", "", "Task description"),
		due:         fs.String("due", "", "Due time (unix seconds, RFC3339, 2006-01-02, or +Nd/-Nd/+Nh)"),
		group:       fs.String("group", "", "Task group id"),
	}
}

// apply overrides the fields whose flags were set on fs.
func (ff *fieldFlags) apply(fs *flag.FlagSet, f task.Fields, now time.Time) (task.Fields, error) {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "name":
			f.Name = *ff.name
		case "description":
			f.Description = *ff.description
		case "group":
			f.TaskGroup = *ff.group
		case "due":
			var parsed int64
			parsed, err = task.ParseDue(*ff.due, now)
			if err == nil {
				f.Due = parsed
			}
		}
	})
	if err != nil {
		return f, err
	}
	return f, f.Validate()
}

// addCommand creates a task.
func addCommand(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("choretracker add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	ff := bindFieldFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *ff.due == "" {
		return fmt.Errorf("--due is required")
	}
	fields, err := ff.apply(fs, task.Fields{}, time.Now())
	if err != nil {
		return err
	}

	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		return err
	}
	err = a.store.Run(ctx, a.cmds.CreateTask(fields))
	a.printNavigation(stdout)
	return err
}

// editCommand updates the given fields of a task.
func editCommand(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("edit requires a task id")
	}
	id, rest := args[0], args[1:]
	fs := flag.NewFlagSet("choretracker edit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	ff := bindFieldFlags(fs)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if fs.NFlag() == 0 {
		return fmt.Errorf("nothing to change: pass --name, --description, --due or --group")
	}

	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		return err
	}
	if err := a.store.Run(ctx, a.cmds.RequireTask(id)); err != nil {
		a.printNavigation(stdout)
		return err
	}
	current, _ := state.Task(a.store.State(), id)
	fields, err := ff.apply(fs, current.Fields(), time.Now())
	if err != nil {
		return err
	}

	err = a.store.Run(ctx, a.cmds.UpdateTask(id, fields))
	a.printNavigation(stdout)
	return err
}

// rmCommand deletes one or more tasks. Ids may be separated by spaces or
// commas; deletion stops at the first failure.
func rmCommand(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	ids := utils.SplitIDs(strings.Join(args, " "))
	if len(ids) == 0 {
		return fmt.Errorf("rm requires a task id")
	}
	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.printNavigation(stdout)
	for _, id := range ids {
		if err := a.store.Run(ctx, a.cmds.DeleteTask(id)); err != nil {
			return err
		}
	}
	return nil
}

func singleID(name string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("%s requires a task id", name)
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("unexpected arguments: %v", args[1:])
	}
}
