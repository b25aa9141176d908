package dummy

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/choretracker-go/internal/clock"
	"github.com/nibzard/choretracker-go/internal/task"
)

// Fixture names.
const (
	FixtureRealistic = "realistic"
	FixtureEmpty     = "empty"
)

// Fixture seeds a database.
type Fixture struct {
	Tasks []FixtureTask `yaml:"tasks"`
}

// FixtureTask is one seeded task. Exactly one of Due and DueInDays is used:
// DueInDays, when set, is an offset from the current time.
type FixtureTask struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Due         int64  `yaml:"due"`
	DueInDays   *int   `yaml:"due_in_days"`
	TaskGroup   *int64 `yaml:"task_group"`
}

func days(n int) *int     { return &n }
func group(n int64) *int64 { return &n }

var fixtures = map[string]Fixture{
	FixtureEmpty: {},
	FixtureRealistic: {Tasks: []FixtureTask{
		{
			Name:        "Clean Kitchen",
			Description: "- Wash dishes\n- Wipe down surfaces\n- Sweep and mop",
			DueInDays:   days(-4),
			TaskGroup:   group(1),
		},
		{
			Name:      "Change Car Oil",
			DueInDays: days(30),
			TaskGroup: group(1),
		},
		{
			Name:        "Clean Bathroom",
			Description: "Make sure to get under the toilet",
			DueInDays:   days(2),
			TaskGroup:   group(1),
		},
	}},
}

// FixtureNames returns the built-in fixture names, sorted.
func FixtureNames() []string {
	names := make([]string, 0, len(fixtures))
	for name := range fixtures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupFixture returns a built-in fixture. An empty name means realistic.
func LookupFixture(name string) (Fixture, error) {
	if name == "" {
		name = FixtureRealistic
	}
	f, ok := fixtures[name]
	if !ok {
		return Fixture{}, fmt.Errorf("unknown fixture %q (available: %v)", name, FixtureNames())
	}
	return f, nil
}

// LoadFixtureFile reads a YAML fixture.
func LoadFixtureFile(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	for i, t := range f.Tasks {
		if t.Name == "" {
			return Fixture{}, fmt.Errorf("parse fixture %s: tasks[%d]: %w", path, i, task.ErrEmptyName)
		}
	}
	return f, nil
}

// Seed creates the fixture's tasks in db, in order.
func (f Fixture) Seed(db *Database, c clock.Clock) error {
	if c == nil {
		c = clock.Real{}
	}
	now := c.Now()
	for i, ft := range f.Tasks {
		due := ft.Due
		if ft.DueInDays != nil {
			due = now.Add(time.Duration(*ft.DueInDays) * 24 * time.Hour).Unix()
		}
		_, err := db.Create(task.WireInput{
			TaskGroup:   ft.TaskGroup,
			Name:        ft.Name,
			Description: ft.Description,
			Due:         due,
		})
		if err != nil {
			return fmt.Errorf("seed task %d: %w", i, err)
		}
	}
	return nil
}

// NewSeededDatabase returns a database holding the fixture's tasks.
func NewSeededDatabase(f Fixture, c clock.Clock) (*Database, error) {
	db := NewDatabase(c)
	if err := f.Seed(db, c); err != nil {
		return nil, err
	}
	return db, nil
}
