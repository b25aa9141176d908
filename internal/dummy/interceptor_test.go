package dummy

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/choretracker-go/internal/api"
	"github.com/nibzard/choretracker-go/internal/clock"
	"github.com/nibzard/choretracker-go/internal/task"
)

func patchedClient(t *testing.T, fixture string) (*api.Client, *Interceptor) {
	t.Helper()
	c := api.NewClient("/apis/", nil)
	i, err := Patch(c, Options{
		Fixture: fixture,
		Clock:   clock.NewFake(time.Unix(1700000000, 0)),
	})
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	t.Cleanup(func() {
		if c.Patched() {
			_ = Unpatch(c)
		}
	})
	return c, i
}

func TestCreateThenGetAll(t *testing.T) {
	c, _ := patchedClient(t, FixtureRealistic)
	ctx := context.Background()

	spec, err := api.CreateTask(task.Fields{Name: "Clean Kitchen", Due: 1700000000})
	if err != nil {
		t.Fatal(err)
	}
	created, err := api.Fetch(ctx, c, spec)
	if err != nil {
		t.Fatalf("create error = %v", err)
	}
	if created.ID != "4" || created.Created != created.Modified || created.Name != "Clean Kitchen" || created.Due != 1700000000 {
		t.Fatalf("created = %+v", created)
	}

	all, err := api.Fetch(ctx, c, api.AllTasks())
	if err != nil {
		t.Fatalf("get all error = %v", err)
	}
	if len(all) != 4 || all[3].ID != created.ID {
		t.Fatalf("all = %+v", all)
	}
	for _, existing := range all[:3] {
		if existing.ID == created.ID {
			t.Fatalf("created task appears more than once")
		}
	}
}

func TestSingleUpdateDelete(t *testing.T) {
	c, i := patchedClient(t, FixtureRealistic)
	ctx := context.Background()

	got, err := api.Fetch(ctx, c, api.SingleTask("2"))
	if err != nil || got.Name != "Change Car Oil" || got.TaskGroup != "1" {
		t.Fatalf("single = %+v, %v", got, err)
	}

	spec, err := api.UpdateTask("2", task.Fields{Name: "Rotate Tires", Due: 5})
	if err != nil {
		t.Fatal(err)
	}
	updated, err := api.Fetch(ctx, c, spec)
	if err != nil || updated.Name != "Rotate Tires" || updated.Due != 5 {
		t.Fatalf("update = %+v, %v", updated, err)
	}

	if _, err := api.Fetch(ctx, c, api.RemoveTask("2")); err != nil {
		t.Fatalf("remove error = %v", err)
	}
	if i.Database().Len() != 2 {
		t.Fatalf("Len() = %d after delete", i.Database().Len())
	}

	_, err = api.Fetch(ctx, c, api.SingleTask("2"))
	if !api.IsNotFound(err) {
		t.Fatalf("fetch deleted error = %v, want 404", err)
	}
}

func TestUnknownAndMalformedPaths(t *testing.T) {
	c, _ := patchedClient(t, FixtureEmpty)
	ctx := context.Background()

	spec, err := api.UpdateTask("unknown-id", task.Fields{Name: "x", Due: 1})
	if err != nil {
		t.Fatal(err)
	}
	_, err = api.Fetch(ctx, c, spec)
	var se *api.StatusError
	if !errors.As(err, &se) || se.Actual != http.StatusNotFound {
		t.Fatalf("update unknown error = %v", err)
	}

	_, err = api.Fetch(ctx, c, api.Spec[any]{Path: []string{"users"}, Method: api.GET})
	if !api.IsNotFound(err) {
		t.Fatalf("unknown resource error = %v", err)
	}

	_, err = api.Fetch(ctx, c, api.Spec[any]{Path: []string{"tasks", "1", "extra"}, Method: api.GET})
	if !api.IsNotFound(err) {
		t.Fatalf("nested path error = %v", err)
	}
}

func TestRouteStatuses(t *testing.T) {
	db := NewDatabase(clock.NewFake(time.Unix(0, 0)))
	if _, err := db.Create(task.WireInput{Name: "a", Due: 1}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		method api.Method
		path   []string
		body   string
		want   int
	}{
		{"list", api.GET, []string{"tasks"}, "", http.StatusOK},
		{"create", api.POST, []string{"tasks"}, `{"name":"b","description":"","due":2}`, http.StatusCreated},
		{"create empty name", api.POST, []string{"tasks"}, `{"name":"","due":2}`, http.StatusBadRequest},
		{"create bad due", api.POST, []string{"tasks"}, `{"name":"b","due":-5}`, http.StatusBadRequest},
		{"create no body", api.POST, []string{"tasks"}, "", http.StatusBadRequest},
		{"delete collection", api.DELETE, []string{"tasks"}, "", http.StatusMethodNotAllowed},
		{"get one", api.GET, []string{"tasks", "1"}, "", http.StatusOK},
		{"post to item", api.POST, []string{"tasks", "1"}, `{"name":"b","due":2}`, http.StatusMethodNotAllowed},
		{"get missing", api.GET, []string{"tasks", "9"}, "", http.StatusNotFound},
		{"non integer id", api.GET, []string{"tasks", "abc"}, "", http.StatusNotFound},
		{"empty path", api.GET, []string{}, "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := Route(db, tt.method, tt.path, []byte(tt.body))
			if status != tt.want {
				t.Fatalf("Route() status = %d, want %d", status, tt.want)
			}
		})
	}
}

func TestRouteNotFoundMessage(t *testing.T) {
	db := NewDatabase(nil)
	_, payload := Route(db, api.GET, []string{"tasks", "5"}, nil)
	body, ok := payload.(ErrorBody)
	if !ok || body.Error != "Endpoint path tasks/5 returned 404" {
		t.Fatalf("payload = %#v", payload)
	}
}

func TestPatchSymmetry(t *testing.T) {
	c := api.NewClient("", nil)
	if err := Unpatch(c); !errors.Is(err, ErrNotPatched) {
		t.Fatalf("Unpatch() before Patch error = %v", err)
	}
	if _, err := Patch(c, Options{Fixture: FixtureEmpty}); err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	if _, err := Patch(c, Options{Fixture: FixtureEmpty}); !errors.Is(err, ErrAlreadyPatched) {
		t.Fatalf("second Patch() error = %v", err)
	}
	if err := Unpatch(c); err != nil {
		t.Fatalf("Unpatch() error = %v", err)
	}
	if err := Unpatch(c); !errors.Is(err, ErrNotPatched) {
		t.Fatalf("second Unpatch() error = %v", err)
	}
}

func TestPatchUnknownFixture(t *testing.T) {
	c := api.NewClient("", nil)
	if _, err := Patch(c, Options{Fixture: "nope"}); err == nil {
		t.Fatalf("expected error")
	}
	if c.Patched() {
		t.Fatalf("client patched despite error")
	}
}

func TestReset(t *testing.T) {
	c, i := patchedClient(t, FixtureRealistic)
	ctx := context.Background()
	if _, err := api.Fetch(ctx, c, api.RemoveTask("1")); err != nil {
		t.Fatal(err)
	}
	if err := i.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	all, err := api.Fetch(ctx, c, api.AllTasks())
	if err != nil || len(all) != 3 {
		t.Fatalf("after Reset: %d tasks, %v", len(all), err)
	}
}

func TestFixtureData(t *testing.T) {
	c := api.NewClient("", nil)
	f := Fixture{Tasks: []FixtureTask{{Name: "Only", Due: 10}}}
	if _, err := Patch(c, Options{FixtureData: &f}); err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	all, err := api.Fetch(context.Background(), c, api.AllTasks())
	if err != nil || len(all) != 1 || all[0].Name != "Only" {
		t.Fatalf("all = %+v, %v", all, err)
	}
}

func TestDelays(t *testing.T) {
	i, err := NewInterceptor(Options{
		Fixture:     FixtureEmpty,
		Delay:       30 * time.Millisecond,
		RejectDelay: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	resp, err := i.Execute(context.Background(), &api.Request{Method: api.GET, Path: []string{"tasks"}})
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("Execute() = %+v, %v", resp, err)
	}
	if time.Since(start) < 30*time.Millisecond {
		t.Fatalf("response arrived before the delay")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = i.Execute(ctx, &api.Request{Method: api.GET, Path: []string{"tasks"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute(canceled) error = %v", err)
	}
}

func TestCanceledWriteIsNotApplied(t *testing.T) {
	i, err := NewInterceptor(Options{
		Fixture: FixtureRealistic,
		Delay:   time.Second,
		Clock:   clock.NewFake(time.Unix(1700000000, 0)),
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = i.Execute(ctx, &api.Request{Method: api.DELETE, Path: []string{"tasks", "1"}})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Execute() error = %v, want deadline exceeded", err)
	}
	if got := i.Database().Len(); got != 3 {
		t.Fatalf("Len() = %d after canceled delete, want 3", got)
	}
	if _, err := i.Database().Get(1); err != nil {
		t.Fatalf("task 1 removed by canceled delete: %v", err)
	}
}

func TestDeleteHasNoBody(t *testing.T) {
	i, err := NewInterceptor(Options{
		Fixture: FixtureRealistic,
		Clock:   clock.NewFake(time.Unix(1700000000, 0)),
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := i.Execute(context.Background(), &api.Request{Method: api.DELETE, Path: []string{"tasks", "2"}})
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("Execute() = %+v, %v", resp, err)
	}
	if len(resp.Body) != 0 {
		t.Fatalf("delete body = %q, want empty", resp.Body)
	}
	if i.Database().Len() != 2 {
		t.Fatalf("Len() = %d after delete", i.Database().Len())
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Delay != DefaultDelay || opts.RejectDelay != DefaultRejectDelay || opts.Fixture != FixtureRealistic {
		t.Fatalf("DefaultOptions() = %+v", opts)
	}
	if !strings.Contains(DefaultDelay.String(), "200ms") {
		t.Fatalf("DefaultDelay = %v", DefaultDelay)
	}
}
