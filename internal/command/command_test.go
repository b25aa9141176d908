package command

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nibzard/choretracker-go/internal/action"
	"github.com/nibzard/choretracker-go/internal/api"
	"github.com/nibzard/choretracker-go/internal/clock"
	"github.com/nibzard/choretracker-go/internal/dummy"
	"github.com/nibzard/choretracker-go/internal/notification"
	"github.com/nibzard/choretracker-go/internal/state"
	"github.com/nibzard/choretracker-go/internal/store"
	"github.com/nibzard/choretracker-go/internal/task"
)

const now = 1700000000

// events records actions and navigations in the order they happen.
type events struct {
	mu  sync.Mutex
	log []string
}

func (e *events) add(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = append(e.log, s)
}

func (e *events) all() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.log...)
}

func (e *events) middleware() store.Middleware[state.State] {
	return func(d store.Dispatcher[state.State], next store.DispatchFunc) store.DispatchFunc {
		return func(a action.Action) {
			e.add(a.Type.String())
			next(a)
		}
	}
}

type harness struct {
	store  *store.Store[state.State]
	cmds   *Commands
	clock  *clock.Fake
	events *events
	client *api.Client
}

func newHarness(t *testing.T, fixture string) *harness {
	t.Helper()
	clk := clock.NewFake(time.Unix(now, 0))
	client := api.NewClient("/apis/", nil)
	if _, err := dummy.Patch(client, dummy.Options{Fixture: fixture, Clock: clk}); err != nil {
		t.Fatalf("dummy.Patch() error = %v", err)
	}
	ev := &events{}
	s := store.New(state.Root(state.New(now)), store.WithMiddleware(ev.middleware()))
	cmds := &Commands{
		API:   client,
		Nav:   NavigatorFunc(func(path string) { ev.add("navigate " + path) }),
		Clock: clk,
	}
	return &harness{store: s, cmds: cmds, clock: clk, events: ev, client: client}
}

func (h *harness) run(t *testing.T, thunk Thunk) error {
	t.Helper()
	return h.store.Run(context.Background(), thunk)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCreateTaskEndToEnd(t *testing.T) {
	h := newHarness(t, dummy.FixtureRealistic)

	err := h.run(t, h.cmds.CreateTask(task.Fields{Name: "Clean Kitchen", Due: 1700000000}))
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	want := []string{
		"CREATE_TASK_REQUEST",
		"CREATE_TASK_SUCCESS",
		"SHOW_NOTIFICATION",
		"navigate /tasks/4",
	}
	if got := h.events.all(); !equalStrings(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}

	s := h.store.State()
	created, ok := state.Task(s, "4")
	if !ok {
		t.Fatalf("created task not in state: %v", s.TasksByID)
	}
	if created.Name != "Clean Kitchen" || created.Due != 1700000000 || created.Description != "" {
		t.Fatalf("created = %+v", created)
	}
	if created.Created != created.Modified {
		t.Fatalf("created %d != modified %d", created.Created, created.Modified)
	}
	if len(s.Notifications) != 1 || s.Notifications[0].Level != notification.Info {
		t.Fatalf("notifications = %+v", s.Notifications)
	}

	all, err := api.Fetch(context.Background(), h.client, api.AllTasks())
	if err != nil {
		t.Fatal(err)
	}
	if all[len(all)-1].ID != created.ID {
		t.Fatalf("created task is not last in insertion order: %+v", all)
	}
	count := 0
	for _, tk := range all {
		if tk.ID == created.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("created task appears %d times", count)
	}
}

func TestUpdateUnknownTask(t *testing.T) {
	h := newHarness(t, dummy.FixtureRealistic)

	err := h.run(t, h.cmds.UpdateTask("unknown-id", task.Fields{Name: "x", Due: 1}))
	if err == nil {
		t.Fatalf("UpdateTask() expected error")
	}
	if !api.IsNotFound(err) {
		t.Fatalf("error = %v, want 404 status error", err)
	}

	for _, e := range h.events.all() {
		if e == "UPDATE_TASK_SUCCESS" || strings.HasPrefix(e, "navigate") {
			t.Fatalf("unexpected event %q in %v", e, h.events.all())
		}
	}

	s := h.store.State()
	if len(s.Notifications) != 1 {
		t.Fatalf("notifications = %+v, want exactly one", s.Notifications)
	}
	n := s.Notifications[0]
	if n.Level != notification.Error || !strings.Contains(n.Message, "unknown-id") {
		t.Fatalf("notification = %+v", n)
	}
}

func TestUpdateTask(t *testing.T) {
	h := newHarness(t, dummy.FixtureRealistic)
	if err := h.run(t, h.cmds.UpdateTask("3", task.Fields{Name: "Scrub Bathroom", Due: now + 60})); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	got, ok := state.Task(h.store.State(), "3")
	if !ok || got.Name != "Scrub Bathroom" || got.Due != now+60 {
		t.Fatalf("task = %+v, %v", got, ok)
	}
	events := h.events.all()
	if events[len(events)-1] != "navigate /tasks/3" {
		t.Fatalf("events = %v", events)
	}
}

func TestFetchAllTasks(t *testing.T) {
	h := newHarness(t, dummy.FixtureRealistic)
	if err := h.run(t, h.cmds.FetchAllTasks()); err != nil {
		t.Fatalf("FetchAllTasks() error = %v", err)
	}

	var names []string
	for _, tk := range state.OrderedTasks(h.store.State()) {
		names = append(names, tk.Name)
	}
	want := []string{"Clean Kitchen", "Clean Bathroom", "Change Car Oil"}
	if !equalStrings(names, want) {
		t.Fatalf("ordered names = %v, want %v", names, want)
	}
	if len(h.store.State().Notifications) != 0 {
		t.Fatalf("fetch should not notify on success")
	}
	if got := h.events.all(); !equalStrings(got, []string{"FETCH_ALL_TASKS_REQUEST", "FETCH_ALL_TASKS_SUCCESS"}) {
		t.Fatalf("events = %v", got)
	}
}

func TestFetchAllTasksTransportFailure(t *testing.T) {
	boom := errors.New("network down")
	client := api.NewClient("", api.ExecutorFunc(func(ctx context.Context, req *api.Request) (*api.Response, error) {
		return nil, boom
	}))
	s := store.New(state.Root(state.New(now)))
	cmds := &Commands{API: client, Clock: clock.NewFake(time.Unix(now, 0))}

	err := s.Run(context.Background(), cmds.FetchAllTasks())
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v", err)
	}
	ns := s.State().Notifications
	if len(ns) != 1 || ns[0].Level != notification.Error || !strings.Contains(ns[0].Message, "network down") {
		t.Fatalf("notifications = %+v", ns)
	}
}

func TestCreateTaskInvalidFields(t *testing.T) {
	h := newHarness(t, dummy.FixtureEmpty)
	err := h.run(t, h.cmds.CreateTask(task.Fields{Name: "x", TaskGroup: "kitchen"}))
	if err == nil {
		t.Fatalf("expected error")
	}
	got := h.events.all()
	want := []string{"CREATE_TASK_REQUEST", "CREATE_TASK_FAILURE", "SHOW_NOTIFICATION"}
	if !equalStrings(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestDeleteTask(t *testing.T) {
	h := newHarness(t, dummy.FixtureRealistic)
	if err := h.run(t, h.cmds.FetchAllTasks()); err != nil {
		t.Fatal(err)
	}
	if err := h.run(t, h.cmds.DeleteTask("1")); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}

	s := h.store.State()
	if _, ok := state.Task(s, "1"); ok {
		t.Fatalf("task 1 still present")
	}
	if len(s.TasksOrderedByDue) != 2 {
		t.Fatalf("ordered = %v", s.TasksOrderedByDue)
	}
	if !strings.Contains(s.Notifications[0].Message, "Clean Kitchen") {
		t.Fatalf("notification = %+v", s.Notifications[0])
	}
	events := h.events.all()
	tail := events[len(events)-3:]
	if !equalStrings(tail, []string{"DELETE_TASK_SUCCESS", "SHOW_NOTIFICATION", "navigate /tasks"}) {
		t.Fatalf("events = %v", events)
	}

	if err := h.run(t, h.cmds.DeleteTask("1")); err == nil {
		t.Fatalf("second DeleteTask() expected error")
	}
}

func TestFetchTaskFailureNotifies(t *testing.T) {
	h := newHarness(t, dummy.FixtureEmpty)
	if err := h.run(t, h.cmds.FetchTask("8")); err == nil {
		t.Fatalf("expected error")
	}
	ns := h.store.State().Notifications
	if len(ns) != 1 || !strings.Contains(ns[0].Message, "8") {
		t.Fatalf("notifications = %+v", ns)
	}
}

func TestRequireTask(t *testing.T) {
	t.Run("already loaded", func(t *testing.T) {
		h := newHarness(t, dummy.FixtureRealistic)
		if err := h.run(t, h.cmds.FetchAllTasks()); err != nil {
			t.Fatal(err)
		}
		before := len(h.events.all())
		if err := h.run(t, h.cmds.RequireTask("2")); err != nil {
			t.Fatalf("RequireTask() error = %v", err)
		}
		if len(h.events.all()) != before {
			t.Fatalf("RequireTask dispatched for a loaded task: %v", h.events.all())
		}
	})

	t.Run("fetched from server", func(t *testing.T) {
		h := newHarness(t, dummy.FixtureRealistic)
		if err := h.run(t, h.cmds.RequireTask("2")); err != nil {
			t.Fatalf("RequireTask() error = %v", err)
		}
		if _, ok := state.Task(h.store.State(), "2"); !ok {
			t.Fatalf("task 2 not loaded")
		}
		if len(h.store.State().Notifications) != 0 {
			t.Fatalf("unexpected notification")
		}
	})

	t.Run("unknown id redirects", func(t *testing.T) {
		h := newHarness(t, dummy.FixtureRealistic)
		if err := h.run(t, h.cmds.RequireTask("99")); err == nil {
			t.Fatalf("expected error")
		}
		ns := h.store.State().Notifications
		if len(ns) != 1 || ns[0].Message != "Unknown task id 99" || ns[0].Level != notification.Error {
			t.Fatalf("notifications = %+v", ns)
		}
		events := h.events.all()
		want := []string{"FETCH_TASK_REQUEST", "FETCH_TASK_FAILURE", "SHOW_NOTIFICATION", "navigate /tasks"}
		if !equalStrings(events, want) {
			t.Fatalf("events = %v, want %v", events, want)
		}
	})
}

func TestNotificationExpiry(t *testing.T) {
	h := newHarness(t, dummy.FixtureEmpty)

	if err := h.run(t, h.cmds.ShowInfo("saved")); err != nil {
		t.Fatal(err)
	}
	if err := h.run(t, h.cmds.ShowError("broken")); err != nil {
		t.Fatal(err)
	}
	ns := h.store.State().Notifications
	if len(ns) != 2 || ns[0].ID != 2 || ns[1].ID != 1 {
		t.Fatalf("notifications = %+v", ns)
	}

	h.clock.Advance(DefaultExpiry - time.Millisecond)
	if len(h.store.State().Notifications) != 2 {
		t.Fatalf("notifications expired early")
	}
	h.clock.Advance(time.Millisecond)
	if got := h.store.State().Notifications; len(got) != 0 {
		t.Fatalf("notifications after expiry = %+v", got)
	}
}

func TestNotificationDismissedBeforeExpiry(t *testing.T) {
	h := newHarness(t, dummy.FixtureEmpty)
	h.cmds.Expiry = time.Second

	if err := h.run(t, h.cmds.ShowInfo("first")); err != nil {
		t.Fatal(err)
	}
	h.clock.Advance(500 * time.Millisecond)
	if err := h.run(t, h.cmds.ShowInfo("second")); err != nil {
		t.Fatal(err)
	}
	if err := h.run(t, h.cmds.Dismiss(1)); err != nil {
		t.Fatal(err)
	}
	before := h.store.State().Notifications
	if len(before) != 1 || before[0].ID != 2 {
		t.Fatalf("after dismiss = %+v", before)
	}

	// The scheduled hide for id 1 fires now and must leave id 2 alone.
	h.clock.Advance(500 * time.Millisecond)
	after := h.store.State().Notifications
	if len(after) != 1 || after[0].ID != 2 {
		t.Fatalf("after stale hide = %+v", after)
	}

	h.clock.Advance(500 * time.Millisecond)
	if got := h.store.State().Notifications; len(got) != 0 {
		t.Fatalf("after expiry = %+v", got)
	}
}

func TestTickTimeReference(t *testing.T) {
	clk := clock.NewFake(time.Unix(now, 0))
	s := store.New(state.Root(state.New(now)))
	cmds := &Commands{Clock: clk}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, cmds.TickTimeReference(10*time.Second))
	}()

	waitPending(t, clk, 1)
	clk.Advance(10 * time.Second)
	if got := s.State().TimeReference; got != now+10 {
		t.Fatalf("TimeReference = %d, want %d", got, now+10)
	}
	clk.Advance(10 * time.Second)
	if got := s.State().TimeReference; got != now+20 {
		t.Fatalf("TimeReference = %d, want %d", got, now+20)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("TickTimeReference() error = %v", err)
	}
	clk.Advance(10 * time.Second)
	if got := s.State().TimeReference; got != now+20 {
		t.Fatalf("ticked after cancel: %d", got)
	}
	if clk.Pending() != 0 {
		t.Fatalf("Pending() = %d after cancel", clk.Pending())
	}
}

func waitPending(t *testing.T, clk *clock.Fake, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for clk.Pending() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timer never scheduled")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHistory(t *testing.T) {
	var h History
	if h.Current() != "" {
		t.Fatalf("Current() = %q", h.Current())
	}
	h.Navigate(TasksPath)
	h.Navigate(TaskPath("3"))
	if h.Current() != "/tasks/3" || len(h.Paths()) != 2 {
		t.Fatalf("history = %v", h.Paths())
	}
}
