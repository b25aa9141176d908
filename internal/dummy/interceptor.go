package dummy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/choretracker-go/internal/api"
	"github.com/nibzard/choretracker-go/internal/clock"
	"github.com/nibzard/choretracker-go/internal/schema"
	"github.com/nibzard/choretracker-go/internal/task"
	"github.com/nibzard/choretracker-go/internal/utils"
)

// Artificial response latencies.
const (
	DefaultDelay       = 200 * time.Millisecond
	DefaultRejectDelay = 150 * time.Millisecond
)

// Patch errors, shared with api.Client.
var (
	ErrAlreadyPatched = api.ErrAlreadyPatched
	ErrNotPatched     = api.ErrNotPatched
)

// Options configures an Interceptor.
type Options struct {
	// Fixture names a built-in fixture. Ignored when FixtureData is set.
	Fixture     string
	FixtureData *Fixture
	// Delay applies to successful responses, RejectDelay to failures.
	Delay       time.Duration
	RejectDelay time.Duration
	Clock       clock.Clock
	Logger      *log.Logger
}

// DefaultOptions returns the realistic fixture with the default delays.
func DefaultOptions() Options {
	return Options{
		Fixture:     FixtureRealistic,
		Delay:       DefaultDelay,
		RejectDelay: DefaultRejectDelay,
	}
}

// Interceptor answers API requests from an in-memory Database. It
// implements api.Executor.
type Interceptor struct {
	opts Options

	mu sync.RWMutex
	db *Database
}

// NewInterceptor returns an interceptor seeded from opts.
func NewInterceptor(opts Options) (*Interceptor, error) {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	i := &Interceptor{opts: opts}
	if err := i.Reset(); err != nil {
		return nil, err
	}
	return i, nil
}

// Patch seeds a fresh interceptor and routes c's requests to it.
func Patch(c *api.Client, opts Options) (*Interceptor, error) {
	i, err := NewInterceptor(opts)
	if err != nil {
		return nil, err
	}
	if err := c.Patch(i); err != nil {
		return nil, err
	}
	return i, nil
}

// Unpatch restores c's own executor.
func Unpatch(c *api.Client) error {
	return c.Unpatch()
}

// Reset replaces the database with a freshly seeded one.
func (i *Interceptor) Reset() error {
	f := Fixture{}
	if i.opts.FixtureData != nil {
		f = *i.opts.FixtureData
	} else {
		var err error
		f, err = LookupFixture(i.opts.Fixture)
		if err != nil {
			return err
		}
	}
	db, err := NewSeededDatabase(f, i.opts.Clock)
	if err != nil {
		return err
	}
	i.mu.Lock()
	i.db = db
	i.mu.Unlock()
	return nil
}

// Database returns the current backing database.
func (i *Interceptor) Database() *Database {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.db
}

// Execute implements api.Executor. Writes are rehearsed on a copy of the
// database to pick the delay and applied once it has passed, so a request
// cancelled while waiting leaves the database untouched.
func (i *Interceptor) Execute(ctx context.Context, req *api.Request) (*api.Response, error) {
	db := i.Database()
	target := db
	if req.Method != api.GET {
		target = db.Clone()
	}
	status, payload := Route(target, req.Method, req.Path, req.Body)

	delay := i.opts.Delay
	if status >= 400 {
		delay = i.opts.RejectDelay
	}
	if err := sleep(ctx, delay); err != nil {
		return nil, err
	}
	if target != db {
		status, payload = Route(db, req.Method, req.Path, req.Body)
	}
	if i.opts.Logger != nil {
		i.opts.Logger.Debug("dummy backend", "method", req.Method, "path", strings.Join(req.Path, "/"), "status", status)
	}

	resp := &api.Response{StatusCode: status, Header: http.Header{}}
	if payload == nil {
		return resp, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	resp.Header.Set("Content-Type", "application/json")
	resp.Body = body
	return resp, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Envelope wraps successful payloads.
type Envelope struct {
	Data any `json:"data"`
}

// ErrorBody is the payload of failed requests.
type ErrorBody struct {
	Error string `json:"error"`
}

// Route answers one request against db. It matches "tasks" and
// "tasks/{integer id}" and returns the status and the JSON payload. A
// successful DELETE has no payload.
func Route(db *Database, method api.Method, path []string, body []byte) (int, any) {
	endpoint := strings.Join(path, "/")
	notFound := func() (int, any) {
		return http.StatusNotFound, ErrorBody{Error: fmt.Sprintf("Endpoint path %s returned 404", endpoint)}
	}
	notAllowed := func() (int, any) {
		return http.StatusMethodNotAllowed, ErrorBody{Error: fmt.Sprintf("method %s not allowed on %s", method, endpoint)}
	}

	if len(path) == 0 || path[0] != api.TasksResource {
		return notFound()
	}

	if len(path) == 1 {
		switch method {
		case api.GET:
			return http.StatusOK, Envelope{Data: db.GetAll()}
		case api.POST:
			in, err := DecodeInput(body)
			if err != nil {
				return http.StatusBadRequest, ErrorBody{Error: err.Error()}
			}
			created, err := db.Create(in)
			if err != nil {
				return StatusOf(err), ErrorBody{Error: err.Error()}
			}
			return http.StatusCreated, Envelope{Data: created}
		default:
			return notAllowed()
		}
	}

	if len(path) != 2 || !utils.IsIntID(path[1]) {
		return notFound()
	}
	id, err := strconv.ParseInt(path[1], 10, 64)
	if err != nil {
		return notFound()
	}
	existing, err := db.Get(id)
	if err != nil {
		return notFound()
	}

	switch method {
	case api.GET:
		return http.StatusOK, Envelope{Data: existing}
	case api.PUT:
		in, err := DecodeInput(body)
		if err != nil {
			return http.StatusBadRequest, ErrorBody{Error: err.Error()}
		}
		updated, err := db.Update(id, in)
		if err != nil {
			return StatusOf(err), ErrorBody{Error: err.Error()}
		}
		return http.StatusOK, Envelope{Data: updated}
	case api.DELETE:
		if err := db.Delete(id); err != nil {
			return StatusOf(err), ErrorBody{Error: err.Error()}
		}
		return http.StatusOK, nil
	default:
		return notAllowed()
	}
}

// DecodeInput validates a task body against the input schema and decodes
// it.
func DecodeInput(body []byte) (task.WireInput, error) {
	if len(body) == 0 {
		return task.WireInput{}, fmt.Errorf("%w: empty body", ErrInvalidInput)
	}
	if err := schema.ValidateJSON(schema.TaskInput, body); err != nil {
		return task.WireInput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	var in task.WireInput
	if err := json.Unmarshal(body, &in); err != nil {
		return task.WireInput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return in, nil
}

// StatusOf maps a database error to an HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateID):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
