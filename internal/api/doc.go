// Package api describes backend calls as declarative request specifications
// and executes them through a swappable Executor.
//
// A Spec names the path segments, method, optional body, response receiver
// and expected status of one call:
//
//	spec := api.Spec[task.Task]{
//		Path:    []string{"tasks", "1"},
//		Method:  api.GET,
//		Receive: api.ReceiveTask,
//	}
//	t, err := api.Fetch(ctx, client, spec)
//
// Specs are validated before any I/O. A malformed spec yields a *SpecError
// immediately; a response with an unexpected status yields a *StatusError.
// On success the response body's "data" envelope is handed to Receive. A nil
// Receive ignores the body.
//
// The Executor performs the actual transport. HTTPExecutor talks to a real
// server; tests and the demo mode substitute an in-memory backend with
// Client.Patch.
package api
