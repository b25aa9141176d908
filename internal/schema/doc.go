// Package schema validates JSON documents crossing the system boundary
// against the embedded JSON Schemas.
//
// Schemas:
//
//   - request-spec.schema.json: declarative request specifications
//   - task.schema.json: one task as returned by the backend
//   - tasks.schema.json: a list of tasks as returned by the backend
//   - task-input.schema.json: a task body sent to the backend
//
// Validation failures are reported as Errors, a flat list of
// ValidationError values each carrying a dot-notation path to the offending
// location (for example "data[2].due").
package schema
