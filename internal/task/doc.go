// Package task defines the task entity, its wire representation, and the
// conversions between them.
//
// Field mapping between the domain and the wire:
//
//	Field        | Domain  | Wire
//	-------------+---------+-------
//	id           | string  | int
//	taskGroup    | string  | int
//	name         | string  | string
//	description  | string  | string
//	due          | int64   | int
//	created      | int64   | int
//	modified     | int64   | int
//
// created and modified are assigned by the backend and are never serialized
// by the client.
package task
