// Package tasklist holds the in-memory task collection and its operations.
//
// A List is an insertion-ordered collection of Tasks with exactly three
// mutation paths:
//
//   - Add appends a new task built from a Draft (raw input fields)
//   - Toggle flips a task's completed flag
//   - Delete removes a task
//
// Task ids are assigned by the list at creation time, are unique within
// the list, and are never reused. Toggle and Delete on an unknown id are
// silent no-ops, not errors; the only error the package produces is a
// *ValidationError from Add when the draft is unusable.
//
// View is a pure derived read: it filters by completion state, narrows by
// a case-insensitive search over text and tags, and orders the result by
// the requested sort key without touching the collection.
//
// A List has a single writer and is not safe for concurrent use.
package tasklist
