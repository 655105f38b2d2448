// Package todo holds the reminder list model: tasks, their due-date
// arithmetic, and position-addressed list mutations.
//
// A Task renders itself as a single line:
//
//	[ ] Pay rent: Due October-21-2026-09-00, in 2 days, 0 hours, and 0 minutes.
//	[ ] Call bank: Due October-19-2026-08-00, late by 0 days, 1 hours, and 0 minutes.
//	[x] Buy milk
//
// The remaining-time clause is computed from the instant passed to Render,
// never from a value stored at creation, and is omitted for completed tasks
// and tasks without a due date.
//
// # Positions
//
// Callers address tasks by 1-based position into the current list. Positions
// are not stable: deleting position p shifts every later task down by one.
// Both malformed input ("abc") and out-of-range positions surface as a
// *PositionError so an input loop can report and retry without caring which
// one it hit.
//
// # Records
//
// Serialize and Deserialize exchange flat Records with the persistence
// layer:
//
//	{"description": "Pay rent", "is_done": false, "due_date": "2026-10-21T09:00:00"}
//
// due_date is a local ISO-8601 timestamp without offset, or absent when the
// task has no deadline. Deserialize is all-or-nothing: a bad record leaves
// the list exactly as it was.
package todo
