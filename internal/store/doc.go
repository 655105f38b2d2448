// Package store persists reminder lists to disk.
//
// A task file holds a versioned document:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {"description": "Buy milk", "is_done": false},
//	    {"description": "Pay rent", "is_done": false, "due_date": "2026-10-21T09:00:00"}
//	  ]
//	}
//
// The same document can be written as JSON, TOML or YAML; the codec is
// picked from the file extension unless a format is forced. Whatever the
// encoding, a decoded document is checked against the embedded JSON Schema
// (draft 2020-12) before any task is rebuilt, and a failed load leaves the
// caller's list untouched.
//
// Saves are atomic: the document is written to a temporary file in the
// target directory and renamed over the original.
package store
