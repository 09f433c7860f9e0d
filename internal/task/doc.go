// Package task loads, validates, mutates and saves the pm tracking directory.
//
// The tracking directory lives next to the code it describes:
//
//	pm/index.yml
//	pm/tasks/001-write-docs.yml
//
// The index holds project metadata and, for every task, its status and
// change history:
//
//	meta:
//	  name: demo
//	tasks:
//	  - id: 1
//	    status: Doing
//	    changes:
//	      - from: Todo
//	        to: Doing
//	        on: 2026-10-16T09:00:00Z
//
// Each task file holds the title, an optional description and optional
// labels. Its name is the task slug, fixed when the task is created.
//
// # Status Values
//
//   - "Todo": not started (also the status of an empty history)
//   - "Doing": in progress
//   - "Done": finished
//
// Allowed moves are Todo->Doing, Doing->Done and one step back
// (Doing->Todo, Done->Doing). Status only changes through Transition,
// which appends to the task's ledger.
//
// # Consistency
//
// Load is strict: a task file without an index entry, an index entry
// without a file, duplicate ids, schema violations and histories that
// disagree with the stored status are reported as ErrCorruptState.
//
// # File Format
//
// Save writes every file through an atomic rename and produces the same
// bytes for the same store: tasks ascending by id, history in append
// order, labels sorted, 2-space indentation.
package task
