// Package seed loads and validates read-only task fixtures.
//
// A seed file is a JSON document that fills the in-memory list with demo
// tasks at startup. It is only ever read; the session's task state is
// never written back. The format:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {
//	      "text": "Buy milk",
//	      "priority": "high",
//	      "category": "errands",
//	      "due_date": "2025-09-01",
//	      "notes": "Optional free text",
//	      "tags": ["shopping", "weekly"],
//	      "completed": false
//	    }
//	  ]
//	}
//
// Records never carry ids: every record is funneled through the list's
// add operation, which assigns a fresh unique id. Records marked
// completed are toggled after insertion, so the list's three mutation
// paths stay the only ones.
//
// # Validation
//
// Validate checks a document against the bundled JSON Schema
// (draft 2020-12). A caller-supplied schema file can override the
// bundled one; when neither can be compiled, minimal structural checks
// run instead (schema_version, tasks presence, per-record field checks).
package seed
