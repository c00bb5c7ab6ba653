// Package schema loads option schemas from files and turns them into
// classifier parsers.
//
// A schema is a list of option definitions. Three file formats are accepted
// and detected from the file extension unless a format is forced:
//
// YAML (.yaml, .yml):
//
//	options:
//	  - name: output
//	    shorthand: o
//	    accepts_args: true
//	    min_args: 1
//	    max_args: 1
//
// TOML (.toml):
//
//	[[options]]
//	name = "output"
//	shorthand = "o"
//	accepts_args = true
//	min_args = 1
//	max_args = 1
//
// HCL (.hcl):
//
//	option "output" {
//	  shorthand    = "o"
//	  accepts_args = true
//	  min_args     = 1
//	  max_args     = 1
//	}
//
// Unknown keys are rejected in every format. Every invalid option entry is
// reported in a single *LoadError.
//
// Load only validates entries one by one. Collisions between entries are
// detected when the options are registered, either by NewParser (first
// collision) or by Lint (all collisions).
//
// Watcher re-runs a callback whenever the schema file changes on disk. It
// watches the parent directory so that editors replacing the file through a
// rename are still picked up.
package schema
