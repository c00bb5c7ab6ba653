// Sieve classifies command-line tokens against an option schema.
//
// Given a schema of recognized options and a raw token sequence, it splits
// the tokens into positional arguments, parsed options with their values,
// and diagnostics. Bad input never aborts a run.
//
// Usage:
//
//	# Classify tokens against a schema
//	sieve classify --schema schema.yaml -- -v --output out.txt src/
//
//	# Fail the process when diagnostics are produced
//	sieve classify --schema schema.yaml --fail-on-error -- --bogus
//
//	# Check a schema for collisions
//	sieve schema lint --schema schema.yaml
//
//	# Re-classify whenever the schema changes
//	sieve watch --schema schema.yaml --metrics -- -v src/
//
//	# Inspect recorded runs
//	sieve history list --limit 10
package main

import (
	"os"

	"sieve-hq/sieve/pkg/cli"
)

func main() {
	os.Exit(cli.ExitCode(Execute()))
}
