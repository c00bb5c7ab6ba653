/*
Package classifier sorts raw command-line tokens into positional arguments,
recognized options and diagnostics.

A Parser owns an option Registry and the results of its most recent Exec
call. Options are built with NewOption, which checks every field once, and
registered with AddOption. Registration is the only step that can fail hard.
Every problem found in the tokens themselves is recorded as a Diagnostic and
scanning continues with the next token.

Basic Usage:

	p := classifier.New()
	p.MustAddOption(classifier.MustNewOption(classifier.OptionSpec{
		Name:      "verbose",
		Shorthand: "v",
		Groupable: true,
	}))
	p.MustAddOption(classifier.MustNewOption(classifier.OptionSpec{
		Name:        "output",
		Shorthand:   "o",
		AcceptsArgs: true,
		MinArgs:     1,
		MaxArgs:     1,
	}))

	p.Exec(os.Args[1:])
	for _, msg := range p.Errors() {
		fmt.Fprintln(os.Stderr, msg)
	}
	if opt, ok := p.GetParsedOption("output"); ok {
		fmt.Println("writing to", opt.Args[0])
	}

Token Shapes:

  - "file.txt": positional argument
  - "--name": verbose option
  - "--name=value": key/value option, exactly one inline value
  - "-n": shorthand option
  - "-abc": shorthand cluster, only for groupable options
  - "-", "--", "---": empty option token (diagnostic)

An option that accepts arguments collects the following tokens up to its
maximum, stopping early at the next token that starts with a hyphen. Fewer
than the minimum is reported as InsufficientArguments and nothing is recorded
for that occurrence.

Concurrency:

Exec resets and rewrites the parser's result collections, so one Parser must
not run overlapping Exec calls. Use one Parser per goroutine.
*/
package classifier
