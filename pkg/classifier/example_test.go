package classifier_test

import (
	"fmt"

	"sieve-hq/sieve/pkg/classifier"
)

func Example() {
	p := classifier.New()
	p.MustAddOption(classifier.MustNewOption(classifier.OptionSpec{
		Name: "all", Shorthand: "a", Groupable: true,
	}))
	p.MustAddOption(classifier.MustNewOption(classifier.OptionSpec{
		Name: "long", Shorthand: "l", Groupable: true,
	}))
	p.MustAddOption(classifier.MustNewOption(classifier.OptionSpec{
		Name: "output", Shorthand: "o", AcceptsArgs: true, KeyValue: true, MinArgs: 1, MaxArgs: 1,
	}))

	p.Exec([]string{"-la", "--output=report.txt", "src", "--colour"})

	for _, opt := range p.ParsedOptions() {
		fmt.Println(opt.Name, opt.Args)
	}
	fmt.Println("args:", p.ParsedArgs())
	for _, msg := range p.Errors() {
		fmt.Println("error:", msg)
	}
	// Output:
	// long []
	// all []
	// output [report.txt]
	// args: [src]
	// error: unknown option "--colour"
}
