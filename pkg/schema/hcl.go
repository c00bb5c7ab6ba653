package schema

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"sieve-hq/sieve/pkg/classifier"
)

// hclFile is the top-level structure of an HCL schema file.
type hclFile struct {
	Options []*hclOption `hcl:"option,block"`
}

// hclOption is a single `option "<name>" { ... }` block.
type hclOption struct {
	Name        string `hcl:"name,label"`
	Shorthand   string `hcl:"shorthand"`
	AcceptsArgs bool   `hcl:"accepts_args,optional"`
	KeyValue    bool   `hcl:"key_value,optional"`
	Groupable   bool   `hcl:"groupable,optional"`
	MinArgs     int    `hcl:"min_args,optional"`
	MaxArgs     int    `hcl:"max_args,optional"`
}

func decodeHCL(data []byte, filename string) ([]classifier.OptionSpec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, diags
	}

	specs := make([]classifier.OptionSpec, 0, len(parsed.Options))
	for _, block := range parsed.Options {
		specs = append(specs, classifier.OptionSpec{
			Name:        block.Name,
			Shorthand:   block.Shorthand,
			AcceptsArgs: block.AcceptsArgs,
			KeyValue:    block.KeyValue,
			Groupable:   block.Groupable,
			MinArgs:     block.MinArgs,
			MaxArgs:     block.MaxArgs,
		})
	}
	return specs, nil
}
