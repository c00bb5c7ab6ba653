package classifier

import "fmt"

// Kind categorizes a Diagnostic.
type Kind string

const (
	// KindEmptyOptionToken: the token consists of hyphens only.
	KindEmptyOptionToken Kind = "empty_option_token"

	// KindMalformedKeyValue: a --key=value token with more than one '='.
	KindMalformedKeyValue Kind = "malformed_key_value"

	// KindUnknownOption: a name or shorthand that is not registered.
	KindUnknownOption Kind = "unknown_option"

	// KindNonGroupableOption: a registered shorthand used inside a cluster
	// without being groupable.
	KindNonGroupableOption Kind = "non_groupable_option"

	// KindInsufficientArguments: fewer arguments collected than MinArgs.
	KindInsufficientArguments Kind = "insufficient_arguments"

	// KindNotKeyValueOption: --name=value used for an option that is not
	// declared KeyValue. Only reported in strict key/value mode.
	KindNotKeyValueOption Kind = "not_key_value_option"
)

// Kinds lists every diagnostic kind.
var Kinds = []Kind{
	KindEmptyOptionToken,
	KindMalformedKeyValue,
	KindUnknownOption,
	KindNonGroupableOption,
	KindInsufficientArguments,
	KindNotKeyValueOption,
}

// Diagnostic is a soft error found while classifying tokens.
type Diagnostic struct {
	Kind       Kind   `json:"kind" yaml:"kind"`
	Token      string `json:"token" yaml:"token"`
	Message    string `json:"message" yaml:"message"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// String returns the message followed by the suggestion, if any.
func (d Diagnostic) String() string {
	if d.Suggestion == "" {
		return d.Message
	}
	return d.Message + " " + d.Suggestion
}

func emptyOptionToken(token string) Diagnostic {
	return Diagnostic{
		Kind:    KindEmptyOptionToken,
		Token:   token,
		Message: fmt.Sprintf("empty option %q: expected a name after the hyphens", token),
	}
}

func malformedKeyValue(token string) Diagnostic {
	return Diagnostic{
		Kind:    KindMalformedKeyValue,
		Token:   token,
		Message: fmt.Sprintf("malformed key/value option %q: more than one '='", token),
	}
}

func unknownVerbose(token, name string) Diagnostic {
	return unknownOption(token, "--"+name)
}

func unknownShorthand(token, shorthand string) Diagnostic {
	return unknownOption(token, "-"+shorthand)
}

// unknownOption names the source token too when the option was cut out of a
// key/value token or a cluster.
func unknownOption(token, option string) Diagnostic {
	msg := fmt.Sprintf("unknown option %q", option)
	if option != token {
		msg += fmt.Sprintf(" in %q", token)
	}
	return Diagnostic{
		Kind:    KindUnknownOption,
		Token:   token,
		Message: msg,
	}
}

func nonGroupable(token string, opt Option) Diagnostic {
	return Diagnostic{
		Kind:    KindNonGroupableOption,
		Token:   token,
		Message: fmt.Sprintf("option \"-%s\" (%s) cannot be grouped in %q", opt.shorthand, opt.name, token),
	}
}

func insufficientArguments(token string, opt Option, got int) Diagnostic {
	return Diagnostic{
		Kind:  KindInsufficientArguments,
		Token: token,
		Message: fmt.Sprintf("option %q requires at least %d argument(s), got %d",
			opt.name, opt.minArgs, got),
	}
}

func notKeyValue(token string, opt Option) Diagnostic {
	return Diagnostic{
		Kind:    KindNotKeyValueOption,
		Token:   token,
		Message: fmt.Sprintf("option %q does not take a key/value argument", opt.name),
	}
}
