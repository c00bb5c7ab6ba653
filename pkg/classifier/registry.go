package classifier

import "fmt"

// ConfigurationError is returned when an option cannot be registered because
// its name or shorthand is already taken. It signals a programming or schema
// error, not bad user input.
type ConfigurationError struct {
	// Option is the name of the option being registered.
	Option string

	// Field is "name" or "shorthand".
	Field string

	// Value is the colliding name or shorthand.
	Value string

	// Existing is the name of the option that already holds Value.
	Existing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cannot register option %q: %s %q is already used by option %q",
		e.Option, e.Field, e.Value, e.Existing)
}

// Registry holds registered options. It is append-only.
type Registry struct {
	options     []Option
	byName      map[string]int
	byShorthand map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:      make(map[string]int),
		byShorthand: make(map[string]int),
	}
}

// Add registers opt. Names and shorthands share one namespace: a new name
// may not equal an existing shorthand and vice versa, since both are
// accepted wherever a token is checked for registration.
func (r *Registry) Add(opt Option) error {
	if opt.name == "" || opt.shorthand == "" {
		return fmt.Errorf("cannot register zero Option; construct it with NewOption")
	}
	if existing, ok := r.lookup(opt.name); ok {
		return &ConfigurationError{Option: opt.name, Field: "name", Value: opt.name, Existing: existing.name}
	}
	if existing, ok := r.lookup(opt.shorthand); ok {
		return &ConfigurationError{Option: opt.name, Field: "shorthand", Value: opt.shorthand, Existing: existing.name}
	}

	r.byName[opt.name] = len(r.options)
	r.byShorthand[opt.shorthand] = len(r.options)
	r.options = append(r.options, opt)
	return nil
}

// ByName returns the option registered under name.
func (r *Registry) ByName(name string) (Option, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Option{}, false
	}
	return r.options[i], true
}

// ByShorthand returns the option registered under shorthand.
func (r *Registry) ByShorthand(shorthand string) (Option, bool) {
	i, ok := r.byShorthand[shorthand]
	if !ok {
		return Option{}, false
	}
	return r.options[i], true
}

// IsRegistered reports whether token is the name or shorthand of any option.
func (r *Registry) IsRegistered(token string) bool {
	_, ok := r.lookup(token)
	return ok
}

// Options returns the registered options in registration order.
func (r *Registry) Options() []Option {
	out := make([]Option, len(r.options))
	copy(out, r.options)
	return out
}

// Names returns the registered option names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.options))
	for i, opt := range r.options {
		names[i] = opt.name
	}
	return names
}

// Len returns the number of registered options.
func (r *Registry) Len() int {
	return len(r.options)
}

func (r *Registry) lookup(token string) (Option, bool) {
	if opt, ok := r.ByName(token); ok {
		return opt, true
	}
	return r.ByShorthand(token)
}
